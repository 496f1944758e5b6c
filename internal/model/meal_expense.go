package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MealExpense is one meal cost subject to the daily floor/ceiling rule
type MealExpense struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PersonID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_meal_person_year" json:"person_id"`
	Person    Person          `gorm:"foreignKey:PersonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Year      int             `gorm:"not null;index:idx_meal_person_year" json:"year"`
	Month     int             `gorm:"not null" json:"month"`
	MealCost  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"meal_cost"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
