package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MileageEntry records one vehicle's distance in one month. Several rows for
// the same vehicle and month are valid and sum additively.
type MileageEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PersonID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_mileage_person_year" json:"person_id"`
	Person    Person          `gorm:"foreignKey:PersonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	VehicleID uuid.UUID       `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Vehicle   Vehicle         `gorm:"foreignKey:VehicleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Year      int             `gorm:"not null;index:idx_mileage_person_year" json:"year"`
	Month     int             `gorm:"not null" json:"month"`
	KM        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"km"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
