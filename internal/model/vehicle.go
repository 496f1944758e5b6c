package model

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is a person's car with its fiscal horsepower (CV), the key into
// the mileage scale. PowerCV is immutable for the duration of a computation.
type Vehicle struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PersonID  uuid.UUID `gorm:"type:uuid;not null;index" json:"person_id"`
	Person    Person    `gorm:"foreignKey:PersonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	PowerCV   int       `gorm:"not null" json:"power_cv"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
