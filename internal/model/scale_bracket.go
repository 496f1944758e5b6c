package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MileageScaleBracket persists one formula segment of the mileage scale.
// Rows for a power tier are ordered by Position; the bracket list must
// round-trip through storage with that ordering intact. A null UpperKMBound
// marks the tier's last, unbounded bracket.
type MileageScaleBracket struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PowerCV        int              `gorm:"not null;index:idx_scale_power_position,unique" json:"power_cv"`
	Position       int              `gorm:"not null;index:idx_scale_power_position,unique" json:"position"`
	UpperKMBound   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"upper_km_bound"`
	RatePerKM      decimal.Decimal  `gorm:"type:decimal(8,3);not null" json:"rate_per_km"`
	FixedAllowance decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"fixed_allowance"`
	CreatedAt      time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}
