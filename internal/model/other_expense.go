package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OtherExpense is a miscellaneous professional expense deductible at face
// value. AttachmentPath points at the stored receipt; it is metadata only.
type OtherExpense struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PersonID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_other_person_year" json:"person_id"`
	Person         Person          `gorm:"foreignKey:PersonID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Year           int             `gorm:"not null;index:idx_other_person_year" json:"year"`
	Description    string          `gorm:"type:text;not null" json:"description"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	AttachmentPath *string         `gorm:"type:text" json:"attachment_path"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
