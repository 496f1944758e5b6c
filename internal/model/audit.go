package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateHousehold = "CREATE_HOUSEHOLD"
	ActionUpdateHousehold = "UPDATE_HOUSEHOLD"
	ActionDeleteHousehold = "DELETE_HOUSEHOLD"
	ActionCreatePerson    = "CREATE_PERSON"
	ActionUpdatePerson    = "UPDATE_PERSON"
	ActionDeletePerson    = "DELETE_PERSON"
	ActionCreateVehicle   = "CREATE_VEHICLE"
	ActionUpdateVehicle   = "UPDATE_VEHICLE"
	ActionDeleteVehicle   = "DELETE_VEHICLE"
	ActionCreateMileage   = "CREATE_MILEAGE_ENTRY"
	ActionUpdateMileage   = "UPDATE_MILEAGE_ENTRY"
	ActionDeleteMileage   = "DELETE_MILEAGE_ENTRY"
	ActionCreateMeal      = "CREATE_MEAL_EXPENSE"
	ActionUpdateMeal      = "UPDATE_MEAL_EXPENSE"
	ActionDeleteMeal      = "DELETE_MEAL_EXPENSE"
	ActionCreateOther     = "CREATE_OTHER_EXPENSE"
	ActionUpdateOther     = "UPDATE_OTHER_EXPENSE"
	ActionDeleteOther     = "DELETE_OTHER_EXPENSE"
	ActionUpdateScale     = "UPDATE_MILEAGE_SCALE"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated bot
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
