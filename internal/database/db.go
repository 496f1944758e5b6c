package database

import (
	"context"
	"log"

	"fraisreels/internal/deduction"
	"fraisreels/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.Household{},
		&model.Person{},
		&model.Vehicle{},
		&model.MileageEntry{},
		&model.MealExpense{},
		&model.OtherExpense{},
		&model.MileageScaleBracket{},
		&model.User{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// SeedScale inserts the published barème when the scale table is empty, so a
// fresh database can compute deductions without an admin step.
func SeedScale(ctx context.Context, db *gorm.DB) error {
	var total int64
	if err := db.WithContext(ctx).Model(&model.MileageScaleBracket{}).Count(&total).Error; err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	scale := deduction.DefaultScale()
	var rows []model.MileageScaleBracket
	for _, power := range scale.PowerTiers() {
		for position, bracket := range scale[power] {
			rows = append(rows, model.MileageScaleBracket{
				PowerCV:        power,
				Position:       position,
				UpperKMBound:   bracket.UpperKM,
				RatePerKM:      bracket.RatePerKM,
				FixedAllowance: bracket.FixedAllowance,
			})
		}
	}
	if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	log.Printf("Seeded mileage scale with %d brackets", len(rows))
	return nil
}
