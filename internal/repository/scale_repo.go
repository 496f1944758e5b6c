package repository

import (
	"context"

	"fraisreels/internal/model"

	"gorm.io/gorm"
)

type ScaleRepository interface {
	ListAll(ctx context.Context) ([]model.MileageScaleBracket, error)
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, brackets []model.MileageScaleBracket) error
	ReplaceTier(ctx context.Context, powerCV int, brackets []model.MileageScaleBracket) error
}

type scaleRepository struct {
	db *gorm.DB
}

func NewScaleRepository(db *gorm.DB) ScaleRepository {
	return &scaleRepository{db: db}
}

// ListAll returns every bracket ordered by power tier then position, the
// order the deduction engine expects a tier's bracket list in.
func (r *scaleRepository) ListAll(ctx context.Context) ([]model.MileageScaleBracket, error) {
	var brackets []model.MileageScaleBracket
	if err := GetDB(ctx, r.db).
		Order("power_cv asc, position asc").
		Find(&brackets).Error; err != nil {
		return nil, err
	}
	return brackets, nil
}

func (r *scaleRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&model.MileageScaleBracket{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *scaleRepository) Insert(ctx context.Context, brackets []model.MileageScaleBracket) error {
	if len(brackets) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&brackets).Error
}

// ReplaceTier swaps one power tier's bracket list atomically when called
// inside a TransactionManager unit of work.
func (r *scaleRepository) ReplaceTier(ctx context.Context, powerCV int, brackets []model.MileageScaleBracket) error {
	db := GetDB(ctx, r.db)
	if err := db.Delete(&model.MileageScaleBracket{}, "power_cv = ?", powerCV).Error; err != nil {
		return err
	}
	if len(brackets) == 0 {
		return nil
	}
	return db.Create(&brackets).Error
}
