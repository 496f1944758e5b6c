package repository

import (
	"context"

	"fraisreels/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MileageRepository interface {
	Create(ctx context.Context, entry *model.MileageEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MileageEntry, error)
	ListByPersonYear(ctx context.Context, personID uuid.UUID, year int) ([]model.MileageEntry, error)
	Update(ctx context.Context, entry *model.MileageEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type mileageRepository struct {
	db *gorm.DB
}

func NewMileageRepository(db *gorm.DB) MileageRepository {
	return &mileageRepository{db: db}
}

func (r *mileageRepository) Create(ctx context.Context, entry *model.MileageEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *mileageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MileageEntry, error) {
	var entry model.MileageEntry
	if err := GetDB(ctx, r.db).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByPersonYear returns the person's entries for the year in a stable
// order so recomputed details come out identical on unchanged data.
func (r *mileageRepository) ListByPersonYear(ctx context.Context, personID uuid.UUID, year int) ([]model.MileageEntry, error) {
	var entries []model.MileageEntry
	if err := GetDB(ctx, r.db).
		Where("person_id = ? AND year = ?", personID, year).
		Order("month asc, created_at asc, id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mileageRepository) Update(ctx context.Context, entry *model.MileageEntry) error {
	return GetDB(ctx, r.db).Save(entry).Error
}

func (r *mileageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.MileageEntry{}, "id = ?", id).Error
}
