package repository

import (
	"context"

	"fraisreels/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HouseholdRepository interface {
	Create(ctx context.Context, household *model.Household) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Household, error)
	List(ctx context.Context) ([]model.Household, error)
	Update(ctx context.Context, household *model.Household) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type householdRepository struct {
	db *gorm.DB
}

func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) Create(ctx context.Context, household *model.Household) error {
	return GetDB(ctx, r.db).Create(household).Error
}

func (r *householdRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Household, error) {
	var household model.Household
	if err := GetDB(ctx, r.db).First(&household, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *householdRepository) List(ctx context.Context) ([]model.Household, error) {
	var households []model.Household
	if err := GetDB(ctx, r.db).Order("name asc").Find(&households).Error; err != nil {
		return nil, err
	}
	return households, nil
}

func (r *householdRepository) Update(ctx context.Context, household *model.Household) error {
	return GetDB(ctx, r.db).Save(household).Error
}

func (r *householdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Household{}, "id = ?", id).Error
}
