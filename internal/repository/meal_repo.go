package repository

import (
	"context"

	"fraisreels/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealRepository interface {
	Create(ctx context.Context, expense *model.MealExpense) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MealExpense, error)
	ListByPersonYear(ctx context.Context, personID uuid.UUID, year int) ([]model.MealExpense, error)
	Update(ctx context.Context, expense *model.MealExpense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) Create(ctx context.Context, expense *model.MealExpense) error {
	return GetDB(ctx, r.db).Create(expense).Error
}

func (r *mealRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.MealExpense, error) {
	var expense model.MealExpense
	if err := GetDB(ctx, r.db).First(&expense, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *mealRepository) ListByPersonYear(ctx context.Context, personID uuid.UUID, year int) ([]model.MealExpense, error) {
	var expenses []model.MealExpense
	if err := GetDB(ctx, r.db).
		Where("person_id = ? AND year = ?", personID, year).
		Order("month asc, created_at asc, id asc").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *mealRepository) Update(ctx context.Context, expense *model.MealExpense) error {
	return GetDB(ctx, r.db).Save(expense).Error
}

func (r *mealRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.MealExpense{}, "id = ?", id).Error
}
