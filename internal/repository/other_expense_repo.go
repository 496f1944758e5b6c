package repository

import (
	"context"

	"fraisreels/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OtherExpenseRepository interface {
	Create(ctx context.Context, expense *model.OtherExpense) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.OtherExpense, error)
	ListByPersonYear(ctx context.Context, personID uuid.UUID, year int) ([]model.OtherExpense, error)
	Update(ctx context.Context, expense *model.OtherExpense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type otherExpenseRepository struct {
	db *gorm.DB
}

func NewOtherExpenseRepository(db *gorm.DB) OtherExpenseRepository {
	return &otherExpenseRepository{db: db}
}

func (r *otherExpenseRepository) Create(ctx context.Context, expense *model.OtherExpense) error {
	return GetDB(ctx, r.db).Create(expense).Error
}

func (r *otherExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.OtherExpense, error) {
	var expense model.OtherExpense
	if err := GetDB(ctx, r.db).First(&expense, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *otherExpenseRepository) ListByPersonYear(ctx context.Context, personID uuid.UUID, year int) ([]model.OtherExpense, error) {
	var expenses []model.OtherExpense
	if err := GetDB(ctx, r.db).
		Where("person_id = ? AND year = ?", personID, year).
		Order("created_at asc, id asc").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *otherExpenseRepository) Update(ctx context.Context, expense *model.OtherExpense) error {
	return GetDB(ctx, r.db).Save(expense).Error
}

func (r *otherExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.OtherExpense{}, "id = ?", id).Error
}
