package repository

import (
	"context"

	"fraisreels/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Person, error)
	List(ctx context.Context, page, limit int) ([]model.Person, int64, error)
	ListAll(ctx context.Context) ([]model.Person, error)
	Update(ctx context.Context, person *model.Person) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db: db}
}

func (r *personRepository) Create(ctx context.Context, person *model.Person) error {
	return GetDB(ctx, r.db).Create(person).Error
}

func (r *personRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Person, error) {
	var person model.Person
	if err := GetDB(ctx, r.db).Preload("Household").First(&person, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepository) List(ctx context.Context, page, limit int) ([]model.Person, int64, error) {
	var people []model.Person
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Person{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Household").Order("last_name asc, first_name asc").
		Offset(offset).Limit(limit).Find(&people).Error; err != nil {
		return nil, 0, err
	}

	return people, total, nil
}

func (r *personRepository) ListAll(ctx context.Context) ([]model.Person, error) {
	var people []model.Person
	if err := GetDB(ctx, r.db).Preload("Household").
		Order("last_name asc, first_name asc").Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (r *personRepository) Update(ctx context.Context, person *model.Person) error {
	return GetDB(ctx, r.db).Save(person).Error
}

func (r *personRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Person{}, "id = ?", id).Error
}
