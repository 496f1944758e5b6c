package service

import (
	"context"
	"fmt"

	"fraisreels/internal/model"
	"fraisreels/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreatePersonRequest struct {
	HouseholdID string `json:"household_id" binding:"required"`
	FirstName   string `json:"first_name" binding:"required,max=255"`
	LastName    string `json:"last_name" binding:"required,max=255"`
}

type UpdatePersonRequest struct {
	HouseholdID string `json:"household_id" binding:"required"`
	FirstName   string `json:"first_name" binding:"required,max=255"`
	LastName    string `json:"last_name" binding:"required,max=255"`
}

type PersonResponse struct {
	ID            string `json:"id"`
	HouseholdID   string `json:"household_id"`
	HouseholdName string `json:"household_name,omitempty"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
}

// --- Interface ---

type PersonService interface {
	CreatePerson(ctx context.Context, userID string, req CreatePersonRequest) (PersonResponse, error)
	GetPersons(ctx context.Context, page, limit int) ([]PersonResponse, int64, error)
	UpdatePerson(ctx context.Context, userID, id string, req UpdatePersonRequest) (PersonResponse, error)
	DeletePerson(ctx context.Context, userID, id string) (PersonResponse, error)
}

type personService struct {
	personRepo    repository.PersonRepository
	householdRepo repository.HouseholdRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
}

func NewPersonService(
	personRepo repository.PersonRepository,
	householdRepo repository.HouseholdRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) PersonService {
	return &personService{
		personRepo:    personRepo,
		householdRepo: householdRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
	}
}

// --- Implementation ---

func (s *personService) CreatePerson(ctx context.Context, userID string, req CreatePersonRequest) (PersonResponse, error) {
	householdID, err := uuid.Parse(req.HouseholdID)
	if err != nil {
		return PersonResponse{}, fmt.Errorf("invalid household_id: %w", err)
	}

	household, err := s.householdRepo.FindByID(ctx, householdID)
	if err != nil {
		return PersonResponse{}, fmt.Errorf("household not found: %w", err)
	}

	person := model.Person{
		HouseholdID: householdID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.personRepo.Create(txCtx, &person); createErr != nil {
			return fmt.Errorf("failed to create person: %w", createErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreatePerson, person.ID.String(), req.FirstName+" "+req.LastName, req)
	})
	if err != nil {
		return PersonResponse{}, err
	}

	person.Household = *household
	return toPersonResponse(person), nil
}

func (s *personService) GetPersons(ctx context.Context, page, limit int) ([]PersonResponse, int64, error) {
	people, total, err := s.personRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch persons: %w", err)
	}

	result := make([]PersonResponse, 0, len(people))
	for _, p := range people {
		result = append(result, toPersonResponse(p))
	}
	return result, total, nil
}

func (s *personService) UpdatePerson(ctx context.Context, userID, id string, req UpdatePersonRequest) (PersonResponse, error) {
	personID, err := uuid.Parse(id)
	if err != nil {
		return PersonResponse{}, fmt.Errorf("invalid person id: %w", err)
	}
	householdID, err := uuid.Parse(req.HouseholdID)
	if err != nil {
		return PersonResponse{}, fmt.Errorf("invalid household_id: %w", err)
	}

	person, err := s.personRepo.FindByID(ctx, personID)
	if err != nil {
		return PersonResponse{}, fmt.Errorf("person not found: %w", err)
	}
	household, err := s.householdRepo.FindByID(ctx, householdID)
	if err != nil {
		return PersonResponse{}, fmt.Errorf("household not found: %w", err)
	}

	person.HouseholdID = householdID
	person.Household = *household
	person.FirstName = req.FirstName
	person.LastName = req.LastName

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.personRepo.Update(txCtx, person); updateErr != nil {
			return fmt.Errorf("failed to update person: %w", updateErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdatePerson, id, req.FirstName+" "+req.LastName, req)
	})
	if err != nil {
		return PersonResponse{}, err
	}

	return toPersonResponse(*person), nil
}

func (s *personService) DeletePerson(ctx context.Context, userID, id string) (PersonResponse, error) {
	personID, err := uuid.Parse(id)
	if err != nil {
		return PersonResponse{}, fmt.Errorf("invalid person id: %w", err)
	}

	person, err := s.personRepo.FindByID(ctx, personID)
	if err != nil {
		return PersonResponse{}, fmt.Errorf("person not found: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.personRepo.Delete(txCtx, personID); deleteErr != nil {
			return fmt.Errorf("failed to delete person: %w", deleteErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionDeletePerson, id, person.FirstName+" "+person.LastName, nil)
	})
	if err != nil {
		return PersonResponse{}, err
	}

	return toPersonResponse(*person), nil
}

// --- Helpers ---

func toPersonResponse(p model.Person) PersonResponse {
	return PersonResponse{
		ID:            p.ID.String(),
		HouseholdID:   p.HouseholdID.String(),
		HouseholdName: p.Household.Name,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
	}
}
