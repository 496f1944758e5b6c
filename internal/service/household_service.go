package service

import (
	"context"
	"fmt"
	"time"

	"fraisreels/internal/model"
	"fraisreels/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateHouseholdRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type UpdateHouseholdRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

type HouseholdResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type HouseholdService interface {
	CreateHousehold(ctx context.Context, userID string, req CreateHouseholdRequest) (HouseholdResponse, error)
	GetHouseholds(ctx context.Context) ([]HouseholdResponse, error)
	UpdateHousehold(ctx context.Context, userID, id string, req UpdateHouseholdRequest) (HouseholdResponse, error)
	DeleteHousehold(ctx context.Context, userID, id string) (HouseholdResponse, error)
}

type householdService struct {
	householdRepo repository.HouseholdRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
}

func NewHouseholdService(
	householdRepo repository.HouseholdRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) HouseholdService {
	return &householdService{
		householdRepo: householdRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
	}
}

// --- Implementation ---

func (s *householdService) CreateHousehold(ctx context.Context, userID string, req CreateHouseholdRequest) (HouseholdResponse, error) {
	household := model.Household{Name: req.Name}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.householdRepo.Create(txCtx, &household); createErr != nil {
			return fmt.Errorf("failed to create household: %w", createErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateHousehold, household.ID.String(), household.Name, req)
	})
	if err != nil {
		return HouseholdResponse{}, err
	}

	return toHouseholdResponse(household), nil
}

func (s *householdService) GetHouseholds(ctx context.Context) ([]HouseholdResponse, error) {
	households, err := s.householdRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch households: %w", err)
	}

	result := make([]HouseholdResponse, 0, len(households))
	for _, h := range households {
		result = append(result, toHouseholdResponse(h))
	}
	return result, nil
}

func (s *householdService) UpdateHousehold(ctx context.Context, userID, id string, req UpdateHouseholdRequest) (HouseholdResponse, error) {
	householdID, err := uuid.Parse(id)
	if err != nil {
		return HouseholdResponse{}, fmt.Errorf("invalid household id: %w", err)
	}

	household, err := s.householdRepo.FindByID(ctx, householdID)
	if err != nil {
		return HouseholdResponse{}, fmt.Errorf("household not found: %w", err)
	}
	household.Name = req.Name

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.householdRepo.Update(txCtx, household); updateErr != nil {
			return fmt.Errorf("failed to update household: %w", updateErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateHousehold, household.ID.String(), household.Name, req)
	})
	if err != nil {
		return HouseholdResponse{}, err
	}

	return toHouseholdResponse(*household), nil
}

func (s *householdService) DeleteHousehold(ctx context.Context, userID, id string) (HouseholdResponse, error) {
	householdID, err := uuid.Parse(id)
	if err != nil {
		return HouseholdResponse{}, fmt.Errorf("invalid household id: %w", err)
	}

	household, err := s.householdRepo.FindByID(ctx, householdID)
	if err != nil {
		return HouseholdResponse{}, fmt.Errorf("household not found: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.householdRepo.Delete(txCtx, householdID); deleteErr != nil {
			return fmt.Errorf("failed to delete household: %w", deleteErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionDeleteHousehold, id, household.Name, nil)
	})
	if err != nil {
		return HouseholdResponse{}, err
	}

	return toHouseholdResponse(*household), nil
}

// --- Helpers ---

func toHouseholdResponse(h model.Household) HouseholdResponse {
	return HouseholdResponse{
		ID:        h.ID.String(),
		Name:      h.Name,
		CreatedAt: h.CreatedAt.Format(time.RFC3339),
	}
}
