package service

import (
	"context"
	"fmt"

	"fraisreels/internal/deduction"
	"fraisreels/internal/model"
	"fraisreels/internal/repository"
	"fraisreels/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateMealExpenseRequest struct {
	PersonID string `json:"person_id" binding:"required"`
	Year     int    `json:"year" binding:"required,gte=2000,lte=2100"`
	Month    int    `json:"month" binding:"required,min=1,max=12"`
	MealCost string `json:"meal_cost" binding:"required"` // Decimal string, e.g. "12.80"
}

type UpdateMealExpenseRequest struct {
	PersonID string `json:"person_id" binding:"required"`
	Year     int    `json:"year" binding:"required,gte=2000,lte=2100"`
	Month    int    `json:"month" binding:"required,min=1,max=12"`
	MealCost string `json:"meal_cost" binding:"required"`
}

type MealExpenseResponse struct {
	ID       string `json:"id"`
	PersonID string `json:"person_id"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	MealCost string `json:"meal_cost"`
}

// --- Interface ---

type MealService interface {
	CreateExpense(ctx context.Context, userID string, req CreateMealExpenseRequest) (MealExpenseResponse, error)
	UpdateExpense(ctx context.Context, userID, id string, req UpdateMealExpenseRequest) (MealExpenseResponse, error)
	DeleteExpense(ctx context.Context, userID, id string) (MealExpenseResponse, error)
}

type mealService struct {
	mealRepo   repository.MealRepository
	personRepo repository.PersonRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
	hub        *websocket.Hub
}

func NewMealService(
	mealRepo repository.MealRepository,
	personRepo repository.PersonRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) MealService {
	return &mealService{
		mealRepo:   mealRepo,
		personRepo: personRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		hub:        hub,
	}
}

// --- Implementation ---

func (s *mealService) CreateExpense(ctx context.Context, userID string, req CreateMealExpenseRequest) (MealExpenseResponse, error) {
	personID, cost, err := s.validate(ctx, req.PersonID, req.Year, req.Month, req.MealCost)
	if err != nil {
		return MealExpenseResponse{}, err
	}

	expense := model.MealExpense{
		PersonID: personID,
		Year:     req.Year,
		Month:    req.Month,
		MealCost: cost,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.mealRepo.Create(txCtx, &expense); createErr != nil {
			return fmt.Errorf("failed to create meal expense: %w", createErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateMeal, expense.ID.String(), "", req)
	})
	if err != nil {
		return MealExpenseResponse{}, err
	}

	s.notify("created", expense.PersonID, expense.Year)
	return toMealExpenseResponse(expense), nil
}

func (s *mealService) UpdateExpense(ctx context.Context, userID, id string, req UpdateMealExpenseRequest) (MealExpenseResponse, error) {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return MealExpenseResponse{}, fmt.Errorf("invalid expense id: %w", err)
	}

	expense, err := s.mealRepo.FindByID(ctx, expenseID)
	if err != nil {
		return MealExpenseResponse{}, fmt.Errorf("meal expense not found: %w", err)
	}

	personID, cost, err := s.validate(ctx, req.PersonID, req.Year, req.Month, req.MealCost)
	if err != nil {
		return MealExpenseResponse{}, err
	}

	expense.PersonID = personID
	expense.Year = req.Year
	expense.Month = req.Month
	expense.MealCost = cost

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.mealRepo.Update(txCtx, expense); updateErr != nil {
			return fmt.Errorf("failed to update meal expense: %w", updateErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateMeal, id, "", req)
	})
	if err != nil {
		return MealExpenseResponse{}, err
	}

	s.notify("updated", expense.PersonID, expense.Year)
	return toMealExpenseResponse(*expense), nil
}

func (s *mealService) DeleteExpense(ctx context.Context, userID, id string) (MealExpenseResponse, error) {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return MealExpenseResponse{}, fmt.Errorf("invalid expense id: %w", err)
	}

	expense, err := s.mealRepo.FindByID(ctx, expenseID)
	if err != nil {
		return MealExpenseResponse{}, fmt.Errorf("meal expense not found: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.mealRepo.Delete(txCtx, expenseID); deleteErr != nil {
			return fmt.Errorf("failed to delete meal expense: %w", deleteErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionDeleteMeal, id, "", nil)
	})
	if err != nil {
		return MealExpenseResponse{}, err
	}

	s.notify("deleted", expense.PersonID, expense.Year)
	return toMealExpenseResponse(*expense), nil
}

// --- Helpers ---

func (s *mealService) validate(ctx context.Context, rawPersonID string, year, month int, rawCost string) (uuid.UUID, decimal.Decimal, error) {
	personID, err := uuid.Parse(rawPersonID)
	if err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("invalid person_id: %w", err)
	}
	if err := deduction.ValidatePeriod(year, month); err != nil {
		return uuid.Nil, decimal.Zero, err
	}
	if _, err := s.personRepo.FindByID(ctx, personID); err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("person not found: %w", err)
	}

	cost, err := decimal.NewFromString(rawCost)
	if err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("invalid meal_cost: %w", err)
	}
	if cost.IsNegative() {
		return uuid.Nil, decimal.Zero, fmt.Errorf("meal_cost: %w", deduction.ErrInvalidAmount)
	}
	return personID, cost, nil
}

func (s *mealService) notify(action string, personID uuid.UUID, year int) {
	if s.hub == nil {
		return
	}
	s.hub.Notify(websocket.Event{
		Kind:     "meal",
		Action:   action,
		PersonID: personID.String(),
		Year:     year,
	})
}

func toMealExpenseResponse(e model.MealExpense) MealExpenseResponse {
	return MealExpenseResponse{
		ID:       e.ID.String(),
		PersonID: e.PersonID.String(),
		Year:     e.Year,
		Month:    e.Month,
		MealCost: e.MealCost.StringFixed(2),
	}
}
