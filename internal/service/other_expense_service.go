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

type CreateOtherExpenseRequest struct {
	PersonID       string  `json:"person_id" binding:"required"`
	Year           int     `json:"year" binding:"required,gte=2000,lte=2100"`
	Description    string  `json:"description" binding:"required,max=500"`
	Amount         string  `json:"amount" binding:"required"` // Decimal string
	AttachmentPath *string `json:"attachment_path"`
}

type UpdateOtherExpenseRequest struct {
	PersonID       string  `json:"person_id" binding:"required"`
	Year           int     `json:"year" binding:"required,gte=2000,lte=2100"`
	Description    string  `json:"description" binding:"required,max=500"`
	Amount         string  `json:"amount" binding:"required"`
	AttachmentPath *string `json:"attachment_path"`
}

type OtherExpenseResponse struct {
	ID             string  `json:"id"`
	PersonID       string  `json:"person_id"`
	Year           int     `json:"year"`
	Description    string  `json:"description"`
	Amount         string  `json:"amount"`
	AttachmentPath *string `json:"attachment_path"`
}

// --- Interface ---

type OtherExpenseService interface {
	CreateExpense(ctx context.Context, userID string, req CreateOtherExpenseRequest) (OtherExpenseResponse, error)
	UpdateExpense(ctx context.Context, userID, id string, req UpdateOtherExpenseRequest) (OtherExpenseResponse, error)
	DeleteExpense(ctx context.Context, userID, id string) (OtherExpenseResponse, error)
}

type otherExpenseService struct {
	otherRepo  repository.OtherExpenseRepository
	personRepo repository.PersonRepository
	auditRepo  repository.AuditRepository
	txManager  repository.TransactionManager
	hub        *websocket.Hub
}

func NewOtherExpenseService(
	otherRepo repository.OtherExpenseRepository,
	personRepo repository.PersonRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) OtherExpenseService {
	return &otherExpenseService{
		otherRepo:  otherRepo,
		personRepo: personRepo,
		auditRepo:  auditRepo,
		txManager:  txManager,
		hub:        hub,
	}
}

// --- Implementation ---

func (s *otherExpenseService) CreateExpense(ctx context.Context, userID string, req CreateOtherExpenseRequest) (OtherExpenseResponse, error) {
	personID, amount, err := s.validate(ctx, req.PersonID, req.Year, req.Amount)
	if err != nil {
		return OtherExpenseResponse{}, err
	}

	expense := model.OtherExpense{
		PersonID:       personID,
		Year:           req.Year,
		Description:    req.Description,
		Amount:         amount,
		AttachmentPath: req.AttachmentPath,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.otherRepo.Create(txCtx, &expense); createErr != nil {
			return fmt.Errorf("failed to create expense: %w", createErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateOther, expense.ID.String(), req.Description, req)
	})
	if err != nil {
		return OtherExpenseResponse{}, err
	}

	s.notify("created", expense.PersonID, expense.Year)
	return toOtherExpenseResponse(expense), nil
}

func (s *otherExpenseService) UpdateExpense(ctx context.Context, userID, id string, req UpdateOtherExpenseRequest) (OtherExpenseResponse, error) {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return OtherExpenseResponse{}, fmt.Errorf("invalid expense id: %w", err)
	}

	expense, err := s.otherRepo.FindByID(ctx, expenseID)
	if err != nil {
		return OtherExpenseResponse{}, fmt.Errorf("expense not found: %w", err)
	}

	personID, amount, err := s.validate(ctx, req.PersonID, req.Year, req.Amount)
	if err != nil {
		return OtherExpenseResponse{}, err
	}

	expense.PersonID = personID
	expense.Year = req.Year
	expense.Description = req.Description
	expense.Amount = amount
	expense.AttachmentPath = req.AttachmentPath

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.otherRepo.Update(txCtx, expense); updateErr != nil {
			return fmt.Errorf("failed to update expense: %w", updateErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateOther, id, req.Description, req)
	})
	if err != nil {
		return OtherExpenseResponse{}, err
	}

	s.notify("updated", expense.PersonID, expense.Year)
	return toOtherExpenseResponse(*expense), nil
}

func (s *otherExpenseService) DeleteExpense(ctx context.Context, userID, id string) (OtherExpenseResponse, error) {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return OtherExpenseResponse{}, fmt.Errorf("invalid expense id: %w", err)
	}

	expense, err := s.otherRepo.FindByID(ctx, expenseID)
	if err != nil {
		return OtherExpenseResponse{}, fmt.Errorf("expense not found: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.otherRepo.Delete(txCtx, expenseID); deleteErr != nil {
			return fmt.Errorf("failed to delete expense: %w", deleteErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionDeleteOther, id, expense.Description, nil)
	})
	if err != nil {
		return OtherExpenseResponse{}, err
	}

	s.notify("deleted", expense.PersonID, expense.Year)
	return toOtherExpenseResponse(*expense), nil
}

// --- Helpers ---

func (s *otherExpenseService) validate(ctx context.Context, rawPersonID string, year int, rawAmount string) (uuid.UUID, decimal.Decimal, error) {
	personID, err := uuid.Parse(rawPersonID)
	if err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("invalid person_id: %w", err)
	}
	if err := deduction.ValidatePeriod(year, 1); err != nil {
		return uuid.Nil, decimal.Zero, err
	}
	if _, err := s.personRepo.FindByID(ctx, personID); err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("person not found: %w", err)
	}

	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("invalid amount: %w", err)
	}
	if _, err := deduction.ResolveOther(amount); err != nil {
		return uuid.Nil, decimal.Zero, fmt.Errorf("amount: %w", err)
	}
	return personID, amount, nil
}

func (s *otherExpenseService) notify(action string, personID uuid.UUID, year int) {
	if s.hub == nil {
		return
	}
	s.hub.Notify(websocket.Event{
		Kind:     "other",
		Action:   action,
		PersonID: personID.String(),
		Year:     year,
	})
}

func toOtherExpenseResponse(e model.OtherExpense) OtherExpenseResponse {
	return OtherExpenseResponse{
		ID:             e.ID.String(),
		PersonID:       e.PersonID.String(),
		Year:           e.Year,
		Description:    e.Description,
		Amount:         e.Amount.StringFixed(2),
		AttachmentPath: e.AttachmentPath,
	}
}
