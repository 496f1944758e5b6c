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

type CreateMileageEntryRequest struct {
	PersonID  string `json:"person_id" binding:"required"`
	VehicleID string `json:"vehicle_id" binding:"required"`
	Year      int    `json:"year" binding:"required,gte=2000,lte=2100"`
	Month     int    `json:"month" binding:"required,min=1,max=12"`
	KM        string `json:"km" binding:"required"` // Decimal string, e.g. "420.50"
}

type UpdateMileageEntryRequest struct {
	PersonID  string `json:"person_id" binding:"required"`
	VehicleID string `json:"vehicle_id" binding:"required"`
	Year      int    `json:"year" binding:"required,gte=2000,lte=2100"`
	Month     int    `json:"month" binding:"required,min=1,max=12"`
	KM        string `json:"km" binding:"required"`
}

type MileageEntryResponse struct {
	ID          string `json:"id"`
	PersonID    string `json:"person_id"`
	VehicleID   string `json:"vehicle_id"`
	VehicleName string `json:"vehicle_name,omitempty"`
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	KM          string `json:"km"`
}

// --- Interface ---

type MileageService interface {
	CreateEntry(ctx context.Context, userID string, req CreateMileageEntryRequest) (MileageEntryResponse, error)
	UpdateEntry(ctx context.Context, userID, id string, req UpdateMileageEntryRequest) (MileageEntryResponse, error)
	DeleteEntry(ctx context.Context, userID, id string) (MileageEntryResponse, error)
}

type mileageService struct {
	mileageRepo repository.MileageRepository
	personRepo  repository.PersonRepository
	vehicleRepo repository.VehicleRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	hub         *websocket.Hub
}

func NewMileageService(
	mileageRepo repository.MileageRepository,
	personRepo repository.PersonRepository,
	vehicleRepo repository.VehicleRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) MileageService {
	return &mileageService{
		mileageRepo: mileageRepo,
		personRepo:  personRepo,
		vehicleRepo: vehicleRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

// --- Implementation ---

func (s *mileageService) CreateEntry(ctx context.Context, userID string, req CreateMileageEntryRequest) (MileageEntryResponse, error) {
	personID, vehicleID, km, err := s.validate(ctx, req.PersonID, req.VehicleID, req.Year, req.Month, req.KM)
	if err != nil {
		return MileageEntryResponse{}, err
	}

	entry := model.MileageEntry{
		PersonID:  personID,
		VehicleID: vehicleID,
		Year:      req.Year,
		Month:     req.Month,
		KM:        km,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.mileageRepo.Create(txCtx, &entry); createErr != nil {
			return fmt.Errorf("failed to create mileage entry: %w", createErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateMileage, entry.ID.String(), "", req)
	})
	if err != nil {
		return MileageEntryResponse{}, err
	}

	s.notify("created", entry.PersonID, entry.Year)
	return toMileageEntryResponse(entry), nil
}

func (s *mileageService) UpdateEntry(ctx context.Context, userID, id string, req UpdateMileageEntryRequest) (MileageEntryResponse, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return MileageEntryResponse{}, fmt.Errorf("invalid entry id: %w", err)
	}

	entry, err := s.mileageRepo.FindByID(ctx, entryID)
	if err != nil {
		return MileageEntryResponse{}, fmt.Errorf("mileage entry not found: %w", err)
	}

	personID, vehicleID, km, err := s.validate(ctx, req.PersonID, req.VehicleID, req.Year, req.Month, req.KM)
	if err != nil {
		return MileageEntryResponse{}, err
	}

	entry.PersonID = personID
	entry.VehicleID = vehicleID
	entry.Year = req.Year
	entry.Month = req.Month
	entry.KM = km

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.mileageRepo.Update(txCtx, entry); updateErr != nil {
			return fmt.Errorf("failed to update mileage entry: %w", updateErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateMileage, id, "", req)
	})
	if err != nil {
		return MileageEntryResponse{}, err
	}

	s.notify("updated", entry.PersonID, entry.Year)
	return toMileageEntryResponse(*entry), nil
}

func (s *mileageService) DeleteEntry(ctx context.Context, userID, id string) (MileageEntryResponse, error) {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return MileageEntryResponse{}, fmt.Errorf("invalid entry id: %w", err)
	}

	entry, err := s.mileageRepo.FindByID(ctx, entryID)
	if err != nil {
		return MileageEntryResponse{}, fmt.Errorf("mileage entry not found: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.mileageRepo.Delete(txCtx, entryID); deleteErr != nil {
			return fmt.Errorf("failed to delete mileage entry: %w", deleteErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionDeleteMileage, id, "", nil)
	})
	if err != nil {
		return MileageEntryResponse{}, err
	}

	s.notify("deleted", entry.PersonID, entry.Year)
	return toMileageEntryResponse(*entry), nil
}

// --- Helpers ---

// validate parses the referenced IDs, checks both resources exist, and
// parses the distance. The period check mirrors the engine's domain rule.
func (s *mileageService) validate(ctx context.Context, rawPersonID, rawVehicleID string, year, month int, rawKM string) (uuid.UUID, uuid.UUID, decimal.Decimal, error) {
	personID, err := uuid.Parse(rawPersonID)
	if err != nil {
		return uuid.Nil, uuid.Nil, decimal.Zero, fmt.Errorf("invalid person_id: %w", err)
	}
	vehicleID, err := uuid.Parse(rawVehicleID)
	if err != nil {
		return uuid.Nil, uuid.Nil, decimal.Zero, fmt.Errorf("invalid vehicle_id: %w", err)
	}
	if err := deduction.ValidatePeriod(year, month); err != nil {
		return uuid.Nil, uuid.Nil, decimal.Zero, err
	}

	if _, err := s.personRepo.FindByID(ctx, personID); err != nil {
		return uuid.Nil, uuid.Nil, decimal.Zero, fmt.Errorf("person not found: %w", err)
	}
	if _, err := s.vehicleRepo.FindByID(ctx, vehicleID); err != nil {
		return uuid.Nil, uuid.Nil, decimal.Zero, fmt.Errorf("vehicle not found: %w", err)
	}

	km, err := decimal.NewFromString(rawKM)
	if err != nil {
		return uuid.Nil, uuid.Nil, decimal.Zero, fmt.Errorf("invalid km: %w", err)
	}
	if km.IsNegative() {
		return uuid.Nil, uuid.Nil, decimal.Zero, fmt.Errorf("km: %w", deduction.ErrInvalidAmount)
	}
	return personID, vehicleID, km, nil
}

func (s *mileageService) notify(action string, personID uuid.UUID, year int) {
	if s.hub == nil {
		return
	}
	s.hub.Notify(websocket.Event{
		Kind:     "mileage",
		Action:   action,
		PersonID: personID.String(),
		Year:     year,
	})
}

func toMileageEntryResponse(e model.MileageEntry) MileageEntryResponse {
	return MileageEntryResponse{
		ID:          e.ID.String(),
		PersonID:    e.PersonID.String(),
		VehicleID:   e.VehicleID.String(),
		VehicleName: e.Vehicle.Name,
		Year:        e.Year,
		Month:       e.Month,
		KM:          e.KM.StringFixed(2),
	}
}
