package service

import (
	"context"
	"fmt"

	"fraisreels/internal/model"
	"fraisreels/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateVehicleRequest struct {
	PersonID string `json:"person_id" binding:"required"`
	Name     string `json:"name" binding:"required,max=255"`
	PowerCV  int    `json:"power_cv" binding:"required,min=1"`
}

type UpdateVehicleRequest struct {
	PersonID string `json:"person_id" binding:"required"`
	Name     string `json:"name" binding:"required,max=255"`
	PowerCV  int    `json:"power_cv" binding:"required,min=1"`
}

type VehicleResponse struct {
	ID         string `json:"id"`
	PersonID   string `json:"person_id"`
	PersonName string `json:"person_name,omitempty"`
	Name       string `json:"name"`
	PowerCV    int    `json:"power_cv"`
}

// --- Interface ---

type VehicleService interface {
	CreateVehicle(ctx context.Context, userID string, req CreateVehicleRequest) (VehicleResponse, error)
	GetVehicles(ctx context.Context) ([]VehicleResponse, error)
	UpdateVehicle(ctx context.Context, userID, id string, req UpdateVehicleRequest) (VehicleResponse, error)
	DeleteVehicle(ctx context.Context, userID, id string) (VehicleResponse, error)
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	personRepo  repository.PersonRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	personRepo repository.PersonRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		personRepo:  personRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Implementation ---

func (s *vehicleService) CreateVehicle(ctx context.Context, userID string, req CreateVehicleRequest) (VehicleResponse, error) {
	personID, err := uuid.Parse(req.PersonID)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("invalid person_id: %w", err)
	}

	person, err := s.personRepo.FindByID(ctx, personID)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("person not found: %w", err)
	}

	vehicle := model.Vehicle{
		PersonID: personID,
		Name:     req.Name,
		PowerCV:  req.PowerCV,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.vehicleRepo.Create(txCtx, &vehicle); createErr != nil {
			return fmt.Errorf("failed to create vehicle: %w", createErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionCreateVehicle, vehicle.ID.String(), req.Name, req)
	})
	if err != nil {
		return VehicleResponse{}, err
	}

	vehicle.Person = *person
	return toVehicleResponse(vehicle), nil
}

func (s *vehicleService) GetVehicles(ctx context.Context) ([]VehicleResponse, error) {
	vehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicles: %w", err)
	}

	result := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		result = append(result, toVehicleResponse(v))
	}
	return result, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, userID, id string, req UpdateVehicleRequest) (VehicleResponse, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("invalid vehicle id: %w", err)
	}
	personID, err := uuid.Parse(req.PersonID)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("invalid person_id: %w", err)
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("vehicle not found: %w", err)
	}
	person, err := s.personRepo.FindByID(ctx, personID)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("person not found: %w", err)
	}

	vehicle.PersonID = personID
	vehicle.Person = *person
	vehicle.Name = req.Name
	vehicle.PowerCV = req.PowerCV

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.vehicleRepo.Update(txCtx, vehicle); updateErr != nil {
			return fmt.Errorf("failed to update vehicle: %w", updateErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateVehicle, id, req.Name, req)
	})
	if err != nil {
		return VehicleResponse{}, err
	}

	return toVehicleResponse(*vehicle), nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, userID, id string) (VehicleResponse, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("invalid vehicle id: %w", err)
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("vehicle not found: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.vehicleRepo.Delete(txCtx, vehicleID); deleteErr != nil {
			return fmt.Errorf("failed to delete vehicle: %w", deleteErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionDeleteVehicle, id, vehicle.Name, nil)
	})
	if err != nil {
		return VehicleResponse{}, err
	}

	return toVehicleResponse(*vehicle), nil
}

// --- Helpers ---

func toVehicleResponse(v model.Vehicle) VehicleResponse {
	resp := VehicleResponse{
		ID:       v.ID.String(),
		PersonID: v.PersonID.String(),
		Name:     v.Name,
		PowerCV:  v.PowerCV,
	}
	if v.Person.FirstName != "" || v.Person.LastName != "" {
		resp.PersonName = v.Person.FirstName + " " + v.Person.LastName
	}
	return resp
}
