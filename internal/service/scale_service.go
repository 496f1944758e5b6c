package service

import (
	"context"
	"fmt"

	"fraisreels/internal/deduction"
	"fraisreels/internal/model"
	"fraisreels/internal/repository"
	"fraisreels/internal/websocket"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type ScaleBracketPayload struct {
	UpperKMBound   *string `json:"upper_km_bound"` // Decimal string, null = unbounded
	RatePerKM      string  `json:"rate_per_km" binding:"required"`
	FixedAllowance string  `json:"fixed_allowance" binding:"required"`
}

type UpdateScaleTierRequest struct {
	Brackets []ScaleBracketPayload `json:"brackets" binding:"required,min=1,dive"`
}

type ScaleBracketResponse struct {
	UpperKMBound   *string `json:"upper_km_bound"`
	RatePerKM      string  `json:"rate_per_km"`
	FixedAllowance string  `json:"fixed_allowance"`
}

type ScaleTierResponse struct {
	PowerCV  int                    `json:"power_cv"`
	Brackets []ScaleBracketResponse `json:"brackets"`
}

// --- Interface ---

type ScaleService interface {
	GetScale(ctx context.Context) ([]ScaleTierResponse, error)
	// Snapshot loads the persisted scale into the engine's form. Callers
	// invoke it once per computation inside their read transaction, so a
	// concurrent scale edit never bleeds into an in-flight aggregation.
	Snapshot(ctx context.Context) (deduction.Scale, error)
	UpdateTier(ctx context.Context, userID string, powerCV int, req UpdateScaleTierRequest) (ScaleTierResponse, error)
}

type scaleService struct {
	scaleRepo repository.ScaleRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	hub       *websocket.Hub
}

func NewScaleService(
	scaleRepo repository.ScaleRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *websocket.Hub,
) ScaleService {
	return &scaleService{
		scaleRepo: scaleRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		hub:       hub,
	}
}

// --- Implementation ---

func (s *scaleService) GetScale(ctx context.Context) ([]ScaleTierResponse, error) {
	scale, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ScaleTierResponse, 0, len(scale))
	for _, power := range scale.PowerTiers() {
		tier := ScaleTierResponse{PowerCV: power}
		for _, b := range scale[power] {
			bracket := ScaleBracketResponse{
				RatePerKM:      b.RatePerKM.String(),
				FixedAllowance: b.FixedAllowance.StringFixed(2),
			}
			if b.UpperKM != nil {
				bound := b.UpperKM.StringFixed(2)
				bracket.UpperKMBound = &bound
			}
			tier.Brackets = append(tier.Brackets, bracket)
		}
		result = append(result, tier)
	}
	return result, nil
}

func (s *scaleService) Snapshot(ctx context.Context) (deduction.Scale, error) {
	rows, err := s.scaleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mileage scale: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("mileage scale not configured: %w", deduction.ErrInvalidScale)
	}

	scale := deduction.Scale{}
	for _, row := range rows {
		scale[row.PowerCV] = append(scale[row.PowerCV], deduction.Bracket{
			UpperKM:        row.UpperKMBound,
			RatePerKM:      row.RatePerKM,
			FixedAllowance: row.FixedAllowance,
		})
	}
	if err := scale.Validate(); err != nil {
		return nil, fmt.Errorf("stored mileage scale is malformed: %w", err)
	}
	return scale, nil
}

func (s *scaleService) UpdateTier(ctx context.Context, userID string, powerCV int, req UpdateScaleTierRequest) (ScaleTierResponse, error) {
	if powerCV < 1 {
		return ScaleTierResponse{}, fmt.Errorf("power tier: %w", deduction.ErrUnknownFiscalPower)
	}

	brackets := make([]deduction.Bracket, 0, len(req.Brackets))
	rows := make([]model.MileageScaleBracket, 0, len(req.Brackets))
	for position, payload := range req.Brackets {
		rate, err := decimal.NewFromString(payload.RatePerKM)
		if err != nil {
			return ScaleTierResponse{}, fmt.Errorf("invalid rate_per_km: %w", err)
		}
		fixed, err := decimal.NewFromString(payload.FixedAllowance)
		if err != nil {
			return ScaleTierResponse{}, fmt.Errorf("invalid fixed_allowance: %w", err)
		}

		var bound *decimal.Decimal
		if payload.UpperKMBound != nil {
			parsed, parseErr := decimal.NewFromString(*payload.UpperKMBound)
			if parseErr != nil {
				return ScaleTierResponse{}, fmt.Errorf("invalid upper_km_bound: %w", parseErr)
			}
			bound = &parsed
		}

		brackets = append(brackets, deduction.Bracket{UpperKM: bound, RatePerKM: rate, FixedAllowance: fixed})
		rows = append(rows, model.MileageScaleBracket{
			PowerCV:        powerCV,
			Position:       position,
			UpperKMBound:   bound,
			RatePerKM:      rate,
			FixedAllowance: fixed,
		})
	}

	// Reject a tier the engine could not serve before it ever hits storage.
	if err := (deduction.Scale{powerCV: brackets}).Validate(); err != nil {
		return ScaleTierResponse{}, err
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if replaceErr := s.scaleRepo.ReplaceTier(txCtx, powerCV, rows); replaceErr != nil {
			return fmt.Errorf("failed to replace scale tier: %w", replaceErr)
		}
		return writeAudit(txCtx, s.auditRepo, userID, model.ActionUpdateScale, fmt.Sprintf("%d", powerCV), fmt.Sprintf("%d CV", powerCV), req)
	})
	if err != nil {
		return ScaleTierResponse{}, err
	}

	if s.hub != nil {
		s.hub.Notify(websocket.Event{Kind: "scale", Action: "updated"})
	}

	tier := ScaleTierResponse{PowerCV: powerCV}
	for _, b := range brackets {
		bracket := ScaleBracketResponse{
			RatePerKM:      b.RatePerKM.String(),
			FixedAllowance: b.FixedAllowance.StringFixed(2),
		}
		if b.UpperKM != nil {
			bound := b.UpperKM.StringFixed(2)
			bracket.UpperKMBound = &bound
		}
		tier.Brackets = append(tier.Brackets, bracket)
	}
	return tier, nil
}
