package service

import (
	"context"
	"testing"

	"fraisreels/internal/deduction"
	"fraisreels/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScaleRepo struct {
	rows []model.MileageScaleBracket
}

func (f *fakeScaleRepo) ListAll(ctx context.Context) ([]model.MileageScaleBracket, error) {
	return f.rows, nil
}
func (f *fakeScaleRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), nil
}
func (f *fakeScaleRepo) Insert(ctx context.Context, brackets []model.MileageScaleBracket) error {
	f.rows = append(f.rows, brackets...)
	return nil
}
func (f *fakeScaleRepo) ReplaceTier(ctx context.Context, powerCV int, brackets []model.MileageScaleBracket) error {
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.PowerCV != powerCV {
			kept = append(kept, row)
		}
	}
	f.rows = append(kept, brackets...)
	return nil
}

type fakeAuditRepo struct {
	entries []model.AuditLog
}

func (f *fakeAuditRepo) Log(ctx context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}
func (f *fakeAuditRepo) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	return f.entries, int64(len(f.entries)), nil
}

func seededScaleRepo() *fakeScaleRepo {
	repo := &fakeScaleRepo{}
	scale := deduction.DefaultScale()
	for _, power := range scale.PowerTiers() {
		for position, bracket := range scale[power] {
			repo.rows = append(repo.rows, model.MileageScaleBracket{
				PowerCV:        power,
				Position:       position,
				UpperKMBound:   bracket.UpperKM,
				RatePerKM:      bracket.RatePerKM,
				FixedAllowance: bracket.FixedAllowance,
			})
		}
	}
	return repo
}

func strPtr(s string) *string { return &s }

func TestScaleService_Snapshot(t *testing.T) {
	svc := NewScaleService(seededScaleRepo(), &fakeAuditRepo{}, &fakeTxManager{}, nil)

	scale, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.NoError(t, scale.Validate())
	assert.Equal(t, []int{3, 4, 5, 6, 7}, scale.PowerTiers())

	// The round-trip through storage keeps computations intact.
	amount, err := deduction.ResolveMileage(5, decimal.RequireFromString("5000"), scale)
	require.NoError(t, err)
	assert.Equal(t, "3180.00", amount.StringFixed(2))
}

func TestScaleService_Snapshot_Empty(t *testing.T) {
	svc := NewScaleService(&fakeScaleRepo{}, &fakeAuditRepo{}, &fakeTxManager{}, nil)

	_, err := svc.Snapshot(context.Background())
	assert.ErrorIs(t, err, deduction.ErrInvalidScale)
}

func TestScaleService_GetScale_OrdersTiersAndBrackets(t *testing.T) {
	svc := NewScaleService(seededScaleRepo(), &fakeAuditRepo{}, &fakeTxManager{}, nil)

	tiers, err := svc.GetScale(context.Background())
	require.NoError(t, err)
	require.Len(t, tiers, 5)
	assert.Equal(t, 3, tiers[0].PowerCV)
	require.Len(t, tiers[0].Brackets, 3)
	require.NotNil(t, tiers[0].Brackets[0].UpperKMBound)
	assert.Equal(t, "5000.00", *tiers[0].Brackets[0].UpperKMBound)
	assert.Nil(t, tiers[0].Brackets[2].UpperKMBound, "last bracket is unbounded")
}

func TestScaleService_UpdateTier(t *testing.T) {
	repo := seededScaleRepo()
	audit := &fakeAuditRepo{}
	svc := NewScaleService(repo, audit, &fakeTxManager{}, nil)

	tier, err := svc.UpdateTier(context.Background(), "", 5, UpdateScaleTierRequest{
		Brackets: []ScaleBracketPayload{
			{UpperKMBound: strPtr("6000"), RatePerKM: "0.650", FixedAllowance: "0"},
			{RatePerKM: "0.440", FixedAllowance: "0"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, tier.PowerCV)
	require.Len(t, tier.Brackets, 2)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.ActionUpdateScale, audit.entries[0].Action)

	scale, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, scale[5], 2)

	// Other tiers untouched
	require.Len(t, scale[3], 3)
}

func TestScaleService_UpdateTier_RejectsMalformedTier(t *testing.T) {
	repo := seededScaleRepo()
	before := len(repo.rows)
	svc := NewScaleService(repo, &fakeAuditRepo{}, &fakeTxManager{}, nil)

	// Last bracket must be unbounded
	_, err := svc.UpdateTier(context.Background(), "", 5, UpdateScaleTierRequest{
		Brackets: []ScaleBracketPayload{
			{UpperKMBound: strPtr("6000"), RatePerKM: "0.650", FixedAllowance: "0"},
		},
	})
	assert.ErrorIs(t, err, deduction.ErrInvalidScale)
	assert.Len(t, repo.rows, before, "storage untouched on rejection")

	_, err = svc.UpdateTier(context.Background(), "", 5, UpdateScaleTierRequest{
		Brackets: []ScaleBracketPayload{
			{RatePerKM: "not a number", FixedAllowance: "0"},
		},
	})
	assert.Error(t, err)
}
