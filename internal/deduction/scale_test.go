package deduction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScale_IsValid(t *testing.T) {
	require.NoError(t, DefaultScale().Validate())
}

func TestScaleValidate(t *testing.T) {
	bound := decimal.RequireFromString("5000")
	lower := decimal.RequireFromString("4000")

	tests := []struct {
		name  string
		scale Scale
	}{
		{"empty scale", Scale{}},
		{"tier without brackets", Scale{3: {}}},
		{"non-positive power tier", Scale{0: {{RatePerKM: d("0.5")}}}},
		{"last bracket bounded", Scale{3: {
			{UpperKM: &bound, RatePerKM: d("0.5")},
		}}},
		{"unbounded bracket before the last", Scale{3: {
			{RatePerKM: d("0.5")},
			{RatePerKM: d("0.4")},
		}}},
		{"bounds not increasing", Scale{3: {
			{UpperKM: &bound, RatePerKM: d("0.5")},
			{UpperKM: &lower, RatePerKM: d("0.4")},
			{RatePerKM: d("0.3")},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.scale.Validate(), ErrInvalidScale)
		})
	}
}

func TestNormalizePowerCV(t *testing.T) {
	scale := DefaultScale()

	got, err := NormalizePowerCV(5, scale)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	got, err = NormalizePowerCV(12, scale)
	require.NoError(t, err)
	assert.Equal(t, 7, got, "powers above the top tier clamp to it")

	_, err = NormalizePowerCV(2, scale)
	assert.ErrorIs(t, err, ErrUnknownFiscalPower)
}

func TestValidatePeriod(t *testing.T) {
	require.NoError(t, ValidatePeriod(2024, 1))
	require.NoError(t, ValidatePeriod(YearMin, 12))
	require.NoError(t, ValidatePeriod(YearMax, 6))

	assert.ErrorIs(t, ValidatePeriod(1999, 1), ErrInvalidPeriod)
	assert.ErrorIs(t, ValidatePeriod(2101, 1), ErrInvalidPeriod)
	assert.ErrorIs(t, ValidatePeriod(2024, 0), ErrInvalidPeriod)
	assert.ErrorIs(t, ValidatePeriod(2024, 13), ErrInvalidPeriod)
}
