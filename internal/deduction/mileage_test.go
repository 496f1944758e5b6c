package deduction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestResolveMileage_BracketSelection(t *testing.T) {
	scale := DefaultScale()

	tests := []struct {
		name    string
		powerCV int
		km      string
		want    string
	}{
		// 3 CV: 0.529 up to 5000, then 0.316 km + 1065, then 0.370
		{"3cv short distance", 3, "1000", "529.00"},
		{"3cv exactly on first bound", 3, "5000", "2645.00"},
		{"3cv one km past first bound", 3, "5001", "2645.32"},
		{"3cv middle bracket", 3, "10000", "4225.00"},
		{"3cv exactly on second bound", 3, "20000", "7385.00"},
		{"3cv past second bound", 3, "20001", "7400.37"},
		// 5 CV
		{"5cv short distance", 5, "4000", "2544.00"},
		{"5cv middle bracket", 5, "20000", "8535.00"},
		{"5cv unbounded bracket", 5, "25000", "10675.00"},
		// zero distance is a valid input, not an error
		{"zero km", 5, "0", "0.00"},
		{"fractional km", 5, "1500.50", "954.32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveMileage(tt.powerCV, d(tt.km), scale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2), "power %d CV, %s km", tt.powerCV, tt.km)
		})
	}
}

func TestResolveMileage_WholeDistanceUsesOneBracket(t *testing.T) {
	// The scale is not progressive: crossing a bound switches the formula
	// for the entire distance, it does not stack brackets.
	scale := DefaultScale()

	below, err := ResolveMileage(5, d("5000"), scale)
	require.NoError(t, err)
	above, err := ResolveMileage(5, d("5001"), scale)
	require.NoError(t, err)

	// 5000 * 0.636 vs 5001 * 0.357 + 1395
	assert.Equal(t, "3180.00", below.StringFixed(2))
	assert.Equal(t, "3180.36", above.StringFixed(2))
}

func TestResolveMileage_PowerClamp(t *testing.T) {
	scale := DefaultScale()

	nine, err := ResolveMileage(9, d("8000"), scale)
	require.NoError(t, err)
	seven, err := ResolveMileage(7, d("8000"), scale)
	require.NoError(t, err)
	assert.True(t, nine.Equal(seven), "powers above the top tier use the top tier's brackets")
}

func TestResolveMileage_UnknownPower(t *testing.T) {
	scale := DefaultScale()

	_, err := ResolveMileage(2, d("1000"), scale)
	assert.ErrorIs(t, err, ErrUnknownFiscalPower)

	_, err = ResolveMileage(0, d("1000"), scale)
	assert.ErrorIs(t, err, ErrUnknownFiscalPower)

	_, err = ResolveMileage(-3, d("1000"), scale)
	assert.ErrorIs(t, err, ErrUnknownFiscalPower)
}

func TestResolveMileage_NegativeKM(t *testing.T) {
	_, err := ResolveMileage(5, d("-1"), DefaultScale())
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestResolveMileage_Deterministic(t *testing.T) {
	scale := DefaultScale()
	first, err := ResolveMileage(4, d("12345.67"), scale)
	require.NoError(t, err)
	second, err := ResolveMileage(4, d("12345.67"), scale)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}
