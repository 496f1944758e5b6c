package deduction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMeal(t *testing.T) {
	cap := DefaultMealCap() // floor 5.20, ceiling 19.40

	tests := []struct {
		name string
		cost string
		want string
	}{
		{"below floor", "4.00", "0.00"},
		{"exactly at floor", "5.20", "0.00"},
		{"just above floor", "5.21", "5.21"},
		{"between floor and ceiling", "10.00", "10.00"},
		{"exactly at ceiling", "19.40", "19.40"},
		{"above ceiling", "25.00", "19.40"},
		{"zero cost", "0", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveMeal(d(tt.cost), cap)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestResolveMeal_ConfiguredCap(t *testing.T) {
	// The floor and ceiling are configuration, re-published every year.
	cap := MealCap{DailyFloor: d("5.20"), DailyCeiling: d("20.70")}

	got, err := ResolveMeal(d("4.00"), cap)
	require.NoError(t, err)
	assert.Equal(t, "0.00", got.StringFixed(2))

	got, err = ResolveMeal(d("10.00"), cap)
	require.NoError(t, err)
	assert.Equal(t, "10.00", got.StringFixed(2))

	got, err = ResolveMeal(d("25.00"), cap)
	require.NoError(t, err)
	assert.Equal(t, "20.70", got.StringFixed(2))
}

func TestResolveMeal_NegativeCost(t *testing.T) {
	_, err := ResolveMeal(d("-0.01"), DefaultMealCap())
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestResolveOther(t *testing.T) {
	got, err := ResolveOther(d("123.45"))
	require.NoError(t, err)
	assert.Equal(t, "123.45", got.StringFixed(2))

	_, err = ResolveOther(d("-5"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
