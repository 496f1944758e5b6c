package deduction

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAnnualDetail_NoEntries(t *testing.T) {
	detail, err := ComputeAnnualDetail(2024, nil, nil, nil, nil, DefaultScale(), DefaultMealCap())
	require.NoError(t, err)

	assert.Empty(t, detail.VehicleDeductions)
	assert.Equal(t, "0.00", detail.MileageTotalKM.StringFixed(2))
	assert.Equal(t, "0.00", detail.MileageDeductionTotal.StringFixed(2))
	assert.Equal(t, "0.00", detail.MealsDeductionTotal.StringFixed(2))
	assert.Equal(t, "0.00", detail.OtherExpensesTotal.StringFixed(2))
	assert.Equal(t, "0.00", detail.TotalDeduction.StringFixed(2))
}

func TestComputeAnnualDetail_SingleVehicleYear(t *testing.T) {
	clio := VehicleInfo{ID: uuid.New(), Name: "Clio", PowerCV: 5}

	detail, err := ComputeAnnualDetail(2024,
		[]VehicleInfo{clio},
		[]MileageRow{
			{VehicleID: clio.ID, Year: 2024, Month: 1, KM: d("800")},
			{VehicleID: clio.ID, Year: 2024, Month: 2, KM: d("700.50")},
		},
		[]MealRow{
			{Year: 2024, Month: 1, Cost: d("10.00")},
			{Year: 2024, Month: 1, Cost: d("25.00")},
			{Year: 2024, Month: 2, Cost: d("4.00")},
		},
		[]OtherRow{
			{Description: "union dues", Amount: d("120.00")},
			{Description: "work boots", Amount: d("35.55")},
		},
		DefaultScale(), DefaultMealCap())
	require.NoError(t, err)

	require.Len(t, detail.VehicleDeductions, 1)
	vd := detail.VehicleDeductions[0]
	assert.Equal(t, clio.ID, vd.VehicleID)
	assert.Equal(t, "Clio", vd.VehicleName)
	assert.Equal(t, "1500.50", vd.TotalKM.StringFixed(2))
	// 1500.50 km at 0.636
	assert.Equal(t, "954.32", vd.Deduction.StringFixed(2))

	assert.Equal(t, "1500.50", detail.MileageTotalKM.StringFixed(2))
	assert.Equal(t, "954.32", detail.MileageDeductionTotal.StringFixed(2))
	// 10.00 kept, 25.00 capped at 19.40, 4.00 under the floor
	assert.Equal(t, "29.40", detail.MealsDeductionTotal.StringFixed(2))
	assert.Equal(t, "155.55", detail.OtherExpensesTotal.StringFixed(2))
	assert.Equal(t, "1139.27", detail.TotalDeduction.StringFixed(2))
}

func TestComputeAnnualDetail_SameMonthRowsAreAdditive(t *testing.T) {
	van := VehicleInfo{ID: uuid.New(), Name: "Kangoo", PowerCV: 3}

	detail, err := ComputeAnnualDetail(2024,
		[]VehicleInfo{van},
		[]MileageRow{
			{VehicleID: van.ID, Year: 2024, Month: 3, KM: d("3000")},
			{VehicleID: van.ID, Year: 2024, Month: 3, KM: d("2500")},
		},
		nil, nil, DefaultScale(), DefaultMealCap())
	require.NoError(t, err)

	// 5500 km lands in the middle bracket: 5500 * 0.316 + 1065
	require.Len(t, detail.VehicleDeductions, 1)
	assert.Equal(t, "5500.00", detail.VehicleDeductions[0].TotalKM.StringFixed(2))
	assert.Equal(t, "2803.00", detail.VehicleDeductions[0].Deduction.StringFixed(2))
}

func TestComputeAnnualDetail_VehiclesResolvedIndependently(t *testing.T) {
	first := VehicleInfo{ID: uuid.New(), Name: "Clio", PowerCV: 5}
	second := VehicleInfo{ID: uuid.New(), Name: "208", PowerCV: 4}

	detail, err := ComputeAnnualDetail(2024,
		[]VehicleInfo{first, second},
		[]MileageRow{
			{VehicleID: first.ID, Year: 2024, Month: 1, KM: d("4000")},
			{VehicleID: second.ID, Year: 2024, Month: 1, KM: d("4000")},
		},
		nil, nil, DefaultScale(), DefaultMealCap())
	require.NoError(t, err)

	// Each vehicle stays in its own first bracket; the combined 8000 km
	// never pushes either into the next one.
	require.Len(t, detail.VehicleDeductions, 2)
	assert.Equal(t, first.ID, detail.VehicleDeductions[0].VehicleID, "first-appearance order is kept")
	assert.Equal(t, "2544.00", detail.VehicleDeductions[0].Deduction.StringFixed(2))
	assert.Equal(t, "2424.00", detail.VehicleDeductions[1].Deduction.StringFixed(2))
	assert.Equal(t, "4968.00", detail.MileageDeductionTotal.StringFixed(2))
}

func TestComputeAnnualDetail_TotalIsSumOfRoundedCategoryTotals(t *testing.T) {
	// Each meal rounds before the category total sums them, so the total
	// reconciles with the displayed per-entry amounts.
	detail, err := ComputeAnnualDetail(2024, nil, nil,
		[]MealRow{
			{Year: 2024, Month: 1, Cost: d("6.666")},
			{Year: 2024, Month: 2, Cost: d("6.666")},
		},
		nil, DefaultScale(), DefaultMealCap())
	require.NoError(t, err)

	assert.Equal(t, "13.34", detail.MealsDeductionTotal.StringFixed(2))
	assert.Equal(t, "13.34", detail.TotalDeduction.StringFixed(2))
}

func TestComputeAnnualDetail_MissingVehicle(t *testing.T) {
	_, err := ComputeAnnualDetail(2024, nil,
		[]MileageRow{
			{VehicleID: uuid.New(), Year: 2024, Month: 1, KM: d("100")},
		},
		nil, nil, DefaultScale(), DefaultMealCap())
	assert.ErrorIs(t, err, ErrUnknownFiscalPower)
}

func TestComputeAnnualDetail_InvalidRows(t *testing.T) {
	car := VehicleInfo{ID: uuid.New(), Name: "Clio", PowerCV: 5}
	scale := DefaultScale()
	cap := DefaultMealCap()

	_, err := ComputeAnnualDetail(2024, []VehicleInfo{car},
		[]MileageRow{{VehicleID: car.ID, Year: 2024, Month: 13, KM: d("100")}},
		nil, nil, scale, cap)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = ComputeAnnualDetail(2024, []VehicleInfo{car},
		[]MileageRow{{VehicleID: car.ID, Year: 2024, Month: 1, KM: d("-5")}},
		nil, nil, scale, cap)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ComputeAnnualDetail(2024, nil, nil,
		[]MealRow{{Year: 2024, Month: 1, Cost: d("-1")}},
		nil, scale, cap)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ComputeAnnualDetail(2024, nil, nil, nil,
		[]OtherRow{{Description: "bad", Amount: d("-1")}},
		scale, cap)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ComputeAnnualDetail(1999, nil, nil, nil, nil, scale, cap)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestComputeAnnualDetail_Recomputation(t *testing.T) {
	car := VehicleInfo{ID: uuid.New(), Name: "Clio", PowerCV: 6}
	mileage := []MileageRow{
		{VehicleID: car.ID, Year: 2024, Month: 5, KM: d("1234.56")},
	}
	meals := []MealRow{{Year: 2024, Month: 5, Cost: d("14.90")}}

	first, err := ComputeAnnualDetail(2024, []VehicleInfo{car}, mileage, meals, nil, DefaultScale(), DefaultMealCap())
	require.NoError(t, err)
	second, err := ComputeAnnualDetail(2024, []VehicleInfo{car}, mileage, meals, nil, DefaultScale(), DefaultMealCap())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
