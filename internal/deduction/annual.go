package deduction

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The engine consumes plain rows built by the caller from whatever store
// holds them. It never mutates them, only reduces.

// VehicleInfo is the slice of a vehicle the engine needs: identity and the
// fiscal power keying into the scale.
type VehicleInfo struct {
	ID      uuid.UUID
	Name    string
	PowerCV int
}

// MileageRow is one vehicle's distance in one month. Several rows for the
// same vehicle and month are additive.
type MileageRow struct {
	VehicleID uuid.UUID
	Year      int
	Month     int
	KM        decimal.Decimal
}

// MealRow is one meal expense subject to the daily floor/ceiling rule.
type MealRow struct {
	Year  int
	Month int
	Cost  decimal.Decimal
}

// OtherRow is a miscellaneous expense deductible at face value.
type OtherRow struct {
	Description string
	Amount      decimal.Decimal
}

// VehicleDeduction is the resolved result for one vehicle's year.
type VehicleDeduction struct {
	VehicleID   uuid.UUID
	VehicleName string
	PowerCV     int
	TotalKM     decimal.Decimal
	Deduction   decimal.Decimal
}

// AnnualDetail is the derived yearly result for one person. It is pure
// derivation: recomputed on every request, never persisted.
type AnnualDetail struct {
	Year                  int
	VehicleDeductions     []VehicleDeduction
	MileageTotalKM        decimal.Decimal
	MileageDeductionTotal decimal.Decimal
	MealsDeductionTotal   decimal.Decimal
	OtherExpensesTotal    decimal.Decimal
	TotalDeduction        decimal.Decimal
}

// ComputeAnnualDetail reduces one person's rows for one year into category
// totals and a grand total.
//
// Mileage rows are grouped per vehicle, each vehicle's annual sum resolved
// against the scale independently (no cross-vehicle bracket sharing), and
// the per-vehicle deductions summed. Meal and other rows are resolved per
// entry and summed. Category totals are rounded to 2 decimals; the grand
// total is the exact sum of the three already-rounded category totals, so
// it reconciles line by line with the displayed detail.
//
// A category with no rows contributes zero, never an error. A mileage row
// whose vehicle is absent from vehicles, or a fiscal power the scale cannot
// serve, surfaces as an error rather than a silent zero.
func ComputeAnnualDetail(
	year int,
	vehicles []VehicleInfo,
	mileage []MileageRow,
	meals []MealRow,
	others []OtherRow,
	scale Scale,
	cap MealCap,
) (AnnualDetail, error) {
	if err := ValidatePeriod(year, 1); err != nil {
		return AnnualDetail{}, fmt.Errorf("year %d: %w", year, err)
	}

	vehicleByID := make(map[uuid.UUID]VehicleInfo, len(vehicles))
	for _, v := range vehicles {
		vehicleByID[v.ID] = v
	}

	// Group km per vehicle, additive across rows. Order of first appearance
	// is kept so recomputation on unchanged input is bit-identical.
	kmByVehicle := make(map[uuid.UUID]decimal.Decimal)
	var order []uuid.UUID
	for _, row := range mileage {
		if err := ValidatePeriod(row.Year, row.Month); err != nil {
			return AnnualDetail{}, fmt.Errorf("mileage entry %d/%d: %w", row.Month, row.Year, err)
		}
		if row.KM.IsNegative() {
			return AnnualDetail{}, fmt.Errorf("mileage entry %d/%d: %w: km %s", row.Month, row.Year, ErrInvalidAmount, row.KM)
		}
		if _, seen := kmByVehicle[row.VehicleID]; !seen {
			order = append(order, row.VehicleID)
		}
		kmByVehicle[row.VehicleID] = kmByVehicle[row.VehicleID].Add(row.KM)
	}

	detail := AnnualDetail{Year: year}
	for _, vehicleID := range order {
		info, ok := vehicleByID[vehicleID]
		if !ok {
			return AnnualDetail{}, fmt.Errorf("vehicle %s: %w", vehicleID, ErrUnknownFiscalPower)
		}
		totalKM := kmByVehicle[vehicleID]
		amount, err := ResolveMileage(info.PowerCV, totalKM, scale)
		if err != nil {
			return AnnualDetail{}, fmt.Errorf("vehicle %s: %w", vehicleID, err)
		}
		detail.VehicleDeductions = append(detail.VehicleDeductions, VehicleDeduction{
			VehicleID:   info.ID,
			VehicleName: info.Name,
			PowerCV:     info.PowerCV,
			TotalKM:     totalKM,
			Deduction:   amount,
		})
		detail.MileageTotalKM = detail.MileageTotalKM.Add(totalKM)
		detail.MileageDeductionTotal = detail.MileageDeductionTotal.Add(amount)
	}

	for _, row := range meals {
		if err := ValidatePeriod(row.Year, row.Month); err != nil {
			return AnnualDetail{}, fmt.Errorf("meal expense %d/%d: %w", row.Month, row.Year, err)
		}
		amount, err := ResolveMeal(row.Cost, cap)
		if err != nil {
			return AnnualDetail{}, fmt.Errorf("meal expense %d/%d: %w", row.Month, row.Year, err)
		}
		detail.MealsDeductionTotal = detail.MealsDeductionTotal.Add(amount)
	}

	for _, row := range others {
		amount, err := ResolveOther(row.Amount)
		if err != nil {
			return AnnualDetail{}, fmt.Errorf("expense %q: %w", row.Description, err)
		}
		detail.OtherExpensesTotal = detail.OtherExpensesTotal.Add(amount)
	}

	detail.MileageTotalKM = detail.MileageTotalKM.Round(2)
	detail.MealsDeductionTotal = detail.MealsDeductionTotal.Round(2)
	detail.OtherExpensesTotal = detail.OtherExpensesTotal.Round(2)
	detail.TotalDeduction = detail.MileageDeductionTotal.
		Add(detail.MealsDeductionTotal).
		Add(detail.OtherExpensesTotal)
	return detail, nil
}
