package deduction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ResolveMeal returns the deductible part of a single meal expense.
// A cost at or below the daily floor yields no deduction (the floor is the
// threshold under which no excess cost is recognized, not a granted minimum);
// above the floor the deductible is the cost itself, capped at the daily
// ceiling. Applied independently per expense row.
func ResolveMeal(mealCost decimal.Decimal, cap MealCap) (decimal.Decimal, error) {
	if mealCost.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: meal cost %s", ErrInvalidAmount, mealCost)
	}
	if mealCost.LessThanOrEqual(cap.DailyFloor) {
		return decimal.Zero, nil
	}
	deductible := mealCost
	if deductible.GreaterThan(cap.DailyCeiling) {
		deductible = cap.DailyCeiling
	}
	return deductible.Round(2), nil
}
