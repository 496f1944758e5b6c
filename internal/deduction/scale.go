package deduction

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Bracket is one formula segment of the mileage scale: valid for annual
// distances up to and including UpperKM. A nil UpperKM means unbounded
// (the last bracket of every power tier).
type Bracket struct {
	UpperKM        *decimal.Decimal
	RatePerKM      decimal.Decimal
	FixedAllowance decimal.Decimal
}

// Scale maps a vehicle's fiscal power (CV) to its ordered bracket list.
// A Scale is read-only once built; each computation works on the snapshot
// it was handed, so a reload never affects in-flight requests.
type Scale map[int][]Bracket

// MealCap bounds the deductible amount of a single meal expense. Both values
// come from configuration, never from literals at call sites.
type MealCap struct {
	DailyFloor   decimal.Decimal
	DailyCeiling decimal.Decimal
}

// Validate checks the bracket invariant for every power tier: at least one
// bracket, bounds strictly increasing, only the last bracket unbounded.
func (s Scale) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no power tiers", ErrInvalidScale)
	}
	for power, brackets := range s {
		if power < 1 {
			return fmt.Errorf("%w: power tier %d", ErrInvalidScale, power)
		}
		if len(brackets) == 0 {
			return fmt.Errorf("%w: power tier %d has no brackets", ErrInvalidScale, power)
		}
		var prev *decimal.Decimal
		for i, b := range brackets {
			last := i == len(brackets)-1
			if last {
				if b.UpperKM != nil {
					return fmt.Errorf("%w: power tier %d last bracket must be unbounded", ErrInvalidScale, power)
				}
				continue
			}
			if b.UpperKM == nil {
				return fmt.Errorf("%w: power tier %d unbounded bracket before the last", ErrInvalidScale, power)
			}
			if b.UpperKM.IsNegative() {
				return fmt.Errorf("%w: power tier %d negative bound", ErrInvalidScale, power)
			}
			if prev != nil && !b.UpperKM.GreaterThan(*prev) {
				return fmt.Errorf("%w: power tier %d bounds not increasing", ErrInvalidScale, power)
			}
			prev = b.UpperKM
		}
	}
	return nil
}

// MaxPowerCV returns the highest power tier defined in the scale.
func (s Scale) MaxPowerCV() int {
	max := 0
	for power := range s {
		if power > max {
			max = power
		}
	}
	return max
}

// PowerTiers returns the defined power tiers in ascending order.
func (s Scale) PowerTiers() []int {
	tiers := make([]int, 0, len(s))
	for power := range s {
		tiers = append(tiers, power)
	}
	sort.Ints(tiers)
	return tiers
}

// NormalizePowerCV maps a vehicle's fiscal power onto a tier the scale
// defines. Powers above the top listed tier clamp to that tier, per the
// published administrative rule ("7 CV et plus"). Powers below the lowest
// listed tier have no bracket set and are an error, never a silent zero.
func NormalizePowerCV(powerCV int, scale Scale) (int, error) {
	if powerCV < 1 {
		return 0, fmt.Errorf("%w: %d CV", ErrUnknownFiscalPower, powerCV)
	}
	if _, ok := scale[powerCV]; ok {
		return powerCV, nil
	}
	if max := scale.MaxPowerCV(); powerCV > max && max > 0 {
		return max, nil
	}
	return 0, fmt.Errorf("%w: %d CV", ErrUnknownFiscalPower, powerCV)
}

// DefaultScale returns the published barème kilométrique for 3 to 7 CV.
// Vehicles above 7 CV clamp to the 7 CV tier via NormalizePowerCV.
func DefaultScale() Scale {
	return Scale{
		3: tier("0.529", "0", "0.316", "1065", "0.370"),
		4: tier("0.606", "0", "0.340", "1330", "0.407"),
		5: tier("0.636", "0", "0.357", "1395", "0.427"),
		6: tier("0.665", "0", "0.374", "1457", "0.447"),
		7: tier("0.697", "0", "0.394", "1515", "0.470"),
	}
}

// DefaultMealCap returns the published per-meal floor and ceiling in EUR.
func DefaultMealCap() MealCap {
	return MealCap{
		DailyFloor:   decimal.RequireFromString("5.20"),
		DailyCeiling: decimal.RequireFromString("19.40"),
	}
}

// tier builds the standard three-bracket shape of the published scale:
// up to 5000 km, 5001 to 20000 km with a fixed allowance, then unbounded.
func tier(rate1, fixed1, rate2, fixed2, rate3 string) []Bracket {
	lower := decimal.NewFromInt(5000)
	upper := decimal.NewFromInt(20000)
	return []Bracket{
		{UpperKM: &lower, RatePerKM: decimal.RequireFromString(rate1), FixedAllowance: decimal.RequireFromString(fixed1)},
		{UpperKM: &upper, RatePerKM: decimal.RequireFromString(rate2), FixedAllowance: decimal.RequireFromString(fixed2)},
		{UpperKM: nil, RatePerKM: decimal.RequireFromString(rate3), FixedAllowance: decimal.Zero},
	}
}
