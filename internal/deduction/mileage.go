package deduction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// selectBracket picks the single bracket whose inclusive upper bound is the
// smallest one covering annualKM. A distance exactly equal to a bound belongs
// to that bracket, not the next one. The last, unbounded bracket matches when
// no earlier one does.
func selectBracket(powerCV int, annualKM decimal.Decimal, scale Scale) (Bracket, error) {
	normalized, err := NormalizePowerCV(powerCV, scale)
	if err != nil {
		return Bracket{}, err
	}
	for _, b := range scale[normalized] {
		if b.UpperKM == nil || annualKM.LessThanOrEqual(*b.UpperKM) {
			return b, nil
		}
	}
	// Unreachable for a validated scale; kept so a malformed one still fails loudly.
	return Bracket{}, fmt.Errorf("%w: %d CV has no bracket for %s km", ErrInvalidScale, normalized, annualKM)
}

// ResolveMileage converts a vehicle's total annual kilometers and fiscal
// power into a euro deduction. The whole distance uses the one matching
// bracket's formula (km*rate + fixed) — the scale is not progressive.
// The result is rounded half-up to 2 decimals once, at the end.
func ResolveMileage(powerCV int, annualKM decimal.Decimal, scale Scale) (decimal.Decimal, error) {
	if annualKM.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: km %s", ErrInvalidAmount, annualKM)
	}
	bracket, err := selectBracket(powerCV, annualKM, scale)
	if err != nil {
		return decimal.Zero, err
	}
	return annualKM.Mul(bracket.RatePerKM).Add(bracket.FixedAllowance).Round(2), nil
}
