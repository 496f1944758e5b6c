package deduction

import "errors"

// Error kinds surfaced by the engine. All are data or configuration problems:
// the computation itself is deterministic and has no transient failures.
var (
	// ErrInvalidAmount reports a negative cost or distance.
	ErrInvalidAmount = errors.New("amount must be non-negative")

	// ErrUnknownFiscalPower reports a fiscal power with no bracket set in the
	// active scale and no defined fallback.
	ErrUnknownFiscalPower = errors.New("no mileage scale for fiscal power")

	// ErrInvalidPeriod reports a month or year outside the supported range.
	ErrInvalidPeriod = errors.New("period out of range")

	// ErrInvalidScale reports a scale whose brackets violate the ordering
	// invariant (contiguous, increasing bounds, last bracket unbounded).
	ErrInvalidScale = errors.New("invalid mileage scale")
)

const (
	// YearMin and YearMax bound the supported tax years.
	YearMin = 2000
	YearMax = 2100
)

// ValidatePeriod checks that a tax year and month fall in the supported
// domain. Handlers validate request syntax already; the engine re-checks so
// it stays safe to call standalone.
func ValidatePeriod(year, month int) error {
	if year < YearMin || year > YearMax {
		return ErrInvalidPeriod
	}
	if month < 1 || month > 12 {
		return ErrInvalidPeriod
	}
	return nil
}
