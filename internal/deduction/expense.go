package deduction

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ResolveOther validates a miscellaneous professional expense. These are
// deductible at face value with no cap; the attachment is metadata and plays
// no part in the computation.
func ResolveOther(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount %s", ErrInvalidAmount, amount)
	}
	return amount, nil
}
