package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/kasir/internal/models"
)

// MaxTotal is the largest total the calculator accepts. It leaves headroom
// for the payment suggestions so none of them can overflow int64.
const MaxTotal int64 = 1_000_000_000_000_000

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidTotal = errors.New("total must be positive")
	ErrInvalidLine  = errors.New("invalid cart line")
)

// ComputeTotal returns the sum of unit price × quantity over all lines.
func ComputeTotal(lines []models.CartLine) (int64, error) {
	if len(lines) == 0 {
		return 0, ErrEmptyCart
	}

	var total int64
	for i, l := range lines {
		if l.Quantity < 1 {
			return 0, fmt.Errorf("%w: line %d (%s) has quantity %d", ErrInvalidLine, i+1, l.Name, l.Quantity)
		}
		if l.UnitPrice <= 0 {
			return 0, fmt.Errorf("%w: line %d (%s) has unit price %d", ErrInvalidLine, i+1, l.Name, l.UnitPrice)
		}
		if l.UnitPrice > MaxTotal/l.Quantity {
			return 0, fmt.Errorf("%w: line %d (%s) subtotal exceeds %d", ErrInvalidTotal, i+1, l.Name, MaxTotal)
		}
		total += l.Subtotal()
		if total > MaxTotal {
			return 0, fmt.Errorf("%w: total exceeds %d", ErrInvalidTotal, MaxTotal)
		}
	}
	return total, nil
}
