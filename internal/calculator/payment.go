package calculator

import (
	"fmt"
	"slices"

	"github.com/mmynk/kasir/internal/models"
)

// Denominations are the banknotes the suggestions round up to.
var Denominations = []int64{1000, 2000, 5000, 10000, 20000, 50000, 100000}

// SuggestPaymentOptions returns three practical cash amounts a cashier can
// ask for, ascending and distinct, all at least total.
//
// The suggestions are:
//   - minimal: the smallest banknote covering the total, or total+1000
//   - large: a big note the customer is likely to hand over
//   - mid: a "comfortable" round amount strictly above the total
//
// Collisions are resolved by stepping up from the largest candidate.
func SuggestPaymentOptions(total int64) (models.PaymentOptions, error) {
	var opts models.PaymentOptions
	if total <= 0 {
		return opts, fmt.Errorf("%w: got %d", ErrInvalidTotal, total)
	}
	if total > MaxTotal {
		return opts, fmt.Errorf("%w: %d exceeds %d", ErrInvalidTotal, total, MaxTotal)
	}

	candidates := []int64{minimalOption(total), largeOption(total), midOption(total)}
	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	step := int64(10000)
	if total < 30000 {
		step = 5000
	}
	for len(candidates) < 3 {
		candidates = append(candidates, candidates[len(candidates)-1]+step)
	}

	copy(opts[:], candidates[:3])
	return opts, nil
}

// MatchOption reports which suggestion equals amountPaid exactly.
func MatchOption(opts models.PaymentOptions, amountPaid int64) models.ChosenOption {
	for i, o := range opts {
		if o == amountPaid {
			return models.ChosenOption(i + 1)
		}
	}
	return models.ChosenManual
}

func minimalOption(total int64) int64 {
	for _, d := range Denominations {
		if d >= total {
			return d
		}
	}
	return total + 1000
}

func largeOption(total int64) int64 {
	switch {
	case total <= 30000:
		return 50000
	case total <= 70000:
		return 100000
	default:
		return (total/50000 + 1) * 50000
	}
}

func midOption(total int64) int64 {
	switch {
	case total < 10000:
		// Nearest 500, bumped up when it does not exceed the total.
		mid := (total + 250) / 500 * 500
		if mid <= total {
			mid += 500
		}
		return mid
	case total < 50000:
		return (total/5000 + 1) * 5000
	default:
		return (total/10000 + 1) * 10000
	}
}
