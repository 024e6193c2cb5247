package models

import (
	"strconv"
	"time"
)

// PaymentOptions are three distinct suggested payment amounts, ascending,
// all greater than or equal to the total they were computed for.
type PaymentOptions [3]int64

// ChosenOption records which suggestion matched the amount actually paid.
// The zero value means the cashier typed a custom amount.
type ChosenOption uint8

const (
	ChosenManual ChosenOption = iota
	ChosenOption1
	ChosenOption2
	ChosenOption3
)

// String returns "1", "2", "3" or "Manual", the form used in the remote sheet.
func (c ChosenOption) String() string {
	switch c {
	case ChosenOption1, ChosenOption2, ChosenOption3:
		return strconv.Itoa(int(c))
	default:
		return "Manual"
	}
}

// ParseChosenOption is the inverse of String. Unknown values map to ChosenManual.
func ParseChosenOption(s string) ChosenOption {
	switch s {
	case "1":
		return ChosenOption1
	case "2":
		return ChosenOption2
	case "3":
		return ChosenOption3
	default:
		return ChosenManual
	}
}

// Transaction is a finalized sale. It is created exactly once per checkout
// and never modified afterwards.
type Transaction struct {
	// ID is the sequential ledger identifier, starting at 1.
	// IDs are never reused, including across restarts.
	ID int64

	// Timestamp is when the transaction was recorded.
	Timestamp time.Time

	// Lines is a copy of the cart at checkout.
	Lines []CartLine

	// Total is the sum of all line subtotals.
	Total int64

	// AmountPaid is what the customer handed over. Never below Total.
	AmountPaid int64

	// Change is AmountPaid - Total.
	Change int64

	// Options are the suggestions that were on offer at finalize time.
	Options PaymentOptions

	// ChosenOption is derived from AmountPaid and Options.
	ChosenOption ChosenOption
}

// ItemCount returns the number of units sold in the transaction.
func (t *Transaction) ItemCount() int64 {
	var n int64
	for _, l := range t.Lines {
		n += l.Quantity
	}
	return n
}

// SyncState is the replication state of one transaction.
type SyncState string

const (
	SyncPending SyncState = "pending"
	SyncOK      SyncState = "ok"
	SyncFailed  SyncState = "failed"
)

// SyncStatus is the outcome of the latest attempt to replicate a
// transaction to the remote sheet.
type SyncStatus struct {
	State SyncState

	// Reason explains a failed sync (e.g., "sync unavailable: timeout").
	// Empty when State is SyncOK.
	Reason string

	// AttemptedAt is the time of the latest attempt. Zero while pending.
	AttemptedAt time.Time
}

// OK reports whether the transaction reached the remote sheet.
func (s SyncStatus) OK() bool {
	return s.State == SyncOK
}

// SalesSummary aggregates the ledger for the history view.
type SalesSummary struct {
	TransactionCount int64
	Revenue          int64
	ItemsSold        int64
}
