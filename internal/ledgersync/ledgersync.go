// Package ledgersync replicates finalized transactions to a remote,
// spreadsheet-like store. Replication is best effort: the local ledger is
// authoritative and a failed sync never undoes a checkout.
package ledgersync

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/mmynk/kasir/internal/models"
)

var (
	// ErrSyncUnavailable means the remote store could not be reached, timed
	// out or rejected the write. The transaction stands locally.
	ErrSyncUnavailable = errors.New("sync unavailable")

	// ErrConfiguration means the remote store credentials are missing or
	// malformed. The client stays in local-only mode.
	ErrConfiguration = errors.New("sync misconfigured")
)

// Header is the fixed header row of the remote sheet.
var Header = []string{
	"Transaction ID",
	"Timestamp",
	"Total Amount",
	"Option 1",
	"Option 2",
	"Option 3",
	"Amount Paid",
	"Selected Option",
	"Items",
}

// TimestampLayout is how timestamps are written to the remote sheet.
const TimestampLayout = "2006-01-02 15:04:05"

// Handle identifies an opened remote sheet.
type Handle struct {
	SpreadsheetID string
}

// Store is the remote append-only store. SheetsStore is the production
// implementation.
type Store interface {
	// Lookup finds the sheet called name without creating it.
	Lookup(ctx context.Context, name string) (Handle, bool, error)

	// EnsureSheet opens the sheet called name, creating it with the given
	// header row if it does not exist.
	EnsureSheet(ctx context.Context, name string, header []string) (Handle, error)

	// AppendRow appends one row to the sheet.
	AppendRow(ctx context.Context, h Handle, row []string) error

	// HasTransaction reports whether a row for the transaction ID exists.
	HasTransaction(ctx context.Context, h Handle, id string) (bool, error)

	// CountRows returns the number of data rows, excluding the header.
	CountRows(ctx context.Context, h Handle) (int, error)
}

// FormatRow serializes a transaction in Header column order. Numbers are
// plain decimals with no currency symbol or separators.
func FormatRow(tx *models.Transaction) []string {
	items := make([]string, len(tx.Lines))
	for i, l := range tx.Lines {
		items[i] = l.Name + " x " + strconv.FormatInt(l.Quantity, 10)
	}

	return []string{
		strconv.FormatInt(tx.ID, 10),
		tx.Timestamp.Format(TimestampLayout),
		strconv.FormatInt(tx.Total, 10),
		strconv.FormatInt(tx.Options[0], 10),
		strconv.FormatInt(tx.Options[1], 10),
		strconv.FormatInt(tx.Options[2], 10),
		strconv.FormatInt(tx.AmountPaid, 10),
		tx.ChosenOption.String(),
		strings.Join(items, "; "),
	}
}
