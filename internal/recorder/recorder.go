// Package recorder finalizes sales into the local ledger and replicates
// them to the remote ledger.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mmynk/kasir/internal/calculator"
	"github.com/mmynk/kasir/internal/ledgersync"
	"github.com/mmynk/kasir/internal/models"
	"github.com/mmynk/kasir/internal/storage"
	"github.com/mmynk/kasir/pkg/metrics"
)

var (
	ErrInvalidPayment = errors.New("amount paid is less than total")
	ErrPersistence    = errors.New("failed to record transaction")
)

// Syncer replicates transactions to the remote ledger.
// ledgersync.Client is the production implementation.
type Syncer interface {
	Sync(ctx context.Context, tx *models.Transaction) error
	Replay(ctx context.Context, tx *models.Transaction) error
}

// Receipt is the result of a successful checkout. The transaction is
// recorded regardless of Sync; SyncErr is advisory.
type Receipt struct {
	Transaction *models.Transaction
	Sync        models.SyncStatus
	SyncErr     error
}

// Recorder assigns transaction IDs, appends to the ledger and triggers sync.
type Recorder struct {
	// mu guards ID assignment and the ledger append. Sync runs outside it.
	mu sync.Mutex

	ledger  storage.Ledger
	syncer  Syncer
	metrics *metrics.Metrics
	now     func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithMetrics records checkout and sync outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Recorder) { r.metrics = m }
}

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// New creates a Recorder. A nil syncer leaves every transaction unsynced.
func New(ledger storage.Ledger, syncer Syncer, opts ...Option) *Recorder {
	r := &Recorder{ledger: ledger, syncer: syncer, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Finalize records a sale of lines paid with amountPaid.
//
// The chosen option is derived from amountPaid and the suggestions for the
// total; clicked is only the button the cashier last pressed and is never
// recorded. Invalid input returns an error before anything is written. A
// ledger failure returns ErrPersistence and the sale did not happen. A sync
// failure does not fail the checkout; it is reported in the receipt.
func (r *Recorder) Finalize(ctx context.Context, lines []models.CartLine, amountPaid int64, clicked models.ChosenOption) (*Receipt, error) {
	total, err := calculator.ComputeTotal(lines)
	if err != nil {
		return nil, err
	}
	if amountPaid < total {
		r.metrics.ObserveCheckout(metrics.CheckoutInvalidPayment, total)
		return nil, fmt.Errorf("%w: paid %d, total %d", ErrInvalidPayment, amountPaid, total)
	}

	options, err := calculator.SuggestPaymentOptions(total)
	if err != nil {
		return nil, err
	}
	chosen := calculator.MatchOption(options, amountPaid)
	if clicked != models.ChosenManual && clicked != chosen {
		slog.Debug("Clicked option differs from amount paid",
			"clicked", clicked.String(),
			"recorded", chosen.String(),
			"amount_paid", amountPaid,
		)
	}

	tx := &models.Transaction{
		Lines:        slices.Clone(lines),
		Total:        total,
		AmountPaid:   amountPaid,
		Change:       amountPaid - total,
		Options:      options,
		ChosenOption: chosen,
	}

	// Timestamps and ids are assigned together so both follow the same order.
	r.mu.Lock()
	tx.Timestamp = r.now()
	err = r.ledger.AppendTransaction(ctx, tx)
	r.mu.Unlock()
	if err != nil {
		r.metrics.ObserveCheckout(metrics.CheckoutPersistence, total)
		slog.Error("Failed to record transaction", "total", total, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	r.metrics.ObserveCheckout(metrics.CheckoutOK, total)
	slog.Info("Transaction recorded",
		"transaction_id", tx.ID,
		"total", tx.Total,
		"amount_paid", tx.AmountPaid,
		"change", tx.Change,
		"chosen_option", tx.ChosenOption.String(),
	)

	status, syncErr := r.sync(ctx, tx, false)
	return &Receipt{Transaction: tx, Sync: status, SyncErr: syncErr}, nil
}

// Resync replays a recorded transaction to the remote ledger. Replays check
// for an existing row first, so they never duplicate a row that did land.
func (r *Recorder) Resync(ctx context.Context, id int64) (*Receipt, error) {
	tx, err := r.ledger.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	status, syncErr := r.sync(ctx, tx, true)
	return &Receipt{Transaction: tx, Sync: status, SyncErr: syncErr}, nil
}

// SyncStatus returns the latest sync outcome of a transaction.
func (r *Recorder) SyncStatus(ctx context.Context, id int64) (models.SyncStatus, error) {
	return r.ledger.GetSyncStatus(ctx, id)
}

// Transaction returns a recorded transaction.
func (r *Recorder) Transaction(ctx context.Context, id int64) (*models.Transaction, error) {
	return r.ledger.GetTransaction(ctx, id)
}

// Transactions returns every recorded transaction with its sync status.
func (r *Recorder) Transactions(ctx context.Context) ([]*models.Transaction, map[int64]models.SyncStatus, error) {
	txs, err := r.ledger.ListTransactions(ctx)
	if err != nil {
		return nil, nil, err
	}
	statuses, err := r.ledger.ListSyncStatuses(ctx)
	if err != nil {
		return nil, nil, err
	}
	return txs, statuses, nil
}

// Summary aggregates the ledger.
func (r *Recorder) Summary(ctx context.Context) (*models.SalesSummary, error) {
	return r.ledger.Summary(ctx)
}

func (r *Recorder) sync(ctx context.Context, tx *models.Transaction, replay bool) (models.SyncStatus, error) {
	start := time.Now()

	var err error
	switch {
	case r.syncer == nil:
		err = fmt.Errorf("%w: no remote ledger configured", ledgersync.ErrConfiguration)
	case replay:
		err = r.syncer.Replay(ctx, tx)
	default:
		err = r.syncer.Sync(ctx, tx)
	}

	status := models.SyncStatus{State: models.SyncOK, AttemptedAt: r.now()}
	result := metrics.SyncOK
	if err != nil {
		status.State = models.SyncFailed
		status.Reason = err.Error()
		switch {
		case r.syncer == nil:
			result = metrics.SyncDisabled
		case errors.Is(err, ledgersync.ErrConfiguration):
			result = metrics.SyncConfiguration
		default:
			result = metrics.SyncUnavailable
		}
		slog.Warn("Transaction saved locally but failed to sync",
			"transaction_id", tx.ID,
			"error", err,
		)
	}
	r.metrics.ObserveSync(result, time.Since(start))

	// The sale already happened; record the outcome even if the caller gave up.
	if recErr := r.ledger.RecordSyncStatus(context.WithoutCancel(ctx), tx.ID, status); recErr != nil {
		slog.Error("Failed to record sync status", "transaction_id", tx.ID, "error", recErr)
	}
	return status, err
}
