// Package storagetest holds behavioral tests shared by every storage.Store
// implementation.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/kasir/internal/models"
	"github.com/mmynk/kasir/internal/storage"
)

// NewTransaction returns a valid transaction for the 25000 cart used
// throughout the tests.
func NewTransaction() *models.Transaction {
	return &models.Transaction{
		Timestamp: time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC),
		Lines: []models.CartLine{
			{ItemID: 1, Name: "Fried Rice", UnitPrice: 15000, Quantity: 1},
			{ItemID: 4, Name: "Iced Tea", UnitPrice: 5000, Quantity: 2},
		},
		Total:        25000,
		AmountPaid:   25000,
		Change:       0,
		Options:      models.PaymentOptions{30000, 50000, 55000},
		ChosenOption: models.ChosenManual,
	}
}

// Run exercises the storage.Store contract against stores built by newStore.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("AppendTransaction assigns sequential ids from 1", func(t *testing.T) {
		store := newStore(t)

		for want := int64(1); want <= 3; want++ {
			tx := NewTransaction()
			require.NoError(t, store.AppendTransaction(ctx, tx))
			require.Equal(t, want, tx.ID)
		}
	})

	t.Run("GetTransaction round-trips", func(t *testing.T) {
		store := newStore(t)
		original := NewTransaction()
		original.ChosenOption = models.ChosenOption2
		require.NoError(t, store.AppendTransaction(ctx, original))

		got, err := store.GetTransaction(ctx, original.ID)
		require.NoError(t, err)
		require.Equal(t, original.ID, got.ID)
		require.True(t, original.Timestamp.Equal(got.Timestamp))
		require.Equal(t, original.Lines, got.Lines)
		require.Equal(t, original.Total, got.Total)
		require.Equal(t, original.AmountPaid, got.AmountPaid)
		require.Equal(t, original.Change, got.Change)
		require.Equal(t, original.Options, got.Options)
		require.Equal(t, models.ChosenOption2, got.ChosenOption)
	})

	t.Run("stored transaction is independent of caller", func(t *testing.T) {
		store := newStore(t)
		tx := NewTransaction()
		require.NoError(t, store.AppendTransaction(ctx, tx))

		tx.Lines[0].Quantity = 99
		got, err := store.GetTransaction(ctx, tx.ID)
		require.NoError(t, err)
		require.Equal(t, int64(1), got.Lines[0].Quantity)
	})

	t.Run("GetTransaction returns ErrNotFound", func(t *testing.T) {
		store := newStore(t)
		_, err := store.GetTransaction(ctx, 42)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListTransactions and Summary", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.AppendTransaction(ctx, NewTransaction()))
		require.NoError(t, store.AppendTransaction(ctx, NewTransaction()))

		txs, err := store.ListTransactions(ctx)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		require.Equal(t, int64(1), txs[0].ID)
		require.Equal(t, int64(2), txs[1].ID)
		require.Len(t, txs[1].Lines, 2)

		summary, err := store.Summary(ctx)
		require.NoError(t, err)
		require.Equal(t, &models.SalesSummary{TransactionCount: 2, Revenue: 50000, ItemsSold: 6}, summary)
	})

	t.Run("sync status starts pending and can be updated", func(t *testing.T) {
		store := newStore(t)
		tx := NewTransaction()
		require.NoError(t, store.AppendTransaction(ctx, tx))

		status, err := store.GetSyncStatus(ctx, tx.ID)
		require.NoError(t, err)
		require.Equal(t, models.SyncPending, status.State)

		attempted := time.Date(2025, 3, 1, 12, 30, 5, 0, time.UTC)
		require.NoError(t, store.RecordSyncStatus(ctx, tx.ID, models.SyncStatus{
			State:       models.SyncFailed,
			Reason:      "sync unavailable: timeout",
			AttemptedAt: attempted,
		}))

		status, err = store.GetSyncStatus(ctx, tx.ID)
		require.NoError(t, err)
		require.Equal(t, models.SyncFailed, status.State)
		require.Equal(t, "sync unavailable: timeout", status.Reason)
		require.True(t, attempted.Equal(status.AttemptedAt))

		all, err := store.ListSyncStatuses(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.Equal(t, models.SyncFailed, all[tx.ID].State)

		require.ErrorIs(t, store.RecordSyncStatus(ctx, 999, models.SyncStatus{State: models.SyncOK}), storage.ErrNotFound)
		_, err = store.GetSyncStatus(ctx, 999)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("concurrent appends get distinct ids", func(t *testing.T) {
		store := newStore(t)
		const n = 20

		ids := make(chan int64, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tx := NewTransaction()
				if err := store.AppendTransaction(ctx, tx); err != nil {
					t.Errorf("AppendTransaction failed: %v", err)
					return
				}
				ids <- tx.ID
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			require.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		require.Len(t, seen, n)
		for id := int64(1); id <= n; id++ {
			require.True(t, seen[id], "missing id %d", id)
		}
	})

	t.Run("menu items", func(t *testing.T) {
		store := newStore(t)

		rice := &models.MenuItem{Name: "Fried Rice", UnitPrice: 15000}
		require.NoError(t, store.CreateMenuItem(ctx, rice))
		require.Equal(t, int64(1), rice.ID)

		tea := &models.MenuItem{ID: 4, Name: "Iced Tea", UnitPrice: 5000}
		require.NoError(t, store.CreateMenuItem(ctx, tea))
		require.Equal(t, int64(4), tea.ID)

		juice := &models.MenuItem{Name: "Orange Juice", UnitPrice: 6000}
		require.NoError(t, store.CreateMenuItem(ctx, juice))
		require.Equal(t, int64(5), juice.ID)

		err := store.CreateMenuItem(ctx, &models.MenuItem{Name: "fried RICE", UnitPrice: 1000})
		require.ErrorIs(t, err, storage.ErrDuplicateName)

		err = store.CreateMenuItem(ctx, &models.MenuItem{ID: 4, Name: "Lemon Tea", UnitPrice: 1000})
		require.ErrorIs(t, err, storage.ErrDuplicateID)

		got, err := store.GetMenuItem(ctx, 4)
		require.NoError(t, err)
		require.Equal(t, "Iced Tea", got.Name)

		items, err := store.ListMenuItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		require.Equal(t, []int64{1, 4, 5}, []int64{items[0].ID, items[1].ID, items[2].ID})

		require.NoError(t, store.DeleteMenuItem(ctx, 4))
		require.ErrorIs(t, store.DeleteMenuItem(ctx, 4), storage.ErrNotFound)
		_, err = store.GetMenuItem(ctx, 4)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}
