package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/kasir/internal/storage"
	"github.com/mmynk/kasir/internal/storage/storagetest"
)

func newTestStore(t *testing.T, dbPath string) *SQLiteStore {
	t.Helper()
	store, err := New(dbPath)
	require.NoError(t, err, "Failed to create store")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	})
}

func TestSQLiteStore_SequenceSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "nested", "ledger.db")

	first, err := New(dbPath)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, first.AppendTransaction(ctx, storagetest.NewTransaction()))
	}
	require.NoError(t, first.Close())

	second := newTestStore(t, dbPath)
	tx := storagetest.NewTransaction()
	require.NoError(t, second.AppendTransaction(ctx, tx))
	require.Equal(t, int64(4), tx.ID)
}

func TestSQLiteStore_LedgerIsAppendOnly(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, filepath.Join(t.TempDir(), "test.db"))

	tx := storagetest.NewTransaction()
	require.NoError(t, store.AppendTransaction(ctx, tx))

	_, err := store.db.ExecContext(ctx, "UPDATE transactions SET total = 1 WHERE id = ?", tx.ID)
	require.Error(t, err)

	_, err = store.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", tx.ID)
	require.Error(t, err)

	got, err := store.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	require.Equal(t, int64(25000), got.Total)
}

func TestSQLiteStore_FailedAppendLeavesNoGap(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, filepath.Join(t.TempDir(), "test.db"))

	bad := storagetest.NewTransaction()
	bad.AmountPaid = bad.Total - 1 // violates the CHECK constraint
	require.Error(t, store.AppendTransaction(ctx, bad))
	require.Zero(t, bad.ID)

	good := storagetest.NewTransaction()
	require.NoError(t, store.AppendTransaction(ctx, good))
	require.Equal(t, int64(1), good.ID)
}
