// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/kasir/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("menu item name already exists")
	ErrDuplicateID   = errors.New("menu item id already exists")
)

// Ledger is the local, append-only record of finalized transactions.
// It is the source of truth; the remote sheet only mirrors it.
type Ledger interface {
	// AppendTransaction assigns the next sequence ID to tx and stores it.
	// The sequence is persisted, so IDs never repeat across restarts.
	// On error nothing is stored and tx.ID is left untouched.
	AppendTransaction(ctx context.Context, tx *models.Transaction) error

	// GetTransaction retrieves a transaction by ID.
	// Returns ErrNotFound if there is no such transaction.
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)

	// ListTransactions returns all transactions in ID order.
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)

	// Summary aggregates count, revenue and units sold.
	Summary(ctx context.Context) (*models.SalesSummary, error)

	// RecordSyncStatus stores the latest sync outcome for a transaction.
	RecordSyncStatus(ctx context.Context, id int64, status models.SyncStatus) error

	// GetSyncStatus returns the latest sync outcome for a transaction.
	// Returns ErrNotFound if the transaction does not exist.
	GetSyncStatus(ctx context.Context, id int64) (models.SyncStatus, error)

	// ListSyncStatuses returns the sync outcome of every transaction.
	ListSyncStatuses(ctx context.Context) (map[int64]models.SyncStatus, error)
}

// Catalog stores the menu.
type Catalog interface {
	// CreateMenuItem persists a new item. A zero item.ID is replaced with
	// the next free ID. Names are unique case-insensitively.
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error

	// GetMenuItem retrieves a menu item by ID.
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)

	// ListMenuItems returns all menu items in ID order.
	ListMenuItems(ctx context.Context) ([]*models.MenuItem, error)

	// DeleteMenuItem removes a menu item by ID.
	DeleteMenuItem(ctx context.Context, id int64) error
}

// Store combines the ledger and the catalog.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the service layer.
type Store interface {
	Ledger
	Catalog

	// Close releases any resources held by the store.
	Close() error
}
