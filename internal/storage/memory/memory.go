// Package memory provides an in-process implementation of storage.Store.
// Nothing survives a restart, so the transaction sequence starts over;
// use it for tests and demos only.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mmynk/kasir/internal/models"
	"github.com/mmynk/kasir/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps the ledger and catalog in memory.
type Store struct {
	mu     sync.RWMutex
	lastID int64
	txs    []*models.Transaction
	sync   map[int64]models.SyncStatus
	menu   map[int64]*models.MenuItem

	failAppends error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		sync: make(map[int64]models.SyncStatus),
		menu: make(map[int64]*models.MenuItem),
	}
}

// SetFailAppends makes every later AppendTransaction fail with err until it
// is reset with nil.
func (s *Store) SetFailAppends(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAppends = err
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) AppendTransaction(_ context.Context, t *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAppends != nil {
		return fmt.Errorf("failed to append transaction: %w", s.failAppends)
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}

	s.lastID++
	t.ID = s.lastID
	s.txs = append(s.txs, cloneTransaction(t))
	s.sync[t.ID] = models.SyncStatus{State: models.SyncPending}
	return nil
}

func (s *Store) GetTransaction(_ context.Context, id int64) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.txs {
		if t.ID == id {
			return cloneTransaction(t), nil
		}
	}
	return nil, fmt.Errorf("transaction %d: %w", id, storage.ErrNotFound)
}

func (s *Store) ListTransactions(_ context.Context) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Transaction, len(s.txs))
	for i, t := range s.txs {
		out[i] = cloneTransaction(t)
	}
	return out, nil
}

func (s *Store) Summary(_ context.Context) (*models.SalesSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary := &models.SalesSummary{TransactionCount: int64(len(s.txs))}
	for _, t := range s.txs {
		summary.Revenue += t.Total
		summary.ItemsSold += t.ItemCount()
	}
	return summary, nil
}

func (s *Store) RecordSyncStatus(_ context.Context, id int64, status models.SyncStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sync[id]; !ok {
		return fmt.Errorf("transaction %d: %w", id, storage.ErrNotFound)
	}
	s.sync[id] = status
	return nil
}

func (s *Store) GetSyncStatus(_ context.Context, id int64) (models.SyncStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, ok := s.sync[id]
	if !ok {
		return status, fmt.Errorf("transaction %d: %w", id, storage.ErrNotFound)
	}
	return status, nil
}

func (s *Store) ListSyncStatuses(_ context.Context) (map[int64]models.SyncStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int64]models.SyncStatus, len(s.sync))
	for id, status := range s.sync {
		out[id] = status
	}
	return out, nil
}

func (s *Store) CreateMenuItem(_ context.Context, item *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(strings.TrimSpace(item.Name))
	var maxID int64
	for id, existing := range s.menu {
		if strings.ToLower(strings.TrimSpace(existing.Name)) == key {
			return fmt.Errorf("%q: %w", item.Name, storage.ErrDuplicateName)
		}
		maxID = max(maxID, id)
	}

	id := item.ID
	if id == 0 {
		id = maxID + 1
	} else if _, ok := s.menu[id]; ok {
		return fmt.Errorf("menu item %d: %w", id, storage.ErrDuplicateID)
	}

	item.ID = id
	stored := *item
	s.menu[id] = &stored
	return nil
}

func (s *Store) GetMenuItem(_ context.Context, id int64) (*models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.menu[id]
	if !ok {
		return nil, fmt.Errorf("menu item %d: %w", id, storage.ErrNotFound)
	}
	out := *item
	return &out, nil
}

func (s *Store) ListMenuItems(_ context.Context) ([]*models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*models.MenuItem, 0, len(s.menu))
	for _, item := range s.menu {
		out := *item
		items = append(items, &out)
	}
	slices.SortFunc(items, func(a, b *models.MenuItem) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return items, nil
}

func (s *Store) DeleteMenuItem(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.menu[id]; !ok {
		return fmt.Errorf("menu item %d: %w", id, storage.ErrNotFound)
	}
	delete(s.menu, id)
	return nil
}

func cloneTransaction(t *models.Transaction) *models.Transaction {
	out := *t
	out.Lines = slices.Clone(t.Lines)
	return &out
}
