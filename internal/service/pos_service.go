package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/kasir/internal/calculator"
	"github.com/mmynk/kasir/internal/cart"
	"github.com/mmynk/kasir/internal/ledgersync"
	"github.com/mmynk/kasir/internal/models"
	"github.com/mmynk/kasir/internal/recorder"
	"github.com/mmynk/kasir/internal/storage"
	"github.com/mmynk/kasir/pkg/api"
)

// SyncChecker reports the health of the remote ledger.
type SyncChecker interface {
	Health(ctx context.Context) ledgersync.Health
}

// session is one register's cart. mu serializes checkout against other
// changes to the same cart.
type session struct {
	mu   sync.Mutex
	cart *cart.Cart

	// lastUsed is in unix nanoseconds.
	lastUsed atomic.Int64
}

func (sess *session) touch(now time.Time) {
	sess.lastUsed.Store(now.UnixNano())
}

// PosService implements the Connect PosService
type PosService struct {
	recorder *recorder.Recorder
	catalog  storage.Catalog
	checker  SyncChecker
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewPosService creates a PosService. checker may be nil when no remote
// ledger is configured.
func NewPosService(rec *recorder.Recorder, catalog storage.Catalog, checker SyncChecker) *PosService {
	return &PosService{
		recorder: rec,
		catalog:  catalog,
		checker:  checker,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// ComputeTotal sums the given lines.
func (s *PosService) ComputeTotal(ctx context.Context, req *connect.Request[api.ComputeTotalRequest]) (*connect.Response[api.ComputeTotalResponse], error) {
	total, err := calculator.ComputeTotal(linesFromAPI(req.Msg.Lines))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ComputeTotalResponse{Total: total}), nil
}

// SuggestPaymentOptions returns three cash amounts for a total.
func (s *PosService) SuggestPaymentOptions(ctx context.Context, req *connect.Request[api.SuggestPaymentOptionsRequest]) (*connect.Response[api.SuggestPaymentOptionsResponse], error) {
	opts, err := calculator.SuggestPaymentOptions(req.Msg.Total)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SuggestPaymentOptionsResponse{Options: optionsToAPI(opts)}), nil
}

// FinalizeTransaction records a sale of the given lines.
func (s *PosService) FinalizeTransaction(ctx context.Context, req *connect.Request[api.FinalizeTransactionRequest]) (*connect.Response[api.FinalizeTransactionResponse], error) {
	slog.Info("FinalizeTransaction request received",
		"lines_count", len(req.Msg.Lines),
		"amount_paid", req.Msg.AmountPaid,
	)

	receipt, err := s.recorder.Finalize(ctx, linesFromAPI(req.Msg.Lines), req.Msg.AmountPaid, models.ParseChosenOption(req.Msg.ClickedOption))
	if err != nil {
		slog.Warn("FinalizeTransaction failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.FinalizeTransactionResponse{
		Transaction: receiptToAPI(receipt),
	}), nil
}

// GetSyncStatus returns the latest sync outcome of a transaction.
func (s *PosService) GetSyncStatus(ctx context.Context, req *connect.Request[api.GetSyncStatusRequest]) (*connect.Response[api.GetSyncStatusResponse], error) {
	status, err := s.recorder.SyncStatus(ctx, req.Msg.TransactionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetSyncStatusResponse{Sync: syncStatusToAPI(status, nil)}), nil
}

// ResyncTransaction replays a transaction to the remote ledger.
func (s *PosService) ResyncTransaction(ctx context.Context, req *connect.Request[api.ResyncTransactionRequest]) (*connect.Response[api.ResyncTransactionResponse], error) {
	slog.Info("ResyncTransaction request received", "transaction_id", req.Msg.TransactionID)

	receipt, err := s.recorder.Resync(ctx, req.Msg.TransactionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ResyncTransactionResponse{
		Sync: syncStatusToAPI(receipt.Sync, receipt.SyncErr),
	}), nil
}

// ListTransactions returns the whole ledger, oldest first.
func (s *PosService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	txs, statuses, err := s.recorder.Transactions(ctx)
	if err != nil {
		slog.Error("ListTransactions failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Transaction, len(txs))
	for i, tx := range txs {
		out[i] = transactionToAPI(tx)
		if status, ok := statuses[tx.ID]; ok {
			out[i].Sync = syncStatusToAPI(status, nil)
		}
	}
	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: out}), nil
}

// GetTransaction returns one transaction with its sync status.
func (s *PosService) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	tx, err := s.recorder.Transaction(ctx, req.Msg.TransactionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	out := transactionToAPI(tx)
	if status, err := s.recorder.SyncStatus(ctx, tx.ID); err == nil {
		out.Sync = syncStatusToAPI(status, nil)
	}
	return connect.NewResponse(&api.GetTransactionResponse{Transaction: out}), nil
}

// GetSalesSummary aggregates the ledger.
func (s *PosService) GetSalesSummary(ctx context.Context, req *connect.Request[api.GetSalesSummaryRequest]) (*connect.Response[api.GetSalesSummaryResponse], error) {
	summary, err := s.recorder.Summary(ctx)
	if err != nil {
		slog.Error("GetSalesSummary failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetSalesSummaryResponse{
		TransactionCount: summary.TransactionCount,
		Revenue:          summary.Revenue,
		ItemsSold:        summary.ItemsSold,
	}), nil
}

// CheckSync reports whether the remote sheet is reachable and how many
// transactions it holds.
func (s *PosService) CheckSync(ctx context.Context, req *connect.Request[api.CheckSyncRequest]) (*connect.Response[api.CheckSyncResponse], error) {
	if s.checker == nil {
		return connect.NewResponse(&api.CheckSyncResponse{
			Mode:  string(ledgersync.ModeLocalOnly),
			Error: "no remote ledger configured",
		}), nil
	}

	h := s.checker.Health(ctx)
	return connect.NewResponse(&api.CheckSyncResponse{
		Mode:          string(h.Mode),
		Connected:     h.Connected,
		SheetName:     h.SheetName,
		SheetExists:   h.SheetExists,
		SpreadsheetID: h.SpreadsheetID,
		LoggedRows:    int64(h.LoggedRows),
		Error:         h.Error,
	}), nil
}

// OpenSession starts an empty cart.
func (s *PosService) OpenSession(ctx context.Context, req *connect.Request[api.OpenSessionRequest]) (*connect.Response[api.OpenSessionResponse], error) {
	id := uuid.NewString()
	sess := &session{cart: cart.New()}
	sess.touch(s.now())

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	slog.Info("Cart session opened", "session_id", id)
	return connect.NewResponse(&api.OpenSessionResponse{SessionID: id}), nil
}

// AddToCart adds a menu item to a session's cart.
func (s *PosService) AddToCart(ctx context.Context, req *connect.Request[api.AddToCartRequest]) (*connect.Response[api.AddToCartResponse], error) {
	sess, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	item, err := s.catalog.GetMenuItem(ctx, req.Msg.ItemID)
	if err != nil {
		return nil, toConnectError(err)
	}

	qty := req.Msg.Quantity
	if qty == 0 {
		qty = 1
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Reject additions that would push the cart past the maximum total.
	if qty > 0 {
		next := append(sess.cart.Lines(), models.CartLine{ItemID: item.ID, Name: item.Name, UnitPrice: item.UnitPrice, Quantity: qty})
		if _, err := calculator.ComputeTotal(next); err != nil {
			return nil, toConnectError(err)
		}
	}
	if err := sess.cart.Add(*item, qty); err != nil {
		return nil, toConnectError(err)
	}

	c, err := cartToAPI(req.Msg.SessionID, sess.cart)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.AddToCartResponse{Cart: c}), nil
}

// RemoveFromCart drops an item from a session's cart.
func (s *PosService) RemoveFromCart(ctx context.Context, req *connect.Request[api.RemoveFromCartRequest]) (*connect.Response[api.RemoveFromCartResponse], error) {
	sess, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.cart.Remove(req.Msg.ItemID) {
		return nil, toConnectError(fmt.Errorf("item %d not in cart: %w", req.Msg.ItemID, storage.ErrNotFound))
	}

	c, err := cartToAPI(req.Msg.SessionID, sess.cart)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RemoveFromCartResponse{Cart: c}), nil
}

// GetCart returns a session's cart with its total and payment suggestions.
func (s *PosService) GetCart(ctx context.Context, req *connect.Request[api.GetCartRequest]) (*connect.Response[api.GetCartResponse], error) {
	sess, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	c, err := cartToAPI(req.Msg.SessionID, sess.cart)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetCartResponse{Cart: c}), nil
}

// ClearCart empties a session's cart.
func (s *PosService) ClearCart(ctx context.Context, req *connect.Request[api.ClearCartRequest]) (*connect.Response[api.ClearCartResponse], error) {
	sess, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.Clear()
	return connect.NewResponse(&api.ClearCartResponse{
		Cart: &api.Cart{SessionID: req.Msg.SessionID, Lines: []api.CartLine{}},
	}), nil
}

// Checkout finalizes a session's cart and empties it. On error the cart
// is left untouched.
func (s *PosService) Checkout(ctx context.Context, req *connect.Request[api.CheckoutRequest]) (*connect.Response[api.CheckoutResponse], error) {
	sess, err := s.session(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	slog.Info("Checkout request received",
		"session_id", req.Msg.SessionID,
		"lines_count", sess.cart.Len(),
		"amount_paid", req.Msg.AmountPaid,
	)

	receipt, err := s.recorder.Finalize(ctx, sess.cart.Lines(), req.Msg.AmountPaid, models.ParseChosenOption(req.Msg.ClickedOption))
	if err != nil {
		slog.Warn("Checkout failed", "session_id", req.Msg.SessionID, "error", err)
		return nil, toConnectError(err)
	}
	sess.cart.Clear()

	return connect.NewResponse(&api.CheckoutResponse{Transaction: receiptToAPI(receipt)}), nil
}

// CloseSession discards a session and its cart.
func (s *PosService) CloseSession(ctx context.Context, req *connect.Request[api.CloseSessionRequest]) (*connect.Response[api.CloseSessionResponse], error) {
	s.mu.Lock()
	_, ok := s.sessions[req.Msg.SessionID]
	delete(s.sessions, req.Msg.SessionID)
	s.mu.Unlock()

	if !ok {
		return nil, toConnectError(fmt.Errorf("%w: %q", errSessionNotFound, req.Msg.SessionID))
	}
	slog.Info("Cart session closed", "session_id", req.Msg.SessionID)
	return connect.NewResponse(&api.CloseSessionResponse{}), nil
}

// EvictIdleSessions drops every session not used within ttl and returns how
// many were dropped.
func (s *PosService) EvictIdleSessions(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl).UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.lastUsed.Load() < cutoff {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// SweepIdleSessions calls EvictIdleSessions every interval until ctx is done.
func (s *PosService) SweepIdleSessions(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdleSessions(ttl); n > 0 {
				slog.Info("Evicted idle cart sessions", "count", n, "ttl", ttl)
			}
		}
	}
}

func (s *PosService) session(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errSessionNotFound, id)
	}
	sess.touch(s.now())
	return sess, nil
}

func receiptToAPI(r *recorder.Receipt) *api.Transaction {
	out := transactionToAPI(r.Transaction)
	out.Sync = syncStatusToAPI(r.Sync, r.SyncErr)
	return out
}

func cartToAPI(sessionID string, c *cart.Cart) (*api.Cart, error) {
	lines := c.Lines()
	out := &api.Cart{SessionID: sessionID, Lines: linesToAPI(lines)}
	if len(lines) == 0 {
		return out, nil
	}

	total, err := calculator.ComputeTotal(lines)
	if err != nil {
		return nil, err
	}
	opts, err := calculator.SuggestPaymentOptions(total)
	if err != nil {
		return nil, err
	}
	out.Total = total
	out.Options = optionsToAPI(opts)
	return out, nil
}
