package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/kasir/internal/ledgersync"
	"github.com/mmynk/kasir/internal/middleware"
	"github.com/mmynk/kasir/internal/models"
	"github.com/mmynk/kasir/internal/recorder"
	"github.com/mmynk/kasir/internal/storage/sqlite"
	"github.com/mmynk/kasir/pkg/api/apiconnect"
)

// fakeSyncer stands in for the remote ledger.
type fakeSyncer struct {
	mu     sync.Mutex
	err    error
	synced []int64
}

func (f *fakeSyncer) Sync(ctx context.Context, tx *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.synced = append(f.synced, tx.ID)
	return nil
}

func (f *fakeSyncer) Replay(ctx context.Context, tx *models.Transaction) error {
	return f.Sync(ctx, tx)
}

func (f *fakeSyncer) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSyncer) Health(ctx context.Context) ledgersync.Health {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ledgersync.Health{
		Mode:        ledgersync.ModeRemote,
		Connected:   f.err == nil,
		SheetName:   ledgersync.DefaultSheetName,
		SheetExists: true,
		LoggedRows:  len(f.synced),
	}
}

type testServer struct {
	pos     apiconnect.PosServiceClient
	catalog apiconnect.CatalogServiceClient
	syncer  *fakeSyncer
	svc     *PosService
}

// setupTestServer creates a test server backed by a SQLite database seeded
// with the default menu.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "kasir.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := SeedMenu(context.Background(), store, DefaultMenu); err != nil {
		t.Fatalf("failed to seed menu: %v", err)
	}

	syncer := &fakeSyncer{}
	rec := recorder.New(store, syncer)

	interceptors := connect.WithInterceptors(middleware.SessionInterceptor(), middleware.LoggingInterceptor(nil))
	svc := NewPosService(rec, store, syncer)
	posPath, posHandler := apiconnect.NewPosServiceHandler(svc, interceptors)
	catalogPath, catalogHandler := apiconnect.NewCatalogServiceHandler(NewCatalogService(store), interceptors)

	mux := http.NewServeMux()
	mux.Handle(posPath, posHandler)
	mux.Handle(catalogPath, catalogHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		pos:     apiconnect.NewPosServiceClient(http.DefaultClient, server.URL),
		catalog: apiconnect.NewCatalogServiceClient(http.DefaultClient, server.URL),
		syncer:  syncer,
		svc:     svc,
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}

func (ts *testServer) sessionCount() int {
	ts.svc.mu.RLock()
	defer ts.svc.mu.RUnlock()
	return len(ts.svc.sessions)
}
