package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/kasir/internal/ledgersync"
	"github.com/mmynk/kasir/internal/recorder"
	"github.com/mmynk/kasir/internal/service"
	"github.com/mmynk/kasir/internal/storage/memory"
	"github.com/mmynk/kasir/pkg/api"
	"github.com/mmynk/kasir/pkg/api/apiconnect"
	"github.com/mmynk/kasir/pkg/metrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.New()
	_, err := service.SeedMenu(context.Background(), store, service.DefaultMenu)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	// No credentials: the server runs in local-only mode.
	syncClient := ledgersync.NewClient(ledgersync.Config{}, nil)
	rec := recorder.New(store, syncClient, recorder.WithMetrics(m))

	srv := httptest.NewServer(newRouter(routerDeps{
		pos:      service.NewPosService(rec, store, syncClient),
		catalog:  service.NewCatalogService(store),
		metrics:  m,
		gatherer: reg,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestRouter_CheckoutInLocalOnlyMode(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	pos := apiconnect.NewPosServiceClient(http.DefaultClient, srv.URL)

	resp, err := pos.FinalizeTransaction(ctx, connect.NewRequest(&api.FinalizeTransactionRequest{
		Lines: []api.CartLine{
			{ItemID: 1, Name: "Fried Rice", UnitPrice: 15000, Quantity: 1},
			{ItemID: 4, Name: "Iced Tea", UnitPrice: 5000, Quantity: 2},
		},
		AmountPaid: 25000,
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Msg.Transaction.ID)
	assert.Equal(t, "failed", resp.Msg.Transaction.Sync.State)
	assert.Equal(t, "configuration", resp.Msg.Transaction.Sync.ErrorKind)

	health, err := pos.CheckSync(ctx, connect.NewRequest(&api.CheckSyncRequest{}))
	require.NoError(t, err)
	assert.Equal(t, string(ledgersync.ModeLocalOnly), health.Msg.Mode)
	assert.False(t, health.Msg.Connected)
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t)
	catalog := apiconnect.NewCatalogServiceClient(http.DefaultClient, srv.URL)

	_, err := catalog.ListMenu(context.Background(), connect.NewRequest(&api.ListMenuRequest{}))
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "kasir_rpc_duration_ms")
	assert.Contains(t, string(body), "/kasir.v1.CatalogService/ListMenu")
}
