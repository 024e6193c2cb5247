package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/kasir/pkg/api"
	"github.com/mmynk/kasir/pkg/metrics"
)

func TestSessionInterceptor(t *testing.T) {
	var seen string
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		seen = GetSessionID(ctx)
		return nil, nil
	})
	call := SessionInterceptor()(next)

	_, err := call(context.Background(), connect.NewRequest(&api.GetCartRequest{SessionID: "abc"}))
	require.NoError(t, err)
	assert.Equal(t, "abc", seen)

	_, err = call(context.Background(), connect.NewRequest(&api.ListMenuRequest{}))
	require.NoError(t, err)
	assert.Empty(t, seen)
}

func TestLoggingInterceptor_RecordsCode(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	next := connect.UnaryFunc(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, assert.AnError)
	})

	_, err := LoggingInterceptor(m)(next)(context.Background(), connect.NewRequest(&api.GetCartRequest{}))
	require.Error(t, err)
	assert.Equal(t, 1, testutil.CollectAndCount(m.RPCDuration))
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/kasir.v1.PosService/GetCart", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}
