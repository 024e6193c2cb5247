package main

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/kasir/internal/middleware"
	"github.com/mmynk/kasir/pkg/api/apiconnect"
	"github.com/mmynk/kasir/pkg/metrics"
)

type routerDeps struct {
	pos      apiconnect.PosServiceHandler
	catalog  apiconnect.CatalogServiceHandler
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
}

func newRouter(deps routerDeps) http.Handler {
	interceptors := connect.WithInterceptors(
		middleware.SessionInterceptor(),
		middleware.LoggingInterceptor(deps.metrics),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger, middleware.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler(deps.gatherer))

	// Register Connect services
	posPath, posHandler := apiconnect.NewPosServiceHandler(deps.pos, interceptors)
	r.Handle(posPath+"*", posHandler)

	catalogPath, catalogHandler := apiconnect.NewCatalogServiceHandler(deps.catalog, interceptors)
	r.Handle(catalogPath+"*", catalogHandler)

	return r
}
