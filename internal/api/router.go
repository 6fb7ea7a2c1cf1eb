package api

import (
	"github.com/gorilla/mux"

	"github.com/dayhub/dayhub-server/internal/api/recovery"
	"github.com/dayhub/dayhub-server/internal/auth"
)

// NewRouter wires HTTP routes to handlers. Health is reachable without
// credentials; search and analytics sit behind the auth middleware.
func NewRouter(az auth.Authorizer, searchH *SearchHandler, metricsH *MetricsHandler) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	root.HandleFunc("/api/health", NewHealthHandler().CheckHealth).Methods("GET")

	authed := root.PathPrefix("/api").Subrouter()
	authed.Use(auth.Middleware(az))
	authed.HandleFunc("/search", searchH.HandleSearch).Methods("GET")
	authed.HandleFunc("/analytics/metrics", metricsH.HandleMetrics).Methods("GET")

	return root
}
