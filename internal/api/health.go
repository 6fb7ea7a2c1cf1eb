package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dayhub/dayhub-server/internal/api/respond"
)

// serviceHealthFn reports aggregated service health; bound at startup.
var serviceHealthFn atomic.Value // func() bool

func init() {
	serviceHealthFn.Store(func() bool { return true })
}

// BindServiceHealth installs the service-level health probe.
func BindServiceHealth(fn func() bool) {
	if fn != nil {
		serviceHealthFn.Store(fn)
	}
}

// HealthHandler handles health check endpoints
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// CheckHealth handles GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	healthy := serviceHealthFn.Load().(func() bool)()
	if healthy {
		respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "UP",
			"message":   "Service is healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"status":    "DOWN",
		"message":   "One or more dependencies unavailable",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
