package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dayhub/dayhub-server/internal/analytics"
	"github.com/dayhub/dayhub-server/internal/api/respond"
	"github.com/dayhub/dayhub-server/internal/api/validate"
	"github.com/dayhub/dayhub-server/internal/auth"
)

// MetricsHandler handles GET /api/analytics/metrics
type MetricsHandler struct {
	agg *analytics.Aggregator
}

func NewMetricsHandler(agg *analytics.Aggregator) *MetricsHandler {
	return &MetricsHandler{agg: agg}
}

// HandleMetrics processes incoming analytics requests.
func (h *MetricsHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	q := r.URL.Query()
	types, err := validate.MetricTypes(q.Get("metricTypes"))
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	from, err := validate.Date("dateFrom", q.Get("dateFrom"))
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	to, err := validate.Date("dateTo", q.Get("dateTo"))
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	g, err := analytics.ParseGranularity(q.Get("granularity"))
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.agg.Metrics(r.Context(), userID, analytics.Request{
		Types:       types,
		From:        from,
		To:          to,
		Granularity: g,
	})
	if err != nil {
		log.Warn().Err(err).Msg("metrics aggregation failed")
		respond.WriteInternalError(w, "metrics unavailable")
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}
