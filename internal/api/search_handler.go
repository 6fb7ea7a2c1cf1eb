// Package api wires the HTTP surface: search, analytics metrics and health.
package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dayhub/dayhub-server/internal/api/respond"
	"github.com/dayhub/dayhub-server/internal/api/validate"
	"github.com/dayhub/dayhub-server/internal/auth"
	"github.com/dayhub/dayhub-server/internal/search"
)

// SearchHandler handles GET /api/search
type SearchHandler struct {
	agg *search.Aggregator
}

// NewSearchHandler instantiates the handler with dependencies.
func NewSearchHandler(agg *search.Aggregator) *SearchHandler {
	return &SearchHandler{agg: agg}
}

// HandleSearch processes incoming search requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "missing caller identity")
		return
	}

	q := r.URL.Query()
	if err := validate.Query(q.Get("query")); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	kinds, err := validate.Kinds(q.Get("types"))
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
	limit, err := validate.Limit(q.Get("limit"))
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.agg.Search(r.Context(), userID, search.Request{
		Query: q.Get("query"),
		Types: kinds,
		From:  from,
		To:    to,
		Limit: limit,
	})
	if err != nil {
		log.Warn().Err(err).Str("query", q.Get("query")).Msg("search failed")
		respond.WriteInternalError(w, "search unavailable")
		return
	}
	respond.WriteJSON(w, http.StatusOK, resp)
}
