package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/brewery-dashboard/internal/domain"
)

// listResponse is the dashboard payload for one query and list page.
type listResponse struct {
	Loading           bool                `json:"loading"`
	Error             string              `json:"error,omitempty"`
	FetchedAt         time.Time           `json:"fetched_at"`
	Truncated         bool                `json:"truncated"`
	Query             domain.Query        `json:"query"`
	Stats             domain.Stats        `json:"stats"`
	TypeDistribution  domain.Distribution `json:"type_distribution"`
	StateDistribution domain.Distribution `json:"state_distribution"`
	TotalVisible      int                 `json:"total_visible"`
	Page              domain.Page         `json:"page"`
}

type statsResponse struct {
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
	Stats   domain.Stats `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := domain.Query{Search: q.Get("search"), Type: q.Get("type")}
	if !domain.IsFilterType(query.Type) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown brewery type %q", query.Type))
		return
	}

	page, err := intParam(q.Get("page"), 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "page: "+err.Error())
		return
	}
	perPage, err := intParam(q.Get("per_page"), domain.DefaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "per_page: "+err.Error())
		return
	}

	v := s.dash.View(query)
	writeJSON(w, http.StatusOK, listResponse{
		Loading:           v.Loading,
		Error:             v.Error,
		FetchedAt:         v.FetchedAt,
		Truncated:         v.Truncated,
		Query:             v.Query,
		Stats:             v.Stats,
		TypeDistribution:  v.TypeDistribution,
		StateDistribution: v.StateDistribution,
		TotalVisible:      v.TotalVisible,
		Page:              domain.Paginate(v.Records, page, perPage),
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := s.dash.Detail(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, b)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("brewery %q not found", id))
	default:
		s.logger.Warn("brewery detail failed", "error", err, "id", id)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	v := s.dash.View(domain.Query{})
	writeJSON(w, http.StatusOK, statsResponse{Loading: v.Loading, Error: v.Error, Stats: v.Stats})
}

func (s *Server) handleCharts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Charts())
}

func (s *Server) handleFilterTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.FilterOptions())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.dash.Load(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.handleStats(w, r)
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return n, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}
