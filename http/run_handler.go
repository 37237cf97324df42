package http

import (
	"net/http"
	"strconv"

	"card-payoff/domain"
	"card-payoff/service"
)

type RunHandler struct {
	service *service.ScenarioService
}

func NewRunHandler(service *service.ScenarioService) *RunHandler {
	return &RunHandler{service: service}
}

type runsResponse struct {
	Runs []domain.RunRecord `json:"runs"`
}

// ListRuns handles GET /scenarios/runs?limit=N.
func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	runs, err := h.service.ListRuns(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, runsResponse{Runs: runs})
}

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
