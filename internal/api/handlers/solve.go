package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"scout-route-service/internal/api/dto"
	"scout-route-service/internal/domain"
	"scout-route-service/internal/ports"
)

// eventSolver is the slice of *services.SolveEventService this handler
// needs, kept as an interface so tests can stub it without a repository or
// cache behind it.
type eventSolver interface {
	SolveEvent(ctx context.Context, eventID string) (domain.SolveRecord, error)
}

// SolveHandler serves the event-solve endpoint.
type SolveHandler struct {
	Service eventSolver
}

// Solve handles POST /events/{id}/solve.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "event id is required")
		return
	}

	record, err := h.Service.SolveEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrEventNotFound) {
			writeError(w, r, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "failed to solve event")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewSolveResponse(record))
}
