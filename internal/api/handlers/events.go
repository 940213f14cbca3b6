package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"scout-route-service/internal/api/dto"
	"scout-route-service/internal/ports"
)

// EventsHandler serves read-only access to the event catalog.
type EventsHandler struct {
	Repo ports.EventRepository
}

// List handles GET /events.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.Repo.ListEvents(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to list events")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewEventSummaries(events))
}

// Get handles GET /events/{id}.
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "event id is required")
		return
	}

	event, err := h.Repo.GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrEventNotFound) {
			writeError(w, r, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "failed to get event")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewEventSummary(event))
}
