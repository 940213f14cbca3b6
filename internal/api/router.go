package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"scout-route-service/internal/api/handlers"
	"scout-route-service/internal/domain"
	"scout-route-service/internal/ports"
)

// eventSolverService is the method set handlers.SolveHandler expects from
// its Service field, restated here so NewRouter's signature doesn't force
// callers to import the handlers package's unexported interface.
type eventSolverService interface {
	SolveEvent(ctx context.Context, eventID string) (domain.SolveRecord, error)
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(repo ports.EventRepository, solver eventSolverService) http.Handler {
	r := mux.NewRouter()

	eventsHandler := &handlers.EventsHandler{Repo: repo}
	solveHandler := &handlers.SolveHandler{Service: solver}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/events", eventsHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/events/{id}", eventsHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/events/{id}/solve", solveHandler.Solve).Methods(http.MethodPost)

	return requestIDMiddleware(loggingMiddleware(r))
}
