package ports

import (
	"context"
	"errors"
	"scout-route-service/internal/domain"
)

// ErrEventNotFound is returned by GetEvent when no event matches the
// given ID. Adapters must wrap it (fmt.Errorf("...: %w", ErrEventNotFound))
// rather than returning their driver's own not-found error, so callers can
// branch on it without knowing which adapter is in use.
var ErrEventNotFound = errors.New("event not found")

// Port: a boundary for retrieving Event definitions (checkpoints,
// schedules, opening tables, travel matrices) from a data source.
type EventRepository interface {
	// Retrieve one event by ID.
	GetEvent(ctx context.Context, eventID string) (*domain.Event, error)
	// Retrieve every event available for solving.
	ListEvents(ctx context.Context) ([]*domain.Event, error)
}
