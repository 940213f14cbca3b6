package services

import (
	"context"
	"fmt"

	"scout-route-service/internal/domain"
	"scout-route-service/internal/platform/obs"
	"scout-route-service/internal/ports"
	"scout-route-service/internal/solve"
)

// SolveEventService is the API's composition of the event repository, the
// solve cache, and the solving core: look the event up, reuse a cached
// result for an identical input if one exists, otherwise solve and cache
// the result before returning it.
type SolveEventService struct {
	Repo   ports.EventRepository
	Cache  ports.SolveCache
	Solver ports.Solver
}

func NewSolveEventService(repo ports.EventRepository, cache ports.SolveCache, solver ports.Solver) *SolveEventService {
	return &SolveEventService{Repo: repo, Cache: cache, Solver: solver}
}

// SolveEvent resolves eventID to its Event, and returns its solve result,
// favoring a cache hit keyed by the exact input's fingerprint over a
// fresh solve: Solve is a pure function of its input, so a cache hit is
// indistinguishable from re-solving.
func (s *SolveEventService) SolveEvent(ctx context.Context, eventID string) (_ domain.SolveRecord, err error) {
	defer obs.Time(ctx, "services.SolveEvent")(&err)

	event, err := s.Repo.GetEvent(ctx, eventID)
	if err != nil {
		return domain.SolveRecord{}, fmt.Errorf("solve event %q: get event: %w", eventID, err)
	}

	if err := event.Validate(); err != nil {
		return domain.SolveRecord{}, fmt.Errorf("solve event %q: invalid event: %w", eventID, err)
	}

	fingerprint := solve.FromEvent(event).Fingerprint()

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, eventID, fingerprint)
		if err != nil {
			return domain.SolveRecord{}, fmt.Errorf("solve event %q: cache lookup: %w", eventID, err)
		}
		if cached != nil {
			return *cached, nil
		}
	}

	record, err := s.Solver.Solve(event)
	if err != nil {
		return domain.SolveRecord{}, fmt.Errorf("solve event %q: solve: %w", eventID, err)
	}

	if s.Cache != nil {
		if err := s.Cache.Put(ctx, record); err != nil {
			return domain.SolveRecord{}, fmt.Errorf("solve event %q: cache store: %w", eventID, err)
		}
	}

	return record, nil
}
