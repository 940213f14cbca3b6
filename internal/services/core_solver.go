package services

import (
	"time"

	"scout-route-service/internal/domain"
	"scout-route-service/internal/solve"
)

// CoreSolver is the default ports.Solver adapter: it wraps the pure
// internal/solve package so the rest of the service layer makes its
// solve calls through ports.Solver (SolveEventService imports
// internal/solve only to compute input fingerprints), keeping the
// boundary between "the algorithm" and "everything around it" explicit.
type CoreSolver struct{}

func NewCoreSolver() *CoreSolver { return &CoreSolver{} }

func (CoreSolver) Solve(event *domain.Event) (domain.SolveRecord, error) {
	in := solve.FromEvent(event)

	res, err := solve.Solve(in)
	if err != nil {
		return domain.SolveRecord{}, err
	}

	return domain.SolveRecord{
		EventID:          event.ID,
		InputFingerprint: in.Fingerprint(),
		Count:            res.Count,
		Route:            res.Route,
		FinishTime:       res.FinishTime,
		SolvedAt:         time.Now().UTC(),
	}, nil
}
