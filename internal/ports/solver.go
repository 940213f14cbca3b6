package ports

import "scout-route-service/internal/domain"

// Port: a boundary around the route-planning core, letting services
// depend on the shape of a solve call rather than the internal/solve
// package directly. The default adapter wraps solve.Solve.
type Solver interface {
	Solve(event *domain.Event) (domain.SolveRecord, error)
}
