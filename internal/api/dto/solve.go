package dto

import (
	"time"

	"scout-route-service/internal/domain"
)

// SolveResponse is the JSON body returned by POST /events/{id}/solve.
type SolveResponse struct {
	EventID    string    `json:"event_id"`
	Count      int       `json:"count"`
	Route      []int     `json:"route"`
	FinishTime float64   `json:"finish_time"`
	SolvedAt   time.Time `json:"solved_at"`
}

func NewSolveResponse(rec domain.SolveRecord) SolveResponse {
	route := rec.Route
	if route == nil {
		route = []int{}
	}
	return SolveResponse{
		EventID:    rec.EventID,
		Count:      rec.Count,
		Route:      route,
		FinishTime: rec.FinishTime,
		SolvedAt:   rec.SolvedAt,
	}
}
