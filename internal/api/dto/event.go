package dto

import "scout-route-service/internal/domain"

// EventSummary is the list/detail representation of an Event returned over
// HTTP. It omits the checkpoint graph, opening table, and travel matrix —
// clients that need those call the solve endpoint, which is the only
// consumer of the full Event.
type EventSummary struct {
	EventID      string `json:"event_id"`
	Name         string `json:"name"`
	HubLabel     string `json:"hub_label"`
	NCheckpoints int    `json:"n_checkpoints"`
	NSlots       int    `json:"n_slots"`
	StartTime    float64 `json:"start_time"`
	EndTime      float64 `json:"end_time"`
}

func NewEventSummary(e *domain.Event) EventSummary {
	return EventSummary{
		EventID:      e.ID,
		Name:         e.Name,
		HubLabel:     e.HubLabel,
		NCheckpoints: len(e.Checkpoints),
		NSlots:       e.Schedule.Len(),
		StartTime:    e.Window.StartTime,
		EndTime:      e.Window.EndTime,
	}
}

func NewEventSummaries(events []*domain.Event) []EventSummary {
	out := make([]EventSummary, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventSummary(e))
	}
	return out
}
