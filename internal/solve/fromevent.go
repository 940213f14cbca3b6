package solve

import "scout-route-service/internal/domain"

// FromEvent assembles a solve Input from a validated domain Event. The
// boundary between the two types exists because solve.Input is the
// core's data contract and must not carry persistence concerns like an
// event's ID or CreatedAt.
func FromEvent(e *domain.Event) Input {
	return Input{
		NCheckpoints: len(e.Checkpoints),
		NSlots:       e.Schedule.Len(),
		Travel:       e.Travel.T,
		OpenAt:       e.Opening.Open,
		FinishOpen:   e.Opening.FinishOpen,
		SlotStarts:   e.Schedule.Starts,
		Speed:        e.Speed,
		Dwell:        e.Dwell,
		Naismith:     e.Naismith,
		StartTime:    e.Window.StartTime,
		EndTime:      e.Window.EndTime,
	}
}
