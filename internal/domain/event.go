package domain

import (
	"fmt"
	"time"
)

// Window is the event's overall operating window, in minutes past
// midnight. The walker departs Start at StartTime; no motion or service
// may occur after EndTime.
type Window struct {
	StartTime float64
	EndTime   float64
}

func NewWindow(start, end float64) (Window, error) {
	if end < start {
		return Window{}, fmt.Errorf("new window: end_time %v is before start_time %v", end, start)
	}
	return Window{StartTime: start, EndTime: end}, nil
}

// Event is the full, persisted definition of one orienteering event: its
// checkpoint graph, opening schedule, travel matrix, and operating
// window. Speed, Dwell, and Naismith are carried through for host use;
// the solving core reads only Dwell, StartTime, and EndTime.
type Event struct {
	ID           string
	Name         string
	HubLabel     string
	CreatedAt    time.Time
	Checkpoints  []Checkpoint
	Schedule     SlotSchedule
	Opening      OpeningTable
	Travel       TravelMatrix
	Window       Window
	Dwell        float64
	Speed        float64
	Naismith     float64
}

// StartIndex and FinishIndex follow the travel matrix's indexing
// convention: checkpoints occupy 0..N-1, Start is the next index, Finish
// is the one after that.
func (e Event) StartIndex() int  { return len(e.Checkpoints) }
func (e Event) FinishIndex() int { return len(e.Checkpoints) + 1 }

func (e Event) Validate() error {
	n := len(e.Checkpoints)
	if n < 1 || n > 17 {
		return fmt.Errorf("event %q: n_checkpoints=%d out of range [1,17]", e.ID, n)
	}
	for i, cp := range e.Checkpoints {
		if cp.Index != i {
			return fmt.Errorf("event %q: checkpoint at position %d has index %d", e.ID, i, cp.Index)
		}
	}
	if len(e.Opening.Open) != n {
		return fmt.Errorf("event %q: opening table has %d checkpoint rows, want %d", e.ID, len(e.Opening.Open), n)
	}
	if e.Schedule.Len() != len(e.Opening.FinishOpen) {
		return fmt.Errorf("event %q: schedule has %d slots, finish_open has %d", e.ID, e.Schedule.Len(), len(e.Opening.FinishOpen))
	}
	wantSize := n + 2
	if e.Travel.Size() != wantSize {
		return fmt.Errorf("event %q: travel matrix size %d, want %d (n_checkpoints+Start+Finish)", e.ID, e.Travel.Size(), wantSize)
	}
	if e.Dwell < 0 {
		return fmt.Errorf("event %q: dwell %v must be non-negative", e.ID, e.Dwell)
	}
	return nil
}
