// Package solve implements the route-planning core: a bitmask
// dynamic-programming search over a small, fully-connected graph of
// time-windowed checkpoints that finds the tour from Start to Finish
// visiting the most checkpoints, breaking ties by earliest finish.
//
// The package is intentionally free of I/O. It is a pure function of its
// Input, synchronous, and safe to call concurrently on disjoint inputs.
package solve

import "fmt"

// MaxCheckpoints and MaxSlots are the compile-time maxima the bitmask DP
// is sized for. Smaller values always work; larger ones are rejected by
// Validate.
const (
	MaxCheckpoints = 17
	MaxSlots       = 15
)

// Input is the solve core's entire data-in contract. All fields are
// required. Speed, Dwell, and Naismith are carried through for host use;
// the core itself consults only Dwell, StartTime, and EndTime.
type Input struct {
	NCheckpoints int
	NSlots       int

	// Travel is indexed 0..NCheckpoints-1 for checkpoints, NCheckpoints for
	// Start, NCheckpoints+1 for Finish.
	Travel [][]float64

	OpenAt     [][]bool
	FinishOpen []bool
	SlotStarts []float64

	Speed     float64
	Dwell     float64
	Naismith  float64
	StartTime float64
	EndTime   float64
}

func (in Input) startIndex() int  { return in.NCheckpoints }
func (in Input) finishIndex() int { return in.NCheckpoints + 1 }

// Result is the solve core's data-out contract.
type Result struct {
	Count      int
	Route      []int
	FinishTime float64
}

// Validate rejects malformed input: out-of-range sizes, non-monotone
// slot starts, and negative travel times. Callers that already trust
// their input (e.g. a value produced by this same package) may skip it.
func (in Input) Validate() error {
	if in.NCheckpoints < 1 || in.NCheckpoints > MaxCheckpoints {
		return fmt.Errorf("solve: n_checkpoints=%d out of range [1,%d]", in.NCheckpoints, MaxCheckpoints)
	}
	if in.NSlots < 1 || in.NSlots > MaxSlots {
		return fmt.Errorf("solve: n_slots=%d out of range [1,%d]", in.NSlots, MaxSlots)
	}

	size := in.NCheckpoints + 2
	if len(in.Travel) != size {
		return fmt.Errorf("solve: travel_time has %d rows, want %d", len(in.Travel), size)
	}
	for i, row := range in.Travel {
		if len(row) != size {
			return fmt.Errorf("solve: travel_time row %d has %d entries, want %d", i, len(row), size)
		}
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("solve: travel_time[%d][%d]=%v must be non-negative", i, j, v)
			}
		}
	}

	if len(in.OpenAt) != in.NCheckpoints {
		return fmt.Errorf("solve: open_at has %d rows, want %d checkpoints", len(in.OpenAt), in.NCheckpoints)
	}
	for c, row := range in.OpenAt {
		if len(row) != in.NSlots {
			return fmt.Errorf("solve: open_at[%d] has %d entries, want %d slots", c, len(row), in.NSlots)
		}
	}
	if len(in.FinishOpen) != in.NSlots {
		return fmt.Errorf("solve: finish_open has %d entries, want %d slots", len(in.FinishOpen), in.NSlots)
	}

	if len(in.SlotStarts) != in.NSlots {
		return fmt.Errorf("solve: slot_starts has %d entries, want %d slots", len(in.SlotStarts), in.NSlots)
	}
	for s, v := range in.SlotStarts {
		if int64(v)%30 != 0 || float64(int64(v)) != v {
			return fmt.Errorf("solve: slot_starts[%d]=%v is not a multiple of 30", s, v)
		}
		if s > 0 && v <= in.SlotStarts[s-1] {
			return fmt.Errorf("solve: slot_starts must be strictly increasing; slot %d (%v) <= slot %d (%v)", s, v, s-1, in.SlotStarts[s-1])
		}
	}

	if in.Dwell < 0 {
		return fmt.Errorf("solve: dwell=%v must be non-negative", in.Dwell)
	}
	if in.EndTime < in.StartTime {
		return fmt.Errorf("solve: end_time=%v is before start_time=%v", in.EndTime, in.StartTime)
	}

	return nil
}
