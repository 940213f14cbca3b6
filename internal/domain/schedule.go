package domain

import "fmt"

// SlotSchedule is the event's ordered table of half-hour service slot
// starts, in minutes past midnight. Entries must be strictly increasing
// and every entry must be a multiple of 30.
type SlotSchedule struct {
	Starts []float64
}

func NewSlotSchedule(starts []float64) (SlotSchedule, error) {
	if len(starts) == 0 {
		return SlotSchedule{}, fmt.Errorf("new slot schedule: must have at least one slot")
	}
	if len(starts) > 15 {
		return SlotSchedule{}, fmt.Errorf("new slot schedule: n_slots=%d exceeds compile-time maximum 15", len(starts))
	}

	for i, s := range starts {
		if s < 0 {
			return SlotSchedule{}, fmt.Errorf("new slot schedule: slot %d start %v must be non-negative", i, s)
		}
		if int(s)%30 != 0 || float64(int(s)) != s {
			return SlotSchedule{}, fmt.Errorf("new slot schedule: slot %d start %v is not a multiple of 30", i, s)
		}
		if i > 0 && s <= starts[i-1] {
			return SlotSchedule{}, fmt.Errorf("new slot schedule: slot starts must be strictly increasing; slot %d (%v) <= slot %d (%v)", i, s, i-1, starts[i-1])
		}
	}

	return SlotSchedule{Starts: append([]float64(nil), starts...)}, nil
}

func (s SlotSchedule) Len() int { return len(s.Starts) }

// OpeningTable holds the per-slot boolean openness of every intermediate
// checkpoint plus Finish. Open[c][s] is whether checkpoint c accepts a
// visitor during slot s; FinishOpen[s] is the analogous vector for Finish.
type OpeningTable struct {
	Open       [][]bool
	FinishOpen []bool
}

func NewOpeningTable(open [][]bool, finishOpen []bool, nCheckpoints, nSlots int) (OpeningTable, error) {
	if len(open) != nCheckpoints {
		return OpeningTable{}, fmt.Errorf("new opening table: open has %d rows, want %d checkpoints", len(open), nCheckpoints)
	}
	for c, row := range open {
		if len(row) != nSlots {
			return OpeningTable{}, fmt.Errorf("new opening table: checkpoint %d has %d slot entries, want %d", c, len(row), nSlots)
		}
	}
	if len(finishOpen) != nSlots {
		return OpeningTable{}, fmt.Errorf("new opening table: finish_open has %d entries, want %d", len(finishOpen), nSlots)
	}

	cp := make([][]bool, len(open))
	for i, row := range open {
		cp[i] = append([]bool(nil), row...)
	}
	return OpeningTable{Open: cp, FinishOpen: append([]bool(nil), finishOpen...)}, nil
}
