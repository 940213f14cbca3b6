package solve

import (
	"math"
	"testing"
)

// allOpen returns an n-checkpoint opening table where every checkpoint
// and Finish are open in every one of the given slots.
func allOpen(nCheckpoints, nSlots int) ([][]bool, []bool) {
	open := make([][]bool, nCheckpoints)
	for c := range open {
		open[c] = make([]bool, nSlots)
		for s := range open[c] {
			open[c][s] = true
		}
	}
	finishOpen := make([]bool, nSlots)
	for s := range finishOpen {
		finishOpen[s] = true
	}
	return open, finishOpen
}

// squareMatrix builds an (n+2)x(n+2) travel matrix (checkpoints, Start,
// Finish) with every entry defaulting to a large, effectively
// unreachable distance, to be overridden per test.
func squareMatrix(n int, unreachable float64) [][]float64 {
	size := n + 2
	m := make([][]float64, size)
	for i := range m {
		m[i] = make([]float64, size)
		for j := range m[i] {
			if i == j {
				continue
			}
			m[i][j] = unreachable
		}
	}
	return m
}

func TestSlotOfBoundarySharpness(t *testing.T) {
	slotStarts := []float64{600, 630, 660}

	// Minute-part exactly 30 stays in the earlier (:00) slot.
	idx, ok := slotOf(630, slotStarts)
	if !ok || idx != 0 {
		t.Fatalf("slotOf(630) = (%d, %v), want (0, true)", idx, ok)
	}

	// Minute-part 31 advances to the :30 slot.
	idx, ok = slotOf(631, slotStarts)
	if !ok || idx != 1 {
		t.Fatalf("slotOf(631) = (%d, %v), want (1, true)", idx, ok)
	}

	// Fractional minutes below the next integer do not advance the slot.
	idx, ok = slotOf(630.9, slotStarts)
	if !ok || idx != 0 {
		t.Fatalf("slotOf(630.9) = (%d, %v), want (0, true)", idx, ok)
	}

	// Before the first slot start is reported as none.
	if _, ok := slotOf(599, slotStarts); ok {
		t.Fatalf("slotOf(599) should be infeasible, got ok=true")
	}

	// Arrivals past the last slot start clamp upward to the last slot.
	idx, ok = slotOf(10_000, slotStarts)
	if !ok || idx != 2 {
		t.Fatalf("slotOf(10000) = (%d, %v), want (2, true)", idx, ok)
	}
}

func TestEarliestOpenForcedWait(t *testing.T) {
	// Slot 600 closed, slot 630 open; arrival at 610 must wait to 630.
	open := []bool{false, true}
	slotStarts := []float64{600, 630}

	minute, ok := earliestOpen(open, slotStarts, 610)
	if !ok {
		t.Fatal("earliestOpen: expected feasible")
	}
	if minute != 630 {
		t.Fatalf("earliestOpen(610) = %v, want 630", minute)
	}
}

func TestSolveSkipsUnreachableCheckpoint(t *testing.T) {
	open, finishOpen := allOpen(1, 1)
	open[0][0] = false // checkpoint 0 closed in every slot

	in := Input{
		NCheckpoints: 1,
		NSlots:       1,
		Travel:       squareMatrix(1, 1000),
		OpenAt:       open,
		FinishOpen:   finishOpen,
		SlotStarts:   []float64{600},
		Dwell:        0,
		StartTime:    600,
		EndTime:      700,
	}

	res, err := Solve(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 0 || len(res.Route) != 0 || res.FinishTime != 0 {
		t.Fatalf("got %+v, want count=0 empty route finish_time=0", res)
	}
}

func TestSolveDirectFinishWithDwell(t *testing.T) {
	open, finishOpen := allOpen(1, 1)

	travel := squareMatrix(1, 1000)
	travel[1][0] = 5 // Start -> checkpoint 0
	travel[0][2] = 5 // checkpoint 0 -> Finish

	in := Input{
		NCheckpoints: 1,
		NSlots:       1,
		Travel:       travel,
		OpenAt:       open,
		FinishOpen:   finishOpen,
		SlotStarts:   []float64{600},
		Dwell:        7,
		StartTime:    600,
		EndTime:      700,
	}

	res, err := Solve(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 1 || len(res.Route) != 1 || res.Route[0] != 0 {
		t.Fatalf("got %+v, want count=1 route=[0]", res)
	}
	if res.FinishTime != 617 {
		t.Fatalf("finish_time = %v, want 617", res.FinishTime)
	}
}

func TestSolveTieByEarlierFinish(t *testing.T) {
	open, finishOpen := allOpen(2, 1)

	travel := squareMatrix(2, 1000)
	travel[2][0] = 5  // Start -> 0
	travel[2][1] = 20 // Start -> 1
	travel[0][1] = 5  // 0 -> 1
	travel[1][0] = 5  // 1 -> 0
	travel[0][3] = 5  // 0 -> Finish
	travel[1][3] = 5  // 1 -> Finish

	in := Input{
		NCheckpoints: 2,
		NSlots:       1,
		Travel:       travel,
		OpenAt:       open,
		FinishOpen:   finishOpen,
		SlotStarts:   []float64{600},
		Dwell:        0,
		StartTime:    600,
		EndTime:      1000,
	}

	res, err := Solve(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Count != 2 {
		t.Fatalf("count = %d, want 2", res.Count)
	}
	if len(res.Route) != 2 || res.Route[0] != 0 || res.Route[1] != 1 {
		t.Fatalf("route = %v, want [0 1] (the earlier-finishing order)", res.Route)
	}
	if res.FinishTime != 615 {
		t.Fatalf("finish_time = %v, want 615", res.FinishTime)
	}
}

func TestSolvePrunesUnreachableFinish(t *testing.T) {
	open, finishOpen := allOpen(2, 1)

	travel := squareMatrix(2, 1000)
	travel[2][0] = 5    // Start -> 0
	travel[2][1] = 5    // Start -> 1
	travel[0][1] = 5    // 0 -> 1
	travel[1][0] = 5    // 1 -> 0
	travel[0][3] = 5    // 0 -> Finish: feasible
	travel[1][3] = 1000 // 1 -> Finish: never feasible within the window

	in := Input{
		NCheckpoints: 2,
		NSlots:       1,
		Travel:       travel,
		OpenAt:       open,
		FinishOpen:   finishOpen,
		SlotStarts:   []float64{600},
		Dwell:        0,
		StartTime:    600,
		EndTime:      650,
	}

	res, err := Solve(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Checkpoint 1 can never reach Finish in time, whether visited alone
	// or after 0 -- any state ending at 1 must be pruned. The solver must
	// still surface the shorter feasible route through 0 alone.
	if res.Count != 1 || len(res.Route) != 1 || res.Route[0] != 0 {
		t.Fatalf("got %+v, want count=1 route=[0]", res)
	}
	if res.FinishTime != 610 {
		t.Fatalf("finish_time = %v, want 610", res.FinishTime)
	}
}

func TestSolveUniquenessAndTemporalFeasibility(t *testing.T) {
	open, finishOpen := allOpen(3, 2)

	travel := squareMatrix(3, 1000)
	travel[3][0] = 5
	travel[3][1] = 8
	travel[3][2] = 12
	travel[0][1] = 4
	travel[0][2] = 6
	travel[1][0] = 4
	travel[1][2] = 3
	travel[2][0] = 6
	travel[2][1] = 3
	travel[0][4] = 5
	travel[1][4] = 5
	travel[2][4] = 5

	in := Input{
		NCheckpoints: 3,
		NSlots:       2,
		Travel:       travel,
		OpenAt:       open,
		FinishOpen:   finishOpen,
		SlotStarts:   []float64{600, 630},
		Dwell:        2,
		StartTime:    600,
		EndTime:      700,
	}

	res, err := Solve(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[int]bool)
	for _, c := range res.Route {
		if seen[c] {
			t.Fatalf("checkpoint %d appears more than once in route %v", c, res.Route)
		}
		seen[c] = true
	}

	// Replay the route and verify every step is feasible.
	depart := in.StartTime
	prev := in.startIndex()
	for _, c := range res.Route {
		arrival := depart + in.Travel[prev][c]
		openAt, ok := earliestOpen(in.OpenAt[c], in.SlotStarts, arrival)
		if !ok {
			t.Fatalf("checkpoint %d unreachable at arrival %v", c, arrival)
		}
		depart = openAt + in.Dwell
		if depart > in.EndTime {
			t.Fatalf("checkpoint %d departs at %v, after end_time %v", c, depart, in.EndTime)
		}
		prev = c
	}

	finish, ok := finishArrival(depart, in.Travel[prev][in.finishIndex()], in.FinishOpen, in.SlotStarts, in.EndTime)
	if !ok {
		t.Fatal("expected Finish to remain reachable after replaying the route")
	}
	if finish != res.FinishTime {
		t.Fatalf("replayed finish_time = %v, want %v", finish, res.FinishTime)
	}
}

func TestSolveDeterminism(t *testing.T) {
	open, finishOpen := allOpen(3, 2)
	travel := squareMatrix(3, 1000)
	travel[3][0] = 5
	travel[3][1] = 8
	travel[3][2] = 12
	travel[0][1] = 4
	travel[0][2] = 6
	travel[1][0] = 4
	travel[1][2] = 3
	travel[2][0] = 6
	travel[2][1] = 3
	travel[0][4] = 5
	travel[1][4] = 5
	travel[2][4] = 5

	in := Input{
		NCheckpoints: 3,
		NSlots:       2,
		Travel:       travel,
		OpenAt:       open,
		FinishOpen:   finishOpen,
		SlotStarts:   []float64{600, 630},
		Dwell:        2,
		StartTime:    600,
		EndTime:      700,
	}

	a, err := Solve(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Solve(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Count != b.Count || a.FinishTime != b.FinishTime || len(a.Route) != len(b.Route) {
		t.Fatalf("non-deterministic result: %+v vs %+v", a, b)
	}
	for i := range a.Route {
		if a.Route[i] != b.Route[i] {
			t.Fatalf("non-deterministic route: %+v vs %+v", a.Route, b.Route)
		}
	}
}

func TestSolveMonotonicityUnderRelaxation(t *testing.T) {
	open, finishOpen := allOpen(2, 1)
	travel := squareMatrix(2, 1000)
	travel[2][0] = 5
	travel[2][1] = 20
	travel[0][1] = 10
	travel[1][0] = 10
	travel[0][3] = 5
	travel[1][3] = 5

	base := Input{
		NCheckpoints: 2,
		NSlots:       1,
		Travel:       travel,
		OpenAt:       open,
		FinishOpen:   finishOpen,
		SlotStarts:   []float64{600},
		Dwell:        0,
		StartTime:    600,
		EndTime:      650,
	}

	before, err := Solve(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	relaxed := base
	relaxedTravel := make([][]float64, len(travel))
	for i, row := range travel {
		relaxedTravel[i] = append([]float64(nil), row...)
	}
	relaxedTravel[2][1] = 5 // lower Start -> 1 travel time
	relaxed.Travel = relaxedTravel

	after, err := Solve(relaxed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if after.Count < before.Count {
		t.Fatalf("relaxation decreased count: before=%d after=%d", before.Count, after.Count)
	}
	if after.Count == before.Count && after.FinishTime > before.FinishTime {
		t.Fatalf("relaxation increased finish_time for the same count: before=%v after=%v", before.FinishTime, after.FinishTime)
	}
}

func TestValidateRejectsMalformedInput(t *testing.T) {
	open, finishOpen := allOpen(1, 1)
	valid := Input{
		NCheckpoints: 1,
		NSlots:       1,
		Travel:       squareMatrix(1, 10),
		OpenAt:       open,
		FinishOpen:   finishOpen,
		SlotStarts:   []float64{600},
		Dwell:        0,
		StartTime:    600,
		EndTime:      700,
	}

	t.Run("n_checkpoints out of range", func(t *testing.T) {
		in := valid
		in.NCheckpoints = 0
		if err := in.Validate(); err == nil {
			t.Fatal("expected error for n_checkpoints=0")
		}
	})

	t.Run("non-monotone slot starts", func(t *testing.T) {
		in := valid
		in.NSlots = 2
		in.SlotStarts = []float64{630, 600}
		in.OpenAt = [][]bool{{true, true}}
		in.FinishOpen = []bool{true, true}
		if err := in.Validate(); err == nil {
			t.Fatal("expected error for non-monotone slot_starts")
		}
	})

	t.Run("negative travel time", func(t *testing.T) {
		in := valid
		bad := squareMatrix(1, 10)
		bad[1][0] = -1
		in.Travel = bad
		if err := in.Validate(); err == nil {
			t.Fatal("expected error for negative travel time")
		}
	})
}

func TestFinishArrivalRejectsPastEndTime(t *testing.T) {
	finishOpen := []bool{true}
	slotStarts := []float64{600}

	if _, ok := finishArrival(690, 20, finishOpen, slotStarts, 700); ok {
		t.Fatal("expected infeasible when tf exceeds end_time")
	}

	minute, ok := finishArrival(600, 10, finishOpen, slotStarts, 700)
	if !ok || minute != math.Max(610, 600) {
		t.Fatalf("finishArrival = (%v, %v), want (610, true)", minute, ok)
	}
}
