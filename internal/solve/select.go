package solve

import (
	"errors"
	"math"
)

// terminalState is a scanned, feasible (mask, i) candidate paired with
// its actual Finish arrival minute.
type terminalState struct {
	mask   int
	i      int
	finish float64
}

// selectBest scans every populated (mask, i) state, computes its actual
// Finish arrival minute, and selects the lexicographic best by
// (popcount(mask) desc, finish asc), breaking further ties by (mask, i)
// scan order — deterministic, but otherwise an arbitrary tiebreak among
// equally good routes.
func selectBest(dp *dpTable, in Input) (terminalState, bool) {
	best := terminalState{mask: -1}
	bestCard := -1
	found := false

	size := 1 << in.NCheckpoints
	for mask := 1; mask < size; mask++ {
		for i := 0; i < in.NCheckpoints; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			depI := dp.dpVal[mask][i]
			if math.IsInf(depI, 1) {
				continue
			}

			finish, ok := finishArrival(depI, in.Travel[i][in.finishIndex()], in.FinishOpen, in.SlotStarts, in.EndTime)
			if !ok {
				continue
			}

			card := popcount(mask)
			if !found || card > bestCard || (card == bestCard && finish < best.finish) {
				found = true
				bestCard = card
				best = terminalState{mask: mask, i: i, finish: finish}
			}
		}
	}

	return best, found
}

// ErrBrokenParentChain signals an internal invariant violation: a
// populated DP state whose parent chain does not terminate cleanly at
// Start. This must never happen given a correct DP fill; encountering it
// is a bug, not a data problem.
var ErrBrokenParentChain = errors.New("solve: broken parent chain during reconstruction")

// reconstruct walks parent links from (mask, i) back to the from-Start
// marker, emitting checkpoint indices, then reverses them into
// Start-to-last visiting order.
func reconstruct(dp *dpTable, mask, i int) ([]int, error) {
	route := make([]int, 0, dp.n)

	for {
		if mask < 0 || mask >= len(dp.parent) || i < 0 || i >= dp.n {
			return nil, ErrBrokenParentChain
		}

		route = append(route, i)
		p := dp.parent[mask][i]

		switch p {
		case parentFromStart:
			reverse(route)
			return route, nil
		case parentUnvisited:
			return nil, ErrBrokenParentChain
		default:
			prevMask := mask &^ (1 << i)
			mask = prevMask
			i = int(p)
		}
	}
}

func reverse(xs []int) {
	for l, r := 0, len(xs)-1; l < r; l, r = l+1, r-1 {
		xs[l], xs[r] = xs[r], xs[l]
	}
}
