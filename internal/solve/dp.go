package solve

import "math"

// parentUnvisited marks a (mask, i) state that was never populated.
// parentFromStart marks a populated state whose predecessor is Start
// itself, distinct from parentUnvisited so reconstruction can detect a
// broken parent chain instead of mistaking it for a root.
const (
	parentUnvisited int32 = -2
	parentFromStart int32 = -1
)

// dpTable is the bitmask DP engine, grounded on the Held-Karp
// formulation: dpVal[mask][i] is the earliest minute at which
// the walker has finished serving checkpoint i (arrival + wait + dwell)
// having visited exactly the set of checkpoints named by mask, with i in
// mask, and with Finish known to remain reachable from i at that time.
//
// parent[mask][i] stores the position of the checkpoint visited
// immediately before i on the best known walk into (mask, i); the
// predecessor's own mask is mask with i's bit cleared, so it never needs
// to be stored separately (cf. katalvlaran-lvlath's tsp.TSPExact, which
// uses the same prevMask-by-XOR trick for the Held-Karp tour DP).
type dpTable struct {
	n      int
	dpVal  [][]float64
	parent [][]int32
}

func newDPTable(n int) *dpTable {
	size := 1 << n
	dp := &dpTable{
		n:      n,
		dpVal:  make([][]float64, size),
		parent: make([][]int32, size),
	}
	for mask := 0; mask < size; mask++ {
		dp.dpVal[mask] = make([]float64, n)
		dp.parent[mask] = make([]int32, n)
		for i := 0; i < n; i++ {
			dp.dpVal[mask][i] = math.Inf(1)
			dp.parent[mask][i] = parentUnvisited
		}
	}
	return dp
}

// fill runs the DP over subsets of increasing cardinality: initialization
// of |S|=1 states directly from Start, then transitions extending a
// populated (S, i) by one unvisited checkpoint j at a time. Subsets are
// bucketed by popcount so every extension reads a finalized predecessor
// value.
func (dp *dpTable) fill(in Input) {
	n := in.NCheckpoints
	start := in.startIndex()
	buckets := bucketsByPopcount(n)

	// |S| = 1: every direct Start -> j walk.
	for _, mask := range buckets[1] {
		j := bitPosition(mask)
		arrival := in.StartTime + in.Travel[start][j]
		openJ, ok := earliestOpen(in.OpenAt[j], in.SlotStarts, arrival)
		if !ok {
			continue
		}
		departure := openJ + in.Dwell
		if departure > in.EndTime {
			continue
		}
		if !canReachFinish(departure, in.Travel[j][in.finishIndex()], in.FinishOpen, in.SlotStarts, in.EndTime) {
			continue
		}
		dp.dpVal[mask][j] = departure
		dp.parent[mask][j] = parentFromStart
	}

	// |S| = k -> |S| = k+1, for k from 1 to n-1.
	for card := 1; card < n; card++ {
		for _, mask := range buckets[card] {
			for i := 0; i < n; i++ {
				if mask&(1<<i) == 0 {
					continue
				}
				depI := dp.dpVal[mask][i]
				if math.IsInf(depI, 1) {
					continue
				}

				for j := 0; j < n; j++ {
					if mask&(1<<j) != 0 {
						continue
					}

					arrival := depI + in.Travel[i][j]
					if arrival > in.EndTime {
						continue
					}
					openJ, ok := earliestOpen(in.OpenAt[j], in.SlotStarts, arrival)
					if !ok {
						continue
					}
					departure := openJ + in.Dwell
					if departure > in.EndTime {
						continue
					}
					if !canReachFinish(departure, in.Travel[j][in.finishIndex()], in.FinishOpen, in.SlotStarts, in.EndTime) {
						continue
					}

					next := mask | (1 << j)
					// Strict < means the first writer wins on ties.
					if departure < dp.dpVal[next][j] {
						dp.dpVal[next][j] = departure
						dp.parent[next][j] = int32(i)
					}
				}
			}
		}
	}
}

// bucketsByPopcount groups every mask in [0, 2^n) by its population
// count, so the DP fill can process subsets strictly in cardinality
// order. Bucketing by popcount is convenient but not the only valid
// order; any order that respects subset inclusion would work.
func bucketsByPopcount(n int) [][]int {
	size := 1 << n
	buckets := make([][]int, n+1)
	for mask := 1; mask < size; mask++ {
		c := popcount(mask)
		buckets[c] = append(buckets[c], mask)
	}
	return buckets
}

func popcount(mask int) int {
	count := 0
	for mask != 0 {
		mask &= mask - 1
		count++
	}
	return count
}

// bitPosition returns the index of the single set bit in a mask with
// exactly one bit set.
func bitPosition(mask int) int {
	pos := 0
	for mask > 1 {
		mask >>= 1
		pos++
	}
	return pos
}
