package solve

import "math"

// earliestOpen scans slot indices from slotOf(tArrive) upward (clamped to
// 0 if tArrive is before the first slot start) and returns the earliest
// minute >= tArrive at which checkpoint c is open. ok is false if no open
// slot is found.
func earliestOpen(open []bool, slotStarts []float64, tArrive float64) (minute float64, ok bool) {
	start, found := slotOf(tArrive, slotStarts)
	if !found {
		start = 0
	}

	for s := start; s < len(slotStarts); s++ {
		if !open[s] {
			continue
		}
		return math.Max(tArrive, slotStarts[s]), true
	}
	return 0, false
}

// canReachFinish reports whether Finish is reachable, open, and within
// the event window when departing checkpoint i at tDepart. It is used
// both as a DP pruning predicate and, via finishArrival, as the final
// finish-time evaluator.
func canReachFinish(tDepart, travelToFinish float64, finishOpen []bool, slotStarts []float64, endTime float64) bool {
	_, ok := finishArrival(tDepart, travelToFinish, finishOpen, slotStarts, endTime)
	return ok
}

// finishArrival computes the actual Finish arrival minute for a walker
// departing checkpoint i at tDepart: tf = tDepart + travelToFinish; if tf
// exceeds endTime it's infeasible; otherwise the first open Finish slot
// at or after slotOf(tf) yields max(tf, slot_starts[s]), provided that
// does not exceed endTime.
func finishArrival(tDepart, travelToFinish float64, finishOpen []bool, slotStarts []float64, endTime float64) (float64, bool) {
	tf := tDepart + travelToFinish
	if tf > endTime {
		return 0, false
	}

	start, found := slotOf(tf, slotStarts)
	if !found {
		start = 0
	}

	for s := start; s < len(slotStarts); s++ {
		if !finishOpen[s] {
			continue
		}
		actual := math.Max(tf, slotStarts[s])
		if actual > endTime {
			continue
		}
		return actual, true
	}
	return 0, false
}
