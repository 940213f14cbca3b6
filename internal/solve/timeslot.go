package solve

import "math"

// slotOf maps a continuous arrival minute t to the index of the half-hour
// service slot that applies.
//
// whole = floor(t); h = whole/60; m = whole%60; canonical = 60*h + (30 if
// m > 30 else 0). The minute 30 itself belongs to the earlier slot: the
// gate is strictly greater than 30, not >= 30. canonical is always a
// listed slot start, so the matching index can be computed directly
// rather than scanned for.
//
// ok is false when t is before the first listed slot start.
func slotOf(t float64, slotStarts []float64) (idx int, ok bool) {
	if len(slotStarts) == 0 || t < slotStarts[0] {
		return 0, false
	}

	whole := math.Floor(t)
	h := math.Floor(whole / 60)
	m := whole - h*60
	canonical := 60 * h
	if m > 30 {
		canonical += 30
	}

	n := len(slotStarts)
	if canonical >= slotStarts[n-1] {
		return n - 1, true
	}

	// canonical always equals a listed slot start (every half hour is
	// listed), so its position can be read off directly from the first
	// slot start rather than linearly scanned for.
	idx = int(math.Round((canonical - slotStarts[0]) / 30))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return idx, true
}
