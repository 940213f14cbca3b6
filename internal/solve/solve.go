package solve

// Solve is the route-planning core's single operation: it computes the
// Start-to-Finish tour that visits the most distinct intermediate
// checkpoints and, among tours tied on that count, finishes earliest.
//
// Solve is a pure, synchronous function of in. It allocates two dense
// O(N * 2^N) tables for the duration of the call and releases them on
// return; it performs no I/O and is safe to call concurrently with other
// calls on disjoint inputs.
func Solve(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	dp := newDPTable(in.NCheckpoints)
	dp.fill(in)

	best, ok := selectBest(dp, in)
	if !ok {
		return Result{Count: 0, Route: nil, FinishTime: 0}, nil
	}

	route, err := reconstruct(dp, best.mask, best.i)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Count:      len(route),
		Route:      route,
		FinishTime: best.finish,
	}, nil
}
