// Package boundary implements the integer wire encoding used to carry a
// solve.Result across a process or FFI boundary: three header integers
// followed by the route. It exists so that encoding is exercised and
// tested even though solve.Solve itself never touches it — the core
// stays I/O-free and the encoding lives at its edge, the way a
// foreign-function bridge would use it.
package boundary

import (
	"fmt"
	"math"

	"scout-route-service/internal/solve"
)

// EncodeResult packs a solve.Result into the wire format:
// [count, route_length, round(finish_time*100)] followed by route_length
// checkpoint indices. finish_time is carried as a centi-minute integer so
// two fractional digits of a finish time (fractions come from real-valued
// travel times; slot starts are whole minutes) survive a
// non-floating-point transport.
func EncodeResult(res solve.Result) []int32 {
	out := make([]int32, 0, 3+len(res.Route))
	out = append(out,
		int32(res.Count),
		int32(len(res.Route)),
		int32(math.Round(res.FinishTime*100)),
	)
	for _, c := range res.Route {
		out = append(out, int32(c))
	}
	return out
}

// DecodeResult is EncodeResult's inverse. It validates the header against
// the payload length before trusting any of it.
func DecodeResult(wire []int32) (solve.Result, error) {
	if len(wire) < 3 {
		return solve.Result{}, fmt.Errorf("boundary: decode: wire payload has %d ints, want at least 3", len(wire))
	}

	count := int(wire[0])
	routeLen := int(wire[1])
	finishCenti := wire[2]

	if routeLen < 0 {
		return solve.Result{}, fmt.Errorf("boundary: decode: route_length=%d is negative", routeLen)
	}
	if len(wire) != 3+routeLen {
		return solve.Result{}, fmt.Errorf("boundary: decode: wire has %d ints, want %d for route_length=%d", len(wire), 3+routeLen, routeLen)
	}

	var route []int
	if routeLen > 0 {
		route = make([]int, routeLen)
		for i := 0; i < routeLen; i++ {
			route[i] = int(wire[3+i])
		}
	}

	return solve.Result{
		Count:      count,
		Route:      route,
		FinishTime: float64(finishCenti) / 100,
	}, nil
}
