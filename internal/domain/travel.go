package domain

import "fmt"

// TravelMatrix is a dense, square, non-negative travel-time matrix in
// minutes. Rows/columns are indexed 0..N-1 for checkpoints, N for Start,
// N+1 for Finish. Asymmetry is permitted; the diagonal is typically, but
// not required to be, zero.
type TravelMatrix struct {
	T [][]float64
}

func NewTravelMatrix(t [][]float64, size int) (TravelMatrix, error) {
	if len(t) != size {
		return TravelMatrix{}, fmt.Errorf("new travel matrix: has %d rows, want %d", len(t), size)
	}

	cp := make([][]float64, size)
	for i, row := range t {
		if len(row) != size {
			return TravelMatrix{}, fmt.Errorf("new travel matrix: row %d has %d entries, want %d", i, len(row), size)
		}
		for j, v := range row {
			if v < 0 {
				return TravelMatrix{}, fmt.Errorf("new travel matrix: T[%d][%d]=%v must be non-negative", i, j, v)
			}
		}
		cp[i] = append([]float64(nil), row...)
	}

	return TravelMatrix{T: cp}, nil
}

func (m TravelMatrix) At(from, to int) float64 { return m.T[from][to] }

func (m TravelMatrix) Size() int { return len(m.T) }
