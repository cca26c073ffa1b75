package series

import "math"

// CalcShift computes per-element shifts that, added to arr, move its values
// onto a regular grid with the given step. A candidate shift outside
// [lower, upper) is reset to zero, which re-anchors the grid at that
// element. The first shift aligns arr[0] to the nearest lower grid point
// unless it already sits on the grid.
func CalcShift(arr []float64, step, lower, upper float64) []float64 {
	const tol = 1e-9

	shift := make([]float64, len(arr))
	if len(arr) == 0 {
		return shift
	}

	m := math.Mod(arr[0], step)
	if m < 0 {
		m += step
	}
	if !(m < tol || math.Abs(step-m) < tol) {
		shift[0] = -m
	}

	for i := 1; i < len(arr); i++ {
		offset := (arr[i-1] - arr[i] + shift[i-1]) + step
		if offset < lower || offset >= upper {
			offset = 0
		}
		shift[i] = offset
	}

	return shift
}
