package series

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/atmodata/atmodata/errs"
)

// MovingAverage smooths v with a centered window of the given size
// (convolution with a uniform kernel).
//
// NaN elements poison every window they fall into unless interpolateNaN is
// set, which first replaces them by linear interpolation over the finite
// elements (with edge extrapolation). With expandEdges, the run-in zones at
// both ends, where the window extends past the data, are replaced by the
// first and last fully covered average.
func MovingAverage(v []float64, window int, interpolateNaN, expandEdges bool) ([]float64, error) {
	n := len(v)
	if n == 0 {
		return nil, fmt.Errorf("%w: no data to average", errs.ErrEmptyInput)
	}
	if window < 1 || window > n {
		return nil, fmt.Errorf("window size %d out of range [1, %d]", window, n)
	}

	if interpolateNaN {
		var err error
		if v, err = interpolateFinite(v); err != nil {
			return nil, err
		}
	}

	half := (window - 1) / 2
	out := make([]float64, n)
	for i := range out {
		hi := i + half
		lo := hi - window + 1
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		out[i] = floats.Sum(v[lo:hi+1]) / float64(window)
	}

	if expandEdges {
		for i := 0; i < window-1; i++ {
			out[i] = out[window-1]
		}
		for i := n - window + 1; i < n; i++ {
			out[i] = out[n-window]
		}
	}

	return out, nil
}

// interpolateFinite replaces non-finite elements of v by linear
// interpolation over the finite ones, indexed by position.
func interpolateFinite(v []float64) ([]float64, error) {
	xs := make([]float64, 0, len(v))
	ys := make([]float64, 0, len(v))
	for i, y := range v {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, y)
	}
	if len(xs) == len(v) {
		return v, nil
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("%w: need at least two finite values to interpolate", errs.ErrEmptyInput)
	}

	xq := make([]float64, len(v))
	for i := range xq {
		xq[i] = float64(i)
	}

	return Interp1D(xs, ys, xq)
}
