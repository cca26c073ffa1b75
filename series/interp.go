package series

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/atmodata/atmodata/errs"
	"github.com/atmodata/atmodata/monotonic"
)

// Interp1D evaluates the piecewise-linear interpolant through (x, y) at the
// query points xq. Queries outside the range of x are extrapolated linearly
// from the first or last segment. x must be strictly increasing and hold at
// least two points.
func Interp1D(x, y, xq []float64) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x values, %d y values", errs.ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: need at least two points", errs.ErrEmptyInput)
	}
	if !monotonic.StrictlyIncreasing(x) {
		return nil, fmt.Errorf("%w: x must be strictly increasing", errs.ErrNotMonotonic)
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(x, y); err != nil {
		return nil, err
	}

	n := len(x)
	out := make([]float64, len(xq))
	for i, q := range xq {
		switch {
		case q < x[0]:
			out[i] = extrapolate(x[0], y[0], x[1], y[1], q)
		case q > x[n-1]:
			out[i] = extrapolate(x[n-2], y[n-2], x[n-1], y[n-1], q)
		default:
			out[i] = pl.Predict(q)
		}
	}

	return out, nil
}

func extrapolate(x0, y0, x1, y1, q float64) float64 {
	return y0 + (y1-y0)/(x1-x0)*(q-x0)
}
