package filters

import (
	"fmt"
	"math"

	"github.com/atmodata/atmodata/series"
)

// FilterJumps masks jumps in v (see MaskJumps) and returns a copy with the
// flagged elements replaced by NaN, together with the mask. With
// removeRepeated, runs of more than two equal values are removed first.
// With interpolate, the gaps are filled by linear interpolation over the
// surviving elements; this assumes equidistant spacing of the variable v
// depends on.
func FilterJumps(v []float64, threshold float64, lookAhead int, absDelta, removeRepeated, interpolate bool) ([]float64, []bool, error) {
	if lookAhead < 1 || lookAhead >= len(v) {
		return nil, nil, fmt.Errorf("look-ahead %d out of range [1, %d)", lookAhead, len(v))
	}

	result := append([]float64(nil), v...)

	if removeRepeated {
		for i, bad := range MaskRepeated(result, 2, 1e-6) {
			if bad {
				result[i] = math.NaN()
			}
		}
	}

	mask := MaskJumps(result, threshold, lookAhead, absDelta)
	for i, bad := range mask {
		if bad {
			result[i] = math.NaN()
		}
	}

	if interpolate {
		filled, err := interpolateGaps(result)
		if err != nil {
			return nil, nil, err
		}
		result = filled
	}

	return result, mask, nil
}

func interpolateGaps(v []float64) ([]float64, error) {
	xs := make([]float64, 0, len(v))
	ys := make([]float64, 0, len(v))
	for i, y := range v {
		if math.IsNaN(y) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, y)
	}
	if len(xs) == len(v) {
		return v, nil
	}

	xq := make([]float64, len(v))
	for i := range xq {
		xq[i] = float64(i)
	}

	return series.Interp1D(xs, ys, xq)
}
