package series

import (
	"fmt"
	"math"

	"github.com/atmodata/atmodata/errs"
)

// MapToReference maps the dependent variable vcmp, sampled at xcmp, onto the
// reference axis xref. Output element i holds the vcmp value whose xcmp
// element exactly equals xref[i], or NaN when xref[i] has no counterpart.
// Duplicate xcmp values resolve to the first occurrence.
func MapToReference(xref, xcmp, vcmp []float64) ([]float64, error) {
	if len(xcmp) != len(vcmp) {
		return nil, fmt.Errorf("%w: %d sample positions, %d values",
			errs.ErrLengthMismatch, len(xcmp), len(vcmp))
	}

	lookup := make(map[float64]float64, len(xcmp))
	for i, x := range xcmp {
		if _, ok := lookup[x]; !ok {
			lookup[x] = vcmp[i]
		}
	}

	out := make([]float64, len(xref))
	for i, x := range xref {
		if v, ok := lookup[x]; ok {
			out[i] = v
		} else {
			out[i] = math.NaN()
		}
	}

	return out, nil
}
