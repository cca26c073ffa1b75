// Package series provides time-axis binning, NaN-aware averaging and
// resampling primitives for 1-D measurement series.
package series

import (
	"fmt"
	"math"
	"sort"

	"github.com/atmodata/atmodata/errs"
	"github.com/atmodata/atmodata/monotonic"
)

// Aggregation selects how values within one time bin are combined.
type Aggregation int

const (
	// Mean is the NaN-aware arithmetic mean.
	Mean Aggregation = iota
	// AngleMean is the circular mean of angles in degrees (see MeanAngle).
	AngleMean
	// DayFracMean is the circular mean of day fractions in [0, 1)
	// (see MeanDayFrac).
	DayFracMean
)

// TimeBins is the result of binning a time axis. It carries everything
// BinColumn needs to aggregate a dependent variable onto the binned axis.
type TimeBins struct {
	// Centers holds the bin center per bin, each ending in 5.
	Centers []float64

	// Empty flags bins without samples. Nil when empty bins were dropped.
	Empty []bool

	// bin index per retained sample, aligned with Centers
	bins []int

	// retained flags samples inside the forced time range, one per input
	// sample. All true when the range was not forced.
	retained []bool
}

// BinTime10s bins a strictly increasing time axis (unit: seconds) into 10 s
// intervals centered on multiples of 5: a sample t falls into the bin with
// center c when c-5 <= t < c+5.
//
// With forceRange, bins reaching beyond the range of t are removed and
// samples outside the remaining bins are excluded from aggregation. With
// dropEmpty, bins that received no sample are removed; otherwise they are
// kept and flagged in Empty.
func BinTime10s(t []float64, forceRange, dropEmpty bool) (*TimeBins, error) {
	if len(t) == 0 {
		return nil, fmt.Errorf("%w: time axis is empty", errs.ErrEmptyInput)
	}
	if !monotonic.StrictlyIncreasing(t) {
		return nil, fmt.Errorf("%w: time axis must be strictly increasing", errs.ErrNotMonotonic)
	}

	centers := binCenters(t[0], t[len(t)-1])

	retained := make([]bool, len(t))
	for i := range retained {
		retained[i] = true
	}

	if forceRange {
		if centers[0] < t[0] {
			centers = centers[1:]
		}
		if len(centers) > 0 && centers[len(centers)-1] > t[len(t)-1] {
			centers = centers[:len(centers)-1]
		}
		if len(centers) == 0 {
			return nil, fmt.Errorf("%w: no bins fall within the time range", errs.ErrEmptyInput)
		}
		for i, ti := range t {
			retained[i] = ti >= centers[0]-5 && ti < centers[len(centers)-1]+5
		}
	}

	bins := make([]int, 0, len(t))
	counts := make([]int, len(centers))
	for i, ti := range t {
		if !retained[i] {
			continue
		}
		// index of the last bin whose lower edge is <= ti
		idx := sort.Search(len(centers), func(j int) bool { return centers[j]-5 > ti }) - 1
		bins = append(bins, idx)
		counts[idx]++
	}

	tb := &TimeBins{Centers: centers, bins: bins, retained: retained}

	if dropEmpty {
		remap := make([]int, len(centers))
		kept := centers[:0]
		for i, c := range centers {
			remap[i] = len(kept)
			if counts[i] > 0 {
				kept = append(kept, c)
			}
		}
		tb.Centers = kept
		for i, b := range tb.bins {
			tb.bins[i] = remap[b]
		}
	} else {
		tb.Empty = make([]bool, len(centers))
		for i, n := range counts {
			tb.Empty[i] = n == 0
		}
	}

	return tb, nil
}

// binCenters spans bin centers ending in 5 from just below lo to just above
// hi, one per 10 s interval.
func binCenters(lo, hi float64) []float64 {
	start := math.Floor(lo)
	start -= positiveMod(start, 10)
	end := math.Floor(hi)
	end -= positiveMod(end, 10)

	centers := make([]float64, 0, int((end-start)/10)+1)
	for c := start + 5; c <= end+5; c += 10 {
		centers = append(centers, c)
	}

	return centers
}

func positiveMod(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}

	return r
}

// BinColumn aggregates a dependent variable v onto the binned time axis.
// v must align index-for-index with the time axis passed to BinTime10s.
// Bins without any finite sample yield NaN.
func BinColumn(v []float64, tb *TimeBins, agg Aggregation) ([]float64, error) {
	if len(v) != len(tb.retained) {
		return nil, fmt.Errorf("%w: %d values for a time axis of %d samples",
			errs.ErrLengthMismatch, len(v), len(tb.retained))
	}

	groups := make([][]float64, len(tb.Centers))
	pos := 0
	for i, keep := range tb.retained {
		if !keep {
			continue
		}
		b := tb.bins[pos]
		groups[b] = append(groups[b], v[i])
		pos++
	}

	out := make([]float64, len(groups))
	for i, g := range groups {
		switch agg {
		case AngleMean:
			out[i] = MeanAngle(g)
		case DayFracMean:
			out[i] = MeanDayFrac(g)
		default:
			out[i] = nanMean(g)
		}
	}

	return out, nil
}

// nanMean is the arithmetic mean of the finite elements, NaN if there are
// none.
func nanMean(v []float64) float64 {
	var sum float64
	n := 0
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		sum += x
		n++
	}
	if n == 0 {
		return math.NaN()
	}

	return sum / float64(n)
}
