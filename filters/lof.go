package filters

import (
	"fmt"
	"math"
	"sort"

	"github.com/atmodata/atmodata/errs"
)

// OutlierMode selects which excursions LOF1D reports.
type OutlierMode int

const (
	// BothOutliers reports positive and negative excursions.
	BothOutliers OutlierMode = iota
	// PositiveOutliers reports only elements above their predecessor.
	PositiveOutliers
	// NegativeOutliers reports only elements below their predecessor.
	NegativeOutliers
)

// LOF1D detects outliers in a 1-D series with the local-outlier-factor
// algorithm, applied to a time-series embedding: each sample becomes the 2-D
// point (value, index*density), where density is the median absolute
// sample-to-sample difference. That scaling makes neighborhoods span
// comparable ranges in both directions. k is the neighborhood size; elements
// whose LOF score exceeds threshold (typical value 1.5) are flagged.
//
// The series is reflected k elements past both ends so edge samples have
// full neighborhoods. All values must be finite; mask NaN upstream.
func LOF1D(v []float64, k int, threshold float64, mode OutlierMode) ([]bool, error) {
	n := len(v)
	if n == 0 {
		return nil, fmt.Errorf("%w: no data", errs.ErrEmptyInput)
	}
	if k < 1 || k >= n {
		return nil, fmt.Errorf("neighborhood size %d out of range [1, %d)", k, n)
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("non-finite value at index %d", i)
		}
	}

	vdiff := make([]float64, n)
	for i := 1; i < n; i++ {
		vdiff[i] = v[i] - v[i-1]
	}

	density := diffDensity(vdiff)

	// Embedding with reflected padding. The index axis is linear, so its
	// odd reflection continues the line and can be computed directly.
	total := n + 2*k
	px := make([]float64, total)
	py := make([]float64, total)
	for i := 0; i < total; i++ {
		src := i - k
		if src < 0 {
			src = -src
		} else if src > n-1 {
			src = 2*(n-1) - src
		}
		px[i] = v[src]
		py[i] = float64(i-k) * density
	}

	scores := lofScores(px, py, k)

	mask := make([]bool, n)
	for i := range mask {
		if scores[i+k] <= threshold {
			continue
		}
		switch mode {
		case PositiveOutliers:
			mask[i] = vdiff[i] > 0
		case NegativeOutliers:
			mask[i] = vdiff[i] < 0
		default:
			mask[i] = true
		}
	}

	return mask, nil
}

// diffDensity is the median absolute difference, falling back to the median
// over nonzero differences (or 1) for series dominated by repeated values.
func diffDensity(vdiff []float64) float64 {
	abs := make([]float64, len(vdiff))
	for i, d := range vdiff {
		abs[i] = math.Abs(d)
	}

	if d := median(abs); d != 0 {
		return d
	}

	nonzero := abs[:0]
	for _, d := range abs {
		if d != 0 {
			nonzero = append(nonzero, d)
		}
	}
	if len(nonzero) == 0 {
		return 1
	}

	return median(nonzero)
}

// median of v; v is reordered.
func median(v []float64) float64 {
	sort.Float64s(v)
	mid := len(v) / 2
	if len(v)%2 == 1 {
		return v[mid]
	}

	return (v[mid-1] + v[mid]) / 2
}

// lofScores computes the LOF score of every point in the 2-D set (px, py)
// with neighborhood size k.
func lofScores(px, py []float64, k int) []float64 {
	n := len(px)

	type neighborhood struct {
		idx   []int
		dist  []float64
		kDist float64
	}

	hoods := make([]neighborhood, n)
	order := make([]int, n)
	dist := make([]float64, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			dx := px[i] - px[j]
			dy := py[i] - py[j]
			dist[j] = math.Hypot(dx, dy)
			order[j] = j
		}
		d := dist
		sort.Slice(order, func(a, b int) bool { return d[order[a]] < d[order[b]] })

		// order[0] is the point itself (distance 0)
		h := neighborhood{
			idx:  append([]int(nil), order[1:k+1]...),
			dist: make([]float64, k),
		}
		for m, j := range h.idx {
			h.dist[m] = dist[j]
		}
		h.kDist = h.dist[k-1]
		hoods[i] = h
	}

	// local reachability density
	lrd := make([]float64, n)
	for i, h := range hoods {
		var reach float64
		for m, j := range h.idx {
			reach += math.Max(hoods[j].kDist, h.dist[m])
		}
		lrd[i] = float64(k) / reach
	}

	scores := make([]float64, n)
	for i, h := range hoods {
		var sum float64
		for _, j := range h.idx {
			sum += lrd[j]
		}
		scores[i] = sum / float64(k) / lrd[i]
	}

	return scores
}
