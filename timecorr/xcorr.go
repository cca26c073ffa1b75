package timecorr

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/atmodata/atmodata/errs"
	"github.com/atmodata/atmodata/internal/options"
	"github.com/atmodata/atmodata/series"
)

// CorrMode declares the expected correlation between the two series.
type CorrMode int

const (
	// PositiveCorr expects the series to correlate positively; the lag is
	// taken at the correlation maximum.
	PositiveCorr CorrMode = iota
	// NegativeCorr expects anti-correlated series; the lag is taken at the
	// correlation minimum.
	NegativeCorr
	// AutoCorr decides by the sign of the Pearson correlation of the
	// resampled series.
	AutoCorr
)

type xcorrConfig struct {
	xrange    [2]float64
	hasRange  bool
	bounds    [2]float64
	hasBounds bool
	upscale   int
	removeNaN bool
	padToZero bool
	normalize bool
	mode      CorrMode
}

// XCorrOption configures XCorrTimeLag.
type XCorrOption = options.Option[*xcorrConfig]

func newXCorrConfig() *xcorrConfig {
	return &xcorrConfig{
		upscale:   100,
		removeNaN: true,
		padToZero: true,
		normalize: true,
		mode:      PositiveCorr,
	}
}

// WithXRange restricts both series to reference positions in [lo, hi) before
// correlating. The default range spans min(x1) to max(x2).
func WithXRange(lo, hi float64) XCorrOption {
	return options.New(func(c *xcorrConfig) error {
		if hi <= lo {
			return fmt.Errorf("x range upper bound must exceed lower bound")
		}
		c.xrange = [2]float64{lo, hi}
		c.hasRange = true
		return nil
	})
}

// WithLagBounds restricts the reported lag to [lo, hi), e.g. when the sign
// of the instrument delay is known.
func WithLagBounds(lo, hi float64) XCorrOption {
	return options.New(func(c *xcorrConfig) error {
		if hi <= lo {
			return fmt.Errorf("lag upper bound must exceed lower bound")
		}
		c.bounds = [2]float64{lo, hi}
		c.hasBounds = true
		return nil
	})
}

// WithUpscale sets the resampling factor: both series are interpolated onto
// a common axis with upscale points per unit of x. The default is 100.
func WithUpscale(factor int) XCorrOption {
	return options.New(func(c *xcorrConfig) error {
		if factor < 1 {
			return fmt.Errorf("upscale factor must be at least 1")
		}
		c.upscale = factor
		return nil
	})
}

// WithNaNRemoval controls whether non-finite samples are dropped before
// resampling. Enabled by default.
func WithNaNRemoval(enabled bool) XCorrOption {
	return options.NoError(func(c *xcorrConfig) { c.removeNaN = enabled })
}

// WithZeroPadding controls whether each series is shifted so its median sits
// at zero, making the off-signal baseline contribute nothing to the
// correlation. Enabled by default.
func WithZeroPadding(enabled bool) XCorrOption {
	return options.NoError(func(c *xcorrConfig) { c.padToZero = enabled })
}

// WithNormalization controls whether each series is scaled by its maximum.
// Enabled by default.
func WithNormalization(enabled bool) XCorrOption {
	return options.NoError(func(c *xcorrConfig) { c.normalize = enabled })
}

// WithCorrMode sets the expected correlation sign. The default is
// PositiveCorr.
func WithCorrMode(mode CorrMode) XCorrOption {
	return options.NoError(func(c *xcorrConfig) { c.mode = mode })
}

// XCorrTimeLag estimates the time lag of the series (x2, y2) against the
// reference series (x1, y1) by cross-correlating both after resampling onto
// a common regular axis. A positive lag means y2 lags behind y1; a negative
// lag means it precedes. The result is in the unit of the x axes.
func XCorrTimeLag(x1, y1, x2, y2 []float64, opts ...XCorrOption) (float64, error) {
	cfg := newXCorrConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return 0, err
	}
	if len(x1) != len(y1) || len(x2) != len(y2) {
		return 0, fmt.Errorf("%w: x and y lengths differ", errs.ErrLengthMismatch)
	}
	if len(x1) == 0 || len(x2) == 0 {
		return 0, fmt.Errorf("%w: both series need data", errs.ErrEmptyInput)
	}

	lo, hi := x1[0], x2[0]
	for _, x := range x1 {
		lo = math.Min(lo, x)
	}
	for _, x := range x2 {
		hi = math.Max(hi, x)
	}
	if cfg.hasRange {
		lo, hi = cfg.xrange[0], cfg.xrange[1]
	}

	x1, y1 = cutRange(x1, y1, lo, hi)
	x2, y2 = cutRange(x2, y2, lo, hi)

	if cfg.removeNaN {
		x1, y1 = dropNonFinite(x1, y1)
		x2, y2 = dropNonFinite(x2, y2)
	}
	if len(y1) < 2 || len(y2) < 2 {
		return 0, fmt.Errorf("%w: too few samples after cutting", errs.ErrEmptyInput)
	}

	if cfg.padToZero {
		shiftByMedian(y1)
		shiftByMedian(y2)
	}
	if cfg.normalize {
		scaleByMax(y1)
		scaleByMax(y2)
	}

	// common regular axis over the reference series
	start, end := math.Floor(x1[0]), math.Ceil(x1[len(x1)-1])
	n := int((end - start) * float64(cfg.upscale))
	if n < 2 {
		return 0, fmt.Errorf("%w: reference series spans less than one x unit", errs.ErrEmptyInput)
	}
	step := (end - start) / float64(n)
	xnorm := make([]float64, n)
	for i := range xnorm {
		xnorm[i] = start + float64(i)*step
	}

	f, err := series.Interp1D(x1, y1, xnorm)
	if err != nil {
		return 0, err
	}
	g, err := series.Interp1D(x2, y2, xnorm)
	if err != nil {
		return 0, err
	}

	// full cross-correlation; displacement k runs from -(n-1) to n-1 and
	// maps to a lag of -k*step
	lags := make([]float64, 0, 2*n-1)
	corr := make([]float64, 0, 2*n-1)
	for k := -(n - 1); k <= n-1; k++ {
		lag := -float64(k) * step
		if cfg.hasBounds && (lag < cfg.bounds[0] || lag >= cfg.bounds[1]) {
			continue
		}
		var c float64
		for i := 0; i < n; i++ {
			j := i - k
			if j < 0 || j >= n {
				continue
			}
			c += f[i] * g[j]
		}
		lags = append(lags, lag)
		corr = append(corr, c)
	}
	if len(corr) == 0 {
		return 0, fmt.Errorf("%w: lag bounds exclude every displacement", errs.ErrEmptyInput)
	}

	mode := cfg.mode
	if mode == AutoCorr {
		if stat.Correlation(f, g, nil) < 0 {
			mode = NegativeCorr
		} else {
			mode = PositiveCorr
		}
	}

	best := 0
	for i, c := range corr {
		if (mode == PositiveCorr && c > corr[best]) || (mode == NegativeCorr && c < corr[best]) {
			best = i
		}
	}

	return lags[best], nil
}

func cutRange(x, y []float64, lo, hi float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i, xi := range x {
		if xi >= lo && xi < hi {
			xs = append(xs, xi)
			ys = append(ys, y[i])
		}
	}

	return xs, ys
}

func dropNonFinite(x, y []float64) ([]float64, []float64) {
	xs := x[:0]
	ys := y[:0]
	for i, yi := range y {
		if math.IsNaN(yi) || math.IsInf(yi, 0) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, yi)
	}

	return xs, ys
}

func shiftByMedian(y []float64) {
	sorted := append([]float64(nil), y...)
	sort.Float64s(sorted)
	var med float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		med = sorted[mid]
	} else {
		med = (sorted[mid-1] + sorted[mid]) / 2
	}
	for i := range y {
		y[i] -= med
	}
}

func scaleByMax(y []float64) {
	max := y[0]
	for _, v := range y[1:] {
		max = math.Max(max, v)
	}
	if max == 0 {
		return
	}
	for i := range y {
		y[i] /= max
	}
}
