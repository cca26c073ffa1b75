package series

import "math"

// MeanAngle returns the circular mean of angles given in degrees, in the
// range (-180, +180]. NaN and infinite elements are ignored; the mean of an
// empty input is NaN, a single angle is returned unchanged.
func MeanAngle(deg []float64) float64 {
	var sinSum, cosSum float64
	n := 0
	last := math.NaN()
	for _, d := range deg {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		r := d * math.Pi / 180
		sinSum += math.Sin(r)
		cosSum += math.Cos(r)
		last = d
		n++
	}

	switch n {
	case 0:
		return math.NaN()
	case 1:
		return last
	}

	fn := float64(n)

	return math.Atan2(sinSum/fn, cosSum/fn) * 180 / math.Pi
}

// MeanDayFrac returns the circular mean of day fractions in [0, 1). Day
// fractions wrap at midnight, so the arithmetic mean of e.g. 23:59 and 00:01
// would land at noon; mapping to angles first keeps the mean at midnight.
func MeanDayFrac(dfr []float64) float64 {
	finite := make([]float64, 0, len(dfr))
	for _, f := range dfr {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		finite = append(finite, f)
	}

	switch len(finite) {
	case 0:
		return math.NaN()
	case 1:
		return finite[0]
	}

	for i, f := range finite {
		finite[i] = f * 360
	}

	deg := MeanAngle(finite)
	if math.Abs(deg) < 1e-8 {
		return 0
	}
	if deg < 0 { // mean angle comes out in (-180, +180]
		deg += 360
	}

	return deg / 360
}
