// Package filters provides outlier and artifact masks for 1-D measurement
// series. All masks share one polarity: true flags an offending element.
package filters

import "math"

// MaskRepeated flags elements of consecutive runs of (approximately) equal
// values beyond the first n occurrences. Equality is checked against the
// first value of the run with absolute tolerance atol.
func MaskRepeated(v []float64, n int, atol float64) []bool {
	mask := make([]bool, len(v))
	if len(v) == 0 {
		return mask
	}

	current := v[0]
	count := 0
	for i, x := range v {
		if math.Abs(x-current) < atol || (math.IsNaN(x) && math.IsNaN(current)) {
			count++
		} else {
			current = x
			count = 1
		}
		mask[i] = count > n
	}

	return mask
}

// MaskJumps flags elements that jump away from their predecessor by more
// than threshold. After a jump, up to lookAhead subsequent elements are
// compared against the pre-jump value, so short spikes are flagged entirely
// while a genuine level change is accepted once the look-ahead is exhausted.
// With absDelta, the magnitude of the difference counts; otherwise only
// positive excursions are jumps.
func MaskJumps(v []float64, threshold float64, lookAhead int, absDelta bool) []bool {
	n := len(v)
	mask := make([]bool, n)

	i := 0
	for i < n-1 {
		cur := v[i]
		if delta(v[i+1], cur, absDelta) > threshold {
			end := i + lookAhead + 1
			if end > n {
				end = n
			}
			for j := i + 1; j < end; j++ {
				if delta(v[j], cur, absDelta) <= threshold {
					break
				}
				mask[j] = true
				i = j
			}
		}
		i++
	}

	return mask
}

func delta(next, cur float64, abs bool) float64 {
	d := next - cur
	if abs {
		d = math.Abs(d)
	}

	return d
}

// ExtendMask grows every flagged region by n elements, inserted right and
// left in alternating fashion (right first).
func ExtendMask(m []bool, n int) []bool {
	out := make([]bool, len(m))
	for i := range out {
		lo := i - (n - n/2)
		if lo < 0 {
			lo = 0
		}
		hi := i + n/2
		if hi > len(m)-1 {
			hi = len(m) - 1
		}
		for j := lo; j <= hi; j++ {
			if m[j] {
				out[i] = true
				break
			}
		}
	}

	return out
}
