package timecorr

import "time"

// FilterForward flags timestamps that break strictly increasing order when
// scanning forward: every element not greater than the running maximum is
// marked for removal. Returns the keep-mask and the number of removals.
// Useful for instrument logs whose clock was set back mid-recording.
func FilterForward(ts []time.Time) ([]bool, int) {
	keep := make([]bool, len(ts))
	removed := 0

	var max time.Time
	for i, t := range ts {
		if i == 0 || t.After(max) {
			keep[i] = true
			max = t
			continue
		}
		removed++
	}

	return keep, removed
}

// FilterBackward is the reverse counterpart of FilterForward: scanning from
// the end, every element not less than the running minimum is removed. Where
// FilterForward trusts the earliest samples, FilterBackward trusts the
// latest.
func FilterBackward(ts []time.Time) ([]bool, int) {
	keep := make([]bool, len(ts))
	removed := 0

	var min time.Time
	for i := len(ts) - 1; i >= 0; i-- {
		if i == len(ts)-1 || ts[i].Before(min) {
			keep[i] = true
			min = ts[i]
			continue
		}
		removed++
	}

	return keep, removed
}
