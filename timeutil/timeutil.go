// Package timeutil converts between timestamps, POSIX seconds and seconds
// after midnight (MDNS), the time axis convention of NASA-AMES time-series
// files.
package timeutil

import (
	"fmt"
	"math"
	"time"

	"github.com/atmodata/atmodata/errs"
)

// LayoutISO selects ISO 8601 parsing: RFC 3339 with optional fractional
// seconds, time zone and time-of-day parts.
const LayoutISO = "iso"

const secondsPerDay = 86400

// Midnight returns 00:00:00 of t's day, in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SecondsAfterMidnight returns the seconds elapsed since midnight of t's own
// day.
func SecondsAfterMidnight(t time.Time) float64 {
	return t.Sub(Midnight(t)).Seconds()
}

// EachAfterMidnight converts every timestamp to seconds after midnight of
// its own day. Timestamps past a day change restart near zero; use
// SinceMidnightOf with a fixed reference to keep a monotonic axis.
func EachAfterMidnight(ts []time.Time) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = SecondsAfterMidnight(t)
	}

	return out
}

// SinceMidnightOf converts every timestamp to seconds after midnight of the
// reference day. Values can exceed 86400 when the series crosses midnight.
func SinceMidnightOf(ts []time.Time, ref time.Time) []float64 {
	t0 := Midnight(ref)
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = t.Sub(t0).Seconds()
	}

	return out
}

// ParseToMDNS parses timestamp strings with the given layout (or LayoutISO)
// and converts them to seconds after midnight of the first timestamp's day.
// All timestamps must carry the same UTC offset; mixing offsets would make
// the axis ambiguous.
func ParseToMDNS(values []string, layout string) ([]float64, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no timestamps", errs.ErrEmptyInput)
	}

	ts := make([]time.Time, len(values))
	for i, s := range values {
		t, err := Parse(s, layout)
		if err != nil {
			return nil, err
		}
		ts[i] = t
	}

	_, ref := ts[0].Zone()
	for i, t := range ts[1:] {
		if _, off := t.Zone(); off != ref {
			return nil, fmt.Errorf("mixed UTC offsets: %q differs from %q", values[i+1], values[0])
		}
	}

	return SinceMidnightOf(ts, ts[0]), nil
}

// Parse parses one timestamp string. layout is a Go reference layout, or
// LayoutISO for ISO 8601 with optional sub-second and zone parts. Strings
// without zone information come back in UTC.
func Parse(s, layout string) (time.Time, error) {
	if layout != LayoutISO {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", errs.ErrBadFormat, err)
		}
		return t, nil
	}

	for _, l := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: cannot parse %q as ISO 8601", errs.ErrBadFormat, s)
}

// ParseUnix parses one timestamp string to POSIX seconds. Strings without
// zone information are interpreted in loc (nil means UTC).
func ParseUnix(s, layout string, loc *time.Location) (float64, error) {
	if loc == nil {
		loc = time.UTC
	}

	var t time.Time
	var err error
	if layout == LayoutISO {
		t, err = Parse(s, layout)
		if err == nil && t.Location() == time.UTC {
			// Parse defaults zoneless strings to UTC; rebase onto loc.
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
		}
	} else {
		t, err = time.ParseInLocation(layout, s, loc)
		if err != nil {
			err = fmt.Errorf("%w: %v", errs.ErrBadFormat, err)
		}
	}
	if err != nil {
		return 0, err
	}

	return float64(t.UnixNano()) / float64(time.Second), nil
}

// PosixToMDNS converts POSIX timestamps to seconds after midnight UTC of the
// reference day. A zero ref derives the reference from the first timestamp.
func PosixToMDNS(ts []float64, ref time.Time) []float64 {
	var t0 float64
	if ref.IsZero() {
		if len(ts) == 0 {
			return nil
		}
		t0 = ts[0] - math.Mod(ts[0], secondsPerDay)
		if math.Mod(ts[0], secondsPerDay) < 0 {
			t0 -= secondsPerDay
		}
	} else {
		t0 = float64(Midnight(ref.UTC()).Unix())
	}

	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = t - t0
	}

	return out
}

// FromMDNS converts seconds after midnight back to timestamps, counting from
// midnight of the reference day.
func FromMDNS(mdns []float64, ref time.Time) []time.Time {
	t0 := Midnight(ref)
	out := make([]time.Time, len(mdns))
	for i, sec := range mdns {
		out[i] = t0.Add(time.Duration(sec * float64(time.Second)))
	}

	return out
}

// AddDays returns day0 advanced by a fractional number of days.
func AddDays(day0 time.Time, days float64) time.Time {
	return day0.Add(time.Duration(days * secondsPerDay * float64(time.Second)))
}
