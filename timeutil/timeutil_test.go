package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atmodata/atmodata/errs"
)

func TestSecondsAfterMidnight(t *testing.T) {
	ts := time.Date(2020, 5, 15, 1, 30, 0, 0, time.UTC)
	require.Equal(t, 5400.0, SecondsAfterMidnight(ts))
	require.Equal(t, 0.0, SecondsAfterMidnight(Midnight(ts)))
}

func TestEachAfterMidnight(t *testing.T) {
	ts := []time.Time{
		time.Date(2000, 1, 1, 1, 0, 0, 0, time.UTC),
		time.Date(2000, 1, 1, 2, 0, 0, 0, time.UTC),
	}
	require.Equal(t, []float64{3600, 7200}, EachAfterMidnight(ts))
}

func TestSinceMidnightOf_CrossesMidnight(t *testing.T) {
	ts := []time.Time{
		time.Date(2000, 1, 1, 23, 0, 0, 0, time.UTC),
		time.Date(2000, 1, 2, 1, 0, 0, 0, time.UTC),
	}
	require.Equal(t, []float64{82800, 90000}, SinceMidnightOf(ts, ts[0]),
		"axis stays monotonic across the day change")

	// Per-day conversion wraps instead.
	require.Equal(t, []float64{82800, 3600}, EachAfterMidnight(ts))
}

func TestParseToMDNS(t *testing.T) {
	mdns, err := ParseToMDNS([]string{"2012-01-01T01:00:00", "2012-01-01T02:00:00"}, "2006-01-02T15:04:05")
	require.NoError(t, err)
	require.Equal(t, []float64{3600, 7200}, mdns)
}

func TestParseToMDNS_ISO(t *testing.T) {
	mdns, err := ParseToMDNS([]string{"2012-01-01T01:00:00+02:00", "2012-01-01T02:00:00+02:00"}, LayoutISO)
	require.NoError(t, err)
	require.Equal(t, []float64{3600, 7200}, mdns, "offsets cancel in the relative difference")

	// zero case
	mdns, err = ParseToMDNS([]string{"2012-01-01T00:00:00+02:00"}, LayoutISO)
	require.NoError(t, err)
	require.Equal(t, []float64{0}, mdns)
}

func TestParseToMDNS_MixedOffsets(t *testing.T) {
	_, err := ParseToMDNS([]string{"2012-01-01T01:00:00+02:00", "2012-01-01T02:00:00+01:00"}, LayoutISO)
	require.Error(t, err)

	_, err = ParseToMDNS(nil, LayoutISO)
	require.ErrorIs(t, err, errs.ErrEmptyInput)
}

func TestParse_BadInput(t *testing.T) {
	_, err := Parse("not a timestamp", LayoutISO)
	require.ErrorIs(t, err, errs.ErrBadFormat)

	_, err = Parse("2012-13-45", "2006-01-02")
	require.ErrorIs(t, err, errs.ErrBadFormat)
}

func TestParseUnix(t *testing.T) {
	got, err := ParseUnix("2020-05-15", "2006-01-02", nil)
	require.NoError(t, err)
	require.Equal(t, float64(time.Date(2020, 5, 15, 0, 0, 0, 0, time.UTC).Unix()), got)
}

func TestPosixToMDNS(t *testing.T) {
	require.Equal(t, []float64{3600, 7200, 10800}, PosixToMDNS([]float64{3600, 7200, 10800}, time.Time{}))

	ref := time.Date(2020, 5, 15, 13, 0, 0, 0, time.UTC) // time of day is ignored
	base := float64(time.Date(2020, 5, 15, 0, 0, 0, 0, time.UTC).Unix())
	require.Equal(t, []float64{3600}, PosixToMDNS([]float64{base + 3600}, ref))
}

func TestFromMDNS(t *testing.T) {
	ref := time.Date(2020, 5, 15, 0, 0, 0, 0, time.UTC)
	ts := FromMDNS([]float64{3600, 10800, 864000}, ref)

	require.Equal(t, time.Date(2020, 5, 15, 1, 0, 0, 0, time.UTC), ts[0])
	require.Equal(t, time.Date(2020, 5, 15, 3, 0, 0, 0, time.UTC), ts[1])
	require.Equal(t, time.Date(2020, 5, 25, 0, 0, 0, 0, time.UTC), ts[2], "ten days later")
}

func TestAddDays(t *testing.T) {
	got := AddDays(time.Date(2020, 5, 10, 0, 0, 0, 0, time.UTC), 10.5)
	require.Equal(t, time.Date(2020, 5, 20, 12, 0, 0, 0, time.UTC), got)
}
