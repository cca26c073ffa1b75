package ames

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atmodata/atmodata/errs"
)

// sampleOzone is a compact FFI 1001 file with one dependent variable,
// scale factor 1 and missing sentinel 9999, modeled on CARIBIC ozone data.
const sampleOzone = `16 1001
F. Obersteiner; A. Zahn
Institute for Meteorology and Climate Research (IMK), KIT
Ozone measured with a dual-beam UV photometer
IAGOS-CARIBIC
1 1
2020 03 04 2020 09 22
10
TimeCRef; CARIBIC_reference_time_since_0_hours_UTC; [s]
1
1
9999
Ozone; Ozone volume mixing ratio; [ppb]
0
1
TimeCRef	Ozone
84000	47.25
84010	9999
84020	48.5
`

func parseSample(t *testing.T, content string, opts ...ReaderOption) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(content), opts...)
	require.NoError(t, err)

	return doc
}

func TestParse_ValidOzone(t *testing.T) {
	doc := parseSample(t, sampleOzone)

	require.Equal(t, 16, doc.HeaderLines)
	require.Equal(t, "F. Obersteiner; A. Zahn", doc.Originator)
	require.Equal(t, "IAGOS-CARIBIC", doc.MissionName)
	require.Equal(t, 1, doc.VolumeIndex)
	require.Equal(t, 1, doc.VolumeTotal)
	require.Equal(t, Date{2020, 3, 4}, doc.StartDate)
	require.Equal(t, Date{2020, 9, 22}, doc.RevisionDate)
	require.Equal(t, 10.0, doc.Interval)
	require.Equal(t, 1, doc.NumVariables())
	require.Equal(t, []float64{1}, doc.ScaleFactors)
	require.Equal(t, []float64{9999}, doc.MissingSentinels)
	require.Empty(t, doc.SpecialComments)
	require.Equal(t, []string{"TimeCRef\tOzone"}, doc.NormalComments)

	require.Equal(t, []float64{84000, 84010, 84020}, doc.Independent)
	require.Equal(t, 3, doc.Len())

	ozone := doc.Variable("Ozone")
	require.NotNil(t, ozone)
	require.Equal(t, 47.25, ozone[0])
	require.True(t, math.IsNaN(ozone[1]), "sentinel value must decode to NaN")
	require.Equal(t, 48.5, ozone[2])

	require.NoError(t, doc.Validate())
}

func TestParse_HeaderCountMismatch(t *testing.T) {
	t.Run("declared exceeds input", func(t *testing.T) {
		bad := strings.Replace(sampleOzone, "16 1001", "42 1001", 1)

		_, err := Parse(strings.NewReader(bad))
		require.ErrorIs(t, err, errs.ErrBadFormat)
	})

	t.Run("off by one with trusted counts", func(t *testing.T) {
		// With auto-derivation the extra header line would swallow a data
		// row; trusting the declared comment counts surfaces the mismatch.
		bad := strings.Replace(sampleOzone, "16 1001", "17 1001", 1)

		_, err := Parse(strings.NewReader(bad), WithAutoCommentCount(false))
		require.ErrorIs(t, err, errs.ErrBadFormat)
	})
}

func TestParse_WrongFormatIndex(t *testing.T) {
	bad := strings.Replace(sampleOzone, "16 1001", "16 2110", 1)

	_, err := Parse(strings.NewReader(bad))
	require.ErrorIs(t, err, errs.ErrBadFormat)
}

func TestParse_MalformedFirstLine(t *testing.T) {
	for _, first := range []string{"1001", "x 1001", "16 x", "16 1001 0"} {
		bad := strings.Replace(sampleOzone, "16 1001", first, 1)

		_, err := Parse(strings.NewReader(bad))
		require.ErrorIs(t, err, errs.ErrBadFormat, "first line %q", first)
	}
}

func TestParse_ShortDataRow(t *testing.T) {
	// A row with one field where two are expected fails, never truncates.
	bad := strings.Replace(sampleOzone, "84010\t9999", "84010", 1)

	_, err := Parse(strings.NewReader(bad))
	require.ErrorIs(t, err, errs.ErrBadFormat)
	require.Contains(t, err.Error(), "fields")
}

func TestParse_NonNumericField(t *testing.T) {
	bad := strings.Replace(sampleOzone, "84010\t9999", "84010\tn/a", 1)

	_, err := Parse(strings.NewReader(bad))
	require.ErrorIs(t, err, errs.ErrBadFormat)
}

func TestParse_RevisionDateBeforeStartDate(t *testing.T) {
	bad := strings.Replace(sampleOzone, "2020 03 04 2020 09 22", "2020 03 04 2019 09 22", 1)

	_, err := Parse(strings.NewReader(bad))
	require.ErrorIs(t, err, errs.ErrBadFormat)
}

func TestParse_SentinelBeforeScale(t *testing.T) {
	// Scale factor 10: the sentinel must match the raw value 9999, and a
	// raw value of 999.9 (which scales to 9999) must survive.
	content := strings.Replace(sampleOzone, "\n1\n9999\n", "\n10\n9999\n", 1)
	content = strings.Replace(content, "84020\t48.5", "84020\t999.9", 1)

	doc := parseSample(t, content)
	ozone := doc.Variable("Ozone")

	require.Equal(t, 472.5, ozone[0], "non-sentinel values are scaled")
	require.True(t, math.IsNaN(ozone[1]), "raw sentinel becomes NaN before scaling")
	require.InDelta(t, 9999.0, ozone[2], 1e-9, "scaled value equal to the sentinel is kept")
}

func TestParse_EmptyData(t *testing.T) {
	headerOnly := sampleOzone[:strings.Index(sampleOzone, "84000")]

	t.Run("rejected by default", func(t *testing.T) {
		_, err := Parse(strings.NewReader(headerOnly))
		require.ErrorIs(t, err, errs.ErrEmptyData)
	})

	t.Run("allowed with option", func(t *testing.T) {
		doc, err := Parse(strings.NewReader(headerOnly), WithEmptyDataAllowed(true))
		require.NoError(t, err)
		require.Equal(t, 0, doc.Len())
	})
}

func TestParse_VerticalScales(t *testing.T) {
	content := `18 1001
origin
org
source
mission
1 1
1970 01 01 1970 01 02
0
time [s]
2
1
0.1
-9999
8888
CO; [ppb]
O3; [ppb]
0
0
0	10	20
1	-9999	30
2	12	8888
`
	doc, err := Parse(strings.NewReader(content), WithVerticalScales(true))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 0.1}, doc.ScaleFactors)
	require.Equal(t, []float64{-9999, 8888}, doc.MissingSentinels)

	co, o3 := doc.Variable("CO"), doc.Variable("O3")
	require.Equal(t, 10.0, co[0])
	require.True(t, math.IsNaN(co[1]))
	require.Equal(t, 12.0, co[2])
	require.InDelta(t, 2.0, o3[0], 1e-12)
	require.InDelta(t, 3.0, o3[1], 1e-12)
	require.True(t, math.IsNaN(o3[2]))
}

func TestParse_CollapsedSeparators(t *testing.T) {
	// Double spaces in the scale/sentinel lines and a space-separated data
	// block require separator collapsing.
	content := strings.ReplaceAll(sampleOzone, "\t", "  ")

	_, err := Parse(strings.NewReader(content), WithDataSeparator(" "))
	require.Error(t, err, "repeated separators must fail without collapsing")

	doc, err := Parse(strings.NewReader(content), WithDataSeparator(" "), WithCollapsedSeparators(true))
	require.NoError(t, err)
	require.Equal(t, 3, doc.Len())
}

func TestParse_VariableUnitsSplit(t *testing.T) {
	doc := parseSample(t, sampleOzone, WithVariableUnitsSplit(";"))

	require.Equal(t, []string{"Ozone; Ozone volume mixing ratio"}, doc.VariableNames)
	require.Equal(t, []string{"[ppb]"}, doc.VariableUnits)
}

func TestParse_ASCIIOnly(t *testing.T) {
	bad := strings.Replace(sampleOzone, "Ozone measured", "Özone measured", 1)

	_, err := Parse(strings.NewReader(bad), WithASCIIOnly(true))
	require.ErrorIs(t, err, errs.ErrBadFormat)

	// Permissive mode accepts the same input.
	doc, err := Parse(strings.NewReader(bad))
	require.NoError(t, err)
	require.Contains(t, doc.SourceDescription, "Özone")
}

func TestParse_LatinOneFallback(t *testing.T) {
	// 0xB0 is the degree sign in Latin-1 and invalid as UTF-8.
	raw := strings.Replace(sampleOzone, "dual-beam", "dual-beam \xb0", 1)

	doc, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Contains(t, doc.SourceDescription, "°")
}

func TestParse_DeclaredCommentCount(t *testing.T) {
	// With auto-derivation disabled, the declared NNCOML is trusted; a
	// wrong declared count then breaks the header line accounting.
	bad := strings.Replace(sampleOzone, "\n1\nTimeCRef\tOzone", "\n2\nTimeCRef\tOzone", 1)

	_, err := Parse(strings.NewReader(bad), WithAutoCommentCount(false))
	require.ErrorIs(t, err, errs.ErrBadFormat)
}

func TestComputeInterval(t *testing.T) {
	require.Equal(t, 10.0, ComputeInterval([]float64{0, 10, 20, 30}))
	require.Equal(t, 0.0, ComputeInterval([]float64{0, 10, 25}))
	require.Equal(t, 0.0, ComputeInterval([]float64{42}))
	require.Equal(t, 0.5, ComputeInterval([]float64{1, 1.5, 2, 2.5}))
}
