package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atmodata/atmodata/errs"
)

func TestBinTime10s(t *testing.T) {
	// First sample sits below the forced range and is excluded.
	axis := []float64{-1, 0, 1, 2, 3, 4, 5, 6, 7, 8}

	tb, err := BinTime10s(axis, true, true)
	require.NoError(t, err)
	require.Equal(t, []float64{5}, tb.Centers)
	require.Nil(t, tb.Empty)
	require.Equal(t, []bool{false, true, true, true, true, true, true, true, true, true}, tb.retained)
}

func TestBinTime10s_MultipleBins(t *testing.T) {
	axis := []float64{0, 4, 10, 14, 22, 29.9}

	tb, err := BinTime10s(axis, true, true)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 15, 25}, tb.Centers)
	require.Equal(t, []int{0, 0, 1, 1, 2, 2}, tb.bins)
}

func TestBinTime10s_KeepEmptyBins(t *testing.T) {
	// Nothing falls into the bin centered on 15.
	axis := []float64{0, 4, 22, 29.9}

	tb, err := BinTime10s(axis, true, false)
	require.NoError(t, err)
	require.Equal(t, []float64{5, 15, 25}, tb.Centers)
	require.Equal(t, []bool{false, true, false}, tb.Empty)

	binned, err := BinColumn([]float64{1, 3, 10, 20}, tb, Mean)
	require.NoError(t, err)
	require.Equal(t, 2.0, binned[0])
	require.True(t, math.IsNaN(binned[1]), "empty bin yields NaN")
	require.Equal(t, 15.0, binned[2])
}

func TestBinTime10s_Errors(t *testing.T) {
	_, err := BinTime10s(nil, true, true)
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	_, err = BinTime10s([]float64{3, 2, 1}, true, true)
	require.ErrorIs(t, err, errs.ErrNotMonotonic)
}

func TestBinColumn_Mean(t *testing.T) {
	axis := []float64{-1, 0, 1, 2, 3, 4, 5, 6, 7, 8}
	v := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	tb, err := BinTime10s(axis, true, true)
	require.NoError(t, err)

	binned, err := BinColumn(v, tb, Mean)
	require.NoError(t, err)
	require.Equal(t, []float64{5}, binned, "excluded first sample does not enter the mean")
}

func TestBinColumn_SkipsNaN(t *testing.T) {
	axis := []float64{0, 2, 4}
	v := []float64{2, math.NaN(), 4}

	tb, err := BinTime10s(axis, false, true)
	require.NoError(t, err)

	binned, err := BinColumn(v, tb, Mean)
	require.NoError(t, err)
	require.Equal(t, []float64{3}, binned)
}

func TestBinColumn_LengthMismatch(t *testing.T) {
	tb, err := BinTime10s([]float64{0, 1, 2}, false, true)
	require.NoError(t, err)

	_, err = BinColumn([]float64{1, 2}, tb, Mean)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestBinColumn_CircularAggregations(t *testing.T) {
	axis := []float64{0, 2, 4, 6}
	angles := []float64{350, 10, 90, 270}

	tb, err := BinTime10s(axis, false, true)
	require.NoError(t, err)

	binned, err := BinColumn(angles, tb, AngleMean)
	require.NoError(t, err)
	require.Len(t, binned, 1)
	require.InDelta(t, 0, binned[0], 1e-9, "350 and 10 cancel 90 and 270")

	fracs := []float64{350.0 / 360, 10.0 / 360, math.NaN(), math.NaN()}
	binned, err = BinColumn(fracs, tb, DayFracMean)
	require.NoError(t, err)
	require.InDelta(t, 0, binned[0], 1e-9, "day fractions wrap at midnight")
}
