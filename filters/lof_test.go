package filters

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atmodata/atmodata/errs"
)

// lofTestSeries builds a smooth series with large spikes planted at the
// given indices (positive sign plants an upward spike).
func lofTestSeries(n int, spikes map[int]float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		x := float64(i)
		v[i] = 10*math.Sin(x/20) + 0.1*math.Cos(x*3)
	}
	for i, sign := range spikes {
		v[i] += sign * 200
	}

	return v
}

func TestLOF1D(t *testing.T) {
	spikes := map[int]float64{60: 1, 180: -1, 320: 1, 440: -1}
	v := lofTestSeries(500, spikes)

	mask, err := LOF1D(v, 15, 1.5, BothOutliers)
	require.NoError(t, err)

	for i, flagged := range mask {
		_, planted := spikes[i]
		require.Equal(t, planted, flagged, "index %d", i)
	}
}

func TestLOF1D_Modes(t *testing.T) {
	spikes := map[int]float64{60: 1, 180: -1, 320: 1, 440: -1}
	v := lofTestSeries(500, spikes)

	mask, err := LOF1D(v, 15, 1.5, PositiveOutliers)
	require.NoError(t, err)
	require.True(t, mask[60])
	require.True(t, mask[320])
	require.False(t, mask[180])
	require.False(t, mask[440])

	mask, err = LOF1D(v, 15, 1.5, NegativeOutliers)
	require.NoError(t, err)
	require.False(t, mask[60])
	require.False(t, mask[320])
	require.True(t, mask[180])
	require.True(t, mask[440])
}

func TestLOF1D_Errors(t *testing.T) {
	_, err := LOF1D(nil, 15, 1.5, BothOutliers)
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	_, err = LOF1D([]float64{1, math.NaN(), 3, 4}, 2, 1.5, BothOutliers)
	require.Error(t, err)

	_, err = LOF1D([]float64{1, 2, 3}, 3, 1.5, BothOutliers)
	require.Error(t, err)
}
