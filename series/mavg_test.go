package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atmodata/atmodata/errs"
)

func TestMovingAverage(t *testing.T) {
	v := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	avg, err := MovingAverage(v, 3, false, false)
	require.NoError(t, err)
	// Fully covered windows are plain centered means.
	for i := 1; i < len(v)-1; i++ {
		require.InDelta(t, v[i], avg[i], 1e-12, "index %d", i)
	}
	// Partial windows at the edges still divide by the window size.
	require.InDelta(t, 1.0, avg[0], 1e-12)
	require.InDelta(t, 19.0/3, avg[len(v)-1], 1e-12)
}

func TestMovingAverage_ExpandEdges(t *testing.T) {
	v := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	avg, err := MovingAverage(v, 3, false, true)
	require.NoError(t, err)
	require.Equal(t, avg[2], avg[0])
	require.Equal(t, avg[2], avg[1])
	require.Equal(t, avg[len(v)-3], avg[len(v)-1])
}

func TestMovingAverage_NaN(t *testing.T) {
	v := []float64{1, 2, math.NaN(), 4, 5}

	avg, err := MovingAverage(v, 3, false, false)
	require.NoError(t, err)
	require.True(t, math.IsNaN(avg[1]), "NaN poisons the windows it falls into")
	require.True(t, math.IsNaN(avg[2]))
	require.True(t, math.IsNaN(avg[3]))

	// Interpolation fills the hole first (linear: 3), so no NaN survives.
	avg, err = MovingAverage(v, 3, true, false)
	require.NoError(t, err)
	for i, a := range avg {
		require.False(t, math.IsNaN(a), "index %d", i)
	}
	require.InDelta(t, 3.0, avg[2], 1e-12)
}

func TestMovingAverage_Errors(t *testing.T) {
	_, err := MovingAverage(nil, 3, false, false)
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	_, err = MovingAverage([]float64{1, 2}, 3, false, false)
	require.Error(t, err)

	_, err = MovingAverage([]float64{1, 2, 3}, 0, false, false)
	require.Error(t, err)
}
