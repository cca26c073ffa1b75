package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeanAngle(t *testing.T) {
	cases := []struct {
		angles []float64
		want   float64
	}{
		{[]float64{350, 10}, 0},
		{[]float64{0, 90}, 45},
		{[]float64{10, 20, 30}, 20},
		{[]float64{-80, -100}, -90},
	}
	for _, c := range cases {
		require.InDelta(t, c.want, MeanAngle(c.angles), 1e-7, "angles %v", c.angles)
	}
}

func TestMeanAngle_Degenerate(t *testing.T) {
	require.True(t, math.IsNaN(MeanAngle(nil)))
	require.True(t, math.IsNaN(MeanAngle([]float64{math.NaN()})))
	require.Equal(t, 42.0, MeanAngle([]float64{42}), "single angle is returned unchanged")
	require.Equal(t, 42.0, MeanAngle([]float64{math.NaN(), 42, math.Inf(1)}))
}

func TestMeanDayFrac(t *testing.T) {
	cases := []struct {
		angles []float64
		want   float64
	}{
		{[]float64{350, 10}, 0},
		{[]float64{216, 288}, 252},
		{[]float64{10, 20, 30}, 20},
	}
	for _, c := range cases {
		fracs := make([]float64, len(c.angles))
		for i, a := range c.angles {
			fracs[i] = a / 360
		}
		require.InDelta(t, c.want/360, MeanDayFrac(fracs), 1e-7, "fractions of %v", c.angles)
	}
}

func TestMeanDayFrac_Degenerate(t *testing.T) {
	require.True(t, math.IsNaN(MeanDayFrac(nil)))
	require.Equal(t, 0.75, MeanDayFrac([]float64{0.75}))
	require.Equal(t, 0.75, MeanDayFrac([]float64{math.NaN(), 0.75}))
}
