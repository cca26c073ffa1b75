package series

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atmodata/atmodata/errs"
)

func TestInterp1D(t *testing.T) {
	x := []float64{0, 1, 2, 4}
	y := []float64{0, 10, 20, 40}

	got, err := Interp1D(x, y, []float64{0, 0.5, 1.5, 3, 4})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0, 5, 15, 30, 40}, got, 1e-12)
}

func TestInterp1D_Extrapolation(t *testing.T) {
	x := []float64{0, 1, 3}
	y := []float64{0, 2, 10}

	got, err := Interp1D(x, y, []float64{-1, 5})
	require.NoError(t, err)
	require.InDelta(t, -2.0, got[0], 1e-12, "first segment slope carries below the range")
	require.InDelta(t, 18.0, got[1], 1e-12, "last segment slope carries above the range")
}

func TestInterp1D_Errors(t *testing.T) {
	_, err := Interp1D([]float64{0, 1}, []float64{0}, nil)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	_, err = Interp1D([]float64{0}, []float64{0}, nil)
	require.ErrorIs(t, err, errs.ErrEmptyInput)

	_, err = Interp1D([]float64{1, 0}, []float64{0, 1}, nil)
	require.ErrorIs(t, err, errs.ErrNotMonotonic)
}
