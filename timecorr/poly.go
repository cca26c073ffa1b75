// Package timecorr corrects instrument clock drift against a reference time
// axis and estimates time lags between two series by cross-correlation.
package timecorr

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/atmodata/atmodata/errs"
)

// FitDrift fits a polynomial of the given order to the clock error t - tref
// as a function of t. Coefficients come back in descending power order, so
// PolyVal can evaluate them directly.
func FitDrift(t, tref []float64, order int) ([]float64, error) {
	if len(t) != len(tref) {
		return nil, fmt.Errorf("%w: %d time values, %d reference values",
			errs.ErrLengthMismatch, len(t), len(tref))
	}
	if order < 0 {
		return nil, fmt.Errorf("fit order must not be negative")
	}
	if len(t) < order+1 {
		return nil, fmt.Errorf("%w: polynomial of order %d needs at least %d points, have %d",
			errs.ErrEmptyInput, order, order+1, len(t))
	}

	// Vandermonde least squares, highest power first.
	cols := order + 1
	a := mat.NewDense(len(t), cols, nil)
	b := mat.NewVecDense(len(t), nil)
	for i, ti := range t {
		p := 1.0
		for j := cols - 1; j >= 0; j-- {
			a.Set(i, j, p)
			p *= ti
		}
		b.SetVec(i, ti-tref[i])
	}

	var qr mat.QR
	qr.Factorize(a)

	coef := mat.NewDense(cols, 1, nil)
	if err := qr.SolveTo(coef, false, b); err != nil {
		return nil, fmt.Errorf("drift fit: %w", err)
	}

	out := make([]float64, cols)
	for j := range out {
		out[j] = coef.At(j, 0)
	}

	return out, nil
}

// PolyVal evaluates a polynomial with coefficients in descending power order
// at x (Horner scheme).
func PolyVal(coeffs []float64, x float64) float64 {
	var v float64
	for _, c := range coeffs {
		v = v*x + c
	}

	return v
}

// Correct subtracts the fitted clock error from every element of t.
func Correct(t []float64, coeffs []float64) []float64 {
	out := make([]float64, len(t))
	for i, ti := range t {
		out[i] = ti - PolyVal(coeffs, ti)
	}

	return out
}

// TimeCorrection fits the clock drift of t against tref and returns the fit
// coefficients together with the corrected time axis.
func TimeCorrection(t, tref []float64, order int) (coeffs, corrected []float64, err error) {
	coeffs, err = FitDrift(t, tref, order)
	if err != nil {
		return nil, nil, err
	}

	return coeffs, Correct(t, coeffs), nil
}
