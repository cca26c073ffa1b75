// Package steps detects steps and plateaus in stepped instrument signals,
// such as calibration-gas staircases. A sample is marked as part of a step
// when the average of the samples before it and the average of the samples
// after it differ by more than a threshold; everything else is plateau.
package steps

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/atmodata/atmodata/errs"
)

// Step marks in Stepped.Marks.
const (
	MarkPlateau  = 0
	MarkStepUp   = 1
	MarkStepDown = -1
)

// Stepped holds the per-sample step classification of a signal.
type Stepped struct {
	// Values is the analysed signal.
	Values []float64

	// Marks classifies each sample: MarkPlateau, MarkStepUp or
	// MarkStepDown. Aligned with Values.
	Marks []int

	// PlateauLengths and StepLengths hold the run lengths of consecutive
	// plateau and step samples in signal order.
	PlateauLengths []int
	StepLengths    []int

	plateauValues []float64
}

// NumPlateaus returns the number of plateau runs.
func (s *Stepped) NumPlateaus() int { return len(s.PlateauLengths) }

// NumSteps returns the number of step runs.
func (s *Stepped) NumSteps() int { return len(s.StepLengths) }

// Detect classifies v by comparing, at each sample, the average of the
// before preceding samples with the average of the after following samples.
// An absolute difference above threshold marks the sample as a step, signed
// by direction. With extendEdges the first and last sample are repeated so
// the look-around windows cover the signal edges; otherwise edge samples
// are treated as plateau.
func Detect(v []float64, before, after int, threshold float64, extendEdges bool) (*Stepped, error) {
	if len(v) == 0 {
		return nil, errs.ErrEmptyInput
	}
	if before < 1 || after < 1 {
		return nil, fmt.Errorf("look-around window must be at least 1 on both sides, got %d/%d", before, after)
	}
	if !extendEdges && len(v) <= before+after {
		return nil, fmt.Errorf("%d samples cannot fill a %d+%d look-around window", len(v), before, after)
	}

	padded := make([]float64, 0, len(v)+before+after)
	lo := 0
	if extendEdges {
		for i := 0; i < before; i++ {
			padded = append(padded, v[0])
		}
		lo = before
	}
	padded = append(padded, v...)
	if extendEdges {
		for i := 0; i < after; i++ {
			padded = append(padded, v[len(v)-1])
		}
	}

	marks := make([]int, len(padded))
	for i := before; i < len(padded)-after; i++ {
		avgBefore := stat.Mean(padded[i-before:i], nil)
		avgAfter := stat.Mean(padded[i+1:i+1+after], nil)

		switch diff := avgBefore - avgAfter; {
		case diff < -threshold:
			marks[i] = MarkStepUp
		case diff > threshold:
			marks[i] = MarkStepDown
		}
	}

	s := &Stepped{
		Values: v,
		Marks:  marks[lo : lo+len(v)],
	}

	for i, m := range s.Marks {
		isPlat := m == MarkPlateau
		if isPlat {
			s.plateauValues = append(s.plateauValues, v[i])
		}
		switch {
		case i == 0 || isPlat != (s.Marks[i-1] == MarkPlateau):
			if isPlat {
				s.PlateauLengths = append(s.PlateauLengths, 1)
			} else {
				s.StepLengths = append(s.StepLengths, 1)
			}
		case isPlat:
			s.PlateauLengths[len(s.PlateauLengths)-1]++
		default:
			s.StepLengths[len(s.StepLengths)-1]++
		}
	}

	return s, nil
}

// PlateauStat holds the statistics of one plateau. Plateaus left with fewer
// than two samples after trimming have NaN spread statistics; plateaus left
// empty have N == 0 and all-NaN values.
type PlateauStat struct {
	N         int
	Mean      float64
	Median    float64
	Stddev    float64
	RSD       float64
	ErrOfMean float64
}

// PlateauStats computes per-plateau statistics. cutLeft and cutRight trim
// samples from each plateau's edges, discarding settling samples next to a
// step. If useLastN is positive and the trimmed plateau is at least that
// long, only its last useLastN samples enter the statistics.
func (s *Stepped) PlateauStats(cutLeft, cutRight, useLastN int) ([]PlateauStat, error) {
	if s.NumPlateaus() == 0 {
		return nil, fmt.Errorf("no plateaus found: %w", errs.ErrEmptyInput)
	}
	if cutLeft < 0 || cutRight < 0 {
		return nil, fmt.Errorf("plateau trim must not be negative, got %d/%d", cutLeft, cutRight)
	}

	stats := make([]PlateauStat, 0, s.NumPlateaus())
	offset := 0
	for _, length := range s.PlateauLengths {
		ix0 := offset + cutLeft
		ix1 := ix0 + length - cutLeft - cutRight
		offset += length

		if useLastN > 0 && ix1-ix0 >= useLastN {
			ix0 = ix1 - useLastN
		}

		if ix1-ix0 < 1 {
			stats = append(stats, PlateauStat{
				Mean:      math.NaN(),
				Median:    math.NaN(),
				Stddev:    math.NaN(),
				RSD:       math.NaN(),
				ErrOfMean: math.NaN(),
			})
			continue
		}

		plat := s.plateauValues[ix0:ix1]
		ps := PlateauStat{
			N:         len(plat),
			Mean:      stat.Mean(plat, nil),
			Median:    median(plat),
			Stddev:    math.NaN(),
			RSD:       math.NaN(),
			ErrOfMean: math.NaN(),
		}
		if len(plat) > 1 {
			ps.Stddev = stat.PopStdDev(plat, nil)
			ps.RSD = ps.Stddev / ps.Mean
			ps.ErrOfMean = ps.Stddev / math.Sqrt(float64(ps.N))
		}
		stats = append(stats, ps)
	}

	return stats, nil
}

// median averages the two middle elements for even lengths.
func median(v []float64) float64 {
	sorted := make([]float64, len(v))
	copy(sorted, v)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
