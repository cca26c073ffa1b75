package ames

import (
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/atmodata/atmodata/errs"
)

// FormatIndex is the only file format index (FFI) this package handles.
const FormatIndex = 1001

// fixedHeaderLines is the number of header lines mandated by FFI 1001
// before variable names and comment blocks are counted in:
// NLHEAD = fixedHeaderLines + NV + NSCOML + NNCOML.
const fixedHeaderLines = 14

// Date is a civil date as it appears in an FFI 1001 header (line 7).
type Date struct {
	Year  int
	Month int
	Day   int
}

// Time returns the date as a UTC time.Time at midnight.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is an earlier date than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Document is the in-memory representation of one FFI 1001 file.
//
// A Document is a plain value: the parser constructs one fresh per file, the
// serializer reads one without mutating it, and callers building a Document
// programmatically fill the exported fields directly. All declared header
// counts are recomputed from actual slice lengths on write, so a Document
// assembled by hand never needs count bookkeeping.
//
// Dependent variable values are stored scaled, with NaN marking missing
// readings. The raw-file representation (unscaled, sentinel-coded) exists
// only at the parse/serialize boundary.
type Document struct {
	// HeaderLines is the NLHEAD count as declared in the parsed file.
	// Purely informational after parsing; the serializer recomputes it.
	HeaderLines int

	// Originator, Organization, SourceDescription and MissionName are the
	// free-text metadata lines 2-5 (ONAME, ORG, SNAME, MNAME).
	Originator        string
	Organization      string
	SourceDescription string
	MissionName       string

	// VolumeIndex and VolumeTotal are IVOL and NVOL of line 6.
	VolumeIndex int
	VolumeTotal int

	// StartDate is the date of the first data record (DATE, line 7);
	// RevisionDate is the date of last revision (RDATE, line 7) and must
	// not precede StartDate.
	StartDate    Date
	RevisionDate Date

	// Interval is DX, the spacing of the independent variable (0 means
	// irregular spacing).
	Interval float64

	// IndependentName is XNAME, the description of the independent variable.
	IndependentName string

	// ScaleFactors and MissingSentinels hold VSCAL and VMISS, one entry per
	// dependent variable, aligned with VariableNames.
	ScaleFactors     []float64
	MissingSentinels []float64

	// VariableNames holds the VNAME header lines, one per dependent
	// variable. When the file encodes units inside the name line,
	// VariableUnits may carry the split-off unit part (see
	// WithVariableUnitsSplit); it is either empty or aligned with
	// VariableNames.
	VariableNames []string
	VariableUnits []string

	// SpecialComments and NormalComments are the counted comment blocks.
	SpecialComments []string
	NormalComments  []string

	// Independent holds the first data column; Dependent holds one scaled
	// column per variable, each aligned index-for-index with Independent.
	Independent []float64
	Dependent   [][]float64

	// Source records where the Document was parsed from ("buffer" for
	// readers without a file name). Informational only.
	Source string
}

// NumVariables returns the number of dependent variables.
func (d *Document) NumVariables() int {
	return len(d.VariableNames)
}

// Len returns the number of data records.
func (d *Document) Len() int {
	return len(d.Independent)
}

// Validate checks the Document invariants: per-variable metadata slices must
// have equal lengths, every dependent column must align with the independent
// variable, and the revision date must not precede the start date.
func (d *Document) Validate() error {
	nv := len(d.VariableNames)
	if nv == 0 {
		return fmt.Errorf("%w: document has no dependent variables", errs.ErrBadFormat)
	}
	if len(d.ScaleFactors) != nv {
		return fmt.Errorf("%w: %d scale factors for %d variables", errs.ErrLengthMismatch, len(d.ScaleFactors), nv)
	}
	if len(d.MissingSentinels) != nv {
		return fmt.Errorf("%w: %d missing sentinels for %d variables", errs.ErrLengthMismatch, len(d.MissingSentinels), nv)
	}
	if len(d.VariableUnits) != 0 && len(d.VariableUnits) != nv {
		return fmt.Errorf("%w: %d variable units for %d variables", errs.ErrLengthMismatch, len(d.VariableUnits), nv)
	}
	if len(d.Dependent) != nv {
		return fmt.Errorf("%w: %d data columns for %d variables", errs.ErrLengthMismatch, len(d.Dependent), nv)
	}
	for i, col := range d.Dependent {
		if len(col) != len(d.Independent) {
			return fmt.Errorf("%w: column %q has %d values, independent variable has %d",
				errs.ErrLengthMismatch, d.VariableNames[i], len(col), len(d.Independent))
		}
	}
	if d.RevisionDate.Before(d.StartDate) {
		return fmt.Errorf("%w: revision date %s precedes start date %s",
			errs.ErrBadFormat, d.RevisionDate, d.StartDate)
	}

	return nil
}

// headerLineCount returns NLHEAD as derived from actual slice lengths.
func (d *Document) headerLineCount() int {
	return fixedHeaderLines + len(d.VariableNames) + len(d.SpecialComments) + len(d.NormalComments)
}

// ComputeInterval derives DX from the independent variable: the common
// difference if all consecutive differences agree (after rounding to four
// decimals), otherwise 0 for irregular spacing.
func ComputeInterval(independent []float64) float64 {
	if len(independent) < 2 {
		return 0
	}

	const scale = 1e4 // round diffs to 4 decimals before comparing
	first := math.Round((independent[1]-independent[0])*scale) / scale
	for i := 2; i < len(independent); i++ {
		dx := math.Round((independent[i]-independent[i-1])*scale) / scale
		if dx != first {
			return 0
		}
	}

	return first
}

// Checksum returns a 64-bit content hash of the serialized Document, usable
// for change detection and duplicate elimination across file collections.
// Two Documents with identical metadata and data hash equally regardless of
// their Source. A Document that does not validate has no serialized form
// and therefore no checksum; the validation error is returned instead.
func (d *Document) Checksum() (uint64, error) {
	var h xxhash.Digest
	h.Reset()

	if err := encodeDocument(&h, d, newWriterConfig()); err != nil {
		return 0, err
	}

	return h.Sum64(), nil
}

// Variable returns the scaled data column whose VNAME line starts with name
// (up to the first ';' or the whole line), or nil if no variable matches.
func (d *Document) Variable(name string) []float64 {
	for i, vname := range d.VariableNames {
		if primaryName(vname) == name || vname == name {
			return d.Dependent[i]
		}
	}

	return nil
}
