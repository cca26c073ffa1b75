package ames

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/atmodata/atmodata/compress"
	"github.com/atmodata/atmodata/errs"
	"github.com/atmodata/atmodata/internal/options"
)

// WriteResult reports what a WriteFile call did with the destination.
type WriteResult int

const (
	// WriteDeclined means the destination existed and overwriting was not
	// requested; nothing was written.
	WriteDeclined WriteResult = iota
	// WriteNew means a new file was created.
	WriteNew
	// WriteOverwritten means an existing file was replaced.
	WriteOverwritten
)

func (r WriteResult) String() string {
	switch r {
	case WriteDeclined:
		return "declined"
	case WriteNew:
		return "new"
	case WriteOverwritten:
		return "overwritten"
	default:
		return "unknown"
	}
}

// WriteFile serializes doc to path in FFI 1001 layout.
//
// The destination is never replaced unless WithOverwrite(true) is given;
// writing to an existing path without it returns WriteDeclined and an error
// wrapping errs.ErrFileExists. Parent directories are created as needed, and
// a recognized compression extension (.gz, .zst, .lz4) compresses the output
// transparently.
func WriteFile(path string, doc *Document, opts ...WriterOption) (WriteResult, error) {
	cfg := newWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return WriteDeclined, err
	}

	result := WriteNew
	if _, err := os.Stat(path); err == nil {
		if !cfg.overwrite {
			return WriteDeclined, fmt.Errorf("%w: %s", errs.ErrFileExists, path)
		}
		result = WriteOverwritten
	} else if !os.IsNotExist(err) {
		return WriteDeclined, err
	}

	var buf bytes.Buffer
	if err := encodeDocument(&buf, doc, cfg); err != nil {
		return WriteDeclined, err
	}

	codec, err := compress.GetCodec(compress.ForPath(path))
	if err != nil {
		return WriteDeclined, err
	}
	data, err := codec.Compress(buf.Bytes())
	if err != nil {
		return WriteDeclined, fmt.Errorf("compress %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return WriteDeclined, err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return WriteDeclined, err
	}

	return result, nil
}

// Encode serializes doc to w in FFI 1001 layout. The overwrite option has
// no meaning here; everything else applies as in WriteFile.
func Encode(w io.Writer, doc *Document, opts ...WriterOption) error {
	cfg := newWriterConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	return encodeDocument(w, doc, cfg)
}

// encodeDocument writes the complete file: header with all counts recomputed
// from actual slice lengths, then the data block with scale factors divided
// out and sentinels reinstated for missing values.
func encodeDocument(w io.Writer, doc *Document, cfg *writerConfig) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	for i, sf := range doc.ScaleFactors {
		if sf == 0 {
			return fmt.Errorf("%w: zero scale factor for variable %q", errs.ErrBadFormat, doc.VariableNames[i])
		}
	}

	bw := bufio.NewWriter(w)
	nl := cfg.newline
	nv := doc.NumVariables()

	// Line 1: recomputed NLHEAD and the fixed format index.
	fmt.Fprintf(bw, "%d%s%d%s", doc.headerLineCount(), cfg.sep, FormatIndex, nl)

	// Lines 2-5.
	fmt.Fprintf(bw, "%s%s", doc.Originator, nl)
	fmt.Fprintf(bw, "%s%s", doc.Organization, nl)
	fmt.Fprintf(bw, "%s%s", doc.SourceDescription, nl)
	fmt.Fprintf(bw, "%s%s", doc.MissionName, nl)

	// Line 6.
	fmt.Fprintf(bw, "%d%s%d%s", doc.VolumeIndex, cfg.sep, doc.VolumeTotal, nl)

	// Line 7: both dates, zero-padded.
	fmt.Fprintf(bw, "%04d%s%02d%s%02d%s%04d%s%02d%s%02d%s",
		doc.StartDate.Year, cfg.sep, doc.StartDate.Month, cfg.sep, doc.StartDate.Day, cfg.sep,
		doc.RevisionDate.Year, cfg.sep, doc.RevisionDate.Month, cfg.sep, doc.RevisionDate.Day, nl)

	// Line 8: DX.
	fmt.Fprintf(bw, "%s%s", strconv.FormatFloat(doc.Interval, 'g', -1, 64), nl)

	// Line 9.
	fmt.Fprintf(bw, "%s%s", doc.IndependentName, nl)

	// Line 10 and the per-variable constant lines.
	fmt.Fprintf(bw, "%d%s", nv, nl)
	writeConstants(bw, doc.ScaleFactors, cfg.sep, nl)
	writeConstants(bw, doc.MissingSentinels, cfg.sep, nl)

	for i, vname := range doc.VariableNames {
		if len(doc.VariableUnits) == nv && doc.VariableUnits[i] != "" {
			fmt.Fprintf(bw, "%s%s%s%s", vname, cfg.unitsJoin, doc.VariableUnits[i], nl)
		} else {
			fmt.Fprintf(bw, "%s%s", vname, nl)
		}
	}

	writeComments(bw, doc.SpecialComments, nl)
	writeComments(bw, doc.NormalComments, nl)

	// Data block: sentinel reinstated for NaN, scale divided out, both on
	// the stored value before formatting.
	for i := range doc.Independent {
		bw.WriteString(cfg.format(-1, doc.Independent[i]))
		for j := 0; j < nv; j++ {
			raw := restoreRaw(doc.Dependent[j][i], doc.ScaleFactors[j], doc.MissingSentinels[j])
			bw.WriteString(cfg.sepData)
			bw.WriteString(cfg.format(j, raw))
		}
		bw.WriteString(nl)
	}

	return bw.Flush()
}

// restoreRaw inverts the decode pipeline for one value: NaN becomes the
// column sentinel, anything else is divided by the scale factor.
func restoreRaw(v, scale, sentinel float64) float64 {
	if math.IsNaN(v) {
		return sentinel
	}

	return v / scale
}

func writeConstants(w *bufio.Writer, values []float64, sep, nl string) {
	for i, v := range values {
		if i > 0 {
			w.WriteString(sep)
		}
		w.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	w.WriteString(nl)
}

func writeComments(w *bufio.Writer, block []string, nl string) {
	fmt.Fprintf(w, "%d%s", len(block), nl)
	for _, line := range block {
		fmt.Fprintf(w, "%s%s", line, nl)
	}
}
