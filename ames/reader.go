package ames

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/atmodata/atmodata/compress"
	"github.com/atmodata/atmodata/errs"
	"github.com/atmodata/atmodata/internal/options"
)

// ReadFile parses the FFI 1001 file at path. Files with a recognized
// compression extension (.gz, .zst, .lz4) are decompressed first.
func ReadFile(path string, opts ...ReaderOption) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(compress.ForPath(path))
	if err != nil {
		return nil, err
	}
	data, err = codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}

	doc, err := parse(data, path, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse parses FFI 1001 content from r.
func Parse(r io.Reader, opts ...ReaderOption) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return parse(data, "buffer", opts)
}

func parse(data []byte, source string, opts []ReaderOption) (*Document, error) {
	cfg := newReaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	content, err := decodeText(data, cfg.ensureASCII)
	if err != nil {
		return nil, err
	}

	lines := splitLines(content, cfg)

	doc, dataStart, err := parseHeader(lines, cfg)
	if err != nil {
		return nil, err
	}
	doc.Source = source

	if err := parseData(doc, lines[dataStart:], dataStart, cfg); err != nil {
		return nil, err
	}

	return doc, nil
}

// decodeText validates the raw bytes as text. FFI 1001 is pure ASCII by
// definition; unless strict decoding is requested, UTF-8 is accepted and
// anything else is interpreted as Latin-1.
func decodeText(data []byte, asciiOnly bool) (string, error) {
	if asciiOnly {
		for i, b := range data {
			if b > 0x7f {
				return "", fmt.Errorf("%w: non-ASCII byte 0x%02x at offset %d", errs.ErrBadFormat, b, i)
			}
		}
		return string(data), nil
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	// Latin-1: every byte maps to the code point of the same value.
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}

	return string(runes), nil
}

func splitLines(content string, cfg *readerConfig) []string {
	lines := strings.Split(content, "\n")
	doubleSep := cfg.sep + cfg.sep

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if cfg.stripLines {
			line = strings.TrimSpace(line)
		}
		if cfg.collapseSeps {
			for strings.Contains(line, doubleSep) {
				line = strings.ReplaceAll(line, doubleSep, cfg.sep)
			}
		}
		lines[i] = line
	}

	return lines
}

// lineCursor walks the header slice with bounds checking, so every "consume
// exactly N lines" step fails with a line-count error instead of a panic.
type lineCursor struct {
	lines []string
	pos   int
}

func (c *lineCursor) next() (string, error) {
	if c.pos >= len(c.lines) {
		return "", fmt.Errorf("%w: header ends at line %d", errs.ErrBadFormat, c.pos)
	}
	line := c.lines[c.pos]
	c.pos++

	return line, nil
}

func (c *lineCursor) take(n int) ([]string, error) {
	if c.pos+n > len(c.lines) {
		return nil, fmt.Errorf("%w: header declares %d more lines but only %d remain",
			errs.ErrBadFormat, n, len(c.lines)-c.pos)
	}
	block := c.lines[c.pos : c.pos+n]
	c.pos += n

	return block, nil
}

// parseHeader parses the counted header section and returns the partially
// populated Document together with the index of the first data line.
func parseHeader(lines []string, cfg *readerConfig) (*Document, int, error) {
	if len(lines) == 0 {
		return nil, 0, fmt.Errorf("%w: empty input", errs.ErrBadFormat)
	}

	nlhead, ffi, err := parseFirstLine(lines[0])
	if err != nil {
		return nil, 0, err
	}
	if ffi != FormatIndex {
		return nil, 0, fmt.Errorf("%w: format index %d, want %d", errs.ErrBadFormat, ffi, FormatIndex)
	}
	if nlhead < fixedHeaderLines+1 {
		return nil, 0, fmt.Errorf("%w: FFI 1001 requires at least %d header lines, declared %d",
			errs.ErrBadFormat, fixedHeaderLines+1, nlhead)
	}
	if nlhead > len(lines) {
		return nil, 0, fmt.Errorf("%w: header declares %d lines, input has %d",
			errs.ErrBadFormat, nlhead, len(lines))
	}

	doc := &Document{HeaderLines: nlhead}
	cur := &lineCursor{lines: lines[:nlhead], pos: 1}

	// Lines 2-5: free-text metadata.
	if doc.Originator, err = cur.next(); err != nil {
		return nil, 0, err
	}
	if doc.Organization, err = cur.next(); err != nil {
		return nil, 0, err
	}
	if doc.SourceDescription, err = cur.next(); err != nil {
		return nil, 0, err
	}
	if doc.MissionName, err = cur.next(); err != nil {
		return nil, 0, err
	}

	// Line 6: volume index and total.
	line, err := cur.next()
	if err != nil {
		return nil, 0, err
	}
	vol, err := intFields(line, 2, cfg.sep)
	if err != nil {
		return nil, 0, fmt.Errorf("line 6: %w", err)
	}
	doc.VolumeIndex, doc.VolumeTotal = vol[0], vol[1]

	// Line 7: start and revision date.
	if line, err = cur.next(); err != nil {
		return nil, 0, err
	}
	ymd, err := intFields(line, 6, cfg.sep)
	if err != nil {
		return nil, 0, fmt.Errorf("line 7: %w", err)
	}
	doc.StartDate = Date{ymd[0], ymd[1], ymd[2]}
	doc.RevisionDate = Date{ymd[3], ymd[4], ymd[5]}
	if doc.RevisionDate.Before(doc.StartDate) {
		return nil, 0, fmt.Errorf("%w: revision date %s precedes start date %s",
			errs.ErrBadFormat, doc.RevisionDate, doc.StartDate)
	}

	// Line 8: independent variable interval.
	if line, err = cur.next(); err != nil {
		return nil, 0, err
	}
	if doc.Interval, err = parseNumber(line); err != nil {
		return nil, 0, fmt.Errorf("line 8 (DX): %w", err)
	}

	// Line 9: independent variable name.
	if doc.IndependentName, err = cur.next(); err != nil {
		return nil, 0, err
	}

	// Line 10: number of dependent variables.
	if line, err = cur.next(); err != nil {
		return nil, 0, err
	}
	nv, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || nv < 1 {
		return nil, 0, fmt.Errorf("%w: invalid variable count %q", errs.ErrBadFormat, line)
	}

	if doc.ScaleFactors, err = parseVariableConstants(cur, nv, "VSCAL", cfg); err != nil {
		return nil, 0, err
	}
	if doc.MissingSentinels, err = parseVariableConstants(cur, nv, "VMISS", cfg); err != nil {
		return nil, 0, err
	}

	vnames, err := cur.take(nv)
	if err != nil {
		return nil, 0, err
	}
	doc.VariableNames = append([]string(nil), vnames...)
	if cfg.unitsSplit != "" {
		doc.VariableNames, doc.VariableUnits = splitUnits(doc.VariableNames, cfg.unitsSplit)
	}

	if doc.SpecialComments, err = parseCommentBlock(cur, "NSCOML", -1); err != nil {
		return nil, 0, err
	}

	// The normal-comment count may be derived from NLHEAD instead of
	// trusting the declared value (files in circulation get it wrong).
	derived := -1
	if cfg.autoCommentCount {
		derived = nlhead - cur.pos - 1 // one line holds the count itself
	}
	if doc.NormalComments, err = parseCommentBlock(cur, "NNCOML", derived); err != nil {
		return nil, 0, err
	}

	if cur.pos != nlhead {
		return nil, 0, fmt.Errorf("%w: declared %d header lines, parsed %d",
			errs.ErrBadFormat, nlhead, cur.pos)
	}

	return doc, nlhead, nil
}

func parseFirstLine(line string) (nlhead, ffi int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: line 1 must hold NLHEAD and FFI, got %q", errs.ErrBadFormat, line)
	}
	if nlhead, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: invalid NLHEAD %q", errs.ErrBadFormat, fields[0])
	}
	if ffi, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("%w: invalid format index %q", errs.ErrBadFormat, fields[1])
	}

	return nlhead, ffi, nil
}

// parseVariableConstants reads the per-variable constants (scale factors or
// missing sentinels): either one separator-delimited line, or nv lines when
// the vertical layout is configured.
func parseVariableConstants(cur *lineCursor, nv int, what string, cfg *readerConfig) ([]float64, error) {
	var fields []string
	if cfg.verticalScales {
		block, err := cur.take(nv)
		if err != nil {
			return nil, err
		}
		fields = block
	} else {
		line, err := cur.next()
		if err != nil {
			return nil, err
		}
		fields = strings.Fields(strings.ReplaceAll(line, cfg.sep, " "))
	}

	if len(fields) != nv {
		return nil, fmt.Errorf("%w: %s has %d entries, want %d (one per variable)",
			errs.ErrBadFormat, what, len(fields), nv)
	}

	values := make([]float64, nv)
	for i, f := range fields {
		v, err := parseNumber(f)
		if err != nil {
			return nil, fmt.Errorf("%s entry %d: %w", what, i+1, err)
		}
		values[i] = v
	}

	return values, nil
}

// parseCommentBlock reads a count line followed by exactly that many comment
// lines. If derived is non-negative it overrides the declared count.
func parseCommentBlock(cur *lineCursor, what string, derived int) ([]string, error) {
	line, err := cur.next()
	if err != nil {
		return nil, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || count < 0 {
		return nil, fmt.Errorf("%w: invalid %s count %q", errs.ErrBadFormat, what, line)
	}
	if derived >= 0 {
		count = derived
	}

	block, err := cur.take(count)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}

	return append([]string(nil), block...), nil
}

// parseData parses the delimited data block into the independent variable
// and one scaled, sentinel-substituted column per dependent variable.
func parseData(doc *Document, lines []string, offset int, cfg *readerConfig) error {
	nv := doc.NumVariables()
	doc.Independent = []float64{}
	doc.Dependent = make([][]float64, nv)
	for j := range doc.Dependent {
		doc.Dependent[j] = []float64{}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue // trailing newline or blank line
		}

		fields := strings.Split(line, cfg.sepData)
		if cfg.collapseSeps {
			fields = dropEmpty(fields)
		}
		if len(fields) != nv+1 {
			return fmt.Errorf("%w: line %d has %d fields, want %d",
				errs.ErrBadFormat, offset+i+1, len(fields), nv+1)
		}

		x, err := parseNumber(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: independent variable: %w", offset+i+1, err)
		}
		doc.Independent = append(doc.Independent, x)

		for j := 0; j < nv; j++ {
			raw, err := parseNumber(fields[j+1])
			if err != nil {
				return fmt.Errorf("line %d, column %d: %w", offset+i+1, j+2, err)
			}
			// Sentinel comparison happens on the raw value, before scaling.
			v := ApplySentinel(raw, doc.MissingSentinels[j])
			v = ApplyScale(v, doc.ScaleFactors[j])
			doc.Dependent[j] = append(doc.Dependent[j], v)
		}
	}

	if doc.Len() == 0 && !cfg.allowEmptyData {
		return errs.ErrEmptyData
	}

	return nil
}

// ApplySentinel is the first step of the decode pipeline: a raw value that
// exactly equals the column's missing sentinel becomes NaN; any other value
// passes through unchanged. The comparison is exact, never tolerance-based.
func ApplySentinel(raw, sentinel float64) float64 {
	if raw == sentinel {
		return math.NaN()
	}

	return raw
}

// ApplyScale is the second step of the decode pipeline: multiplies a value
// by the column's scale factor. NaN stays NaN.
func ApplyScale(v, factor float64) float64 {
	return v * factor
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid numeric field %q", errs.ErrBadFormat, s)
	}

	return v, nil
}

func intFields(line string, n int, sep string) ([]int, error) {
	fields := strings.Fields(strings.ReplaceAll(line, sep, " "))
	if len(fields) != n {
		return nil, fmt.Errorf("%w: want %d fields, got %d in %q", errs.ErrBadFormat, n, len(fields), line)
	}

	values := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid integer field %q", errs.ErrBadFormat, f)
		}
		values[i] = v
	}

	return values, nil
}

func dropEmpty(fields []string) []string {
	kept := fields[:0]
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}

	return kept
}

func splitUnits(vnames []string, sep string) (names, units []string) {
	names = make([]string, len(vnames))
	units = make([]string, len(vnames))
	for i, vn := range vnames {
		if idx := strings.LastIndex(vn, sep); idx >= 0 {
			names[i] = strings.TrimSpace(vn[:idx])
			units[i] = strings.TrimSpace(vn[idx+len(sep):])
		} else {
			names[i] = vn
		}
	}

	return names, units
}
