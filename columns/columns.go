// Package columns parses delimiter-separated text into named columns. It is
// the generic reader for instrument logfiles whose layout is too loose for
// the fixed NASA-AMES grammar: a configurable column-header row, optional
// collapsing of repeated separators and synthetic column names cover most
// ad-hoc exports.
package columns

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/atmodata/atmodata/compress"
	"github.com/atmodata/atmodata/errs"
	"github.com/atmodata/atmodata/internal/options"
)

// Table holds the parsed content of a delimited text file. Columns are
// stored as strings in file order; Floats converts on demand.
type Table struct {
	// Source is the path or buffer tag the table was parsed from.
	Source string

	// FileHeader holds the lines above the column-header row, stripped.
	FileHeader []string

	// Names lists the column names in file order.
	Names []string

	columns map[string][]string
}

// Column returns the raw string values of the named column, or nil if the
// column does not exist.
func (t *Table) Column(name string) []string {
	return t.columns[name]
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if len(t.Names) == 0 {
		return 0
	}
	return len(t.columns[t.Names[0]])
}

// Row returns the fields of data row i in column order.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Names))
	for j, n := range t.Names {
		row[j] = t.columns[n][i]
	}
	return row
}

// Append extends every column of t with the rows of other. The column names
// of both tables must match exactly, including order.
func (t *Table) Append(other *Table) error {
	if len(t.Names) != len(other.Names) {
		return fmt.Errorf("appending %d columns to %d: %w",
			len(other.Names), len(t.Names), errs.ErrLengthMismatch)
	}
	for i, n := range t.Names {
		if other.Names[i] != n {
			return fmt.Errorf("column %d is %q, appendee has %q: %w",
				i, n, other.Names[i], errs.ErrLengthMismatch)
		}
	}

	for _, n := range t.Names {
		t.columns[n] = append(t.columns[n], other.columns[n]...)
	}

	return nil
}

// Floats converts the named column to float64. Fields that do not parse as
// a number become NaN. Returns an error if the column does not exist.
func (t *Table) Floats(name string) ([]float64, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("column %q: %w", name, errs.ErrBadFormat)
	}

	out := make([]float64, len(col))
	for i, s := range col {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			v = math.NaN()
		}
		out[i] = v
	}

	return out, nil
}

// ParseFile parses the delimited text file at path. Files with a recognized
// compression extension (.gz, .zst, .lz4) are decompressed first.
func ParseFile(path string, opts ...TableOption) (*Table, error) {
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

	tbl, err := parseTable(data, path, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tbl, nil
}

// Parse parses delimited text content from r.
func Parse(r io.Reader, opts ...TableOption) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return parseTable(data, "buffer", opts)
}

func parseTable(data []byte, source string, opts []TableOption) (*Table, error) {
	cfg := newTableConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	lines := splitLines(string(data))
	if len(lines) == 0 {
		return nil, fmt.Errorf("no content: %w", errs.ErrEmptyData)
	}
	if cfg.headerRow >= len(lines) {
		return nil, fmt.Errorf("column header row %d beyond %d input lines: %w",
			cfg.headerRow, len(lines), errs.ErrBadFormat)
	}

	tbl := &Table{Source: source}
	for _, line := range lines[:cfg.headerRow] {
		tbl.FileHeader = append(tbl.FileHeader, strings.TrimSpace(line))
	}

	names := splitFields(strings.TrimSpace(lines[cfg.headerRow]), cfg.sep, cfg.collapseSeps)
	dataStart := cfg.headerRow + 1
	if cfg.syntheticNames {
		// The header row is treated as the first data row.
		for i := range names {
			names[i] = fmt.Sprintf("col_%03d", i+1)
		}
		dataStart = cfg.headerRow
	}
	if cfg.upperNames {
		for i, n := range names {
			names[i] = strings.ToUpper(n)
		}
	}

	tbl.Names = names
	tbl.columns = make(map[string][]string, len(names))
	for _, n := range names {
		if _, dup := tbl.columns[n]; dup {
			return nil, fmt.Errorf("duplicate column name %q: %w", n, errs.ErrBadFormat)
		}
		tbl.columns[n] = nil
	}

	for ix, line := range lines[dataStart:] {
		if cfg.trimLines {
			line = strings.TrimSpace(line)
		}
		if cfg.skipEmptyLines && line == "" {
			continue
		}

		fields := splitFields(line, cfg.sep, cfg.collapseSeps)
		if len(fields) != len(names) {
			return nil, fmt.Errorf("line %d: %d fields, column header has %d: %w",
				dataStart+ix+1, len(fields), len(names), errs.ErrLengthMismatch)
		}

		for i, n := range names {
			tbl.columns[n] = append(tbl.columns[n], strings.TrimSpace(fields[i]))
		}
	}

	return tbl, nil
}

// splitLines splits on \n and drops a trailing empty line so that files
// with a final newline do not grow a phantom row.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func splitFields(line, sep string, collapse bool) []string {
	fields := strings.Split(line, sep)
	if !collapse {
		return fields
	}

	kept := fields[:0]
	for _, f := range fields {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return kept
}
