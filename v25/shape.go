package v25

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/atmodata/atmodata/errs"
)

// Shape declares the expected layout of one V25 data-source file type.
type Shape struct {
	// Columns is the expected field count per data line. Zero disables
	// the check.
	Columns int `toml:"columns"`

	// MinLines is the minimum total line count for a usable file.
	MinLines int `toml:"min_lines"`

	// HeaderRows is the number of lines above the column header.
	HeaderRows int `toml:"header_rows"`

	// Separator is the data field separator. Defaults to tab.
	Separator string `toml:"separator"`
}

// ShapeSpec maps upper-case file extensions to their expected shapes,
// loaded from a TOML file like
//
//	[shapes.OSC]
//	columns = 12
//	min_lines = 6
//	header_rows = 4
type ShapeSpec struct {
	Shapes map[string]Shape `toml:"shapes"`
}

// LoadShapes reads a ShapeSpec from the TOML file at path.
func LoadShapes(path string) (*ShapeSpec, error) {
	var spec ShapeSpec
	if _, err := toml.DecodeFile(path, &spec); err != nil {
		return nil, fmt.Errorf("shape spec %s: %w", path, err)
	}
	if len(spec.Shapes) == 0 {
		return nil, fmt.Errorf("shape spec %s declares no shapes: %w", path, errs.ErrEmptyData)
	}

	normalized := make(map[string]Shape, len(spec.Shapes))
	for name, s := range spec.Shapes {
		if s.Separator == "" {
			s.Separator = "\t"
		}
		normalized[strings.ToUpper(name)] = s
	}
	spec.Shapes = normalized

	return &spec, nil
}

// Shape returns the shape declared for the given file extension (with or
// without leading dot, any case).
func (s *ShapeSpec) Shape(ext string) (Shape, bool) {
	shape, ok := s.Shapes[strings.ToUpper(strings.TrimPrefix(ext, "."))]
	return shape, ok
}

// Validate checks the file at path against the shape declared for its
// extension. Files with no declared shape fail with ErrBadFormat, as do
// files shorter than MinLines or with data lines whose field count differs
// from Columns.
func (s *ShapeSpec) Validate(path string) error {
	shape, ok := s.Shape(filepath.Ext(path))
	if !ok {
		return fmt.Errorf("no shape declared for %s: %w", path, errs.ErrBadFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(data) == 0 {
		lines = nil
	}
	if len(lines) < shape.MinLines {
		return fmt.Errorf("%s has %d lines, shape requires %d: %w",
			path, len(lines), shape.MinLines, errs.ErrBadFormat)
	}

	if shape.Columns == 0 {
		return nil
	}

	sep := shape.Separator
	if sep == "" {
		sep = "\t"
	}
	for i := shape.HeaderRows + 1; i < len(lines); i++ {
		if got := len(strings.Split(lines[i], sep)); got != shape.Columns {
			return fmt.Errorf("%s line %d has %d fields, shape requires %d: %w",
				path, i+1, got, shape.Columns, errs.ErrBadFormat)
		}
	}

	return nil
}
