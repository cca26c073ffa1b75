package columns

import (
	"fmt"

	"github.com/atmodata/atmodata/internal/options"
)

// TableOption configures parsing. Options are applied in order; invalid
// values fail the Parse/ParseFile call before any input is consumed.
type TableOption = options.Option[*tableConfig]

type tableConfig struct {
	sep            string
	headerRow      int
	collapseSeps   bool
	syntheticNames bool
	upperNames     bool
	trimLines      bool
	skipEmptyLines bool
}

func newTableConfig() *tableConfig {
	return &tableConfig{
		sep:       ";",
		trimLines: true,
	}
}

// WithSeparator sets the field separator. The default is a semicolon.
func WithSeparator(sep string) TableOption {
	return options.New(func(c *tableConfig) error {
		if sep == "" {
			return fmt.Errorf("separator must not be empty")
		}
		c.sep = sep
		return nil
	})
}

// WithHeaderRow sets the zero-based index of the column-header row. Lines
// above it are kept verbatim in Table.FileHeader. The default is 0.
func WithHeaderRow(ix int) TableOption {
	return options.New(func(c *tableConfig) error {
		if ix < 0 {
			return fmt.Errorf("header row index must not be negative")
		}
		c.headerRow = ix
		return nil
	})
}

// WithCollapsedSeparators controls whether consecutive separators are
// treated as one. Disabled by default: collapsing discards legitimately
// empty fields, so inputs using it must mark missing values explicitly.
func WithCollapsedSeparators(enabled bool) TableOption {
	return options.NoError(func(c *tableConfig) {
		c.collapseSeps = enabled
	})
}

// WithSyntheticNames replaces the column header with generated names
// (col_001, col_002, ...) and treats the header row itself as data. Useful
// for files without a column header.
func WithSyntheticNames(enabled bool) TableOption {
	return options.NoError(func(c *tableConfig) {
		c.syntheticNames = enabled
	})
}

// WithUpperNames upper-cases all column names.
func WithUpperNames(enabled bool) TableOption {
	return options.NoError(func(c *tableConfig) {
		c.upperNames = enabled
	})
}

// WithLineTrimming controls whether surrounding whitespace is removed from
// every data line before splitting. Enabled by default; disable it when
// leading or trailing fields may be legitimately empty.
func WithLineTrimming(enabled bool) TableOption {
	return options.NoError(func(c *tableConfig) {
		c.trimLines = enabled
	})
}

// WithEmptyLinesSkipped drops empty data lines instead of failing on the
// field-count check.
func WithEmptyLinesSkipped(enabled bool) TableOption {
	return options.NoError(func(c *tableConfig) {
		c.skipEmptyLines = enabled
	})
}
