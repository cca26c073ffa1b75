package ames

import (
	"fmt"
	"strconv"

	"github.com/atmodata/atmodata/internal/options"
)

// WriterOption configures serialization.
type WriterOption = options.Option[*writerConfig]

// FormatFunc formats one numeric value for output. col is the zero-based
// dependent-variable column, or -1 for the independent variable.
type FormatFunc func(col int, v float64) string

type writerConfig struct {
	sep       string
	sepData   string
	newline   string
	unitsJoin string
	overwrite bool
	format    FormatFunc
}

func newWriterConfig() *writerConfig {
	return &writerConfig{
		sep:       " ",
		sepData:   "\t",
		newline:   "\n",
		unitsJoin: "; ",
		format: func(_ int, v float64) string {
			return strconv.FormatFloat(v, 'g', -1, 64)
		},
	}
}

// WithWriteSeparator sets the header field separator. The default is a
// single space, matching the reader's default.
func WithWriteSeparator(sep string) WriterOption {
	return options.New(func(c *writerConfig) error {
		if sep == "" {
			return fmt.Errorf("header separator must not be empty")
		}
		c.sep = sep
		return nil
	})
}

// WithWriteDataSeparator sets the data column separator. The default is a
// tab, matching the reader's default.
func WithWriteDataSeparator(sep string) WriterOption {
	return options.New(func(c *writerConfig) error {
		if sep == "" {
			return fmt.Errorf("data separator must not be empty")
		}
		c.sepData = sep
		return nil
	})
}

// WithNewline sets the line terminator. The default is "\n".
func WithNewline(nl string) WriterOption {
	return options.New(func(c *writerConfig) error {
		if nl != "\n" && nl != "\r\n" {
			return fmt.Errorf("newline must be \\n or \\r\\n")
		}
		c.newline = nl
		return nil
	})
}

// WithOverwrite permits WriteFile to replace an existing destination.
// Without it, writing to an existing path is declined.
func WithOverwrite(enabled bool) WriterOption {
	return options.NoError(func(c *writerConfig) {
		c.overwrite = enabled
	})
}

// WithFormatter installs a custom numeric formatter, e.g. one built from
// numfmt-detected column formats to preserve the shapes of the source file.
// The default formats with strconv.FormatFloat(v, 'g', -1, 64).
func WithFormatter(fn FormatFunc) WriterOption {
	return options.New(func(c *writerConfig) error {
		if fn == nil {
			return fmt.Errorf("formatter must not be nil")
		}
		c.format = fn
		return nil
	})
}

// WithVariableUnitsJoin sets the separator used to rejoin VariableNames and
// VariableUnits into VNAME lines when units were split on read.
// The default is "; ".
func WithVariableUnitsJoin(sep string) WriterOption {
	return options.New(func(c *writerConfig) error {
		if sep == "" {
			return fmt.Errorf("units separator must not be empty")
		}
		c.unitsJoin = sep
		return nil
	})
}
