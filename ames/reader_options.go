package ames

import (
	"fmt"

	"github.com/atmodata/atmodata/internal/options"
)

// ReaderOption configures parsing. Options are applied in order; invalid
// values fail the Parse/ReadFile call before any input is consumed.
type ReaderOption = options.Option[*readerConfig]

type readerConfig struct {
	sep              string
	sepData          string
	stripLines       bool
	collapseSeps     bool
	verticalScales   bool
	autoCommentCount bool
	allowEmptyData   bool
	ensureASCII      bool
	unitsSplit       string
}

func newReaderConfig() *readerConfig {
	return &readerConfig{
		sep:              " ",
		sepData:          "\t",
		stripLines:       true,
		autoCommentCount: true,
	}
}

// WithSeparator sets the field separator used in the header section.
// The default is a single space.
func WithSeparator(sep string) ReaderOption {
	return options.New(func(c *readerConfig) error {
		if sep == "" {
			return fmt.Errorf("header separator must not be empty")
		}
		c.sep = sep
		return nil
	})
}

// WithDataSeparator sets the field separator used exclusively in the data
// block. The default is a tab.
func WithDataSeparator(sep string) ReaderOption {
	return options.New(func(c *readerConfig) error {
		if sep == "" {
			return fmt.Errorf("data separator must not be empty")
		}
		c.sepData = sep
		return nil
	})
}

// WithLineStripping controls whether surrounding whitespace is removed from
// every line before parsing. Enabled by default.
func WithLineStripping(enabled bool) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.stripLines = enabled
	})
}

// WithCollapsedSeparators controls whether runs of repeated header
// separators are collapsed into one before splitting (e.g. double spaces).
// Disabled by default: collapsing discards legitimately empty fields.
func WithCollapsedSeparators(enabled bool) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.collapseSeps = enabled
	})
}

// WithVerticalScales declares that VSCALE and VMISS are arranged vertically,
// one value per line, instead of as one line each.
func WithVerticalScales(enabled bool) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.verticalScales = enabled
	})
}

// WithAutoCommentCount controls whether the normal-comment line count is
// derived from NLHEAD instead of trusting the declared NNCOML value.
// Enabled by default, matching files in circulation with a stale NNCOML.
func WithAutoCommentCount(enabled bool) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.autoCommentCount = enabled
	})
}

// WithEmptyDataAllowed permits header-only input. Disabled by default:
// a file without data rows fails with errs.ErrEmptyData.
func WithEmptyDataAllowed(enabled bool) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.allowEmptyData = enabled
	})
}

// WithASCIIOnly enforces pure ASCII input, which is what FFI 1001 mandates.
// Disabled by default; non-ASCII input is then decoded as UTF-8 with a
// Latin-1 fallback.
func WithASCIIOnly(enabled bool) ReaderOption {
	return options.NoError(func(c *readerConfig) {
		c.ensureASCII = enabled
	})
}

// WithVariableUnitsSplit splits each VNAME header line at the last
// occurrence of sep; the part before becomes the variable name, the part
// after its unit (Document.VariableUnits). No split happens by default.
func WithVariableUnitsSplit(sep string) ReaderOption {
	return options.New(func(c *readerConfig) error {
		if sep == "" {
			return fmt.Errorf("units separator must not be empty")
		}
		c.unitsSplit = sep
		return nil
	})
}
