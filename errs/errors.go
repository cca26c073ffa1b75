// Package errs defines the sentinel errors shared across atmodata packages.
//
// Callers match errors with errors.Is; packages wrap these sentinels with
// fmt.Errorf("...: %w", ...) to attach line numbers and file context.
package errs

import "errors"

var (
	// ErrBadFormat indicates a structural violation of a text format:
	// wrong format index, a declared count that does not match the lines
	// actually present, a malformed numeric field, or a row with the wrong
	// number of fields. A parse that fails with ErrBadFormat never yields a
	// partial document.
	ErrBadFormat = errors.New("malformed input")

	// ErrFileExists indicates that a write was declined because the
	// destination file already exists and overwriting was not requested.
	ErrFileExists = errors.New("destination file exists")

	// ErrEmptyData indicates that an input contained a header but no data
	// rows, and header-only input was not allowed.
	ErrEmptyData = errors.New("no data found")

	// ErrLengthMismatch indicates that two slices which must be aligned
	// index-for-index have different lengths.
	ErrLengthMismatch = errors.New("input lengths do not match")

	// ErrNotMonotonic indicates that an input expected to increase strictly
	// along its axis does not.
	ErrNotMonotonic = errors.New("input is not strictly increasing")

	// ErrEmptyInput indicates that an operation received no values to work on.
	ErrEmptyInput = errors.New("empty input")
)
