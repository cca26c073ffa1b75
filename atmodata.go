// Package atmodata provides post-processing utilities for atmospheric
// science instrument data: a NASA-AMES FFI 1001 reader/writer and a set of
// time-series helpers for cleaning, averaging and time-correcting measured
// variables.
//
// # Core Features
//
//   - NASA-AMES 1001 parsing and byte-faithful serialization (ames)
//   - Transparent gzip/zstd/lz4 archive handling by file extension (compress)
//   - Time binning, circular means, moving averages, interpolation (series)
//   - Spike, jump and outlier masking, including a 1-D LOF detector (filters)
//   - Time-drift polynomial correction and cross-correlation lag (timecorr)
//   - Timestamp and seconds-after-midnight conversions (timeutil)
//   - V25 datalogger file maintenance and collection (v25)
//
// # Basic Usage
//
// Reading a NASA-AMES file and accessing its variables:
//
//	import "github.com/atmodata/atmodata"
//
//	doc, err := atmodata.ReadFile("OM_20200304_591.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ozone := doc.Variable("Ozone") // NaN where the file had VMISS
//	times := doc.Times()           // StartDate + independent as UTC stamps
//
// Writing it back, refusing to clobber an existing file:
//
//	result, err := atmodata.WriteFile("out/OM_cleaned.txt.gz", doc)
//	if errors.Is(err, atmodata.ErrFileExists) {
//	    // pass ames.WithOverwrite(true) to replace
//	}
//	_ = result // WriteDeclined, WriteNew or WriteOverwritten
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the ames
// package, simplifying the most common use cases. For reader and writer
// options, compression codecs and the numeric utility packages, import the
// subpackages directly.
package atmodata

import (
	"io"

	"github.com/atmodata/atmodata/ames"
	"github.com/atmodata/atmodata/errs"
)

// Sentinel errors re-exported for callers that only use the facade.
var (
	// ErrBadFormat reports a structural violation of the FFI 1001 grammar.
	ErrBadFormat = errs.ErrBadFormat

	// ErrFileExists reports a write declined because the target exists.
	ErrFileExists = errs.ErrFileExists
)

// ReadFile parses the NASA-AMES FFI 1001 file at path with default options.
// Files with a recognized compression extension (.gz, .zst, .lz4) are
// decompressed transparently.
func ReadFile(path string, opts ...ames.ReaderOption) (*ames.Document, error) {
	return ames.ReadFile(path, opts...)
}

// Parse parses NASA-AMES FFI 1001 content from r.
func Parse(r io.Reader, opts ...ames.ReaderOption) (*ames.Document, error) {
	return ames.Parse(r, opts...)
}

// WriteFile serializes doc to path. Existing files are left untouched and
// the call returns ames.WriteDeclined wrapping ErrFileExists unless
// ames.WithOverwrite(true) is given. Compression is chosen by extension.
func WriteFile(path string, doc *ames.Document, opts ...ames.WriterOption) (ames.WriteResult, error) {
	return ames.WriteFile(path, doc, opts...)
}

// Encode serializes doc to w with default options.
func Encode(w io.Writer, doc *ames.Document, opts ...ames.WriterOption) error {
	return ames.Encode(w, doc, opts...)
}

// Checksum returns a content hash of doc, suitable for change detection
// across read/modify/write cycles. Fails if doc does not validate.
func Checksum(doc *ames.Document) (uint64, error) {
	return doc.Checksum()
}
