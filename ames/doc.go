// Package ames reads and writes NASA-AMES FFI 1001 formatted text files.
//
// FFI 1001 is a fixed-structure ASCII exchange format for tabular scientific
// time-series data: a counted metadata header (originator, mission, dates,
// per-variable scale factors and missing-value sentinels, comment blocks)
// followed by a delimited numeric data block whose first column is the
// independent variable.
//
// # Basic Usage
//
// Reading a file:
//
//	doc, err := ames.ReadFile("OM_20200304_591_CPT_MUC_V01.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ozone := doc.Variable("Ozone") // scaled values, NaN where missing
//
// Writing it back:
//
//	result, err := ames.WriteFile("out.txt", doc, ames.WithOverwrite(true))
//
// Files with a recognized compression extension (.gz, .zst, .lz4) are
// decompressed and compressed transparently by ReadFile and WriteFile.
//
// # Missing values and scale factors
//
// On read, each raw data value is first compared to its column's missing
// sentinel (exact match on the raw, pre-scale value); matches become NaN.
// Surviving values are then multiplied by the column's scale factor. On
// write the pipeline is inverted: values are divided by the scale factor
// and NaN is replaced by the sentinel before formatting. Tests can probe
// each step separately through ApplySentinel and ApplyScale.
package ames
