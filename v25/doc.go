// Package v25 maintains logfiles written by V25 microcontroller data
// loggers. The V25 writes one delimited text file per data source and
// flight; power loss leaves empty files and incomplete last lines behind,
// and re-runs of the downloader leave byte-identical duplicates.
//
// Cleanup removes such defects in place, Validate checks files against
// TOML-declared shapes, and CollectLogs/CollectOSC merge the per-flight
// files of one data source into a single columns.Table.
package v25
