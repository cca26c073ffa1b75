// Package compress provides whole-buffer codecs for the compressed archive
// formats that atmospheric data files are commonly shipped in.
//
// Codecs operate on complete in-memory buffers because the formats handled
// by this module (NASA-AMES text files, instrument logs) are small enough to
// hold in memory, and the parsers need the full content anyway.
package compress

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Type identifies a compression algorithm.
type Type uint8

const (
	// None passes data through unmodified.
	None Type = iota + 1
	// Gzip is RFC 1952 gzip.
	Gzip
	// Zstd is Zstandard framed compression.
	Zstd
	// LZ4 is the LZ4 frame format.
	LZ4
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Gzip:
		return "Gzip"
	case Zstd:
		return "Zstd"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a complete buffer.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a complete buffer.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated result.
	// Returns an error if the data is corrupted or was produced by a
	// different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Type]Codec{
	None: NewNoOpCodec(),
	Gzip: NewGzipCodec(),
	Zstd: NewZstdCodec(),
	LZ4:  NewLZ4Codec(),
}

// GetCodec returns the built-in Codec for the given compression type.
func GetCodec(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", t)
}

// ForPath derives the compression type from a file name extension:
// ".gz" and ".gzip" select Gzip, ".zst" Zstd, ".lz4" LZ4, anything else None.
func ForPath(path string) Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// TrimExt removes a recognized compression extension from path, leaving the
// name of the contained file. Paths without such an extension are returned
// unchanged.
func TrimExt(path string) string {
	if ForPath(path) == None {
		return path
	}

	return strings.TrimSuffix(path, filepath.Ext(path))
}
