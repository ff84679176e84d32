// Package compression decodes and encodes compressed series payloads for the
// HTTP API and the seriesctl tool.
package compression

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Algorithm defines compression types
type Algorithm uint8

const (
	None   Algorithm = 0
	Snappy Algorithm = 1
)

// String returns the Content-Encoding token of the algorithm
func (a Algorithm) String() string {
	switch a {
	case None:
		return "identity"
	case Snappy:
		return "snappy"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

// Compressor interface for compression algorithms
type Compressor interface {
	// Compress compresses data
	Compress(data []byte) ([]byte, error)

	// Decompress decompresses data
	Decompress(data []byte) ([]byte, error)

	// Algorithm returns the compression algorithm type
	Algorithm() Algorithm
}

// GetCompressor returns a compressor for the given algorithm
func GetCompressor(algo Algorithm) (Compressor, error) {
	switch algo {
	case None:
		return &NoneCompressor{}, nil
	case Snappy:
		return NewSnappyCompressor(), nil
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %d", algo)
	}
}

// ParseEncoding maps a Content-Encoding header value to an algorithm.
// Empty and "identity" mean no compression.
func ParseEncoding(header string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "", "identity":
		return None, nil
	case "snappy", "x-snappy":
		return Snappy, nil
	default:
		return None, fmt.Errorf("unsupported content encoding: %q", header)
	}
}

// ForContentEncoding returns the compressor matching a Content-Encoding header
func ForContentEncoding(header string) (Compressor, error) {
	algo, err := ParseEncoding(header)
	if err != nil {
		return nil, err
	}
	return GetCompressor(algo)
}

// ForFilename picks Snappy for files ending in .sz and None otherwise
func ForFilename(path string) Compressor {
	if strings.EqualFold(filepath.Ext(path), ".sz") {
		return NewSnappyCompressor()
	}
	return &NoneCompressor{}
}

// NoneCompressor is a no-op compressor
type NoneCompressor struct{}

func (n *NoneCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (n *NoneCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

func (n *NoneCompressor) Algorithm() Algorithm {
	return None
}
