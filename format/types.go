package format

import (
	"path/filepath"
	"strings"
)

type (
	Schema          uint8
	CompressionType uint8
)

const (
	// SchemaComparison is the 3-column layout: n, baseline time, accelerated time.
	SchemaComparison Schema = 0x1
	// SchemaSingle is the 2-column layout: n, accelerated time.
	SchemaSingle Schema = 0x2

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
)

// Fields returns the number of whitespace-separated fields per line, or 0 for an unknown schema.
func (s Schema) Fields() int {
	switch s {
	case SchemaComparison:
		return 3
	case SchemaSingle:
		return 2
	default:
		return 0
	}
}

// ValueColumns returns the number of time columns following the sample count.
func (s Schema) ValueColumns() int {
	if f := s.Fields(); f > 0 {
		return f - 1
	}

	return 0
}

// DefaultColumnNames returns the series names used when none are configured.
func (s Schema) DefaultColumnNames() []string {
	switch s {
	case SchemaComparison:
		return []string{"No BVH", "With BVH"}
	case SchemaSingle:
		return []string{"With BVH"}
	default:
		return nil
	}
}

func (s Schema) String() string {
	switch s {
	case SchemaComparison:
		return "Comparison"
	case SchemaSingle:
		return "Single"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// CompressionFromPath infers the compression type from the file extension.
// Unknown extensions are treated as uncompressed text.
func CompressionFromPath(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".s2", ".sz":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// CompressionFromString parses a compression name such as "zstd" or "none".
// It returns false for unknown names.
func CompressionFromString(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, true
	case "zstd", "zst":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
