package dataset

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bvhlab/complexity/compress"
	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/format"
	"github.com/bvhlab/complexity/internal/options"
	"github.com/bvhlab/complexity/internal/pool"
)

// Load reads the resource at path and parses it into a Table.
//
// The resource is read completely before parsing. Files ending in .zst,
// .s2 or .lz4 are decompressed transparently unless WithCompression
// overrides the detection.
//
// Parameters:
//   - path: Location of the benchmark data file
//   - opts: Optional LoadOption values
//
// Returns:
//   - *Table: Parsed dataset with Source set to path
//   - error: errs.ErrResource when the file is missing, unreadable or fails
//     to decompress; *errs.LineError for malformed content
//
// Example:
//
//	table, err := dataset.Load("benchmark_data.txt")
//	if err != nil {
//	    return err
//	}
//	baseline, _ := table.Series(0)
func Load(path string, opts ...LoadOption) (*Table, error) {
	cfg, err := options.Build(defaultLoadConfig(), opts...)
	if err != nil {
		return nil, err
	}

	columns, err := cfg.resolveColumns()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrResource, err)
	}
	defer f.Close()

	buf := pool.GetInputBuffer()
	defer pool.PutInputBuffer(buf)

	if _, err = buf.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", errs.ErrResource, path, err)
	}

	data := buf.Bytes()
	if comp := cfg.resolveCompression(path); comp != format.CompressionNone {
		data, err = compress.Decompress(comp, data)
		if err != nil {
			return nil, fmt.Errorf("%w: decode %s as %s: %w", errs.ErrResource, path, comp, err)
		}
	}

	return parse(bytes.NewReader(data), cfg.schema, path, columns)
}
