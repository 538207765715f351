package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/format"
)

const (
	commentPrefix = "#"
	maxLineLength = 1024 * 1024 // 1MiB
)

// Parse reads whitespace-separated benchmark records from r.
//
// Every non-blank line must carry exactly schema.Fields() fields: an integer
// sample count followed by the time columns. Lines starting with '#' are
// comments. A count written as a float with no fractional part, such as
// "5000.0", is accepted.
//
// Parameters:
//   - r: Source of the text records
//   - schema: Expected column layout
//
// Returns:
//   - *Table: Parsed samples with the schema's default column names
//   - error: *errs.LineError for the first malformed line, errs.ErrInvalidSchema
//     for an unknown schema, or the read error from r
func Parse(r io.Reader, schema format.Schema) (*Table, error) {
	if schema.Fields() == 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidSchema, schema)
	}

	return parse(r, schema, "", schema.DefaultColumnNames())
}

func parse(r io.Reader, schema format.Schema, source string, columns []string) (*Table, error) {
	table := &Table{
		Schema:  schema,
		Columns: columns,
		Source:  source,
	}

	fields := schema.Fields()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		sample, reason := parseRecord(line, fields)
		if reason != "" {
			return nil, &errs.LineError{Source: source, Line: lineNo, Text: line, Reason: reason}
		}
		table.Samples = append(table.Samples, sample)
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &errs.LineError{Source: source, Line: lineNo + 1, Reason: "line too long"}
		}

		return nil, fmt.Errorf("%w: %w", errs.ErrResource, err)
	}

	return table, nil
}

// parseRecord converts one trimmed line. It returns a non-empty reason on failure.
func parseRecord(line string, fields int) (Sample, string) {
	parts := strings.Fields(line)
	if len(parts) != fields {
		return Sample{}, fmt.Sprintf("expected %d fields, got %d", fields, len(parts))
	}

	n, reason := parseCount(parts[0])
	if reason != "" {
		return Sample{}, "field 1 " + reason
	}

	values := make([]float64, fields-1)
	for i, part := range parts[1:] {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return Sample{}, fmt.Sprintf("field %d is not a number", i+2)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Sample{}, fmt.Sprintf("field %d is not finite", i+2)
		}
		values[i] = v
	}

	return Sample{N: n, Values: values}, ""
}

func parseCount(field string) (int64, string) {
	if n, err := strconv.ParseInt(field, 10, 64); err == nil {
		return n, ""
	}

	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, "is not a number"
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, "is not an integer"
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, "is out of range"
	}

	return int64(f), ""
}
