package dataset

import (
	"fmt"
	"math"

	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/format"
	"github.com/bvhlab/complexity/internal/hash"
)

// Point is one (sample count, elapsed seconds) observation.
type Point struct {
	N float64
	T float64
}

// Series is an ordered sequence of points for one value column.
// Points keep the order of the input file.
type Series struct {
	Name   string
	Points []Point
}

// Len returns the number of points in the series.
func (s Series) Len() int {
	return len(s.Points)
}

// XValues returns the sample counts in order.
func (s Series) XValues() []float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.N
	}

	return xs
}

// YValues returns the elapsed times in order.
func (s Series) YValues() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.T
	}

	return ys
}

// MaxN returns the index of the point with the largest sample count,
// or -1 for an empty series. The first occurrence wins on ties.
func (s Series) MaxN() int {
	idx := -1
	for i, p := range s.Points {
		if idx < 0 || p.N > s.Points[idx].N {
			idx = i
		}
	}

	return idx
}

// Validate checks that every sample count is strictly positive.
//
// Returns errs.ErrInvalidDomain naming the first offending point.
func (s Series) Validate() error {
	for i, p := range s.Points {
		if !(p.N > 0) || math.IsInf(p.N, 0) {
			return fmt.Errorf("%w: series %q point %d has n=%g", errs.ErrInvalidDomain, s.Name, i, p.N)
		}
	}

	return nil
}

// Sample is one parsed input line.
type Sample struct {
	// N is the sample count from the first column.
	N int64
	// Values holds the time columns in file order.
	Values []float64
}

// Table is a parsed benchmark dataset.
type Table struct {
	// Schema is the column layout the table was parsed with.
	Schema format.Schema
	// Samples holds one entry per data line, in file order.
	Samples []Sample
	// Columns names each value column; len(Columns) == Schema.ValueColumns().
	Columns []string
	// Source names the resource the table was read from, empty for readers.
	Source string
}

// Len returns the number of samples.
func (t *Table) Len() int {
	return len(t.Samples)
}

// Series extracts value column i as a Series named after the column.
func (t *Table) Series(i int) (Series, error) {
	if i < 0 || i >= t.Schema.ValueColumns() {
		return Series{}, fmt.Errorf("%w: %s table has no value column %d", errs.ErrSchemaMismatch, t.Schema, i)
	}

	s := Series{
		Name:   t.columnName(i),
		Points: make([]Point, len(t.Samples)),
	}
	for j, sample := range t.Samples {
		s.Points[j] = Point{N: float64(sample.N), T: sample.Values[i]}
	}

	return s, nil
}

// AllSeries returns one Series per declared value column.
func (t *Table) AllSeries() []Series {
	cols := t.Schema.ValueColumns()
	out := make([]Series, 0, cols)
	for i := 0; i < cols; i++ {
		s, _ := t.Series(i)
		out = append(out, s)
	}

	return out
}

// Fingerprint returns an xxHash64 digest over the schema and every sample.
// Identical inputs always produce identical fingerprints, whatever their compression.
func (t *Table) Fingerprint() uint64 {
	f := hash.NewFingerprint(t.Schema.String())
	for _, s := range t.Samples {
		f.AddInt64(s.N)
		for _, v := range s.Values {
			f.AddFloat64(v)
		}
	}

	return f.Sum64()
}

func (t *Table) columnName(i int) string {
	if i < len(t.Columns) && t.Columns[i] != "" {
		return t.Columns[i]
	}
	if defaults := t.Schema.DefaultColumnNames(); i < len(defaults) {
		return defaults[i]
	}

	return fmt.Sprintf("column %d", i+1)
}
