// Package complexity analyzes benchmark timings to estimate how an algorithm
// scales with its input size.
//
// It reads whitespace-separated benchmark records, fits least-squares models
// under linear, log-x and log-log transforms, classifies the empirical growth
// order and reports the results as a two-panel PNG figure plus a text summary.
//
// # Input formats
//
// Comparison files carry a baseline and an accelerated timing per line:
//
//	<n> <baseline seconds> <accelerated seconds>
//
// Single-series files carry only the accelerated timing:
//
//	<n> <accelerated seconds>
//
// # Basic Usage
//
//	table, err := dataset.Load("benchmark_data.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cmp, err := complexity.AnalyzeComparison(table)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fig, _ := cmp.Figure("BVH vs brute force")
//	_ = fig.Save("complexity_analysis_complete.png")
//	_ = cmp.Summary().WriteText(os.Stdout)
//
// # Package Structure
//
// This package composes the lower-level packages:
//
//   - dataset: loading and parsing of benchmark files
//   - regression: least-squares fits and complexity classification
//   - report: PNG figure and text/YAML summaries
package complexity

import (
	"fmt"
	"log/slog"

	"github.com/bvhlab/complexity/dataset"
	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/format"
	"github.com/bvhlab/complexity/regression"
	"github.com/bvhlab/complexity/report"
)

// Comparison holds the analysis of every series in a table.
type Comparison struct {
	// Table is the analyzed input.
	Table *dataset.Table
	// Series holds one entry per value column, in column order.
	Series []dataset.Series
	// Results holds the analysis of each entry in Series.
	Results []*regression.Result
	// Speedup compares the first two series at the largest n; nil for single-series tables.
	Speedup *dataset.Speedup
}

// AnalyzeComparison analyzes a baseline and an accelerated series and
// computes the speedup at the largest sample count.
//
// Returns errs.ErrSchemaMismatch unless the table uses format.SchemaComparison.
func AnalyzeComparison(table *dataset.Table, opts ...regression.AnalyzeOption) (*Comparison, error) {
	if table == nil || table.Schema != format.SchemaComparison {
		return nil, fmt.Errorf("%w: comparison analysis needs a %s table", errs.ErrSchemaMismatch, format.SchemaComparison)
	}

	cmp, err := analyzeAll(table, opts)
	if err != nil {
		return nil, err
	}

	sp, err := dataset.SpeedupAtMax(cmp.Series[0], cmp.Series[1])
	if err != nil {
		return nil, fmt.Errorf("speedup: %w", err)
	}
	cmp.Speedup = &sp

	return cmp, nil
}

// AnalyzeSingle analyzes the only series of a single-column table.
//
// Returns errs.ErrSchemaMismatch unless the table uses format.SchemaSingle.
func AnalyzeSingle(table *dataset.Table, opts ...regression.AnalyzeOption) (*Comparison, error) {
	if table == nil || table.Schema != format.SchemaSingle {
		return nil, fmt.Errorf("%w: single-series analysis needs a %s table", errs.ErrSchemaMismatch, format.SchemaSingle)
	}

	return analyzeAll(table, opts)
}

// Analyze dispatches on the table schema.
func Analyze(table *dataset.Table, opts ...regression.AnalyzeOption) (*Comparison, error) {
	if table != nil && table.Schema == format.SchemaSingle {
		return AnalyzeSingle(table, opts...)
	}

	return AnalyzeComparison(table, opts...)
}

func analyzeAll(table *dataset.Table, opts []regression.AnalyzeOption) (*Comparison, error) {
	cmp := &Comparison{
		Table:  table,
		Series: table.AllSeries(),
	}

	for _, s := range cmp.Series {
		res, err := regression.Analyze(s, opts...)
		if err != nil {
			return nil, fmt.Errorf("analyze %q: %w", s.Name, err)
		}
		slog.Debug("fitted series",
			"series", s.Name,
			"points", s.Len(),
			"trend", res.Trend.Type.String(),
			"r_squared", res.Trend.RSquared,
			"order", res.Order.Slope,
			"complexity", res.Label(),
		)
		cmp.Results = append(cmp.Results, res)
	}

	return cmp, nil
}

// Figure builds the two-panel figure for every analyzed series.
func (c *Comparison) Figure(title string, opts ...report.FigureOption) (*report.Figure, error) {
	fig, err := report.NewFigure(title, opts...)
	if err != nil {
		return nil, err
	}

	for i, s := range c.Series {
		if err = fig.AddSeries(report.SeriesPlot{Series: s, Result: c.Results[i]}); err != nil {
			return nil, err
		}
	}

	return fig, nil
}

// Summary builds the printable summary.
func (c *Comparison) Summary() *report.Summary {
	return report.NewSummary(c.Table, c.Results, c.Speedup)
}
