package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/bvhlab/complexity/dataset"
	"github.com/bvhlab/complexity/regression"
)

// Summary output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

const countUnit = "sphere"

// ModelSummary is the printable form of a fitted model.
type ModelSummary struct {
	Type         string    `yaml:"type"`
	Slope        float64   `yaml:"slope"`
	Intercept    float64   `yaml:"intercept"`
	RSquared     float64   `yaml:"r_squared"`
	RMSE         float64   `yaml:"rmse"`
	Formula      string    `yaml:"formula"`
	Coefficients []float64 `yaml:"coefficients,flow"`
}

// SeriesSummary describes the analysis of one series.
type SeriesSummary struct {
	Name       string         `yaml:"name"`
	Trend      ModelSummary   `yaml:"trend"`
	Candidates []ModelSummary `yaml:"candidates"`
	Order      ModelSummary   `yaml:"order"`
	Complexity string         `yaml:"complexity"`
	Label      string         `yaml:"label"`
}

// SpeedupSummary is the baseline over accelerated ratio at the largest n.
type SpeedupSummary struct {
	Baseline    string  `yaml:"baseline"`
	Accelerated string  `yaml:"accelerated"`
	N           int64   `yaml:"n"`
	Ratio       float64 `yaml:"ratio"`
}

// Row is one raw input record.
type Row struct {
	N      int64     `yaml:"n"`
	Values []float64 `yaml:"values,flow"`
}

// Summary is the textual report of an analysis run.
type Summary struct {
	Source      string          `yaml:"source,omitempty"`
	Fingerprint string          `yaml:"fingerprint"`
	Columns     []string        `yaml:"columns,flow"`
	Series      []SeriesSummary `yaml:"series"`
	Speedup     *SpeedupSummary `yaml:"speedup,omitempty"`
	Rows        []Row           `yaml:"rows"`
}

// NewSummary collects the printable results of an analysis.
// speedup may be nil when the table carries a single series.
func NewSummary(table *dataset.Table, results []*regression.Result, speedup *dataset.Speedup) *Summary {
	s := &Summary{
		Source:      table.Source,
		Fingerprint: fmt.Sprintf("%016x", table.Fingerprint()),
		Columns:     append([]string(nil), table.Columns...),
		Series:      make([]SeriesSummary, 0, len(results)),
		Rows:        make([]Row, 0, table.Len()),
	}

	for _, res := range results {
		ss := SeriesSummary{
			Name:       res.Series,
			Trend:      summarizeModel(res.Trend),
			Order:      summarizeModel(res.Order),
			Complexity: res.Complexity.String(),
			Label:      res.Label(),
		}
		for _, m := range res.Candidates {
			ss.Candidates = append(ss.Candidates, summarizeModel(m))
		}
		s.Series = append(s.Series, ss)
	}

	if speedup != nil && len(results) >= 2 {
		s.Speedup = &SpeedupSummary{
			Baseline:    results[0].Series,
			Accelerated: results[1].Series,
			N:           int64(speedup.N),
			Ratio:       speedup.Ratio,
		}
	}

	for _, sample := range table.Samples {
		s.Rows = append(s.Rows, Row{N: sample.N, Values: append([]float64(nil), sample.Values...)})
	}

	return s
}

func summarizeModel(m *regression.Model) ModelSummary {
	return ModelSummary{
		Type:         m.Type.String(),
		Slope:        m.Slope,
		Intercept:    m.Intercept,
		RSquared:     m.RSquared,
		RMSE:         m.RMSE,
		Formula:      m.Formula,
		Coefficients: append([]float64(nil), m.Estimator.Coefficients()...),
	}
}

// Write emits the summary in the named format ("text" or "yaml").
func (s *Summary) Write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return s.WriteText(w)
	case FormatYAML, "yml":
		return s.WriteYAML(w)
	default:
		return fmt.Errorf("unknown summary format %q (want %s or %s)", format, FormatText, FormatYAML)
	}
}

// WriteText prints the human-readable report followed by the raw data table.
func (s *Summary) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Complexity Analysis Results:")
	for _, ss := range s.Series {
		fmt.Fprintln(bw)
		fmt.Fprintf(bw, "%s Implementation:\n", ss.Name)
		kind := fitTitle(ss.Trend.Type)
		fmt.Fprintf(bw, "- %s fit slope: %.6f %s\n", kind, ss.Trend.Slope, slopeUnit(ss.Trend.Type))
		fmt.Fprintf(bw, "- %s fit intercept: %.6f seconds\n", kind, ss.Trend.Intercept)
		fmt.Fprintf(bw, "- %s fit R² value: %.6f\n", kind, ss.Trend.RSquared)
		fmt.Fprintf(bw, "- Log-log slope: %.2f (%s growth)\n", ss.Order.Slope, ss.Complexity)
		fmt.Fprintf(bw, "- Empirical complexity: %s\n", ss.Label)
	}

	if s.Speedup != nil {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, "Performance Analysis:")
		fmt.Fprintf(bw, "At n=%d, %s is %.1fx faster than %s\n",
			s.Speedup.N, s.Speedup.Accelerated, s.Speedup.Ratio, s.Speedup.Baseline)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Raw data from file:")
	tw := tabwriter.NewWriter(bw, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := make([]string, 0, len(s.Columns)+1)
	header = append(header, "n_"+countUnit+"s")
	for _, c := range s.Columns {
		header = append(header, columnKey(c))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")
	for _, row := range s.Rows {
		fmt.Fprintf(tw, "%d\t", row.N)
		for _, v := range row.Values {
			fmt.Fprintf(tw, "%.6f\t", v)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	return bw.Flush()
}

// WriteYAML emits the summary as a YAML document.
func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	return enc.Close()
}

// ReadYAML parses a summary written by WriteYAML.
func ReadYAML(r io.Reader) (*Summary, error) {
	var s Summary
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}

	return &s, nil
}

// Estimator rebuilds the trend estimator of a summarized model.
func (m ModelSummary) Estimator() (regression.Estimator, error) {
	return regression.NewEstimator(m.Type, m.Coefficients)
}

func fitTitle(modelType string) string {
	if modelType == "" {
		return ""
	}

	return strings.ToUpper(modelType[:1]) + modelType[1:]
}

func slopeUnit(modelType string) string {
	switch regression.ModelTypeFromString(modelType) {
	case regression.ModelTypeLinear:
		return "seconds/" + countUnit
	case regression.ModelTypeLogarithmic:
		return "seconds/ln(" + countUnit + ")"
	default:
		return "(log-log)"
	}
}

// columnKey turns a series name into a table header: "No BVH" -> "time_no_bvh".
func columnKey(name string) string {
	return "time_" + strings.ToLower(strings.Join(strings.Fields(name), "_"))
}
