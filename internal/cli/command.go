// Package cli holds the cobra command shared by the analysis binaries.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bvhlab/complexity"
	"github.com/bvhlab/complexity/dataset"
	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/format"
	"github.com/bvhlab/complexity/internal/config"
	"github.com/bvhlab/complexity/internal/telemetry"
	"github.com/bvhlab/complexity/regression"
	"github.com/bvhlab/complexity/report"
)

// NewCommand builds the root command of a pipeline binary.
func NewCommand(pipeline config.Pipeline, use, short string) *cobra.Command {
	v := config.New(pipeline)
	var cfgFile string

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Load(v, cfgFile); err != nil {
				return err
			}

			return Run(v, pipeline, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml when present)")
	flags.StringP("input", "i", "", "benchmark data file, optionally .zst/.s2/.lz4 compressed")
	flags.StringP("output", "o", "", "PNG file the figure is written to")
	flags.String("compression", "", "input compression (none, zstd, s2, lz4); inferred from the extension when empty")
	flags.StringSlice("models", nil, "trend models to rank (linear, logarithmic, power)")
	flags.String("summary-format", "", "summary format printed to stdout (text or yaml)")
	flags.String("summary-file", "", "also write the summary to this file (.yaml/.yml selects YAML)")
	flags.String("title", "", "figure caption")
	flags.BoolP("verbose", "v", false, "enable debug logging")

	bindFlags(v, flags, map[string]string{
		"input":          config.KeyInput,
		"output":         config.KeyOutput,
		"compression":    config.KeyCompression,
		"models":         config.KeyModels,
		"summary-format": config.KeySummaryFormat,
		"summary-file":   config.KeySummaryFile,
		"title":          config.KeyFigureTitle,
		"verbose":        config.KeyVerbose,
	})

	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

// Execute runs cmd and returns the process exit code.
func Execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", describe(err))
		return 1
	}

	return 0
}

// describe prefixes err with its category from the error taxonomy.
func describe(err error) string {
	switch {
	case errs.IsDegenerate(err):
		return "degenerate fit: " + err.Error()
	case errors.Is(err, errs.ErrMalformedLine), errors.Is(err, errs.ErrSchemaMismatch):
		return "malformed data: " + err.Error()
	case errors.Is(err, errs.ErrResource):
		return "cannot read input: " + err.Error()
	default:
		return err.Error()
	}
}

// Run executes load, analyze, render and print with the settings in v.
func Run(v *viper.Viper, pipeline config.Pipeline, stdout, stderr io.Writer) error {
	s, err := config.Decode(v)
	if err != nil {
		return err
	}

	closeLog, err := telemetry.InitLogger(telemetry.LoggerConfig{
		Writer:  stderr,
		Verbose: s.Verbose,
		Format:  s.Log.Format,
		File:    s.Log.File,
	})
	if err != nil {
		return err
	}
	defer closeLog()

	loadOpts, err := loadOptions(s, pipeline)
	if err != nil {
		return err
	}

	table, err := dataset.Load(s.Input, loadOpts...)
	if err != nil {
		return err
	}
	slog.Debug("loaded dataset",
		"path", s.Input,
		"schema", table.Schema.String(),
		"samples", table.Len(),
		"fingerprint", fmt.Sprintf("%016x", table.Fingerprint()),
	)

	analyzeOpts := []regression.AnalyzeOption{}
	if len(s.Models) > 0 {
		analyzeOpts = append(analyzeOpts, regression.WithModelNames(s.Models...))
	}

	var cmp *complexity.Comparison
	if pipeline == config.PipelineSingle {
		cmp, err = complexity.AnalyzeSingle(table, analyzeOpts...)
	} else {
		cmp, err = complexity.AnalyzeComparison(table, analyzeOpts...)
	}
	if err != nil {
		return err
	}

	fig, err := cmp.Figure(s.Figure.Title,
		report.WithSize(s.Figure.Width, s.Figure.Height),
		report.WithDPI(s.Figure.DPI),
		report.WithAxisNames(s.Figure.CountAxis, s.Figure.TimeAxis),
	)
	if err != nil {
		return err
	}
	if err = fig.Save(s.Output); err != nil {
		return err
	}
	slog.Debug("figure saved", "path", s.Output, "width", s.Figure.Width, "height", s.Figure.Height)

	summary := cmp.Summary()
	if err = summary.Write(stdout, s.Summary.Format); err != nil {
		return err
	}

	if s.Summary.File != "" {
		if err = writeSummaryFile(summary, s.Summary.File, s.Summary.Format); err != nil {
			return err
		}
		slog.Debug("summary written", "path", s.Summary.File)
	}

	return nil
}

func loadOptions(s *config.Settings, pipeline config.Pipeline) ([]dataset.LoadOption, error) {
	opts := make([]dataset.LoadOption, 0, 3)

	if pipeline == config.PipelineSingle {
		opts = append(opts,
			dataset.WithSchema(format.SchemaSingle),
			dataset.WithColumnNames(s.Series.Accelerated),
		)
	} else {
		opts = append(opts,
			dataset.WithSchema(format.SchemaComparison),
			dataset.WithColumnNames(s.Series.Baseline, s.Series.Accelerated),
		)
	}

	if s.Compression != "" {
		comp, ok := format.CompressionFromString(s.Compression)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedCompression, s.Compression)
		}
		opts = append(opts, dataset.WithCompression(comp))
	}

	return opts, nil
}

func writeSummaryFile(summary *report.Summary, path, fallback string) error {
	fmtName := fallback
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		fmtName = report.FormatYAML
	case ".txt":
		fmtName = report.FormatText
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrRender, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrRender, err)
	}

	if err = summary.Write(f, fmtName); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
