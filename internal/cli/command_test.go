package cli

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bvhlab/complexity/compress"
	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/format"
	"github.com/bvhlab/complexity/internal/config"
	"github.com/bvhlab/complexity/report"
)

const comparisonData = "10 0.1 0.01\n100 1.0 0.02\n1000 10.0 0.03\n"

func writeInput(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func execute(pipeline config.Pipeline, args ...string) (code int, stdout, stderr string) {
	cmd := NewCommand(pipeline, "test", "test command")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	code = Execute(cmd)

	return code, out.String(), errOut.String()
}

func TestCommand_Comparison(t *testing.T) {
	input := writeInput(t, "benchmark_data.txt", []byte(comparisonData))
	dir := t.TempDir()
	output := filepath.Join(dir, "complexity_analysis_complete.png")
	summaryFile := filepath.Join(dir, "reports", "summary.yaml")

	code, stdout, stderr := execute(config.PipelineComparison,
		"--input", input,
		"--output", output,
		"--summary-file", summaryFile,
	)
	require.Equal(t, 0, code, stderr)

	require.Contains(t, stdout, "No BVH Implementation:")
	require.Contains(t, stdout, "- Empirical complexity: O(n)")
	require.Contains(t, stdout, "- Empirical complexity: O(log n)")
	require.Contains(t, stdout, "At n=1000, With BVH is 333.3x faster than No BVH")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, 1500, cfg.Width)
	require.Equal(t, 600, cfg.Height)

	sf, err := os.Open(summaryFile)
	require.NoError(t, err)
	defer sf.Close()
	summary, err := report.ReadYAML(sf)
	require.NoError(t, err)
	require.Equal(t, input, summary.Source)
	require.Len(t, summary.Series, 2)
	require.Equal(t, "O(log n)", summary.Series[1].Label)
}

func TestCommand_SingleCompressedInput(t *testing.T) {
	codec, err := compress.GetCodec(format.CompressionZstd)
	require.NoError(t, err)
	data, err := codec.Compress([]byte("10 0.01\n100 0.02\n1000 0.03\n"))
	require.NoError(t, err)

	input := writeInput(t, "benchmark_data_bvh_crt.txt.zst", data)
	output := filepath.Join(t.TempDir(), "save.png")

	code, stdout, stderr := execute(config.PipelineSingle,
		"-i", input, "-o", output, "--summary-format", "yaml", "--models", "linear,logarithmic,power",
	)
	require.Equal(t, 0, code, stderr)
	require.FileExists(t, output)

	summary, err := report.ReadYAML(bytes.NewBufferString(stdout))
	require.NoError(t, err)
	require.Len(t, summary.Series, 1)
	require.Equal(t, "With BVH", summary.Series[0].Name)
	require.Len(t, summary.Series[0].Candidates, 3)
	require.Nil(t, summary.Speedup)
}

func TestCommand_VerboseLogsToStderr(t *testing.T) {
	input := writeInput(t, "in.txt", []byte(comparisonData))
	output := filepath.Join(t.TempDir(), "out.png")

	code, stdout, stderr := execute(config.PipelineComparison, "-i", input, "-o", output, "-v")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stderr, "loaded dataset")
	require.Contains(t, stderr, "fitted series")
	require.Contains(t, stderr, "figure saved")
	require.NotContains(t, stdout, "loaded dataset")
}

func TestCommand_ConfigFile(t *testing.T) {
	input := writeInput(t, "in.txt", []byte(comparisonData))
	output := filepath.Join(t.TempDir(), "configured.png")
	cfg := writeInput(t, "bvhfit.yaml", []byte(fmt.Sprintf(
		"input: %s\noutput: %s\nfigure:\n  width: 800\n  height: 400\nseries:\n  baseline: Brute force\n",
		input, output,
	)))

	code, stdout, stderr := execute(config.PipelineComparison, "--config", cfg)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "Brute force Implementation:")
	require.Contains(t, stdout, "time_brute_force")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	pc, err := png.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, 800, pc.Width)
}

func TestCommand_Failures(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.png")

	tests := []struct {
		name     string
		pipeline config.Pipeline
		input    string
		args     []string
		want     string
	}{
		{
			name:     "missing input",
			pipeline: config.PipelineComparison,
			args:     []string{"-i", filepath.Join(t.TempDir(), "nope.txt")},
			want:     "Error: cannot read input: ",
		},
		{
			name:     "malformed line",
			pipeline: config.PipelineComparison,
			input:    "10 0.1 0.01\n100 1.0\n",
			want:     "Error: malformed data: malformed line: ",
		},
		{
			name:     "wrong column count for single",
			pipeline: config.PipelineSingle,
			input:    comparisonData,
			want:     "expected 2 fields, got 3",
		},
		{
			name:     "single point",
			pipeline: config.PipelineComparison,
			input:    "10 0.1 0.01\n",
			want:     "Error: degenerate fit: ",
		},
		{
			name:     "non-positive count",
			pipeline: config.PipelineSingle,
			input:    "0 0.01\n100 0.02\n",
			want:     "Error: ",
		},
		{
			name:     "unknown compression",
			pipeline: config.PipelineComparison,
			input:    comparisonData,
			args:     []string{"--compression", "brotli"},
			want:     "unsupported compression type",
		},
		{
			name:     "unknown summary format",
			pipeline: config.PipelineComparison,
			input:    comparisonData,
			args:     []string{"--summary-format", "xml"},
			want:     `unknown summary format "xml"`,
		},
		{
			name:     "unexpected argument",
			pipeline: config.PipelineComparison,
			input:    comparisonData,
			args:     []string{"extra"},
			want:     "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-o", output}, tt.args...)
			if tt.input != "" {
				args = append(args, "-i", writeInput(t, "in.txt", []byte(tt.input)))
			}

			code, _, stderr := execute(tt.pipeline, args...)
			require.Equal(t, 1, code)
			require.Contains(t, stderr, tt.want)
		})
	}
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "degenerate fit: x: invalid domain",
		describe(fmt.Errorf("x: %w", errs.ErrInvalidDomain)))
	require.Equal(t, "malformed data: schema mismatch",
		describe(errs.ErrSchemaMismatch))
	require.Equal(t, "cannot read input: resource error",
		describe(errs.ErrResource))
	require.Equal(t, "boom", describe(errors.New("boom")))
}
