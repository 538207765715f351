package report

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/bvhlab/complexity/dataset"
	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/regression"
)

var (
	baseline = dataset.Series{
		Name:   "No BVH",
		Points: []dataset.Point{{N: 10, T: 0.1}, {N: 100, T: 1.0}, {N: 1000, T: 10.0}},
	}
	accelerated = dataset.Series{
		Name:   "With BVH",
		Points: []dataset.Point{{N: 10, T: 0.01}, {N: 100, T: 0.02}, {N: 1000, T: 0.03}},
	}
)

func analyzed(t *testing.T, s dataset.Series) SeriesPlot {
	t.Helper()

	res, err := regression.Analyze(s)
	require.NoError(t, err)

	return SeriesPlot{Series: s, Result: res}
}

func comparisonFigure(t *testing.T, opts ...FigureOption) *Figure {
	t.Helper()

	fig, err := NewFigure("BVH complexity", opts...)
	require.NoError(t, err)
	require.NoError(t, fig.AddSeries(analyzed(t, baseline)))
	require.NoError(t, fig.AddSeries(analyzed(t, accelerated)))

	return fig
}

func TestFigure_RenderSize(t *testing.T) {
	fig := comparisonFigure(t, WithSize(800, 400))

	var buf bytes.Buffer
	require.NoError(t, fig.Render(&buf))

	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 800, cfg.Width)
	require.Equal(t, 400, cfg.Height)
}

func TestFigure_DefaultSize(t *testing.T) {
	fig := comparisonFigure(t)

	var buf bytes.Buffer
	require.NoError(t, fig.Render(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, DefaultWidth, img.Bounds().Dx())
	require.Equal(t, DefaultHeight, img.Bounds().Dy())
}

func TestFigure_Deterministic(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, comparisonFigure(t, WithSize(600, 300)).Render(&first))
	require.NoError(t, comparisonFigure(t, WithSize(600, 300)).Render(&second))
	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestFigure_SingleSeries(t *testing.T) {
	fig, err := NewFigure("", WithSize(600, 300), WithAxisNames("Number of spheres", "Time for Intersection Tests (with BVH)"))
	require.NoError(t, err)
	require.NoError(t, fig.AddSeries(analyzed(t, accelerated)))
	require.Equal(t, 1, fig.Len())

	var buf bytes.Buffer
	require.NoError(t, fig.Render(&buf))
	require.NotZero(t, buf.Len())
}

func TestFigure_Panels(t *testing.T) {
	fig := comparisonFigure(t, WithTrendSamples(10))

	linear := fig.linearPanel()
	require.Equal(t, "Linear Scale Analysis", linear.title)
	require.Equal(t, DefaultCountAxis, linear.xName)
	require.Len(t, linear.series, 4)

	names := make([]string, 0, len(linear.series))
	for _, s := range linear.series {
		names = append(names, s.GetName())
	}
	require.Equal(t, []string{
		"No BVH (Raw)",
		"No BVH (Linear fit, R² = 1.0000)",
		"With BVH (Raw)",
		"With BVH (Log fit, R² = 1.0000)",
	}, names)

	trend, ok := linear.series[1].(chart.ContinuousSeries)
	require.True(t, ok)
	require.Len(t, trend.XValues, 10)
	require.Equal(t, 10.0, trend.XValues[0])
	require.Equal(t, 1000.0, trend.XValues[9])

	loglog := fig.logLogPanel()
	require.Equal(t, "ln(Number of Spheres)", loglog.xName)
	require.Equal(t, "ln(Time)", loglog.yName)
	require.Equal(t, "No BVH (slope = 1.00)", loglog.series[1].GetName())
	require.Equal(t, "With BVH (slope = 0.24)", loglog.series[3].GetName())
}

func TestFigure_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out", "complexity.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	fig := comparisonFigure(t, WithSize(600, 300))
	require.NoError(t, fig.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, 600, cfg.Width)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFigure_SaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "save.png")
	require.NoError(t, comparisonFigure(t, WithSize(600, 300)).Save(path))
	require.FileExists(t, path)
}

func TestFigure_Errors(t *testing.T) {
	t.Run("empty figure", func(t *testing.T) {
		fig, err := NewFigure("empty")
		require.NoError(t, err)
		require.ErrorIs(t, fig.Render(&bytes.Buffer{}), errs.ErrRender)
	})

	t.Run("unfitted series", func(t *testing.T) {
		fig, err := NewFigure("x")
		require.NoError(t, err)
		require.ErrorIs(t, fig.AddSeries(SeriesPlot{Series: baseline}), errs.ErrRender)
	})

	t.Run("empty series", func(t *testing.T) {
		fig, err := NewFigure("x")
		require.NoError(t, err)
		require.ErrorIs(t, fig.AddSeries(SeriesPlot{}), errs.ErrInsufficientData)
	})

	t.Run("bad options", func(t *testing.T) {
		_, err := NewFigure("x", WithSize(10, 10))
		require.Error(t, err)
		_, err = NewFigure("x", WithDPI(0))
		require.Error(t, err)
		_, err = NewFigure("x", WithTrendSamples(1))
		require.Error(t, err)
	})
}

func TestAxisRange(t *testing.T) {
	r := axisRange([]float64{1, 3})
	require.InDelta(t, 0.9, r.Min, 1e-12)
	require.InDelta(t, 3.1, r.Max, 1e-12)

	flat := axisRange([]float64{2, 2})
	require.Less(t, flat.Min, 2.0)
	require.Greater(t, flat.Max, 2.0)

	zero := axisRange([]float64{0})
	require.Equal(t, -1.0, zero.Min)
	require.Equal(t, 1.0, zero.Max)

	empty := axisRange(nil)
	require.Equal(t, 0.0, empty.Min)
	require.Equal(t, 1.0, empty.Max)
}

func TestStripUnit(t *testing.T) {
	require.Equal(t, "Time", stripUnit("Time (seconds)"))
	require.Equal(t, "Number of Spheres", stripUnit("Number of Spheres (n)"))
	require.Equal(t, "Time for Intersection Tests", stripUnit("Time for Intersection Tests (with BVH)"))
	require.Equal(t, "plain", stripUnit("plain"))
}
