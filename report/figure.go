package report

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/bvhlab/complexity/dataset"
	"github.com/bvhlab/complexity/errs"
	"github.com/bvhlab/complexity/internal/options"
	"github.com/bvhlab/complexity/internal/pool"
	"github.com/bvhlab/complexity/regression"
)

// captionHeight is the band above the panels holding the figure title.
const captionHeight = 24

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	chart.ColorOrange,
}

// SeriesPlot is one analyzed series drawn on both panels.
type SeriesPlot struct {
	// Series holds the raw observations.
	Series dataset.Series
	// Result holds the trend and order models fitted to Series.
	Result *regression.Result
	// Color is the point and line color; zero picks the next palette color.
	Color drawing.Color
}

// Figure is a two-panel comparison chart: raw data with trend curves on a
// linear scale (left) and the same data with log-log trend lines (right).
type Figure struct {
	Title string

	cfg   FigureConfig
	plots []SeriesPlot
}

// NewFigure creates an empty figure.
func NewFigure(title string, opts ...FigureOption) (*Figure, error) {
	cfg, err := options.Build(defaultFigureConfig(), opts...)
	if err != nil {
		return nil, err
	}

	return &Figure{Title: title, cfg: cfg}, nil
}

// AddSeries adds a series and its fitted models to both panels.
func (f *Figure) AddSeries(p SeriesPlot) error {
	if p.Series.Len() == 0 {
		return fmt.Errorf("%w: series %q has no points to plot", errs.ErrInsufficientData, p.Series.Name)
	}
	if p.Result == nil || p.Result.Trend == nil || p.Result.Order == nil {
		return fmt.Errorf("%w: series %q has no fitted models", errs.ErrRender, p.Series.Name)
	}
	if p.Color.IsZero() {
		p.Color = palette[len(f.plots)%len(palette)]
	}
	f.plots = append(f.plots, p)

	return nil
}

// Len returns the number of series on the figure.
func (f *Figure) Len() int {
	return len(f.plots)
}

// Render composes both panels and writes the figure to w as PNG.
func (f *Figure) Render(w io.Writer) error {
	img, err := f.compose()
	if err != nil {
		return err
	}

	buf := pool.GetImageBuffer()
	defer pool.PutImageBuffer(buf)

	if err = png.Encode(buf, img); err != nil {
		return fmt.Errorf("%w: encode figure: %w", errs.ErrRender, err)
	}
	if _, err = buf.WriteTo(w); err != nil {
		return fmt.Errorf("%w: write figure: %w", errs.ErrRender, err)
	}

	return nil
}

// Save renders the figure to path, creating parent directories and
// replacing any existing file. A failed render leaves the old file untouched.
func (f *Figure) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrRender, err)
	}

	tmp, err := os.CreateTemp(dir, ".figure-*.png")
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrRender, err)
	}

	if err = f.Render(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return err
	}
	if err = replaceFile(tmp, path); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("%w: %w", errs.ErrRender, err)
	}

	return nil
}

func replaceFile(tmp *os.File, path string) error {
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

// panel is the data for one go-chart panel.
type panel struct {
	title  string
	xName  string
	yName  string
	series []chart.Series
	xs, ys []float64
}

func (p *panel) add(s chart.ContinuousSeries) {
	p.series = append(p.series, s)
	p.xs = append(p.xs, s.XValues...)
	p.ys = append(p.ys, s.YValues...)
}

func (f *Figure) compose() (*image.RGBA, error) {
	if len(f.plots) == 0 {
		return nil, fmt.Errorf("%w: figure has no series", errs.ErrRender)
	}

	width, height := f.cfg.width, f.cfg.height
	leftW := width / 2
	panelH := height - captionHeight

	left, err := f.renderPanel(f.linearPanel(), leftW, panelH)
	if err != nil {
		return nil, err
	}
	right, err := f.renderPanel(f.logLogPanel(), width-leftW, panelH)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, captionHeight, leftW, height), left, left.Bounds().Min, draw.Src)
	draw.Draw(canvas, image.Rect(leftW, captionHeight, width, height), right, right.Bounds().Min, draw.Src)
	drawCaption(canvas, f.Title)

	return canvas, nil
}

func (f *Figure) linearPanel() panel {
	p := panel{
		title: "Linear Scale Analysis",
		xName: f.cfg.countAxis,
		yName: f.cfg.timeAxis,
	}

	for _, sp := range f.plots {
		p.add(chart.ContinuousSeries{
			Name:    sp.Series.Name + " (Raw)",
			XValues: sp.Series.XValues(),
			YValues: sp.Series.YValues(),
			Style:   pointStyle(sp.Color),
		})

		trend := sp.Result.Trend
		xs := f.trendRange(sp.Series)
		p.add(chart.ContinuousSeries{
			Name:    fmt.Sprintf("%s (%s fit, R² = %.4f)", sp.Series.Name, fitName(trend.Type), trend.RSquared),
			XValues: xs,
			YValues: trend.Predict(xs),
			Style:   trendStyle(sp.Color),
		})
	}

	return p
}

func (f *Figure) logLogPanel() panel {
	p := panel{
		title: "Log-Log Scale Analysis",
		xName: "ln(" + stripUnit(f.cfg.countAxis) + ")",
		yName: "ln(" + stripUnit(f.cfg.timeAxis) + ")",
	}

	for _, sp := range f.plots {
		xs, ys := make([]float64, 0, sp.Series.Len()), make([]float64, 0, sp.Series.Len())
		for _, pt := range sp.Series.Points {
			if pt.N > 0 && pt.T > 0 {
				xs = append(xs, math.Log(pt.N))
				ys = append(ys, math.Log(pt.T))
			}
		}
		p.add(chart.ContinuousSeries{
			Name:    sp.Series.Name + " (Raw)",
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(sp.Color),
		})

		order := sp.Result.Order
		lineX := f.trendRange(sp.Series)
		lineY := make([]float64, len(lineX))
		for i, x := range lineX {
			lineX[i] = math.Log(x)
			lineY[i] = order.Intercept + order.Slope*lineX[i]
		}
		p.add(chart.ContinuousSeries{
			Name:    fmt.Sprintf("%s (slope = %.2f)", sp.Series.Name, order.Slope),
			XValues: lineX,
			YValues: lineY,
			Style:   trendStyle(sp.Color),
		})
	}

	return p
}

func (f *Figure) renderPanel(p panel, width, height int) (image.Image, error) {
	ch := chart.Chart{
		Title:      p.title,
		Width:      width,
		Height:     height,
		DPI:        f.cfg.dpi,
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: p.xName, Range: axisRange(p.xs), ValueFormatter: formatTick},
		YAxis:      chart.YAxis{Name: p.yName, Range: axisRange(p.ys), ValueFormatter: formatTick},
		Series:     p.series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	buf := pool.GetImageBuffer()
	defer pool.PutImageBuffer(buf)

	if err := ch.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("%w: %s panel: %w", errs.ErrRender, p.title, err)
	}

	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s panel: %w", errs.ErrRender, p.title, err)
	}

	return img, nil
}

// trendRange returns evenly spaced sample counts spanning the series.
func (f *Figure) trendRange(s dataset.Series) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range s.Points {
		lo = math.Min(lo, p.N)
		hi = math.Max(hi, p.N)
	}

	return linspace(lo, hi, f.cfg.trendSamples)
}

func linspace(lo, hi float64, count int) []float64 {
	out := make([]float64, count)
	step := (hi - lo) / float64(count-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[count-1] = hi

	return out
}

// axisRange pads the data extent by 5% and never returns an empty range,
// which go-chart refuses to render.
func axisRange(values []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}

	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Abs(hi) * 0.1
		if pad == 0 {
			pad = 1
		}
	}

	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func formatTick(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', 4, 64)
	}

	return fmt.Sprint(v)
}

// pointStyle renders points only, with no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

func trendStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth:     2,
		StrokeColor:     col,
		StrokeDashArray: []float64{6, 4},
	}
}

func fitName(t regression.ModelType) string {
	switch t {
	case regression.ModelTypeLinear:
		return "Linear"
	case regression.ModelTypeLogarithmic:
		return "Log"
	case regression.ModelTypePower:
		return "Power"
	default:
		return t.String()
	}
}

// stripUnit drops a trailing parenthesized unit: "Time (seconds)" -> "Time".
func stripUnit(name string) string {
	if idx := strings.LastIndex(name, " ("); idx > 0 && strings.HasSuffix(name, ")") {
		return name[:idx]
	}

	return name
}

// drawCaption centers text in the caption band using the 7x13 bitmap font.
func drawCaption(img *image.RGBA, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.Black), Face: face}
	tw := dr.MeasureString(text).Ceil()

	x := max((img.Bounds().Dx()-tw)/2, 4)
	y := (captionHeight + face.Metrics().Ascent.Ceil()) / 2
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}
