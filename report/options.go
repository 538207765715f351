package report

import (
	"errors"
	"fmt"

	"github.com/bvhlab/complexity/internal/options"
)

// Default figure geometry: 15x6 inches at 100 px per inch.
const (
	DefaultWidth        = 1500
	DefaultHeight       = 600
	DefaultDPI          = 100
	DefaultTrendSamples = 100

	minPanelWidth  = 200
	minPanelHeight = 150
)

// Axis names used when none are configured.
const (
	DefaultCountAxis = "Number of Spheres (n)"
	DefaultTimeAxis  = "Time (seconds)"
)

// FigureConfig controls the geometry and labels of a Figure.
type FigureConfig struct {
	width        int
	height       int
	dpi          float64
	trendSamples int
	countAxis    string
	timeAxis     string
}

func defaultFigureConfig() FigureConfig {
	return FigureConfig{
		width:        DefaultWidth,
		height:       DefaultHeight,
		dpi:          DefaultDPI,
		trendSamples: DefaultTrendSamples,
		countAxis:    DefaultCountAxis,
		timeAxis:     DefaultTimeAxis,
	}
}

// FigureOption is a functional option for FigureConfig.
type FigureOption = options.Option[*FigureConfig]

// WithSize sets the size of the composed image in pixels.
// Each of the two panels gets half the width.
func WithSize(width, height int) FigureOption {
	return options.New(func(c *FigureConfig) error {
		if width < 2*minPanelWidth || height < minPanelHeight+captionHeight {
			return fmt.Errorf("figure size %dx%d is below the %dx%d minimum",
				width, height, 2*minPanelWidth, minPanelHeight+captionHeight)
		}
		c.width = width
		c.height = height

		return nil
	})
}

// WithDPI sets the resolution go-chart uses to scale fonts and strokes.
func WithDPI(dpi float64) FigureOption {
	return options.New(func(c *FigureConfig) error {
		if !(dpi > 0) {
			return fmt.Errorf("dpi must be positive, got %g", dpi)
		}
		c.dpi = dpi

		return nil
	})
}

// WithTrendSamples sets how many evenly spaced sample counts are used to draw
// each trend curve between the smallest and largest observed n.
func WithTrendSamples(samples int) FigureOption {
	return options.New(func(c *FigureConfig) error {
		if samples < 2 {
			return errors.New("trend curves need at least 2 samples")
		}
		c.trendSamples = samples

		return nil
	})
}

// WithAxisNames overrides the linear-panel axis names. The log-log panel
// derives its names from them without any trailing unit, so "Time (seconds)"
// becomes "ln(Time)". Empty values keep the defaults.
func WithAxisNames(countAxis, timeAxis string) FigureOption {
	return options.NoError(func(c *FigureConfig) {
		if countAxis != "" {
			c.countAxis = countAxis
		}
		if timeAxis != "" {
			c.timeAxis = timeAxis
		}
	})
}
