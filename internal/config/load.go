// Package config builds the viper configuration shared by the command line tools.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bvhlab/complexity/errs"
)

// EnvPrefix prefixes every environment override, e.g. BVHFIT_FIGURE_WIDTH.
const EnvPrefix = "BVHFIT"

// Pipeline selects the defaults of one command line tool.
type Pipeline string

const (
	// PipelineComparison analyzes baseline and accelerated timings side by side.
	PipelineComparison Pipeline = "comparison"
	// PipelineSingle analyzes a lone accelerated series.
	PipelineSingle Pipeline = "single"
)

// Configuration keys.
const (
	KeyInput         = "input"
	KeyOutput        = "output"
	KeyCompression   = "compression"
	KeyModels        = "models"
	KeyVerbose       = "verbose"
	KeyLogFormat     = "log.format"
	KeyLogFile       = "log.file"
	KeySummaryFormat = "summary.format"
	KeySummaryFile   = "summary.file"
	KeyFigureTitle   = "figure.title"
	KeyFigureWidth   = "figure.width"
	KeyFigureHeight  = "figure.height"
	KeyFigureDPI     = "figure.dpi"
	KeyCountAxis     = "figure.count_axis"
	KeyTimeAxis      = "figure.time_axis"
	KeyBaseline      = "series.baseline"
	KeyAccelerated   = "series.accelerated"
)

// Settings is the decoded configuration of one run.
type Settings struct {
	Input       string   `mapstructure:"input"`
	Output      string   `mapstructure:"output"`
	Compression string   `mapstructure:"compression"`
	Models      []string `mapstructure:"models"`
	Verbose     bool     `mapstructure:"verbose"`
	Log         struct {
		Format string `mapstructure:"format"`
		File   string `mapstructure:"file"`
	} `mapstructure:"log"`
	Summary struct {
		Format string `mapstructure:"format"`
		File   string `mapstructure:"file"`
	} `mapstructure:"summary"`
	Figure struct {
		Title     string  `mapstructure:"title"`
		Width     int     `mapstructure:"width"`
		Height    int     `mapstructure:"height"`
		DPI       float64 `mapstructure:"dpi"`
		CountAxis string  `mapstructure:"count_axis"`
		TimeAxis  string  `mapstructure:"time_axis"`
	} `mapstructure:"figure"`
	Series struct {
		Baseline    string `mapstructure:"baseline"`
		Accelerated string `mapstructure:"accelerated"`
	} `mapstructure:"series"`
}

// New returns a viper instance holding the defaults of the pipeline.
// With no configuration the tools read and write fixed file names in the
// working directory.
func New(pipeline Pipeline) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyCompression, "")
	v.SetDefault(KeyModels, []string{"linear", "logarithmic"})
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeySummaryFormat, "text")
	v.SetDefault(KeySummaryFile, "")
	v.SetDefault(KeyFigureWidth, 1500)
	v.SetDefault(KeyFigureHeight, 600)
	v.SetDefault(KeyFigureDPI, 100)
	v.SetDefault(KeyBaseline, "No BVH")
	v.SetDefault(KeyAccelerated, "With BVH")

	switch pipeline {
	case PipelineSingle:
		v.SetDefault(KeyInput, "benchmark_data_bvh_crt.txt")
		v.SetDefault(KeyOutput, "save.png")
		v.SetDefault(KeyFigureTitle, "Data Plot")
		v.SetDefault(KeyCountAxis, "Number of spheres")
		v.SetDefault(KeyTimeAxis, "Time for Intersection Tests (with BVH)")
	default:
		v.SetDefault(KeyInput, "benchmark_data.txt")
		v.SetDefault(KeyOutput, "complexity_analysis_complete.png")
		v.SetDefault(KeyFigureTitle, "BVH Complexity Analysis")
		v.SetDefault(KeyCountAxis, "Number of Spheres (n)")
		v.SetDefault(KeyTimeAxis, "Time (seconds)")
	}

	return v
}

// Load reads .env and the configuration file into v.
//
// An explicit cfgFile must exist. Without one, config.yaml in the working
// directory is read when present.
func Load(v *viper.Viper, cfgFile string) error {
	// a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("%w: config: %w", errs.ErrResource, err)
	}

	return nil
}

// Decode unmarshals v into Settings and checks the values the tools depend on.
func Decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if s.Input == "" {
		return nil, errors.New("config: input path is empty")
	}
	if s.Output == "" {
		return nil, errors.New("config: output path is empty")
	}

	return &s, nil
}
