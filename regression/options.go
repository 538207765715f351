package regression

import (
	"errors"
	"fmt"
	"slices"

	"github.com/bvhlab/complexity/internal/options"
)

// AnalyzeConfig holds the trend candidates Analyze fits.
type AnalyzeConfig struct {
	models []ModelType
}

// defaultAnalyzeConfig fits linear and logarithmic candidates, in that order.
func defaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		models: []ModelType{ModelTypeLinear, ModelTypeLogarithmic},
	}
}

// AnalyzeOption is a functional option for AnalyzeConfig.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithModels replaces the trend candidates. Order matters: on equal R² the
// earlier model wins. Duplicates are dropped.
func WithModels(types ...ModelType) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		if len(types) == 0 {
			return errors.New("at least one model type is required")
		}

		models := make([]ModelType, 0, len(types))
		for _, t := range types {
			if newEmptyEstimator(t) == nil {
				return fmt.Errorf("unknown model type: %d", t)
			}
			if !slices.Contains(models, t) {
				models = append(models, t)
			}
		}
		cfg.models = models

		return nil
	})
}

// WithModelNames is WithModels for names such as "linear" or "log".
func WithModelNames(names ...string) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		types := make([]ModelType, 0, len(names))
		for _, name := range names {
			t := ModelTypeFromString(name)
			if t == ModelType(-1) {
				return fmt.Errorf("unknown model type: %s", name)
			}
			types = append(types, t)
		}

		return options.Apply(cfg, WithModels(types...))
	})
}
