// Package forecast extrapolates a rolling window a couple of samples ahead.
// It is a first-difference heuristic, not a statistical model.
package forecast

import (
	"math"

	"github.com/OldStager01/host-sentinel/pkg/models"
)

type Config struct {
	// Span is how many trailing samples the slope is measured over.
	Span int
	// TrendThreshold is the slope, in points per sample, beyond which the
	// metric counts as moving.
	TrendThreshold float64
	// Horizon is how many samples ahead Predicted looks.
	Horizon float64
	Min     float64
	Max     float64
}

type Forecaster struct {
	config Config
}

func New(cfg Config) *Forecaster {
	if cfg.Span <= 0 {
		cfg.Span = 5
	}
	if cfg.TrendThreshold == 0 {
		cfg.TrendThreshold = 2.0
	}
	if cfg.Horizon == 0 {
		cfg.Horizon = 2
	}
	if cfg.Max == 0 {
		cfg.Max = 100
	}
	return &Forecaster{config: cfg}
}

func (f *Forecaster) Forecast(metric string, window []float64, current float64) models.ForecastResult {
	span := f.config.Span
	if len(window) < span {
		return models.ForecastResult{
			Metric:    metric,
			Trend:     models.TrendUnknown,
			Predicted: current,
		}
	}

	recent := window[len(window)-span:]
	slope := (recent[len(recent)-1] - recent[0]) / float64(span)

	return models.ForecastResult{
		Metric:    metric,
		Trend:     f.classify(slope),
		Predicted: clamp(current+slope*f.config.Horizon, f.config.Min, f.config.Max),
		Slope:     slope,
	}
}

// Unknown is the result for a metric whose current value is unavailable.
func (f *Forecaster) Unknown(metric string) models.ForecastResult {
	return models.ForecastResult{Metric: metric, Trend: models.TrendUnknown}
}

func (f *Forecaster) classify(slope float64) models.Trend {
	switch {
	case slope > f.config.TrendThreshold:
		return models.TrendIncreasing
	case slope < -f.config.TrendThreshold:
		return models.TrendDecreasing
	default:
		return models.TrendStable
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
