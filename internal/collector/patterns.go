package collector

import (
	"math"
	"math/rand"
	"time"
)

// Pattern shapes the mock CPU load over time.
type Pattern interface {
	Apply(base float64, at time.Time) float64
	Name() string
}

func ParsePattern(name string, start time.Time, rng *rand.Rand) Pattern {
	switch name {
	case "daily":
		return DailyPattern{}
	case "random":
		return &RandomPattern{rng: rng}
	case "gradual_rise":
		return GradualRisePattern{Start: start}
	case "sine_wave":
		return SineWavePattern{Start: start}
	case "spike":
		return SpikePattern{Start: start}
	default:
		return SteadyPattern{}
	}
}

type SteadyPattern struct{}

func (SteadyPattern) Apply(base float64, _ time.Time) float64 {
	return clampPercent(base)
}

func (SteadyPattern) Name() string { return "steady" }

// DailyPattern follows office hours: busy mornings and afternoons, quiet nights.
type DailyPattern struct{}

func (DailyPattern) Apply(base float64, at time.Time) float64 {
	hour := at.Hour()

	modifier := 1.0
	switch {
	case hour >= 9 && hour <= 11:
		modifier = 1.4
	case hour >= 14 && hour <= 16:
		modifier = 1.3
	case hour >= 17 && hour <= 20:
		modifier = 1.1
	case hour <= 6:
		modifier = 0.6
	}
	return clampPercent(base * modifier)
}

func (DailyPattern) Name() string { return "daily" }

type RandomPattern struct {
	rng *rand.Rand
}

func (p *RandomPattern) Apply(base float64, _ time.Time) float64 {
	f := rand.Float64
	if p.rng != nil {
		f = p.rng.Float64
	}
	return math.Max(10, clampPercent(base*(0.5+f())))
}

func (p *RandomPattern) Name() string { return "random" }

// GradualRisePattern adds 2% per minute since Start, capped at +50%.
type GradualRisePattern struct {
	Start time.Time
}

func (p GradualRisePattern) Apply(base float64, at time.Time) float64 {
	increase := math.Min(at.Sub(p.Start).Minutes()*2, 50)
	return clampPercent(base * (1 + increase/100))
}

func (p GradualRisePattern) Name() string { return "gradual_rise" }

type SineWavePattern struct {
	Start     time.Time
	Period    time.Duration
	Amplitude float64
}

func (p SineWavePattern) Apply(base float64, at time.Time) float64 {
	period := p.Period
	if period <= 0 {
		period = 10 * time.Minute
	}
	amplitude := p.Amplitude
	if amplitude == 0 {
		amplitude = 20
	}

	phase := float64(at.Sub(p.Start)) / float64(period) * 2 * math.Pi
	return math.Max(10, clampPercent(base+math.Sin(phase)*amplitude))
}

func (p SineWavePattern) Name() string { return "sine_wave" }

// SpikePattern drives the load to near saturation for one minute out of
// every five.
type SpikePattern struct {
	Start time.Time
}

func (p SpikePattern) Apply(base float64, at time.Time) float64 {
	if int(at.Sub(p.Start).Minutes())%5 == 4 {
		return 97
	}
	return clampPercent(base)
}

func (p SpikePattern) Name() string { return "spike" }

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
