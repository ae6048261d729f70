// Package signal generates deterministic control signals (held steps, clock
// pulses, noise) for driving modules offline.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-button/dsp/core"
)

// ErrUnsortedSteps is returned by Steps when step times decrease.
var ErrUnsortedSteps = errors.New("signal: steps must be sorted by time")

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Frame returns the index of the frame that contains time t (seconds).
func (g *Generator) Frame(t float64) int {
	return int(math.Round(t * g.cfg.SampleRate))
}

// Step sets a held signal to Value from time At (seconds) onwards.
type Step struct {
	At    float64
	Value float64
}

// Steps renders a piecewise-constant signal that starts at initial and
// changes at each step. Steps must be sorted by At; steps beyond the end are
// ignored.
func (g *Generator) Steps(initial float64, steps []Step, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("steps samples must be > 0: %d", samples)
	}
	for i := 1; i < len(steps); i++ {
		if steps[i].At < steps[i-1].At {
			return nil, fmt.Errorf("%w: step %d at %v after %v", ErrUnsortedSteps, i, steps[i].At, steps[i-1].At)
		}
	}

	out := make([]float64, samples)
	value := initial
	next := 0
	for i := range out {
		for next < len(steps) && g.Frame(steps[next].At) <= i {
			value = steps[next].Value
			next++
		}
		out[i] = value
	}
	return out, nil
}

// PulseTrain generates a clock: amplitude for the first duty fraction of each
// period, 0 for the rest.
func (g *Generator) PulseTrain(freqHz, duty, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("pulse train samples must be > 0: %d", samples)
	}
	if freqHz <= 0 || freqHz >= g.cfg.SampleRate/2 {
		return nil, fmt.Errorf("pulse train frequency must be in (0, %f): %f", g.cfg.SampleRate/2, freqHz)
	}
	if duty <= 0 || duty >= 1 {
		return nil, fmt.Errorf("pulse train duty must be in (0, 1): %f", duty)
	}

	out := make([]float64, samples)
	step := freqHz / g.cfg.SampleRate
	for i := range out {
		_, phase := math.Modf(step * float64(i))
		if phase < duty {
			out[i] = amplitude
		}
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Mix adds src into dst sample by sample over their common length.
func Mix(dst, src []float64) {
	n := min(len(dst), len(src))
	for i := range dst[:n] {
		dst[i] += src[i]
	}
}
