// Package scenario describes timed input sequences for a Button module and
// renders them into per-frame host streams.
//
// Scenarios are written in YAML or imported from standard MIDI files, where
// every held note keeps the button pressed.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/cwbudde/algo-button/dsp/core"
	"github.com/cwbudde/algo-button/dsp/signal"
	"github.com/cwbudde/algo-button/module/button"
	"gopkg.in/yaml.v3"
)

// Errors returned by Validate and Render.
var (
	ErrNoSampleRate  = errors.New("scenario: sample rate must be positive")
	ErrNegativeTime  = errors.New("scenario: event time must not be negative")
	ErrEmptyScenario = errors.New("scenario: no events and no duration")
	ErrTooLong       = errors.New("scenario: too long to render")
)

// MaxFrames bounds the number of frames a scenario may render.
const MaxFrames = 1 << 24

// tail is the time rendered after the last event when no duration is given.
const tail = 0.01

// Event changes the button, the trigger input, or both at time At (seconds).
type Event struct {
	At    float64  `yaml:"at"`
	Press *bool    `yaml:"press,omitempty"`
	CV    *float64 `yaml:"cv,omitempty"`
}

// Clock is a free-running pulse train added to the trigger input.
type Clock struct {
	Rate  float64 `yaml:"rate"` // Hz
	Duty  float64 `yaml:"duty,omitempty"`
	Level float64 `yaml:"level,omitempty"` // volts
}

func (c Clock) withDefaults() Clock {
	if c.Duty == 0 {
		c.Duty = 0.5
	}
	if c.Level == 0 {
		c.Level = 10
	}
	return c
}

// Scenario is a complete input sequence.
type Scenario struct {
	Name       string        `yaml:"name,omitempty"`
	SampleRate float64       `yaml:"sample_rate"`
	Duration   float64       `yaml:"duration,omitempty"`
	Noise      float64       `yaml:"noise,omitempty"` // white noise amplitude added to the input, volts
	Seed       int64         `yaml:"seed,omitempty"`
	Clock      *Clock        `yaml:"clock,omitempty"`
	State      *button.State `yaml:"state,omitempty"` // restored before the first frame
	Events     []Event       `yaml:"events"`
}

// Load decodes and validates a YAML scenario. Unknown keys are rejected.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode writes s as YAML.
func (s *Scenario) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode scenario: %w", err)
	}
	return enc.Close()
}

// Validate checks the scenario for values that cannot be rendered.
func (s *Scenario) Validate() error {
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrNoSampleRate, s.SampleRate)
	}
	for i, e := range s.Events {
		if e.At < 0 || math.IsNaN(e.At) {
			return fmt.Errorf("%w: event %d at %v", ErrNegativeTime, i, e.At)
		}
	}
	if math.IsNaN(s.Duration) {
		return fmt.Errorf("scenario: duration is not a number")
	}
	if !(s.Noise >= 0) {
		return fmt.Errorf("scenario: noise must not be negative: %v", s.Noise)
	}
	if s.Clock != nil && !(s.Clock.Rate > 0) {
		return fmt.Errorf("scenario: clock rate must be positive: %v", s.Clock.Rate)
	}
	if len(s.Events) == 0 && s.Duration <= 0 {
		return ErrEmptyScenario
	}
	if frames := s.Length() * s.SampleRate; !(frames <= MaxFrames) {
		return fmt.Errorf("%w: %v frames, limit %d", ErrTooLong, frames, MaxFrames)
	}
	if s.Frames() < 1 {
		return fmt.Errorf("%w: shorter than one frame", ErrEmptyScenario)
	}
	return nil
}

// Length returns the rendered duration in seconds.
func (s *Scenario) Length() float64 {
	if s.Duration > 0 {
		return s.Duration
	}
	last := 0.0
	for _, e := range s.Events {
		last = math.Max(last, e.At)
	}
	return last + tail
}

// Frames returns the number of frames Render produces.
func (s *Scenario) Frames() int {
	return int(math.Round(s.Length() * s.SampleRate))
}

// Render produces one value per frame for the button parameter (0 or 1) and
// the trigger input (volts). Inputs hold their last value between events.
func (s *Scenario) Render() (press, cv []float64, err error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}

	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })

	var pressSteps, cvSteps []signal.Step
	for _, e := range events {
		if e.Press != nil {
			pressSteps = append(pressSteps, signal.Step{At: e.At, Value: core.Level(*e.Press)})
		}
		if e.CV != nil {
			cvSteps = append(cvSteps, signal.Step{At: e.At, Value: *e.CV})
		}
	}

	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(s.SampleRate)},
		signal.WithSeed(s.Seed),
	)
	n := s.Frames()

	if press, err = g.Steps(0, pressSteps, n); err != nil {
		return nil, nil, fmt.Errorf("render press: %w", err)
	}
	if cv, err = g.Steps(0, cvSteps, n); err != nil {
		return nil, nil, fmt.Errorf("render cv: %w", err)
	}
	if s.Clock != nil {
		c := s.Clock.withDefaults()
		clock, err := g.PulseTrain(c.Rate, c.Duty, c.Level, n)
		if err != nil {
			return nil, nil, fmt.Errorf("render clock: %w", err)
		}
		signal.Mix(cv, clock)
	}
	if s.Noise > 0 {
		noise, err := g.WhiteNoise(s.Noise, n)
		if err != nil {
			return nil, nil, fmt.Errorf("render noise: %w", err)
		}
		signal.Mix(cv, noise)
	}

	return press, cv, nil
}
