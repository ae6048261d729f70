// Package button implements a manual push button with an external trigger
// input. On every rising edge it fires a short trigger pulse, flips a toggle,
// and steps a constant-voltage output through +1, +5, +10, -1, -5, -10 V.
// The gate output follows the combined input directly.
//
// A Button is stepped once per frame with [Button.Process] or a block at a
// time with [Button.ProcessBlock]. It is not safe for concurrent use.
package button

import (
	"github.com/cwbudde/algo-button/dsp/core"
	"github.com/cwbudde/algo-button/dsp/sequence"
	"github.com/cwbudde/algo-button/dsp/trigger"
)

const (
	// TriggerDuration is the length of the trigger output pulse in seconds.
	TriggerDuration = 1e-3

	// HighVoltage is the level of an active trigger, gate or toggle output.
	HighVoltage = 10.0

	// The trigger input window: at or below triggerInputLow the input is
	// inactive, at or above triggerInputHigh it is fully active.
	triggerInputLow  = 0.1
	triggerInputHigh = 2.0
)

// Frame is the result of processing one frame.
type Frame struct {
	Trigger float64
	Gate    float64
	Toggle  float64
	Const   float64

	// Lights holds the instantaneous brightness targets (0 or 1), indexed
	// by LightID. Smoothing is left to the display.
	Lights [NumLights]float64
}

// Outputs returns the output voltages indexed by OutputID.
func (f Frame) Outputs() [NumOutputs]float64 {
	return [NumOutputs]float64{
		TriggerOutput: f.Trigger,
		GateOutput:    f.Gate,
		ToggleOutput:  f.Toggle,
		ConstOutput:   f.Const,
	}
}

// Button is the per-instance state of the module.
type Button struct {
	cfg core.ProcessorConfig

	edge   trigger.SchmittTrigger
	pulse  trigger.PulseGenerator
	cycle  sequence.ConstCycle
	toggle bool

	lights [NumLights]float64
}

// New creates a Button in its reset state. The sample rate option only
// affects ProcessBlock; Process takes the frame duration explicitly.
func New(opts ...core.ProcessorOption) *Button {
	b := &Button{cfg: core.ApplyProcessorOptions(opts...)}
	b.Reset()
	return b
}

// Config returns the processing configuration.
func (b *Button) Config() core.ProcessorConfig {
	return b.cfg
}

// SetSampleRate changes the sample rate used by ProcessBlock.
// Non-positive rates are ignored.
func (b *Button) SetSampleRate(sampleRate float64) {
	core.WithSampleRate(sampleRate)(&b.cfg)
}

// Reset clears the toggle, returns the constant output to +1 V, cancels any
// pulse in flight and turns every light off.
func (b *Button) Reset() {
	b.edge.Reset()
	b.pulse.Reset()
	b.cycle.Reset()
	b.toggle = false
	b.lights = [NumLights]float64{}
}

// Process advances the module by one frame of sampleTime seconds.
//
// pressed is the state of the manual button and cv the voltage at the
// trigger input. The input counts as active from 2 V upwards.
func (b *Button) Process(sampleTime float64, pressed bool, cv float64) Frame {
	pulse, gate := b.step(sampleTime, pressed, cv)

	return Frame{
		Trigger: HighVoltage * core.Level(pulse),
		Gate:    HighVoltage * core.Level(gate),
		Toggle:  HighVoltage * core.Level(b.toggle),
		Const:   b.cycle.Voltage(),
		Lights:  b.lights,
	}
}

func (b *Button) step(dt float64, pressed bool, cv float64) (pulse, gate bool) {
	gate = pressed || core.Rescale(cv, triggerInputLow, triggerInputHigh, 0, 1) >= 1

	if b.edge.Process(core.Level(gate)) {
		b.pulse.Trigger(TriggerDuration)
		b.cycle.Advance()
		b.toggle = !b.toggle
	}

	pulse = b.pulse.Process(dt)

	b.lights[TriggerLight] = core.Level(pulse)
	b.lights[GateLight] = core.Level(gate)
	b.lights[ToggleLight] = core.Level(b.toggle)
	b.cycle.LightTargets(b.lights[Const1PlusLight:])

	return pulse, gate
}

// Lights returns the brightness targets of the last processed frame.
func (b *Button) Lights() [NumLights]float64 {
	return b.lights
}

// Toggled reports the state of the toggle output.
func (b *Button) Toggled() bool {
	return b.toggle
}

// ConstVoltage returns the current constant output voltage.
func (b *Button) ConstVoltage() float64 {
	return b.cycle.Voltage()
}

// State returns the persistent part of the module state.
func (b *Button) State() State {
	return State{Toggle: b.toggle, ConstChoice: b.cycle.Index()}
}

// SetState restores persistent state and lights the toggle and const
// indicators for it. An out-of-range ConstChoice is ignored and the current
// selection kept.
func (b *Button) SetState(s State) {
	b.toggle = s.Toggle
	b.cycle.SetIndex(s.ConstChoice)

	b.lights[ToggleLight] = core.Level(b.toggle)
	b.cycle.LightTargets(b.lights[Const1PlusLight:])
}

// MarshalJSON encodes the persistent state.
func (b *Button) MarshalJSON() ([]byte, error) {
	return b.State().MarshalJSON()
}

// UnmarshalJSON restores the persistent state from data. Fields that are
// missing or malformed keep their current value; no error is ever returned.
func (b *Button) UnmarshalJSON(data []byte) error {
	s := b.State()
	_ = s.UnmarshalJSON(data)
	b.SetState(s)
	return nil
}
