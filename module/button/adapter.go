package button

import (
	"github.com/cwbudde/algo-button/dsp/core"
	"github.com/cwbudde/algo-button/module"
)

// Model describes the Button module to a host.
var Model = module.Model{
	Brand: "Little Utils",
	Slug:  "Button",
	Name:  "Button",
	Tags:  []string{"Utility"},
	New:   func() module.Module { return NewAdapter() },
}

var layout = module.Layout{
	NumParams:  int(NumParams),
	NumInputs:  int(NumInputs),
	NumOutputs: int(NumOutputs),
	NumLights:  int(NumLights),
}

// Adapter exposes a Button through the port-indexed host interface.
//
// The button parameter counts as pressed above 0.5.
type Adapter struct {
	button *Button
}

var _ module.Module = (*Adapter)(nil)

// NewAdapter wraps a new Button.
func NewAdapter(opts ...core.ProcessorOption) *Adapter {
	return &Adapter{button: New(opts...)}
}

// Button returns the wrapped module.
func (a *Adapter) Button() *Button {
	return a.button
}

// Layout implements module.Module.
func (a *Adapter) Layout() module.Layout {
	return layout
}

// Process implements module.Module.
func (a *Adapter) Process(args module.ProcessArgs, ports module.Ports) {
	if args.SampleRate > 0 && args.SampleRate != a.button.cfg.SampleRate {
		a.button.SetSampleRate(args.SampleRate)
	}

	f := a.button.Process(
		args.SampleTime,
		ports.Params[ButtonParam] > 0.5,
		ports.Inputs[TriggerInput],
	)

	outputs := f.Outputs()
	copy(ports.Outputs, outputs[:])
	copy(ports.Lights, f.Lights[:])
}

// Reset implements module.Module.
func (a *Adapter) Reset() {
	a.button.Reset()
}

// MarshalState implements module.Module.
func (a *Adapter) MarshalState() ([]byte, error) {
	return a.button.MarshalJSON()
}

// UnmarshalState implements module.Module.
func (a *Adapter) UnmarshalState(data []byte) {
	_ = a.button.UnmarshalJSON(data)
}
