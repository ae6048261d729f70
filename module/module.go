// Package module defines the narrow boundary between a modular-synthesis host
// and the modules it runs.
//
// A host constructs modules through a [Model], allocates their [Ports] from
// the reported [Layout], and calls [Module.Process] once per frame from its
// audio thread. Everything a module persists travels through
// MarshalState/UnmarshalState. There is no registry: hosts own the models and
// instances they create.
package module

// ProcessArgs carries per-frame timing information from the host.
type ProcessArgs struct {
	SampleRate float64 // frames per second
	SampleTime float64 // seconds per frame, 1/SampleRate
	Frame      int64   // index of the frame being processed
}

// Layout is the number of ports of each kind a module exposes.
type Layout struct {
	NumParams  int
	NumInputs  int
	NumOutputs int
	NumLights  int
}

// Ports holds the values exchanged with a module every frame. Params and
// Inputs are written by the host, Outputs and Lights by the module.
type Ports struct {
	Params  []float64
	Inputs  []float64
	Outputs []float64
	Lights  []float64
}

// NewPorts allocates zeroed ports for layout.
func NewPorts(layout Layout) Ports {
	return Ports{
		Params:  make([]float64, layout.NumParams),
		Inputs:  make([]float64, layout.NumInputs),
		Outputs: make([]float64, layout.NumOutputs),
		Lights:  make([]float64, layout.NumLights),
	}
}

// Fits reports whether p has room for every port in layout.
func (p Ports) Fits(layout Layout) bool {
	return len(p.Params) >= layout.NumParams &&
		len(p.Inputs) >= layout.NumInputs &&
		len(p.Outputs) >= layout.NumOutputs &&
		len(p.Lights) >= layout.NumLights
}

// Module is a single module instance as seen by the host.
//
// Process must not block or allocate. Implementations are not required to be
// safe for concurrent use; the host serializes all calls to one instance.
type Module interface {
	Layout() Layout
	Process(args ProcessArgs, ports Ports)
	Reset()
	MarshalState() ([]byte, error)
	// UnmarshalState restores persisted state. Malformed data is ignored
	// field by field and never reported.
	UnmarshalState(data []byte)
}

// Model describes a module type and constructs its instances.
type Model struct {
	Brand string
	Slug  string
	Name  string
	Tags  []string
	New   func() Module
}
