// Package host drives modules offline the way a real-time host would: one
// Process call per frame, ports owned by the host, state persisted through
// the module's own encoding.
package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-button/dsp/core"
	"github.com/cwbudde/algo-button/module"
)

// Errors returned by Runner.Drive.
var (
	ErrStreamLength = errors.New("host: stream length mismatch")
	ErrUnknownPort  = errors.New("host: stream for unknown port")
)

// Streams holds one value per frame for each driven parameter and input,
// indexed by port. A nil or omitted stream holds its port at 0 for the whole
// Drive call.
type Streams struct {
	Params [][]float64
	Inputs [][]float64
}

// Len returns the common length of the non-nil streams, or an error if they
// disagree.
func (s Streams) Len() (int, error) {
	n := -1
	for _, group := range [][][]float64{s.Params, s.Inputs} {
		for _, stream := range group {
			if stream == nil {
				continue
			}
			if n >= 0 && len(stream) != n {
				return 0, fmt.Errorf("%w: %d vs %d frames", ErrStreamLength, len(stream), n)
			}
			n = len(stream)
		}
	}
	if n < 0 {
		return 0, nil
	}
	return n, nil
}

// Trace records every output and light of a module, one slice per port.
type Trace struct {
	SampleRate float64
	Outputs    [][]float64
	Lights     [][]float64
}

func newTrace(layout module.Layout, sampleRate float64, frames int) Trace {
	tr := Trace{
		SampleRate: sampleRate,
		Outputs:    make([][]float64, layout.NumOutputs),
		Lights:     make([][]float64, layout.NumLights),
	}
	for i := range tr.Outputs {
		tr.Outputs[i] = make([]float64, frames)
	}
	for i := range tr.Lights {
		tr.Lights[i] = make([]float64, frames)
	}
	return tr
}

// Len returns the number of recorded frames.
func (tr Trace) Len() int {
	if len(tr.Outputs) == 0 {
		return 0
	}
	return len(tr.Outputs[0])
}

// Transition is a change of an output value.
type Transition struct {
	Frame int
	Value float64
}

// Transitions lists the frames at which output changes value. The first
// frame is always included.
func (tr Trace) Transitions(output int) []Transition {
	if output < 0 || output >= len(tr.Outputs) {
		return nil
	}
	var out []Transition
	for i, v := range tr.Outputs[output] {
		if i == 0 || v != tr.Outputs[output][i-1] {
			out = append(out, Transition{Frame: i, Value: v})
		}
	}
	return out
}

// Runner owns one module instance and its ports.
type Runner struct {
	mod    module.Module
	layout module.Layout
	ports  module.Ports
	cfg    core.ProcessorConfig
	frame  int64
}

// NewRunner creates a runner for m. The sample rate sets the frame duration
// passed to the module; the block size sets how often cancellation is
// checked.
func NewRunner(m module.Module, opts ...core.ProcessorOption) *Runner {
	layout := m.Layout()
	return &Runner{
		mod:    m,
		layout: layout,
		ports:  module.NewPorts(layout),
		cfg:    core.ApplyProcessorOptions(opts...),
	}
}

// Module returns the driven module.
func (r *Runner) Module() module.Module {
	return r.mod
}

// Frame returns the number of frames processed so far.
func (r *Runner) Frame() int64 {
	return r.frame
}

// Reset resets the module and clears all ports.
func (r *Runner) Reset() {
	r.mod.Reset()
	r.ports = module.NewPorts(r.layout)
	r.frame = 0
}

// Drive processes one frame per stream value and records the outputs.
// The context is checked once per block; on cancellation the frames
// processed so far are returned with the context error.
func (r *Runner) Drive(ctx context.Context, s Streams) (Trace, error) {
	if len(s.Params) > r.layout.NumParams || len(s.Inputs) > r.layout.NumInputs {
		return Trace{}, fmt.Errorf("%w: %d params, %d inputs for layout %+v",
			ErrUnknownPort, len(s.Params), len(s.Inputs), r.layout)
	}
	frames, err := s.Len()
	if err != nil {
		return Trace{}, err
	}

	core.Fill(r.ports.Params, 0)
	core.Fill(r.ports.Inputs, 0)

	tr := newTrace(r.layout, r.cfg.SampleRate, frames)
	args := module.ProcessArgs{
		SampleRate: r.cfg.SampleRate,
		SampleTime: r.cfg.SampleTime(),
	}

	for i := 0; i < frames; i++ {
		if i%r.cfg.BlockSize == 0 {
			if err := ctx.Err(); err != nil {
				return tr.truncate(i), err
			}
		}

		load(r.ports.Params, s.Params, i)
		load(r.ports.Inputs, s.Inputs, i)

		args.Frame = r.frame
		r.mod.Process(args, r.ports)
		r.frame++

		for o, v := range r.ports.Outputs {
			tr.Outputs[o][i] = v
		}
		for l, v := range r.ports.Lights {
			tr.Lights[l][i] = v
		}
	}

	return tr, nil
}

func load(ports []float64, streams [][]float64, frame int) {
	for p, stream := range streams {
		if stream != nil {
			ports[p] = stream[frame]
		}
	}
}

func (tr Trace) truncate(n int) Trace {
	for i := range tr.Outputs {
		tr.Outputs[i] = tr.Outputs[i][:n]
	}
	for i := range tr.Lights {
		tr.Lights[i] = tr.Lights[i][:n]
	}
	return tr
}
