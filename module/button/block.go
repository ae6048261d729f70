package button

import (
	"errors"

	"github.com/cwbudde/algo-button/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ErrLengthMismatch is returned by ProcessBlock when input and output
// buffers differ in length.
var ErrLengthMismatch = errors.New("button: buffer length mismatch")

// Block holds one output voltage buffer per output.
type Block struct {
	Trigger []float64
	Gate    []float64
	Toggle  []float64
	Const   []float64
}

// NewBlock allocates a Block of n frames.
func NewBlock(n int) Block {
	return Block{
		Trigger: make([]float64, n),
		Gate:    make([]float64, n),
		Toggle:  make([]float64, n),
		Const:   make([]float64, n),
	}
}

// Len returns the number of frames in the block, or -1 if the buffers
// differ in length.
func (blk Block) Len() int {
	n := len(blk.Trigger)
	if len(blk.Gate) != n || len(blk.Toggle) != n || len(blk.Const) != n {
		return -1
	}
	return n
}

// ProcessBlock runs len(cv) frames at the configured sample rate and writes
// the output voltages to out. pressed may be nil when the button is not
// touched; otherwise it must match cv in length, as must every buffer of
// out. After the call, Lights reports the targets of the last frame.
func (b *Button) ProcessBlock(out Block, pressed []bool, cv []float64) error {
	n := len(cv)
	if out.Len() != n || (pressed != nil && len(pressed) != n) {
		return ErrLengthMismatch
	}
	if n == 0 {
		return nil
	}

	dt := b.cfg.SampleTime()
	for i := range cv {
		pulse, gate := b.step(dt, pressed != nil && pressed[i], cv[i])

		out.Trigger[i] = core.Level(pulse)
		out.Gate[i] = core.Level(gate)
		out.Toggle[i] = core.Level(b.toggle)
		out.Const[i] = b.cycle.Voltage()
	}

	vecmath.ScaleBlockInPlace(out.Trigger, HighVoltage)
	vecmath.ScaleBlockInPlace(out.Gate, HighVoltage)
	vecmath.ScaleBlockInPlace(out.Toggle, HighVoltage)

	return nil
}
