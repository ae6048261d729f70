package button

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-button/dsp/core"
	"github.com/cwbudde/algo-button/internal/testutil"
)

func TestProcessBlockMatchesProcess(t *testing.T) {
	const n = 512
	cv := testutil.GateTrain(n, 96, 40, 5)
	pressed := make([]bool, n)
	for i := 300; i < 340; i++ {
		pressed[i] = true
	}

	block := New(core.WithSampleRate(48000))
	out := NewBlock(n)
	if err := block.ProcessBlock(out, pressed, cv); err != nil {
		t.Fatalf("ProcessBlock() error = %v", err)
	}

	frame := New()
	want := NewBlock(n)
	for i := range cv {
		f := frame.Process(testSampleTime, pressed[i], cv[i])
		want.Trigger[i] = f.Trigger
		want.Gate[i] = f.Gate
		want.Toggle[i] = f.Toggle
		want.Const[i] = f.Const
	}

	testutil.RequireSliceNearlyEqual(t, out.Trigger, want.Trigger, 0)
	testutil.RequireSliceNearlyEqual(t, out.Gate, want.Gate, 0)
	testutil.RequireSliceNearlyEqual(t, out.Toggle, want.Toggle, 0)
	testutil.RequireSliceNearlyEqual(t, out.Const, want.Const, 0)

	if block.Lights() != frame.Lights() {
		t.Fatalf("lights = %v, want %v", block.Lights(), frame.Lights())
	}
}

func TestProcessBlockNilPressed(t *testing.T) {
	b := New(core.WithSampleRate(48000))
	cv := testutil.DC(5, 8)
	out := NewBlock(len(cv))

	if err := b.ProcessBlock(out, nil, cv); err != nil {
		t.Fatalf("ProcessBlock() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Gate, testutil.DC(HighVoltage, 8), 0)
	testutil.RequireSliceNearlyEqual(t, out.Const, testutil.DC(5, 8), 0)
}

func TestProcessBlockVaryingSizes(t *testing.T) {
	b := New(core.WithSampleRate(48000))

	for _, n := range []int{16, 4, 64, 64} {
		cv := testutil.DC(0, n)
		pressed := make([]bool, n)
		pressed[0] = true
		out := NewBlock(n)

		if err := b.ProcessBlock(out, pressed, cv); err != nil {
			t.Fatalf("n=%d: ProcessBlock() error = %v", n, err)
		}
		if out.Gate[0] != HighVoltage {
			t.Fatalf("n=%d: Gate[0] = %v, want %v", n, out.Gate[0], HighVoltage)
		}
	}
}

func TestProcessBlockLengthMismatch(t *testing.T) {
	b := New()

	tests := []struct {
		name    string
		out     Block
		pressed []bool
		cv      []float64
	}{
		{name: "short output", out: NewBlock(3), cv: make([]float64, 4)},
		{name: "ragged output", out: Block{Trigger: make([]float64, 4), Gate: make([]float64, 4), Toggle: make([]float64, 4), Const: make([]float64, 3)}, cv: make([]float64, 4)},
		{name: "short pressed", out: NewBlock(4), pressed: make([]bool, 2), cv: make([]float64, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.ProcessBlock(tt.out, tt.pressed, tt.cv)
			if !errors.Is(err, ErrLengthMismatch) {
				t.Fatalf("ProcessBlock() error = %v, want %v", err, ErrLengthMismatch)
			}
		})
	}
}

func TestProcessBlockEmpty(t *testing.T) {
	b := New()
	if err := b.ProcessBlock(Block{}, nil, nil); err != nil {
		t.Fatalf("ProcessBlock() error = %v", err)
	}
}
