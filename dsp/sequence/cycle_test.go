package sequence

import "testing"

func TestConstCycleVoltages(t *testing.T) {
	var c ConstCycle
	if got := c.Voltage(); got != 1 {
		t.Fatalf("initial Voltage() = %v, want 1", got)
	}

	want := []float64{5, 10, -1, -5, -10, 1}
	for i, w := range want {
		c.Advance()
		if got := c.Voltage(); got != w {
			t.Fatalf("advance %d: Voltage() = %v, want %v", i+1, got, w)
		}
	}
	if c.Index() != 0 {
		t.Fatalf("Index() = %d after %d advances, want 0", c.Index(), Steps)
	}
}

func TestConstCycleMagnitudeAndSign(t *testing.T) {
	tests := []struct {
		index     int
		magnitude float64
		negative  bool
		light     int
	}{
		{0, 1, false, 0},
		{1, 5, false, 2},
		{2, 10, false, 4},
		{3, 1, true, 1},
		{4, 5, true, 3},
		{5, 10, true, 5},
	}

	for _, tt := range tests {
		var c ConstCycle
		if !c.SetIndex(tt.index) {
			t.Fatalf("SetIndex(%d) rejected", tt.index)
		}
		if got := c.Magnitude(); got != tt.magnitude {
			t.Fatalf("index %d: Magnitude() = %v, want %v", tt.index, got, tt.magnitude)
		}
		if got := c.Negative(); got != tt.negative {
			t.Fatalf("index %d: Negative() = %v, want %v", tt.index, got, tt.negative)
		}
		if got := c.Light(); got != tt.light {
			t.Fatalf("index %d: Light() = %d, want %d", tt.index, got, tt.light)
		}
	}
}

func TestConstCycleSetIndexRejectsOutOfRange(t *testing.T) {
	var c ConstCycle
	c.Advance()

	for _, i := range []int{-1, Steps, 100} {
		if c.SetIndex(i) {
			t.Fatalf("SetIndex(%d) accepted", i)
		}
	}
	if c.Index() != 1 {
		t.Fatalf("Index() = %d, want 1", c.Index())
	}
}

func TestConstCycleLightTargets(t *testing.T) {
	var c ConstCycle
	lights := make([]float64, NumLights)

	for step := 0; step < Steps; step++ {
		c.LightTargets(lights)

		lit := 0
		for i, v := range lights {
			switch v {
			case 1:
				lit++
				if i != c.Light() {
					t.Fatalf("step %d: light %d lit, want %d", step, i, c.Light())
				}
			case 0:
			default:
				t.Fatalf("step %d: light %d = %v, want 0 or 1", step, i, v)
			}
		}
		if lit != 1 {
			t.Fatalf("step %d: %d lights lit, want 1", step, lit)
		}

		c.Advance()
	}
}

func TestConstCycleReset(t *testing.T) {
	var c ConstCycle
	c.Advance()
	c.Advance()
	c.Reset()

	if c.Index() != 0 || c.Voltage() != 1 {
		t.Fatalf("after Reset: index=%d voltage=%v, want 0 and 1", c.Index(), c.Voltage())
	}
}
