// Package sequence implements small step sequencers that advance on trigger
// edges rather than on a clock.
package sequence

// Steps is the length of the constant-voltage cycle.
const Steps = 6

// NumLights is the number of indicators reported by [ConstCycle.LightTargets]:
// one plus/minus pair per magnitude.
const NumLights = 6

var magnitudes = [3]float64{1, 5, 10}

// ConstCycle steps through the constant voltages +1, +5, +10, -1, -5, -10
// and then wraps around. The zero value sits on +1.
type ConstCycle struct {
	index int
}

// Advance moves to the next step.
func (c *ConstCycle) Advance() {
	c.index = (c.index + 1) % Steps
}

// Index returns the current step in [0, Steps).
func (c *ConstCycle) Index() int {
	return c.index
}

// SetIndex jumps to step i. Indices outside [0, Steps) are rejected and leave
// the cycle unchanged.
func (c *ConstCycle) SetIndex(i int) bool {
	if i < 0 || i >= Steps {
		return false
	}
	c.index = i
	return true
}

// Reset returns to the first step.
func (c *ConstCycle) Reset() {
	c.index = 0
}

// Magnitude returns the absolute output voltage of the current step.
func (c *ConstCycle) Magnitude() float64 {
	return magnitudes[c.index%len(magnitudes)]
}

// Negative reports whether the current step is in the negative half.
func (c *ConstCycle) Negative() bool {
	return c.index >= len(magnitudes)
}

// Voltage returns the signed output voltage of the current step.
func (c *ConstCycle) Voltage() float64 {
	if c.Negative() {
		return -c.Magnitude()
	}
	return c.Magnitude()
}

// Light returns the indicator that represents the current step. Indicators
// are ordered 1+, 1-, 5+, 5-, 10+, 10-.
func (c *ConstCycle) Light() int {
	light := 2 * (c.index % len(magnitudes))
	if c.Negative() {
		light++
	}
	return light
}

// LightTargets writes 1 for the current indicator and 0 for the other five.
// dst must hold at least NumLights values.
func (c *ConstCycle) LightTargets(dst []float64) {
	lit := c.Light()
	for i := range dst[:NumLights] {
		if i == lit {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
}
