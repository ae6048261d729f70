package trigger

// PulseGenerator emits a fixed-length logic pulse after being triggered,
// independent of how long the triggering condition lasts.
type PulseGenerator struct {
	remaining float64
}

// Trigger arms a pulse of the given duration in seconds. A pulse already in
// flight is extended when d exceeds its remaining time and is never shortened.
func (p *PulseGenerator) Trigger(d float64) {
	if d > p.remaining {
		p.remaining = d
	}
}

// Process advances the generator by dt seconds and reports whether the pulse
// was active during this step.
func (p *PulseGenerator) Process(dt float64) bool {
	if p.remaining <= 0 {
		return false
	}

	p.remaining -= dt
	if p.remaining < 0 {
		p.remaining = 0
	}

	return true
}

// Remaining returns the pulse time left in seconds.
func (p *PulseGenerator) Remaining() float64 {
	return p.remaining
}

// Reset cancels any pulse in flight.
func (p *PulseGenerator) Reset() {
	p.remaining = 0
}
