package trigger

const (
	// LowThreshold is the level at or below which an armed trigger re-arms.
	LowThreshold = 0.0
	// HighThreshold is the level at or above which a rising edge fires.
	HighThreshold = 1.0
)

// SchmittTrigger detects rising edges on a normalized level with hysteresis.
//
// A rising edge is reported once when the level reaches HighThreshold. No
// further edge is reported until the level has dropped to LowThreshold or
// below, so chatter between the thresholds is ignored.
type SchmittTrigger struct {
	armed bool
}

// Process feeds one level sample and reports whether a rising edge occurred.
func (s *SchmittTrigger) Process(level float64) bool {
	if !s.armed {
		if level >= HighThreshold {
			s.armed = true
			return true
		}
		return false
	}

	if level <= LowThreshold {
		s.armed = false
	}

	return false
}

// High reports whether the trigger is latched high.
func (s *SchmittTrigger) High() bool {
	return s.armed
}

// Reset releases the latch.
func (s *SchmittTrigger) Reset() {
	s.armed = false
}
