package core

// Rescale maps x linearly from [xMin, xMax] onto [yMin, yMax].
//
// The result is not clamped; callers comparing against the target range
// bounds get saturation for free. A degenerate input range returns yMin.
func Rescale(x, xMin, xMax, yMin, yMax float64) float64 {
	span := xMax - xMin
	if span == 0 {
		return yMin
	}

	return yMin + (x-xMin)/span*(yMax-yMin)
}

// Level converts a logic state to a normalized level (1 or 0).
func Level(on bool) float64 {
	if on {
		return 1
	}

	return 0
}
