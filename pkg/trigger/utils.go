package trigger

// clamp returns the value v constrained to the range [low, high].
// If high < low, the arguments are swapped.
func clamp(v, low, high int) int {
	if high < low {
		low, high = high, low
	}
	return min(high, max(low, v))
}

// wrapIndex moves i by delta within [0, n), wrapping in both directions.
// An index of -1 (nothing highlighted) lands on the first entry moving
// forward and on the last moving backward.
func wrapIndex(i, delta, n int) int {
	if n <= 0 {
		return -1
	}
	if i < 0 {
		if delta > 0 {
			i = -1
		} else {
			i = 0
		}
	}
	return ((i+delta)%n + n) % n
}
