package player

import "math"

// levelToVolume converts a 0.0-1.0 level to beep's base-2 Volume value.
// 1.0 maps to 0 (unchanged), 0.5 to -1, 0.25 to -2 and 0 to -10, which is
// effectively silent.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
