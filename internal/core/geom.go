package core

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Normalize divides val by norm. A non-positive norm returns val unchanged.
func Normalize(val, norm float64) float64 {
	if norm <= 0 {
		return val
	}
	return val / norm
}
