package quantize

import "math"

// NormalizeInPlace L2-normalizes v in place. The zero vector is left
// unchanged (no division by zero), per spec §4.2.
func NormalizeInPlace(v []float32) {
	var sumSq float32
	for _, x := range v {
		sumSq += x * x
	}
	if sumSq <= 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sumSq)))
	for i := range v {
		v[i] *= inv
	}
}

// Normalized returns an L2-normalized copy of v, leaving v untouched.
func Normalized(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)
	NormalizeInPlace(out)
	return out
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float32 {
	var sumSq float32
	for _, x := range v {
		sumSq += x * x
	}
	return float32(math.Sqrt(float64(sumSq)))
}
