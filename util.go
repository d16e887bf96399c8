package hdrio

import "math"

func log2f(v float32) float32 { return float32(math.Log2(float64(v))) }
func exp2f(v float32) float32 { return float32(math.Exp2(float64(v))) }
func powf(v, e float32) float32 {
	return float32(math.Pow(float64(v), float64(e)))
}
