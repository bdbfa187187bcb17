package pathtracer

import (
	"math"

	remath "render-engine/math"
)

const piF32 = float32(math.Pi)

func cos32(f float32) float32 { return float32(math.Cos(float64(f))) }
func sin32(f float32) float32 { return float32(math.Sin(float64(f))) }
func sqrt32(f float32) float32 {
	if f <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(f)))
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func vec3Finite(v remath.Vec3) bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

// maxComponent is the plain (unweighted) channel max used by Russian
// roulette's continuation probability (spec §4.4 step 1).
func maxComponent(v remath.Vec3) float32 {
	return maxf(v.X, maxf(v.Y, v.Z))
}
