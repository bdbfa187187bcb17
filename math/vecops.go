package math

import "math"

// Reflect reflects v about the normal n (both expected normalized for a
// physically meaningful result, though the formula itself doesn't require it).
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Refract bends the incident direction v through a surface with normal n
// (pointing against v, i.e. on the incident side) and relative index of
// refraction eta = ior_from/ior_to. ok is false on total internal reflection.
func (v Vec3) Refract(n Vec3, eta float32) (refracted Vec3, ok bool) {
	cosI := -v.Dot(n)
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T > 1 {
		return Vec3{}, false
	}
	cosT := float32(math.Sqrt(float64(1 - sin2T)))
	return v.Mul(eta).Add(n.Mul(eta*cosI - cosT)), true
}

// MinVec3 returns the component-wise minimum of a and b.
func MinVec3(a, b Vec3) Vec3 {
	return Vec3{X: minf(a.X, b.X), Y: minf(a.Y, b.Y), Z: minf(a.Z, b.Z)}
}

// MaxVec3 returns the component-wise maximum of a and b.
func MaxVec3(a, b Vec3) Vec3 {
	return Vec3{X: maxf(a.X, b.X), Y: maxf(a.Y, b.Y), Z: maxf(a.Z, b.Z)}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// MaxComponent returns the largest of the three channels (no luminance
// weighting), as used for a Russian-roulette continuation probability.
func (v Vec3) MaxComponent() float32 {
	return maxf(v.X, maxf(v.Y, v.Z))
}

// Abs returns the component-wise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{X: absf(v.X), Y: absf(v.Y), Z: absf(v.Z)}
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
