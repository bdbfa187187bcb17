package sampling

import (
	"math"

	remath "render-engine/math"
)

// UniformTrianglePoint draws a uniform point on triangle (v0,v1,v2) using
// the sqrt-based barycentric mapping: s = sqrt(u1); point = (1-s)v0 +
// s(1-u2)v1 + s*u2*v2.
func UniformTrianglePoint(v0, v1, v2 remath.Vec3, u1, u2 float32) remath.Vec3 {
	s := float32(math.Sqrt(float64(u1)))
	return v0.Mul(1 - s).Add(v1.Mul(s * (1 - u2))).Add(v2.Mul(s * u2))
}

// SunCone draws a direction uniformly inside a cone of half-angle
// angularRadius around dir: cosTheta = 1 - u1*(1-cos(angularRadius)),
// uniform phi. Returns the sampled direction and the cone's solid angle
// 2*pi*(1-cos(angularRadius)).
func SunCone(dir remath.Vec3, cosAngularRadius float32, u1, u2 float32) (sample remath.Vec3, solidAngle float32) {
	cosTheta := 1 - u1*(1-cosAngularRadius)
	sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))
	phi := 2 * piF32 * u2

	localX := sinTheta * cos32(phi)
	localY := sinTheta * sin32(phi)

	t, b := BuildONB(dir)
	sample = t.Mul(localX).Add(b.Mul(localY)).Add(dir.Mul(cosTheta)).Normalize()
	solidAngle = 2 * piF32 * (1 - cosAngularRadius)
	return sample, solidAngle
}
