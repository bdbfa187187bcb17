package sampling

import (
	"math"

	remath "render-engine/math"
)

const piF32 = float32(math.Pi)

// BuildONB constructs an orthonormal basis (tangent, bitangent) around the
// unit normal n, using Duff et al.'s branchless construction.
func BuildONB(n remath.Vec3) (tangent, bitangent remath.Vec3) {
	sign := float32(1)
	if n.Z < 0 {
		sign = -1
	}
	a := -1.0 / (sign + n.Z)
	b := n.X * n.Y * a
	tangent = remath.Vec3{X: 1 + sign*n.X*n.X*a, Y: sign * b, Z: -sign * n.X}
	bitangent = remath.Vec3{X: b, Y: sign + n.Y*n.Y*a, Z: -n.Y}
	return tangent, bitangent
}

// CosineHemisphere draws a cosine-weighted direction around n. PDF = cos(theta)/pi.
func CosineHemisphere(n remath.Vec3, u1, u2 float32) (dir remath.Vec3, pdf float32) {
	phi := 2 * math.Pi * float64(u1)
	cosTheta := float32(math.Sqrt(1 - float64(u2)))
	sinTheta := float32(math.Sqrt(float64(u2)))

	localX := sinTheta * float32(math.Cos(phi))
	localY := sinTheta * float32(math.Sin(phi))

	t, b := BuildONB(n)
	dir = t.Mul(localX).Add(b.Mul(localY)).Add(n.Mul(cosTheta)).Normalize()
	pdf = cosTheta / piF32
	return dir, pdf
}

// ConcentricDisk is Shirley's low-distortion square-to-disk mapping, used
// for thin-lens aperture sampling: returns (x, y) on the unit disk.
func ConcentricDisk(u1, u2 float32) (x, y float32) {
	a := 2*u1 - 1
	b := 2*u2 - 1
	if a == 0 && b == 0 {
		return 0, 0
	}
	var r, theta float32
	if absf(a) > absf(b) {
		r = a
		theta = (piF32 / 4) * (b / a)
	} else {
		r = b
		theta = (piF32 / 2) - (piF32/4)*(a/b)
	}
	return r * cos32(theta), r * sin32(theta)
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

func cos32(f float32) float32 { return float32(math.Cos(float64(f))) }
func sin32(f float32) float32 { return float32(math.Sin(float64(f))) }
