package sampling

import (
	"math"
	"testing"

	remath "render-engine/math"
)

func TestRNGIndependentStreamsDontTriviallyRepeat(t *testing.T) {
	a := NewRNG(42, 0)
	b := NewRNG(43, 0)
	va := a.Float32()
	vb := b.Float32()
	if va == vb {
		t.Fatalf("two different pixel seeds produced the same first draw")
	}

	r := NewRNG(7, 0)
	first := r.Float32()
	second := r.Float32()
	if first == second {
		t.Fatalf("successive draws within one stream repeated")
	}
}

func TestRNGStaysInUnitInterval(t *testing.T) {
	r := NewRNG(1234, 5)
	for i := 0; i < 10000; i++ {
		v := r.Float32()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %f", i, v)
		}
	}
}

func TestCosineHemisphereStaysAboveSurface(t *testing.T) {
	n := remath.Vec3{Y: 1}
	r := NewRNG(1, 0)
	for i := 0; i < 256; i++ {
		u1, u2 := r.Float32Pair()
		dir, pdf := CosineHemisphere(n, u1, u2)
		if dir.Dot(n) < -1e-5 {
			t.Fatalf("sampled direction %v below the surface", dir)
		}
		if pdf < 0 {
			t.Fatalf("negative pdf %f", pdf)
		}
	}
}

func TestBuildONBIsOrthonormal(t *testing.T) {
	ns := []remath.Vec3{
		{X: 0, Y: 1, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 0, Z: 1},
		{X: 0.5774, Y: 0.5774, Z: 0.5774},
	}
	for _, n := range ns {
		n = n.Normalize()
		tangent, bitangent := BuildONB(n)
		if math.Abs(float64(tangent.Dot(n))) > 1e-4 {
			t.Fatalf("tangent not perpendicular to normal %v", n)
		}
		if math.Abs(float64(bitangent.Dot(n))) > 1e-4 {
			t.Fatalf("bitangent not perpendicular to normal %v", n)
		}
		if math.Abs(float64(tangent.Dot(bitangent))) > 1e-4 {
			t.Fatalf("tangent/bitangent not perpendicular for normal %v", n)
		}
	}
}

func TestUniformTrianglePointStaysInsideTriangle(t *testing.T) {
	v0 := remath.Vec3{X: 0, Y: 0, Z: 0}
	v1 := remath.Vec3{X: 1, Y: 0, Z: 0}
	v2 := remath.Vec3{X: 0, Y: 1, Z: 0}
	r := NewRNG(9, 0)
	for i := 0; i < 128; i++ {
		u1, u2 := r.Float32Pair()
		p := UniformTrianglePoint(v0, v1, v2, u1, u2)
		if p.X < -1e-4 || p.Y < -1e-4 || p.X+p.Y > 1+1e-4 {
			t.Fatalf("sampled point %v falls outside the triangle", p)
		}
	}
}

func TestEnvMapUniformSolidColorSamplePdfMatchesPdf(t *testing.T) {
	const w, h = 16, 8
	pixels := make([]remath.Vec3, w*h)
	for i := range pixels {
		pixels[i] = remath.Vec3{X: 1, Y: 1, Z: 1}
	}
	env := BuildEnvMapCDF(w, h, pixels)

	r := NewRNG(3, 1)
	for i := 0; i < 64; i++ {
		u1, u2 := r.Float32Pair()
		dir, pdf := env.Sample(u1, u2)
		fromPdf := env.Pdf(dir)
		if math.Abs(float64(pdf-fromPdf)) > 1e-3 {
			t.Fatalf("Sample pdf %f disagrees with Pdf(dir) %f", pdf, fromPdf)
		}
	}
}

func TestSunConeSolidAngleMatchesFormula(t *testing.T) {
	dir := remath.Vec3{Y: 1}
	angularRadius := float32(0.03)
	cosAR := float32(math.Cos(float64(angularRadius)))
	_, solidAngle := SunCone(dir, cosAR, 0.5, 0.5)
	expected := 2 * math.Pi * (1 - float64(cosAR))
	if math.Abs(float64(solidAngle)-expected) > 1e-5 {
		t.Fatalf("solid angle %f != expected %f", solidAngle, expected)
	}
}
