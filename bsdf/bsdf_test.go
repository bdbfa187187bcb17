package bsdf

import (
	"testing"

	remath "render-engine/math"
	"render-engine/sampling"
)

func TestCookTorrancePdfNonNegative(t *testing.T) {
	c := CookTorrance{BaseColor: remath.Vec3{X: 0.8, Y: 0.2, Z: 0.2}, Roughness: 0.4, Metallic: 0.0, IOR: 1.5}
	n := remath.Vec3{Y: 1}
	v := remath.Vec3{X: 0.3, Y: 0.8, Z: 0.1}.Normalize()

	r := sampling.NewRNG(11, 0)
	for i := 0; i < 512; i++ {
		u1, u2, uLobe := r.Float32(), r.Float32(), r.Float32()
		l, pdf := c.Sample(n, n, v, u1, u2, uLobe)
		if pdf < 0 {
			t.Fatalf("negative pdf %f", pdf)
		}
		ev := c.Evaluate(n, v, l)
		if pdf == 0 && (ev.X != 0 || ev.Y != 0 || ev.Z != 0) {
			t.Fatalf("zero pdf but nonzero evaluate for l=%v: %v", l, ev)
		}
	}
}

func TestCookTorranceGrazingAngleZeroCosineZeroContribution(t *testing.T) {
	c := CookTorrance{BaseColor: remath.Vec3{X: 1, Y: 1, Z: 1}, Roughness: 0.5, Metallic: 0, IOR: 1.5}
	n := remath.Vec3{Y: 1}
	v := remath.Vec3{Y: 1}
	l := remath.Vec3{X: 1} // N.L == 0 exactly
	ev := c.Evaluate(n, v, l)
	if ev.X < 0 || ev.Y < 0 || ev.Z < 0 {
		t.Fatalf("negative radiance at grazing angle: %v", ev)
	}
	// N.L == 0 drives G1(NdotL) to zero, collapsing spec to zero. The diffuse
	// term carries no NdotL factor and stays non-zero here; the contribution
	// vanishes through the cosine weighting the integrator applies.
	if contrib := ev.Mul(n.Dot(l)); contrib != (remath.Vec3{}) {
		t.Fatalf("cosine-weighted contribution at N.L == 0 should be zero, got %v", contrib)
	}
}

func TestMirrorSampleIsReflection(t *testing.T) {
	m := Mirror{Tint: remath.Vec3{X: 1, Y: 1, Z: 1}}
	n := remath.Vec3{Y: 1}
	wo := remath.Vec3{X: 0.6, Y: 0.8, Z: 0}.Normalize()
	wi, pdf, delta, _ := m.Sample(n, wo)
	if !delta || pdf != 1 {
		t.Fatalf("expected delta pdf sentinel of 1, got delta=%v pdf=%f", delta, pdf)
	}
	// Reflection about the normal preserves the angle to the normal.
	if diff := wo.Dot(n) - wi.Dot(n); diff > 1e-4 || diff < -1e-4 {
		t.Fatalf("reflected direction does not preserve angle to normal: wo.n=%f wi.n=%f", wo.Dot(n), wi.Dot(n))
	}
}

func TestDielectricTotalInternalReflectionFallsBackToReflect(t *testing.T) {
	d := Dielectric{IOR: 1.5, Tint: remath.Vec3{X: 1, Y: 1, Z: 1}}
	n := remath.Vec3{Y: 1}
	// A ray grazing at a steep angle from inside a denser medium (frontFace
	// false => eta = 1.5/1 > 1) is the regime where TIR can occur.
	rayDir := remath.Vec3{X: 0.99, Y: -0.14}.Normalize()
	wi, pdf, delta, _ := d.Sample(rayDir, n, false, 0.5)
	if pdf != 1 || !delta {
		t.Fatalf("dielectric sample must always be a delta lobe with pdf sentinel 1")
	}
	want := rayDir.Reflect(n)
	if diff := wi.Sub(want); diff.Dot(diff) > 1e-8 {
		t.Fatalf("total internal reflection should return the reflected direction %v, got %v", want, wi)
	}
}
