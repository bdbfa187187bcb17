package bsdf

import (
	"math"

	remath "render-engine/math"
	"render-engine/sampling"
)

const piF32 = float32(math.Pi)

// CookTorrance is the microfacet + Lambertian-diffuse-base BRDF: GGX normal
// distribution with Smith geometry and Schlick Fresnel, mixed with a
// diffuse lobe weighted by metallic. roughness/metallic/baseColor are read
// per-call so the caller can vary them per-sample (post texture lookup)
// without allocating a new BSDF value each bounce.
type CookTorrance struct {
	BaseColor remath.Vec3
	Roughness float32
	Metallic  float32
	IOR       float32 // dielectric base IOR used to derive F0 when metallic < 1
}

func (c CookTorrance) alpha2() float32 {
	r := c.Roughness
	if r < 0.01 {
		r = 0.01
	}
	a := r * r
	return a * a
}

// specWeight is the probability of choosing the specular lobe when
// importance-sampling: w_spec = 0.5*(1+metallic).
func (c CookTorrance) specWeight() float32 {
	return 0.5 * (1 + c.Metallic)
}

func (c CookTorrance) f0() remath.Vec3 {
	eta := c.IOR
	if eta == 0 {
		eta = 1.5
	}
	base := (eta - 1) / (eta + 1)
	base *= base
	dielectricF0 := remath.Vec3{X: base, Y: base, Z: base}
	return remath.MaxVec3(remath.Vec3{}, dielectricF0.Mul(1 - c.Metallic).Add(c.BaseColor.Mul(c.Metallic)))
}

func g1(alpha2, x float32) float32 {
	if x <= 0 {
		return 0
	}
	return 2 * x / (x + float32(math.Sqrt(float64(alpha2+(1-alpha2)*x*x))))
}

// Evaluate returns diff+spec for the given shading normal N, view direction
// V (pointing away from the surface) and light direction L (pointing away
// from the surface, towards the light). The NdotV/specular-denominator
// clamp asymmetry (1e-4 vs 1e-8) is intentional — see spec §9's Open
// Question — and must not be unified.
func (c CookTorrance) Evaluate(n, v, l remath.Vec3) remath.Vec3 {
	h := v.Add(l).Normalize()
	alpha2 := c.alpha2()

	ndotH := maxf(n.Dot(h), 0)
	ndotV := maxf(n.Dot(v), 1e-4)
	ndotL := n.Dot(l)
	if ndotL < 0 {
		ndotL = 0
	}
	vdotH := maxf(v.Dot(h), 0)

	denom := ndotH*ndotH*(alpha2-1) + 1
	d := alpha2 / (piF32 * denom * denom)

	g := g1(alpha2, ndotV) * g1(alpha2, ndotL)

	f0 := c.f0()
	oneMinusVdotH := 1 - vdotH
	fresnelScalar := oneMinusVdotH * oneMinusVdotH * oneMinusVdotH * oneMinusVdotH * oneMinusVdotH
	f := f0.Add(remath.Vec3{X: 1, Y: 1, Z: 1}.Sub(f0).Mul(fresnelScalar))

	specDenom := maxf(4*ndotV*ndotL, 1e-8)
	spec := f.Mul(d * g / specDenom)

	diffuseScalar := (1 - c.Metallic) / piF32
	oneMinusF := remath.Vec3{X: 1, Y: 1, Z: 1}.Sub(f)
	diff := oneMinusF.MulVec(c.BaseColor).Mul(diffuseScalar)

	return diff.Add(spec)
}

// Pdf combines the specular-lobe VNDF-derived density and the diffuse
// cosine density per spec §4.3.
func (c CookTorrance) Pdf(n, v, l remath.Vec3) float32 {
	h := v.Add(l).Normalize()
	alpha2 := c.alpha2()
	ndotH := maxf(n.Dot(h), 0)
	ndotV := maxf(n.Dot(v), 1e-4)
	ndotL := n.Dot(l)
	if ndotL < 0 {
		ndotL = 0
	}

	denom := ndotH*ndotH*(alpha2-1) + 1
	d := alpha2 / (piF32 * denom * denom)

	wSpec := c.specWeight()
	specPdf := wSpec * d * g1(alpha2, ndotV) / (4 * ndotV)
	diffPdf := (1 - wSpec) * ndotL / piF32

	return specPdf + diffPdf
}

// Sample draws a microfacet half-vector via the visible-normal distribution
// (Heitz 2018) with probability specWeight, otherwise a cosine-weighted
// direction around the geometric normal ng. Sampling the diffuse lobe
// around ng rather than the shading normal n guarantees the bounce lies
// above the true surface even when n has tipped past the geometric
// horizon (spec §4.3).
func (c CookTorrance) Sample(n, ng, v remath.Vec3, u1, u2, uLobe float32) (wi remath.Vec3, pdf float32) {
	wSpec := c.specWeight()
	if uLobe < wSpec {
		h := sampleVNDF(n, v, c.alpha2(), u1, u2)
		wi = h.Mul(2 * v.Dot(h)).Sub(v)
		if wi.Dot(ng) <= 0 {
			wi, _ = sampling.CosineHemisphere(ng, u1, u2)
		}
	} else {
		wi, _ = sampling.CosineHemisphere(ng, u1, u2)
	}
	return wi, c.Pdf(n, v, wi)
}

// sampleVNDF draws a half-vector via Heitz 2018's visible-normal
// distribution: stretch the view vector into the alpha=1 space, build an
// orthonormal basis there, lift a concentric-disk sample, then unstretch.
func sampleVNDF(n, v remath.Vec3, alpha2 float32, u1, u2 float32) remath.Vec3 {
	alpha := float32(math.Sqrt(float64(alpha2)))
	t, b := sampling.BuildONB(n)

	vLocal := remath.Vec3{X: v.Dot(t), Y: v.Dot(b), Z: v.Dot(n)}

	vh := remath.Vec3{X: alpha * vLocal.X, Y: alpha * vLocal.Y, Z: vLocal.Z}.Normalize()

	lensq := vh.X*vh.X + vh.Y*vh.Y
	var t1 remath.Vec3
	if lensq > 0 {
		invLen := float32(1) / float32(math.Sqrt(float64(lensq)))
		t1 = remath.Vec3{X: -vh.Y * invLen, Y: vh.X * invLen, Z: 0}
	} else {
		t1 = remath.Vec3{X: 1, Y: 0, Z: 0}
	}
	t2 := vh.Cross(t1)

	d1, d2 := sampling.ConcentricDisk(u1, u2)
	s := 0.5 * (1 + vh.Z)
	d2 = (1-s)*float32(math.Sqrt(float64(maxf(1-d1*d1, 0)))) + s*d2

	nh := t1.Mul(d1).Add(t2.Mul(d2)).Add(vh.Mul(float32(math.Sqrt(float64(maxf(1-d1*d1-d2*d2, 0))))))

	neLocal := remath.Vec3{X: alpha * nh.X, Y: alpha * nh.Y, Z: maxf(nh.Z, 1e-6)}.Normalize()

	return t.Mul(neLocal.X).Add(b.Mul(neLocal.Y)).Add(n.Mul(neLocal.Z)).Normalize()
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
