package bsdf

import remath "render-engine/math"

// Dielectric is a thin smooth interface (glass, water, ...) with
// Schlick-approximated Fresnel reflectance and Snell refraction. Both the
// reflection and refraction branches are delta lobes (pdf sentinel of 1).
type Dielectric struct {
	IOR  float32 // index of refraction of the material (vacuum is implicitly 1)
	Tint remath.Vec3
}

// Sample picks reflection or refraction for the incident ray direction
// rayDir (pointing INTO the surface) against normal n (oriented against
// rayDir, i.e. on the side the ray arrives from). frontFace selects which
// side of the interface is being entered, swapping the vacuum/material IOR
// pair. u is a single uniform draw used for the reflect-vs-refract choice.
// Refraction tint is applied only when the refraction branch is taken.
func (d Dielectric) Sample(rayDir, n remath.Vec3, frontFace bool, u float32) (wi remath.Vec3, pdf float32, delta bool, throughput remath.Vec3) {
	etaI, etaT := float32(1.0), d.IOR
	if !frontFace {
		etaI, etaT = etaT, etaI
	}
	eta := etaI / etaT

	cosTheta := -rayDir.Dot(n)
	if cosTheta < 0 {
		cosTheta = 0
	}
	if cosTheta > 1 {
		cosTheta = 1
	}
	f0 := (etaI - etaT) / (etaI + etaT)
	f0 *= f0
	oneMinus := 1 - cosTheta
	fresnel := f0 + (1-f0)*oneMinus*oneMinus*oneMinus*oneMinus*oneMinus

	refractDir, ok := rayDir.Refract(n, eta)
	reflectDir := rayDir.Reflect(n)

	if !ok {
		// Total internal reflection: no refracted direction exists.
		return reflectDir, 1, true, remath.Vec3{X: 1, Y: 1, Z: 1}
	}

	if u < fresnel {
		return reflectDir, 1, true, remath.Vec3{X: 1, Y: 1, Z: 1}
	}
	return refractDir, 1, true, d.Tint
}

func (Dielectric) Evaluate(n, wo, wi remath.Vec3) remath.Vec3 { return remath.Vec3{} }
func (Dielectric) Pdf(n, wo, wi remath.Vec3) float32          { return 0 }
