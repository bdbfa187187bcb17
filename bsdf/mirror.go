// Package bsdf implements the three surface scattering models the
// integrator dispatches on: a delta mirror, a Schlick/Snell dielectric
// interface, and a Cook-Torrance GGX microfacet BRDF with VNDF importance
// sampling and a diffuse base lobe.
package bsdf

import remath "render-engine/math"

// Mirror is a perfect specular reflector. Its PDF is a Dirac distribution;
// callers must treat the sentinel Pdf of 1 as "do not apply MIS, do not
// call Evaluate" per spec §4.3/§9.
type Mirror struct {
	Tint remath.Vec3
}

// Sample reflects wo (the outgoing/view direction, pointing away from the
// surface) about the shading normal n.
func (m Mirror) Sample(n, wo remath.Vec3) (wi remath.Vec3, pdf float32, delta bool, throughput remath.Vec3) {
	wi = n.Mul(2 * wo.Dot(n)).Sub(wo)
	return wi, 1, true, m.Tint
}

// Evaluate returns zero: a delta lobe never contributes to NEE/evaluate-side
// light transport (spec §4.3: "no contribution in evaluate").
func (Mirror) Evaluate(n, wo, wi remath.Vec3) remath.Vec3 { return remath.Vec3{} }

// Pdf returns zero: delta lobes are excluded from MIS denominators by the
// prevWasDelta flag, not by a finite density.
func (Mirror) Pdf(n, wo, wi remath.Vec3) float32 { return 0 }
