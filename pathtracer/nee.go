package pathtracer

import (
	"render-engine/bsdf"
	"render-engine/core"
	remath "render-engine/math"
	"render-engine/sampling"
)

const rayTMax = float32(1e30)

// sampleLights accumulates the four independent next-event-estimation
// integrals of spec §4.4: emissive-triangle sampling, a point light, the
// sun cone, and the environment map. Each is visibility-tested by its own
// shadow ray; alpha-clipped faces are transparent to those rays. The
// returned value is NOT yet multiplied by the path's running throughput —
// the caller does that once, after summing all four terms.
func (sc *Scene) sampleLights(
	settings *Settings,
	ct bsdf.CookTorrance,
	hitPoint, shadingNormal, offsetNormal, wo remath.Vec3,
	rng *sampling.RNG,
) remath.Vec3 {
	var sum remath.Vec3
	eps := settings.RayEpsilon

	// 1. Emissive-triangle sampling.
	if !sc.Lights.Empty() {
		triIdx, totalArea := sc.Lights.Sample(rng.Float32())
		u1, u2 := rng.Float32Pair()
		lv := sc.Verts[triIdx]
		ld := &sc.Data[triIdx]
		point := sampling.UniformTrianglePoint(lv.P0, lv.P1, lv.P2, u1, u2)

		toLight := point.Sub(hitPoint)
		dist2 := toLight.LengthSqr()
		if dist2 > 1e-12 {
			d := sqrt32(dist2)
			wi := toLight.Div(d)
			cosSurface := wi.Dot(shadingNormal)
			cosLight := ld.Geometric.Dot(wi.Negate())
			if cosSurface > 0 && cosLight > 0 {
				shadowRay := core.Ray{Origin: hitPoint.Add(offsetNormal.Mul(eps)), Dir: wi}
				if !sc.occluded(shadowRay, d-eps) {
					pdfLight := dist2 / (cosLight * totalArea)
					if pdfLight > 1e-10 {
						bsdfPdf := ct.Pdf(shadingNormal, wo, wi)
						misWeight := pdfLight / (pdfLight + bsdfPdf)
						bsdfVal := ct.Evaluate(shadingNormal, wo, wi)
						emission := ld.EmissiveColor
						sum = sum.Add(bsdfVal.MulVec(emission).Mul(cosSurface / pdfLight * misWeight))
					}
				}
			}
		}
	}

	// 2. Point light (delta distribution, no MIS).
	for _, pl := range sc.PointLights {
		if !pl.Enabled {
			continue
		}
		toLight := pl.Position.Sub(hitPoint)
		dist2 := toLight.LengthSqr()
		if dist2 < 1e-12 {
			continue
		}
		d := sqrt32(dist2)
		wi := toLight.Div(d)
		cosSurface := wi.Dot(shadingNormal)
		if cosSurface <= 0 {
			continue
		}
		shadowRay := core.Ray{Origin: hitPoint.Add(offsetNormal.Mul(eps)), Dir: wi}
		if sc.occluded(shadowRay, d-eps) {
			continue
		}
		bsdfVal := ct.Evaluate(shadingNormal, wo, wi)
		sum = sum.Add(bsdfVal.MulVec(pl.Color).Mul(pl.Intensity * cosSurface / dist2))
	}

	// 3. Directional sun (cone sampling, MIS against a delta-ish but
	// finite-solid-angle light).
	if sc.Sun != nil && sc.Sun.Enabled {
		u1, u2 := rng.Float32Pair()
		wi, solidAngle := sampling.SunCone(sc.Sun.Direction, sc.Sun.CosAngularRadius(), u1, u2)
		cosSurface := wi.Dot(shadingNormal)
		if cosSurface > 0 && solidAngle > 0 {
			shadowRay := core.Ray{Origin: hitPoint.Add(offsetNormal.Mul(eps)), Dir: wi}
			if !sc.occluded(shadowRay, rayTMax) {
				lightPdf := 1 / solidAngle
				bsdfPdf := ct.Pdf(shadingNormal, wo, wi)
				misWeight := lightPdf / (lightPdf + bsdfPdf)
				bsdfVal := ct.Evaluate(shadingNormal, wo, wi)
				radiance := sc.Sun.Radiance()
				sum = sum.Add(bsdfVal.MulVec(radiance).Mul(cosSurface / lightPdf * misWeight))
			}
		}
	}

	// 4. Environment map.
	if settings.EnvironmentEnabled && sc.Env != nil {
		u1, u2 := rng.Float32Pair()
		wi, envPdf := sc.Env.Sample(u1, u2)
		cosSurface := wi.Dot(shadingNormal)
		if cosSurface > 0 && envPdf > 1e-10 {
			shadowRay := core.Ray{Origin: hitPoint.Add(offsetNormal.Mul(eps)), Dir: wi}
			if !sc.occluded(shadowRay, rayTMax) {
				bsdfPdf := ct.Pdf(shadingNormal, wo, wi)
				misWeight := envPdf / (envPdf + bsdfPdf)
				bsdfVal := ct.Evaluate(shadingNormal, wo, wi)
				val := sc.Env.Eval(wi).Mul(settings.EnvironmentMultiplier)
				sum = sum.Add(bsdfVal.MulVec(val).Mul(cosSurface / envPdf * misWeight))
			}
		}
	}

	return sum
}
