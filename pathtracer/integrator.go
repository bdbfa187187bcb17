package pathtracer

import (
	"render-engine/bsdf"
	"render-engine/core"
	remath "render-engine/math"
	"render-engine/sampling"
	"render-engine/scene"
)

// TraceSample traces one full path for pixel (px,py) and returns its
// radiance estimate, implementing spec §4.4's bounce loop: Russian
// roulette, miss/sky contributions with sun+environment MIS, the
// inverted-normal salvage, emission accounting with MIS, material
// evaluation (including normal mapping), dispatch to Dielectric/Mirror/
// Cook-Torrance, next-event estimation, and the firefly clamp.
func TraceSample(sc *Scene, settings *Settings, cam *scene.OrbitCamera, rng *sampling.RNG, px, py, width, height int) remath.Vec3 {
	ray := primaryRay(cam, settings, px, py, width, height, rng)

	radiance := remath.Vec3{}
	throughput := remath.Vec3{X: 1, Y: 1, Z: 1}
	prevBsdfPdf := float32(0)
	prevWasDelta := true
	firstBounce := true

bounceLoop:
	for depth := 0; depth < settings.MaxDepth; {
		if !firstBounce && depth >= 2 && settings.RussianRoulette {
			p := clampf(maxComponent(throughput), 0, 0.95)
			if p <= 0 || rng.Float32() > p {
				break
			}
			throughput = throughput.Mul(1 / p)
		}

		hit := sc.closestHit(ray, rayTMax)
		if !hit.Hit() {
			sky := missContribution(sc, settings, ray, prevBsdfPdf, prevWasDelta, firstBounce)
			radiance = radiance.Add(throughput.MulVec(sky))
			break
		}

		td := &sc.Data[hit.Tri]
		geometric := td.Geometric
		frontFace := geometric.Dot(ray.Dir.Negate()) > 0

		if !frontFace && td.Kind != scene.MaterialDielectric {
			// Inverted-normal pass-through: a common exporter bug. Advance
			// past the surface along the incoming direction and keep going
			// without consuming a bounce (spec §4.4 step 4, §9 design note).
			hitPoint := ray.At(hit.T)
			ray = core.Ray{Origin: hitPoint.Add(ray.Dir.Mul(settings.RayEpsilon)), Dir: ray.Dir}
			continue
		}

		offsetNormal := geometric
		if !frontFace {
			offsetNormal = geometric.Negate()
		}

		shadingNormal := td.interpolatedNormal(hit.U, hit.V)
		uv := td.interpolatedUV(hit.U, hit.V)

		if settings.NormalMapping && !settings.FlatShading && td.NormalTex != noTexture {
			shadingNormal = applyNormalMap(sc, td, shadingNormal, offsetNormal, uv)
		}
		if settings.FlatShading {
			shadingNormal = geometric
		}
		if shadingNormal.Dot(offsetNormal) < 0 {
			shadingNormal = shadingNormal.Negate()
		}

		hitPoint := ray.At(hit.T)
		wo := ray.Dir.Negate()

		// Emission accounting.
		if settings.EmissiveEnabled {
			emission := td.EmissiveColor
			isTextured := td.EmissiveTex != noTexture
			if isTextured {
				emission = emission.MulVec(sampleTexture(sc.texAt(td.EmissiveTex), uv))
			}
			if maxComponent(emission) > 0 {
				cosOut := geometric.Dot(wo)
				if isTextured || firstBounce || prevWasDelta {
					if cosOut > 0 {
						radiance = radiance.Add(throughput.MulVec(emission))
					}
				} else if settings.NEE && !sc.Lights.Empty() && cosOut > 0 {
					pdfLight := (hit.T * hit.T) / (cosOut * sc.Lights.TotalArea)
					if pdfLight > 1e-10 {
						misWeight := prevBsdfPdf / (prevBsdfPdf + pdfLight)
						radiance = radiance.Add(throughput.MulVec(emission).Mul(misWeight))
					}
				} else if !settings.NEE {
					// BSDF sampling is the only strategy reaching this emitter,
					// so it gets the full contribution rather than a MIS share.
					if cosOut > 0 {
						radiance = radiance.Add(throughput.MulVec(emission))
					}
				}
				if !isTextured {
					break // solid emitters terminate the path
				}
			}
		}

		// Material evaluation.
		albedo := td.BaseColor
		if td.AlbedoTex != noTexture {
			albedo = albedo.MulVec(sampleTexture(sc.texAt(td.AlbedoTex), uv))
		}
		roughness := td.Roughness
		if td.RoughnessTex != noTexture {
			roughness = sampleTexture(sc.texAt(td.RoughnessTex), uv).Y // green channel
		}
		metallic := td.Metallic
		if td.MetallicTex != noTexture {
			metallic = sampleTexture(sc.texAt(td.MetallicTex), uv).Z // blue channel
		}

		isMirror := td.Kind == scene.MaterialMirror || (metallic > 0.99 && roughness < 0.01)

		switch {
		case td.Kind == scene.MaterialDielectric:
			wi, _, _, thr := bsdf.Dielectric{IOR: td.IOR, Tint: albedo}.Sample(ray.Dir, shadingNormal, frontFace, rng.Float32())
			throughput = throughput.MulVec(thr)
			prevBsdfPdf = 1
			prevWasDelta = true
			ray = offsetRay(hitPoint, offsetNormal, wi, settings.RayEpsilon)

		case isMirror:
			wi, _, _, thr := bsdf.Mirror{Tint: albedo}.Sample(shadingNormal, wo)
			throughput = throughput.MulVec(thr)
			prevBsdfPdf = 1
			prevWasDelta = true
			ray = offsetRay(hitPoint, offsetNormal, wi, settings.RayEpsilon)

		default:
			ct := bsdf.CookTorrance{BaseColor: albedo, Roughness: roughness, Metallic: metallic, IOR: td.IOR}

			if settings.NEE {
				direct := sc.sampleLights(settings, ct, hitPoint, shadingNormal, offsetNormal, wo, rng)
				radiance = radiance.Add(throughput.MulVec(direct))
			}

			u1, u2 := rng.Float32Pair()
			uLobe := rng.Float32()
			wi, pdf := ct.Sample(shadingNormal, geometric, wo, u1, u2, uLobe)
			if pdf < 1e-8 || wi.Dot(geometric) < 0 {
				break bounceLoop // path terminates: below-surface or degenerate sample
			}
			bsdfVal := ct.Evaluate(shadingNormal, wo, wi)
			cosTerm := wi.Dot(shadingNormal)
			if cosTerm < 0 {
				cosTerm = 0
			}
			throughput = throughput.MulVec(bsdfVal.Mul(cosTerm / pdf))
			prevBsdfPdf = pdf
			prevWasDelta = false
			ray = offsetRay(hitPoint, offsetNormal, wi, settings.RayEpsilon)
		}

		depth++
		firstBounce = false
	}

	if !vec3Finite(radiance) {
		return remath.Vec3{}
	}
	if settings.FireflyClamp {
		lum := luminance3(radiance)
		if lum > 10 {
			radiance = radiance.Mul(10 / lum)
		}
	}
	return radiance
}

// offsetRay nudges a new ray's origin to the correct side of offsetNormal
// according to the sign of dir·offsetNormal, preventing immediate
// self-intersection (spec §4.4 step 7).
func offsetRay(point, offsetNormal, dir remath.Vec3, eps float32) core.Ray {
	n := offsetNormal
	if dir.Dot(offsetNormal) < 0 {
		n = offsetNormal.Negate()
	}
	return core.Ray{Origin: point.Add(n.Mul(eps)), Dir: dir}
}

// applyNormalMap perturbs the interpolated shading normal with a
// tangent-space normal-map sample (spec §4.4 step 6): reorthogonalize the
// tangent against the (possibly flipped) shading normal, build the
// bitangent via cross product with the stored sign, and transform the
// [0,1]-encoded sample into a [-1,1] tangent-space direction.
func applyNormalMap(sc *Scene, td *TriData, n, offsetNormal remath.Vec3, uv remath.Vec2) remath.Vec3 {
	tangent := td.Tangent.Sub(n.Mul(n.Dot(td.Tangent)))
	if tangent.LengthSqr() < 1e-12 {
		return n
	}
	tangent = tangent.Normalize()
	bitangent := n.Cross(tangent).Mul(td.BitangentSign)

	sample := sampleTexture(sc.texAt(td.NormalTex), uv)
	x := sample.X*2 - 1
	y := sample.Y*2 - 1
	z := sample.Z*2 - 1

	mapped := tangent.Mul(x).Add(bitangent.Mul(y)).Add(n.Mul(z)).Normalize()
	if mapped.Dot(offsetNormal) < 0 {
		mapped = n // degenerate map pushed below the surface; keep the interpolated normal
	}
	return mapped
}
