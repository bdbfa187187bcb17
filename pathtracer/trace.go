package pathtracer

import (
	"render-engine/core"
)

// closestHit runs a closest-hit BVH query against the scene's triangle
// array using Möller–Trumbore per candidate.
func (s *Scene) closestHit(ray core.Ray, tMax float32) core.HitRecord {
	return s.BVH.Traverse(ray, tMax, func(idx int, ray core.Ray, tMax float32) (float32, float32, float32, bool) {
		return mollerTrumbore(s.Verts[idx], ray, tMax)
	})
}

// occluded runs a shadow-ray query; alpha-clipped triangles whose sampled
// albedo alpha falls below 0.5 are transparent to shadow rays (spec §4.2,
// §4.4's NEE visibility test).
func (s *Scene) occluded(ray core.Ray, tMax float32) bool {
	return s.BVH.TraverseShadow(ray, tMax, func(idx int, ray core.Ray, tMax float32) bool {
		_, u, v, hit := mollerTrumbore(s.Verts[idx], ray, tMax)
		if !hit {
			return false
		}
		td := &s.Data[idx]
		if td.AlphaClip && td.AlbedoTex != noTexture {
			uv := td.interpolatedUV(u, v)
			if sampleTextureAlpha(s.texAt(td.AlbedoTex), uv) < 0.5 {
				return false
			}
		}
		return true
	})
}
