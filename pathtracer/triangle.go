package pathtracer

import (
	"render-engine/core"
	remath "render-engine/math"
	"render-engine/scene"
)

// TriVerts is the "hot" intersection record: just the three world-space
// positions the BVH traversal loop touches on every candidate test (spec
// §3's hot/cold split). Kept as a separate slice from TriData so a
// traversal-heavy scene keeps this array small and cache-resident.
type TriVerts struct {
	P0, P1, P2 remath.Vec3
}

// TriData is the "cold" shading record consulted only once a ray has
// settled on its closest hit: interpolated normals/UVs, the geometric
// normal and face area, a tangent with a bitangent-sign scalar, material
// color/texture references, and the material dispatch tag.
type TriData struct {
	N0, N1, N2   remath.Vec3
	UV0, UV1, UV2 remath.Vec2

	Geometric remath.Vec3
	Area      float32

	Tangent       remath.Vec3
	BitangentSign float32

	BaseColor     remath.Vec3
	EmissiveColor remath.Vec3

	// Texture indices into Scene.Textures; -1 means "not bound."
	AlbedoTex    int
	EmissiveTex  int
	NormalTex    int
	RoughnessTex int
	MetallicTex  int

	AlphaClip bool
	Kind      scene.MaterialKind
	IOR       float32
	Roughness float32
	Metallic  float32
}

const noTexture = -1

// mollerTrumbore intersects a ray against a single triangle. Returns
// barycentric (u,v) — w = 1-u-v — and t along the ray. An early cull
// rejects near-degenerate determinants; a hit counts only for t > epsilon,
// matching spec §4.2's intersection contract exactly.
func mollerTrumbore(tv TriVerts, ray core.Ray, tMax float32) (t, u, v float32, hit bool) {
	const detEpsilon = 1e-7
	const tEpsilon = 1e-7

	e1 := tv.P1.Sub(tv.P0)
	e2 := tv.P2.Sub(tv.P0)
	pvec := ray.Dir.Cross(e2)
	det := e1.Dot(pvec)
	if det > -detEpsilon && det < detEpsilon {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Sub(tv.P0)
	u = tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	qvec := tvec.Cross(e1)
	v = ray.Dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(qvec) * invDet
	if t <= tEpsilon || t >= tMax {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// interpolatedNormal and interpolatedUV evaluate a barycentric blend of the triangle's three
// per-vertex normals/UVs at the hit's (u,v).
func (td *TriData) interpolatedNormal(u, v float32) remath.Vec3 {
	w := 1 - u - v
	return td.N0.Mul(w).Add(td.N1.Mul(u)).Add(td.N2.Mul(v))
}

func (td *TriData) interpolatedUV(u, v float32) remath.Vec2 {
	w := 1 - u - v
	return remath.Vec2{
		X: td.UV0.X*w + td.UV1.X*u + td.UV2.X*v,
		Y: td.UV0.Y*w + td.UV1.Y*u + td.UV2.Y*v,
	}
}
