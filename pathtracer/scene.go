package pathtracer

import (
	"render-engine/bvh"
	remath "render-engine/math"
	"render-engine/sampling"
	"render-engine/scene"
)

// Scene is the integrator's immutable-during-a-sample view of the world:
// BVH-reordered triangle arrays, the light index, and the read-only
// texture/environment tables (spec §3's "Ownership and lifecycle" —
// rebuilt only when geometry or materials change).
type Scene struct {
	Verts []TriVerts
	Data  []TriData
	BVH   *bvh.BVH

	// OriginalIndex maps a post-reorder triangle slot back to the index it
	// had before BVH.Order was applied, the "external index map" spec §3
	// says the driver must keep once identity no longer survives in-place.
	OriginalIndex []uint32

	Lights      *LightIndex
	PointLights []PointLight
	Sun         *SunLight
	Env         *sampling.EnvMap

	Textures []*scene.Texture
}

// textureTable deduplicates *scene.Texture pointers into a flat index
// table so TriData can reference them by small int instead of copying.
type textureTable struct {
	byPtr map[*scene.Texture]int
	list  []*scene.Texture
}

func newTextureTable() *textureTable {
	return &textureTable{byPtr: map[*scene.Texture]int{}}
}

func (t *textureTable) indexOf(tex *scene.Texture) int {
	if tex == nil {
		return noTexture
	}
	if idx, ok := t.byPtr[tex]; ok {
		return idx
	}
	idx := len(t.list)
	t.list = append(t.list, tex)
	t.byPtr[tex] = idx
	return idx
}

// BuildScene flattens the authoring scene graph (node hierarchy, meshes,
// materials) into world-space triangle arrays, builds the SAH BVH over
// them, reorders both triangle arrays by the resulting permutation, and
// assembles the emissive-triangle light index, point lights, sun light and
// environment map. This is the "structural" rebuild of spec §4.6 step 1.
func BuildScene(sg *scene.Scene, env *sampling.EnvMap) *Scene {
	textures := newTextureTable()

	var verts []TriVerts
	var data []TriData

	var visit func(n *scene.Node)
	visit = func(n *scene.Node) {
		if n.Visible && n.Mesh != nil {
			appendMeshTriangles(n, textures, &verts, &data)
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	if sg.Root != nil {
		visit(sg.Root)
	}

	boxes := make([]bvh.AABB, len(verts))
	for i, tv := range verts {
		b := bvh.EmptyAABB()
		b = b.GrowPoint(tv.P0)
		b = b.GrowPoint(tv.P1)
		b = b.GrowPoint(tv.P2)
		boxes[i] = b
	}

	built := bvh.Build(boxes)

	reorderedVerts := make([]TriVerts, len(built.Order))
	reorderedData := make([]TriData, len(built.Order))
	for newIdx, origIdx := range built.Order {
		reorderedVerts[newIdx] = verts[origIdx]
		reorderedData[newIdx] = data[origIdx]
	}

	out := &Scene{
		Verts:         reorderedVerts,
		Data:          reorderedData,
		BVH:           built,
		OriginalIndex: built.Order,
		Env:           env,
		Textures:      textures.list,
	}
	out.Lights = BuildLightIndex(out.Verts, out.Data)

	for _, l := range sg.Lights {
		switch l.Type {
		case scene.LightTypePoint:
			out.PointLights = append(out.PointLights, PointLight{
				Position:  l.Position,
				Color:     remath.Vec3{X: l.Color.R, Y: l.Color.G, Z: l.Color.B},
				Intensity: l.Intensity,
				Enabled:   true,
			})
		case scene.LightTypeSun, scene.LightTypeDirectional:
			radius := l.AngularRadiusDeg
			if radius <= 0 {
				radius = 0.27 // Earth's sun, degrees
			}
			dir := l.Direction
			if l.Type == scene.LightTypeSun {
				dir = l.SunDirection().Negate() // NEE wants "toward the sun"
			} else {
				dir = l.Direction.Negate()
			}
			out.Sun = &SunLight{
				Direction:     dir.Normalize(),
				AngularRadius: radius * piF32 / 180.0,
				Color:         remath.Vec3{X: l.Color.R, Y: l.Color.G, Z: l.Color.B},
				Intensity:     l.Intensity,
				Enabled:       true,
			}
		}
	}

	return out
}

// appendMeshTriangles transforms one node's mesh into world space and
// appends its triangles to the flat arrays.
func appendMeshTriangles(n *scene.Node, textures *textureTable, verts *[]TriVerts, data *[]TriData) {
	mesh := n.Mesh
	world := n.GetWorldMatrix()
	mat := mesh.Material
	if mat == nil {
		mat = scene.DefaultMaterial()
	}

	baseColor := remath.Vec3{X: mat.BaseColor.R, Y: mat.BaseColor.G, Z: mat.BaseColor.B}
	emissive := remath.Vec3{X: mat.EmissiveColor.R, Y: mat.EmissiveColor.G, Z: mat.EmissiveColor.B}

	albedoTex := textures.indexOf(mat.AlbedoTexture)
	emissiveTex := textures.indexOf(mat.EmissiveTexture)
	normalTex := textures.indexOf(mat.NormalTexture)
	roughnessTex := textures.indexOf(mat.RoughnessTexture)
	metallicTex := textures.indexOf(mat.MetallicTexture)

	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		i0, i1, i2 := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		v0, v1, v2 := mesh.Vertices[i0], mesh.Vertices[i1], mesh.Vertices[i2]

		p0 := world.MulVec3(v0.Position)
		p1 := world.MulVec3(v1.Position)
		p2 := world.MulVec3(v2.Position)

		// Normals transform by the world matrix's rotation/scale part only
		// (w=0, translation dropped); a uniform-scale assumption is
		// acceptable here since non-uniform scale on authored assets is
		// rare and out of spec's Non-goals scope to correct for via a true
		// inverse-transpose.
		n0 := transformDir(world, v0.Normal).Normalize()
		n1 := transformDir(world, v1.Normal).Normalize()
		n2 := transformDir(world, v2.Normal).Normalize()

		e1 := p1.Sub(p0)
		e2 := p2.Sub(p0)
		faceNormalUn := e1.Cross(e2)
		area := faceNormalUn.Length() * 0.5
		geomNormal := faceNormalUn.Normalize()

		tangent := transformDir(world, v0.Tangent)
		if tangent.LengthSqr() < 1e-12 {
			tangent = remath.Vec3{X: 1}
		}
		tangent = tangent.Sub(geomNormal.Mul(geomNormal.Dot(tangent))).Normalize()
		bitangentSign := float32(1)
		if geomNormal.Cross(tangent).Dot(transformDir(world, v0.Bitangent)) < 0 {
			bitangentSign = -1
		}

		*verts = append(*verts, TriVerts{P0: p0, P1: p1, P2: p2})
		*data = append(*data, TriData{
			N0: n0, N1: n1, N2: n2,
			UV0: v0.UV, UV1: v1.UV, UV2: v2.UV,
			Geometric:     geomNormal,
			Area:          area,
			Tangent:       tangent,
			BitangentSign: bitangentSign,
			BaseColor:     baseColor,
			EmissiveColor: emissive,
			AlbedoTex:     albedoTex,
			EmissiveTex:   emissiveTex,
			NormalTex:     normalTex,
			RoughnessTex:  roughnessTex,
			MetallicTex:   metallicTex,
			AlphaClip:     mat.AlphaClip,
			Kind:          mat.Kind,
			IOR:           mat.IOR,
			Roughness:     mat.Roughness,
			Metallic:      mat.Metallic,
		})
	}
}

// transformDir applies only the linear (rotation/scale) part of an affine
// matrix, dropping translation — the correct transform for normals,
// tangents and bitangents as opposed to positions.
func transformDir(m remath.Mat4, v remath.Vec3) remath.Vec3 {
	v4 := v.ToVec4(0)
	return m.MulVec(v4).ToVec3()
}

// texAt fetches a scene.Texture by index, or nil for "not bound."
func (s *Scene) texAt(idx int) *scene.Texture {
	if idx == noTexture || idx < 0 || idx >= len(s.Textures) {
		return nil
	}
	return s.Textures[idx]
}
