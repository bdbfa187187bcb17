package bvh

import (
	"render-engine/core"
	remath "render-engine/math"
)

// Intersector is supplied by the caller so the BVH stays agnostic of the
// concrete triangle representation (hot/cold split or otherwise). idx is an
// index into the BVH's reordered triangle space (see BVH.Order).
type Intersector func(idx int, ray core.Ray, tMax float32) (t, u, v float32, hit bool)

// Occluder is the shadow-ray counterpart: it need only report whether the
// triangle actually blocks the ray (false lets the ray pass through, used
// for alpha-clipped triangles whose sampled albedo alpha is below 0.5).
type Occluder func(idx int, ray core.Ray, tMax float32) bool

// Traverse performs a closest-hit query and returns the winning HitRecord
// with Tri expressed in the BVH's reordered index space (the caller reorders
// its own triangle arrays by BVH.Order to make this a direct index).
func (b *BVH) Traverse(ray core.Ray, tMax float32, intersect Intersector) core.HitRecord {
	invDir := remath.Vec3{X: invComponent(ray.Dir.X), Y: invComponent(ray.Dir.Y), Z: invComponent(ray.Dir.Z)}

	best := core.NoHit()
	best.T = tMax

	var stack [maxStackDepth]uint32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		nodeIdx := stack[sp]
		node := &b.Nodes[nodeIdx]

		if !node.Box.Intersect(ray.Origin, invDir, best.T) {
			continue
		}

		if node.IsLeaf() {
			first := int(node.LeftFirst)
			for i := 0; i < int(node.TriCount); i++ {
				triIdx := first + i
				t, u, v, hit := intersect(triIdx, ray, best.T)
				if hit && t < best.T {
					best.T = t
					best.Tri = triIdx
					best.U = u
					best.V = v
				}
			}
			continue
		}

		if sp+2 > len(stack) {
			continue // exceeded max stack depth; drop remaining subtree
		}
		stack[sp] = node.LeftFirst
		sp++
		stack[sp] = node.LeftFirst + 1
		sp++
	}

	return best
}

// TraverseShadow returns true as soon as any triangle in [eps, tMax-eps]
// reports occlusion via occludes. Alpha-clipped triangles are expected to
// be transparent to shadow rays at the Occluder callback's discretion.
func (b *BVH) TraverseShadow(ray core.Ray, tMax float32, occludes Occluder) bool {
	invDir := remath.Vec3{X: invComponent(ray.Dir.X), Y: invComponent(ray.Dir.Y), Z: invComponent(ray.Dir.Z)}

	var stack [maxStackDepth]uint32
	sp := 0
	stack[sp] = 0
	sp++

	for sp > 0 {
		sp--
		nodeIdx := stack[sp]
		node := &b.Nodes[nodeIdx]

		if !node.Box.Intersect(ray.Origin, invDir, tMax) {
			continue
		}

		if node.IsLeaf() {
			first := int(node.LeftFirst)
			for i := 0; i < int(node.TriCount); i++ {
				triIdx := first + i
				if occludes(triIdx, ray, tMax) {
					return true
				}
			}
			continue
		}

		if sp+2 > len(stack) {
			continue
		}
		stack[sp] = node.LeftFirst
		sp++
		stack[sp] = node.LeftFirst + 1
		sp++
	}

	return false
}

func invComponent(d float32) float32 {
	return 1.0 / d // yields +/-Inf for d == 0, handled correctly by AABB.Intersect
}
