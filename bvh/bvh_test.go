package bvh

import (
	"testing"

	"render-engine/core"
	remath "render-engine/math"
)

// gridTriangles builds n small, non-overlapping unit-ish triangles spread
// along the X axis so the builder has real SAH structure to work with.
func gridTriangles(n int) []AABB {
	boxes := make([]AABB, n)
	for i := 0; i < n; i++ {
		x := float32(i) * 2.0
		boxes[i] = AABB{
			Min: remath.Vec3{X: x, Y: 0, Z: 0},
			Max: remath.Vec3{X: x + 1, Y: 1, Z: 1},
		}
	}
	return boxes
}

func TestBuildEveryTriangleAppearsExactlyOnce(t *testing.T) {
	const n = 137
	boxes := gridTriangles(n)
	b := Build(boxes)

	seen := make([]int, n)
	for _, node := range b.Nodes {
		if !node.IsLeaf() {
			continue
		}
		for i := 0; i < int(node.TriCount); i++ {
			orig := b.Order[int(node.LeftFirst)+i]
			seen[orig]++
		}
	}
	for i, count := range seen {
		if count != 1 {
			t.Fatalf("triangle %d appears %d times across leaves, want exactly 1", i, count)
		}
	}
}

func TestInteriorNodeBoundsContainChildren(t *testing.T) {
	boxes := gridTriangles(256)
	b := Build(boxes)

	for i := range b.Nodes {
		node := &b.Nodes[i]
		if node.IsLeaf() {
			continue
		}
		left := &b.Nodes[node.LeftFirst]
		right := &b.Nodes[node.LeftFirst+1]
		union := left.Box.GrowBox(right.Box)
		if !boxContains(node.Box, union) {
			t.Fatalf("node %d box does not contain union of children boxes", i)
		}
	}
}

func boxContains(outer, inner AABB) bool {
	const eps = 1e-4
	return inner.Min.X >= outer.Min.X-eps && inner.Min.Y >= outer.Min.Y-eps && inner.Min.Z >= outer.Min.Z-eps &&
		inner.Max.X <= outer.Max.X+eps && inner.Max.Y <= outer.Max.Y+eps && inner.Max.Z <= outer.Max.Z+eps
}

func TestNodeCountBounds(t *testing.T) {
	boxes := gridTriangles(50)
	b := Build(boxes)
	if len(b.Nodes) < 1 {
		t.Fatalf("expected at least 1 node")
	}
	if len(b.Nodes) > 2*len(boxes)-1 {
		t.Fatalf("node count %d exceeds 2N-1 = %d", len(b.Nodes), 2*len(boxes)-1)
	}
}

func TestAxisAlignedRayStillHitsBox(t *testing.T) {
	box := AABB{Min: remath.Vec3{X: -1, Y: -1, Z: -1}, Max: remath.Vec3{X: 1, Y: 1, Z: 1}}
	origin := remath.Vec3{X: 0, Y: 0, Z: -5}
	dir := remath.Vec3{X: 0, Y: 0, Z: 1} // axis-aligned; invDir.X and invDir.Y are +-Inf
	invDir := remath.Vec3{X: float32(1) / dir.X, Y: float32(1) / dir.Y, Z: float32(1) / dir.Z}

	if !box.Intersect(origin, invDir, 1e30) {
		t.Fatalf("expected axis-aligned ray to hit the box")
	}
}

func TestTraverseFindsClosestTriangle(t *testing.T) {
	boxes := gridTriangles(10)
	b := Build(boxes)

	// Each original triangle i occupies x in [2i, 2i+1]. Shoot a ray down +X
	// from far negative X and expect the closest hit to be triangle 0.
	ray := core.Ray{Origin: remath.Vec3{X: -100, Y: 0.5, Z: 0.5}, Dir: remath.Vec3{X: 1, Y: 0, Z: 0}}

	intersect := func(idx int, ray core.Ray, tMax float32) (float32, float32, float32, bool) {
		orig := b.Order[idx]
		box := boxes[orig]
		// Treat each AABB's min-X face as the "triangle" plane for this test.
		if ray.Dir.X == 0 {
			return 0, 0, 0, false
		}
		t := (box.Min.X - ray.Origin.X) / ray.Dir.X
		if t < 0 || t >= tMax {
			return 0, 0, 0, false
		}
		return t, 0, 0, true
	}

	hit := b.Traverse(ray, 1e30, intersect)
	if !hit.Hit() {
		t.Fatalf("expected a hit")
	}
	if b.Order[hit.Tri] != 0 {
		t.Fatalf("expected closest triangle to be original index 0, got %d", b.Order[hit.Tri])
	}
}

func TestEmptyBVHReturnsValidRoot(t *testing.T) {
	b := Build(nil)
	if len(b.Nodes) != 1 {
		t.Fatalf("expected a single root node for an empty scene")
	}
	stats := b.Stats()
	if stats.NodeCount != 1 {
		t.Fatalf("expected node count 1, got %d", stats.NodeCount)
	}
}
