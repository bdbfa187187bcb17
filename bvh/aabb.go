// Package bvh implements a surface-area-heuristic bounding volume hierarchy:
// binned SAH construction and stack-based closest-hit / shadow traversal
// over an arbitrary triangle source supplied by the caller.
package bvh

import (
	"math"

	remath "render-engine/math"
)

// AABB is an axis-aligned bounding box. The zero value is not empty; use
// EmptyAABB to get an identity element for Grow.
type AABB struct {
	Min, Max remath.Vec3
}

// EmptyAABB returns the additive identity for Grow: min = +Inf, max = -Inf.
func EmptyAABB() AABB {
	inf := float32(math.Inf(1))
	return AABB{
		Min: remath.Vec3{X: inf, Y: inf, Z: inf},
		Max: remath.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// GrowPoint extends the box to contain p.
func (b AABB) GrowPoint(p remath.Vec3) AABB {
	return AABB{Min: remath.MinVec3(b.Min, p), Max: remath.MaxVec3(b.Max, p)}
}

// GrowBox extends the box to contain other.
func (b AABB) GrowBox(other AABB) AABB {
	return AABB{Min: remath.MinVec3(b.Min, other.Min), Max: remath.MaxVec3(b.Max, other.Max)}
}

// Diagonal returns max - min.
func (b AABB) Diagonal() remath.Vec3 {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns the full surface area 2*(dx*dy + dy*dz + dx*dz). The
// factor of 2 cancels in every SAH cost ratio; kept for parity with the
// reference engine's reported SAH-cost figures.
func (b AABB) SurfaceArea() float32 {
	d := b.Diagonal()
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0 // degenerate/empty box
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.X*d.Z)
}

// Centroid returns (min+max)/2.
func (b AABB) Centroid() remath.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Valid reports whether the box actually contains anything (was grown at
// least once from EmptyAABB).
func (b AABB) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Intersect performs a slab test given the ray origin, the precomputed
// reciprocal ray direction, and the current best tMax. It returns whether
// the ray enters the box before tMax and exits at or after 0. The min/max-of
// -pairs formulation stays correct when a reciprocal-direction component is
// +/-Inf (axis-aligned rays), provided no NaN arises upstream.
func (b AABB) Intersect(origin, invDir remath.Vec3, tMax float32) bool {
	if !b.Valid() {
		return false // an empty box (never grown) cannot be entered
	}
	t1x := (b.Min.X - origin.X) * invDir.X
	t2x := (b.Max.X - origin.X) * invDir.X
	tMin := minf(t1x, t2x)
	tMaxAxis := maxf(t1x, t2x)

	t1y := (b.Min.Y - origin.Y) * invDir.Y
	t2y := (b.Max.Y - origin.Y) * invDir.Y
	tMin = maxf(tMin, minf(t1y, t2y))
	tMaxAxis = minf(tMaxAxis, maxf(t1y, t2y))

	t1z := (b.Min.Z - origin.Z) * invDir.Z
	t2z := (b.Max.Z - origin.Z) * invDir.Z
	tMin = maxf(tMin, minf(t1z, t2z))
	tMaxAxis = minf(tMaxAxis, maxf(t1z, t2z))

	return tMaxAxis >= maxf(tMin, 0) && tMin < tMax
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
