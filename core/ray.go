package core

import "render-engine/math"

// Ray is a parametric half-line Origin + t*Dir used throughout the
// path-tracing core for primary rays, shadow rays and scattered rays.
type Ray struct {
	Origin math.Vec3
	Dir    math.Vec3
}

// At evaluates the ray at parameter t.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// HitRecord carries everything the integrator needs about a closest-hit
// intersection against the BVH: the hit distance, the triangle index (into
// the reordered, BVH-local index space), and barycentric coordinates.
type HitRecord struct {
	T        float32
	Tri      int
	U, V     float32 // barycentric; W = 1 - U - V
	FrontFace bool
}

// Hit reports whether an intersection was recorded (Tri >= 0; see NoHit).
func (h HitRecord) Hit() bool {
	return h.Tri >= 0
}

// NoHit is the sentinel for "ray missed everything": Tri is -1. (The zero
// value has Tri 0 and so reads as a hit on triangle 0.)
func NoHit() HitRecord {
	return HitRecord{Tri: -1}
}
