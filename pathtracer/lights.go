package pathtracer

import (
	"sort"

	remath "render-engine/math"
)

// emissiveLuminanceThreshold excludes near-black emission from the light
// CDF (spec §7: degenerate/negligible emitters are survived silently
// rather than treated as errors).
const emissiveLuminanceThreshold = 1e-3

// LightIndex is the set of emissive-triangle indices together with a
// cumulative area distribution (spec §3's Light index). Sampling picks a
// triangle with probability proportional to its area share.
type LightIndex struct {
	TriIndices []int
	CDF        []float32 // cumulative, CDF[len-1] == TotalArea
	TotalArea  float32
}

func luminance3(c remath.Vec3) float32 {
	return 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
}

// BuildLightIndex scans the (already BVH-reordered) triangle data for
// solid emissive triangles — textured emitters are excluded per spec
// §4.4 step 5, since they are not representable by a single per-triangle
// emission color and therefore cannot be sampled by NEE.
func BuildLightIndex(verts []TriVerts, data []TriData) *LightIndex {
	li := &LightIndex{}
	running := float32(0)
	for i, td := range data {
		if td.EmissiveTex != noTexture {
			continue
		}
		if luminance3(td.EmissiveColor) < emissiveLuminanceThreshold {
			continue
		}
		if td.Area <= 0 {
			continue
		}
		running += td.Area
		li.TriIndices = append(li.TriIndices, i)
		li.CDF = append(li.CDF, running)
	}
	li.TotalArea = running
	return li
}

func (li *LightIndex) Empty() bool { return len(li.TriIndices) == 0 }

// Sample picks a light triangle proportional to area share and returns its
// index into the scene's triangle arrays plus the combined pdf-relevant
// total area (callers form pdfLight = d^2/(cos_light*totalArea) per spec §4.4).
func (li *LightIndex) Sample(u float32) (triIndex int, totalArea float32) {
	if li.Empty() {
		return -1, 0
	}
	target := u * li.TotalArea
	i := sort.Search(len(li.CDF), func(i int) bool { return li.CDF[i] >= target })
	if i >= len(li.TriIndices) {
		i = len(li.TriIndices) - 1
	}
	return li.TriIndices[i], li.TotalArea
}

// PointLight is an isotropic point emitter — no MIS, it has a delta
// distribution over directions (spec §4.4's NEE "point light" term).
type PointLight struct {
	Position  remath.Vec3
	Color     remath.Vec3
	Intensity float32
	Enabled   bool
}

// SunLight models the sun as a small-solid-angle disk (spec §4.4's "sun"
// miss contribution and NEE term): a direction toward the sun, an angular
// radius in radians, and the resulting solid angle.
type SunLight struct {
	Direction        remath.Vec3 // points FROM surface TOWARD the sun
	AngularRadius    float32     // radians
	Color            remath.Vec3
	Intensity        float32
	Enabled          bool
}

// SolidAngle returns Ω = 2π(1 - cos α).
func (s *SunLight) SolidAngle() float32 {
	cosA := cos32(s.AngularRadius)
	return 2 * piF32 * (1 - cosA)
}

// CosAngularRadius is the cached cos(α) used by the miss-ray disk test.
func (s *SunLight) CosAngularRadius() float32 {
	return cos32(s.AngularRadius)
}

// Radiance is the sun disk's outgoing radiance, color*intensity spread
// uniformly over its solid angle.
func (s *SunLight) Radiance() remath.Vec3 {
	omega := s.SolidAngle()
	if omega <= 0 {
		return remath.Vec3{}
	}
	return s.Color.Mul(s.Intensity / omega)
}
