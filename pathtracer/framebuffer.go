package pathtracer

import (
	"math"

	remath "render-engine/math"
)

// AccumBuffer is width×height RGB floats plus a monotone sampleCount (spec
// §3's Accumulation buffer). Owned by the driver; recreated on resize and
// zeroed on any reset trigger.
type AccumBuffer struct {
	Width, Height int
	Accum         []remath.Vec3
	SampleCount   int
}

func NewAccumBuffer(width, height int) *AccumBuffer {
	return &AccumBuffer{
		Width:  width,
		Height: height,
		Accum:  make([]remath.Vec3, width*height),
	}
}

// Reset zeroes the buffer and the sample count — the effect of any
// structural change (spec §4.6 step 3).
func (a *AccumBuffer) Reset() {
	for i := range a.Accum {
		a.Accum[i] = remath.Vec3{}
	}
	a.SampleCount = 0
}

// Resize recreates the buffer at the new dimensions, discarding history
// (spec §3's "recreated when the viewport resizes").
func (a *AccumBuffer) Resize(width, height int) {
	if width == a.Width && height == a.Height {
		return
	}
	a.Width, a.Height = width, height
	a.Accum = make([]remath.Vec3, width*height)
	a.SampleCount = 0
}

// Mean returns accum[i]/sampleCount, or black if no samples yet (spec §3's
// display-buffer invariant).
func (a *AccumBuffer) Mean(i int) remath.Vec3 {
	if a.SampleCount <= 0 {
		return remath.Vec3{}
	}
	return a.Accum[i].Mul(1.0 / float32(a.SampleCount))
}

// acesNarkowicz is the Narkowicz 2015 fit used for ACES-ish filmic tone
// mapping (spec §4.6 step 5's exact constants).
func acesNarkowicz(c float32) float32 {
	const a, b, cc, d, e = 2.51, 0.03, 2.43, 0.59, 0.14
	v := (c * (a*c + b)) / (c*(cc*c+d) + e)
	return clampf(v, 0, 1)
}

// tonemapPixel applies exposure, optional ACES, gamma and 8-bit
// quantisation to one linear-light sample mean (spec §4.6 step 5).
func tonemapPixel(c remath.Vec3, settings *Settings) (r, g, b byte) {
	scale := float32(math.Pow(2, float64(settings.Exposure)))
	c = c.Mul(scale)

	if settings.ACES {
		c = remath.Vec3{X: acesNarkowicz(c.X), Y: acesNarkowicz(c.Y), Z: acesNarkowicz(c.Z)}
	} else {
		c = remath.Vec3{X: clampf(c.X, 0, 1), Y: clampf(c.Y, 0, 1), Z: clampf(c.Z, 0, 1)}
	}

	gamma := settings.Gamma
	if gamma <= 0 {
		gamma = 1
	}
	invGamma := 1.0 / gamma
	c = remath.Vec3{
		X: powf(c.X, invGamma),
		Y: powf(c.Y, invGamma),
		Z: powf(c.Z, invGamma),
	}

	r = byte(clampf(c.X*255+0.5, 0, 255))
	g = byte(clampf(c.Y*255+0.5, 0, 255))
	b = byte(clampf(c.Z*255+0.5, 0, 255))
	return r, g, b
}

func powf(base, exp float32) float32 {
	if base <= 0 {
		return 0
	}
	return float32(math.Pow(float64(base), float64(exp)))
}
