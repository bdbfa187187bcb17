package main

import (
	"fmt"

	"render-engine/core"
	"render-engine/pathtracer"
	"render-engine/scene"
)

// dayNight drives the sun light's elevation/color/intensity and the path
// tracer's solid background colour from a single time-of-day scalar; the
// sun's azimuth is left as the scene set it.
// Adapted from the teacher's cmd/demo/daynight.go dayPalette keyframe
// system (zenith/horizon/sun-color/sun-intensity lerped across named times
// of day), but targets the path-tracing core's control surface instead of a
// rasterizer's skybox/fog uniforms — a demo-ergonomics convenience, not part
// of the core's contract (SPEC_FULL.md's Supplemented Features).
type dayNight struct {
	TimeOfDay float32 // hours, [0,24)
	Speed     float32 // hours of simulated time per real second
	Active    bool
}

type daySample struct {
	t         float32 // hour, 0-24
	sunColor  core.Color
	intensity float32
	elevation float32 // radians above horizon
	sky       core.Color
}

// keyframes mirror the teacher's palettes slice: midnight, pre-dawn, dawn,
// noon, golden hour, dusk, night, wrapping back to midnight.
var dayKeyframes = []daySample{
	{t: 0, sunColor: core.Color{R: 0.05, G: 0.07, B: 0.15, A: 1}, intensity: 0.0, elevation: -1.2, sky: core.Color{R: 0.02, G: 0.02, B: 0.05, A: 1}},
	{t: 5, sunColor: core.Color{R: 0.9, G: 0.5, B: 0.4, A: 1}, intensity: 0.4, elevation: -0.05, sky: core.Color{R: 0.2, G: 0.12, B: 0.18, A: 1}},
	{t: 7, sunColor: core.Color{R: 1.0, G: 0.75, B: 0.5, A: 1}, intensity: 1.5, elevation: 0.3, sky: core.Color{R: 0.5, G: 0.55, B: 0.7, A: 1}},
	{t: 12, sunColor: core.Color{R: 1.0, G: 0.98, B: 0.95, A: 1}, intensity: 3.0, elevation: 1.4, sky: core.Color{R: 0.5, G: 0.7, B: 1.0, A: 1}},
	{t: 17, sunColor: core.Color{R: 1.0, G: 0.7, B: 0.4, A: 1}, intensity: 1.8, elevation: 0.35, sky: core.Color{R: 0.7, G: 0.45, B: 0.35, A: 1}},
	{t: 19, sunColor: core.Color{R: 0.8, G: 0.35, B: 0.3, A: 1}, intensity: 0.5, elevation: -0.02, sky: core.Color{R: 0.15, G: 0.08, B: 0.15, A: 1}},
	{t: 21, sunColor: core.Color{R: 0.05, G: 0.07, B: 0.15, A: 1}, intensity: 0.0, elevation: -0.6, sky: core.Color{R: 0.03, G: 0.03, B: 0.07, A: 1}},
}

func newDayNight() *dayNight {
	return &dayNight{TimeOfDay: 9, Speed: 0.15, Active: true}
}

func (d *dayNight) Update(dt float32) {
	if !d.Active {
		return
	}
	d.TimeOfDay += dt * d.Speed
	for d.TimeOfDay >= 24 {
		d.TimeOfDay -= 24
	}
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: 1,
	}
}

func (d *dayNight) sample() daySample {
	t := d.TimeOfDay
	n := len(dayKeyframes)
	for i := 0; i < n; i++ {
		cur := dayKeyframes[i]
		next := dayKeyframes[(i+1)%n]
		nextT := next.t
		if nextT <= cur.t {
			nextT += 24
		}
		tt := t
		if tt < cur.t {
			tt += 24
		}
		if tt >= cur.t && tt <= nextT {
			span := nextT - cur.t
			f := float32(0)
			if span > 0 {
				f = (tt - cur.t) / span
			}
			return daySample{
				sunColor:  lerpColor(cur.sunColor, next.sunColor, f),
				intensity: cur.intensity + (next.intensity-cur.intensity)*f,
				elevation: cur.elevation + (next.elevation-cur.elevation)*f,
				sky:       lerpColor(cur.sky, next.sky, f),
			}
		}
	}
	return dayKeyframes[0]
}

// Apply pushes the current time-of-day sample onto the sun light and the
// path tracer's environment solid-colour setting.
func (d *dayNight) Apply(sun *scene.Light, settings *pathtracer.Settings) {
	s := d.sample()
	sun.Color = s.sunColor
	sun.Intensity = s.intensity
	sun.Elevation = s.elevation
	settings.EnvironmentColor = s.sky
}

func (d *dayNight) TimeOfDayStr() string {
	h := int(d.TimeOfDay)
	m := int((d.TimeOfDay - float32(h)) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}
