package pathtracer

import (
	"render-engine/core"
	remath "render-engine/math"
)

// missContribution computes the sky radiance added when a path leaves the
// scene without hitting geometry (spec §4.4 step 3): the sun disk treated
// as a small-solid-angle area light, plus the environment/background,
// each MIS-weighted against the previous bounce's BSDF pdf except on the
// first bounce or immediately after a delta bounce.
func missContribution(sc *Scene, settings *Settings, ray core.Ray, prevBsdfPdf float32, prevWasDelta, firstBounce bool) remath.Vec3 {
	var out remath.Vec3

	if sc.Sun != nil && sc.Sun.Enabled {
		if ray.Dir.Dot(sc.Sun.Direction) > sc.Sun.CosAngularRadius() {
			sunRadiance := sc.Sun.Radiance()
			if firstBounce || prevWasDelta || !settings.NEE {
				out = out.Add(sunRadiance)
			} else {
				lightPdf := 1 / sc.Sun.SolidAngle()
				w := prevBsdfPdf / (prevBsdfPdf + lightPdf)
				out = out.Add(sunRadiance.Mul(w))
			}
		}
	}

	envColor := backgroundColor(sc, settings, ray.Dir)
	hasEnvCDF := settings.EnvironmentEnabled && sc.Env != nil

	switch {
	case firstBounce:
		out = out.Add(envColor)
	case settings.NEE && !prevWasDelta && hasEnvCDF:
		// Only when NEE is sampling the environment as a light do we need
		// to balance against the BSDF pdf; every other secondary miss
		// (after a delta bounce, with a solid-colour background, or with
		// NEE disabled entirely) gets the full, unweighted contribution.
		envPdf := sc.Env.Pdf(ray.Dir)
		w := prevBsdfPdf / (prevBsdfPdf + envPdf)
		out = out.Add(envColor.Mul(w))
	default:
		out = out.Add(envColor)
	}

	return out
}

// backgroundColor returns what a ray sees along dir: the environment map's
// sample when one is loaded and enabled, otherwise the solid background
// colour from settings (spec §6's "solid colour, named preset, or file
// path" environment selection — presets resolve to a solid colour chosen
// by the driver before the core ever sees them).
func backgroundColor(sc *Scene, settings *Settings, dir remath.Vec3) remath.Vec3 {
	if settings.EnvironmentEnabled && sc.Env != nil {
		return sc.Env.Eval(dir).Mul(settings.EnvironmentMultiplier)
	}
	c := settings.EnvironmentColor
	return remath.Vec3{X: c.R, Y: c.G, Z: c.B}
}
