package pathtracer

import (
	"render-engine/core"
	"render-engine/sampling"
	"render-engine/scene"
)

// primaryRay builds one camera ray for pixel (px,py) of a width×height
// image. Closed-form from the camera's basis vectors and vertical FOV —
// the same ray a literal inverse-view-projection unprojection would
// produce for a perspective camera, without the extra matrix inversion.
// AntiAlias jitters the sub-pixel sample location; a non-zero aperture
// lifts the ray through a thin lens toward a focus plane at FocusDistance
// (spec §4.5's "lens offset" formula).
func primaryRay(cam *scene.OrbitCamera, settings *Settings, px, py, width, height int, rng *sampling.RNG) core.Ray {
	jx, jy := float32(0.5), float32(0.5)
	if settings.AntiAlias {
		jx, jy = rng.Float32(), rng.Float32()
	}

	u := (float32(px) + jx) / float32(width)
	v := (float32(py) + jy) / float32(height)

	aspect := float32(width) / float32(height)
	tanHalfFov := tan32(cam.FOV * 0.5)

	screenX := (2*u - 1) * aspect * tanHalfFov
	screenY := (1 - 2*v) * tanHalfFov

	forward := cam.GetForward()
	right := cam.GetRight()
	up := cam.GetUp()

	dir := forward.Add(right.Mul(screenX)).Add(up.Mul(screenY)).Normalize()
	origin := cam.Position

	if settings.Aperture > 0 {
		lu, lv := rng.Float32Pair()
		lensX, lensY := sampling.ConcentricDisk(lu, lv)
		focusDist := settings.FocusDistance
		if focusDist <= 0 {
			focusDist = cam.FocusDistance
		}
		focalPoint := origin.Add(dir.Mul(focusDist))
		lensOffset := right.Mul(lensX * settings.Aperture).Add(up.Mul(lensY * settings.Aperture))
		origin = origin.Add(lensOffset)
		dir = focalPoint.Sub(origin).Normalize()
	}

	return core.Ray{Origin: origin, Dir: dir}
}

func tan32(f float32) float32 { return sin32(f) / cos32(f) }
