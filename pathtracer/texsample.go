package pathtracer

import (
	remath "render-engine/math"
	"render-engine/scene"
)

// sampleTexture performs a nearest-pixel lookup (spec §1's Non-goals rule
// out texture filtering in the core) at UV coordinates with origin
// bottom-left, wrapping by fractional part, and a vertical flip so v=0
// lands on the texture's top row of texels.
func sampleTexture(tex *scene.Texture, uv remath.Vec2) remath.Vec3 {
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 {
		return remath.Vec3{X: 1, Y: 1, Z: 1}
	}
	u := wrapFrac(uv.X)
	v := wrapFrac(uv.Y)

	px := int(u * float32(tex.Width))
	py := int((1 - v) * float32(tex.Height))
	px = clampi(px, 0, tex.Width-1)
	py = clampi(py, 0, tex.Height-1)

	idx := (py*tex.Width + px) * 4
	if idx+3 >= len(tex.Pixels) {
		return remath.Vec3{X: 1, Y: 1, Z: 1}
	}
	return remath.Vec3{
		X: float32(tex.Pixels[idx]) / 255.0,
		Y: float32(tex.Pixels[idx+1]) / 255.0,
		Z: float32(tex.Pixels[idx+2]) / 255.0,
	}
}

// sampleTextureAlpha returns just the alpha channel, used by the
// alpha-clip shadow-ray test.
func sampleTextureAlpha(tex *scene.Texture, uv remath.Vec2) float32 {
	if tex == nil || tex.Width <= 0 || tex.Height <= 0 {
		return 1
	}
	u := wrapFrac(uv.X)
	v := wrapFrac(uv.Y)
	px := clampi(int(u*float32(tex.Width)), 0, tex.Width-1)
	py := clampi(int((1-v)*float32(tex.Height)), 0, tex.Height-1)
	idx := (py*tex.Width + px) * 4
	if idx+3 >= len(tex.Pixels) {
		return 1
	}
	return float32(tex.Pixels[idx+3]) / 255.0
}

func wrapFrac(f float32) float32 {
	f -= float32(int(f))
	if f < 0 {
		f += 1
	}
	return f
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
