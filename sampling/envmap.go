package sampling

import (
	"math"
	"sort"

	remath "render-engine/math"
)

// EnvMap is an equirectangular HDR environment with a two-level CDF (a
// marginal over rows and, per row, a conditional over columns) both
// weighted by sin(theta) so sampling is uniform in solid angle. Spec §9
// notes a single flat H+W*H+1 buffer is an equally valid storage choice for
// the GPU variant; this CPU-side implementation keeps two slices, which
// spec §9 explicitly allows.
type EnvMap struct {
	Width, Height int
	Pixels        []remath.Vec3 // row-major, row 0 at theta=0 (the +Y pole)

	marginal    []float32 // length Height+1, normalized cumulative row weight
	conditional []float32 // length Width*Height, each row normalized cumulative
	Total       float32   // unnormalized integral (sum of lum*sinTheta over all texels)
}

func luminance(c remath.Vec3) float32 {
	return 0.2126*c.X + 0.7152*c.Y + 0.0722*c.Z
}

// BuildEnvMapCDF constructs the two-level CDF described in spec §3/§4.5.
func BuildEnvMapCDF(width, height int, pixels []remath.Vec3) *EnvMap {
	e := &EnvMap{
		Width:       width,
		Height:      height,
		Pixels:      pixels,
		marginal:    make([]float32, height+1),
		conditional: make([]float32, width*height),
	}
	if width == 0 || height == 0 {
		return e
	}

	rowWeight := make([]float32, height)
	for y := 0; y < height; y++ {
		theta := (float32(y) + 0.5) / float32(height) * piF32
		sinTheta := sin32(theta)
		var rowSum float32
		base := y * width
		for x := 0; x < width; x++ {
			rowSum += luminance(pixels[base+x]) * sinTheta
			e.conditional[base+x] = rowSum
		}
		if rowSum > 0 {
			for x := 0; x < width; x++ {
				e.conditional[base+x] /= rowSum
			}
		}
		rowWeight[y] = rowSum
	}

	var total float32
	for y := 0; y < height; y++ {
		total += rowWeight[y]
		e.marginal[y+1] = total
	}
	e.Total = total
	if total > 0 {
		for y := range e.marginal {
			e.marginal[y] /= total
		}
	}
	return e
}

// Sample draws a direction from the CDF: the row via marginal inversion on
// u1, the column via that row's conditional inversion on u2.
func (e *EnvMap) Sample(u1, u2 float32) (dir remath.Vec3, pdf float32) {
	if e.Width == 0 || e.Height == 0 || e.Total <= 0 {
		return remath.Vec3{Y: 1}, 0
	}

	row := lowerBound(e.marginal, u1)
	if row >= e.Height {
		row = e.Height - 1
	}
	rowSlice := e.conditional[row*e.Width : (row+1)*e.Width]
	col := lowerBoundSlice(rowSlice, u2)
	if col >= e.Width {
		col = e.Width - 1
	}

	theta := (float32(row) + 0.5) / float32(e.Height) * piF32
	phi := (float32(col) + 0.5) / float32(e.Width) * 2 * piF32
	dir = thetaPhiToDir(theta, phi)

	lum := luminance(e.Pixels[row*e.Width+col])
	sinTheta := sin32(theta)
	if sinTheta <= 0 {
		return dir, 0
	}
	pdf = lum * float32(e.Width*e.Height) / (2 * piF32 * piF32 * sinTheta * e.Total)
	return dir, pdf
}

// Pdf returns the solid-angle probability density of the given direction
// under this environment's importance distribution.
func (e *EnvMap) Pdf(dir remath.Vec3) float32 {
	if e.Width == 0 || e.Height == 0 || e.Total <= 0 {
		return 0
	}
	theta, phi := dirToThetaPhi(dir)
	row := int(theta / piF32 * float32(e.Height))
	col := int(phi / (2 * piF32) * float32(e.Width))
	row = clampInt(row, 0, e.Height-1)
	col = clampInt(col, 0, e.Width-1)

	sinTheta := sin32(theta)
	if sinTheta <= 0 {
		return 0
	}
	lum := luminance(e.Pixels[row*e.Width+col])
	return lum * float32(e.Width*e.Height) / (2 * piF32 * piF32 * sinTheta * e.Total)
}

// Eval returns the nearest-texel radiance in the given direction (the
// environment's "visible background" contribution for primary/missed rays).
func (e *EnvMap) Eval(dir remath.Vec3) remath.Vec3 {
	if e.Width == 0 || e.Height == 0 {
		return remath.Vec3{}
	}
	theta, phi := dirToThetaPhi(dir)
	row := clampInt(int(theta/piF32*float32(e.Height)), 0, e.Height-1)
	col := clampInt(int(phi/(2*piF32)*float32(e.Width)), 0, e.Width-1)
	return e.Pixels[row*e.Width+col]
}

func dirToThetaPhi(dir remath.Vec3) (theta, phi float32) {
	y := dir.Y
	if y > 1 {
		y = 1
	}
	if y < -1 {
		y = -1
	}
	theta = float32(math.Acos(float64(y)))
	phi = float32(math.Atan2(float64(dir.Z), float64(dir.X)))
	if phi < 0 {
		phi += 2 * piF32
	}
	return theta, phi
}

func thetaPhiToDir(theta, phi float32) remath.Vec3 {
	sinTheta := sin32(theta)
	return remath.Vec3{
		X: sinTheta * cos32(phi),
		Y: cos32(theta),
		Z: sinTheta * sin32(phi),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lowerBound returns the largest i such that cdf[i] <= u < cdf[i+1],
// i.e. the std::lower_bound-style inversion spec §4.5 calls for.
func lowerBound(cdf []float32, u float32) int {
	i := sort.Search(len(cdf), func(i int) bool { return cdf[i] > u })
	if i == 0 {
		return 0
	}
	return i - 1
}

func lowerBoundSlice(cdf []float32, u float32) int {
	return lowerBound(cdf, u)
}
