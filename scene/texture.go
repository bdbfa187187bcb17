package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	remath "render-engine/math"
)

// Texture holds CPU-side pixel data for a 2D texture.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
	// GLID holds an OpenGL texture object ID; no code in this module sets it.
	GLID uint32
}

// LoadTexture reads a PNG or JPEG file from disk and returns a CPU-side Texture.
// The image is converted to RGBA8 automatically.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	// Convert to RGBA8
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}

	return &Texture{
		Name:   path,
		Width:  w,
		Height: h,
		Pixels: rgba.Pix,
	}, nil
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// LoadHDRImage reads an environment map for image-based lighting
// (spec §6's environment-source contract). Files ending in .tif/.tiff are
// decoded through golang.org/x/image/tiff; any other extension goes through
// image.Decode (PNG/JPEG). Pixel values are taken as already linear. Every
// channel is read through color.Color.RGBA and scaled to [0,1], so radiance
// above 1 is not preserved; there is no Radiance (.hdr) reader.
func LoadHDRImage(path string) (width, height int, pixels []remath.Vec3, err error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		return 0, 0, nil, fmt.Errorf("open env map %q: %w", path, openErr)
	}
	defer f.Close()

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tiff") || strings.EqualFold(filepath.Ext(path), ".tif") {
		img, err = tiff.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode env map %q: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]remath.Vec3, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA() returns 16-bit-scaled premultiplied-alpha-free components
			// for color models without alpha; normalize to [0,1] linear.
			out[y*w+x] = remath.Vec3{
				X: float32(r) / 65535.0,
				Y: float32(g) / 65535.0,
				Z: float32(b) / 65535.0,
			}
		}
	}
	return w, h, out, nil
}
