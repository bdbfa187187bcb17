package pathtracer

import (
	"runtime"
	"sync"

	"render-engine/core"
	remath "render-engine/math"
	"render-engine/sampling"
	"render-engine/scene"
)

// Driver owns the accumulation buffer and the per-field change-detection
// snapshot, and dispatches one sample per pixel across row bands each
// frame (spec §4.6, §5's concurrency model: disjoint rows, no
// inter-thread synchronisation needed during a sample).
type Driver struct {
	Accum    *AccumBuffer
	Settings Settings
	Scene    *Scene

	snapshot *frameSnapshot
}

func NewDriver(width, height int, sc *Scene, settings Settings) *Driver {
	return &Driver{
		Accum:    NewAccumBuffer(width, height),
		Settings: settings,
		Scene:    sc,
	}
}

// frameSnapshot is the per-field state the change detector compares
// (spec §4.6 step 3): camera position/view matrix, each light's state, the
// environment selection and solid colour, the environment file path, the
// aperture and focus distance, and every integrator-affecting setting.
type frameSnapshot struct {
	cameraPos  remath.Vec3
	viewMatrix remath.Mat4
	lights     []scene.Light

	envMode  EnvironmentMode
	envColor core.Color
	envPath  string

	aperture      float32
	focusDistance float32

	maxDepth              int
	antiAlias             bool
	fireflyClamp          bool
	russianRoulette       bool
	normalMapping         bool
	emissiveEnabled       bool
	nee                   bool
	environmentEnabled    bool
	environmentMultiplier float32
	flatShading           bool
	rayEpsilon            float32
}

func takeSnapshot(cam *scene.OrbitCamera, lights []*scene.Light, s *Settings) frameSnapshot {
	lightCopies := make([]scene.Light, len(lights))
	for i, l := range lights {
		lightCopies[i] = *l
	}
	return frameSnapshot{
		cameraPos:  cam.Position,
		viewMatrix: cam.GetViewMatrix(),
		lights:     lightCopies,

		envMode:  s.EnvironmentMode,
		envColor: s.EnvironmentColor,
		envPath:  s.EnvironmentPath,

		aperture:      s.Aperture,
		focusDistance: s.FocusDistance,

		maxDepth:              s.MaxDepth,
		antiAlias:             s.AntiAlias,
		fireflyClamp:          s.FireflyClamp,
		russianRoulette:       s.RussianRoulette,
		normalMapping:         s.NormalMapping,
		emissiveEnabled:       s.EmissiveEnabled,
		nee:                   s.NEE,
		environmentEnabled:    s.EnvironmentEnabled,
		environmentMultiplier: s.EnvironmentMultiplier,
		flatShading:           s.FlatShading,
		rayEpsilon:            s.RayEpsilon,
	}
}

func (a frameSnapshot) equals(b frameSnapshot) bool {
	if a.cameraPos != b.cameraPos || a.viewMatrix != b.viewMatrix {
		return false
	}
	if len(a.lights) != len(b.lights) {
		return false
	}
	for i := range a.lights {
		if a.lights[i] != b.lights[i] {
			return false
		}
	}
	if a.envMode != b.envMode || a.envColor != b.envColor || a.envPath != b.envPath {
		return false
	}
	if a.aperture != b.aperture || a.focusDistance != b.focusDistance {
		return false
	}
	return a.maxDepth == b.maxDepth &&
		a.antiAlias == b.antiAlias &&
		a.fireflyClamp == b.fireflyClamp &&
		a.russianRoulette == b.russianRoulette &&
		a.normalMapping == b.normalMapping &&
		a.emissiveEnabled == b.emissiveEnabled &&
		a.nee == b.nee &&
		a.environmentEnabled == b.environmentEnabled &&
		a.environmentMultiplier == b.environmentMultiplier &&
		a.flatShading == b.flatShading &&
		a.rayEpsilon == b.rayEpsilon
}

// CheckReset compares the current frame's state against the last observed
// snapshot and zeroes the accumulation buffer on any inequality, per spec
// §4.6 step 3. Returns true iff a reset happened.
func (d *Driver) CheckReset(cam *scene.OrbitCamera, lights []*scene.Light) bool {
	snap := takeSnapshot(cam, lights, &d.Settings)
	reset := d.snapshot == nil || !snap.equals(*d.snapshot)
	d.snapshot = &snap
	if reset {
		d.Accum.Reset()
	}
	return reset
}

// Resize recreates the accumulation buffer at the new viewport dimensions.
func (d *Driver) Resize(width, height int) {
	d.Accum.Resize(width, height)
}

// TraceFrame dispatches exactly one sample per pixel, partitioning rows
// into contiguous bands across runtime.NumCPU() goroutines, at most one per
// row (spec §4.6 step 4,
// §5's "no inter-thread synchronisation is needed because threads write
// disjoint accumulation rows"). It is a no-op once sampleCount has reached
// MaxSamples (0 meaning unlimited).
func (d *Driver) TraceFrame(cam *scene.OrbitCamera) {
	if d.Settings.MaxSamples > 0 && d.Accum.SampleCount >= d.Settings.MaxSamples {
		return
	}

	width, height := d.Accum.Width, d.Accum.Height
	sampleIndex := uint32(d.Accum.SampleCount)

	workers := runtime.NumCPU()
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}
	rowsPerWorker := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * rowsPerWorker
		y1 := y0 + rowsPerWorker
		if y1 > height {
			y1 = height
		}
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			d.traceRowBand(cam, y0, y1, width, height, sampleIndex)
		}(y0, y1)
	}
	wg.Wait()

	d.Accum.SampleCount++
}

func (d *Driver) traceRowBand(cam *scene.OrbitCamera, y0, y1, width, height int, sampleIndex uint32) {
	for y := y0; y < y1; y++ {
		for x := 0; x < width; x++ {
			pixelIndex := uint32(x + y*width)
			rng := sampling.NewRNG(pixelIndex, sampleIndex)
			radiance := TraceSample(d.Scene, &d.Settings, cam, &rng, x, y, width, height)
			if !vec3Finite(radiance) {
				continue // NaN/Inf guard: leave the accumulation cell unchanged
			}
			idx := y*width + x
			d.Accum.Accum[idx] = d.Accum.Accum[idx].Add(radiance)
		}
	}
}

// ToneMap renders the running mean into a top-row-first RGBA8 buffer
// (spec §4.6 step 5, §6's accumulation read-out contract).
func (d *Driver) ToneMap() []byte {
	out := make([]byte, d.Accum.Width*d.Accum.Height*4)
	for i := 0; i < d.Accum.Width*d.Accum.Height; i++ {
		mean := d.Accum.Mean(i)
		r, g, b := tonemapPixel(mean, &d.Settings)
		out[i*4+0] = r
		out[i*4+1] = g
		out[i*4+2] = b
		out[i*4+3] = 255
	}
	return out
}
