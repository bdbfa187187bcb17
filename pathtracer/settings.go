package pathtracer

import "render-engine/core"

// EnvironmentMode selects how the environment's contribution is sourced
// (spec §6's environment control-surface group: solid colour, a named
// preset, or a file path).
type EnvironmentMode int

const (
	EnvironmentSolidColor EnvironmentMode = iota
	EnvironmentPreset
	EnvironmentFile
)

// Settings is the control surface the driver exposes, split into the four
// groups spec §6 names. Every field in Structural except MaxSamples (plus
// Aperture/FocusDistance, the environment selection, and each light's
// state) resets accumulation on change; MaxSamples only caps how many
// samples TraceFrame accumulates. Display never resets — it only affects
// tone mapping.
type Settings struct {
	// Structural
	MaxDepth              int
	AntiAlias             bool
	FireflyClamp          bool
	RussianRoulette       bool
	NormalMapping         bool
	EmissiveEnabled       bool
	NEE                   bool
	EnvironmentEnabled    bool
	EnvironmentMultiplier float32
	FlatShading           bool
	RayEpsilon            float32
	MaxSamples            int // 0 means unlimited (spec §4.6 step 4)

	// Scene
	Aperture      float32
	FocusDistance float32

	// Environment
	EnvironmentMode  EnvironmentMode
	EnvironmentColor core.Color
	EnvironmentPreset string
	EnvironmentPath   string

	// Display (never resets accumulation)
	Exposure float32
	Gamma    float32
	ACES     bool
}

// DefaultSettings mirrors the reference implementation's defaults: NEE,
// Russian roulette, firefly clamping and ACES tone mapping all on, a
// middling ray epsilon, and gamma 2.2.
func DefaultSettings() Settings {
	return Settings{
		MaxDepth:              6,
		AntiAlias:             true,
		FireflyClamp:          true,
		RussianRoulette:       true,
		NormalMapping:         true,
		EmissiveEnabled:       true,
		NEE:                   true,
		EnvironmentEnabled:    true,
		EnvironmentMultiplier: 1,
		FlatShading:           false,
		RayEpsilon:            1e-4,

		Aperture:      0,
		FocusDistance: 10,

		EnvironmentMode:  EnvironmentSolidColor,
		EnvironmentColor: core.Color{R: 0.5, G: 0.7, B: 1.0, A: 1},

		Exposure: 0,
		Gamma:    2.2,
		ACES:     true,
	}
}
