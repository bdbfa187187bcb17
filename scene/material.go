package scene

import "render-engine/core"

// MaterialKind is the closed set of surface scattering models the
// path-tracing core dispatches on (spec §3): a microfacet GGX dielectric/
// conductor mix, a perfect mirror, or a refractive dielectric interface.
type MaterialKind int

const (
	MaterialGGX MaterialKind = iota
	MaterialMirror
	MaterialDielectric
)

// Material describes a surface's appearance and scattering behaviour.
// Consolidates what used to be two separate Phong/PBR-uniform structs
// (scene.Material and materials.Material) into the single model the path
// tracer's shading records are built from.
type Material struct {
	Name string

	BaseColor     core.Color // base reflectance / transmittance tint
	EmissiveColor core.Color // self-emitted radiance; additive, HDR values allowed

	Kind      MaterialKind
	Roughness float32 // 0 = smooth, 1 = fully rough (GGX only)
	Metallic  float32 // 0 = dielectric, 1 = fully metallic (GGX only)
	IOR       float32 // index of refraction (Dielectric; also feeds GGX's F0)

	AlphaClip bool // below-threshold albedo alpha makes this triangle transparent to shadow rays

	// Optional textures; nil means "use the scalar/color fields directly."
	AlbedoTexture    *Texture
	EmissiveTexture  *Texture
	NormalTexture    *Texture
	RoughnessTexture *Texture
	MetallicTexture  *Texture
}

// DefaultMaterial returns a plain white, non-metallic GGX material with
// roughness 0.9.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "Default",
		BaseColor: core.ColorWhite,
		Kind:      MaterialGGX,
		Roughness: 0.9,
		Metallic:  0,
		IOR:       1.5,
	}
}

// NewPBRMaterial creates a GGX material with the given base color,
// metallic and roughness.
func NewPBRMaterial(name string, baseColor core.Color, metallic, roughness float32) *Material {
	return &Material{
		Name:      name,
		BaseColor: baseColor,
		Kind:      MaterialGGX,
		Metallic:  metallic,
		Roughness: roughness,
		IOR:       1.5,
	}
}

// NewMirrorMaterial creates a delta-reflective mirror material.
func NewMirrorMaterial(name string, tint core.Color) *Material {
	return &Material{Name: name, BaseColor: tint, Kind: MaterialMirror}
}

// NewDielectricMaterial creates a refractive glass-like material.
func NewDielectricMaterial(name string, tint core.Color, ior float32) *Material {
	return &Material{Name: name, BaseColor: tint, Kind: MaterialDielectric, IOR: ior}
}

// NewEmissiveMaterial creates a diffuse material with self-emitted radiance,
// used to author area lights as ordinary mesh triangles.
func NewEmissiveMaterial(name string, emissive core.Color) *Material {
	return &Material{
		Name:          name,
		BaseColor:     core.ColorBlack,
		EmissiveColor: emissive,
		Kind:          MaterialGGX,
		Roughness:     1,
	}
}
