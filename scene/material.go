package scene

import "github.com/lapidary/lustre/types"

type MaterialType uint8

const (
	RefractiveMaterial MaterialType = iota
	DiffuseMaterial
	LightMaterial
)

// Defines a surface material. The material set is closed; the tracer
// dispatches on Type with an exhaustive switch.
type Material struct {
	// The type of the material.
	Type MaterialType

	// For refractive materials this is the volumetric absorption tint
	// (components in [0, +inf)); for lights it is the emission color.
	Color types.Vec3

	// Index of refraction (refractive materials only).
	IOR float32

	// Dispersion coefficient (refractive materials only). Stored for
	// wavelength-dependent rendering but not used by the base tracer.
	Dispersion float32
}

// Create a refractive gem material.
func NewRefractive(color types.Vec3, ior, dispersion float32) Material {
	return Material{
		Type:       RefractiveMaterial,
		Color:      color,
		IOR:        ior,
		Dispersion: dispersion,
	}
}

// Create a diffuse material. Shading for diffuse surfaces is not
// implemented; the tracer fails loudly when it reaches one.
func NewDiffuse(color types.Vec3) Material {
	return Material{
		Type:  DiffuseMaterial,
		Color: color,
	}
}

// Create an emissive material.
func NewLight(color types.Vec3) Material {
	return Material{
		Type:  LightMaterial,
		Color: color,
	}
}
