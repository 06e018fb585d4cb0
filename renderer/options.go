package renderer

import (
	"github.com/lapidary/lustre/tracer"
	"github.com/lapidary/lustre/types"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples per pixel. Sample 0 shoots through the pixel
	// center; further samples jitter within the pixel footprint.
	SamplesPerPixel uint32

	// Bounce budget for primary rays.
	MaxBounces uint32

	// Size of the worker pool.
	NumThreads uint32

	// Ambient lighting model and its intensity.
	LightingModel  tracer.LightingModel
	LightIntensity float32

	// Color for primary rays that miss the scene.
	BackgroundColor types.Vec3

	// Half-angle of the ambient shadow cone in degrees (Cosine model).
	HeadShadowDeg float32

	// Reflection weight for exterior surface hits.
	SurfaceReflectance float32

	// Cut-dependent refraction guard, see tracer.Config.
	CutGuardEnabled bool
	CutGuardAxis    types.Vec3
}

// Default render options.
func DefaultOptions() Options {
	return Options{
		FrameW:             1280,
		FrameH:             720,
		SamplesPerPixel:    1,
		MaxBounces:         16,
		NumThreads:         1,
		LightingModel:      tracer.Cosine,
		LightIntensity:     1.0,
		BackgroundColor:    types.Splat(0.1),
		HeadShadowDeg:      24.0,
		SurfaceReflectance: 1.0,
		CutGuardEnabled:    true,
		CutGuardAxis:       types.XYZ(0, 0, 1),
	}
}

// Validate the options. Called before any render starts.
func (o *Options) Validate() error {
	if o.FrameW == 0 || o.FrameH == 0 {
		return ErrInvalidFrameDims
	}
	if o.SamplesPerPixel == 0 {
		return ErrInvalidSampleCount
	}
	if o.NumThreads == 0 {
		return ErrInvalidThreadCount
	}
	return nil
}
