package tracer

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/lapidary/lustre/scene"
	"github.com/lapidary/lustre/types"
)

type LightingModel uint8

// Ambient lighting models applied to rays that leave the scene after at
// least one bounce.
const (
	// Intensity falls off with the cosine of the angle to the reverse
	// view direction, with a shadow cone directly behind the viewer.
	Cosine LightingModel = iota

	// Binary: full intensity for rays pointing back toward the viewer
	// side, zero otherwise.
	Isometric
)

// Config for the light transport engine. The scene and camera referenced
// here must stay unchanged for the lifetime of the tracer.
type Config struct {
	Scene  *scene.Scene
	Camera *scene.Camera

	// Bounce budget for primary rays.
	MaxBounces int

	LightingModel  LightingModel
	LightIntensity float32

	// Color returned for primary rays that miss the scene.
	BackgroundColor types.Vec3

	// Half-angle of the ambient shadow cone, degrees (Cosine model only).
	HeadShadowDeg float32

	// Weight applied to the reflection term for exterior hits. Interior
	// hits always weight the reflection term fully.
	SurfaceReflectance float32

	// Geometry-specific guard: when enabled, rays exiting the solid
	// through a facet whose interior normal points along CutGuardAxis
	// skip the refraction branch. This matches the cut convention of the
	// modeled stone and is not general physics.
	CutGuardEnabled bool
	CutGuardAxis    types.Vec3
}

// The light transport engine. Trace is pure and carries no state besides
// the immutable config, so a single Tracer may be shared by any number
// of workers.
type Tracer struct {
	cfg     Config
	lookDir types.Vec3
}

// Create a new tracer for the given config.
func New(cfg Config) *Tracer {
	return &Tracer{
		cfg:     cfg,
		lookDir: cfg.Camera.LookDir(),
	}
}

// Trace returns the radiance arriving at the ray origin along -ray. Each
// recursion step consumes one unit of the bounce budget.
func (t *Tracer) Trace(r scene.Ray, bounces int) types.Vec3 {
	info, ok := t.cfg.Scene.Intersect(r, t.cfg.Scene.ShadowBias)
	if !ok {
		if bounces == t.cfg.MaxBounces {
			// Primary rays that miss show the background.
			return t.cfg.BackgroundColor
		}
		return t.ambient(r)
	}

	// Emissive hits terminate the path even with an exhausted budget.
	if info.Material.Type == scene.LightMaterial {
		return info.Material.Color
	}
	if bounces == 0 {
		return types.Vec3{}
	}

	switch info.Material.Type {
	case scene.RefractiveMaterial:
		return t.shadeRefractive(r, info, bounces)
	case scene.DiffuseMaterial:
		// Fail loudly: a silent black here would be indistinguishable
		// from a valid zero-radiance result.
		panic("tracer: diffuse material shading is not implemented")
	default:
		panic(fmt.Sprintf("tracer: unknown material type %d", info.Material.Type))
	}
}

func (t *Tracer) shadeRefractive(r scene.Ray, info scene.HitInfo, bounces int) types.Vec3 {
	// Orient the normal against the incoming ray and pick the
	// incident/transmitted indices for entering vs. exiting the medium.
	normal := info.Normal
	etaI, etaT := float32(1.0), info.Material.IOR
	if !info.FrontFace {
		normal = normal.Neg()
		etaI, etaT = info.Material.IOR, 1.0
	}

	reflectance := fresnel(r.Direction(), normal, etaI, etaT)

	exitingCut := t.cfg.CutGuardEnabled && !info.FrontFace &&
		normal.Dot(t.cfg.CutGuardAxis) > 0.0

	var refractionColor types.Vec3
	if reflectance < 1.0 && !exitingCut {
		// Vector form of Snell's law: decompose the transmitted
		// direction into components perpendicular and parallel to the
		// normal.
		ratio := etaI / etaT
		cosI := r.Direction().Neg().Dot(normal)

		outPerp := r.Direction().Add(normal.Mul(cosI)).Mul(ratio)
		perpLenSq := outPerp.Dot(outPerp)
		if perpLenSq > 1.0 {
			perpLenSq = 1.0
		}
		outParallel := normal.Mul(-math32.Sqrt(1.0 - perpLenSq))

		refracted := scene.NewRay(info.Position, outPerp.Add(outParallel))
		refractionColor = t.Trace(refracted, bounces-1)
	}

	reflDir := r.Direction().Sub(normal.Mul(2.0 * r.Direction().Dot(normal)))
	reflected := scene.NewRay(info.Position, reflDir)
	reflectionColor := t.Trace(reflected, bounces-1)

	weight := t.cfg.SurfaceReflectance
	if !info.FrontFace {
		weight = 1.0
	}
	color := reflectionColor.Mul(reflectance * weight).
		Add(refractionColor.Mul(1.0 - reflectance))

	if !info.FrontFace {
		// Beer-Lambert absorption along the interior path segment.
		k := info.Material.Color
		color = color.MulVec(types.Vec3{
			math32.Exp(-k[0] * info.Distance),
			math32.Exp(-k[1] * info.Distance),
			math32.Exp(-k[2] * info.Distance),
		})
	}
	return color
}

// Ambient sky term for non-primary rays that leave the scene.
func (t *Tracer) ambient(r scene.Ray) types.Vec3 {
	switch t.cfg.LightingModel {
	case Isometric:
		if r.Direction().Dot(t.lookDir.Neg()) >= 0.0 {
			return types.Splat(t.cfg.LightIntensity)
		}
		return types.Vec3{}
	default:
		cos := -r.Direction().Dot(t.lookDir)
		if cos < 0.0 {
			cos = 0.0
		}
		// Shadow cone directly behind the viewer: without it the crown
		// facets mirror a bright spot that no real observer would see.
		if math32.Acos(cos)*180.0/math32.Pi < t.cfg.HeadShadowDeg {
			cos = 0.0
		}
		return types.Splat(t.cfg.LightIntensity).Mul(cos)
	}
}

// fresnel returns the unpolarized reflectance at the interface between
// media with refractive indices etaI (incident side) and etaT
// (transmitted side), averaging the s- and p-polarization terms. Beyond
// the critical angle the reflectance is exactly 1.
func fresnel(incoming, normal types.Vec3, etaI, etaT float32) float32 {
	cosI := incoming.Dot(normal)

	sinI2 := 1.0 - cosI*cosI
	if sinI2 < 0.0 {
		sinI2 = 0.0
	}
	sinT := etaI / etaT * math32.Sqrt(sinI2)
	if sinT >= 1.0 {
		// Total internal reflection.
		return 1.0
	}

	cosT2 := 1.0 - sinT*sinT
	if cosT2 < 0.0 {
		cosT2 = 0.0
	}
	cosT := math32.Sqrt(cosT2)
	cosIAbs := math32.Abs(cosI)

	rs := (etaT*cosIAbs - etaI*cosT) / (etaT*cosIAbs + etaI*cosT)
	rp := (etaI*cosIAbs - etaT*cosT) / (etaI*cosIAbs + etaT*cosT)
	return (rs*rs + rp*rp) / 2.0
}
