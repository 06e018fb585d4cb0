package tracer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/chewxy/math32"

	"github.com/lapidary/lustre/scene"
	"github.com/lapidary/lustre/types"
)

func testCamera(t *testing.T) *scene.Camera {
	t.Helper()
	camera, err := scene.NewCamera(
		types.Vec3{}, types.XYZ(0, 0, 1), types.XYZ(0, 1, 0), 90, 1, 1,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return camera
}

func quadMesh(t *testing.T, z float32, material scene.Material) *scene.Mesh {
	t.Helper()
	mesh, err := scene.NewMesh(
		[]types.Vec3{{-1, -1, z}, {1, -1, z}, {1, 1, z}, {-1, 1, z}},
		[]uint32{0, 1, 2, 0, 2, 3},
		material,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return mesh
}

func testConfig(t *testing.T, sc *scene.Scene, maxBounces int) Config {
	t.Helper()
	return Config{
		Scene:              sc,
		Camera:             testCamera(t),
		MaxBounces:         maxBounces,
		LightingModel:      Cosine,
		LightIntensity:     1.0,
		BackgroundColor:    types.Splat(0.25),
		HeadShadowDeg:      24.0,
		SurfaceReflectance: 1.0,
		CutGuardEnabled:    true,
		CutGuardAxis:       types.XYZ(0, 0, 1),
	}
}

func sceneWith(t *testing.T, meshes ...*scene.Mesh) *scene.Scene {
	t.Helper()
	sc := scene.NewScene()
	for _, m := range meshes {
		if err := sc.AddMesh(m); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return sc
}

func TestFresnelReflectanceRange(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	indexPairs := [][2]float32{
		{1.0, 1.5}, {1.5, 1.0}, {1.0, 2.42}, {1.33, 1.0}, {1.0, 1.0},
	}
	for _, pair := range indexPairs {
		for i := 0; i < 200; i++ {
			theta := rng.Float32() * math32.Pi / 2
			incoming := types.XYZ(math32.Sin(theta), 0, -math32.Cos(theta))
			normal := types.XYZ(0, 0, 1)

			r := fresnel(incoming, normal, pair[0], pair[1])
			if r < 0.0 || r > 1.0 {
				t.Fatalf("eta %v theta %f: reflectance %f out of [0, 1]", pair, theta, r)
			}
		}
	}
}

func TestFresnelTotalInternalReflection(t *testing.T) {
	// Critical angle for 1.5 -> 1.0 is asin(1/1.5) ~= 41.8 degrees.
	normal := types.XYZ(0, 0, 1)

	specs := []struct {
		thetaDeg float32
		expTIR   bool
	}{
		{30, false},
		{40, false},
		{42, true}, // just past the critical angle
		{50, true},
		{80, true},
	}
	for index, s := range specs {
		theta := s.thetaDeg * math32.Pi / 180
		incoming := types.XYZ(math32.Sin(theta), 0, -math32.Cos(theta))

		r := fresnel(incoming, normal, 1.5, 1.0)
		if s.expTIR && r != 1.0 {
			t.Fatalf("[spec %d] expected total internal reflection; got %f", index, r)
		}
		if !s.expTIR && r >= 1.0 {
			t.Fatalf("[spec %d] expected partial reflection; got %f", index, r)
		}
	}
}

func TestTraceBounceBudget(t *testing.T) {
	gem := quadMesh(t, 2, scene.NewRefractive(types.XYZ(1, 0, 1), 1.5, 0))
	tr := New(testConfig(t, sceneWith(t, gem), 0))

	// With no bounce budget a hit on a non-emissive material is black.
	got := tr.Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 0)
	if got != (types.Vec3{}) {
		t.Fatalf("expected black for exhausted bounce budget; got %v", got)
	}
}

func TestTraceEmissiveIgnoresBounceBudget(t *testing.T) {
	emission := types.XYZ(0.9, 0.8, 0.7)
	light := quadMesh(t, 2, scene.NewLight(emission))
	tr := New(testConfig(t, sceneWith(t, light), 0))

	got := tr.Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), 0)
	if got != emission {
		t.Fatalf("expected emission %v regardless of budget; got %v", emission, got)
	}
}

func TestTraceEmissiveQuad(t *testing.T) {
	emission := types.XYZ(0.9, 0.8, 0.7)
	light := quadMesh(t, 2, scene.NewLight(emission))
	cfg := testConfig(t, sceneWith(t, light), 1)
	tr := New(cfg)

	// A primary ray toward the quad sees its emission.
	got := tr.Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), cfg.MaxBounces)
	if got != emission {
		t.Fatalf("expected emission %v; got %v", emission, got)
	}

	// A primary ray that misses sees the background.
	got = tr.Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), cfg.MaxBounces)
	if got != cfg.BackgroundColor {
		t.Fatalf("expected background %v; got %v", cfg.BackgroundColor, got)
	}
}

func TestTraceOcclusionOrder(t *testing.T) {
	near := quadMesh(t, 2, scene.NewLight(types.XYZ(1, 0, 0)))
	far := quadMesh(t, 4, scene.NewLight(types.XYZ(0, 0, 1)))
	cfg := testConfig(t, sceneWith(t, far, near), 1)
	tr := New(cfg)

	got := tr.Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), cfg.MaxBounces)
	if got != types.XYZ(1, 0, 0) {
		t.Fatalf("expected the occluding quad's emission; got %v", got)
	}
}

func TestTraceDiffuseFailsLoudly(t *testing.T) {
	diffuse := quadMesh(t, 2, scene.NewDiffuse(types.XYZ(0.5, 0.5, 0.5)))
	cfg := testConfig(t, sceneWith(t, diffuse), 4)
	tr := New(cfg)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected diffuse shading to panic")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "not implemented") {
			t.Fatalf("expected unimplemented panic; got %v", r)
		}
	}()
	tr.Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), cfg.MaxBounces)
}

func TestAmbientCosineModel(t *testing.T) {
	cfg := testConfig(t, sceneWith(t), 4)
	cfg.LightIntensity = 2.0
	tr := New(cfg)

	// Non-primary rays that miss evaluate the ambient model. The camera
	// looks down +Z, so a ray straight back at the viewer falls inside
	// the head-shadow cone and contributes nothing.
	got := tr.Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), cfg.MaxBounces-1)
	if got != (types.Vec3{}) {
		t.Fatalf("expected zero inside the head-shadow cone; got %v", got)
	}

	// A ray at 45 degrees to the reverse view direction is outside the
	// cone and scales with the cosine.
	ray := scene.NewRay(types.Vec3{}, types.XYZ(1, 0, -1))
	got = tr.Trace(ray, cfg.MaxBounces-1)
	want := types.Splat(cfg.LightIntensity).Mul(math32.Sqrt(2) / 2)
	if got.Sub(want).Len() > 1e-4 {
		t.Fatalf("expected %v; got %v", want, got)
	}

	// Rays pointing away from the viewer get nothing.
	got = tr.Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), cfg.MaxBounces-1)
	if got != (types.Vec3{}) {
		t.Fatalf("expected zero for a forward ray; got %v", got)
	}
}

func TestAmbientIsometricModel(t *testing.T) {
	cfg := testConfig(t, sceneWith(t), 4)
	cfg.LightingModel = Isometric
	cfg.LightIntensity = 3.0
	tr := New(cfg)

	got := tr.Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), cfg.MaxBounces-1)
	if got != types.Splat(3.0) {
		t.Fatalf("expected full intensity toward the viewer; got %v", got)
	}

	got = tr.Trace(scene.NewRay(types.Vec3{}, types.XYZ(0, 0, 1)), cfg.MaxBounces-1)
	if got != (types.Vec3{}) {
		t.Fatalf("expected zero away from the viewer; got %v", got)
	}
}

func TestTraceRefractiveConservesRange(t *testing.T) {
	// A gem lit only by the ambient term: traced radiance must stay
	// finite and non-negative for a bundle of primary rays.
	gem := quadMesh(t, 2, scene.NewRefractive(types.XYZ(1, 0, 1), 1.5, 0))
	cfg := testConfig(t, sceneWith(t, gem), 8)
	tr := New(cfg)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		dir := types.XYZ(
			(rng.Float32()*2-1)*0.4,
			(rng.Float32()*2-1)*0.4,
			1,
		)
		got := tr.Trace(scene.NewRay(types.Vec3{}, dir), cfg.MaxBounces)
		for axis := 0; axis < 3; axis++ {
			if math32.IsNaN(got[axis]) || math32.IsInf(got[axis], 0) || got[axis] < 0 {
				t.Fatalf("ray %d: non-physical radiance %v", i, got)
			}
		}
	}
}
