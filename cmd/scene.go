package cmd

import (
	"github.com/chewxy/math32"
	"github.com/urfave/cli"

	"github.com/lapidary/lustre/scene"
	"github.com/lapidary/lustre/types"
)

// Demo rig dimensions. The gem sits at the origin with its pavilion
// pointing down the -Z axis; an emissive panel hangs above the crown.
const (
	demoGirdleRadius  float32 = 1.0
	demoCrownHeight   float32 = 0.55
	demoPavilionDepth float32 = 1.1

	demoLightHeight   float32 = 3.0
	demoLightHalfSpan float32 = 2.0
)

// Build a faceted bipyramid gem mesh: a ring of girdle vertices joined
// to a crown apex above and a pavilion apex below. Stands in for an
// externally loaded stone so the binary renders without an asset
// pipeline.
func demoGem(facets int, material scene.Material) (*scene.Mesh, error) {
	vertices := make([]types.Vec3, 0, facets+2)
	vertices = append(vertices,
		types.XYZ(0, 0, demoCrownHeight),
		types.XYZ(0, 0, -demoPavilionDepth),
	)
	for i := 0; i < facets; i++ {
		angle := 2.0 * math32.Pi * float32(i) / float32(facets)
		vertices = append(vertices, types.XYZ(
			demoGirdleRadius*math32.Cos(angle),
			demoGirdleRadius*math32.Sin(angle),
			0,
		))
	}

	indices := make([]uint32, 0, facets*6)
	for i := 0; i < facets; i++ {
		g0 := uint32(2 + i)
		g1 := uint32(2 + (i+1)%facets)
		// Crown facet, wound so the normal points out and up.
		indices = append(indices, 0, g0, g1)
		// Pavilion facet, wound so the normal points out and down.
		indices = append(indices, 1, g1, g0)
	}

	return scene.NewMesh(vertices, indices, material)
}

// Build an emissive panel above the gem: a quad of two triangles facing
// down.
func demoLight(color types.Vec3) (*scene.Mesh, error) {
	s := demoLightHalfSpan
	vertices := []types.Vec3{
		types.XYZ(-s, -s, demoLightHeight),
		types.XYZ(s, -s, demoLightHeight),
		types.XYZ(s, s, demoLightHeight),
		types.XYZ(-s, s, demoLightHeight),
	}
	indices := []uint32{0, 2, 1, 0, 3, 2}
	return scene.NewMesh(vertices, indices, scene.NewLight(color))
}

// Build the demo scene and a camera looking at the stone from the front.
func demoScene(ctx *cli.Context) (*scene.Scene, *scene.Camera, error) {
	gemMaterial := scene.NewRefractive(
		types.XYZ(
			float32(ctx.Float64("absorb-r")),
			float32(ctx.Float64("absorb-g")),
			float32(ctx.Float64("absorb-b")),
		),
		float32(ctx.Float64("ior")),
		float32(ctx.Float64("dispersion")),
	)

	gem, err := demoGem(ctx.Int("facets"), gemMaterial)
	if err != nil {
		return nil, nil, err
	}
	light, err := demoLight(types.Splat(1.0))
	if err != nil {
		return nil, nil, err
	}

	sc := scene.NewScene()
	if err := sc.AddMesh(gem); err != nil {
		return nil, nil, err
	}
	if err := sc.AddMesh(light); err != nil {
		return nil, nil, err
	}

	width := float32(ctx.Int("width"))
	height := float32(ctx.Int("height"))
	camera, err := scene.NewCamera(
		types.XYZ(0, -3.5, 0.9),
		types.XYZ(0, 3.5, -0.9),
		types.XYZ(0, 0, 1),
		45.0,
		width/height,
		1.0,
	)
	if err != nil {
		return nil, nil, err
	}
	return sc, camera, nil
}
