package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/lapidary/lustre/scene"
	"github.com/lapidary/lustre/types"
)

// Display mesh and acceleration structure statistics for the demo scene.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	gem, err := demoGem(ctx.Int("facets"), scene.NewRefractive(types.XYZ(1, 0, 1), 1.5, 0))
	if err != nil {
		return err
	}
	light, err := demoLight(types.Splat(1.0))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Mesh", "Triangles", "BVH nodes", "BVH leafs", "Max depth"})
	for _, row := range []struct {
		name string
		mesh *scene.Mesh
	}{
		{"gem", gem},
		{"light", light},
	} {
		stats := row.mesh.BvhStats()
		table.Append([]string{
			row.name,
			fmt.Sprintf("%d", row.mesh.TriangleCount()),
			fmt.Sprintf("%d", stats.Nodes),
			fmt.Sprintf("%d", stats.Leafs),
			fmt.Sprintf("%d", stats.MaxDepth),
		})
	}
	table.Render()

	return nil
}
