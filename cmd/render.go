package cmd

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/lapidary/lustre/renderer"
	"github.com/lapidary/lustre/tracer"
	"github.com/lapidary/lustre/types"
)

// Render a still frame of the demo gem scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.DefaultOptions()
	opts.FrameW = uint32(ctx.Int("width"))
	opts.FrameH = uint32(ctx.Int("height"))
	opts.SamplesPerPixel = uint32(ctx.Int("spp"))
	opts.MaxBounces = uint32(ctx.Int("num-bounces"))
	opts.NumThreads = uint32(ctx.Int("num-threads"))
	opts.LightIntensity = float32(ctx.Float64("light-intensity"))
	opts.BackgroundColor = types.Splat(float32(ctx.Float64("background")))

	switch ctx.String("lighting") {
	case "cosine":
		opts.LightingModel = tracer.Cosine
	case "isometric":
		opts.LightingModel = tracer.Isometric
	default:
		return fmt.Errorf("unsupported lighting model %q", ctx.String("lighting"))
	}

	sc, camera, err := demoScene(ctx)
	if err != nil {
		return err
	}

	r, err := renderer.New(sc, camera, opts)
	if err != nil {
		return err
	}

	logger.Noticef("rendering %dx%d frame at %d spp", opts.FrameW, opts.FrameH, opts.SamplesPerPixel)
	frame := r.Render()

	if err = writeFrame(frame, opts.FrameW, opts.FrameH, ctx.String("out")); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s", ctx.String("out"))

	displayFrameStats(r.Stats())
	return nil
}

// Gamma correct the linear frame buffer and encode it as an 8-bit PNG.
func writeFrame(frame []float32, frameW, frameH uint32, path string) error {
	img := image.NewRGBA(image.Rect(0, 0, int(frameW), int(frameH)))
	for y := 0; y < int(frameH); y++ {
		for x := 0; x < int(frameW); x++ {
			i := (y*int(frameW) + x) * 3
			c := renderer.GammaCorrect(types.XYZ(frame[i], frame[i+1], frame[i+2]))
			img.SetRGBA(x, y, color.RGBA{
				R: quantize(c[0]),
				G: quantize(c[1]),
				B: quantize(c[2]),
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func quantize(v float32) uint8 {
	if v < 0.0 {
		v = 0.0
	}
	if v > 1.0 {
		v = 1.0
	}
	return uint8(v*254.99 + 0.5)
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Assigned", "Completed", "Render time"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.AssignedPixels),
			fmt.Sprintf("%d", stat.CompletedPixels),
			fmt.Sprintf("%s", stat.RenderTime),
		})
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%s", stats.RenderTime)})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
