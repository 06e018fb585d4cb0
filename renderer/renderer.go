package renderer

import (
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lapidary/lustre/log"
	"github.com/lapidary/lustre/scene"
	"github.com/lapidary/lustre/tracer"
	"github.com/lapidary/lustre/types"
)

// Seed for the deterministic pixel shuffle. Fixing it makes the work
// distribution reproducible across renders; the image itself stays
// per-sample stochastic when jitter is enabled.
const shuffleSeed int64 = 0x123456789ABCDEF

// Base seed for the per-worker jitter RNGs. Wider than int64; converted
// per worker after the offset is applied.
const jitterSeed uint64 = 0x9E3779B97F4A7C15

type MsgType uint8

const (
	// A finished pixel.
	PixelMsg MsgType = iota

	// Abort sentinel. Reserved for consumers that want an in-band
	// cancellation marker; the scheduler never emits it.
	AbortMsg
)

// A message streamed to the render consumer. Messages arrive in no
// particular order across workers; consumers must key on X/Y and should
// discard messages whose Epoch does not match the current render.
type Msg struct {
	Type  MsgType
	X, Y  uint32
	Color types.Vec3
	Epoch uint64
}

// Shared cancellation flag. Workers poll it at per-sample granularity
// and exit opportunistically; no acknowledgment is required.
type AbortSignal struct {
	aborted atomic.Bool
}

// Request cancellation of the render this signal belongs to.
func (s *AbortSignal) Abort() {
	s.aborted.Store(true)
}

// Report whether cancellation was requested.
func (s *AbortSignal) Aborted() bool {
	return s.aborted.Load()
}

// Renderer drives the light transport engine over a pixel grid. The
// scene and camera are treated as immutable for the lifetime of each
// render; callers that change either should create a new render (the
// epoch tag on emitted messages lets consumers discard strays from a
// superseded render).
type Renderer struct {
	sc     *scene.Scene
	camera *scene.Camera
	opts   Options

	logger log.Logger
	epoch  atomic.Uint64

	statsMu sync.Mutex
	stats   FrameStats
}

// Create a new renderer. Fails fast on malformed configuration so that
// no render ever starts from an invalid setup.
func New(sc *scene.Scene, camera *scene.Camera, opts Options) (*Renderer, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if camera == nil {
		return nil, ErrCameraNotDefined
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		sc:     sc,
		camera: camera,
		opts:   opts,
		logger: log.New("renderer"),
	}, nil
}

// Get the statistics of the last completed render.
func (r *Renderer) Stats() FrameStats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}

// Render the frame to completion and return the pixel buffer as
// row-major RGB float triples.
func (r *Renderer) Render() []float32 {
	msgs, _ := r.RenderStreaming()

	buf := make([]float32, int(r.opts.FrameW)*int(r.opts.FrameH)*3)
	for msg := range msgs {
		if msg.Type != PixelMsg {
			continue
		}
		i := (int(msg.Y)*int(r.opts.FrameW) + int(msg.X)) * 3
		buf[i] = msg.Color[0]
		buf[i+1] = msg.Color[1]
		buf[i+2] = msg.Color[2]
	}
	return buf
}

// RenderStreaming starts an asynchronous render and returns the message
// stream together with its cancellation handle. The channel is closed
// once all workers exit, whether the render ran to completion or was
// aborted. The channel buffers the entire frame so workers never block
// on a slow consumer; consumers that care about latency should drain a
// bounded number of messages per tick.
func (r *Renderer) RenderStreaming() (<-chan Msg, *AbortSignal) {
	signal := &AbortSignal{}
	return r.renderStreaming(signal), signal
}

func (r *Renderer) renderStreaming(signal *AbortSignal) <-chan Msg {
	epoch := r.epoch.Add(1)

	// Snapshot the configuration for the lifetime of this render.
	opts := r.opts
	tr := tracer.New(tracer.Config{
		Scene:              r.sc,
		Camera:             r.camera,
		MaxBounces:         int(opts.MaxBounces),
		LightingModel:      opts.LightingModel,
		LightIntensity:     opts.LightIntensity,
		BackgroundColor:    opts.BackgroundColor,
		HeadShadowDeg:      opts.HeadShadowDeg,
		SurfaceReflectance: opts.SurfaceReflectance,
		CutGuardEnabled:    opts.CutGuardEnabled,
		CutGuardAxis:       opts.CutGuardAxis,
	})

	frameW := int(opts.FrameW)
	frameH := int(opts.FrameH)

	// Deterministically shuffled pixel list, statically partitioned
	// into one contiguous chunk per worker.
	pixels := make([]int, frameW*frameH)
	for i := range pixels {
		pixels[i] = i
	}
	rng := rand.New(rand.NewSource(shuffleSeed))
	rng.Shuffle(len(pixels), func(i, j int) {
		pixels[i], pixels[j] = pixels[j], pixels[i]
	})

	topLeft, vpWidth, vpHeight := r.camera.Viewport()
	pixelDx := vpWidth.Mul(1.0 / float32(frameW))
	pixelDy := vpHeight.Mul(1.0 / float32(frameH))

	out := make(chan Msg, len(pixels))

	numWorkers := int(opts.NumThreads)
	chunkLen := (len(pixels) + numWorkers - 1) / numWorkers

	stats := FrameStats{Workers: make([]WorkerStat, 0, numWorkers)}
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		lo := w * chunkLen
		if lo >= len(pixels) {
			break
		}
		hi := lo + chunkLen
		if hi > len(pixels) {
			hi = len(pixels)
		}

		stats.Workers = append(stats.Workers, WorkerStat{
			Id:             fmt.Sprintf("worker-%d", w),
			AssignedPixels: uint32(hi - lo),
		})
		stat := &stats.Workers[len(stats.Workers)-1]

		wg.Add(1)
		go func(chunk []int, workerSeed int64, stat *WorkerStat) {
			defer wg.Done()
			workerStart := time.Now()
			defer func() {
				stat.RenderTime = time.Since(workerStart)
			}()

			rng := rand.New(rand.NewSource(workerSeed))
			spp := int(opts.SamplesPerPixel)

			for _, p := range chunk {
				x := p % frameW
				y := p / frameW

				var sum types.Vec3
				for s := 0; s < spp; s++ {
					if signal.Aborted() {
						return
					}

					pos := topLeft.
						Add(pixelDx.Mul(float32(x) + 0.5)).
						Add(pixelDy.Mul(float32(y) + 0.5))
					if s != 0 {
						pos = pos.
							Add(pixelDx.Mul(rng.Float32() - 0.5)).
							Add(pixelDy.Mul(rng.Float32() - 0.5))
					}

					ray := scene.NewRay(r.camera.Position, pos.Sub(r.camera.Position))
					sum = sum.Add(tr.Trace(ray, int(opts.MaxBounces)))
				}

				out <- Msg{
					Type:  PixelMsg,
					X:     uint32(x),
					Y:     uint32(y),
					Color: sum.Mul(1.0 / float32(spp)),
					Epoch: epoch,
				}
				stat.CompletedPixels++
			}
		}(pixels[lo:hi], int64(jitterSeed+uint64(w)), stat)
	}

	go func() {
		wg.Wait()

		// Publish stats before closing the stream so consumers can read
		// them as soon as the channel drains.
		stats.RenderTime = time.Since(start)
		r.statsMu.Lock()
		r.stats = stats
		r.statsMu.Unlock()

		close(out)

		r.logger.Infof("epoch %d: rendered %dx%d frame with %d workers in %s",
			epoch, frameW, frameH, len(stats.Workers), stats.RenderTime)
	}()

	return out
}
