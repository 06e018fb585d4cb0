package renderer

import "time"

type WorkerStat struct {
	// The worker id.
	Id string

	// Number of pixels assigned to and completed by this worker.
	AssignedPixels  uint32
	CompletedPixels uint32

	// Render time for the assigned chunk.
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Total render time for the entire frame.
	RenderTime time.Duration
}
