package renderer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

// CommandKind identifies a message sent to the render worker
type CommandKind int

const (
	UpdateScene CommandKind = iota
	UpdateRenderParams
	RequestFrame
)

func (k CommandKind) String() string {
	switch k {
	case UpdateScene:
		return "UpdateScene"
	case UpdateRenderParams:
		return "UpdateRenderParams"
	case RequestFrame:
		return "RequestFrame"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is a message to the render worker. Scene and Params are owned by
// the worker once sent.
type Command struct {
	Kind   CommandKind
	Scene  *scene.Scene // UpdateScene
	Params RenderParams // UpdateRenderParams
}

// ResponseKind identifies a message sent back by the render worker
type ResponseKind int

const (
	ProgressUpdate ResponseKind = iota
	FrameRendered
	FrameFailed
)

func (k ResponseKind) String() string {
	switch k {
	case ProgressUpdate:
		return "ProgressUpdate"
	case FrameRendered:
		return "FrameRendered"
	case FrameFailed:
		return "FrameFailed"
	default:
		return fmt.Sprintf("ResponseKind(%d)", int(k))
	}
}

// Response is a message from the render worker. Every progress update for a
// frame is sent before that frame's FrameRendered or FrameFailed.
type Response struct {
	Kind     ResponseKind
	Progress float64 // ProgressUpdate, fraction of rows done in [0,1]
	Frame    *Frame  // FrameRendered
	Err      error   // FrameFailed
}

// WorkerState is the lifecycle state of the render worker
type WorkerState int32

const (
	Idle      WorkerState = iota // No scene received yet
	Ready                        // Holding a scene and params
	Rendering                    // Executing the sampling loop for one frame
)

func (s WorkerState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Ready:
		return "Ready"
	case Rendering:
		return "Rendering"
	default:
		return fmt.Sprintf("WorkerState(%d)", int32(s))
	}
}

// progressUpdatesPerFrame bounds how many ProgressUpdate messages one frame emits
const progressUpdatesPerFrame = 50

// responseBuffer holds a full frame's worth of responses, so the worker never
// waits on a caller that polls slowly
const responseBuffer = progressUpdatesPerFrame + 14

// WorkerConfig contains configuration for the render worker
type WorkerConfig struct {
	NumWorkers int         // Row workers per frame (0 = use CPU count)
	Seed       int64       // Non-zero makes every frame reproducible; 0 draws a fresh seed per frame
	Logger     core.Logger // Logger for rendering output (nil = discard)
}

// DefaultWorkerConfig returns sensible default values
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		NumWorkers: 0,
		Seed:       0,
		Logger:     NewDefaultLogger(),
	}
}

// Worker owns the path tracer and processes commands strictly in arrival
// order. A frame request renders with the scene and params most recently
// received before it.
type Worker struct {
	commands  <-chan Command
	responses chan<- Response
	config    WorkerConfig
	logger    core.Logger
	pool      *WorkerPool

	scene  *scene.Scene
	params RenderParams
	state  atomic.Int32
	frames int
}

// NewWorker creates a worker reading commands and writing responses. The
// worker closes responses when Run returns.
func NewWorker(commands <-chan Command, responses chan<- Response, config WorkerConfig) *Worker {
	logger := config.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	w := &Worker{
		commands:  commands,
		responses: responses,
		config:    config,
		logger:    logger,
		pool:      NewWorkerPool(config.NumWorkers),
		params:    DefaultRenderParams(),
	}
	w.state.Store(int32(Idle))
	return w
}

// State returns the current lifecycle state; safe to call from any goroutine
func (w *Worker) State() WorkerState {
	return WorkerState(w.state.Load())
}

// Run blocks receiving commands until the command channel is closed. A panic
// inside the worker is recovered and returned as an error.
func (w *Worker) Run() (err error) {
	w.pool.Start()
	defer close(w.responses)
	defer w.pool.Stop()
	defer func() {
		if r := recover(); r != nil {
			w.logger.Printf("Render worker panicked: %v\n", r)
			err = fmt.Errorf("render worker panicked: %v", r)
		}
	}()

	w.logger.Printf("Render worker started with %d row workers\n", w.pool.GetNumWorkers())

	for cmd := range w.commands {
		w.handle(cmd)
	}

	w.logger.Printf("Render worker stopped after %d frames\n", w.frames)
	return nil
}

// handle applies a single command
func (w *Worker) handle(cmd Command) {
	switch cmd.Kind {
	case UpdateScene:
		w.scene = cmd.Scene
		if w.scene != nil {
			w.state.Store(int32(Ready))
		}
	case UpdateRenderParams:
		w.params = cmd.Params
	case RequestFrame:
		if w.scene == nil {
			// Nothing to render until a scene arrives
			return
		}
		w.state.Store(int32(Rendering))
		frame, err := w.renderFrame(w.scene, w.params)
		w.state.Store(int32(Ready))

		if err != nil {
			w.logger.Printf("Frame %d failed: %v\n", w.frames, err)
			w.responses <- Response{Kind: FrameFailed, Err: err}
			return
		}
		w.responses <- Response{Kind: FrameRendered, Frame: frame}
	default:
		w.logger.Printf("Ignoring unknown command %v\n", cmd.Kind)
	}
}

// sendProgress never blocks; a dropped update is superseded by the next one
func (w *Worker) sendProgress(fraction float64) {
	select {
	case w.responses <- Response{Kind: ProgressUpdate, Progress: fraction}:
	default:
	}
}

// frameSeed returns the seed the row generators of the next frame derive from
func (w *Worker) frameSeed() int64 {
	if w.config.Seed != 0 {
		return w.config.Seed
	}
	return time.Now().UnixNano() ^ int64(w.frames)<<32
}

// progressStep returns how many rows complete between progress updates
func progressStep(height int) int {
	return max(1, (height+progressUpdatesPerFrame-1)/progressUpdatesPerFrame)
}

// renderFrame runs the sampling loop for one frame, fanning rows out over the
// pool and keeping at most Capacity rows in flight
func (w *Worker) renderFrame(s *scene.Scene, params RenderParams) (*Frame, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	w.frames++
	startTime := time.Now()
	seed := w.frameSeed()

	w.logger.Printf("Frame %d: %s, %d samples/pixel, %d objects (using %d workers)...\n",
		w.frames, params.Resolution, params.SamplesPerPixel, s.GetPrimitiveCount(), w.pool.GetNumWorkers())

	frame := NewFrame(params.Resolution)
	job := &frameJob{
		tracer: NewPathTracer(s, params),
		frame:  frame,
		seed:   seed,
	}

	height := frame.Height
	step := progressStep(height)
	capacity := w.pool.Capacity()

	next, inFlight, done := 0, 0, 0
	for next < height && inFlight < capacity {
		w.pool.SubmitTask(RowTask{Row: next, job: job})
		next++
		inFlight++
	}

	totalSamples := 0
	var firstErr error
	for inFlight > 0 {
		result, ok := w.pool.GetResult()
		if !ok {
			return nil, fmt.Errorf("worker pool closed unexpectedly")
		}
		inFlight--
		done++

		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		totalSamples += result.Samples

		// Stop feeding rows after a failure and drain what is in flight
		if firstErr == nil && next < height {
			w.pool.SubmitTask(RowTask{Row: next, job: job})
			next++
			inFlight++
		}

		if firstErr == nil && done%step == 0 {
			w.sendProgress(float64(done) / float64(height))
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	frame.Stats = FrameStats{
		TotalPixels:     frame.Width * frame.Height,
		TotalSamples:    totalSamples,
		SamplesPerPixel: int(params.SamplesPerPixel),
		Rows:            done,
		Workers:         w.pool.GetNumWorkers(),
		Seed:            seed,
		Elapsed:         time.Since(startTime),
	}

	w.logger.Printf("Frame %d completed in %v\n", w.frames, frame.Stats.Elapsed)
	return frame, nil
}
