package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
	"github.com/df07/go-interactive-pathtracer/pkg/scene"
)

// commandBuffer holds one full request (scene, params, frame) with room to spare
const commandBuffer = 8

// errCommandQueueFull means the worker has not drained a previous request.
// The in-flight guard makes this unreachable in normal operation.
var errCommandQueueFull = errors.New("render command queue full")

// Renderer is the facade a UI calls on every redraw. None of its methods
// block on rendering: requests are enqueued and results are drained with
// non-blocking receives. At most one frame is ever in flight.
//
// A Renderer is meant to be driven from a single goroutine, the UI loop.
type Renderer struct {
	commands  chan Command
	responses chan Response
	done      chan struct{}
	worker    *Worker

	awaiting  bool
	progress  float64
	frame     *Frame
	closed    bool
	workerErr error
	closeOnce sync.Once
}

// NewRenderer starts a render worker on its own goroutine
func NewRenderer(config WorkerConfig) *Renderer {
	commands := make(chan Command, commandBuffer)
	responses := make(chan Response, responseBuffer)

	r := &Renderer{
		commands:  commands,
		responses: responses,
		done:      make(chan struct{}),
		worker:    NewWorker(commands, responses, config),
	}

	go func() {
		defer close(r.done)
		if err := r.worker.Run(); err != nil {
			r.workerErr = err
		}
	}()

	return r
}

// Render either starts a frame or collects progress on the one in flight.
//
// With no frame in flight, params and a clone of s are validated and sent to
// the worker followed by a frame request. With a frame in flight, params and
// s are ignored; pending responses are drained, the last progress fraction is
// kept and a finished frame replaces the displayed one.
//
// Once the worker is gone every call returns core.ErrRendererUnavailable.
func (r *Renderer) Render(params RenderParams, s *scene.Scene) error {
	if r.awaiting {
		return r.drain()
	}

	if r.closed || r.unavailable() {
		return core.ErrRendererUnavailable
	}
	if err := params.Validate(); err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: scene is nil", core.ErrInvalidParams)
	}
	if err := s.Validate(); err != nil {
		return err
	}

	for _, cmd := range []Command{
		{Kind: UpdateScene, Scene: s.Clone()},
		{Kind: UpdateRenderParams, Params: params.Clone()},
		{Kind: RequestFrame},
	} {
		if err := r.send(cmd); err != nil {
			return err
		}
	}

	r.awaiting = true
	r.progress = 0
	return nil
}

// send enqueues without blocking
func (r *Renderer) send(cmd Command) error {
	select {
	case <-r.done:
		return core.ErrRendererUnavailable
	default:
	}

	select {
	case r.commands <- cmd:
		return nil
	case <-r.done:
		return core.ErrRendererUnavailable
	default:
		return errCommandQueueFull
	}
}

// drain applies every pending response without blocking
func (r *Renderer) drain() error {
	for {
		select {
		case resp, ok := <-r.responses:
			if !ok {
				r.awaiting = false
				return r.unavailableError()
			}
			switch resp.Kind {
			case ProgressUpdate:
				r.progress = resp.Progress
			case FrameRendered:
				r.frame = resp.Frame
				r.progress = 1
				r.awaiting = false
			case FrameFailed:
				r.awaiting = false
				return fmt.Errorf("frame failed: %w", resp.Err)
			}
		default:
			return nil
		}
	}
}

func (r *Renderer) unavailable() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

func (r *Renderer) unavailableError() error {
	// done is closed right after responses, wait for it so workerErr is settled
	<-r.done
	if r.workerErr != nil {
		return fmt.Errorf("%w: %v", core.ErrRendererUnavailable, r.workerErr)
	}
	return core.ErrRendererUnavailable
}

// Progress returns the fraction of the in-flight frame completed so far, or 1
// once the last requested frame has arrived
func (r *Renderer) Progress() float64 {
	return r.progress
}

// Frame returns the most recently completed frame, nil before the first one
func (r *Renderer) Frame() *Frame {
	return r.frame
}

// Awaiting reports whether a frame is in flight
func (r *Renderer) Awaiting() bool {
	return r.awaiting
}

// WorkerState reports the render worker's lifecycle state
func (r *Renderer) WorkerState() WorkerState {
	return r.worker.State()
}

// Shutdown stops the worker once it has finished any frame in flight, or
// returns ctx.Err() if that takes longer than ctx allows
func (r *Renderer) Shutdown(ctx context.Context) error {
	r.closeOnce.Do(func() {
		r.closed = true
		close(r.commands)
	})

	select {
	case <-r.done:
		return r.workerErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the worker and waits for it to exit
func (r *Renderer) Close() error {
	return r.Shutdown(context.Background())
}
