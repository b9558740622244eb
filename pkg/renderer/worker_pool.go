package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/df07/go-interactive-pathtracer/pkg/core"
)

// frameJob is the read-only state shared by all rows of one frame. Rows write
// to disjoint slices of frame.Pix, so no lock guards the buffer.
type frameJob struct {
	tracer *PathTracer
	frame  *Frame
	seed   int64
}

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Row int // Camera-space row, 0 is the bottom of the viewport
	job *frameJob
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row     int
	Samples int
	Error   error
}

// WorkerPool manages parallel row rendering. At most Capacity tasks may be
// outstanding at once; callers that respect this never block on submit and
// workers never block on reporting a result.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	numWorkers  int
	wg          sync.WaitGroup
	startOnce   sync.Once
	stopOnce    sync.Once
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	capacity := 2 * numWorkers
	return &WorkerPool{
		taskQueue:   make(chan RowTask, capacity),
		resultQueue: make(chan RowResult, capacity),
		numWorkers:  numWorkers,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	wp.startOnce.Do(func() {
		for i := 0; i < wp.numWorkers; i++ {
			wp.wg.Add(1)
			go wp.run()
		}
	})
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() {
		close(wp.taskQueue) // No more tasks
		wp.wg.Wait()        // Wait for workers to finish
		close(wp.resultQueue)
	})
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Capacity returns the number of tasks that may be outstanding at once
func (wp *WorkerPool) Capacity() int {
	return cap(wp.taskQueue)
}

// run is the main worker loop
func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.resultQueue <- renderRowTask(task)
	}
}

// renderRowTask renders one row with its own deterministic generator and
// turns a panic into an error result so one bad row cannot kill the pool
func renderRowTask(task RowTask) (result RowResult) {
	result.Row = task.Row
	defer func() {
		if r := recover(); r != nil {
			result.Error = fmt.Errorf("row %d: render panicked: %v", task.Row, r)
		}
	}()

	sampler := core.NewSeededSampler(core.RowSeed(task.job.seed, task.Row))
	result.Samples = task.job.tracer.RenderRow(task.Row, task.job.frame, sampler)
	return result
}
