package renderer

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// RowTask represents one image row for the worker pool. Pixels aliases the
// row's slice of the shared image buffer; rows never overlap, so workers
// write without locking.
type RowTask struct {
	RowIndex int
	Pixels   []core.Vec3
}

// RowResult reports a completed row
type RowResult struct {
	RowIndex int
	Err      error
}

// RenderOptions controls the parallel execution of a render
type RenderOptions struct {
	NumWorkers int                            // 0 = use CPU count
	Seed       int64                          // Base seed; each worker derives its own generator
	Progress   func(completedRows, total int) // Optional completion callback, called from the collecting goroutine
}

// RenderStats contains statistics about a completed render
type RenderStats struct {
	TotalPixels  int
	TotalSamples int
	NumWorkers   int
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders rows with its own private random generator. Generators
// are never shared between workers, so the sampling path needs no locks.
type Worker struct {
	ID          int
	raytracer   *Raytracer
	random      *rand.Rand
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool for the raytracer. Each worker's
// generator is seeded from the base seed and its worker ID, keeping runs
// reproducible for a fixed seed and worker count.
func NewWorkerPool(rt *Raytracer, numWorkers int, seed int64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	height := rt.scene.GetCamera().Height()

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, height),
		resultQueue: make(chan RowResult, height),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   rt,
			random:      rand.New(rand.NewSource(seed + int64(i))),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue and waits for workers to finish
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result, blocking until one is ready
func (wp *WorkerPool) GetResult() RowResult {
	return <-wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		for i := range task.Pixels {
			task.Pixels[i] = w.raytracer.renderPixel(i, task.RowIndex, w.random)
		}

		w.resultQueue <- RowResult{RowIndex: task.RowIndex}
	}
}
