package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-pathtracer/pkg/framebuffer"
)

// ScanlineTask represents one row to render
type ScanlineTask struct {
	Y int
}

// ScanlineResult contains the result from rendering a row
type ScanlineResult struct {
	Y     int
	Stats RenderStats
}

// WorkerPool manages parallel scanline rendering
type WorkerPool struct {
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual scanline tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	framebuffer *framebuffer.Framebuffer
	taskQueue   chan ScanlineTask
	resultQueue chan ScanlineResult
}

// NewWorkerPool creates a worker pool writing into fb.
// Rows are disjoint, so workers share fb without locking.
func NewWorkerPool(rt *Raytracer, fb *framebuffer.Framebuffer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan ScanlineTask, fb.Height),   // Buffer for every row
		resultQueue: make(chan ScanlineResult, fb.Height), // Buffer for every result
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   rt,
			framebuffer: fb,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
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

// Stop closes the task queue, waits for the workers to drain it and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a scanline task to the worker pool
func (wp *WorkerPool) SubmitTask(task ScanlineTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed scanline result
func (wp *WorkerPool) GetResult() (ScanlineResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		stats := w.raytracer.traceScanline(task.Y, w.framebuffer)
		w.resultQueue <- ScanlineResult{Y: task.Y, Stats: stats}
	}
}
