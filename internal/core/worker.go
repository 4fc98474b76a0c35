package core

import (
	"sync"

	"twmm/internal/domain"
)

type job struct {
	fn   func() error
	resp chan error
}

// Worker runs jobs one at a time on a single background goroutine. Hashing
// and compression of potentially large files go through it so the calling
// goroutine stays responsive. A closed worker rejects every subsequent job;
// it is never respawned.
type Worker struct {
	mu     sync.Mutex
	closed bool
	jobs   chan job
}

// NewWorker starts the background goroutine.
func NewWorker() *Worker {
	w := &Worker{jobs: make(chan job)}
	go w.run()
	return w
}

func (w *Worker) run() {
	for j := range w.jobs {
		j.resp <- j.fn()
	}
}

// Do submits fn and blocks until it has run. There is no timeout; the wait is
// bounded only by fn's own I/O.
func (w *Worker) Do(fn func() error) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return domain.ErrWorkerUnavailable
	}
	resp := make(chan error, 1)
	w.jobs <- job{fn: fn, resp: resp}
	w.mu.Unlock()

	return <-resp
}

// Close stops the worker after the job in flight, if any, completes.
func (w *Worker) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.jobs)
	}
}
