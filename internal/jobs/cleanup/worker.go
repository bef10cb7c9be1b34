package cleanup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

// Scheduler enqueues fire-and-forget removal of a directory tree.
type Scheduler interface {
	Schedule(path string)
}

type Remover interface {
	RemoveTreeIfExists(rel string)
}

type Config struct {
	Concurrency int
	QueueSize   int
}

// Worker removes directory trees in the background. Schedule never blocks and
// never reports failure to the caller; outcomes are only logged.
type Worker struct {
	log     *logger.Logger
	remover Remover
	cfg     Config

	mu       sync.RWMutex
	queue    chan string
	started  bool
	closed   bool
	group    *errgroup.Group
	detached sync.WaitGroup
}

func NewWorker(baseLog *logger.Logger, remover Remover, cfg Config) *Worker {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 64
	}
	return &Worker{
		log:     baseLog.With("component", "CleanupWorker"),
		remover: remover,
		cfg:     cfg,
		queue:   make(chan string, cfg.QueueSize),
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.closed {
		return
	}
	w.started = true

	g, gctx := errgroup.WithContext(ctx)
	w.group = g
	w.log.Info("Starting cleanup worker pool", "concurrency", w.cfg.Concurrency, "queue_size", w.cfg.QueueSize)
	for i := 0; i < w.cfg.Concurrency; i++ {
		workerID := i + 1
		g.Go(func() error { return w.runLoop(gctx, workerID) })
	}
}

func (w *Worker) Schedule(path string) {
	if path == "" {
		return
	}
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.started && !w.closed {
		select {
		case w.queue <- path:
			return
		default:
			w.log.Warn("Cleanup queue full, running detached", "path", path)
		}
	}
	w.detached.Add(1)
	go func() {
		defer w.detached.Done()
		w.remove(0, path)
	}()
}

// Close stops accepting work, drains the queue and waits for in-flight removals.
func (w *Worker) Close() error {
	w.mu.Lock()
	var g *errgroup.Group
	if !w.closed {
		w.closed = true
		close(w.queue)
		g = w.group
	}
	w.mu.Unlock()

	var err error
	if g != nil {
		err = g.Wait()
	}
	w.detached.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (w *Worker) runLoop(ctx context.Context, workerID int) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Info("Cleanup loop stopped", "worker_id", workerID)
			return ctx.Err()
		case path, ok := <-w.queue:
			if !ok {
				return nil
			}
			w.remove(workerID, path)
		}
	}
}

func (w *Worker) remove(workerID int, path string) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("Cleanup panic", "worker_id", workerID, "path", path, "panic", fmt.Sprint(r))
		}
	}()
	w.remover.RemoveTreeIfExists(path)
	w.log.Info("Deferred cleanup done", "worker_id", workerID, "path", path)
}
