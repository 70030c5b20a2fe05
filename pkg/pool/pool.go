package pool

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of background work. The pool cancels its context on
// shutdown.
type Job func(ctx context.Context)

// PoolConfig defines worker pool configuration
type PoolConfig struct {
	Workers         int           `json:"workers"`
	QueueSize       int           `json:"queue_size"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// DefaultPoolConfig returns sensible defaults
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		Workers:         4,
		QueueSize:       64,
		ShutdownTimeout: 30 * time.Second,
	}
}

var ErrPoolClosed = errors.New("worker pool is closed")
var ErrQueueFull = errors.New("worker pool queue is full")

// WorkerPool runs submitted jobs on a fixed set of goroutines with a
// bounded queue, so a burst of submissions applies backpressure instead
// of spawning unbounded work.
type WorkerPool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	cancel  context.CancelFunc
	config  PoolConfig
	logger  *zap.Logger
	started time.Time
}

// NewWorkerPool creates and starts a worker pool
func NewWorkerPool(config PoolConfig, logger *zap.Logger) *WorkerPool {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Workers <= 0 {
		config.Workers = DefaultPoolConfig().Workers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultPoolConfig().QueueSize
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultPoolConfig().ShutdownTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &WorkerPool{
		jobs:    make(chan Job, config.QueueSize),
		cancel:  cancel,
		config:  config,
		logger:  logger,
		started: time.Now(),
	}

	for i := 0; i < config.Workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}

	logger.Info("Worker pool started",
		zap.Int("workers", config.Workers),
		zap.Int("queue_size", config.QueueSize),
	)

	return p
}

func (p *WorkerPool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for job := range p.jobs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("Worker recovered from panic",
						zap.Int("worker_id", id),
						zap.Any("panic", r),
					)
				}
			}()
			job(ctx)
		}()
	}
}

// Submit enqueues a job, failing fast when the queue is full or the pool
// is shut down.
func (p *WorkerPool) Submit(job Job) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.mu.Unlock()

	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting jobs and waits for in-flight work, up to the
// configured timeout. Jobs still running after that see a cancelled
// context.
func (p *WorkerPool) Shutdown() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.logger.Info("Worker pool drained",
			zap.Duration("uptime", time.Since(p.started)),
		)
		return nil
	case <-time.After(p.config.ShutdownTimeout):
		p.cancel()
		p.logger.Warn("Worker pool shutdown timed out, cancelling jobs")
		return errors.New("worker pool shutdown timed out")
	}
}

// QueueDepth reports the number of pending jobs
func (p *WorkerPool) QueueDepth() int {
	return len(p.jobs)
}
