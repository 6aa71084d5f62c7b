// Package jobs runs a bounded set of jobs on a goroutine pool and collects how each one ended.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Job is a unit of work handed to the queue.
type Job struct {
	ID      string
	Payload interface{}
}

// Outcome records how a job ended.
type Outcome struct {
	Job      Job
	Attempts int
	Elapsed  time.Duration
	Err      error
}

// Handler processes a job.
type Handler func(context.Context, Job) error

// QueueConfig configures worker pool behaviour.
type QueueConfig struct {
	Workers    int
	BufferSize int
	// MaxRetries is the number of extra attempts after a failure. Zero disables retries.
	MaxRetries int
	RetryDelay time.Duration
	// Retryable decides whether a failure is attempted again. Nil retries every error.
	Retryable func(error) bool
	Logger    *zap.Logger
}

type queued struct {
	seq int
	job Job
}

// Queue dispatches jobs to a fixed number of workers. Enqueue after Wait is an error.
type Queue struct {
	name    string
	handler Handler
	cfg     QueueConfig

	jobs chan queued
	ctx  context.Context
	wg   sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
	seq     atomic.Int64

	outMu    sync.Mutex
	outcomes []queuedOutcome
}

type queuedOutcome struct {
	seq int
	Outcome
}

// NewQueue builds a new queue with the provided handler.
func NewQueue(name string, handler Handler, cfg QueueConfig) *Queue {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = cfg.Workers * 4
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Queue{
		name:    name,
		handler: handler,
		cfg:     cfg,
		jobs:    make(chan queued, cfg.BufferSize),
	}
}

// Start launches the workers. Cancelling ctx fails the jobs that have not run yet.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started {
		return
	}
	q.ctx = ctx
	for i := 0; i < q.cfg.Workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	q.started = true
	q.cfg.Logger.Sugar().Debugw("queue started", "queue", q.name, "workers", q.cfg.Workers)
}

// Enqueue pushes a job onto the queue, blocking while the buffer is full.
func (q *Queue) Enqueue(job Job) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if !q.started {
		return fmt.Errorf("queue %s not started", q.name)
	}
	if q.closed {
		return fmt.Errorf("queue %s closed", q.name)
	}

	item := queued{seq: int(q.seq.Add(1)), job: job}

	select {
	case <-q.ctx.Done():
		return fmt.Errorf("queue %s stopped: %w", q.name, q.ctx.Err())
	case q.jobs <- item:
		return nil
	}
}

// Wait closes the queue, lets the workers drain it and returns the outcomes in enqueue order.
func (q *Queue) Wait() []Outcome {
	q.mu.Lock()
	if !q.started || q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()

	q.outMu.Lock()
	defer q.outMu.Unlock()
	sort.Slice(q.outcomes, func(i, j int) bool { return q.outcomes[i].seq < q.outcomes[j].seq })
	out := make([]Outcome, len(q.outcomes))
	for i, o := range q.outcomes {
		out[i] = o.Outcome
	}
	q.cfg.Logger.Sugar().Debugw("queue drained", "queue", q.name, "jobs", len(out))
	return out
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for item := range q.jobs {
		outcome := q.process(item.job)
		q.outMu.Lock()
		q.outcomes = append(q.outcomes, queuedOutcome{seq: item.seq, Outcome: outcome})
		q.outMu.Unlock()
	}
}

func (q *Queue) process(job Job) Outcome {
	start := time.Now()
	out := Outcome{Job: job}
	for {
		if err := q.ctx.Err(); err != nil {
			if out.Err == nil {
				out.Err = err
			}
			break
		}
		out.Attempts++
		err := q.handler(q.ctx, job)
		out.Err = err
		if err == nil {
			break
		}
		if out.Attempts > q.cfg.MaxRetries || !q.retryable(err) {
			q.cfg.Logger.Sugar().Warnw("job failed", "queue", q.name, "job_id", job.ID, "attempts", out.Attempts, "error", err)
			break
		}
		q.cfg.Logger.Sugar().Infow("job failed, retrying", "queue", q.name, "job_id", job.ID, "attempt", out.Attempts, "error", err)
		if !q.sleep() {
			break
		}
	}
	out.Elapsed = time.Since(start)
	return out
}

func (q *Queue) retryable(err error) bool {
	if q.cfg.Retryable == nil {
		return true
	}
	return q.cfg.Retryable(err)
}

func (q *Queue) sleep() bool {
	timer := time.NewTimer(q.cfg.RetryDelay)
	defer timer.Stop()
	select {
	case <-q.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
