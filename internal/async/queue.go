package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is the smallest useful unit of batch work: one document to push
// through the pipeline. Extend as needed later (retry, trace, priority).
type Job struct {
	DocumentID  uuid.UUID
	Path        string
	Index       int // position in the submitted batch, for ordered results
	SubmittedAt time.Time
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Dequeue(ctx context.Context) (Job, bool)
	Close()
}

// ChanQueue is a bounded in-memory queue. Enqueue blocks when full so a
// slow pipeline applies backpressure to the producer.
type ChanQueue struct {
	ch chan Job
}

func NewChanQueue(capacity int) *ChanQueue {
	if capacity < 1 {
		capacity = 1
	}
	return &ChanQueue{ch: make(chan Job, capacity)}
}

func (q *ChanQueue) Enqueue(ctx context.Context, job Job) error {
	select {
	case q.ch <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue returns the next job, or ok=false when the queue is closed and
// drained or the context is cancelled.
func (q *ChanQueue) Dequeue(ctx context.Context) (Job, bool) {
	select {
	case job, ok := <-q.ch:
		return job, ok
	case <-ctx.Done():
		return Job{}, false
	}
}

func (q *ChanQueue) Close() {
	close(q.ch)
}
