package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/xavierca1/lead-intake/internal/entity"
)

// ErrQueueClosed is returned by Dequeue once the queue is closed and
// drained, and by PublishLead after Close.
var ErrQueueClosed = errors.New("queue: closed")

// MemoryQueue is an unbounded FIFO of leads shared by producers and the
// lead handler.
type MemoryQueue struct {
	mu     sync.Mutex
	items  []entity.Lead
	closed bool
	notify chan struct{}
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{notify: make(chan struct{})}
}

func (q *MemoryQueue) PublishLead(ctx context.Context, lead entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, lead)
	q.broadcast()
	return nil
}

// Dequeue blocks until a lead is available, the queue is closed and empty,
// or ctx ends.
func (q *MemoryQueue) Dequeue(ctx context.Context) (entity.Lead, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			lead := q.items[0]
			q.items[0] = entity.Lead{}
			q.items = q.items[1:]
			q.mu.Unlock()
			return lead, nil
		}
		if q.closed {
			q.mu.Unlock()
			return entity.Lead{}, ErrQueueClosed
		}
		wait := q.notify
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return entity.Lead{}, ctx.Err()
		case <-wait:
		}
	}
}

// Close stops new publishes. Leads already queued can still be dequeued.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.broadcast()
}

// Closed reports whether Close has been called.
func (q *MemoryQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// broadcast wakes every waiter. Callers hold mu.
func (q *MemoryQueue) broadcast() {
	close(q.notify)
	q.notify = make(chan struct{})
}
