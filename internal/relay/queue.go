package relay

import (
	"context"
	"sync"
)

// Queue is an order-preserving message queue between one producing
// worker and one draining consumer. Notify never blocks the worker;
// messages accumulate until drained.
type Queue struct {
	mu      sync.Mutex
	pending []Message
	wake    chan struct{}
	closed  bool
}

func NewQueue() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
	}
}

// Notify appends a message. Safe for concurrent use; messages from a
// single producer are drained in the order they were notified.
func (q *Queue) Notify(msg Message) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, msg)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Drain delivers queued messages to fn until ctx is cancelled or the
// queue is closed and emptied. It is the single consumer loop; all
// frontend state mutation belongs inside fn.
func (q *Queue) Drain(ctx context.Context, fn func(Message)) {
	for {
		for _, msg := range q.take() {
			fn(msg)
		}

		q.mu.Lock()
		done := q.closed && len(q.pending) == 0
		q.mu.Unlock()
		if done {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		}
	}
}

// Close stops accepting messages. Drain returns once everything
// already queued has been delivered.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) take() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.pending
	q.pending = nil
	return batch
}
