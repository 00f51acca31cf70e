package dispatch

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Send once the receiving half has been closed.
var ErrClosed = errors.New("result channel closed")

// queue is an unbounded FIFO shared by one Receiver and any number of senders.
type queue struct {
	mu     sync.Mutex
	items  []Result
	closed bool
	ready  chan struct{} // buffered(1): signalled on every push
}

// NewChannel returns the two halves of a result channel.
// Sends never block; results are received in the order they were sent.
func NewChannel() (*Sender, *Receiver) {
	q := &queue{ready: make(chan struct{}, 1)}
	return &Sender{q: q}, &Receiver{q: q}
}

// Sender is the producing half of a result channel.
// One Sender may be shared by any number of dispatches.
type Sender struct {
	q *queue
}

// Send enqueues r without blocking.
func (s *Sender) Send(r Result) error {
	q := s.q
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, r)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return nil
}

// Receiver is the single consuming half of a result channel.
type Receiver struct {
	q *queue
}

// TryRecv returns the next result if one is queued. It never blocks.
func (r *Receiver) TryRecv() (Result, bool) {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	res := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return res, true
}

// Recv blocks until a result is available or ctx is done.
// It must not be called from a cooperative host's own loop: the
// continuations that produce results run there.
func (r *Receiver) Recv(ctx context.Context) (Result, error) {
	for {
		if res, ok := r.TryRecv(); ok {
			return res, nil
		}
		select {
		case <-r.q.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Ready is signalled after a send. A signal may be stale; callers
// should TryRecv in a loop until it reports false.
func (r *Receiver) Ready() <-chan struct{} {
	return r.q.ready
}

// Len returns the number of queued results.
func (r *Receiver) Len() int {
	r.q.mu.Lock()
	defer r.q.mu.Unlock()
	return len(r.q.items)
}

// Close drops queued results and makes further sends fail with ErrClosed.
func (r *Receiver) Close() {
	r.q.mu.Lock()
	defer r.q.mu.Unlock()
	r.q.closed = true
	r.q.items = nil
}
