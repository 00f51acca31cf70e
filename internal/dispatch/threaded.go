package dispatch

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"todos/internal/service"
)

// Threaded runs each dispatch on its own goroutine.
type Threaded struct {
	svc   service.Service
	log   *slog.Logger
	group errgroup.Group
	sem   *semaphore.Weighted // nil: unlimited
}

// NewThreaded creates a threaded dispatcher. If workers > 0, at most that
// many dispatches talk to svc at once; the rest wait without blocking
// the caller.
func NewThreaded(svc service.Service, logger *slog.Logger, workers int) *Threaded {
	t := &Threaded{
		svc: svc,
		log: orDiscard(logger).With("host", "threaded"),
	}
	if workers > 0 {
		t.sem = semaphore.NewWeighted(int64(workers))
	}
	return t
}

// FetchTodos implements Dispatcher.
func (t *Threaded) FetchTodos(tx *Sender) {
	t.spawn(OpList, tx, listTask(t.svc))
}

// CreateTodo implements Dispatcher.
func (t *Threaded) CreateTodo(todo service.Todo, tx *Sender) {
	t.spawn(OpCreate, tx, createTask(t.svc, todo))
}

// Wait blocks until every dispatch started so far has sent its result.
func (t *Threaded) Wait() {
	// Failures travel on the channel; group goroutines always return nil.
	_ = t.group.Wait()
}

func (t *Threaded) spawn(op Op, tx *Sender, fn task) {
	t.log.Debug("dispatching", "op", op)
	t.group.Go(func() error {
		if t.sem != nil {
			// Background never cancels, so Acquire cannot fail.
			_ = t.sem.Acquire(context.Background(), 1)
			defer t.sem.Release(1)
		}
		deliver(t.log, tx, execute(op, service.KindSendRequest, fn))
		return nil
	})
}
