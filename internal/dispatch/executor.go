package dispatch

import "sync"

// LocalExecutor is a single-threaded cooperative task queue.
// Spawned tasks run only inside RunPending, on the caller's goroutine.
type LocalExecutor struct {
	mu        sync.Mutex
	queue     []func()
	suspended int
	wake      chan struct{}
}

// NewLocalExecutor creates an empty executor.
func NewLocalExecutor() *LocalExecutor {
	return &LocalExecutor{wake: make(chan struct{}, 1)}
}

// Spawn queues fn. It is safe to call from any goroutine.
func (e *LocalExecutor) Spawn(fn func()) {
	e.push(fn, false)
}

// Await suspends the current task: work runs off the host and then is
// resumed with its result on a later RunPending.
func (e *LocalExecutor) Await(work func() Result, then func(Result)) {
	e.mu.Lock()
	e.suspended++
	e.mu.Unlock()

	go func() {
		res := work()
		e.push(func() { then(res) }, true)
	}()
}

// RunPending runs the tasks queued before the call and returns how many ran.
// Tasks queued while it runs wait for the next call.
func (e *LocalExecutor) RunPending() int {
	e.mu.Lock()
	batch := e.queue
	e.queue = nil
	e.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending returns the number of queued and suspended tasks.
func (e *LocalExecutor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue) + e.suspended
}

// Wake is signalled whenever a task is queued.
func (e *LocalExecutor) Wake() <-chan struct{} {
	return e.wake
}

func (e *LocalExecutor) push(fn func(), resumed bool) {
	e.mu.Lock()
	e.queue = append(e.queue, fn)
	if resumed {
		e.suspended--
	}
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}
