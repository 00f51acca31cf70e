package dispatch

import (
	"log/slog"

	"todos/internal/service"
)

// Cooperative dispatches onto a LocalExecutor. Nothing happens until the
// host calls RunPending: the first call starts the exchange, a later call
// delivers its result. Transport failures are reported as KindWebRequest.
type Cooperative struct {
	svc  service.Service
	log  *slog.Logger
	exec *LocalExecutor
}

// NewCooperative creates a cooperative dispatcher with its own executor.
func NewCooperative(svc service.Service, logger *slog.Logger) *Cooperative {
	return &Cooperative{
		svc:  svc,
		log:  orDiscard(logger).With("host", "cooperative"),
		exec: NewLocalExecutor(),
	}
}

// FetchTodos implements Dispatcher.
func (c *Cooperative) FetchTodos(tx *Sender) {
	c.spawn(OpList, tx, listTask(c.svc))
}

// CreateTodo implements Dispatcher.
func (c *Cooperative) CreateTodo(todo service.Todo, tx *Sender) {
	c.spawn(OpCreate, tx, createTask(c.svc, todo))
}

// RunPending runs ready tasks on the calling goroutine.
func (c *Cooperative) RunPending() int {
	return c.exec.RunPending()
}

// Wake is signalled when tasks become ready.
func (c *Cooperative) Wake() <-chan struct{} {
	return c.exec.Wake()
}

// Pending returns the number of dispatches not yet delivered.
func (c *Cooperative) Pending() int {
	return c.exec.Pending()
}

func (c *Cooperative) spawn(op Op, tx *Sender, fn task) {
	c.log.Debug("queueing", "op", op)
	c.exec.Spawn(func() {
		c.log.Debug("dispatching", "op", op)
		c.exec.Await(
			func() Result { return execute(op, service.KindWebRequest, fn) },
			func(res Result) { deliver(c.log, tx, res) },
		)
	})
}
