// Package dispatch runs todo operations asynchronously and delivers their
// outcomes as tagged results on a result channel.
//
// Two hosts share the Dispatcher contract. Threaded runs each dispatch on
// its own goroutine. Cooperative queues work on a LocalExecutor that the
// caller pumps from its own loop (a UI frame, a browser event loop), so
// results are produced on the caller's goroutine.
//
// Every dispatch sends exactly one result. Failures, including panics in
// the backend, are delivered as *service.APIError values.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"todos/internal/config"
	"todos/internal/service"
)

// Dispatcher starts todo operations without blocking the caller.
type Dispatcher interface {
	// FetchTodos lists the collection and sends a ListResult on tx.
	FetchTodos(tx *Sender)

	// CreateTodo submits todo and sends a CreateResult on tx.
	CreateTodo(todo service.Todo, tx *Sender)
}

// New returns the dispatcher for cfg.Host.
func New(cfg *config.Config, svc service.Service, logger *slog.Logger) Dispatcher {
	switch cfg.Host {
	case config.Cooperative:
		return NewCooperative(svc, logger)
	default:
		return NewThreaded(svc, logger, cfg.Workers)
	}
}

type task func(ctx context.Context) Result

func listTask(svc service.Service) task {
	return func(ctx context.Context) Result {
		todos, err := svc.ListTodos(ctx)
		if err != nil {
			return ListResult{Err: err}
		}
		return ListResult{Todos: todos}
	}
}

func createTask(svc service.Service, todo service.Todo) task {
	return func(ctx context.Context) Result {
		created, err := svc.CreateTodo(ctx, todo)
		if err != nil {
			return CreateResult{Err: err}
		}
		return CreateResult{Todo: created}
	}
}

// execute runs t and normalizes its failure to an APIError whose transport
// kind is transport. A panic becomes a failed result of the same op.
func execute(op Op, transport service.ErrorKind, t task) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = failed(op, &service.APIError{Kind: transport, Err: fmt.Errorf("panic: %v", r)})
		}
	}()

	res = t(context.Background())
	if err := res.Failure(); err != nil {
		res = failed(op, normalize(err, transport))
	}
	return res
}

func failed(op Op, err error) Result {
	if op == OpList {
		return ListResult{Err: err}
	}
	return CreateResult{Err: err}
}

// normalize maps err onto the host's transport kind. Bad requests keep
// their kind; anything else becomes a transport error wrapping the cause.
func normalize(err error, transport service.ErrorKind) error {
	var apiErr *service.APIError
	if !errors.As(err, &apiErr) {
		return &service.APIError{Kind: transport, Err: err}
	}
	if apiErr.Kind == service.KindBadRequest || apiErr.Kind == transport {
		return apiErr
	}
	cause := apiErr.Err
	if cause == nil {
		cause = apiErr
	}
	return &service.APIError{Kind: transport, Err: cause}
}

func deliver(log *slog.Logger, tx *Sender, res Result) {
	if err := tx.Send(res); err != nil {
		log.Debug("dropping result", "op", res.Op(), "err", err)
		return
	}
	if err := res.Failure(); err != nil {
		log.Debug("dispatch failed", "op", res.Op(), "kind", service.KindOf(err), "err", err)
		return
	}
	log.Debug("dispatch finished", "op", res.Op())
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
