package dispatch

import "todos/internal/service"

// Op names the operation that produced a Result.
type Op int

const (
	OpList Op = iota + 1
	OpCreate
)

func (o Op) String() string {
	switch o {
	case OpList:
		return "list"
	case OpCreate:
		return "create"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of one dispatched operation.
// The concrete type is either ListResult or CreateResult.
type Result interface {
	Op() Op
	Failure() error
}

// ListResult is the outcome of FetchTodos.
// Exactly one of Todos and Err is meaningful.
type ListResult struct {
	Todos []service.Todo
	Err   error
}

// Op implements Result.
func (ListResult) Op() Op { return OpList }

// Failure implements Result.
func (r ListResult) Failure() error { return r.Err }

// CreateResult is the outcome of CreateTodo.
type CreateResult struct {
	Todo service.Todo
	Err  error
}

// Op implements Result.
func (CreateResult) Op() Op { return OpCreate }

// Failure implements Result.
func (r CreateResult) Failure() error { return r.Err }
