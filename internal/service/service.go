// Package service defines the backend-agnostic model and interface for todo operations.
package service

import "context"

// Service defines the interface for todo backend operations.
// All remote calls go through this interface; dispatchers never
// talk HTTP directly.
type Service interface {
	// ListTodos returns every todo in the collection, in server order.
	ListTodos(ctx context.Context) ([]Todo, error)

	// CreateTodo submits todo for creation and returns the server's copy,
	// populated with its ID and timestamps.
	CreateTodo(ctx context.Context, todo Todo) (Todo, error)
}
