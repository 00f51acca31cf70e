// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"
	"time"

	"todos/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.RWMutex
	todos  []service.Todo
	nextID int

	// Error injection for testing
	ListTodosErr  error
	CreateTodoErr error

	// Panic injection: every call panics with this value while set.
	PanicWith any

	// Gate, when set, blocks every call until a value is received on it.
	Gate chan struct{}

	// Now is used for server-assigned timestamps.
	Now func() time.Time
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		Now:    func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
}

// AddTodo adds a stored todo as if the server had created it.
func (f *FakeService) AddTodo(title, content string, completed bool) service.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.assign(service.NewTodo(title, content))
	t.Completed = &completed
	f.todos = append(f.todos, t)
	return t
}

// Todos returns a copy of the stored todos.
func (f *FakeService) Todos() []service.Todo {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Todo, len(f.todos))
	copy(result, f.todos)
	return result
}

// ListTodos implements service.Service.
func (f *FakeService) ListTodos(ctx context.Context) ([]service.Todo, error) {
	f.wait(ctx)
	if f.PanicWith != nil {
		panic(f.PanicWith)
	}
	if f.ListTodosErr != nil {
		return nil, f.ListTodosErr
	}
	return f.Todos(), nil
}

// CreateTodo implements service.Service.
func (f *FakeService) CreateTodo(ctx context.Context, todo service.Todo) (service.Todo, error) {
	f.wait(ctx)
	if f.PanicWith != nil {
		panic(f.PanicWith)
	}
	if f.CreateTodoErr != nil {
		return service.Todo{}, f.CreateTodoErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	created := f.assign(todo)
	f.todos = append(f.todos, created)
	return created, nil
}

// assign fills the server-owned fields. Caller holds mu.
func (f *FakeService) assign(t service.Todo) service.Todo {
	id := strconv.Itoa(f.nextID)
	f.nextID++
	now := f.Now()
	completed := false
	t.ID = &id
	if t.Completed == nil {
		t.Completed = &completed
	}
	t.CreatedAt = &now
	t.UpdatedAt = &now
	return t
}

func (f *FakeService) wait(ctx context.Context) {
	if f.Gate == nil {
		return
	}
	select {
	case <-f.Gate:
	case <-ctx.Done():
	}
}
