// Package service defines the backend-agnostic model and interface for todo operations.
package service

import "time"

// Todo represents a single todo item as exchanged with the remote service.
// Optional fields are pointers: nil means the server has not set them.
type Todo struct {
	ID        *string    `json:"id,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Completed *bool      `json:"completed,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewTodo returns a Todo ready to be submitted for creation.
// Only title and content are set; the server assigns the rest.
func NewTodo(title, content string) Todo {
	return Todo{
		Title:   title,
		Content: content,
	}
}

// IDValue returns the server-assigned ID, or "" if none is set.
func (t Todo) IDValue() string {
	if t.ID == nil {
		return ""
	}
	return *t.ID
}

// IsCompleted reports whether the todo is known to be completed.
// An unset Completed field counts as not completed.
func (t Todo) IsCompleted() bool {
	return t.Completed != nil && *t.Completed
}
