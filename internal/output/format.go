// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todos/internal/service"
)

const (
	boxDone = "[x]"
	boxOpen = "[ ]"
)

// FormatTodo formats a todo line.
// Format: "{N:>4}  {BOX} {TITLE}\n" (4-wide right-aligned number, two spaces, box, title)
func FormatTodo(w io.Writer, num int, todo service.Todo) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Box(todo), NormalizeTitle(todo.Title))
}

// FormatTodoVerbose formats a todo line followed by its indented content.
// Empty content prints no second line.
func FormatTodoVerbose(w io.Writer, num int, todo service.Todo) {
	FormatTodo(w, num, todo)
	content := strings.TrimSpace(todo.Content)
	if content == "" {
		return
	}
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(w, "          %s\n", strings.TrimRight(line, "\r"))
	}
}

// FormatCreated formats the confirmation for a created todo.
func FormatCreated(w io.Writer, todo service.Todo) {
	id := todo.IDValue()
	if id == "" {
		id = "(no id)"
	}
	fmt.Fprintf(w, "created %s: %s\n", id, NormalizeTitle(todo.Title))
}

// Box returns the completion marker for todo.
func Box(todo service.Todo) string {
	if todo.IsCompleted() {
		return boxDone
	}
	return boxOpen
}

// NormalizeTitle normalizes a todo title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
