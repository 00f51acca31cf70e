package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todos/internal/service"
)

// TodosPath is the collection path served by FakeServer.
const TodosPath = "/api/todos"

// FakeServer is an in-memory todo HTTP API for exercising the real client.
type FakeServer struct {
	*httptest.Server

	mu    sync.Mutex
	todos []service.Todo

	// Status overrides the envelope status when non-empty.
	Status string

	// ListBody and CreateBody, when set, are written verbatim instead of
	// the normal envelope.
	ListBody   string
	CreateBody string

	// StatusCode overrides the HTTP status code when non-zero.
	StatusCode int

	requests      map[string]int
	lastRequestID string
}

// NewFakeServer starts a FakeServer. It is closed when the test ends.
func NewFakeServer(t testing.TB) *FakeServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s := &FakeServer{requests: make(map[string]int)}

	r := gin.New()
	r.Use(s.record)
	r.GET(TodosPath, s.list)
	r.POST(TodosPath, s.create)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Endpoint returns the collection URL.
func (s *FakeServer) Endpoint() string {
	return s.URL + TodosPath
}

// Seed stores todos as returned by GET.
func (s *FakeServer) Seed(todos ...service.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append(s.todos, todos...)
}

// RequestCount returns how many requests with method were served.
func (s *FakeServer) RequestCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[method]
}

// LastRequestID returns the X-Request-Id of the most recent request.
func (s *FakeServer) LastRequestID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRequestID
}

func (s *FakeServer) record(c *gin.Context) {
	s.mu.Lock()
	s.requests[c.Request.Method]++
	s.lastRequestID = c.GetHeader("X-Request-Id")
	s.mu.Unlock()
	c.Next()
}

func (s *FakeServer) status() string {
	if s.Status != "" {
		return s.Status
	}
	return service.StatusSuccess
}

func (s *FakeServer) code() int {
	if s.StatusCode != 0 {
		return s.StatusCode
	}
	return http.StatusOK
}

func (s *FakeServer) list(c *gin.Context) {
	if s.ListBody != "" {
		c.Data(s.code(), "application/json", []byte(s.ListBody))
		return
	}
	s.mu.Lock()
	todos := make([]service.Todo, len(s.todos))
	copy(todos, s.todos)
	s.mu.Unlock()

	c.JSON(s.code(), gin.H{
		"status":  s.status(),
		"results": len(todos),
		"todos":   todos,
	})
}

func (s *FakeServer) create(c *gin.Context) {
	if s.CreateBody != "" {
		c.Data(s.code(), "application/json", []byte(s.CreateBody))
		return
	}
	var todo service.Todo
	if err := c.ShouldBindJSON(&todo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "fail", "message": err.Error()})
		return
	}

	id := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Second)
	completed := false
	todo.ID = &id
	todo.Completed = &completed
	todo.CreatedAt = &now
	todo.UpdatedAt = &now

	s.mu.Lock()
	s.todos = append(s.todos, todo)
	s.mu.Unlock()

	c.JSON(s.code(), gin.H{
		"status": s.status(),
		"data":   gin.H{"todo": todo},
	})
}
