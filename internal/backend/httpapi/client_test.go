package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"todos/internal/backend/httpapi"
	"todos/internal/dispatch"
	"todos/internal/service"
	"todos/internal/testutil"
)

func newClient(t *testing.T, srv *testutil.FakeServer) *httpapi.Client {
	t.Helper()
	return httpapi.NewWithHTTPClient(srv.Client(), srv.Endpoint(), nil)
}

func TestListTodos_DecodesEnvelopeInOrder(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	srv.ListBody = `{"status":"success","results":2,"todos":[{"title":"a","content":"x"},{"title":"b","content":"y"}]}`

	todos, err := newClient(t, srv).ListTodos(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	if todos[0].Title != "a" || todos[1].Title != "b" {
		t.Errorf("expected titles a, b; got %q, %q", todos[0].Title, todos[1].Title)
	}
	if todos[0].ID != nil || todos[0].Completed != nil || todos[0].CreatedAt != nil {
		t.Errorf("expected absent optional fields, got %+v", todos[0])
	}
}

func TestListTodos_SendsRequestID(t *testing.T) {
	srv := testutil.NewFakeServer(t)

	if _, err := newClient(t, srv).ListTodos(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.LastRequestID() == "" {
		t.Error("expected X-Request-Id header")
	}
	if srv.RequestCount(http.MethodGet) != 1 {
		t.Errorf("expected 1 GET, got %d", srv.RequestCount(http.MethodGet))
	}
}

func TestListTodos_EmptyCollection(t *testing.T) {
	srv := testutil.NewFakeServer(t)

	todos, err := newClient(t, srv).ListTodos(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("expected no todos, got %d", len(todos))
	}
}

func TestListTodos_DecodeFailureIsReported(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	srv.ListBody = `<html>bad gateway</html>`
	srv.StatusCode = http.StatusBadGateway

	todos, err := newClient(t, srv).ListTodos(context.Background())
	if err == nil {
		t.Fatalf("expected error, got %d todos", len(todos))
	}
	if kind := service.KindOf(err); kind != service.KindSendRequest {
		t.Errorf("expected %v, got %v", service.KindSendRequest, kind)
	}
}

func TestListTodos_SuccessWithoutTodosIsReported(t *testing.T) {
	for _, body := range []string{`{"status":"success"}`, `{"status":"success","results":0,"todos":null}`} {
		srv := testutil.NewFakeServer(t)
		srv.ListBody = body

		todos, err := newClient(t, srv).ListTodos(context.Background())
		if err == nil {
			t.Fatalf("%s: expected error, got %d todos", body, len(todos))
		}
		if kind := service.KindOf(err); kind != service.KindSendRequest {
			t.Errorf("%s: expected %v, got %v (%v)", body, service.KindSendRequest, kind, err)
		}
	}
}

func TestListTodos_NonSuccessStatus(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	srv.Status = "error"

	_, err := newClient(t, srv).ListTodos(context.Background())
	if kind := service.KindOf(err); kind != service.KindBadRequest {
		t.Errorf("expected %v, got %v (%v)", service.KindBadRequest, kind, err)
	}
}

func TestListTodos_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL + testutil.TodosPath
	srv.Close()

	client := httpapi.NewWithHTTPClient(http.DefaultClient, endpoint, nil)
	_, err := client.ListTodos(context.Background())
	if kind := service.KindOf(err); kind != service.KindSendRequest {
		t.Errorf("expected %v, got %v (%v)", service.KindSendRequest, kind, err)
	}
}

func TestCreateTodo_ReturnsServerTodo(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	srv.CreateBody = `{"status":"success","data":{"todo":{"id":"42","title":"buy milk","content":"2%","completed":false}}}`

	got, err := newClient(t, srv).CreateTodo(context.Background(), service.NewTodo("buy milk", "2%"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IDValue() != "42" {
		t.Errorf("expected id 42, got %q", got.IDValue())
	}
	if got.Completed == nil || *got.Completed {
		t.Errorf("expected completed=false, got %v", got.Completed)
	}
}

func TestCreateTodo_RoundTripsThroughServer(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	client := newClient(t, srv)

	created, err := client.CreateTodo(context.Background(), service.NewTodo("water plants", "balcony first"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == nil || created.CreatedAt == nil || created.UpdatedAt == nil {
		t.Fatalf("expected server-assigned fields, got %+v", created)
	}
	if srv.RequestCount(http.MethodPost) != 1 {
		t.Errorf("expected 1 POST, got %d", srv.RequestCount(http.MethodPost))
	}

	todos, err := client.ListTodos(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}
	got := todos[0]
	if got.IDValue() != created.IDValue() || got.Title != "water plants" || got.Content != "balcony first" {
		t.Errorf("expected %+v, got %+v", created, got)
	}
	if !got.CreatedAt.Equal(*created.CreatedAt) {
		t.Errorf("expected createdAt %v, got %v", created.CreatedAt, got.CreatedAt)
	}
}

func TestCreateTodo_NonSuccessStatusIsBadRequest(t *testing.T) {
	for _, status := range []string{"fail", "error", ""} {
		srv := testutil.NewFakeServer(t)
		srv.CreateBody = `{"status":"` + status + `","data":{"todo":{"title":"t","content":"c"}}}`

		_, err := newClient(t, srv).CreateTodo(context.Background(), service.NewTodo("t", "c"))
		if kind := service.KindOf(err); kind != service.KindBadRequest {
			t.Errorf("status %q: expected %v, got %v", status, service.KindBadRequest, kind)
		}
	}
}

func TestCreateTodo_UndecodableBody(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	srv.CreateBody = `{"status":`

	_, err := newClient(t, srv).CreateTodo(context.Background(), service.NewTodo("t", "c"))
	if kind := service.KindOf(err); kind != service.KindSendRequest {
		t.Errorf("expected %v, got %v (%v)", service.KindSendRequest, kind, err)
	}
}

func TestCreateTodo_SuccessWithoutTodoIsReported(t *testing.T) {
	for _, body := range []string{`{"status":"success"}`, `{"status":"success","data":{}}`} {
		srv := testutil.NewFakeServer(t)
		srv.CreateBody = body

		got, err := newClient(t, srv).CreateTodo(context.Background(), service.NewTodo("t", "c"))
		if err == nil {
			t.Fatalf("%s: expected error, got %+v", body, got)
		}
		if kind := service.KindOf(err); kind != service.KindSendRequest {
			t.Errorf("%s: expected %v, got %v (%v)", body, service.KindSendRequest, kind, err)
		}
	}
}

func TestCreateTodo_FailStatusWithoutTodoIsBadRequest(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	srv.CreateBody = `{"status":"fail"}`

	_, err := newClient(t, srv).CreateTodo(context.Background(), service.NewTodo("t", "c"))
	if kind := service.KindOf(err); kind != service.KindBadRequest {
		t.Errorf("expected %v, got %v (%v)", service.KindBadRequest, kind, err)
	}
}

func TestCreateTodo_MissingTodoReachesChannelAsFailure(t *testing.T) {
	srv := testutil.NewFakeServer(t)
	srv.CreateBody = `{"status":"success"}`

	d := dispatch.NewThreaded(newClient(t, srv), nil, 0)
	tx, rx := dispatch.NewChannel()
	d.CreateTodo(service.NewTodo("t", "c"), tx)
	d.Wait()

	res, ok := rx.TryRecv()
	if !ok {
		t.Fatal("expected a result")
	}
	created, isCreate := res.(dispatch.CreateResult)
	if !isCreate {
		t.Fatalf("expected CreateResult, got %T", res)
	}
	if created.Err == nil {
		t.Fatalf("expected failure, got %+v", created.Todo)
	}
	if kind := service.KindOf(created.Err); kind != service.KindSendRequest {
		t.Errorf("expected %v, got %v", service.KindSendRequest, kind)
	}
}
