// Package httpapi implements service.Service against the remote HTTP/JSON todo API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"

	"todos/internal/config"
	"todos/internal/service"
)

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-Id"

// UserAgent is sent with every request.
var UserAgent = config.AppName + "/0.1.0"

// Client implements service.Service over HTTP.
// It is safe for concurrent use; all dispatches share one http.Client.
type Client struct {
	http     *http.Client
	endpoint string
	log      *slog.Logger
}

// New creates a client for cfg.Endpoint.
// The remote API is unauthenticated.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	httpClient, _, err := htransport.NewClient(ctx,
		option.WithoutAuthentication(),
		option.WithUserAgent(UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}
	return NewWithHTTPClient(httpClient, cfg.Endpoint, logger), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(httpClient *http.Client, endpoint string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		http:     httpClient,
		endpoint: endpoint,
		log:      logger,
	}
}

// Endpoint returns the collection URL the client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ListTodos fetches the todo collection.
func (c *Client) ListTodos(ctx context.Context) ([]service.Todo, error) {
	body, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var env listEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, service.SendRequestError(fmt.Errorf("decode list response: %w", err))
	}
	if env.Status != service.StatusSuccess {
		return nil, service.BadRequest(env.Status)
	}
	if env.Todos == nil {
		return nil, service.SendRequestError(errors.New("decode list response: missing todos"))
	}
	return *env.Todos, nil
}

// CreateTodo posts todo and returns the server's copy.
func (c *Client) CreateTodo(ctx context.Context, todo service.Todo) (service.Todo, error) {
	payload, err := json.Marshal(todo)
	if err != nil {
		return service.Todo{}, service.SendRequestError(fmt.Errorf("encode todo: %w", err))
	}

	body, err := c.do(ctx, http.MethodPost, payload)
	if err != nil {
		return service.Todo{}, err
	}

	var env singleEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return service.Todo{}, service.SendRequestError(fmt.Errorf("decode create response: %w", err))
	}
	if env.Status != service.StatusSuccess {
		return service.Todo{}, service.BadRequest(env.Status)
	}
	created, ok := env.todo()
	if !ok {
		return service.Todo{}, service.SendRequestError(errors.New("decode create response: missing data.todo"))
	}
	return created, nil
}

// do performs one exchange and returns the raw response body.
// The HTTP status code is not inspected: the envelope status is authoritative.
func (c *Client) do(ctx context.Context, method string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint, reqBody)
	if err != nil {
		return nil, service.SendRequestError(err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With("request_id", reqID, "method", method, "endpoint", c.endpoint)
	log.Debug("sending request")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug("request failed", "err", err)
		return nil, service.SendRequestError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debug("reading body failed", "err", err)
		return nil, service.SendRequestError(fmt.Errorf("read response: %w", err))
	}

	log.Debug("received response", "status_code", resp.StatusCode, "bytes", len(body))
	return body, nil
}
