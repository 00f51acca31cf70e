// Package config holds the client's static configuration.
package config

import (
	"fmt"
	"net/url"
)

const (
	// AppName is the application name, used in the User-Agent.
	AppName = "todos"

	// DefaultEndpoint is the todo collection resource.
	DefaultEndpoint = "https://simple-api.metsysfhtagn.repl.co/api/todos"
)

// Config holds the endpoint and host settings.
type Config struct {
	// Endpoint is the todo collection URL, used for both GET and POST.
	Endpoint string

	// Host selects the dispatcher implementation.
	Host Host

	// Workers caps concurrent dispatches on the threaded host.
	// Zero means unlimited.
	Workers int

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config for endpoint, or DefaultEndpoint if endpoint is empty.
// The host defaults to DefaultHost for the build target.
func New(endpoint string) (*Config, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if err := validateEndpoint(endpoint); err != nil {
		return nil, err
	}
	return &Config{
		Endpoint: endpoint,
		Host:     DefaultHost,
	}, nil
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint: scheme must be http or https: %s", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint: missing host: %s", endpoint)
	}
	return nil
}
