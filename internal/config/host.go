package config

import "fmt"

// Host identifies the execution environment a dispatcher targets.
type Host int

const (
	// Threaded runs every dispatch on its own goroutine.
	Threaded Host = iota

	// Cooperative runs dispatch work on a single caller-driven task queue.
	Cooperative
)

func (h Host) String() string {
	switch h {
	case Threaded:
		return "threaded"
	case Cooperative:
		return "cooperative"
	default:
		return fmt.Sprintf("host(%d)", int(h))
	}
}

// ParseHost parses a host name as accepted by --host.
func ParseHost(s string) (Host, error) {
	switch s {
	case "threaded":
		return Threaded, nil
	case "cooperative":
		return Cooperative, nil
	default:
		return 0, fmt.Errorf("unknown host: %s", s)
	}
}
