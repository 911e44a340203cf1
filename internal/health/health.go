package health

import "context"

// Ping interface
type Ping interface {
	Ping(ctx context.Context) error
}

// Status keeps the registered dependency pingers.
type Status struct {
	pingers map[string]Ping
}

// New returns a Status with the given named pingers.
func New(pingers map[string]Ping) *Status {
	if pingers == nil {
		pingers = make(map[string]Ping)
	}
	return &Status{pingers: pingers}
}

// Status returns, per dependency, whether it currently answers a ping.
func (h *Status) Status(ctx context.Context) map[string]bool {
	m := make(map[string]bool, len(h.pingers))

	for key, val := range h.pingers {
		m[key] = true
		if err := val.Ping(ctx); err != nil {
			m[key] = false
		}
	}

	return m
}
