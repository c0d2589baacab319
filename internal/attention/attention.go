// Package attention abstracts the host signals the session engine consumes:
// whether any window holds input focus, and how long the user has been
// without input. Implementations live in subpackages per display server.
package attention

// Source provides the host attention and idle signals.
type Source interface {
	// HasWindowAttention reports whether some window currently has input
	// focus. Errors are handled fail-open by the engine.
	HasWindowAttention() (bool, error)

	// IdleSeconds returns seconds since the last user input.
	IdleSeconds() (int64, error)

	// Close releases the host connection.
	Close() error
}

// AlwaysOn is the fallback source for hosts without a display server: the
// window is assumed attended and the user never idle, so classification
// rests entirely on explicit activity pings.
type AlwaysOn struct{}

func (AlwaysOn) HasWindowAttention() (bool, error) { return true, nil }
func (AlwaysOn) IdleSeconds() (int64, error)       { return 0, nil }
func (AlwaysOn) Close() error                      { return nil }
