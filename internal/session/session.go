package session

import (
	"errors"
	"time"
)

// State is the lifecycle state of the session engine.
type State string

const (
	// StateIdle means no session is active.
	StateIdle State = "idle"
	// StateRunning means a session is active and ticking.
	StateRunning State = "running"
	// StateEnding is the transient terminal-processing state between a
	// running session and idle. It is only observable from inside the
	// engine; by the time any call returns the engine is back to idle.
	StateEnding State = "ending"
)

// Mode selects the idle threshold used for attention classification.
type Mode string

const (
	ModeActive  Mode = "active"
	ModeReading Mode = "reading"
)

// ValidMode reports whether m names a known mode.
func ValidMode(m Mode) bool {
	return m == ModeActive || m == ModeReading
}

var (
	ErrAlreadyRunning  = errors.New("session already running")
	ErrNotRunning      = errors.New("no session running")
	ErrInvalidDuration = errors.New("session duration must be positive")
	ErrInvalidMode     = errors.New("unknown session mode")
)

// Session holds the mutable state of one focus session. It is owned
// exclusively by the Controller; at most one instance is live at a time.
type Session struct {
	Duration  int // target seconds, fixed at start
	Elapsed   int
	Mode      Mode
	StartedAt time.Time

	// IdleNotified prevents idle-warning spam: set when a warning fires,
	// cleared on every fresh activity ping.
	IdleNotified bool
}

// Status is the snapshot returned by Controller.Status.
type Status struct {
	State    State  `json:"state"`
	Time     string `json:"time"` // MM:SS of elapsed
	Elapsed  int    `json:"elapsed"`
	Duration int    `json:"duration"`
	Focused  bool   `json:"focused"`
	Mode     Mode   `json:"mode"`
}
