// Package x11 reads attention and idle signals from the X server over the
// wire protocol: input focus via core GetInputFocus, idle time via the
// MIT-SCREEN-SAVER extension.
package x11

import (
	"fmt"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"
)

// Source implements attention.Source against a live X connection. The mutex
// serializes requests; xgb connections are not safe for the interleaved
// cookie/reply pattern used here.
type Source struct {
	mu   sync.Mutex
	conn *xgb.Conn
	root xproto.Window
}

// Available reports whether an X display is advertised in the environment.
func Available() bool {
	return os.Getenv("DISPLAY") != ""
}

// New connects to the X server and initializes the screensaver extension.
func New() (*Source, error) {
	if !Available() {
		return nil, fmt.Errorf("no X11 display available")
	}

	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	if err := screensaver.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("MIT-SCREEN-SAVER extension unavailable: %w", err)
	}

	root := xproto.Setup(conn).DefaultScreen(conn).Root
	return &Source{conn: conn, root: root}, nil
}

// HasWindowAttention reports whether any window holds input focus. Focus on
// WindowNone means the user's attention is nowhere (screen blanked, focus
// dropped).
func (s *Source) HasWindowAttention() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply, err := xproto.GetInputFocus(s.conn).Reply()
	if err != nil {
		return false, fmt.Errorf("input focus query failed: %w", err)
	}
	return reply.Focus != xproto.WindowNone, nil
}

// IdleSeconds returns seconds since the last keyboard/mouse input.
func (s *Source) IdleSeconds() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply, err := screensaver.QueryInfo(s.conn, xproto.Drawable(s.root)).Reply()
	if err != nil {
		return 0, fmt.Errorf("idle time query failed: %w", err)
	}
	return int64(reply.MsSinceUserInput / 1000), nil
}

// Close tears down the X connection.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.Close()
	return nil
}
