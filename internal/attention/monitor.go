package attention

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Pinger receives activity observations from the monitor.
type Pinger interface {
	NotifyActivity(at time.Time)
}

// Monitor polls the host idle counter and converts fresh input into activity
// pings for the session engine, so local keyboard/mouse use counts even when
// no external client is sending pings.
type Monitor struct {
	src      Source
	pinger   Pinger
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool
}

// NewMonitor creates a monitor polling src every interval (2s is the usual
// cadence, matching the ping throttle of external clients).
func NewMonitor(src Source, pinger Pinger, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Monitor{
		src:      src,
		pinger:   pinger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start polls until the context is canceled or Stop is called.
func (m *Monitor) Start(ctx context.Context) error {
	if !m.running.CompareAndSwap(false, true) {
		return fmt.Errorf("activity monitor is already running")
	}
	defer m.running.Store(false)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-m.stopChan:
			return nil

		case <-ticker.C:
			m.pollOnce()
		}
	}
}

// Stop ends the polling loop. Safe to call from any goroutine, repeatedly.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// pollOnce forwards an activity ping when the host saw input since the last
// poll. The ping carries the observed input time, not the poll time, so the
// engine's last-activity register stays honest.
func (m *Monitor) pollOnce() {
	idle, err := m.src.IdleSeconds()
	if err != nil {
		log.Printf("idle query failed: %v", err)
		return
	}

	if time.Duration(idle)*time.Second < m.interval {
		m.pinger.NotifyActivity(time.Now().Add(-time.Duration(idle) * time.Second))
	}
}
