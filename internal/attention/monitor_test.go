package attention

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSource struct {
	idle int64
	err  error
}

func (s *stubSource) HasWindowAttention() (bool, error) { return true, nil }
func (s *stubSource) IdleSeconds() (int64, error)       { return s.idle, s.err }
func (s *stubSource) Close() error                      { return nil }

type stubPinger struct {
	pings []time.Time
}

func (p *stubPinger) NotifyActivity(at time.Time) {
	p.pings = append(p.pings, at)
}

func TestMonitorPollForwardsFreshInput(t *testing.T) {
	src := &stubSource{idle: 0}
	pinger := &stubPinger{}
	m := NewMonitor(src, pinger, 2*time.Second)

	m.pollOnce()
	if len(pinger.pings) != 1 {
		t.Fatalf("expected 1 ping, got %d", len(pinger.pings))
	}
}

func TestMonitorPollSkipsStaleIdle(t *testing.T) {
	src := &stubSource{idle: 30}
	pinger := &stubPinger{}
	m := NewMonitor(src, pinger, 2*time.Second)

	m.pollOnce()
	if len(pinger.pings) != 0 {
		t.Fatalf("expected no pings for 30s idle, got %d", len(pinger.pings))
	}
}

func TestMonitorPollBackdatesPing(t *testing.T) {
	src := &stubSource{idle: 1}
	pinger := &stubPinger{}
	m := NewMonitor(src, pinger, 2*time.Second)

	before := time.Now()
	m.pollOnce()
	if len(pinger.pings) != 1 {
		t.Fatalf("expected 1 ping, got %d", len(pinger.pings))
	}
	// The ping carries when the input happened, about a second ago.
	if !pinger.pings[0].Before(before) {
		t.Error("ping timestamp should be backdated by the observed idle time")
	}
}

func TestMonitorPollToleratesSourceErrors(t *testing.T) {
	src := &stubSource{err: errors.New("connection lost")}
	pinger := &stubPinger{}
	m := NewMonitor(src, pinger, 2*time.Second)

	m.pollOnce()
	if len(pinger.pings) != 0 {
		t.Fatal("a failed idle query must not produce a ping")
	}
}

func TestMonitorStopFromAnotherGoroutine(t *testing.T) {
	m := NewMonitor(&stubSource{idle: 30}, &stubPinger{}, 5*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- m.Start(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	m.Stop()
	m.Stop() // repeated stops are fine

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned %v after Stop", err)
		}
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}

func TestMonitorStartHonorsContextCancel(t *testing.T) {
	m := NewMonitor(&stubSource{idle: 30}, &stubPinger{}, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Start(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Start returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop on context cancel")
	}
}

func TestMonitorDefaultInterval(t *testing.T) {
	m := NewMonitor(&stubSource{}, &stubPinger{}, 0)
	if m.interval != 2*time.Second {
		t.Errorf("default interval = %v, want 2s", m.interval)
	}
}
