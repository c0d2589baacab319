package session

import (
	"sync/atomic"
	"time"
)

// ActivityTracker records the timestamp of the most recent user-activity
// signal. Pings arrive asynchronously and are order-independent: the register
// always holds the newest timestamp seen, with no lock beyond the atomic
// swap.
type ActivityTracker struct {
	lastUnixMilli atomic.Int64
}

// NewActivityTracker returns a tracker primed with the given time, so the
// seconds immediately after construction count as active.
func NewActivityTracker(now time.Time) *ActivityTracker {
	t := &ActivityTracker{}
	t.lastUnixMilli.Store(now.UnixMilli())
	return t
}

// Touch records an activity signal. Stale timestamps (older than the current
// register value) are ignored: last-write-by-timestamp wins.
func (t *ActivityTracker) Touch(at time.Time) {
	ms := at.UnixMilli()
	for {
		cur := t.lastUnixMilli.Load()
		if ms <= cur {
			return
		}
		if t.lastUnixMilli.CompareAndSwap(cur, ms) {
			return
		}
	}
}

// IdleFor returns how long the user has been without activity as of now.
// Never negative.
func (t *ActivityTracker) IdleFor(now time.Time) time.Duration {
	d := now.Sub(time.UnixMilli(t.lastUnixMilli.Load()))
	if d < 0 {
		return 0
	}
	return d
}

// LastActivity returns the timestamp currently held in the register.
func (t *ActivityTracker) LastActivity() time.Time {
	return time.UnixMilli(t.lastUnixMilli.Load())
}
