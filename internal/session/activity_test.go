package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivityTrackerTouchAndIdle(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tr := NewActivityTracker(base)

	assert.Equal(t, time.Duration(0), tr.IdleFor(base))
	assert.Equal(t, 10*time.Second, tr.IdleFor(base.Add(10*time.Second)))

	tr.Touch(base.Add(8 * time.Second))
	assert.Equal(t, 2*time.Second, tr.IdleFor(base.Add(10*time.Second)))
}

func TestActivityTrackerIgnoresStaleTimestamps(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tr := NewActivityTracker(base)

	tr.Touch(base.Add(30 * time.Second))
	tr.Touch(base.Add(5 * time.Second)) // older ping, arrives late

	assert.Equal(t, base.Add(30*time.Second).UnixMilli(), tr.LastActivity().UnixMilli())
}

func TestActivityTrackerIdleNeverNegative(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tr := NewActivityTracker(base.Add(time.Minute))

	assert.Equal(t, time.Duration(0), tr.IdleFor(base))
}

func TestActivityTrackerConcurrentTouches(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tr := NewActivityTracker(base)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			tr.Touch(base.Add(time.Duration(offset) * time.Second))
		}(i)
	}
	wg.Wait()

	// The newest timestamp always wins, whatever the arrival order.
	assert.Equal(t, base.Add(49*time.Second).UnixMilli(), tr.LastActivity().UnixMilli())
}
