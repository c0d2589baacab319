package session

import "time"

// Evaluate classifies the current tick: focused iff the user showed activity
// within the idle threshold AND the host window has attention. Pure function;
// the start-of-session grace period is applied by the Controller before this
// is consulted.
func Evaluate(idle time.Duration, hasWindowAttention bool, idleThreshold time.Duration) bool {
	return idle <= idleThreshold && hasWindowAttention
}
