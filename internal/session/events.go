package session

import "focusd/internal/models"

// EventType tags the broadcasts the engine produces.
type EventType string

const (
	// EventProgress is emitted on every tick (and immediately on start).
	EventProgress EventType = "update_time"
	// EventComplete is emitted exactly once per session, carrying the record.
	EventComplete EventType = "session_complete"
)

// Event is one engine broadcast. Record is set only for EventComplete.
type Event struct {
	Type    EventType             `json:"type"`
	Time    string                `json:"time"` // MM:SS of elapsed
	Focused bool                  `json:"focused"`
	Record  *models.SessionRecord `json:"record,omitempty"`
}

const subscriberBuffer = 16

// Subscribe registers a listener for engine events. The returned cancel
// function must be called to release the subscription. Slow listeners miss
// events rather than stalling the tick loop.
func (c *Controller) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	c.subMu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subs[id] = ch
	c.subMu.Unlock()

	cancel := func() {
		c.subMu.Lock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
		c.subMu.Unlock()
	}
	return ch, cancel
}

// emit fans an event out to all subscribers without blocking.
func (c *Controller) emit(ev Event) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
