package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"focusd/internal/config"
	"focusd/internal/gamification"
	"focusd/internal/models"
	"focusd/internal/notify"
	"focusd/pkg/timefmt"
)

// AttentionQuerier reports whether the host window currently has the user's
// attention. Queried once per tick after the grace period.
type AttentionQuerier interface {
	HasWindowAttention() (bool, error)
}

// Store persists session records and gamification state.
type Store interface {
	Records() ([]models.SessionRecord, error)
	AppendRecord(record *models.SessionRecord) error
	GamificationState() (*models.GamificationState, error)
	SaveGamificationState(state *models.GamificationState) error
}

// Controller is the session engine: the Idle/Running/Ending state machine,
// the single tick scheduler, and the sequencing of classification, ledger
// aggregation, notification policy and gamification. One live session at a
// time; start/stop/tick are mutually exclusive critical sections behind mu,
// so a stop racing a natural-completion tick is resolved by whichever runs
// first seeing Running and the other seeing the already-advanced state.
type Controller struct {
	cfg       *config.Config
	store     Store
	attention AttentionQuerier
	policy    *NotificationPolicy
	activity  *ActivityTracker

	now func() time.Time

	mu     sync.Mutex
	state  State
	mode   Mode
	sess   *Session
	ledger *Ledger
	stopCh chan struct{}

	subMu     sync.Mutex
	subs      map[int]chan Event
	nextSubID int
}

// NewController wires the engine with its collaborators. attention may be nil
// (attention is then assumed); notifier may be nil (notices go to the log).
func NewController(cfg *config.Config, store Store, attention AttentionQuerier, notifier notify.Notifier) *Controller {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	return &Controller{
		cfg:       cfg,
		store:     store,
		attention: attention,
		policy:    NewNotificationPolicy(cfg.Session.IdleWarnThreshold, notifier),
		activity:  NewActivityTracker(time.Now()),
		now:       time.Now,
		state:     StateIdle,
		mode:      ModeActive,
		subs:      make(map[int]chan Event),
	}
}

// Start begins a session. Rejected with ErrAlreadyRunning while a session is
// live; the running session is left untouched. The first progress event
// (00:00, focused) is emitted before Start returns.
func (c *Controller) Start(durationSeconds int, mode Mode) error {
	if durationSeconds <= 0 {
		return ErrInvalidDuration
	}
	if mode != "" && !ValidMode(mode) {
		return ErrInvalidMode
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return ErrAlreadyRunning
	}
	if mode != "" {
		c.mode = mode
	}

	now := c.now()
	c.sess = &Session{
		Duration:  durationSeconds,
		Mode:      c.mode,
		StartedAt: now,
	}
	c.ledger = NewLedger(durationSeconds)

	// Prime the activity register so the first post-grace seconds count as
	// active even before the user generates a ping.
	c.activity.Touch(now)

	c.state = StateRunning
	c.stopCh = make(chan struct{})
	ticker := time.NewTicker(c.cfg.Session.TickInterval)
	go c.run(ticker, c.stopCh)

	log.Printf("session started: %ds target, %s mode", durationSeconds, c.mode)
	c.emit(Event{Type: EventProgress, Time: timefmt.Clock(0), Focused: true})
	return nil
}

// Stop terminates the running session early. The partial session still
// produces its record and goes through gamification exactly once.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return ErrNotRunning
	}
	c.finishLocked()
	return nil
}

// Shutdown stops any running session, recording it as an early stop, and
// closes all event subscriptions so streaming handlers can exit. Safe to call
// when idle.
func (c *Controller) Shutdown() {
	if err := c.Stop(); err != nil && err != ErrNotRunning {
		log.Printf("session shutdown: %v", err)
	}

	c.subMu.Lock()
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
	c.subMu.Unlock()
}

// NotifyActivity records a user-activity signal. Valid in any state. While a
// session is running it also re-arms the idle warning.
func (c *Controller) NotifyActivity(at time.Time) {
	if at.IsZero() {
		at = c.now()
	}
	c.activity.Touch(at)

	c.mu.Lock()
	if c.state == StateRunning && c.sess != nil {
		c.sess.IdleNotified = false
	}
	c.mu.Unlock()
}

// SetMode switches the idle threshold used for subsequent ticks. Past ticks
// are never reclassified. Returns the threshold now in effect.
func (c *Controller) SetMode(mode Mode) (time.Duration, error) {
	if !ValidMode(mode) {
		return 0, ErrInvalidMode
	}

	c.mu.Lock()
	c.mode = mode
	if c.sess != nil {
		c.sess.Mode = mode
	}
	threshold := c.idleThresholdLocked()
	c.mu.Unlock()

	c.policy.ModeChanged(mode, threshold)
	return threshold, nil
}

// Status returns a snapshot of the engine. The focused flag reflects the last
// classified tick of the running session, defaulting to true before the first
// tick and false when no session is running.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{State: c.state, Mode: c.mode}
	if c.state == StateRunning {
		st.Elapsed = c.sess.Elapsed
		st.Duration = c.sess.Duration
		st.Focused = c.ledger.LastFocused()
	}
	st.Time = timefmt.Clock(st.Elapsed)
	return st
}

// run is the single tick scheduler. Ticks execute synchronously inside
// tick(), attention query included, so a tick can never begin while the
// previous one is outstanding.
func (c *Controller) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

// tick classifies one elapsed second. A tick arriving after stop() has
// advanced the state is a no-op.
func (c *Controller) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}

	s := c.sess
	s.Elapsed++
	now := c.now()

	graceSeconds := int(c.cfg.Session.GracePeriod / time.Second)
	focused := true
	if s.Elapsed > graceSeconds {
		idle := c.idleSinceLocked(now)
		focused = Evaluate(idle, c.windowAttention(), c.idleThresholdLocked())
		c.policy.ObserveTick(s, idle, focused)
	}
	c.ledger.Append(s.Elapsed-1, focused)

	c.emit(Event{Type: EventProgress, Time: timefmt.Clock(s.Elapsed), Focused: focused})

	if s.Elapsed >= s.Duration {
		c.finishLocked()
	}
}

// finishLocked runs the Ending sequence: cancel the scheduler, produce the
// record, persist, derive gamification, broadcast, notify, reset to Idle.
// Storage failures are logged and never abort the lifecycle; the in-memory
// record is still broadcast. Caller must hold mu.
func (c *Controller) finishLocked() {
	c.state = StateEnding

	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}

	record := c.ledger.Summarize(uuid.NewString(), c.sess)

	if err := c.store.AppendRecord(record); err != nil {
		log.Printf("failed to persist session record %s: %v", record.ID, err)
	}

	history, err := c.store.Records()
	if err != nil {
		log.Printf("failed to load session history: %v", err)
	}
	if !containsRecord(history, record.ID) {
		history = append([]models.SessionRecord{*record}, history...)
	}

	prior, err := c.store.GamificationState()
	if err != nil {
		log.Printf("failed to load gamification state: %v", err)
	}
	if prior == nil {
		prior = &models.GamificationState{}
	}
	next := gamification.Apply(record, history, prior)
	if err := c.store.SaveGamificationState(&next); err != nil {
		log.Printf("failed to save gamification state: %v", err)
	}

	log.Printf("session %s ended: %d/%ds focused (%d%%), elapsed %ds",
		record.ID, record.FocusedSeconds, record.Duration, record.FocusedPct, record.Elapsed)

	c.emit(Event{
		Type:    EventComplete,
		Time:    timefmt.Clock(c.sess.Elapsed),
		Focused: c.ledger.LastFocused(),
		Record:  record,
	})
	c.policy.SessionComplete(record)

	c.sess = nil
	c.ledger = nil
	c.state = StateIdle
}

// windowAttention queries the host. Fail open: a broken or absent host query
// must not mark the user unfocused, so classification degrades to the
// activity-idle signal alone. Deliberate, inherited behavior.
func (c *Controller) windowAttention() bool {
	if c.attention == nil {
		return true
	}
	ok, err := c.attention.HasWindowAttention()
	if err != nil {
		log.Printf("window attention query failed, assuming attention: %v", err)
		return true
	}
	return ok
}

// idleSinceLocked measures idleness against the later of the last activity
// ping and the end of the grace window. The graced seconds never count toward
// idleness: with one ping at start and a 15s threshold, unfocus begins 15s
// after the grace window ends, not 15s after the ping. Caller must hold mu.
func (c *Controller) idleSinceLocked(now time.Time) time.Duration {
	base := c.activity.LastActivity()
	if graceEnd := c.sess.StartedAt.Add(c.cfg.Session.GracePeriod); base.Before(graceEnd) {
		base = graceEnd
	}
	idle := now.Sub(base)
	if idle < 0 {
		return 0
	}
	return idle
}

func (c *Controller) idleThresholdLocked() time.Duration {
	if c.mode == ModeReading {
		return c.cfg.Session.ReadingIdleThreshold
	}
	return c.cfg.Session.ActiveIdleThreshold
}

func containsRecord(history []models.SessionRecord, id string) bool {
	for i := range history {
		if history[i].ID == id {
			return true
		}
	}
	return false
}
