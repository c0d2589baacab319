package session

import (
	"fmt"
	"time"

	"focusd/internal/models"
	"focusd/internal/notify"
	"focusd/pkg/timefmt"
)

// NotificationPolicy decides when a notice is requested; delivery belongs to
// the injected Notifier. The idle warning fires at most once per idle
// episode: the Session's IdleNotified flag latches it and a fresh activity
// ping clears it.
type NotificationPolicy struct {
	warnAfter time.Duration
	notifier  notify.Notifier
}

func NewNotificationPolicy(warnAfter time.Duration, notifier notify.Notifier) *NotificationPolicy {
	return &NotificationPolicy{warnAfter: warnAfter, notifier: notifier}
}

// ObserveTick checks the idle-warning rule for one classified tick. Only
// ticks already classified unfocused are eligible.
func (p *NotificationPolicy) ObserveTick(s *Session, idle time.Duration, focused bool) {
	if focused || s.IdleNotified || idle < p.warnAfter {
		return
	}
	s.IdleNotified = true
	p.notifier.Notify(notify.KindIdleWarning, "Are you still focusing?",
		fmt.Sprintf("No activity for %s. The session keeps counting this time as unfocused.",
			timefmt.RoundedUnit(int64(idle/time.Second))))
}

// SessionComplete requests the end-of-session notice, once per lifecycle.
func (p *NotificationPolicy) SessionComplete(record *models.SessionRecord) {
	p.notifier.Notify(notify.KindSessionComplete, "Focus session complete",
		fmt.Sprintf("%s focused (%d%%)",
			timefmt.Clock(record.FocusedSeconds), record.FocusedPct))
}

// ModeChanged requests the mode-change notice.
func (p *NotificationPolicy) ModeChanged(mode Mode, idleThreshold time.Duration) {
	p.notifier.Notify(notify.KindModeChanged, "Focus mode changed",
		fmt.Sprintf("%s mode: unfocused after %s without activity",
			mode, timefmt.RoundedUnit(int64(idleThreshold/time.Second))))
}
