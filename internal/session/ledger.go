package session

import (
	"math"

	"focusd/internal/models"
)

// Ledger accumulates per-tick classifications into the focus log and the
// running focused-second count, and folds a finished session into its
// SessionRecord.
type Ledger struct {
	log            []models.FocusSample
	focusedSeconds int
}

func NewLedger(targetSeconds int) *Ledger {
	n := targetSeconds
	if n < 0 {
		n = 0
	}
	return &Ledger{log: make([]models.FocusSample, 0, n)}
}

// Append records the classification of one elapsed second. second is
// zero-based and must equal len(log); the log is append-only.
func (l *Ledger) Append(second int, focused bool) {
	state := models.StateUnfocused
	if focused {
		state = models.StateFocused
		l.focusedSeconds++
	}
	l.log = append(l.log, models.FocusSample{Second: second, State: state})
}

// Len returns the number of classified seconds, which always equals the
// session's elapsed count.
func (l *Ledger) Len() int { return len(l.log) }

// FocusedSeconds returns the running focused count.
func (l *Ledger) FocusedSeconds() int { return l.focusedSeconds }

// LastFocused reports the classification of the most recent tick, defaulting
// to true when nothing has been classified yet.
func (l *Ledger) LastFocused() bool {
	if len(l.log) == 0 {
		return true
	}
	return l.log[len(l.log)-1].State == models.StateFocused
}

// Summarize produces the durable record for a finished session. The
// percentage and the unfocused remainder are computed against the target
// duration, not the elapsed count; the clamp keeps an early-stopped session
// from reporting a negative unfocused value.
func (l *Ledger) Summarize(id string, s *Session) *models.SessionRecord {
	duration := s.Duration
	focused := l.focusedSeconds

	unfocused := duration - focused
	if unfocused < 0 {
		unfocused = 0
	}

	pct := 0
	if duration > 0 {
		pct = int(math.Round(float64(focused) / float64(duration) * 100))
	}

	startedAt := s.StartedAt.UnixMilli()
	log := make([]models.FocusSample, len(l.log))
	copy(log, l.log)

	return &models.SessionRecord{
		ID:               id,
		StartedAt:        startedAt,
		EndedAt:          startedAt + int64(duration)*1000,
		Duration:         duration,
		Elapsed:          s.Elapsed,
		FocusedSeconds:   focused,
		UnfocusedSeconds: unfocused,
		FocusedPct:       pct,
		FocusLog:         log,
	}
}
