package models

import (
	"testing"
	"time"
)

func TestSessionRecordDayKey(t *testing.T) {
	start := time.Date(2026, 3, 10, 23, 45, 0, 0, time.Local)
	rec := SessionRecord{StartedAt: start.UnixMilli()}

	if got := rec.DayKey(); got != "2026-03-10" {
		t.Errorf("DayKey = %q, want 2026-03-10", got)
	}
	if !rec.StartedAtTime().Equal(start) {
		t.Errorf("StartedAtTime = %v, want %v", rec.StartedAtTime(), start)
	}
}

func TestGamificationStateClone(t *testing.T) {
	orig := GamificationState{
		ID:           1,
		Points:       42,
		Streaks:      map[string]bool{"2026-03-10": true},
		Achievements: map[string]bool{"firstSession": true},
	}

	clone := orig.Clone()
	clone.Points = 100
	clone.Streaks["2026-03-11"] = true
	clone.Achievements["fiveSessions"] = true

	if orig.Points != 42 {
		t.Errorf("clone mutation leaked into original points: %d", orig.Points)
	}
	if len(orig.Streaks) != 1 {
		t.Errorf("clone mutation leaked into original streaks: %v", orig.Streaks)
	}
	if len(orig.Achievements) != 1 {
		t.Errorf("clone mutation leaked into original achievements: %v", orig.Achievements)
	}
}

func TestGamificationStateCloneNilMaps(t *testing.T) {
	var orig GamificationState
	clone := orig.Clone()

	// A clone of a zero state is always safe to write to.
	clone.Streaks["2026-03-10"] = true
	clone.Achievements["firstSession"] = true
}
