// Package gamification turns completed session records into points, streak
// days and achievements. Apply is a pure derivation: it never mutates its
// inputs, never throws away prior rewards, and tolerates malformed history
// entries (zero values count as zero).
package gamification

import (
	"math"

	"focusd/internal/models"
)

// Achievement keys. Each is a one-way latch: once unlocked it stays unlocked
// on every subsequent derivation, whatever the history input looks like.
const (
	AchFirstSession  = "firstSession"
	AchFiveSessions  = "fiveSessions"
	AchTenHours      = "tenHours"
	AchFiveDayStreak = "fiveDayStreak"
)

const (
	// A calendar day counts as completed when one session reached 25 focused
	// minutes or 80% focus.
	streakDaySeconds = 1500
	streakDayPct     = 80

	tenHoursSeconds  = 36000
	fiveSessionCount = 5
	fiveStreakDays   = 5
)

// PointsEarned returns the points a single record awards: one per focused
// minute, rounded, never less than one. The floor also covers short
// high-focus sessions, which earn their point even when the rounded minute
// count is zero.
func PointsEarned(record *models.SessionRecord) int {
	if record == nil {
		return 0
	}
	focused := record.FocusedSeconds
	if focused < 0 {
		focused = 0
	}
	earned := int(math.Round(float64(focused) / 60))
	if earned < 1 {
		earned = 1
	}
	return earned
}

// CompletesDay reports whether a record marks its calendar day as completed.
func CompletesDay(record *models.SessionRecord) bool {
	return record.FocusedSeconds >= streakDaySeconds || record.FocusedPct >= streakDayPct
}

// Apply folds one new record into the prior state. Points only grow, streak
// days are never unmarked, achievements never re-lock.
func Apply(record *models.SessionRecord, history []models.SessionRecord, prior *models.GamificationState) models.GamificationState {
	next := prior.Clone()

	if record != nil {
		next.Points += PointsEarned(record)
		if CompletesDay(record) {
			next.Streaks[record.DayKey()] = true
		}
	}

	totalFocused := 0
	for i := range history {
		if history[i].FocusedSeconds > 0 {
			totalFocused += history[i].FocusedSeconds
		}
	}

	completedDays := 0
	for _, done := range next.Streaks {
		if done {
			completedDays++
		}
	}

	latch(next.Achievements, AchFirstSession, len(history) >= 1)
	latch(next.Achievements, AchFiveSessions, len(history) >= fiveSessionCount)
	latch(next.Achievements, AchTenHours, totalFocused >= tenHoursSeconds)
	// Five distinct completed days, not necessarily consecutive.
	latch(next.Achievements, AchFiveDayStreak, completedDays >= fiveStreakDays)

	return next
}

func latch(achievements map[string]bool, key string, unlocked bool) {
	if unlocked {
		achievements[key] = true
	}
}
