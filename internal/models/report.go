package models

import "time"

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Type  string    `json:"type"` // "day", "week", "month"
}

// DayBucket aggregates focused time for one weekday column of a report.
type DayBucket struct {
	Weekday        string `json:"weekday"` // "Sun".."Sat"
	FocusedMinutes int    `json:"focused_minutes"`
}

// FocusReport summarizes session history over a period.
type FocusReport struct {
	Period          ReportPeriod `json:"period"`
	Sessions        int          `json:"sessions"`
	FocusedSeconds  int          `json:"focused_seconds"`
	DurationSeconds int          `json:"duration_seconds"`
	AvgFocusPct     int          `json:"avg_focus_pct"`
	Days            []DayBucket  `json:"days"`
	GeneratedAt     time.Time    `json:"generated_at"`
}

// StreakSummary is the display view of the streak calendar.
type StreakSummary struct {
	Current int             `json:"current"` // consecutive days ending today
	Longest int             `json:"longest"`
	Days    map[string]bool `json:"days"` // YYYY-MM-DD -> completed
}
