package models

import (
	"time"

	"gorm.io/gorm"
)

// FocusState classifies a single elapsed second of a session.
type FocusState string

const (
	StateFocused   FocusState = "focused"
	StateUnfocused FocusState = "unfocused"
)

// FocusSample is one focus-log entry: the classification of one elapsed
// second. Second is zero-based.
type FocusSample struct {
	Second int        `json:"second"`
	State  FocusState `json:"state"`
}

// SessionRecord is the durable summary of one session, produced exactly once
// per session lifecycle (natural completion or early stop). Immutable after
// creation except for the optional user note.
type SessionRecord struct {
	ID               string         `gorm:"primaryKey" json:"id"`
	StartedAt        int64          `gorm:"not null;index" json:"started_at"` // epoch ms
	EndedAt          int64          `gorm:"not null" json:"ended_at"`         // epoch ms
	Duration         int            `gorm:"not null;default:0" json:"duration"` // target seconds
	Elapsed          int            `gorm:"not null;default:0" json:"elapsed"`
	FocusedSeconds   int            `gorm:"not null;default:0" json:"focused_seconds"`
	UnfocusedSeconds int            `gorm:"not null;default:0" json:"unfocused_seconds"`
	FocusedPct       int            `gorm:"not null;default:0" json:"focused_pct"`
	FocusLog         []FocusSample  `gorm:"serializer:json" json:"focus_log"`
	Note             string         `json:"note,omitempty"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// StartedAtTime returns the session start as a time.Time in the local zone.
func (r *SessionRecord) StartedAtTime() time.Time {
	return time.UnixMilli(r.StartedAt)
}

// DayKey returns the local calendar date of the session start, formatted
// YYYY-MM-DD. Streak days are keyed by this value.
func (r *SessionRecord) DayKey() string {
	return r.StartedAtTime().Format("2006-01-02")
}
