package models

import "time"

// GamificationState is the process-wide reward state, persisted as a single
// row and mutated only by applying the gamification derivation to a new
// session record. Points never decrease; achievements never re-lock.
type GamificationState struct {
	ID           uint            `gorm:"primaryKey" json:"-"`
	Points       int             `gorm:"not null;default:0" json:"points"`
	Streaks      map[string]bool `gorm:"serializer:json" json:"streaks"`
	Achievements map[string]bool `gorm:"serializer:json" json:"achievements"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"-"`
}

// Clone returns a deep copy so derivations can stay pure.
func (s *GamificationState) Clone() GamificationState {
	out := GamificationState{
		ID:           s.ID,
		Points:       s.Points,
		Streaks:      make(map[string]bool, len(s.Streaks)),
		Achievements: make(map[string]bool, len(s.Achievements)),
	}
	for k, v := range s.Streaks {
		out.Streaks[k] = v
	}
	for k, v := range s.Achievements {
		out.Achievements[k] = v
	}
	return out
}
