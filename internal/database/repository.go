package database

import (
	"time"

	"focusd/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// Repository handles all database operations for session records and
// gamification state. It implements the session engine's Store contract.
type Repository struct {
	db         *DB
	historyCap int
}

// NewRepository creates a new repository instance. historyCap bounds how many
// session records are retained, newest first.
func NewRepository(db *DB, historyCap int) *Repository {
	if historyCap < 1 {
		historyCap = 100
	}
	return &Repository{db: db, historyCap: historyCap}
}

// AppendRecord inserts a completed session record and prunes history beyond
// the cap. The prune is a hard delete: capped-out records are gone, not
// soft-deleted rows accumulating forever.
func (r *Repository) AppendRecord(record *models.SessionRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	if err := r.db.Create(record).Error; err != nil {
		return errors.Wrap(err, "failed to insert session record")
	}

	result := r.db.Exec(`DELETE FROM session_records WHERE id NOT IN (
		SELECT id FROM session_records WHERE deleted_at IS NULL
		ORDER BY started_at DESC, created_at DESC LIMIT ?)`, r.historyCap)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to prune session history")
	}

	return nil
}

// Records returns retained session records, newest first.
func (r *Repository) Records() ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	result := r.db.Order("started_at DESC, created_at DESC").Limit(r.historyCap).Find(&records)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query session records")
	}
	return records, nil
}

// RecordsSince returns records whose session started at or after the given
// time, newest first.
func (r *Repository) RecordsSince(since time.Time) ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	result := r.db.Where("started_at >= ?", since.UnixMilli()).
		Order("started_at DESC").Find(&records)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query session records")
	}
	return records, nil
}

// Latest returns the most recent session record, or nil when history is
// empty.
func (r *Repository) Latest() (*models.SessionRecord, error) {
	var record models.SessionRecord
	result := r.db.Order("started_at DESC, created_at DESC").First(&record)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest record")
	}
	return &record, nil
}

// AttachNote stores a user note on the most recent session record.
func (r *Repository) AttachNote(note string) error {
	latest, err := r.Latest()
	if err != nil {
		return err
	}
	if latest == nil {
		return errors.New("no session records to annotate")
	}

	result := r.db.Model(&models.SessionRecord{}).
		Where("id = ?", latest.ID).Update("note", note)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to attach note")
	}
	return nil
}

// GamificationState loads the single reward-state row, returning a fresh
// zero state when none has been stored yet.
func (r *Repository) GamificationState() (*models.GamificationState, error) {
	var state models.GamificationState
	result := r.db.First(&state)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return &models.GamificationState{
				ID:           1,
				Streaks:      map[string]bool{},
				Achievements: map[string]bool{},
			}, nil
		}
		return nil, errors.Wrap(result.Error, "failed to load gamification state")
	}

	if state.Streaks == nil {
		state.Streaks = map[string]bool{}
	}
	if state.Achievements == nil {
		state.Achievements = map[string]bool{}
	}
	return &state, nil
}

// SaveGamificationState upserts the single reward-state row.
func (r *Repository) SaveGamificationState(state *models.GamificationState) error {
	if state.ID == 0 {
		state.ID = 1
	}
	if err := r.db.Save(state).Error; err != nil {
		return errors.Wrap(err, "failed to save gamification state")
	}
	return nil
}

// Clear removes all session records and reward state.
func (r *Repository) Clear() error {
	if err := r.db.Exec("DELETE FROM session_records").Error; err != nil {
		return errors.Wrap(err, "failed to clear session records")
	}
	if err := r.db.Exec("DELETE FROM gamification_states").Error; err != nil {
		return errors.Wrap(err, "failed to clear gamification state")
	}
	return nil
}
