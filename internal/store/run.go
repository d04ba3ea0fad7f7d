package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Run is a finished game.
type Run struct {
	ID         string    `json:"id"`
	Difficulty string    `json:"difficulty"`
	Score      int       `json:"score"`
	Frames     int       `json:"frames"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

// RunRepository provides access to the run history.
type RunRepository struct {
	db *sql.DB
}

// Runs returns the run repository for this store.
func (s *Store) Runs() *RunRepository {
	return &RunRepository{db: s.db}
}

// Create inserts a run, assigning an ID when it has none.
func (r *RunRepository) Create(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.EndedAt.IsZero() {
		run.EndedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO runs (id, difficulty, score, frames, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Difficulty, run.Score, run.Frames, run.StartedAt, run.EndedAt,
	)
	return err
}

// GetByID retrieves a run by its ID.
func (r *RunRepository) GetByID(id string) (*Run, error) {
	run := &Run{}
	err := r.db.QueryRow(
		`SELECT id, difficulty, score, frames, started_at, ended_at
		 FROM runs WHERE id = ?`,
		id,
	).Scan(&run.ID, &run.Difficulty, &run.Score, &run.Frames, &run.StartedAt, &run.EndedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// List returns the most recent runs first. A limit <= 0 returns all runs.
func (r *RunRepository) List(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(
		`SELECT id, difficulty, score, frames, started_at, ended_at
		 FROM runs ORDER BY ended_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		if err := rows.Scan(&run.ID, &run.Difficulty, &run.Score, &run.Frames, &run.StartedAt, &run.EndedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

// Best returns the highest score recorded, or 0 without runs.
func (r *RunRepository) Best() (int, error) {
	var best int
	err := r.db.QueryRow(`SELECT COALESCE(MAX(score), 0) FROM runs`).Scan(&best)
	return best, err
}

// Count returns the number of recorded runs.
func (r *RunRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n)
	return n, err
}
