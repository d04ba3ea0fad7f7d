package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Runs table - one row per finished game
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			difficulty TEXT NOT NULL CHECK(difficulty IN ('easy', 'medium', 'hard')),
			score INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at DESC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
