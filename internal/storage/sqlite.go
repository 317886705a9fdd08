// Package storage provides SQLite-based persistence for course runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunEntry is one recorded course run.
type RunEntry struct {
	ID          int64
	CourseID    string
	Completed   bool
	Ticks       uint64 // Session length in simulation ticks
	Deaths      int
	Checkpoints int
	Score       int
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS course_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			course_id TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			deaths INTEGER NOT NULL DEFAULT 0,
			checkpoints INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_course_id ON course_runs(course_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON course_runs(course_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_fastest ON course_runs(course_id, completed, ticks ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records one finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO course_runs (course_id, completed, ticks, deaths, checkpoints, score)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.CourseID, r.Completed, r.Ticks, r.Deaths, r.Checkpoints, r.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestRuns retrieves the top N runs for a course, ordered by score
// descending with completed runs first.
func (s *Store) BestRuns(courseID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, course_id, completed, ticks, deaths, checkpoints, score, created_at
		 FROM course_runs
		 WHERE course_id = ?
		 ORDER BY completed DESC, score DESC
		 LIMIT ?`,
		courseID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// FastestRun returns the completed run with the fewest ticks, or nil if
// the course was never completed.
func (s *Store) FastestRun(courseID string) (*RunEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, course_id, completed, ticks, deaths, checkpoints, score, created_at
		 FROM course_runs
		 WHERE course_id = ? AND completed = 1
		 ORDER BY ticks ASC
		 LIMIT 1`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query fastest run: %w", err)
	}
	defer rows.Close()

	entries, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// BestScore returns the highest score recorded for a course.
// Returns 0 if no runs exist.
func (s *Store) BestScore(courseID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM course_runs WHERE course_id = ?",
		courseID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given course.
func (s *Store) ClearRuns(courseID string) error {
	_, err := s.db.Exec("DELETE FROM course_runs WHERE course_id = ?", courseID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]RunEntry, error) {
	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.CourseID, &e.Completed, &e.Ticks, &e.Deaths, &e.Checkpoints, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}
