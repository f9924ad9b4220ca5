// Package storage provides SQLite-based persistence for finished training
// episodes. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the episode log.
type Store struct {
	db *sql.DB
}

// EpisodeResult is the summary of one finished episode.
type EpisodeResult struct {
	ID           int64
	RunID        uuid.UUID
	EnvID        string
	Episode      int // index within the run, starting at 1
	Seed         int64
	Steps        int
	Pieces       int
	TotalReward  float64
	NormalLines  int
	GarbageLines int
	Truncated    bool // ended by the step limit rather than game over
	CreatedAt    time.Time
}

// Lines returns the total rows cleared in the episode.
func (e EpisodeResult) Lines() int {
	return e.NormalLines + e.GarbageLines
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			env_id TEXT NOT NULL,
			episode INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			steps INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			total_reward REAL NOT NULL DEFAULT 0,
			normal_lines INTEGER NOT NULL DEFAULT 0,
			garbage_lines INTEGER NOT NULL DEFAULT 0,
			truncated INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_env_id ON episodes(env_id);
		CREATE INDEX IF NOT EXISTS idx_episodes_top ON episodes(env_id, total_reward DESC);
		CREATE INDEX IF NOT EXISTS idx_episodes_run ON episodes(run_id, episode);
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

// SaveEpisode records a finished episode.
// Returns the ID of the inserted record.
func (s *Store) SaveEpisode(e EpisodeResult) (int64, error) {
	if e.RunID == uuid.Nil {
		return 0, errors.New("storage: episode has no run id")
	}

	result, err := s.db.Exec(
		`INSERT INTO episodes
		 (run_id, env_id, episode, seed, steps, pieces, total_reward, normal_lines, garbage_lines, truncated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID.String(),
		e.EnvID,
		e.Episode,
		e.Seed,
		e.Steps,
		e.Pieces,
		e.TotalReward,
		e.NormalLines,
		e.GarbageLines,
		e.Truncated,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const episodeColumns = `id, run_id, env_id, episode, seed, steps, pieces, total_reward,
		        normal_lines, garbage_lines, truncated, created_at`

// TopEpisodes retrieves the N highest-reward episodes for an environment.
func (s *Store) TopEpisodes(envID string, limit int) ([]EpisodeResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE env_id = ?
		 ORDER BY total_reward DESC, id ASC
		 LIMIT ?`,
		envID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	return scanEpisodes(rows)
}

// RunEpisodes retrieves every episode of one run in episode order.
func (s *Store) RunEpisodes(runID uuid.UUID) ([]EpisodeResult, error) {
	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE run_id = ?
		 ORDER BY episode ASC`,
		runID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return scanEpisodes(rows)
}

// scanEpisodes reads and closes rows.
func scanEpisodes(rows *sql.Rows) ([]EpisodeResult, error) {
	defer rows.Close()

	var episodes []EpisodeResult
	for rows.Next() {
		var e EpisodeResult
		var runID string
		var createdAt any
		if err := rows.Scan(
			&e.ID,
			&runID,
			&e.EnvID,
			&e.Episode,
			&e.Seed,
			&e.Steps,
			&e.Pieces,
			&e.TotalReward,
			&e.NormalLines,
			&e.GarbageLines,
			&e.Truncated,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		parsed, err := uuid.Parse(runID)
		if err != nil {
			return nil, fmt.Errorf("storage: bad run id %q: %w", runID, err)
		}
		e.RunID = parsed
		e.CreatedAt = parseTime(createdAt)

		episodes = append(episodes, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return episodes, nil
}

// EnvStats contains aggregated statistics for an environment.
type EnvStats struct {
	EnvID       string
	Episodes    int
	Runs        int
	BestReward  float64
	AvgReward   float64
	AvgSteps    float64
	MaxLines    int
	TotalLines  int64
	LastEpisode time.Time
}

// GetEnvStats retrieves aggregated statistics for a specific environment.
func (s *Store) GetEnvStats(envID string) (*EnvStats, error) {
	stats := &EnvStats{EnvID: envID}

	var lastEpisode any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT run_id),
		        COALESCE(MAX(total_reward), 0), COALESCE(AVG(total_reward), 0),
		        COALESCE(AVG(steps), 0),
		        COALESCE(MAX(normal_lines + garbage_lines), 0),
		        COALESCE(SUM(normal_lines + garbage_lines), 0),
		        MAX(created_at)
		 FROM episodes WHERE env_id = ?`,
		envID,
	).Scan(
		&stats.Episodes,
		&stats.Runs,
		&stats.BestReward,
		&stats.AvgReward,
		&stats.AvgSteps,
		&stats.MaxLines,
		&stats.TotalLines,
		&lastEpisode,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get env stats: %w", err)
	}
	stats.LastEpisode = parseTime(lastEpisode)

	return stats, nil
}

// ClearEpisodes deletes all episodes for the given environment.
func (s *Store) ClearEpisodes(envID string) error {
	_, err := s.db.Exec("DELETE FROM episodes WHERE env_id = ?", envID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}

// parseTime handles the datetime column as either time.Time or string,
// depending on how the driver returns it.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
