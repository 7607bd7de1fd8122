// Package storage persists finished sessions and their replays in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps its database unless --db says otherwise.
const DefaultPath = "~/.tetris/tetris.db"

// Store manages the SQLite connection. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Session is one finished game.
type Session struct {
	ID        int64
	GameID    string
	Seed      int64
	Lines     int
	Pieces    int
	Duration  time.Duration // simulated play time
	Replay    []byte        // encoded replay; only loaded by SessionByID
	HasReplay bool
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			lines INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			replay BLOB,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_best ON sessions(game_id, lines DESC, pieces DESC);
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

// SaveSession records a finished game and returns its ID.
func (s *Store) SaveSession(sess Session) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions (game_id, seed, lines, pieces, duration_ms, replay)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sess.GameID, sess.Seed, sess.Lines, sess.Pieces, sess.Duration.Milliseconds(), sess.Replay,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SessionByID loads one session including its replay. Returns nil if it does not exist.
func (s *Store) SessionByID(id int64) (*Session, error) {
	var sess Session
	var durationMs int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, game_id, seed, lines, pieces, duration_ms, replay, created_at
		 FROM sessions
		 WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.GameID, &sess.Seed, &sess.Lines, &sess.Pieces, &durationMs, &sess.Replay, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}

	sess.Duration = time.Duration(durationMs) * time.Millisecond
	sess.HasReplay = len(sess.Replay) > 0
	sess.CreatedAt = parseTime(createdAt)
	return &sess, nil
}

const listColumns = `id, game_id, seed, lines, pieces, duration_ms,
	COALESCE(length(replay), 0) > 0, created_at`

// RecentSessions returns the newest sessions, optionally for one game ("" means all).
// Replays are not loaded.
func (s *Store) RecentSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+listColumns+`
		 FROM sessions
		 WHERE ? = '' OR game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

// BestSessions returns the sessions with the most cleared lines for gameID.
// Ties go to fewer pieces, then to the older session.
func (s *Store) BestSessions(gameID string, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+listColumns+`
		 FROM sessions
		 WHERE game_id = ?
		 ORDER BY lines DESC, pieces ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]Session, error) {
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var durationMs int64
		var createdAt any
		if err := rows.Scan(
			&sess.ID, &sess.GameID, &sess.Seed, &sess.Lines, &sess.Pieces,
			&durationMs, &sess.HasReplay, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.Duration = time.Duration(durationMs) * time.Millisecond
		sess.CreatedAt = parseTime(createdAt)
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// BestLines returns the most lines cleared in one session of gameID, or 0.
func (s *Store) BestLines(gameID string) (int, error) {
	var lines sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(lines) FROM sessions WHERE game_id = ?",
		gameID,
	).Scan(&lines)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best lines: %w", err)
	}

	if !lines.Valid {
		return 0, nil
	}

	return int(lines.Int64), nil
}

// ClearSessions deletes every session of gameID.
func (s *Store) ClearSessions(gameID string) error {
	_, err := s.db.Exec("DELETE FROM sessions WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// GameStats aggregates the sessions of one game.
type GameStats struct {
	GameID      string
	Games       int
	BestLines   int
	AvgLines    float64
	TotalLines  int64
	TotalPieces int64
	LastPlayed  time.Time
}

// Stats returns aggregated statistics for gameID. Games is 0 if it was never played.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(lines), 0), COALESCE(AVG(lines), 0),
		        COALESCE(SUM(lines), 0), COALESCE(SUM(pieces), 0), MAX(created_at)
		 FROM sessions WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Games, &stats.BestLines, &stats.AvgLines, &stats.TotalLines, &stats.TotalPieces, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats returns statistics for every game that has been played.
func (s *Store) AllStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(lines), AVG(lines), SUM(lines), SUM(pieces), MAX(created_at)
		 FROM sessions
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.Games, &gs.BestLines, &gs.AvgLines, &gs.TotalLines, &gs.TotalPieces, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning DATETIME columns as either time.Time or text.
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
