// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smarterGerman/diktat/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for dictation session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			lesson TEXT NOT NULL,
			preserve_case INTEGER NOT NULL,
			total_words INTEGER NOT NULL,
			attempted_words INTEGER NOT NULL,
			correct_words INTEGER NOT NULL,
			incorrect_words INTEGER NOT NULL,
			accuracy_pct REAL NOT NULL,
			completion_pct REAL NOT NULL,
			substitutions INTEGER NOT NULL,
			insertions INTEGER NOT NULL,
			deletions INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_sentences (
			session_id INTEGER NOT NULL,
			idx INTEGER NOT NULL,
			reference TEXT NOT NULL,
			transcript TEXT NOT NULL,
			attempted INTEGER NOT NULL,
			ref_words INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			PRIMARY KEY (session_id, idx)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_lesson ON sessions(lesson);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a completed exercise and its per-sentence results.
func (s *Store) InsertSession(ctx context.Context, stats model.SessionStats, sentences []model.SentenceResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		// No-op once the transaction is committed.
		if rerr := tx.Rollback(); rerr != nil {
			_ = rerr
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, lesson, preserve_case, total_words, attempted_words, correct_words, incorrect_words, accuracy_pct, completion_pct, substitutions, insertions, deletions, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Lesson,
		boolToInt(stats.PreserveCase),
		stats.TotalWords,
		stats.AttemptedWords,
		stats.CorrectWords,
		stats.IncorrectWords,
		stats.AccuracyPct,
		stats.CompletionPct,
		stats.Substitutions,
		stats.Insertions,
		stats.Deletions,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(sentences) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO session_sentences (session_id, idx, reference, transcript, attempted, ref_words, correct, incorrect)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, sr := range sentences {
			if _, err := stmt.ExecContext(ctx, id, sr.Index, sr.Reference, sr.Transcript, boolToInt(sr.Attempted), sr.RefWords, sr.Correct, sr.Incorrect); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Lesson != "" {
		clauses = append(clauses, "lesson = ?")
		args = append(args, cfg.Lesson)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, lesson, total_words, attempted_words, correct_words, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Lesson, &agg.TotalWords, &agg.AttemptedWords, &agg.CorrectWords, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListSentences returns the per-sentence results of one session in order.
func (s *Store) ListSentences(ctx context.Context, sessionID int64) ([]model.SentenceResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, reference, transcript, attempted, ref_words, correct, incorrect
		 FROM session_sentences
		 WHERE session_id = ?
		 ORDER BY idx ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.SentenceResult
	for rows.Next() {
		var sr model.SentenceResult
		var attempted int
		if err := rows.Scan(&sr.Index, &sr.Reference, &sr.Transcript, &attempted, &sr.RefWords, &sr.Correct, &sr.Incorrect); err != nil {
			return nil, err
		}
		sr.Attempted = attempted != 0
		results = append(results, sr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
