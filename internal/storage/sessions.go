package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ClapSession summarises one detector run, live or replayed.
type ClapSession struct {
	ID          string // uuid, assigned on save when empty
	Source      string // "mic:<device>" or "file:<path>"
	StartedAt   time.Time
	EndedAt     time.Time
	Claps       int
	Sensitivity float64
	Threshold   float64
	MeanPeak    float64 // mean peak of the fired events
}

// Duration is EndedAt - StartedAt.
func (c ClapSession) Duration() time.Duration {
	return c.EndedAt.Sub(c.StartedAt)
}

// SaveClapSession records a session and returns its ID.
func (s *Store) SaveClapSession(c ClapSession) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO clap_sessions
		 (id, source, started_at, ended_at, claps, sensitivity, threshold, mean_peak)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Source,
		formatTime(c.StartedAt),
		formatTime(c.EndedAt),
		c.Claps,
		c.Sensitivity,
		c.Threshold,
		c.MeanPeak,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save clap session: %w", err)
	}
	return c.ID, nil
}

// ClapSessionByID retrieves a session. Returns ErrNotFound when absent.
func (s *Store) ClapSessionByID(id string) (*ClapSession, error) {
	row := s.db.QueryRow(
		`SELECT id, source, started_at, ended_at, claps, sensitivity, threshold, mean_peak
		 FROM clap_sessions
		 WHERE id = ?`,
		id,
	)
	c, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clap session: %w", err)
	}
	return &c, nil
}

// RecentClapSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentClapSessions(limit int) ([]ClapSession, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, source, started_at, ended_at, claps, sensitivity, threshold, mean_peak
		 FROM clap_sessions
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clap sessions: %w", err)
	}
	defer rows.Close()

	var sessions []ClapSession
	for rows.Next() {
		c, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (ClapSession, error) {
	var c ClapSession
	var started, ended any
	err := r.Scan(&c.ID, &c.Source, &started, &ended, &c.Claps, &c.Sensitivity, &c.Threshold, &c.MeanPeak)
	if err != nil {
		return ClapSession{}, err
	}
	c.StartedAt = parseTime(started)
	c.EndedAt = parseTime(ended)
	return c, nil
}

// formatTime stores UTC with a fixed-width fraction so text order is time order.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")
}
