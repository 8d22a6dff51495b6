package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carelight/thermoscreen/internal/record"
)

// CreateSession registers a new anonymous session and returns its row
// identifier. The session id is chosen by the caller - the store never
// generates one - and must be unique across all time, including ids that
// belonged to sessions since expired. The session begins life active with
// created_at = last_activity = now and counters at zero.
func (s *Store) CreateSession(ctx context.Context, sessionID string) (int64, error) {
	if strings.TrimSpace(sessionID) == "" {
		return 0, missingField("session_id")
	}

	now := s.timestamp(time.Time{})
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO user_sessions (session_id, created_at, last_activity, is_active)
		VALUES (?, ?, ?, 1)
	`, sessionID, now, now)
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create session: last insert id: %w", err)
	}
	return id, nil
}

// TouchSession refreshes a session's last_activity to now. Best-effort
// heartbeat: failures are logged and absorbed, never returned, because
// losing one activity update is not operationally significant. A session
// id that does not exist is a no-op, not an error - no session is
// created.
func (s *Store) TouchSession(ctx context.Context, sessionID string) {
	_, err := s.db.ExecContext(ctx, `
		UPDATE user_sessions SET last_activity = ? WHERE session_id = ?
	`, s.timestamp(time.Time{}), sessionID)
	if err != nil {
		slog.Warn("touch session failed", "session_id", sessionID, "error", err)
	}
}

// GetActiveSession returns a session only while it is active.
// ErrNotFound covers both a session id that never existed and one that
// has been expired; callers cannot tell the two apart.
func (s *Store) GetActiveSession(ctx context.Context, sessionID string) (record.UserSession, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, created_at, last_activity,
		       assessments_completed, thermal_analyses_performed, user_preferences, is_active
		FROM user_sessions
		WHERE session_id = ? AND is_active = 1
	`, sessionID)

	sess, err := scanSessionRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record.UserSession{}, ErrNotFound
		}
		return record.UserSession{}, fmt.Errorf("query session: %w", err)
	}
	return sess, nil
}

// ExpireSessions flips every active session whose last_activity is older
// than now - maxIdle to inactive, and returns how many sessions were
// expired. Already-inactive sessions are untouched, so applying the sweep
// twice produces the same partition as applying it once. Rows are never
// deleted - history stays available for analytics.
func (s *Store) ExpireSessions(ctx context.Context, maxIdle time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxIdle).UTC().UnixNano()
	res, err := s.db.ExecContext(ctx, `
		UPDATE user_sessions SET is_active = 0
		WHERE is_active = 1 AND last_activity < ?
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire sessions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expire sessions: rows affected: %w", err)
	}
	return n, nil
}

// RecordAssessmentCompleted bumps a session's assessment counter and
// refreshes last_activity in one atomic statement. The increment happens
// in SQL, not read-modify-write, so concurrent callers cannot lose
// updates.
func (s *Store) RecordAssessmentCompleted(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE user_sessions
		SET assessments_completed = assessments_completed + 1, last_activity = ?
		WHERE session_id = ?
	`, s.timestamp(time.Time{}), sessionID)
	if err != nil {
		return fmt.Errorf("record assessment completed: %w", err)
	}
	return nil
}

// RecordThermalAnalysis bumps a session's thermal scan counter and
// refreshes last_activity in one atomic statement.
func (s *Store) RecordThermalAnalysis(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE user_sessions
		SET thermal_analyses_performed = thermal_analyses_performed + 1, last_activity = ?
		WHERE session_id = ?
	`, s.timestamp(time.Time{}), sessionID)
	if err != nil {
		return fmt.Errorf("record thermal analysis: %w", err)
	}
	return nil
}

// UpdateSessionPreferences replaces a session's opaque preferences blob.
// The store never parses the payload.
func (s *Store) UpdateSessionPreferences(ctx context.Context, sessionID string, prefs []byte) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE user_sessions SET user_preferences = ? WHERE session_id = ?
	`, prefs, sessionID)
	if err != nil {
		return fmt.Errorf("update session preferences: %w", err)
	}
	return nil
}

// scanSessionRow scans a single row into a UserSession struct.
func scanSessionRow(row *sql.Row) (record.UserSession, error) {
	var sess record.UserSession
	var created, lastActivity, active int64
	var prefs []byte

	if err := row.Scan(
		&sess.ID, &sess.SessionID, &created, &lastActivity,
		&sess.AssessmentsCompleted, &sess.ThermalAnalysesPerformed, &prefs, &active,
	); err != nil {
		return record.UserSession{}, err
	}

	sess.CreatedAt = fromTimestamp(created)
	sess.LastActivity = fromTimestamp(lastActivity)
	sess.Preferences = prefs
	sess.IsActive = active != 0

	return sess, nil
}
