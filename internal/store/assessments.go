package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/carelight/thermoscreen/internal/record"
)

// InsertAssessment appends one encrypted assessment row and returns its
// identifier. SessionID and EncryptedData are required; RiskScore,
// RiskLevel and ThermalSummary are stored as NULL when absent - not
// defaulted, not rejected.
//
// The ciphertext is opaque: the store never decrypts or inspects it.
func (s *Store) InsertAssessment(ctx context.Context, a record.Assessment) (int64, error) {
	if strings.TrimSpace(a.SessionID) == "" {
		return 0, missingField("session_id")
	}
	if len(a.EncryptedData) == 0 {
		return 0, missingField("encrypted_data")
	}

	created := s.timestamp(a.CreatedAt)
	updated := created
	if !a.UpdatedAt.IsZero() {
		updated = s.timestamp(a.UpdatedAt)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO assessments
		(session_id, encrypted_data, risk_score, risk_level, thermal_summary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		a.SessionID,
		a.EncryptedData,
		nullInt(a.RiskScore),
		nullString(a.RiskLevel),
		nullString(a.ThermalSummary),
		created,
		updated,
	)
	if err != nil {
		return 0, fmt.Errorf("insert assessment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert assessment: last insert id: %w", err)
	}
	return id, nil
}

// ListAssessments returns a session's assessment history, oldest first.
// Ordering is deterministic: created_at ASC, id ASC.
//
// Returns an empty slice (not nil) if the session has no assessments.
func (s *Store) ListAssessments(ctx context.Context, sessionID string) ([]record.Assessment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, encrypted_data, risk_score, risk_level, thermal_summary, created_at, updated_at
		FROM assessments
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []record.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessments: %w", err)
	}

	if out == nil {
		out = []record.Assessment{}
	}

	return out, nil
}

// scanAssessment scans a row into an Assessment struct.
func scanAssessment(rows *sql.Rows) (record.Assessment, error) {
	var a record.Assessment
	var riskScore sql.NullInt64
	var riskLevel, thermalSummary sql.NullString
	var created, updated int64

	if err := rows.Scan(
		&a.ID, &a.SessionID, &a.EncryptedData,
		&riskScore, &riskLevel, &thermalSummary,
		&created, &updated,
	); err != nil {
		return record.Assessment{}, fmt.Errorf("scan assessment: %w", err)
	}

	if riskScore.Valid {
		a.RiskScore = record.Int(int(riskScore.Int64))
	}
	a.RiskLevel = riskLevel.String
	a.ThermalSummary = thermalSummary.String
	a.CreatedAt = fromTimestamp(created)
	a.UpdatedAt = fromTimestamp(updated)

	return a, nil
}

// nullString maps the empty string to NULL.
func nullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

// nullInt maps a nil pointer to NULL.
func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// nullFloat maps a nil pointer to NULL.
func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
