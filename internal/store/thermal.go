package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/carelight/thermoscreen/internal/record"
)

// InsertThermalAnalysis appends one thermal scan result and returns its
// identifier. The raw sensor payload is serialized to text before
// storage; nothing outside internal/record depends on that textual form.
func (s *Store) InsertThermalAnalysis(ctx context.Context, t record.ThermalAnalysis) (int64, error) {
	if strings.TrimSpace(t.SessionID) == "" {
		return 0, missingField("session_id")
	}

	rawData, err := record.MarshalRawReading(t.Raw)
	if err != nil {
		return 0, fmt.Errorf("insert thermal analysis: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO thermal_analyses
		(session_id, max_temperature, average_temperature, fever_detected, fever_severity,
		 hotspot_count, confidence_score, calibration_offset, raw_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		t.SessionID,
		t.MaxTemperature,
		t.AverageTemperature,
		boolToInt(t.FeverDetected),
		nullString(t.FeverSeverity),
		t.HotspotCount,
		t.ConfidenceScore,
		nullFloat(t.CalibrationOffset),
		rawData,
		s.timestamp(t.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert thermal analysis: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert thermal analysis: last insert id: %w", err)
	}
	return id, nil
}

// ListThermalAnalyses returns a session's thermal scan history, oldest
// first. Ordering is deterministic: created_at ASC, id ASC.
//
// Returns an empty slice (not nil) if the session has no scans.
func (s *Store) ListThermalAnalyses(ctx context.Context, sessionID string) ([]record.ThermalAnalysis, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, max_temperature, average_temperature, fever_detected, fever_severity,
		       hotspot_count, confidence_score, calibration_offset, raw_data, created_at
		FROM thermal_analyses
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query thermal analyses: %w", err)
	}
	defer rows.Close()

	var out []record.ThermalAnalysis
	for rows.Next() {
		t, err := scanThermalAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate thermal analyses: %w", err)
	}

	if out == nil {
		out = []record.ThermalAnalysis{}
	}

	return out, nil
}

// scanThermalAnalysis scans a row into a ThermalAnalysis struct.
func scanThermalAnalysis(rows *sql.Rows) (record.ThermalAnalysis, error) {
	var t record.ThermalAnalysis
	var feverDetected int64
	var feverSeverity sql.NullString
	var offset sql.NullFloat64
	var rawData string
	var created int64

	if err := rows.Scan(
		&t.ID, &t.SessionID, &t.MaxTemperature, &t.AverageTemperature,
		&feverDetected, &feverSeverity, &t.HotspotCount, &t.ConfidenceScore,
		&offset, &rawData, &created,
	); err != nil {
		return record.ThermalAnalysis{}, fmt.Errorf("scan thermal analysis: %w", err)
	}

	t.FeverDetected = feverDetected != 0
	t.FeverSeverity = feverSeverity.String
	if offset.Valid {
		t.CalibrationOffset = record.Float(offset.Float64)
	}

	raw, err := record.UnmarshalRawReading(rawData)
	if err != nil {
		return record.ThermalAnalysis{}, fmt.Errorf("scan thermal analysis: %w", err)
	}
	t.Raw = raw
	t.CreatedAt = fromTimestamp(created)

	return t, nil
}

// boolToInt maps a bool to its SQLite integer form.
func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
