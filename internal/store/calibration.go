package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carelight/thermoscreen/internal/record"
)

// InsertCalibration appends one calibration row and returns its
// identifier. ReferenceTemperature, MeasuredTemperature and
// CalibrationOffset are required; the store never derives the offset -
// the caller computes it (reference - measured, by convention).
//
// New rows are always active. Prior rows are never deactivated here:
// superseding a calibration is a caller-driven decision, see
// DeactivateCalibrations.
func (s *Store) InsertCalibration(ctx context.Context, c record.ThermalCalibration) (int64, error) {
	if strings.TrimSpace(c.SessionID) == "" {
		return 0, missingField("session_id")
	}
	if c.ReferenceTemperature == nil {
		return 0, missingField("reference_temperature")
	}
	if c.MeasuredTemperature == nil {
		return 0, missingField("measured_temperature")
	}
	if c.CalibrationOffset == nil {
		return 0, missingField("calibration_offset")
	}

	method := c.Method
	if strings.TrimSpace(method) == "" {
		method = record.DefaultCalibrationMethod
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO thermal_calibrations
		(session_id, reference_temperature, measured_temperature, calibration_offset,
		 ambient_temperature, calibration_method, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, 1)
	`,
		c.SessionID,
		*c.ReferenceTemperature,
		*c.MeasuredTemperature,
		*c.CalibrationOffset,
		nullFloat(c.AmbientTemperature),
		method,
		s.timestamp(c.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert calibration: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert calibration: last insert id: %w", err)
	}
	return id, nil
}

// MostRecentActiveCalibration returns the single active calibration with
// the greatest created_at for the session, or ErrNotFound when the
// session has no active calibration. On equal timestamps the highest
// identifier wins, so the result is deterministic.
//
// Thermal-reading correction always uses this row's calibration_offset.
func (s *Store) MostRecentActiveCalibration(ctx context.Context, sessionID string) (record.ThermalCalibration, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, reference_temperature, measured_temperature, calibration_offset,
		       ambient_temperature, calibration_method, created_at, is_active
		FROM thermal_calibrations
		WHERE session_id = ? AND is_active = 1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, sessionID)

	c, err := scanCalibrationRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record.ThermalCalibration{}, ErrNotFound
		}
		return record.ThermalCalibration{}, fmt.Errorf("query current calibration: %w", err)
	}
	return c, nil
}

// ListCalibrations returns a session's full calibration history including
// inactive rows, oldest first. Ordering is deterministic: created_at ASC,
// id ASC.
//
// Returns an empty slice (not nil) if the session has no calibrations.
func (s *Store) ListCalibrations(ctx context.Context, sessionID string) ([]record.ThermalCalibration, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, reference_temperature, measured_temperature, calibration_offset,
		       ambient_temperature, calibration_method, created_at, is_active
		FROM thermal_calibrations
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query calibrations: %w", err)
	}
	defer rows.Close()

	var out []record.ThermalCalibration
	for rows.Next() {
		c, err := scanCalibration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calibrations: %w", err)
	}

	if out == nil {
		out = []record.ThermalCalibration{}
	}

	return out, nil
}

// DeactivateCalibrations retires every active calibration for a session
// and returns how many rows were flipped. Rows are never deleted; the
// history stays queryable via ListCalibrations.
//
// Callers that want a newly recorded calibration to stand alone invoke
// this first, then InsertCalibration.
func (s *Store) DeactivateCalibrations(ctx context.Context, sessionID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE thermal_calibrations SET is_active = 0
		WHERE session_id = ? AND is_active = 1
	`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("deactivate calibrations: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deactivate calibrations: rows affected: %w", err)
	}
	return n, nil
}

// scanCalibration scans a row into a ThermalCalibration struct.
func scanCalibration(rows *sql.Rows) (record.ThermalCalibration, error) {
	var c record.ThermalCalibration
	var reference, measured, offset float64
	var ambient sql.NullFloat64
	var created, active int64

	if err := rows.Scan(
		&c.ID, &c.SessionID, &reference, &measured, &offset,
		&ambient, &c.Method, &created, &active,
	); err != nil {
		return record.ThermalCalibration{}, fmt.Errorf("scan calibration: %w", err)
	}

	c.ReferenceTemperature = record.Float(reference)
	c.MeasuredTemperature = record.Float(measured)
	c.CalibrationOffset = record.Float(offset)
	if ambient.Valid {
		c.AmbientTemperature = record.Float(ambient.Float64)
	}
	c.CreatedAt = fromTimestamp(created)
	c.IsActive = active != 0

	return c, nil
}

// scanCalibrationRow scans a single row into a ThermalCalibration struct.
func scanCalibrationRow(row *sql.Row) (record.ThermalCalibration, error) {
	var c record.ThermalCalibration
	var reference, measured, offset float64
	var ambient sql.NullFloat64
	var created, active int64

	if err := row.Scan(
		&c.ID, &c.SessionID, &reference, &measured, &offset,
		&ambient, &c.Method, &created, &active,
	); err != nil {
		return record.ThermalCalibration{}, err
	}

	c.ReferenceTemperature = record.Float(reference)
	c.MeasuredTemperature = record.Float(measured)
	c.CalibrationOffset = record.Float(offset)
	if ambient.Valid {
		c.AmbientTemperature = record.Float(ambient.Float64)
	}
	c.CreatedAt = fromTimestamp(created)
	c.IsActive = active != 0

	return c, nil
}
