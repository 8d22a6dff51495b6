package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/carelight/thermoscreen/internal/record"
)

// InsertTestingCenter appends one testing-center row and returns its
// identifier. Reference data only - the session flow never writes here.
// Names are NFC-normalized before storage so lookups and ordering do not
// depend on how the seed file encoded accents.
func (s *Store) InsertTestingCenter(ctx context.Context, c record.TestingCenter) (int64, error) {
	name := record.NormalizeName(c.Name)
	if name == "" {
		return 0, missingField("name")
	}

	created := s.timestamp(c.CreatedAt)
	updated := created
	if !c.UpdatedAt.IsZero() {
		updated = s.timestamp(c.UpdatedAt)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO testing_centers
		(name, address, phone, hours, services, cost, accepts_insurance, walk_ins_accepted,
		 appointment_required, languages, website, latitude, longitude, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		name,
		nullString(c.Address),
		nullString(c.Phone),
		nullString(c.Hours),
		nullString(c.Services),
		nullString(c.Cost),
		boolToInt(c.AcceptsInsurance),
		boolToInt(c.WalkInsAccepted),
		boolToInt(c.AppointmentRequired),
		nullString(c.Languages),
		nullString(c.Website),
		nullFloat(c.Latitude),
		nullFloat(c.Longitude),
		created,
		updated,
	)
	if err != nil {
		return 0, fmt.Errorf("insert testing center: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert testing center: last insert id: %w", err)
	}
	return id, nil
}

// ListTestingCenters returns all testing centers ordered by name, then id
// for determinism on duplicate names.
//
// Returns an empty slice (not nil) when no centers are loaded.
func (s *Store) ListTestingCenters(ctx context.Context) ([]record.TestingCenter, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, address, phone, hours, services, cost, accepts_insurance, walk_ins_accepted,
		       appointment_required, languages, website, latitude, longitude, created_at, updated_at
		FROM testing_centers
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query testing centers: %w", err)
	}
	defer rows.Close()

	var out []record.TestingCenter
	for rows.Next() {
		c, err := scanTestingCenter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate testing centers: %w", err)
	}

	if out == nil {
		out = []record.TestingCenter{}
	}

	return out, nil
}

// scanTestingCenter scans a row into a TestingCenter struct.
func scanTestingCenter(rows *sql.Rows) (record.TestingCenter, error) {
	var c record.TestingCenter
	var address, phone, hours, services, cost, languages, website sql.NullString
	var insurance, walkIns, appointment int64
	var lat, lng sql.NullFloat64
	var created, updated int64

	if err := rows.Scan(
		&c.ID, &c.Name, &address, &phone, &hours, &services, &cost,
		&insurance, &walkIns, &appointment, &languages, &website,
		&lat, &lng, &created, &updated,
	); err != nil {
		return record.TestingCenter{}, fmt.Errorf("scan testing center: %w", err)
	}

	c.Address = address.String
	c.Phone = phone.String
	c.Hours = hours.String
	c.Services = services.String
	c.Cost = cost.String
	c.AcceptsInsurance = insurance != 0
	c.WalkInsAccepted = walkIns != 0
	c.AppointmentRequired = appointment != 0
	c.Languages = languages.String
	c.Website = website.String
	if lat.Valid {
		c.Latitude = record.Float(lat.Float64)
	}
	if lng.Valid {
		c.Longitude = record.Float(lng.Float64)
	}
	c.CreatedAt = fromTimestamp(created)
	c.UpdatedAt = fromTimestamp(updated)

	// strings.TrimSpace already happened on insert; keep reads symmetrical
	// for databases seeded by older builds.
	c.Name = strings.TrimSpace(c.Name)

	return c, nil
}
