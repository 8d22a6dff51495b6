package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelight/thermoscreen/internal/record"
)

func TestCalibrateAddAndCurrent(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "session", "create", "--db", db, "--id", "kiosk-7")
	require.NoError(t, err)

	out, err := runCLI(t, "calibrate", "add", "kiosk-7", "--db", db,
		"--reference", "37.0", "--measured", "36.2")
	require.NoError(t, err)
	assert.Contains(t, out, "offset +0.80°C")

	out, err = runCLI(t, "calibrate", "current", "kiosk-7", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "manual, active")
	assert.Contains(t, out, "Offset:     +0.80°C")
}

func TestCalibrateCurrentPrefersNewest(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "session", "create", "--db", db, "--id", "kiosk-7")
	require.NoError(t, err)

	_, err = runCLI(t, "calibrate", "add", "kiosk-7", "--db", db,
		"--reference", "37.0", "--measured", "36.2")
	require.NoError(t, err)

	_, err = runCLI(t, "calibrate", "add", "kiosk-7", "--db", db,
		"--reference", "37.0", "--measured", "36.5", "--method", "blackbody")
	require.NoError(t, err)

	out, err := runCLI(t, "calibrate", "current", "kiosk-7", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "blackbody")
	assert.Contains(t, out, "Offset:     +0.50°C")

	// Both rows remain in the history.
	out, err = runCLI(t, "calibrate", "history", "kiosk-7", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "2 record(s)")
}

func TestCalibrateRetirePrevious(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "session", "create", "--db", db, "--id", "kiosk-7")
	require.NoError(t, err)

	_, err = runCLI(t, "calibrate", "add", "kiosk-7", "--db", db,
		"--reference", "37.0", "--measured", "36.2")
	require.NoError(t, err)

	_, err = runCLI(t, "calibrate", "add", "kiosk-7", "--db", db,
		"--reference", "37.0", "--measured", "36.5", "--retire-previous")
	require.NoError(t, err)

	out, err := runCLI(t, "calibrate", "history", "kiosk-7", "--db", db, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	rows, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)

	first := rows[0].(map[string]any)
	second := rows[1].(map[string]any)
	assert.Equal(t, false, first["is_active"])
	assert.Equal(t, true, second["is_active"])
}

func TestCalibrateCurrentMissing(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, "init", "--db", db)
	require.NoError(t, err)

	out, err := runCLI(t, "calibrate", "current", "ghost", "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Empty(t, out, "text failures print once via the returned error, not the command writer")
}

func TestCalibrateCurrentMissingJSONEnvelope(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, "init", "--db", db)
	require.NoError(t, err)

	out, err := runCLI(t, "calibrate", "current", "ghost", "--db", db, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestCalibrateAddMissingFlags(t *testing.T) {
	db := testDB(t)

	_, err := runCLI(t, "calibrate", "add", "kiosk-7", "--db", db, "--reference", "37.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "measured")
}

func TestRenderCalibrationHistoryGolden(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	history := []record.ThermalCalibration{
		{
			ID:                   1,
			SessionID:            "kiosk-7",
			ReferenceTemperature: record.Float(37.0),
			MeasuredTemperature:  record.Float(36.2),
			CalibrationOffset:    record.Float(0.8),
			Method:               "manual",
			CreatedAt:            base,
			IsActive:             false,
		},
		{
			ID:                   2,
			SessionID:            "kiosk-7",
			ReferenceTemperature: record.Float(37.0),
			MeasuredTemperature:  record.Float(36.5),
			CalibrationOffset:    record.Float(0.5),
			Method:               "blackbody",
			CreatedAt:            base.Add(5 * time.Minute),
			IsActive:             true,
		},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "calibration_history", []byte(renderCalibrationHistory("kiosk-7", history)))
}

func TestRenderSessionGolden(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sess := record.UserSession{
		ID:                       1,
		SessionID:                "kiosk-7",
		CreatedAt:                base,
		LastActivity:             base.Add(90 * time.Minute),
		AssessmentsCompleted:     3,
		ThermalAnalysesPerformed: 2,
		IsActive:                 true,
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "session_show", []byte(renderSession(sess)))
}
