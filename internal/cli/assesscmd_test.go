package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelight/thermoscreen/internal/record"
	"github.com/carelight/thermoscreen/internal/store"
)

// seedAssessments inserts scored assessments for a session directly
// through the store, then closes it so the CLI can reopen the file.
func seedAssessments(t *testing.T, db, sessionID string, scores ...int) {
	t.Helper()

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	_, err = st.CreateSession(ctx, sessionID)
	require.NoError(t, err)

	for i, score := range scores {
		_, err := st.InsertAssessment(ctx, record.Assessment{
			SessionID:     sessionID,
			EncryptedData: []byte{0x01, byte(i)},
			RiskScore:     record.Int(score),
		})
		require.NoError(t, err)
	}
}

func TestAssessTrendIncreasing(t *testing.T) {
	db := testDB(t)
	seedAssessments(t, db, "kiosk-7", 20, 45, 70)

	out, err := runCLI(t, "assess", "trend", "kiosk-7", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "increasing")
	assert.Contains(t, out, "20 -> 70")
}

func TestAssessTrendDecreasing(t *testing.T) {
	db := testDB(t)
	seedAssessments(t, db, "kiosk-7", 70, 40)

	out, err := runCLI(t, "assess", "trend", "kiosk-7", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "decreasing")
	assert.Contains(t, out, "Continue current prevention strategies")
}

func TestAssessTrendInsufficientData(t *testing.T) {
	db := testDB(t)
	seedAssessments(t, db, "kiosk-7", 30)

	out, err := runCLI(t, "assess", "trend", "kiosk-7", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "insufficient_data")
	assert.Contains(t, out, "Need more assessments")
}

func TestAssessTrendEmptyHistory(t *testing.T) {
	db := testDB(t)
	_, err := runCLI(t, "init", "--db", db)
	require.NoError(t, err)

	out, err := runCLI(t, "assess", "trend", "ghost", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "insufficient_data")
}

func TestAssessTrendJSON(t *testing.T) {
	db := testDB(t)
	seedAssessments(t, db, "kiosk-7", 20, 45)

	out, err := runCLI(t, "assess", "trend", "kiosk-7", "--db", db, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"trend":"increasing"`)
	assert.Contains(t, out, `"score_change":25`)
}
