package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/carelight/thermoscreen/internal/record"
)

// createTestStore creates a store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// fakeClock pins the store's clock so activity timestamps are exact.
// Advance moves it forward; tests own the arrow of time.
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

// createTestStoreWithClock creates a store whose clock is the fake clock.
func createTestStoreWithClock(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	s := createTestStore(t)
	clock := newFakeClock()
	s.now = clock.Now
	return s, clock
}

// createTestCalibration builds a calibration with all required fields set.
func createTestCalibration(sessionID string, reference, measured float64, createdAt time.Time) record.ThermalCalibration {
	return record.ThermalCalibration{
		SessionID:            sessionID,
		ReferenceTemperature: record.Float(reference),
		MeasuredTemperature:  record.Float(measured),
		CalibrationOffset:    record.Float(reference - measured),
		CreatedAt:            createdAt,
	}
}

// createTestAssessment builds an assessment with the required fields set.
func createTestAssessment(sessionID string) record.Assessment {
	return record.Assessment{
		SessionID:     sessionID,
		EncryptedData: []byte("ciphertext-payload"),
	}
}
