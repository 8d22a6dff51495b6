package store

import (
	"context"
	"testing"

	"github.com/carelight/thermoscreen/internal/record"
)

func createTestThermalAnalysis(sessionID string) record.ThermalAnalysis {
	return record.ThermalAnalysis{
		SessionID:          sessionID,
		MaxTemperature:     38.2,
		AverageTemperature: 36.9,
		FeverDetected:      true,
		FeverSeverity:      "moderate",
		HotspotCount:       2,
		ConfidenceScore:    0.91,
		CalibrationOffset:  record.Float(0.8),
		Raw: record.RawReading{
			"sensor_model": "FLIR-ONE",
			"frame_width":  160,
		},
	}
}

func TestInsertThermalAnalysis_Basic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	id, err := s.InsertThermalAnalysis(ctx, createTestThermalAnalysis("sess-1"))
	if err != nil {
		t.Fatalf("InsertThermalAnalysis() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("id = %d, want > 0", id)
	}

	list, err := s.ListThermalAnalyses(ctx, "sess-1")
	if err != nil {
		t.Fatalf("ListThermalAnalyses() failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d analyses, want 1", len(list))
	}
	got := list[0]
	if got.MaxTemperature != 38.2 {
		t.Errorf("max_temperature = %v, want 38.2", got.MaxTemperature)
	}
	if !got.FeverDetected {
		t.Error("fever_detected lost on round-trip")
	}
	if got.FeverSeverity != "moderate" {
		t.Errorf("fever_severity = %q, want %q", got.FeverSeverity, "moderate")
	}
	if got.CalibrationOffset == nil || *got.CalibrationOffset != 0.8 {
		t.Errorf("calibration_offset = %v, want 0.8", got.CalibrationOffset)
	}
	if got.Raw["sensor_model"] != "FLIR-ONE" {
		t.Errorf("raw payload lost: %v", got.Raw)
	}
}

func TestInsertThermalAnalysis_MissingSessionID(t *testing.T) {
	s := createTestStore(t)

	_, err := s.InsertThermalAnalysis(context.Background(), record.ThermalAnalysis{})
	if !IsValidationError(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestInsertThermalAnalysis_NoFeverNoOffset(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ta := record.ThermalAnalysis{
		SessionID:          "sess-1",
		MaxTemperature:     36.4,
		AverageTemperature: 36.1,
		ConfidenceScore:    0.99,
	}
	if _, err := s.InsertThermalAnalysis(ctx, ta); err != nil {
		t.Fatalf("InsertThermalAnalysis() failed: %v", err)
	}

	list, err := s.ListThermalAnalyses(ctx, "sess-1")
	if err != nil {
		t.Fatalf("ListThermalAnalyses() failed: %v", err)
	}
	got := list[0]
	if got.FeverDetected {
		t.Error("fever_detected should be false")
	}
	if got.FeverSeverity != "" {
		t.Errorf("fever_severity = %q, want empty", got.FeverSeverity)
	}
	if got.CalibrationOffset != nil {
		t.Errorf("calibration_offset = %v, want nil", got.CalibrationOffset)
	}
	if got.Raw != nil {
		t.Errorf("raw = %v, want nil", got.Raw)
	}
}

func TestInsertThermalAnalysis_StrictlyIncreasingIDs(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		id, err := s.InsertThermalAnalysis(ctx, createTestThermalAnalysis("sess-1"))
		if err != nil {
			t.Fatalf("InsertThermalAnalysis() %d failed: %v", i, err)
		}
		if id <= last {
			t.Errorf("id %d not greater than previous %d", id, last)
		}
		last = id
	}
}

func TestListThermalAnalyses_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	list, err := s.ListThermalAnalyses(context.Background(), "no-such-session")
	if err != nil {
		t.Fatalf("ListThermalAnalyses() failed: %v", err)
	}
	if list == nil {
		t.Error("expected empty slice, got nil")
	}
}
