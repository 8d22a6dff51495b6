package record

import "time"

// Assessment is one encrypted risk-assessment record.
// The ciphertext is produced and consumed by the caller; the store never
// inspects it.
type Assessment struct {
	ID             int64     `json:"id"`
	SessionID      string    `json:"session_id"`
	EncryptedData  []byte    `json:"-"`
	RiskScore      *int      `json:"risk_score,omitempty"`
	RiskLevel      string    `json:"risk_level,omitempty"`
	ThermalSummary string    `json:"thermal_summary,omitempty"` // opaque summary, may be empty
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ThermalAnalysis is one thermal scan result.
type ThermalAnalysis struct {
	ID                 int64      `json:"id"`
	SessionID          string     `json:"session_id"`
	MaxTemperature     float64    `json:"max_temperature"`
	AverageTemperature float64    `json:"average_temperature"`
	FeverDetected      bool       `json:"fever_detected"`
	FeverSeverity      string     `json:"fever_severity,omitempty"` // "", "moderate", "high"
	HotspotCount       int        `json:"hotspot_count"`
	ConfidenceScore    float64    `json:"confidence_score"` // expected 0.0-1.0, not enforced
	CalibrationOffset  *float64   `json:"calibration_offset,omitempty"`
	Raw                RawReading `json:"raw_data,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// UserSession is an anonymous correlation token, not an identity.
// session_id is unique across all time, including inactive sessions.
type UserSession struct {
	ID                       int64     `json:"id"`
	SessionID                string    `json:"session_id"`
	CreatedAt                time.Time `json:"created_at"`
	LastActivity             time.Time `json:"last_activity"`
	AssessmentsCompleted     int       `json:"assessments_completed"`
	ThermalAnalysesPerformed int       `json:"thermal_analyses_performed"`
	Preferences              []byte    `json:"-"`
	IsActive                 bool      `json:"is_active"`
}

// ThermalCalibration is one row of a session's append-only calibration
// history. The current calibration for a session is the most recent
// is_active row.
//
// ReferenceTemperature, MeasuredTemperature and CalibrationOffset are
// pointers so an absent value is distinguishable from 0.0; all three are
// required on insert, and the store computes nothing - the caller derives
// offset = reference - measured.
type ThermalCalibration struct {
	ID                   int64     `json:"id"`
	SessionID            string    `json:"session_id"`
	ReferenceTemperature *float64  `json:"reference_temperature"`
	MeasuredTemperature  *float64  `json:"measured_temperature"`
	CalibrationOffset    *float64  `json:"calibration_offset"`
	AmbientTemperature   *float64  `json:"ambient_temperature,omitempty"`
	Method               string    `json:"calibration_method"` // defaults to "manual"
	CreatedAt            time.Time `json:"created_at"`
	IsActive             bool      `json:"is_active"`
}

// DefaultCalibrationMethod is applied when a calibration is inserted
// without a method.
const DefaultCalibrationMethod = "manual"

// TestingCenter is reference/lookup data, never written by the session
// flow.
type TestingCenter struct {
	ID                  int64     `json:"id" yaml:"-"`
	Name                string    `json:"name" yaml:"name"`
	Address             string    `json:"address,omitempty" yaml:"address"`
	Phone               string    `json:"phone,omitempty" yaml:"phone"`
	Hours               string    `json:"hours,omitempty" yaml:"hours"`
	Services            string    `json:"services,omitempty" yaml:"services"`
	Cost                string    `json:"cost,omitempty" yaml:"cost"`
	AcceptsInsurance    bool      `json:"accepts_insurance" yaml:"accepts_insurance"`
	WalkInsAccepted     bool      `json:"walk_ins_accepted" yaml:"walk_ins_accepted"`
	AppointmentRequired bool      `json:"appointment_required" yaml:"appointment_required"`
	Languages           string    `json:"languages,omitempty" yaml:"languages"`
	Website             string    `json:"website,omitempty" yaml:"website"`
	Latitude            *float64  `json:"latitude,omitempty" yaml:"latitude"`
	Longitude           *float64  `json:"longitude,omitempty" yaml:"longitude"`
	CreatedAt           time.Time `json:"created_at" yaml:"-"`
	UpdatedAt           time.Time `json:"updated_at" yaml:"-"`
}

// Float is a convenience constructor for optional float fields.
func Float(v float64) *float64 { return &v }

// Int is a convenience constructor for optional int fields.
func Int(v int) *int { return &v }
