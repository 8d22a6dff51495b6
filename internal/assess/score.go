package assess

import "github.com/carelight/thermoscreen/internal/record"

// MaxScore caps every computed risk score.
const MaxScore = 100

// Risk levels derived from a score.
const (
	LevelLow      = "low"
	LevelModerate = "moderate"
	LevelHigh     = "high"
)

// ageWeights scores the respondent's age bracket.
var ageWeights = map[string]int{
	"18-25": 10,
	"26-35": 15,
	"36-45": 12,
	"46-55": 8,
	"55+":   5,
}

// exposureWeights scores the reported exposure type.
var exposureWeights = map[string]int{
	"unprotected_sex": 30,
	"needle_sharing":  50,
	"blood_contact":   40,
	"protected_sex":   5,
	"no_exposure":     0,
}

// timeframeWeights scores how long ago the exposure happened.
var timeframeWeights = map[string]int{
	"0-72h":      20,
	"3-7days":    15,
	"1-2weeks":   12,
	"2-4weeks":   10,
	"over_month": 5,
}

// symptomWeights scores each reported symptom.
var symptomWeights = map[string]int{
	"fever":         25,
	"fatigue":       15,
	"rash":          20,
	"swollen_lymph": 18,
	"night_sweats":  16,
	"muscle_aches":  12,
	"sore_throat":   10,
}

// riskFactorWeights scores additional reported risk factors.
var riskFactorWeights = map[string]int{
	"multiple_partners": 15,
	"drug_use":          20,
	"previous_sti":      12,
	"immunocompromised": 25,
}

// Input is one completed questionnaire plus an optional thermal scan.
// Unknown bracket or symptom values contribute zero rather than failing;
// the questionnaire vocabulary can grow without breaking old clients.
type Input struct {
	Age         string
	Exposure    string
	Timeframe   string
	Symptoms    []string
	RiskFactors []string
	Thermal     *record.ThermalAnalysis
}

// Score computes the composite risk score for an assessment, capped at
// MaxScore.
func Score(in Input) int {
	score := ageWeights[in.Age]
	score += exposureWeights[in.Exposure]
	score += timeframeWeights[in.Timeframe]

	for _, symptom := range in.Symptoms {
		score += symptomWeights[symptom]
	}
	for _, factor := range in.RiskFactors {
		score += riskFactorWeights[factor]
	}

	if in.Thermal != nil {
		score += ThermalScore(in.Thermal)
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score
}

// ThermalScore computes the thermal contribution to a risk score.
// High fever (severity "high" or max temperature above 38.5) adds 30,
// moderate fever adds 20, more than three hotspots adds 5, and a
// confidence below 0.7 damps the contribution by 20%.
func ThermalScore(t *record.ThermalAnalysis) int {
	if t == nil || !t.FeverDetected {
		return 0
	}

	score := 0
	switch {
	case t.FeverSeverity == "high" || t.MaxTemperature > 38.5:
		score += 30
	case t.FeverSeverity == "moderate" || t.MaxTemperature > 37.5:
		score += 20
	}

	if t.HotspotCount > 3 {
		score += 5
	}

	if t.ConfidenceScore < 0.7 {
		score = int(float64(score) * 0.8)
	}

	return score
}

// Level maps a risk score to its label: 60 and above is high, 30 and
// above is moderate, anything lower is low.
func Level(score int) string {
	switch {
	case score >= 60:
		return LevelHigh
	case score >= 30:
		return LevelModerate
	default:
		return LevelLow
	}
}
