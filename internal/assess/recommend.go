package assess

import (
	"fmt"

	"github.com/carelight/thermoscreen/internal/record"
)

// Urgency levels for medical consultation, most pressing first.
const (
	UrgencyImmediate = "immediate"
	UrgencyUrgent    = "urgent"
	UrgencySoon      = "soon"
	UrgencyRoutine   = "routine"
)

// Recommendations produces personalized guidance for an assessment.
// The base set depends on the risk level; timeframe, symptoms, and
// thermal findings add specific entries.
func Recommendations(level, timeframe string, symptoms []string, thermal *record.ThermalAnalysis) []string {
	var recs []string

	switch level {
	case LevelLow:
		recs = append(recs,
			"Continue practicing safe sexual behaviors",
			"Consider regular HIV testing if sexually active",
			"Learn about PrEP (pre-exposure prophylaxis) if at ongoing risk",
			"Maintain overall good health practices",
		)
	case LevelModerate:
		recs = append(recs,
			"Get tested for HIV as soon as possible",
			"Consider speaking with a healthcare provider about your exposure",
			"Review and improve risk reduction strategies",
			"Consider PEP (post-exposure prophylaxis) if within 72 hours of exposure",
		)
	default: // high risk
		recs = append(recs,
			"Seek immediate medical attention and HIV testing",
			"Discuss PEP (post-exposure prophylaxis) with healthcare provider urgently",
			"Contact emergency services if experiencing severe symptoms",
			"Follow up with infectious disease specialist",
		)
	}

	if timeframe == "0-72h" || timeframe == "3-7days" {
		recs = append(recs, "Time-sensitive: PEP is most effective when started within 72 hours")
	}

	if containsString(symptoms, "fever") {
		recs = append(recs, "Monitor temperature regularly and seek medical care for high fever")
	}
	if containsString(symptoms, "fatigue") || containsString(symptoms, "muscle_aches") {
		recs = append(recs, "Get adequate rest and stay hydrated")
	}

	if thermal != nil && thermal.FeverDetected {
		switch thermal.FeverSeverity {
		case "high":
			recs = append(recs, fmt.Sprintf("High fever detected (%.1f°C). Seek immediate medical attention", thermal.MaxTemperature))
		case "moderate":
			recs = append(recs, fmt.Sprintf("Moderate fever detected (%.1f°C). Monitor closely and consider medical consultation", thermal.MaxTemperature))
		}
		recs = append(recs, "Continue temperature monitoring and document trends")
	}

	return recs
}

// UrgencyLevel determines how urgently the respondent should seek
// medical consultation. A high fever always escalates to immediate.
func UrgencyLevel(level, timeframe string, thermal *record.ThermalAnalysis) string {
	if thermal != nil && thermal.FeverSeverity == "high" {
		return UrgencyImmediate
	}

	switch level {
	case LevelHigh:
		if timeframe == "0-72h" || timeframe == "3-7days" {
			return UrgencyImmediate
		}
		return UrgencyUrgent
	case LevelModerate:
		if thermal != nil && thermal.FeverDetected {
			return UrgencyUrgent
		}
		return UrgencySoon
	default:
		return UrgencyRoutine
	}
}

// MedicalAdvice is structured guidance grouped by the kind of action.
type MedicalAdvice struct {
	ImmediateActions       []string `json:"immediate_actions"`
	TestingRecommendations []string `json:"testing_recommendations"`
	PreventionStrategies   []string `json:"prevention_strategies"`
	FollowUpCare           []string `json:"follow_up_care"`
	EmergencySigns         []string `json:"emergency_signs"`
}

// Advice generates comprehensive medical advice for an assessment.
func Advice(score int, level string, thermal *record.ThermalAnalysis) MedicalAdvice {
	var advice MedicalAdvice

	if level == LevelHigh {
		advice.ImmediateActions = append(advice.ImmediateActions,
			"Contact healthcare provider immediately",
			"Consider emergency room visit if severe symptoms present",
			"Do not delay seeking medical care",
		)
	}

	if score > 30 {
		advice.TestingRecommendations = append(advice.TestingRecommendations,
			"HIV antibody/antigen test (4th generation)",
			"Complete STI panel screening",
			"Hepatitis B and C testing",
		)
	}

	if thermal != nil && thermal.FeverDetected {
		advice.ImmediateActions = append(advice.ImmediateActions,
			fmt.Sprintf("Temperature monitoring shows %.1f°C - seek medical evaluation", thermal.MaxTemperature))
		advice.EmergencySigns = append(advice.EmergencySigns, "Temperature above 39°C (102.2°F)")
	}

	advice.PreventionStrategies = append(advice.PreventionStrategies,
		"Use barrier protection during sexual activity",
		"Avoid sharing needles or injection equipment",
		"Regular HIV testing if at ongoing risk",
		"Consider PrEP consultation if high-risk behavior continues",
	)

	advice.FollowUpCare = append(advice.FollowUpCare,
		"Schedule follow-up testing as recommended",
		"Monitor for symptoms development",
		"Maintain regular healthcare provider relationship",
	)

	advice.EmergencySigns = append(advice.EmergencySigns,
		"Severe fever (>39°C/102.2°F)",
		"Difficulty breathing",
		"Persistent vomiting",
		"Severe headache or confusion",
		"Signs of severe illness",
	)

	return advice
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
