package assess

import (
	"github.com/carelight/thermoscreen/internal/record"
)

// Trend directions for risk progression over time.
const (
	TrendIncreasing   = "increasing"
	TrendDecreasing   = "decreasing"
	TrendStable       = "stable"
	TrendInsufficient = "insufficient_data"
)

// TrendAnalysis describes how a session's risk scores changed between
// its first and most recent scored assessments.
type TrendAnalysis struct {
	Trend           string   `json:"trend"`
	Analysis        string   `json:"analysis,omitempty"`
	ScoreChange     int      `json:"score_change"`
	TimeSpanDays    int      `json:"time_span_days"`
	CurrentScore    int      `json:"current_score"`
	PreviousScore   int      `json:"previous_score"`
	Recommendations []string `json:"recommendations"`
}

// AnalyzeProgression analyzes how risk levels change over a session's
// stored assessment history. The history must be in insertion order
// (oldest first, as ListAssessments returns it); rows without a risk
// score are ignored. Fewer than two scored assessments is reported as
// insufficient data.
func AnalyzeProgression(history []record.Assessment) TrendAnalysis {
	scored := make([]record.Assessment, 0, len(history))
	for _, a := range history {
		if a.RiskScore != nil {
			scored = append(scored, a)
		}
	}

	if len(scored) < 2 {
		return TrendAnalysis{
			Trend:    TrendInsufficient,
			Analysis: "Need more assessments for trend analysis",
		}
	}

	first := scored[0]
	last := scored[len(scored)-1]

	trend := TrendStable
	switch {
	case *last.RiskScore > *first.RiskScore:
		trend = TrendIncreasing
	case *last.RiskScore < *first.RiskScore:
		trend = TrendDecreasing
	}

	analysis := TrendAnalysis{
		Trend:         trend,
		ScoreChange:   *last.RiskScore - *first.RiskScore,
		TimeSpanDays:  int(last.CreatedAt.Sub(first.CreatedAt).Hours() / 24),
		CurrentScore:  *last.RiskScore,
		PreviousScore: *first.RiskScore,
	}

	switch trend {
	case TrendIncreasing:
		analysis.Recommendations = append(analysis.Recommendations,
			"Risk factors appear to be increasing over time",
			"Consider comprehensive risk reduction counseling",
			"Evaluate recent behavioral changes",
		)
	case TrendDecreasing:
		analysis.Recommendations = append(analysis.Recommendations,
			"Positive trend in risk reduction observed",
			"Continue current prevention strategies",
			"Maintain regular monitoring",
		)
	}

	return analysis
}
