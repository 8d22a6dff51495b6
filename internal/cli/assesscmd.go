package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carelight/thermoscreen/internal/assess"
	"github.com/carelight/thermoscreen/internal/store"
)

// NewAssessCommand creates the assess command and its subcommands.
func NewAssessCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Inspect assessment results",
	}

	trend := &cobra.Command{
		Use:   "trend <session-id>",
		Short: "Analyze risk progression over a session's history",
		Long: `Analyze how a session's risk scores changed over time.

Compares the first and most recent scored assessments; assessments
stored without a score are skipped. At least two scored assessments
are needed for a trend.

Examples:
  thermoscreen assess trend s1
  thermoscreen assess trend s1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssessTrend(rootOpts, args[0], cmd)
		},
	}

	cmd.AddCommand(trend)
	return cmd
}

func runAssessTrend(opts *RootOptions, sessionID string, cmd *cobra.Command) error {
	out := newFormatter(opts, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	history, err := st.ListAssessments(context.Background(), sessionID)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to read assessment history", err)
	}

	analysis := assess.AnalyzeProgression(history)

	if opts.Format == "json" {
		return out.Success(analysis)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTrend(sessionID, analysis))
	return nil
}

// renderTrend formats a trend analysis for text output.
func renderTrend(sessionID string, a assess.TrendAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk trend for %s: %s\n", sessionID, a.Trend)
	if a.Trend == assess.TrendInsufficient {
		fmt.Fprintf(&b, "  %s\n", a.Analysis)
		return b.String()
	}
	fmt.Fprintf(&b, "  Score:  %d -> %d (%+d over %d day(s))\n", a.PreviousScore, a.CurrentScore, a.ScoreChange, a.TimeSpanDays)
	for _, rec := range a.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}
	return b.String()
}
