package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/carelight/thermoscreen/internal/record"
	"github.com/carelight/thermoscreen/internal/store"
)

// CalibrateOptions holds flags for the calibrate subcommands.
type CalibrateOptions struct {
	*RootOptions
	Reference      float64
	Measured       float64
	Ambient        float64
	Method         string
	RetirePrevious bool
}

// NewCalibrateCommand creates the calibrate command and its subcommands.
func NewCalibrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalibrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Manage thermal sensor calibration",
		Long: `Record and inspect per-session thermal sensor calibrations.

A calibration pairs a trusted reference temperature with the sensor's
measured value; the difference (reference - measured) is the offset
applied to later readings. Calibrations are append-only history: new
rows never overwrite old ones, and readings always use the most
recent active row.`,
	}

	add := &cobra.Command{
		Use:   "add <session-id>",
		Short: "Record a calibration",
		Long: `Record a calibration for a session.

The offset is computed here as reference - measured; the store only
validates and persists it. Prior calibrations stay active unless
--retire-previous is given.

Examples:
  thermoscreen calibrate add s1 --reference 37.0 --measured 36.2
  thermoscreen calibrate add s1 --reference 37.0 --measured 36.5 --ambient 21.0 --method blackbody --retire-previous`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalibrateAdd(opts, args[0], cmd)
		},
	}
	add.Flags().Float64Var(&opts.Reference, "reference", 0, "trusted reference temperature in °C (required)")
	_ = add.MarkFlagRequired("reference")
	add.Flags().Float64Var(&opts.Measured, "measured", 0, "sensor-measured temperature in °C (required)")
	_ = add.MarkFlagRequired("measured")
	add.Flags().Float64Var(&opts.Ambient, "ambient", 0, "ambient temperature in °C")
	add.Flags().StringVar(&opts.Method, "method", "", "calibration method (defaults to manual)")
	add.Flags().BoolVar(&opts.RetirePrevious, "retire-previous", false, "deactivate the session's earlier calibrations")

	current := &cobra.Command{
		Use:   "current <session-id>",
		Short: "Show the calibration readings are corrected with",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalibrateCurrent(opts, args[0], cmd)
		},
	}

	history := &cobra.Command{
		Use:   "history <session-id>",
		Short: "Show a session's full calibration history",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalibrateHistory(opts, args[0], cmd)
		},
	}

	cmd.AddCommand(add, current, history)
	return cmd
}

func runCalibrateAdd(opts *CalibrateOptions, sessionID string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	ctx := context.Background()

	if opts.RetirePrevious {
		retired, err := st.DeactivateCalibrations(ctx, sessionID)
		if err != nil {
			return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to retire previous calibrations", err)
		}
		out.VerboseLog("retired %d previous calibration(s)", retired)
	}

	cal := record.ThermalCalibration{
		SessionID:            sessionID,
		ReferenceTemperature: record.Float(opts.Reference),
		MeasuredTemperature:  record.Float(opts.Measured),
		CalibrationOffset:    record.Float(opts.Reference - opts.Measured),
		Method:               opts.Method,
	}
	if cmd.Flags().Changed("ambient") {
		cal.AmbientTemperature = record.Float(opts.Ambient)
	}

	id, err := st.InsertCalibration(ctx, cal)
	if err != nil {
		return outputCommandError(out, ExitFailure, ErrCodeOperation, "failed to record calibration", err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]any{"id": id, "calibration_offset": opts.Reference - opts.Measured})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Recorded calibration %d (offset %+.2f°C)\n", id, opts.Reference-opts.Measured)
	return nil
}

func runCalibrateCurrent(opts *CalibrateOptions, sessionID string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	cal, err := st.MostRecentActiveCalibration(context.Background(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return outputCommandError(out, ExitFailure, ErrCodeNotFound, fmt.Sprintf("no active calibration for session %q", sessionID), nil)
		}
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to read calibration", err)
	}

	if opts.Format == "json" {
		return out.Success(cal)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderCalibration(cal))
	return nil
}

func runCalibrateHistory(opts *CalibrateOptions, sessionID string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	history, err := st.ListCalibrations(context.Background(), sessionID)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to read calibration history", err)
	}

	if opts.Format == "json" {
		return out.Success(history)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderCalibrationHistory(sessionID, history))
	return nil
}

// renderCalibration formats a single calibration for text output.
func renderCalibration(cal record.ThermalCalibration) string {
	var b strings.Builder
	status := "inactive"
	if cal.IsActive {
		status = "active"
	}
	fmt.Fprintf(&b, "Calibration %d (%s, %s)\n", cal.ID, cal.Method, status)
	fmt.Fprintf(&b, "  Reference:  %.2f°C\n", *cal.ReferenceTemperature)
	fmt.Fprintf(&b, "  Measured:   %.2f°C\n", *cal.MeasuredTemperature)
	fmt.Fprintf(&b, "  Offset:     %+.2f°C\n", *cal.CalibrationOffset)
	if cal.AmbientTemperature != nil {
		fmt.Fprintf(&b, "  Ambient:    %.2f°C\n", *cal.AmbientTemperature)
	}
	fmt.Fprintf(&b, "  Recorded:   %s\n", cal.CreatedAt.Format(time.RFC3339))
	return b.String()
}

// renderCalibrationHistory formats a session's calibration history for
// text output, oldest first.
func renderCalibrationHistory(sessionID string, history []record.ThermalCalibration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calibration history for %s (%d record(s))\n", sessionID, len(history))
	for _, cal := range history {
		marker := " "
		if cal.IsActive {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %4d  %s  ref %.2f°C  meas %.2f°C  offset %+.2f°C  %s\n",
			marker, cal.ID, cal.CreatedAt.Format(time.RFC3339),
			*cal.ReferenceTemperature, *cal.MeasuredTemperature, *cal.CalibrationOffset,
			cal.Method,
		)
	}
	return b.String()
}
