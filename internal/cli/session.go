package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/carelight/thermoscreen/internal/record"
	"github.com/carelight/thermoscreen/internal/store"
)

// SessionOptions holds flags for the session subcommands.
type SessionOptions struct {
	*RootOptions
	ID          string
	MaxIdleDays int
}

// NewSessionCommand creates the session command and its subcommands.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage anonymous sessions",
		Long: `Manage anonymous correlation sessions.

Sessions carry no identity: they are opaque tokens that link a
device's assessments, scans, and calibrations together. The store
never invents ids - this command generates one (UUIDv7) when you
don't supply your own.`,
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a new session",
		Long: `Create a new active session.

Examples:
  thermoscreen session create
  thermoscreen session create --id kiosk-3-20250601`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionCreate(opts, cmd)
		},
	}
	create.Flags().StringVar(&opts.ID, "id", "", "session id (generated when empty)")

	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show an active session",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionShow(opts, args[0], cmd)
		},
	}

	touch := &cobra.Command{
		Use:   "touch <session-id>",
		Short: "Refresh a session's activity timestamp",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionTouch(opts, args[0], cmd)
		},
	}

	expire := &cobra.Command{
		Use:   "expire",
		Short: "Expire idle sessions",
		Long: `Mark sessions inactive when their last activity is older than the
threshold. Rows are never deleted; expired sessions stay queryable
for analytics but disappear from active lookups.

Examples:
  thermoscreen session expire
  thermoscreen session expire --max-idle-days 30`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionExpire(opts, cmd)
		},
	}
	expire.Flags().IntVar(&opts.MaxIdleDays, "max-idle-days", 7, "expire sessions idle longer than this many days")

	cmd.AddCommand(create, show, touch, expire)
	return cmd
}

func runSessionCreate(opts *SessionOptions, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	sessionID := opts.ID
	if sessionID == "" {
		sessionID = uuid.Must(uuid.NewV7()).String()
	}

	if _, err := st.CreateSession(context.Background(), sessionID); err != nil {
		return outputCommandError(out, ExitFailure, ErrCodeOperation, "failed to create session", err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]string{"session_id": sessionID})
	}
	fmt.Fprintln(cmd.OutOrStdout(), sessionID)
	return nil
}

func runSessionShow(opts *SessionOptions, sessionID string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	sess, err := st.GetActiveSession(context.Background(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return outputCommandError(out, ExitFailure, ErrCodeNotFound, fmt.Sprintf("no active session %q", sessionID), nil)
		}
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to read session", err)
	}

	if opts.Format == "json" {
		return out.Success(sess)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderSession(sess))
	return nil
}

func runSessionTouch(opts *SessionOptions, sessionID string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	// Best-effort heartbeat: always succeeds from the caller's side.
	st.TouchSession(context.Background(), sessionID)

	if opts.Format == "json" {
		return out.Success(map[string]string{"session_id": sessionID})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Touched %s\n", sessionID)
	return nil
}

func runSessionExpire(opts *SessionOptions, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	maxIdle := time.Duration(opts.MaxIdleDays) * 24 * time.Hour
	n, err := st.ExpireSessions(context.Background(), maxIdle)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to expire sessions", err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]int64{"expired": n})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Expired %d session(s)\n", n)
	return nil
}

// renderSession formats a session for text output.
func renderSession(sess record.UserSession) string {
	status := "inactive"
	if sess.IsActive {
		status = "active"
	}
	return fmt.Sprintf(
		"Session %s (%s)\n  Created:        %s\n  Last activity:  %s\n  Assessments:    %d\n  Thermal scans:  %d\n",
		sess.SessionID, status,
		sess.CreatedAt.Format(time.RFC3339),
		sess.LastActivity.Format(time.RFC3339),
		sess.AssessmentsCompleted,
		sess.ThermalAnalysesPerformed,
	)
}
