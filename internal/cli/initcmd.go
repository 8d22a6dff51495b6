package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carelight/thermoscreen/internal/store"
)

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create or upgrade the database",
		Long: `Create the database file and schema, or upgrade an existing one.

Safe to run repeatedly: tables and indexes are only created when
missing. The parent directory is created if it does not exist.

Examples:
  thermoscreen init
  thermoscreen init --db /var/lib/thermoscreen/store.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, cmd)
		},
	}

	return cmd
}

func runInit(opts *RootOptions, cmd *cobra.Command) error {
	out := newFormatter(opts, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to initialize database", err)
	}
	defer st.Close()

	if opts.Format == "json" {
		return out.Success(map[string]string{"database": opts.Database})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Database ready: %s\n", opts.Database)
	return nil
}
