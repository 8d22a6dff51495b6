package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/carelight/thermoscreen/internal/record"
	"github.com/carelight/thermoscreen/internal/store"
)

// centersSeed is the YAML layout of a testing-centers seed file.
type centersSeed struct {
	Centers []record.TestingCenter `yaml:"centers"`
}

// NewCentersCommand creates the centers command and its subcommands.
func NewCentersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "centers",
		Short: "Manage testing-center reference data",
		Long: `Load and list testing-center reference data.

Centers are lookup data for the UI, outside the session flow: the
assessment and thermal paths never write here.`,
	}

	load := &cobra.Command{
		Use:   "load <file.yaml>",
		Short: "Load centers from a YAML seed file",
		Long: `Load testing centers from a YAML seed file.

The file holds a top-level "centers" list:

  centers:
    - name: Downtown Community Clinic
      address: 500 Main St
      phone: 555-0100
      walk_ins_accepted: true

Examples:
  thermoscreen centers load seeds/centers.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCentersLoad(rootOpts, args[0], cmd)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all testing centers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCentersList(rootOpts, cmd)
		},
	}

	cmd.AddCommand(load, list)
	return cmd
}

func runCentersLoad(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeOperation, "failed to read seed file", err)
	}

	var seed centersSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeOperation, "failed to parse seed file", err)
	}
	if len(seed.Centers) == 0 {
		return outputCommandError(out, ExitFailure, ErrCodeOperation, "seed file contains no centers", nil)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	ctx := context.Background()
	for _, c := range seed.Centers {
		id, err := st.InsertTestingCenter(ctx, c)
		if err != nil {
			return outputCommandError(out, ExitFailure, ErrCodeOperation, fmt.Sprintf("failed to load center %q", c.Name), err)
		}
		out.VerboseLog("loaded center %d: %s", id, c.Name)
	}

	if opts.Format == "json" {
		return out.Success(map[string]int{"loaded": len(seed.Centers)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d center(s)\n", len(seed.Centers))
	return nil
}

func runCentersList(opts *RootOptions, cmd *cobra.Command) error {
	out := newFormatter(opts, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to open database", err)
	}
	defer st.Close()

	centers, err := st.ListTestingCenters(context.Background())
	if err != nil {
		return outputCommandError(out, ExitCommandError, ErrCodeStorage, "failed to list centers", err)
	}

	if opts.Format == "json" {
		return out.Success(centers)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderCenters(centers))
	return nil
}

// renderCenters formats the center list for text output.
func renderCenters(centers []record.TestingCenter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d testing center(s)\n", len(centers))
	for _, c := range centers {
		fmt.Fprintf(&b, "  %s\n", c.Name)
		if c.Address != "" {
			fmt.Fprintf(&b, "    %s\n", c.Address)
		}
		if c.Phone != "" {
			fmt.Fprintf(&b, "    %s\n", c.Phone)
		}
		var notes []string
		if c.WalkInsAccepted {
			notes = append(notes, "walk-ins")
		}
		if c.AppointmentRequired {
			notes = append(notes, "appointment required")
		}
		if c.AcceptsInsurance {
			notes = append(notes, "insurance accepted")
		}
		if len(notes) > 0 {
			fmt.Fprintf(&b, "    %s\n", strings.Join(notes, ", "))
		}
	}
	return b.String()
}
