package cmd

import (
	"fmt"

	"github.com/dendrascience/groupzip/groupzip"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates and returns the validate subcommand for the groupzip CLI.
// It checks the archives in a directory for corruption.
func NewValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate DIR",
		Short: "Validate the archives in a directory",
		Long: `Validate every archive directly under DIR.

Each entry is read in full, which checks its CRC-32, and entry names must not
contain directories. Entries whose source file still sits next to the archive
are compared with it by SHA-256.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], verbose)
		},
	}

	cmd.Flags().String("ext", groupzip.DefaultExtension, "Archive file extension")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runValidate(cmd *cobra.Command, dir string, verbose bool) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	reports, err := groupzip.VerifyDirectory(dir, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var totalErrors int
	for _, r := range reports {
		if !r.OK() {
			fmt.Fprintf(out, "Archive %s has %d errors:\n", r.Path, len(r.Problems))
			for _, p := range r.Problems {
				fmt.Fprintf(out, "  - %s\n", p)
			}
			totalErrors += len(r.Problems)
		} else if verbose {
			fmt.Fprintf(out, "Archive %s is valid (%d entries, %d compared)\n", r.Path, r.Entries, r.Compared)
		}
	}

	fmt.Fprintf(out, "\nValidation complete:\n")
	fmt.Fprintf(out, "  Archives checked: %d\n", len(reports))
	fmt.Fprintf(out, "  Total errors: %d\n", totalErrors)

	if totalErrors > 0 {
		return fmt.Errorf("%d problems found in %s", totalErrors, dir)
	}
	return nil
}
