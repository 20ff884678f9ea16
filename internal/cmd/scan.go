package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/dendrascience/groupzip/groupzip"
	"github.com/spf13/cobra"
)

// NewScanCmd creates and returns the scan subcommand for the groupzip CLI.
// It shows how a directory would be grouped without writing anything.
func NewScanCmd() *cobra.Command {
	var showMembers bool

	cmd := &cobra.Command{
		Use:   "scan DIR",
		Short: "Show the groups in a directory and which ones would be archived",
		Long: `List every base name found directly under DIR together with its members
and whether the selection policy would archive it. Nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], showMembers)
		},
	}

	addGroupingFlags(cmd.Flags())
	cmd.Flags().BoolVarP(&showMembers, "members", "m", true, "List the members of each group")

	return cmd
}

func runScan(cmd *cobra.Command, dir string, showMembers bool) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	groups, err := groupzip.Plan(dir, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	selected := 0
	for _, g := range groups {
		status := okStyle.Render("selected")
		if g.Selected {
			selected++
		} else {
			status = warnStyle.Render("skipped: " + string(g.Skip))
		}
		fmt.Fprintf(out, "%s (%d members) %s\n", baseStyle(g.BaseName).Render(g.BaseName), len(g.Members), status)
		if showMembers {
			for _, m := range g.Members {
				fmt.Fprintf(out, "  %s\n", dimStyle.Render(filepath.Base(m)))
			}
		}
	}
	fmt.Fprintf(out, "Groups: %d, selected: %d, policy: %s\n", len(groups), selected, opts.Policy)
	return nil
}
