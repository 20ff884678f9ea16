package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dendrascience/groupzip/groupzip"
	"github.com/spf13/cobra"
)

// NewZipCmd creates and returns the zip subcommand for the groupzip CLI.
// It archives every selected group of a directory.
func NewZipCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "zip DIR",
		Short: "Archive each group of files that share a base name",
		Long: `Archive each group of files in DIR that share a base name.

Every selected group is written to <base>.zip (see --ext) in DIR, replacing an
existing archive of the same name. Archives are built in a scratch directory
and only moved into DIR once complete. Groups that fail are reported and the
remaining groups are still archived; the command then exits non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runZip(cmd, args[0], reportPath)
		},
	}

	addGroupingFlags(cmd.Flags())
	cmd.Flags().String("scratch-dir", "", "Parent directory for scratch space (default: system temp dir)")
	cmd.Flags().Bool("remove-members", false, "Delete the source files of each group once its archive is in place")
	cmd.Flags().IntP("workers", "w", 1, "Number of groups archived concurrently")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a JSON run report to this file")

	return cmd
}

func runZip(cmd *cobra.Command, dir, reportPath string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if opts.ScratchDir != "" && pathWithin(opts.ScratchDir, dir) {
		return fmt.Errorf("scratch dir %s must be outside %s", opts.ScratchDir, dir)
	}
	opts.Logger = logger

	res, err := groupzip.Run(cmd.Context(), dir, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, archive := range res.Archives {
		fmt.Fprintln(out, archive)
	}
	for _, f := range res.Failures {
		fmt.Fprintln(out, warnStyle.Render("failed: "+f.Error()))
	}
	fmt.Fprintln(out, strings.Repeat("=", 17))
	fmt.Fprintf(out, "Directory: %s\n", dir)
	fmt.Fprintf(out, "Archives created: %d\n", res.Count)
	fmt.Fprintf(out, "Groups skipped: %d\n", len(res.Skipped))
	fmt.Fprintf(out, "Groups failed: %d\n", len(res.Failures))
	fmt.Fprintln(out, strings.Repeat("=", 17))

	if reportPath != "" {
		if err := groupzip.NewReport(res).Save(reportPath); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return res.Err()
}

// pathWithin reports whether path is dir itself or lies below it.
func pathWithin(path, dir string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
