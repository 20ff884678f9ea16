package cmd

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the groupzip CLI.
// It generates sidecar-style file groups for trying out the archiver.
func NewSeedCmd() *cobra.Command {
	var (
		groups     int
		incomplete int
		extensions []string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed DIR",
		Short: "Generate groups of sidecar files for testing",
		Long: `Generate file groups in DIR the way multi-file export tools produce them.

Every group gets one file per extension, named <base><ext>, each holding a
single UUID line. The first --incomplete groups are missing one randomly
chosen extension so that count and companion policies have something to skip.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args[0], groups, incomplete, extensions, verbose)
		},
	}

	cmd.Flags().IntVarP(&groups, "groups", "g", 10, "Number of groups to generate")
	cmd.Flags().IntVar(&incomplete, "incomplete", 0, "Number of groups missing one member")
	cmd.Flags().StringSliceVarP(&extensions, "extensions", "e", []string{".shp", ".shx", ".dbf", ".prj"}, "Extensions of each group's members")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runSeed(cmd *cobra.Command, dir string, groups, incomplete int, extensions []string, verbose bool) error {
	if len(extensions) == 0 {
		return fmt.Errorf("at least one extension is required")
	}
	if incomplete > groups {
		return fmt.Errorf("--incomplete (%d) cannot exceed --groups (%d)", incomplete, groups)
	}
	for i, ext := range extensions {
		ext = strings.TrimSpace(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[i] = ext
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	out := cmd.OutOrStdout()
	filesCreated := 0
	for g := range groups {
		base := "plot_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]

		skip := -1
		if g < incomplete {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(extensions))))
			if err != nil {
				return err
			}
			skip = int(n.Int64())
		}

		for i, ext := range extensions {
			if i == skip {
				continue
			}
			path := filepath.Join(dir, base+ext)
			if err := os.WriteFile(path, []byte(uuid.NewString()+"\n"), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			filesCreated++
		}
		if verbose {
			fmt.Fprintf(out, "Created group %s\n", base)
		}
	}

	fmt.Fprintf(out, "Created %d files in %d groups (%d incomplete) in %s\n", filesCreated, groups, incomplete, dir)
	return nil
}
