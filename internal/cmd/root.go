package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/dendrascience/groupzip/internal/config"
	"github.com/dendrascience/groupzip/internal/logging"
	"github.com/dendrascience/groupzip/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewRootCmd creates and returns the root cobra command for the groupzip CLI.
// It sets up all subcommands, command groups, and the global flags.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "groupzip",
		Short: "groupzip - zip files that share a base name into one archive per group",
		Long: `groupzip groups the files of a directory by base name (the file name
without its extension) and packs each group into <base>.zip next to the
source files.

Which groups are archived is decided by a selection policy:
  - unconditional: every group
  - count: only groups with exactly --count members
  - companion: only groups containing a file with the --companion extension

Settings come from an optional TOML file (--config), GROUPZIP_* environment
variables and flags, in increasing order of precedence.`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	groupArchiving := "archiving"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupArchiving,
		Title: "Archiving",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a TOML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json, logfmt)")

	zipCmd := NewZipCmd()
	scanCmd := NewScanCmd()
	serveCmd := NewServeCmd()
	validateCmd := NewValidateCmd()
	seedCmd := NewSeedCmd()
	configCmd := NewConfigCmd()

	zipCmd.GroupID = groupArchiving
	scanCmd.GroupID = groupArchiving
	serveCmd.GroupID = groupArchiving
	validateCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	configCmd.GroupID = groupUtilities

	rootCmd.AddCommand(zipCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(configCmd)

	return rootCmd
}

// addGroupingFlags registers the flags that choose how files are grouped and
// which groups are archived. Their defaults mirror config.DefaultConfig.
func addGroupingFlags(fs *pflag.FlagSet) {
	d := config.DefaultConfig()
	fs.String("rule", d.Grouping.BaseNameRule, "Base name rule (first-dot, last-dot)")
	fs.StringP("policy", "p", d.Grouping.Policy, "Selection policy (unconditional, count, companion)")
	fs.Int("count", d.Grouping.Count, "Required member count for the count policy")
	fs.String("companion", d.Grouping.Companion, "Required companion extension for the companion policy")
	fs.String("ext", d.Archive.Extension, "Archive file extension")
}

// setup loads the effective configuration for cmd and builds its logger.
func setup(cmd *cobra.Command) (config.Config, *log.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
