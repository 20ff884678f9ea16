package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/dendrascience/groupzip/internal/web"
	"github.com/dendrascience/groupzip/version"
	"github.com/spf13/cobra"
)

// NewServeCmd creates and returns the serve subcommand for the groupzip CLI.
// It runs the browser form front end.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form for archiving a directory",
		Long: `Serve a small web form that asks for a directory path and archives it with
the configured policy. The result page lists the archives created by the
browser session's last run.

The directory must be given as a path on the server's own filesystem.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	addGroupingFlags(cmd.Flags())
	cmd.Flags().String("addr", ":6066", "Address to listen on")
	cmd.Flags().String("scratch-dir", "", "Parent directory for scratch space (default: system temp dir)")
	cmd.Flags().IntP("workers", "w", 1, "Number of groups archived concurrently")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	webapp, err := web.New(opts, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !version.IsRelease() {
		logger.Warn("running a development build", "version", version.GetVersion())
	}
	logger.Info("starting", "version", version.GetFullVersion(), "policy", opts.Policy.String())
	return webapp.Serve(ctx, cfg.Server.Addr)
}
