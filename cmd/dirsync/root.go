package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/dirsync/pkg/config"
	"github.com/walteh/dirsync/pkg/status"
	"github.com/walteh/dirsync/pkg/sync"
	"github.com/walteh/dirsync/pkg/vfs"
)

var (
	// Flags
	configFile string
	dryRun     bool
	parallel   bool
	exclude    []string
	debug      bool
)

// newRootCmd builds the dirsync command. The CLI only validates the
// argument count; whether the paths are real directories is the
// reconciler's call.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirsync [source] [destination]",
		Short: "mirror a destination directory tree from a source tree",
		Long: "dirsync copies new or changed files and directories from source to " +
			"destination and removes destination entries absent from source. " +
			"With --dry-run it reports what it would do without touching anything.",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), cmd, args)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", config.DefaultFileName, "config file path")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "report actions without performing them")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "reconcile sibling subtrees concurrently")
	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "glob pattern to leave alone on both sides (repeatable)")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	return cmd
}

func runSync(ctx context.Context, cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	// Positional arguments override file values
	if len(args) > 0 {
		cfg.Source = args[0]
	}
	if len(args) > 1 {
		cfg.Destination = args[1]
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = parallel
	}
	cfg.Exclude = append(cfg.Exclude, exclude...)

	if cfg.Source == "" || cfg.Destination == "" {
		return errors.Errorf("source and destination are required, via arguments or %s", configFile)
	}

	synchronizer, err := sync.New(sync.Options{
		FS:       vfs.NewOS(),
		Notifier: status.NewConsole(cmd.OutOrStdout()),
		DryRun:   cfg.DryRun,
		Parallel: cfg.Parallel,
		Exclude:  cfg.Exclude,
	})
	if err != nil {
		return errors.Errorf("creating synchronizer: %w", err)
	}

	return synchronizer.Sync(ctx, cfg.Source, cfg.Destination)
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger().Level(level)
}
