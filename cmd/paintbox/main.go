package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/paintbox/internal/app"
	"github.com/five82/paintbox/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "paintbox: %s\n", ui.DescribeError(err))
		return 1
	}
	return 0
}

// newRootCmd builds the command tree. The root command runs the TUI.
func newRootCmd() *cobra.Command {
	opts := &app.Options{}

	root := &cobra.Command{
		Use:   "paintbox",
		Short: "Spray paint inventory tracker",
		Long: `paintbox tracks how many cans of each catalog color you have on hand.

Run without arguments to start the interactive interface. The subcommands
work on the same inventory for scripting and moving data between machines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), *opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/paintbox/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/paintbox/prefs.toml)")
	flags.StringVar(&opts.EnvFile, "env-file", "", "dotenv file to load (default ./.env)")
	flags.StringVar(&opts.DataDir, "data-dir", "", "directory holding the inventory and log")
	flags.StringVar(&opts.Storage, "storage", "", "inventory storage: file or sqlite")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newListCmd(opts),
		newSetCmd(opts),
		newStatsCmd(opts),
		newExportCmd(opts),
		newImportCmd(opts),
		newClearCmd(opts),
		newLogCmd(opts),
	)
	return root
}

// withEnv opens the paintbox environment for the duration of fn.
func withEnv(cmd *cobra.Command, opts *app.Options, fn func(env *app.Env) error) (err error) {
	env, err := app.Open(cmd.Context(), *opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(env)
}
