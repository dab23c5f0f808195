package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"chosenoffset.com/parrotpet/internal/assets"
	"chosenoffset.com/parrotpet/internal/config"
)

const Version = "v0.3.0"

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	seed       uint64
	seedSet    bool
	verbose    bool
	overrides  config.Overrides
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "parrotpet",
		Short:         "A desktop parrot that wanders your screen and reminds you to take breaks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.seedSet = cmd.Flags().Changed("seed")
			setupLogging(opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "parrotpet.toml", "Path to the TOML config file")
	pf.StringVar(&opts.overrides.Reminders, "reminders", "", "Reminders file, one message per line")
	pf.StringVar(&opts.overrides.Messages, "messages", "", "Messages shown on a right-click with no reminder waiting")
	pf.StringVar(&opts.overrides.Atlas, "atlas", "", "Sprite atlas JSON")
	pf.Float64Var(&opts.overrides.Scale, "scale", 0, "Sprite scale")
	pf.DurationVar(&opts.overrides.Interval, "interval", 0, "Time between reminders, e.g. 30m")
	pf.Uint64Var(&opts.seed, "seed", 0, "Fixed random seed (defaults to the clock)")
	pf.BoolVar(&opts.overrides.Basic, "basic", false, "Only wander, fall and bounce")
	pf.BoolVar(&opts.overrides.ClickThrough, "click-through", false, "Let mouse clicks pass through the parrot")
	pf.BoolVar(&opts.overrides.Mute, "mute", false, "Do not chirp when a reminder is due")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Log behavior changes and reminders")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newCheckCmd(opts),
		newGenAssetsCmd(opts),
		versionCmd,
	)
	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

func setupLogging(verbose bool) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "parrotpet",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
}

// loadConfig reads the config file and layers the command-line flags on top.
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Apply(opts.overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func assetPaths(cfg *config.Config) assets.Paths {
	return assets.Paths{
		Atlas:     cfg.Sprite.Atlas,
		Reminders: cfg.Reminders.File,
		Messages:  cfg.Reminders.MessagesFile,
	}
}
