package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"chosenoffset.com/parrotpet/internal/assets"
	"chosenoffset.com/parrotpet/internal/config"
	"chosenoffset.com/parrotpet/internal/placeholders"
	"chosenoffset.com/parrotpet/internal/reminder"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the config and list the asset files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			manifest, scanErr := assets.Scan(assetPaths(cfg))
			for _, e := range manifest.Entries {
				fmt.Fprintf(out, "%-10s %s (%d bytes)\n", e.Role, e.Path, e.Size)
			}
			if scanErr != nil {
				return scanErr
			}
			fmt.Fprintf(out, "atlas %q, %d tiles of %dx%d\n",
				manifest.Atlas.Name, len(manifest.Atlas.Tiles), manifest.Atlas.TileWidth, manifest.Atlas.TileHeight)

			for _, f := range []struct{ name, path string }{
				{"reminders", cfg.Reminders.File},
				{"messages", cfg.Reminders.MessagesFile},
			} {
				lines, err := reminder.LoadLines(f.path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d %s\n", len(lines), f.name)
			}
			fmt.Fprintf(out, "reminder every %s\n", cfg.Reminders.Interval)
			return nil
		},
	}
}

func newGenAssetsCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "gen-assets",
		Short: "Write a placeholder parrot sheet, sample text files and a default config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			log.Info("Generating placeholder assets", "atlas", cfg.Sprite.Atlas)
			written, err := placeholders.GenerateAndSave(placeholders.Paths{
				Atlas:     cfg.Sprite.Atlas,
				Reminders: cfg.Reminders.File,
				Messages:  cfg.Reminders.MessagesFile,
			}, force)
			if err != nil {
				return err
			}

			if _, err := os.Stat(opts.configPath); force || errors.Is(err, fs.ErrNotExist) {
				// Only the file locations are persisted; the other flags stay per-session.
				saved, err := config.Load(opts.configPath)
				if err != nil {
					return err
				}
				saved.Apply(opts.overrides.Files())
				if err := config.Save(opts.configPath, saved); err != nil {
					return err
				}
				written = append(written, opts.configPath)
			}

			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			if len(written) == 0 {
				log.Info("All files already exist, use --force to overwrite")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}
