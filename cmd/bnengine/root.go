// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package main

import (
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/cataclysmbn/bnengine/internal/config"
	"github.com/cataclysmbn/bnengine/internal/logging"
	"github.com/cataclysmbn/bnengine/internal/xdg"
)

const serviceName = "bnengine"

// defaultContentDir is used when content.dirs is not configured.
const defaultContentDir = "data/core"

// NewRootCmd creates the root command for the bnengine CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bnengine",
		Short: "bnengine - item ownership engine for a roguelike",
		Long: `bnengine loads content packs, manages the item snapshot database
and runs headless item simulations that check ownership invariants.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "config file path (default $XDG_CONFIG_HOME/bnengine/config.yaml)")
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewContentCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSimulateCmd())

	return cmd
}

// loadConfig reads the configuration for cmd and installs the default
// logger it describes.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err //nolint:wrapcheck // flag lookup on a flag we registered
	}
	if path == "" {
		if userPath, ok := xdg.ConfigFile(); ok {
			path = userPath
		}
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, nil, err //nolint:wrapcheck // already coded by config
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.SetDefault(logging.Options{
		Service: serviceName,
		Version: version,
		Format:  cfg.Log.Format,
		Level:   level,
		Writer:  cmd.ErrOrStderr(),
	})
	return cfg, logger, nil
}

// contentDirs returns the configured content directories. Without
// configuration the core pack is loaded followed by the installed mods.
func contentDirs(cfg *config.Config, logger *slog.Logger) []string {
	if len(cfg.Content.Dirs) > 0 {
		return cfg.Content.Dirs
	}
	dirs := []string{defaultContentDir}
	mods, err := xdg.InstalledMods()
	if err != nil {
		logger.Warn("cannot list installed mods", "dir", xdg.ModsDir(), "error", err)
		return dirs
	}
	return append(dirs, mods...)
}

// engineVersion returns the version content packs are checked against, or
// nil for development builds.
func engineVersion() *semver.Version {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil
	}
	return v
}
