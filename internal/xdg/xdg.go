// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package xdg provides XDG Base Directory paths for bnengine.
package xdg

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

const appName = "bnengine"

// ConfigFileName is the name of the config file inside ConfigDir.
const ConfigFileName = "config.yaml"

// ConfigDir returns the XDG config directory for bnengine.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// DataDir returns the XDG data directory for bnengine.
// Checks XDG_DATA_HOME first, falls back to ~/.local/share.
func DataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".local", "share")
	}
	return filepath.Join(base, appName)
}

// ModsDir is where user content packs are installed.
func ModsDir() string {
	return filepath.Join(DataDir(), "mods")
}

// ConfigFile returns the path of the user config file and whether it exists.
func ConfigFile() (string, bool) {
	path := filepath.Join(ConfigDir(), ConfigFileName)
	_, err := os.Stat(path)
	return path, err == nil
}

// InstalledMods returns the pack directories under ModsDir in name order.
// A missing ModsDir yields no packs.
func InstalledMods() ([]string, error) {
	entries, err := os.ReadDir(ModsDir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err //nolint:wrapcheck // caller adds context
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(ModsDir(), e.Name()))
		}
	}
	return dirs, nil
}
