// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package config loads engine configuration. Values come from flag
// defaults, then an optional YAML file, then flags the user set.
package config

import (
	"errors"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/cataclysmbn/bnengine/internal/gamemap"
	"github.com/cataclysmbn/bnengine/internal/inventory"
	"github.com/cataclysmbn/bnengine/internal/logging"
)

// ErrInvalid is returned for a configuration that fails validation.
var ErrInvalid = errors.New("invalid configuration")

// CodeInvalid is the oops code of ErrInvalid.
const CodeInvalid = "INVALID_CONFIG"

// Config is the full engine configuration.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Inventory InventoryConfig `koanf:"inventory"`
	Map       MapConfig       `koanf:"map"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Database  DatabaseConfig  `koanf:"database"`
	Content   ContentConfig   `koanf:"content"`
}

// LogConfig selects the log format and level.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// InventoryConfig holds inventory letter settings.
type InventoryConfig struct {
	// AutoAssign is "enabled", "favorites" or "disabled".
	AutoAssign string `koanf:"auto_assign"`
}

// MapConfig sizes the reality bubble.
type MapConfig struct {
	BubbleRadius int `koanf:"bubble_radius"`
	Levels       int `koanf:"levels"`
}

// MetricsConfig holds the observability listen address; empty disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// DatabaseConfig holds the snapshot store connection string.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// ContentConfig lists the content pack directories, loaded in order.
type ContentConfig struct {
	Dirs []string `koanf:"dirs"`
}

// Defaults.
const (
	DefaultLogFormat   = logging.FormatJSON
	DefaultLogLevel    = "info"
	DefaultAutoAssign  = string(inventory.AutoAssignEnabled)
	DefaultMetricsAddr = "127.0.0.1:9100"
)

// RegisterFlags adds a flag for every key to fs. Flag names are the koanf
// keys, e.g. --map.bubble_radius.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("log.format", DefaultLogFormat, "log format (json or text)")
	fs.String("log.level", DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("inventory.auto_assign", DefaultAutoAssign, "automatic inventory letters (enabled, favorites, disabled)")
	fs.Int("map.bubble_radius", gamemap.DefaultRadius, "reality bubble radius in tiles")
	fs.Int("map.levels", gamemap.DefaultLevels, "number of z-levels in the reality bubble")
	fs.String("metrics.addr", DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	fs.String("database.url", "", "PostgreSQL URL of the snapshot store")
	fs.StringSlice("content.dirs", nil, "content pack directories")
}

// Load reads the YAML file at path, if path is not empty, and overlays the
// flags in fs. fs must have been passed to RegisterFlags.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code(CodeInvalid).With("path", path).Wrapf(err, "read config file")
		}
	}
	// Unchanged flags only fill keys the file left unset.
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, oops.Code(CodeInvalid).Wrapf(err, "read flags")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code(CodeInvalid).Wrapf(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	invalid := func(key string, value any, reason string) error {
		return oops.Code(CodeInvalid).
			With("key", key).
			With("value", value).
			Wrapf(ErrInvalid, "%s %s", key, reason)
	}
	if c.Log.Format != logging.FormatJSON && c.Log.Format != logging.FormatText {
		return invalid("log.format", c.Log.Format, "must be 'json' or 'text'")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, "must be debug, info, warn or error")
	}
	if _, err := inventory.ParseAutoAssign(c.Inventory.AutoAssign); err != nil {
		return invalid("inventory.auto_assign", c.Inventory.AutoAssign, "must be enabled, favorites or disabled")
	}
	if c.Map.BubbleRadius <= 0 {
		return invalid("map.bubble_radius", c.Map.BubbleRadius, "must be positive")
	}
	if c.Map.Levels <= 0 || c.Map.Levels%2 == 0 {
		return invalid("map.levels", c.Map.Levels, "must be a positive odd number")
	}
	for _, dir := range c.Content.Dirs {
		if strings.TrimSpace(dir) == "" {
			return invalid("content.dirs", c.Content.Dirs, "must not contain empty entries")
		}
	}
	return nil
}

// AutoAssign returns the parsed inventory letter policy.
func (c *Config) AutoAssign() inventory.AutoAssign {
	p, err := inventory.ParseAutoAssign(c.Inventory.AutoAssign)
	if err != nil {
		return inventory.AutoAssignEnabled
	}
	return p
}
