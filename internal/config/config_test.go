// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataclysmbn/bnengine/internal/config"
	"github.com/cataclysmbn/bnengine/internal/gamemap"
	"github.com/cataclysmbn/bnengine/internal/inventory"
	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

func flags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bnengine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", flags(t))

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, inventory.AutoAssignEnabled, cfg.AutoAssign())
	assert.Equal(t, gamemap.DefaultRadius, cfg.Map.BubbleRadius)
	assert.Equal(t, gamemap.DefaultLevels, cfg.Map.Levels)
	assert.Equal(t, config.DefaultMetricsAddr, cfg.Metrics.Addr)
	assert.Empty(t, cfg.Database.URL)
	assert.Empty(t, cfg.Content.Dirs)
}

func TestLoad_FileThenFlags(t *testing.T) {
	path := writeFile(t, `
log:
  format: text
inventory:
  auto_assign: favorites
map:
  bubble_radius: 30
  levels: 11
database:
  url: postgres://localhost/bn
content:
  dirs: [data/core, data/mods/magiclysm]
`)

	cfg, err := config.Load(path, flags(t, "--map.bubble_radius=12", "--log.level=debug"))

	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Log.Format, "file beats flag default")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, inventory.AutoAssignFavorites, cfg.AutoAssign())
	assert.Equal(t, 12, cfg.Map.BubbleRadius, "set flag beats file")
	assert.Equal(t, 11, cfg.Map.Levels)
	assert.Equal(t, "postgres://localhost/bn", cfg.Database.URL)
	assert.Equal(t, []string{"data/core", "data/mods/magiclysm"}, cfg.Content.Dirs)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"), flags(t))

	errutil.AssertErrorCode(t, err, config.CodeInvalid)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log format", []string{"--log.format=xml"}},
		{"log level", []string{"--log.level=loud"}},
		{"auto assign", []string{"--inventory.auto_assign=sometimes"}},
		{"radius", []string{"--map.bubble_radius=0"}},
		{"even levels", []string{"--map.levels=20"}},
		{"empty content dir", []string{"--content.dirs=data/core,"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load("", flags(t, tt.args...))

			errutil.AssertErrorCode(t, err, config.CodeInvalid)
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}
