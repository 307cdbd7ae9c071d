// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package main

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/cataclysmbn/bnengine/internal/content"
)

// NewContentCmd creates the content subcommand.
func NewContentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Work with content packs",
	}
	cmd.AddCommand(newContentValidateCmd())
	cmd.AddCommand(newContentSchemaCmd())
	return cmd
}

func newContentValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir...]",
		Short: "Validate content packs",
		Long: `Load the given content pack directories, or content.dirs when none are
given, and report every schema and cross-reference error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dirs := args
			if len(dirs) == 0 {
				dirs = contentDirs(cfg, logger)
			}
			reg, err := content.Loader{Engine: engineVersion(), Logger: logger}.LoadDirs(dirs)
			if err != nil {
				return err //nolint:wrapcheck // loader errors carry their context
			}
			for _, p := range reg.Packs() {
				cmd.Printf("pack %s %s\n", p.Name, p.Version)
			}
			counts := reg.Counts()
			kinds := make([]string, 0, len(counts))
			for k := range counts {
				kinds = append(kinds, k)
			}
			slices.Sort(kinds)
			for _, k := range kinds {
				cmd.Printf("  %-10s %d\n", k, counts[k])
			}
			return nil
		},
	}
}

func newContentSchemaCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Write the JSON Schemas for content packs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := writeSchemas(outDir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				cmd.Printf("Generated %s\n", p)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "schemas", "output directory")
	return cmd
}

// writeSchemas writes one <kind>.schema.json per schema kind into dir.
func writeSchemas(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, oops.With("dir", dir).Wrapf(err, "create schema directory")
	}
	var paths []string
	for _, kind := range []string{content.SchemaManifest, content.SchemaDocument} {
		data, err := content.GenerateSchema(kind)
		if err != nil {
			return nil, err //nolint:wrapcheck // coded by content
		}
		p := filepath.Join(dir, kind+".schema.json")
		if err := os.WriteFile(p, data, 0o600); err != nil {
			return nil, oops.With("path", p).Wrapf(err, "write schema")
		}
		paths = append(paths, p)
	}
	return paths, nil
}
