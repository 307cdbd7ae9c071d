// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package content

import (
	"io/fs"
	"log/slog"
	"os"
	"path"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// Loader reads content packs.
type Loader struct {
	// Engine is checked against each pack's requires constraint; nil skips
	// the check.
	Engine *semver.Version
	Logger *slog.Logger
}

// LoadDirs loads the packs in dirs, in order.
func (l Loader) LoadDirs(dirs []string) (*Registry, error) {
	packs := make([]fs.FS, 0, len(dirs))
	for _, dir := range dirs {
		packs = append(packs, os.DirFS(dir))
	}
	return l.Load(packs...)
}

// Load loads packs in order into a new registry and finalizes it.
func (l Loader) Load(packs ...fs.FS) (*Registry, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := NewRegistry(logger)
	seen := map[string]bool{}
	for _, fsys := range packs {
		m, err := l.loadPack(r, fsys)
		if err != nil {
			return nil, err
		}
		if seen[m.Name] {
			return nil, oops.Code(CodeInvalidContent).
				With("pack", m.Name).
				Errorf("pack %q loaded twice", m.Name)
		}
		seen[m.Name] = true
		r.packs = append(r.packs, m)
	}
	if err := r.Finalize(); err != nil {
		return nil, err
	}
	logger.Info("content loaded",
		"packs", len(r.packs),
		"item_types", len(r.types))
	return r, nil
}

func (l Loader) loadPack(r *Registry, fsys fs.FS) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, oops.Code(CodeInvalidContent).With("file", ManifestFile).Wrapf(err, "read manifest")
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, oops.With("file", ManifestFile).Wrap(err)
	}
	if err := m.CheckEngine(l.Engine); err != nil {
		return nil, err
	}

	var files []string
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == ManifestFile {
			return nil
		}
		if ext := path.Ext(p); ext == ".yaml" || ext == ".yml" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, oops.Code(CodeInvalidContent).With("pack", m.Name).Wrapf(err, "list pack files")
	}

	for _, p := range files {
		doc, err := readDocument(fsys, p)
		if err != nil {
			return nil, oops.With("pack", m.Name).With("file", p).Wrap(err)
		}
		r.Add(m.Name, doc)
	}
	return m, nil
}

func readDocument(fsys fs.FS, p string) (*Document, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, oops.Code(CodeInvalidContent).Wrapf(err, "read data file")
	}
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, oops.Code(CodeInvalidContent).Wrapf(err, "invalid YAML")
	}
	return &doc, nil
}
