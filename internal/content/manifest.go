// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package content

import (
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the pack manifest at the root of a pack.
const ManifestFile = "pack.yaml"

// Manifest describes a content pack.
type Manifest struct {
	Name    string `yaml:"name" json:"name" jsonschema:"pattern=^[a-z][a-z0-9_]*$"`
	Version string `yaml:"version" json:"version"`
	// Requires is a semver constraint on the engine version, e.g. ">= 0.3, < 1".
	Requires    string `yaml:"requires,omitempty" json:"requires,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

var packName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ParseManifest parses and validates a pack.yaml file.
func ParseManifest(data []byte) (*Manifest, error) {
	if err := ValidateManifest(data); err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, oops.Code(CodeInvalidContent).Wrapf(err, "invalid YAML")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest fields.
func (m *Manifest) Validate() error {
	if !packName.MatchString(m.Name) {
		return oops.Code(CodeInvalidContent).
			With("pack", m.Name).
			Errorf("pack name %q must start with a-z and contain only a-z, 0-9 and underscores", m.Name)
	}
	if _, err := semver.StrictNewVersion(m.Version); err != nil {
		return oops.Code(CodeInvalidContent).
			With("pack", m.Name).
			With("version", m.Version).
			Wrapf(err, "version must be semver")
	}
	if m.Requires != "" {
		if _, err := semver.NewConstraint(m.Requires); err != nil {
			return oops.Code(CodeInvalidContent).
				With("pack", m.Name).
				With("requires", m.Requires).
				Wrapf(err, "requires must be a semver constraint")
		}
	}
	return nil
}

// CheckEngine reports whether the pack can be loaded by engine. A pack
// without requires loads everywhere.
func (m *Manifest) CheckEngine(engine *semver.Version) error {
	if m.Requires == "" || engine == nil {
		return nil
	}
	c, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return oops.Code(CodeInvalidContent).With("pack", m.Name).Wrap(err)
	}
	if ok, errs := c.Validate(engine); !ok {
		reasons := make([]string, 0, len(errs))
		for _, e := range errs {
			reasons = append(reasons, e.Error())
		}
		return oops.Code(CodeIncompatiblePack).
			With("pack", m.Name).
			With("requires", m.Requires).
			With("engine", engine.String()).
			With("reasons", reasons).
			Wrap(ErrIncompatiblePack)
	}
	return nil
}
