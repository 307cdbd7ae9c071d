// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package content loads the flyweight reference data (materials, vitamins,
// faults, emissions, flags, tool qualities and item types) from YAML
// content packs. Item types are built once and shared by pointer.
package content

import (
	"errors"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/item"
)

// Registry holds every definition loaded from content packs.
type Registry struct {
	packs     []*Manifest
	materials map[string]Material
	vitamins  map[string]Vitamin
	faults    map[string]Fault
	emits     map[string]Emit
	flags     map[string]Flag
	qualities map[string]Quality
	defs      map[string]ItemDef
	origin    map[string]string
	types     map[string]*item.Type
	logger    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		materials: map[string]Material{},
		vitamins:  map[string]Vitamin{},
		faults:    map[string]Fault{},
		emits:     map[string]Emit{},
		flags:     map[string]Flag{},
		qualities: map[string]Quality{},
		defs:      map[string]ItemDef{},
		origin:    map[string]string{},
		types:     map[string]*item.Type{},
		logger:    logger,
	}
}

func put[T any](r *Registry, pack, kind string, m map[string]T, id string, v T) {
	if _, ok := m[id]; ok {
		r.logger.Debug("definition overridden",
			"pack", pack,
			"kind", kind,
			"id", id)
	}
	m[id] = v
}

// Add merges doc, read from pack, into the registry. A definition replaces
// an earlier one with the same id, so later packs override earlier ones.
func (r *Registry) Add(pack string, doc *Document) {
	for _, v := range doc.Materials {
		put(r, pack, "material", r.materials, v.ID, v)
	}
	for _, v := range doc.Vitamins {
		put(r, pack, "vitamin", r.vitamins, v.ID, v)
	}
	for _, v := range doc.Faults {
		put(r, pack, "fault", r.faults, v.ID, v)
	}
	for _, v := range doc.Emits {
		put(r, pack, "emit", r.emits, v.ID, v)
	}
	for _, v := range doc.Flags {
		put(r, pack, "flag", r.flags, v.ID, v)
	}
	for _, v := range doc.Qualities {
		put(r, pack, "quality", r.qualities, v.ID, v)
	}
	for _, v := range doc.Items {
		put(r, pack, "item", r.defs, v.ID, v)
		r.origin[v.ID] = pack
	}
}

func (r *Registry) dangling(itemID, kind, ref string) error {
	return oops.Code(CodeDanglingReference).
		With("item_type", itemID).
		With("pack", r.origin[itemID]).
		With("kind", kind).
		With("ref", ref).
		Wrapf(ErrDanglingReference, "item type %q: %s %q", itemID, kind, ref)
}

// Finalize checks references between definitions and builds the item
// types. Every broken reference is reported.
func (r *Registry) Finalize() error {
	var errs []error
	for _, id := range slices.Sorted(maps.Keys(r.defs)) {
		def := r.defs[id]
		for _, m := range def.Materials {
			if _, ok := r.materials[m]; !ok {
				errs = append(errs, r.dangling(id, "material", m))
			}
		}
		for _, q := range slices.Sorted(maps.Keys(def.Qualities)) {
			if _, ok := r.qualities[q]; !ok {
				errs = append(errs, r.dangling(id, "quality", q))
			}
		}
		for _, f := range def.Flags {
			if _, ok := r.flags[f]; !ok {
				errs = append(errs, r.dangling(id, "flag", f))
			}
		}
		for _, f := range def.Faults {
			if _, ok := r.faults[f]; !ok {
				errs = append(errs, r.dangling(id, "fault", f))
			}
		}
		for _, e := range def.Emits {
			if _, ok := r.emits[e]; !ok {
				errs = append(errs, r.dangling(id, "emit", e))
			}
		}
		for _, v := range slices.Sorted(maps.Keys(def.Vitamins)) {
			if _, ok := r.vitamins[v]; !ok {
				errs = append(errs, r.dangling(id, "vitamin", v))
			}
		}

		t, err := buildType(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if old, ok := r.types[id]; ok {
			// Keep pointers handed out earlier valid.
			*old = *t
			continue
		}
		r.types[id] = t
	}
	return errors.Join(errs...)
}

func buildType(def ItemDef) (*item.Type, error) {
	var rots time.Duration
	if def.RotsIn != "" {
		d, err := time.ParseDuration(def.RotsIn)
		if err != nil || d < 0 {
			return nil, oops.Code(CodeInvalidContent).
				With("item_type", def.ID).
				With("rots_in", def.RotsIn).
				Errorf("item type %q: rots_in must be a non-negative duration", def.ID)
		}
		rots = d
	}
	name := def.Name
	if name == "" {
		name = def.ID
	}
	return &item.Type{
		ID:              def.ID,
		Name:            name,
		Materials:       slices.Clone(def.Materials),
		CountByCharges:  def.CountByCharges,
		StackSize:       def.StackSize,
		DefaultCharges:  def.Charges,
		VolumeML:        def.VolumeML,
		WeightG:         def.WeightG,
		Qualities:       maps.Clone(def.Qualities),
		RotsIn:          rots,
		HolsterDrawCost: def.HolsterDrawCost,
		DamageMin:       def.DamageMin,
		DamageMax:       def.DamageMax,
		Flags:           slices.Clone(def.Flags),
	}, nil
}

// ItemType returns the type with id.
func (r *Registry) ItemType(id string) (*item.Type, error) {
	if t, ok := r.types[id]; ok {
		return t, nil
	}
	return item.NullType, oops.Code(CodeUnknownItemType).
		With("item_type", id).
		Wrap(ErrUnknownItemType)
}

// ItemTypes returns every item type ordered by id.
func (r *Registry) ItemTypes() []*item.Type {
	res := make([]*item.Type, 0, len(r.types))
	for _, id := range slices.Sorted(maps.Keys(r.types)) {
		res = append(res, r.types[id])
	}
	return res
}

// ItemDef returns the raw definition of an item type, including the faults,
// emissions and vitamins that item types do not carry.
func (r *Registry) ItemDef(id string) (ItemDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Material returns the material with id.
func (r *Registry) Material(id string) (Material, bool) {
	m, ok := r.materials[id]
	return m, ok
}

// Flag returns the flag with id.
func (r *Registry) Flag(id string) (Flag, bool) {
	f, ok := r.flags[id]
	return f, ok
}

// Quality returns the tool quality with id.
func (r *Registry) Quality(id string) (Quality, bool) {
	q, ok := r.qualities[id]
	return q, ok
}

// Fault returns the fault with id.
func (r *Registry) Fault(id string) (Fault, bool) {
	f, ok := r.faults[id]
	return f, ok
}

// Packs returns the manifests of the loaded packs in load order.
func (r *Registry) Packs() []*Manifest { return slices.Clone(r.packs) }

// Counts returns the number of definitions per kind.
func (r *Registry) Counts() map[string]int {
	return map[string]int{
		"materials": len(r.materials),
		"vitamins":  len(r.vitamins),
		"faults":    len(r.faults),
		"emits":     len(r.emits),
		"flags":     len(r.flags),
		"qualities": len(r.qualities),
		"items":     len(r.defs),
	}
}
