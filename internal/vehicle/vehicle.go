// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package vehicle implements the item storage of vehicles: every part is
// built from a base item and may carry cargo.
package vehicle

import (
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/internal/item"
)

var (
	// ErrBadPart is returned for a part index the vehicle does not have.
	ErrBadPart = errors.New("vehicle has no such part")
	// ErrNoCargo is returned when storing items in a part without cargo space.
	ErrNoCargo = errors.New("vehicle part has no cargo space")
	// ErrCargoFull is returned when an item does not fit in a part's cargo space.
	ErrCargoFull = errors.New("vehicle part cargo space is full")
)

// Error codes attached with oops.Code.
const (
	CodeBadPart   = "BAD_PART"
	CodeNoCargo   = "NO_CARGO"
	CodeCargoFull = "CARGO_FULL"
)

// Part is one installed part.
type Part struct {
	Name  string
	Label string
	// Mount is the offset of the part from the vehicle's position.
	Mount geom.Tripoint
	// CapacityML is the cargo volume, zero for parts without cargo.
	CapacityML int

	base    *item.Slot
	cargo   *item.Vector
	removed bool
}

// Base returns the item the part was built from.
func (p *Part) Base() *item.Item { return p.base.Item() }

// HasCargo reports whether the part can store items.
func (p *Part) HasCargo() bool { return p.cargo != nil && !p.removed }

// PartOption configures a part being installed.
type PartOption func(*Part)

// WithLabel names the part for the player, as in "[trunk] cargo space".
func WithLabel(label string) PartOption {
	return func(p *Part) { p.Label = label }
}

// WithCargo gives the part capacityML of cargo space.
func WithCargo(capacityML int) PartOption {
	return func(p *Part) { p.CapacityML = capacityML }
}

// Option configures a Vehicle.
type Option func(*Vehicle)

// WithPos places the vehicle in the reality bubble.
func WithPos(p geom.Tripoint) Option {
	return func(v *Vehicle) { v.pos = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(v *Vehicle) { v.logger = l }
}

// Vehicle is a set of parts sharing a position.
type Vehicle struct {
	ID   ulid.ULID
	Name string

	pos    geom.Tripoint
	loaded bool
	bounds item.Bounds
	parts  []*Part

	mass   int
	massOK bool
	logger *slog.Logger
}

var _ item.VehicleHolder = (*Vehicle)(nil)

// New creates a loaded vehicle without parts. bounds is the reality bubble
// its parts are checked against.
func New(name string, bounds item.Bounds, opts ...Option) *Vehicle {
	v := &Vehicle{ID: ulid.Make(), Name: name, loaded: true, bounds: bounds}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}
	return v
}

// InstallPart builds a part from base at mount and returns its index.
// Indices stay valid until the vehicle is gone.
func (v *Vehicle) InstallPart(base item.Detached, name string, mount geom.Tripoint, opts ...PartOption) int {
	p := &Part{Name: name, Mount: mount}
	for _, opt := range opts {
		opt(p)
	}
	idx := len(v.parts)
	p.base = item.NewSlot(item.NewVehicleBaseLocation(v, idx), true)
	p.base.Set(base)
	if p.CapacityML > 0 {
		p.cargo = item.NewVector(item.NewVehicleCargoLocation(v, idx))
	}
	v.parts = append(v.parts, p)
	v.InvalidateMass()
	return idx
}

// RemovePart takes part off the vehicle and returns its base item and
// whatever was in its cargo space.
func (v *Vehicle) RemovePart(part int) (item.Detached, []item.Detached, error) {
	p, err := v.part(part)
	if err != nil {
		return item.Detached{}, nil, err
	}
	var cargo []item.Detached
	if p.cargo != nil {
		cargo = p.cargo.Clear()
	}
	p.removed = true
	v.InvalidateMass()
	v.logger.Debug("vehicle part removed",
		"vehicle", v.Name,
		"part", part,
		"part_name", p.Name,
		"cargo", len(cargo))
	return p.base.Release(), cargo, nil
}

func (v *Vehicle) part(idx int) (*Part, error) {
	if idx < 0 || idx >= len(v.parts) || v.parts[idx].removed {
		return nil, oops.Code(CodeBadPart).
			With("vehicle", v.Name).
			With("part", idx).
			Wrap(ErrBadPart)
	}
	return v.parts[idx], nil
}

// Part returns the part at idx.
func (v *Vehicle) Part(idx int) (*Part, error) { return v.part(idx) }

// Parts returns the number of part indices ever handed out.
func (v *Vehicle) Parts() int { return len(v.parts) }

// Pos returns the bubble-local position of mount (0, 0, 0).
func (v *Vehicle) Pos() geom.Tripoint { return v.pos }

// Move moves the whole vehicle by offset.
func (v *Vehicle) Move(offset geom.Tripoint) { v.pos = v.pos.Add(offset) }

// MountToTripoint converts a mount offset to a bubble-local coordinate.
func (v *Vehicle) MountToTripoint(mount geom.Tripoint) geom.Tripoint { return v.pos.Add(mount) }

// SetLoaded marks the vehicle as loaded or not.
func (v *Vehicle) SetLoaded(loaded bool) { v.loaded = loaded }

// Cargo returns the items in the cargo space of part.
func (v *Vehicle) Cargo(part int) []*item.Item {
	p, err := v.part(part)
	if err != nil || p.cargo == nil {
		return nil
	}
	return p.cargo.Items()
}

// FreeVolume returns the unused cargo volume of part in millilitres.
func (v *Vehicle) FreeVolume(part int) int {
	p, err := v.part(part)
	if err != nil || p.cargo == nil {
		return 0
	}
	used := 0
	for _, it := range p.cargo.Items() {
		used += it.Volume()
	}
	return max(0, p.CapacityML-used)
}

// AddItem stores d in the cargo space of part. Charges merge into a
// matching item already there. On failure d is handed back.
func (v *Vehicle) AddItem(part int, d item.Detached) (*item.Item, item.Detached, error) {
	if d.IsEmpty() {
		return item.Null(), d, nil
	}
	src := d.Item()
	p, err := v.part(part)
	if err != nil {
		return item.Null(), d, err
	}
	if p.cargo == nil {
		return item.Null(), d, oops.Code(CodeNoCargo).
			With("vehicle", v.Name).
			With("part", part).
			With("part_name", p.Name).
			Wrap(ErrNoCargo)
	}
	if returning := src.ReturningTo(p.cargo.Location()); !returning {
		if src.Volume() > v.FreeVolume(part) {
			return item.Null(), d, oops.Code(CodeCargoFull).
				With("vehicle", v.Name).
				With("part", part).
				With("item_id", src.IDString()).
				With("volume_ml", src.Volume()).
				With("free_ml", v.FreeVolume(part)).
				Wrap(ErrCargoFull)
		}
		if src.CountByCharges() {
			for _, it := range p.cargo.Items() {
				if !it.StacksWith(src) {
					continue
				}
				if ok, _ := it.MergeCharges(d, false); ok {
					v.InvalidateMass()
					return it, item.Detached{}, nil
				}
			}
		}
	}
	p.cargo.PushBack(d)
	v.InvalidateMass()
	return src, item.Detached{}, nil
}

// Holders returns the base slots and cargo spaces of the installed parts,
// for Arena.Audit.
func (v *Vehicle) Holders() []item.Occupied {
	var hs []item.Occupied
	for _, p := range v.parts {
		if p.removed {
			continue
		}
		hs = append(hs, p.base)
		if p.cargo != nil {
			hs = append(hs, p.cargo)
		}
	}
	return hs
}

// Mass returns the total weight of base items and cargo in grams.
func (v *Vehicle) Mass() int {
	if v.massOK {
		return v.mass
	}
	m := 0
	for _, p := range v.parts {
		if p.removed {
			continue
		}
		if !p.base.IsEmpty() {
			m += p.base.Item().Weight()
		}
		if p.cargo != nil {
			for _, it := range p.cargo.Items() {
				m += it.Weight()
			}
		}
	}
	v.mass, v.massOK = m, true
	return m
}

// Destroy destroys every base item and all cargo.
func (v *Vehicle) Destroy() {
	for _, p := range v.parts {
		if p.cargo != nil {
			p.cargo.Destroy()
		}
		p.base.Destroy()
		p.removed = true
	}
	v.InvalidateMass()
}
