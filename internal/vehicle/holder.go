// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package vehicle

import (
	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/internal/item"
)

// The VehicleHolder side, used by cargo and base locations. Lookups of a
// part the vehicle no longer has answer as if the part were empty.

func (v *Vehicle) IsLoaded() bool { return v.loaded }

func (v *Vehicle) Bounds() item.Bounds { return v.bounds }

func (v *Vehicle) PartPos(part int) geom.Tripoint {
	if part < 0 || part >= len(v.parts) {
		return v.pos
	}
	return v.MountToTripoint(v.parts[part].Mount)
}

func (v *Vehicle) PartName(part int) string {
	if p, err := v.part(part); err == nil {
		return p.Name
	}
	return ""
}

func (v *Vehicle) PartLabel(part int) string {
	if p, err := v.part(part); err == nil && p.Label != "" {
		return "[" + p.Label + "]"
	}
	return ""
}

func (v *Vehicle) PartHasCargo(part int) bool {
	p, err := v.part(part)
	return err == nil && p.HasCargo()
}

func (v *Vehicle) HasCargo(part int, it *item.Item) bool {
	p, err := v.part(part)
	return err == nil && p.cargo != nil && p.cargo.Contains(it)
}

func (v *Vehicle) RemoveCargo(part int, it *item.Item) (item.Detached, error) {
	p, err := v.part(part)
	if err != nil {
		return item.Detached{}, err
	}
	if p.cargo == nil {
		return item.Detached{}, item.NotHeld("vehicle cargo", it)
	}
	d, err := p.cargo.Remove(it)
	v.InvalidateMass()
	return d, err
}

func (v *Vehicle) AddCargo(part int, d item.Detached) (item.Detached, error) {
	_, rest, err := v.AddItem(part, d)
	return rest, err
}

func (v *Vehicle) IsBaseItem(part int, it *item.Item) bool {
	p, err := v.part(part)
	return err == nil && p.base.Is(it)
}

func (v *Vehicle) InvalidateMass() { v.massOK = false }
