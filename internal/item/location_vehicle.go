// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/geom"
)

// vehicleLocation is either the cargo space of a vehicle part or the base
// item the part was built from.
type vehicleLocation struct {
	veh     VehicleHolder
	part    int
	variant Variant
}

// NewVehicleCargoLocation returns the cargo location of part on v.
func NewVehicleCargoLocation(v VehicleHolder, part int) Location {
	return &vehicleLocation{veh: v, part: part, variant: VariantVehicleCargo}
}

// NewVehicleBaseLocation returns the location of the base item of part on v.
func NewVehicleBaseLocation(v VehicleHolder, part int) Location {
	return &vehicleLocation{veh: v, part: part, variant: VariantVehicleBase}
}

func (l *vehicleLocation) Variant() Variant { return l.variant }

func (l *vehicleLocation) Where() Where { return WhereVehicle }

func (l *vehicleLocation) IsLoaded(*Item) bool {
	if !l.veh.IsLoaded() {
		return false
	}
	// The vehicle may straddle the bubble edge.
	return l.veh.Bounds().InBounds(l.veh.PartPos(l.part))
}

func (l *vehicleLocation) Position(*Item) (geom.Tripoint, error) {
	return l.veh.PartPos(l.part), nil
}

func (l *vehicleLocation) Describe(viewer Viewer, _ *Item) string {
	if l.variant == VariantVehicleBase {
		return "Error: Vehicle base part"
	}
	if !l.veh.PartHasCargo(l.part) {
		return "Error: vehicle part without storage"
	}
	var res string
	if label := l.veh.PartLabel(l.part); label != "" {
		res = label + " "
	}
	res += l.veh.PartName(l.part)
	if viewer != nil {
		if dir := geom.DirectionSuffix(viewer.Pos(), l.veh.PartPos(l.part)); dir != "" {
			res += " " + dir
		}
	}
	return res
}

func (l *vehicleLocation) ObtainCost(ch Handler, qty int, it *Item) (int, error) {
	if l.variant == VariantVehicleBase {
		return 0, oops.Code(CodeNotDetachable).
			With("part", l.part).
			Errorf("attempted to find the obtain cost of a vehicle part's base item: %w", ErrNotDetachable)
	}
	mv := ch.ItemHandlingCost(it, splitQty(it, qty), true, VehicleHandlingPenalty)
	mv += MovesPerTile * geom.RLDist(ch.Pos(), l.veh.PartPos(l.part))
	return mv, nil
}

func (l *vehicleLocation) CheckForCorruption(it *Item) bool {
	if l.variant == VariantVehicleBase {
		return l.veh.IsBaseItem(l.part, it)
	}
	return l.veh.HasCargo(l.part, it)
}

func (l *vehicleLocation) detach(it *Item) (Detached, error) {
	if l.variant == VariantVehicleBase {
		return Detached{}, oops.Code(CodeNotDetachable).
			With("part", l.part).
			Errorf("attempted to detach a vehicle base part: %w", ErrNotDetachable)
	}
	d, err := l.veh.RemoveCargo(l.part, it)
	l.veh.InvalidateMass()
	return d, err
}

func (l *vehicleLocation) attach(d Detached) (Detached, error) {
	if l.variant == VariantVehicleBase {
		return d, oops.Code(CodeNotDetachable).
			With("part", l.part).
			Errorf("tried to attach to a vehicle base location: %w", ErrNotDetachable)
	}
	rest, err := l.veh.AddCargo(l.part, d)
	l.veh.InvalidateMass()
	return rest, err
}
