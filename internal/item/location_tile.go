// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/geom"
)

// tileLocation is a map tile addressed by absolute position, so it stays
// valid while the reality bubble shifts around it.
type tileLocation struct {
	m       MapHolder
	abs     geom.Tripoint
	variant Variant
}

// NewTileLocation returns the location of the items lying on the tile at abs.
func NewTileLocation(m MapHolder, abs geom.Tripoint) Location {
	return &tileLocation{m: m, abs: abs, variant: VariantTile}
}

// NewPartialConstructionLocation returns the location of the components
// sunk into an unfinished construction at abs. Items there cannot be moved.
func NewPartialConstructionLocation(m MapHolder, abs geom.Tripoint) Location {
	return &tileLocation{m: m, abs: abs, variant: VariantPartialConstruction}
}

// Abs returns the absolute coordinate of a tile location, or false for any
// other variant.
func Abs(loc Location) (geom.Tripoint, bool) {
	if t, ok := loc.(*tileLocation); ok {
		return t.abs, true
	}
	return geom.Tripoint{}, false
}

func (l *tileLocation) Variant() Variant { return l.variant }

func (l *tileLocation) Where() Where { return WhereMap }

func (l *tileLocation) IsLoaded(*Item) bool {
	return l.m.InBounds(l.m.GetLocal(l.abs))
}

func (l *tileLocation) Position(*Item) (geom.Tripoint, error) {
	return l.m.GetLocal(l.abs), nil
}

func (l *tileLocation) Describe(viewer Viewer, _ *Item) string {
	local := l.m.GetLocal(l.abs)
	res := l.m.TileName(local)
	if viewer != nil {
		if dir := geom.DirectionSuffix(viewer.Pos(), local); dir != "" {
			res += " " + dir
		}
	}
	return res
}

func (l *tileLocation) ObtainCost(ch Handler, qty int, it *Item) (int, error) {
	mv := ch.ItemHandlingCost(it, splitQty(it, qty), true, MapHandlingPenalty)
	mv += MovesPerTile * geom.RLDist(ch.Pos(), l.m.GetLocal(l.abs))
	return mv, nil
}

func (l *tileLocation) CheckForCorruption(it *Item) bool {
	if l.variant == VariantPartialConstruction {
		return l.m.HasConstructionItem(l.abs, it)
	}
	return l.m.HasItemAt(l.abs, it)
}

func (l *tileLocation) detach(it *Item) (Detached, error) {
	if l.variant == VariantPartialConstruction {
		return Detached{}, oops.Code(CodeNotDetachable).
			With("location", l.variant.String()).
			With("abs", l.abs.String()).
			Errorf("tried to detach an item from a partial construction: %w", ErrNotDetachable)
	}
	return l.m.RemoveItemAt(l.abs, it)
}

func (l *tileLocation) attach(d Detached) (Detached, error) {
	if l.variant == VariantPartialConstruction {
		return d, oops.Code(CodeNotDetachable).
			With("location", l.variant.String()).
			With("abs", l.abs.String()).
			Errorf("tried to attach an item to a partial construction: %w", ErrNotDetachable)
	}
	return l.m.AddItemAt(l.abs, d)
}
