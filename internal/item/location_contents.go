// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"github.com/cataclysmbn/bnengine/internal/geom"
)

// contentsLocation is the inside of another item, either its general
// contents or the components it was crafted from.
type contentsLocation struct {
	parent  *Item
	variant Variant
}

func (l *contentsLocation) vector() *Vector {
	if l.variant == VariantComponent {
		return &l.parent.components
	}
	return &l.parent.contents
}

func (l *contentsLocation) Variant() Variant { return l.variant }

func (l *contentsLocation) Where() Where { return WhereContainer }

func (l *contentsLocation) IsLoaded(*Item) bool {
	return l.parent.IsLoaded()
}

func (l *contentsLocation) Position(*Item) (geom.Tripoint, error) {
	return l.parent.Position()
}

func (l *contentsLocation) Describe(Viewer, *Item) string {
	if l.variant == VariantComponent {
		return "part of " + l.parent.TypeName()
	}
	return "inside " + l.parent.TypeName()
}

// ObtainCost draws from a holster or bandolier at its draw cost, scaled by
// what is drawn. Anything else is taken by handling the container, so the
// cost is the container's own and does not depend on qty.
func (l *contentsLocation) ObtainCost(ch Handler, qty int, it *Item) (int, error) {
	if l.variant == VariantContents && l.parent.typ.HolsterDrawCost > 0 {
		return ch.ItemHandlingCost(it, splitQty(it, qty), false, l.parent.typ.HolsterDrawCost), nil
	}
	cost := InventoryHandlingPenalty
	if ploc := l.parent.loc; ploc != nil {
		pc, err := ploc.ObtainCost(ch, 1, l.parent)
		if err != nil {
			return cost, err
		}
		cost += pc
	}
	return cost, nil
}

func (l *contentsLocation) CheckForCorruption(it *Item) bool {
	return l.vector().Index(it) >= 0
}

func (l *contentsLocation) detach(it *Item) (Detached, error) {
	return l.vector().Remove(it)
}

func (l *contentsLocation) attach(d Detached) (Detached, error) {
	l.vector().PushBack(d)
	return Detached{}, nil
}
