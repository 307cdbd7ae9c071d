// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/geom"
)

// monsterLocation covers a monster's general inventory, its corpse
// components and the five single-item slots.
type monsterLocation struct {
	on      MonsterHolder
	variant Variant
	slot    MonsterSlot
}

// NewMonsterLocation returns the general inventory location of m.
func NewMonsterLocation(m MonsterHolder) Location {
	return &monsterLocation{on: m, variant: VariantMonster}
}

// NewMonsterComponentLocation returns the corpse component location of m.
func NewMonsterComponentLocation(m MonsterHolder) Location {
	return &monsterLocation{on: m, variant: VariantMonsterComponent}
}

// NewMonsterSlotLocation returns the location of one single-item slot of m.
func NewMonsterSlotLocation(m MonsterHolder, slot MonsterSlot) Location {
	return &monsterLocation{on: m, variant: slot.variant(), slot: slot}
}

func (l *monsterLocation) Variant() Variant { return l.variant }

func (l *monsterLocation) Where() Where { return WhereMonster }

func (l *monsterLocation) IsLoaded(*Item) bool { return l.on.IsLoaded() }

func (l *monsterLocation) Position(*Item) (geom.Tripoint, error) {
	return l.on.Pos(), nil
}

func (l *monsterLocation) Describe(Viewer, *Item) string {
	return "on monster"
}

func (l *monsterLocation) ObtainCost(Handler, int, *Item) (int, error) {
	return 0, oops.Code(CodeNotDetachable).
		With("monster", l.on.Name()).
		Errorf("tried to find the obtain cost of an item on a monster: %w", ErrNotDetachable)
}

func (l *monsterLocation) CheckForCorruption(it *Item) bool {
	switch l.variant {
	case VariantMonster:
		return l.on.HasItem(it)
	case VariantMonsterComponent:
		return l.on.HasCorpseComponent(it)
	default:
		return l.on.SlotItem(l.slot) == it
	}
}

func (l *monsterLocation) detach(it *Item) (Detached, error) {
	switch l.variant {
	case VariantMonster:
		return l.on.RemoveItem(it)
	case VariantMonsterComponent:
		return l.on.RemoveCorpseComponent(it)
	default:
		if l.on.SlotItem(l.slot) != it {
			return Detached{}, NotHeld(l.variant.String(), it)
		}
		return l.on.RemoveSlotItem(l.slot), nil
	}
}

func (l *monsterLocation) attach(d Detached) (Detached, error) {
	switch l.variant {
	case VariantMonster:
		return l.on.AddItem(d)
	case VariantMonsterComponent:
		return l.on.AddCorpseComponent(d)
	default:
		return l.on.SetSlotItem(l.slot, d)
	}
}
