// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/geom"
)

// characterLocation covers the carried, worn, wielded and NPC mission
// locations of a character.
type characterLocation struct {
	holder  CharacterHolder
	variant Variant
}

// NewCharacterLocation returns the carried-inventory location of h.
func NewCharacterLocation(h CharacterHolder) Location {
	return &characterLocation{holder: h, variant: VariantCharacterInventory}
}

// NewWornLocation returns the worn location of h.
func NewWornLocation(h CharacterHolder) Location {
	return &characterLocation{holder: h, variant: VariantWorn}
}

// NewWieldLocation returns the wielded location of h.
func NewWieldLocation(h CharacterHolder) Location {
	return &characterLocation{holder: h, variant: VariantWielded}
}

// NewMissionLocation returns the companion mission inventory of an NPC.
func NewMissionLocation(h MissionHolder) Location {
	return &characterLocation{holder: h, variant: VariantNPCMission}
}

func (l *characterLocation) Variant() Variant { return l.variant }

func (l *characterLocation) Where() Where { return WhereCharacter }

func (l *characterLocation) IsLoaded(*Item) bool { return l.holder.IsLoaded() }

func (l *characterLocation) Position(*Item) (geom.Tripoint, error) {
	return l.holder.Pos(), nil
}

func (l *characterLocation) isHolder(v Viewer) bool {
	if v == nil {
		return false
	}
	h, ok := v.(CharacterHolder)
	return ok && h == l.holder
}

func (l *characterLocation) Describe(viewer Viewer, it *Item) string {
	if !l.isHolder(viewer) {
		return l.holder.Name()
	}
	switch l.variant {
	case VariantWielded:
		return "wield"
	case VariantWorn:
		return "worn"
	default:
		parents := l.holder.Parents(it)
		if len(parents) > 0 && l.holder.Wears(parents[len(parents)-1]) {
			return parents[len(parents)-1].TypeName()
		}
		if l.holder.Wears(it) {
			return "worn"
		}
		return "inventory"
	}
}

func (l *characterLocation) ObtainCost(ch Handler, qty int, it *Item) (int, error) {
	n := splitQty(it, qty)
	switch l.variant {
	case VariantWielded:
		return ch.ItemHandlingCost(it, n, false, 0), nil
	case VariantWorn:
		return ch.ItemHandlingCost(it, n, false, InventoryHandlingPenalty/2), nil
	default:
		return ch.ItemHandlingCost(it, n, true, InventoryHandlingPenalty), nil
	}
}

func (l *characterLocation) CheckForCorruption(it *Item) bool {
	switch l.variant {
	case VariantWielded:
		return l.holder.Wields(it)
	case VariantWorn:
		return l.holder.Wears(it)
	case VariantNPCMission:
		return l.holder.(MissionHolder).HasMissionItem(it)
	default:
		return l.holder.Carries(it)
	}
}

func (l *characterLocation) detach(it *Item) (Detached, error) {
	switch l.variant {
	case VariantWielded:
		return l.holder.RemoveWielded(it)
	case VariantWorn:
		return l.holder.RemoveWorn(it)
	case VariantNPCMission:
		return l.holder.(MissionHolder).RemoveMissionItem(it)
	default:
		return l.holder.RemoveCarried(it)
	}
}

func (l *characterLocation) attach(d Detached) (Detached, error) {
	switch l.variant {
	case VariantWielded:
		return l.holder.SetWielded(d)
	case VariantWorn:
		return l.holder.AddWorn(d)
	case VariantNPCMission:
		return l.holder.(MissionHolder).AddMissionItem(d)
	default:
		return l.holder.AddCarried(d)
	}
}

// NotHeld builds the error holders return when asked to release an item
// they do not hold.
func NotHeld(loc string, it *Item) error {
	return oops.Code(CodeNotHeld).
		With("location", loc).
		With("item_id", it.IDString()).
		With("item_type", it.TypeID()).
		Wrap(ErrNotHeld)
}
