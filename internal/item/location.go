// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"github.com/cataclysmbn/bnengine/internal/geom"
)

// Handling penalties used by ObtainCost, in moves.
const (
	InventoryHandlingPenalty = 100
	MapHandlingPenalty       = 80
	VehicleHandlingPenalty   = 80
	// MovesPerTile is added per tile of distance to reach a map or vehicle item.
	MovesPerTile = 100
)

// Location is a place an item can live. The set of implementations is
// closed: the unexported methods keep other packages from adding variants,
// and holders plug in through the *Holder interfaces below.
type Location interface {
	// Variant identifies the concrete location kind.
	Variant() Variant
	// Where reports the coarse category of the location.
	Where() Where
	// IsLoaded reports whether the location is part of the active simulation.
	IsLoaded(it *Item) bool
	// Position returns the coordinate of the location in the reality bubble.
	Position(it *Item) (geom.Tripoint, error)
	// Describe names the location, personalised for viewer when it is not nil.
	Describe(viewer Viewer, it *Item) string
	// ObtainCost is the move cost for ch to pick up qty of it from here.
	ObtainCost(ch Handler, qty int, it *Item) (int, error)
	// CheckForCorruption reports whether the location really holds it.
	CheckForCorruption(it *Item) bool

	// detach removes it from the holder's bookkeeping.
	detach(it *Item) (Detached, error)
	// attach hands d to the holder. On failure the rejected handle is returned.
	attach(d Detached) (Detached, error)
}

// Viewer is whoever looks at a location description.
type Viewer interface {
	Pos() geom.Tripoint
}

// Handler computes the cost of handling an item.
type Handler interface {
	Viewer
	// ItemHandlingCost is the move cost of handling qty units of it with the
	// given extra penalty. It must not decrease as qty grows.
	ItemHandlingCost(it *Item, qty int, effects bool, penalty int) int
}

// CharacterHolder is implemented by characters and NPCs.
type CharacterHolder interface {
	Viewer
	Name() string
	IsLoaded() bool

	Carries(it *Item) bool
	RemoveCarried(it *Item) (Detached, error)
	AddCarried(d Detached) (Detached, error)

	Wears(it *Item) bool
	RemoveWorn(it *Item) (Detached, error)
	AddWorn(d Detached) (Detached, error)

	Wields(it *Item) bool
	RemoveWielded(it *Item) (Detached, error)
	SetWielded(d Detached) (Detached, error)

	// Parents returns the chain of containers holding it, innermost first.
	Parents(it *Item) []*Item
}

// MissionHolder is an NPC that keeps a separate companion mission inventory.
type MissionHolder interface {
	CharacterHolder
	HasMissionItem(it *Item) bool
	RemoveMissionItem(it *Item) (Detached, error)
	AddMissionItem(d Detached) (Detached, error)
}

// Bounds is the reality bubble as seen by locations.
type Bounds interface {
	// InBounds reports whether a bubble-local coordinate is loaded.
	InBounds(local geom.Tripoint) bool
}

// MapHolder is the map seen through absolute coordinates.
type MapHolder interface {
	Bounds
	GetLocal(abs geom.Tripoint) geom.Tripoint
	TileName(local geom.Tripoint) string
	HasItemAt(abs geom.Tripoint, it *Item) bool
	RemoveItemAt(abs geom.Tripoint, it *Item) (Detached, error)
	AddItemAt(abs geom.Tripoint, d Detached) (Detached, error)
	HasConstructionItem(abs geom.Tripoint, it *Item) bool
}

// VehicleHolder exposes the part-level storage of a vehicle.
type VehicleHolder interface {
	IsLoaded() bool
	Bounds() Bounds
	// PartPos is the bubble-local coordinate of part.
	PartPos(part int) geom.Tripoint
	PartName(part int) string
	PartLabel(part int) string
	PartHasCargo(part int) bool
	HasCargo(part int, it *Item) bool
	RemoveCargo(part int, it *Item) (Detached, error)
	AddCargo(part int, d Detached) (Detached, error)
	IsBaseItem(part int, it *Item) bool
	InvalidateMass()
}

// MonsterHolder exposes a monster's inventory and single slots.
type MonsterHolder interface {
	Viewer
	Name() string
	IsLoaded() bool
	HasItem(it *Item) bool
	RemoveItem(it *Item) (Detached, error)
	AddItem(d Detached) (Detached, error)
	HasCorpseComponent(it *Item) bool
	RemoveCorpseComponent(it *Item) (Detached, error)
	AddCorpseComponent(d Detached) (Detached, error)
	SlotItem(slot MonsterSlot) *Item
	RemoveSlotItem(slot MonsterSlot) Detached
	SetSlotItem(slot MonsterSlot, d Detached) (Detached, error)
}

// Parent returns the item whose contents or components hold it.
func Parent(loc Location) (*Item, bool) {
	if loc == nil {
		return nil, false
	}
	switch loc.Variant() {
	case VariantContents, VariantComponent:
		return loc.(*contentsLocation).parent, true
	default:
		return nil, false
	}
}

// HandlingCost is the default item handling cost model: a flat penalty plus
// ten moves per started 250 ml of the handled quantity.
func HandlingCost(it *Item, qty int, penalty int) int {
	vol := it.VolumeFor(qty)
	units := (vol + 249) / 250
	return max(0, penalty) + 10*max(1, units)
}

// splitQty clamps a requested handling quantity to what the item has.
func splitQty(it *Item, qty int) int {
	if !it.CountByCharges() || qty <= 0 || qty >= it.Charges {
		return it.Count()
	}
	return qty
}
