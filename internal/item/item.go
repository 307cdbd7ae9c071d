// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package item implements item instances and the ownership model that keeps
// every item in exactly one place: a Location, or a Detached handle while in
// transit between locations.
package item

import (
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
)

// Item is one item instance. Items are created by an Arena and are always
// either held by a location or owned by a Detached handle.
type Item struct {
	id    ulid.ULID
	arena *Arena
	typ   *Type

	Charges     int
	Damage      int
	Active      bool
	Rot         time.Duration
	Invlet      rune
	Favorite    bool
	ItemCounter int
	Birthday    time.Time

	flags  []string
	faults []string
	vars   map[string]string

	contents   Vector
	components Vector

	loc       Location
	savedLoc  Location
	handle    *handle
	origin    Variant
	hasOrigin bool
	destroyed bool
}

var nullItem = &Item{typ: NullType}

// Null returns the shared null item, read in place of a missing item.
func Null() *Item { return nullItem }

func newItem(a *Arena, id ulid.ULID, t *Type) *Item {
	it := &Item{id: id, arena: a, typ: t}
	it.contents.loc = &contentsLocation{parent: it, variant: VariantContents}
	it.components.loc = &contentsLocation{parent: it, variant: VariantComponent}
	return it
}

// ID returns the instance id.
func (it *Item) ID() ulid.ULID { return it.id }

// IDString returns the instance id as a string. It is safe on nil.
func (it *Item) IDString() string {
	if it == nil {
		return ""
	}
	return it.id.String()
}

// Type returns the item's type.
func (it *Item) Type() *Type { return it.typ }

// TypeID returns the type id. It is safe on nil.
func (it *Item) TypeID() string {
	if it == nil || it.typ == nil {
		return ""
	}
	return it.typ.ID
}

// TypeName returns the type's display name.
func (it *Item) TypeName() string {
	if it == nil || it.typ == nil {
		return ""
	}
	return it.typ.Name
}

// Arena returns the arena that created the item.
func (it *Item) Arena() *Arena { return it.arena }

// IsNull reports whether it is the null item.
func (it *Item) IsNull() bool { return it == nil || it == nullItem }

// IsDestroyed reports whether the item was destroyed.
func (it *Item) IsDestroyed() bool { return it.destroyed }

// CountByCharges reports whether the item is a stack measured in charges.
func (it *Item) CountByCharges() bool { return it.typ.CountByCharges }

// Count returns the number of units the item represents.
func (it *Item) Count() int {
	if it.CountByCharges() {
		return it.Charges
	}
	return 1
}

// VolumeFor returns the volume in ml of qty units of the item, including
// contents for items that are not counted by charges.
func (it *Item) VolumeFor(qty int) int {
	if qty <= 0 {
		return 0
	}
	if it.CountByCharges() {
		ss := it.typ.stackSize()
		return (it.typ.VolumeML*qty + ss - 1) / ss
	}
	vol := it.typ.VolumeML
	for _, c := range it.contents.items {
		vol += c.Volume()
	}
	return vol * qty
}

// Volume returns the volume of the whole item.
func (it *Item) Volume() int { return it.VolumeFor(it.Count()) }

// Weight returns the weight in grams, including contents.
func (it *Item) Weight() int {
	w := it.typ.WeightG * max(it.Count(), 0)
	for _, c := range it.contents.items {
		w += c.Weight()
	}
	return w
}

// Qualities returns the type's tool qualities.
func (it *Item) Qualities() map[string]int { return it.typ.Qualities }

// HasFlag reports whether the instance or its type has flag.
func (it *Item) HasFlag(flag string) bool {
	return it.HasOwnFlag(flag) || it.typ.HasFlag(flag)
}

// HasOwnFlag reports whether the instance itself has flag set.
func (it *Item) HasOwnFlag(flag string) bool {
	_, ok := slices.BinarySearch(it.flags, flag)
	return ok
}

// SetFlag sets an instance flag.
func (it *Item) SetFlag(flag string) {
	if i, ok := slices.BinarySearch(it.flags, flag); !ok {
		it.flags = slices.Insert(it.flags, i, flag)
	}
}

// UnsetFlag clears an instance flag.
func (it *Item) UnsetFlag(flag string) {
	if i, ok := slices.BinarySearch(it.flags, flag); ok {
		it.flags = slices.Delete(it.flags, i, i+1)
	}
}

// Flags returns the sorted instance flags.
func (it *Item) Flags() []string { return slices.Clone(it.flags) }

// HasFault reports whether the item has fault.
func (it *Item) HasFault(fault string) bool {
	_, ok := slices.BinarySearch(it.faults, fault)
	return ok
}

// AddFault adds a fault.
func (it *Item) AddFault(fault string) {
	if i, ok := slices.BinarySearch(it.faults, fault); !ok {
		it.faults = slices.Insert(it.faults, i, fault)
	}
}

// RemoveFault removes a fault.
func (it *Item) RemoveFault(fault string) {
	if i, ok := slices.BinarySearch(it.faults, fault); ok {
		it.faults = slices.Delete(it.faults, i, i+1)
	}
}

// Faults returns the sorted faults.
func (it *Item) Faults() []string { return slices.Clone(it.faults) }

// Var returns the named variable, or def when unset.
func (it *Item) Var(name, def string) string {
	if v, ok := it.vars[name]; ok {
		return v
	}
	return def
}

// VarInt returns the named variable parsed as an integer, or def.
func (it *Item) VarInt(name string, def int) int {
	v, ok := it.vars[name]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// SetVar sets a named variable.
func (it *Item) SetVar(name, value string) {
	if it.vars == nil {
		it.vars = make(map[string]string)
	}
	it.vars[name] = value
}

// SetVarInt sets a named variable to an integer.
func (it *Item) SetVarInt(name string, value int) {
	it.SetVar(name, strconv.Itoa(value))
}

// EraseVar removes a named variable.
func (it *Item) EraseVar(name string) { delete(it.vars, name) }

// Vars returns a copy of the variable bag.
func (it *Item) Vars() map[string]string { return maps.Clone(it.vars) }

// Contents returns a snapshot of the items inside it.
func (it *Item) Contents() []*Item { return it.contents.Items() }

// Components returns a snapshot of the items it was made from.
func (it *Item) Components() []*Item { return it.components.Items() }

// IsContainerEmpty reports whether nothing is inside it.
func (it *Item) IsContainerEmpty() bool { return it.contents.Empty() }

// Location returns the current location, or nil while detached.
func (it *Item) Location() Location { return it.loc }

// Where returns the coarse location category.
func (it *Item) Where() Where {
	if it.loc == nil {
		return WhereInvalid
	}
	return it.loc.Where()
}

// IsDetached reports whether no location holds it.
func (it *Item) IsDetached() bool { return it.loc == nil }

// InTransit reports whether it is inside an AttemptDetach callback.
func (it *Item) InTransit() bool { return it.savedLoc != nil }

// ReturningTo reports whether it is inside AttemptDetach and still counts
// as held by loc.
func (it *Item) ReturningTo(loc Location) bool {
	return it.savedLoc != nil && it.savedLoc == loc
}

// Parents returns the items containing it, innermost first.
func (it *Item) Parents() []*Item {
	var res []*Item
	for p, ok := Parent(it.loc); ok; p, ok = Parent(p.loc) {
		res = append(res, p)
	}
	return res
}

// Contains reports whether other is somewhere inside it.
func (it *Item) Contains(other *Item) bool {
	return slices.Contains(other.Parents(), it)
}

// StacksWith reports whether it and other can share one inventory stack.
func (it *Item) StacksWith(other *Item) bool {
	if it.typ != other.typ || it.Damage != other.Damage || it.Active != other.Active {
		return false
	}
	if it.Favorite != other.Favorite {
		return false
	}
	if !slices.Equal(it.flags, other.flags) || !slices.Equal(it.faults, other.faults) {
		return false
	}
	if !maps.Equal(it.vars, other.vars) {
		return false
	}
	if it.typ.Rots() && it.Rot/time.Hour != other.Rot/time.Hour {
		return false
	}
	if !it.CountByCharges() && it.Charges != other.Charges {
		return false
	}
	return stacksAll(it.contents.items, other.contents.items)
}

func stacksAll(a, b []*Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].StacksWith(b[i]) || a[i].Charges != b[i].Charges {
			return false
		}
	}
	return true
}
