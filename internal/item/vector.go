// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"slices"

	"github.com/samber/oops"
)

// Vector is an ordered owning collection bound to one location, such as a
// map tile, a vehicle part's cargo space or an item's contents.
type Vector struct {
	loc   Location
	items []*Item
}

// NewVector creates an empty vector whose items live at loc.
func NewVector(loc Location) *Vector {
	return &Vector{loc: loc}
}

// Location returns the location items are bound to.
func (v *Vector) Location() Location { return v.loc }

// Len returns the number of items.
func (v *Vector) Len() int { return len(v.items) }

// Empty reports whether the vector holds nothing.
func (v *Vector) Empty() bool { return len(v.items) == 0 }

// At returns the i-th item.
func (v *Vector) At(i int) *Item { return v.items[i] }

// Items returns a snapshot of the held items. Mutating the vector does not
// affect a snapshot already taken.
func (v *Vector) Items() []*Item { return slices.Clone(v.items) }

// Occupants is Items, so a Vector can be passed to Arena.Audit.
func (v *Vector) Occupants() []*Item { return v.Items() }

// Index returns the position of it, or -1.
func (v *Vector) Index(it *Item) int {
	return slices.Index(v.items, it)
}

// Contains reports whether it is held.
func (v *Vector) Contains(it *Item) bool { return v.Index(it) >= 0 }

// PushBack appends d.
func (v *Vector) PushBack(d Detached) {
	it, already := Adopt(v.loc, d)
	if it == nil || already {
		return
	}
	v.items = append(v.items, it)
}

// Insert places d at position i. i is clamped to the valid range.
func (v *Vector) Insert(i int, d Detached) {
	it, already := Adopt(v.loc, d)
	if it == nil || already {
		return
	}
	i = min(max(i, 0), len(v.items))
	v.items = slices.Insert(v.items, i, it)
}

// Erase removes the item at position i and returns it.
func (v *Vector) Erase(i int) (Detached, error) {
	if i < 0 || i >= len(v.items) {
		return Detached{}, oops.Code(CodeNotHeld).
			With("location", v.loc.Variant().String()).
			With("index", i).
			With("len", len(v.items)).
			Wrap(ErrNotHeld)
	}
	it := v.items[i]
	v.items = slices.Delete(v.items, i, i+1)
	return Orphan(it), nil
}

// Remove removes it and returns it.
func (v *Vector) Remove(it *Item) (Detached, error) {
	i := v.Index(it)
	if i < 0 {
		return Detached{}, NotHeld(v.loc.Variant().String(), it)
	}
	return v.Erase(i)
}

// RemoveWith offers every item to fn as a detached handle. Whatever fn
// returns is put back in its original order; anything fn keeps or destroys
// is gone. The vector is already emptied while fn runs.
func (v *Vector) RemoveWith(fn func(Detached) Detached) {
	old := v.items
	v.items = nil
	for _, it := range old {
		d := Orphan(it)
		if d.IsEmpty() {
			continue
		}
		v.PushBack(fn(d))
	}
}

// Clear removes everything and returns the handles.
func (v *Vector) Clear() []Detached {
	old := v.items
	v.items = nil
	res := make([]Detached, 0, len(old))
	for _, it := range old {
		if d := Orphan(it); !d.IsEmpty() {
			res = append(res, d)
		}
	}
	return res
}

// Destroy destroys every item in place.
func (v *Vector) Destroy() {
	old := v.items
	v.items = nil
	for _, it := range old {
		DestroyInPlace(it)
	}
}
