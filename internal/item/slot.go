// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"github.com/samber/oops"
)

// Slot is a long-lived owning handle bound to one location, such as a
// wielded weapon or a vehicle part's base item.
//
// A Slot created with errorIfNull must always hold something: reading it
// while empty is reported as EMPTY_HANDLE on the arena of its last occupant.
// Either way, an empty slot reads as the null item.
type Slot struct {
	loc         Location
	it          *Item
	arena       *Arena
	errorIfNull bool
}

// NewSlot creates an empty slot whose occupant lives at loc.
func NewSlot(loc Location, errorIfNull bool) *Slot {
	return &Slot{loc: loc, errorIfNull: errorIfNull}
}

// Location returns the location occupants are bound to.
func (s *Slot) Location() Location { return s.loc }

// IsEmpty reports whether the slot holds nothing.
func (s *Slot) IsEmpty() bool { return s.it == nil }

// Is reports whether the slot holds it.
func (s *Slot) Is(it *Item) bool { return s.it != nil && s.it == it }

// Occupants returns the occupant as a one-element list, or nil when empty.
func (s *Slot) Occupants() []*Item {
	if s.it == nil {
		return nil
	}
	return []*Item{s.it}
}

// Get returns the occupant, or the null item when empty.
func (s *Slot) Get() (*Item, error) {
	if s.it != nil {
		return s.it, nil
	}
	if !s.errorIfNull {
		return Null(), nil
	}
	r := defaultReporter
	if s.arena != nil {
		r = s.arena.reporter
	}
	return Null(), r.Report("dereference", oops.Code(CodeEmptyHandle).
		With("handle", "slot").
		With("location", s.loc.Variant().String()).
		Wrap(ErrEmptyHandle))
}

// Item returns the occupant, or the null item when empty.
func (s *Slot) Item() *Item {
	it, _ := s.Get()
	return it
}

// Set makes d the occupant. The previous occupant, if any, is destroyed.
// Setting an empty handle destroys the occupant and leaves the slot empty.
func (s *Slot) Set(d Detached) {
	in := d.peek()
	if in == nil {
		s.Destroy()
		return
	}
	if in == s.it && in.savedLoc == s.loc {
		Adopt(s.loc, d)
		return
	}
	if s.it != nil {
		s.Destroy()
	}
	s.arena = in.arena
	s.it, _ = Adopt(s.loc, d)
}

// MoveFrom transfers the occupant of o into s, leaving o empty.
func (s *Slot) MoveFrom(o *Slot) {
	if o == s {
		return
	}
	s.Set(o.Release())
}

// Swap makes d the occupant and returns the previous occupant.
func (s *Slot) Swap(d Detached) Detached {
	old := s.Release()
	s.Set(d)
	return old
}

// Release detaches the occupant and returns it.
func (s *Slot) Release() Detached {
	if s.it == nil {
		return Detached{}
	}
	it := s.it
	s.it = nil
	return Orphan(it)
}

// Remove releases it if it is the occupant.
func (s *Slot) Remove(it *Item) (Detached, error) {
	if !s.Is(it) {
		return Detached{}, NotHeld(s.loc.Variant().String(), it)
	}
	return s.Release(), nil
}

// Put makes d the occupant only if the slot is empty. An occupied slot
// rejects d and hands it back unchanged together with a SLOT_OCCUPIED error.
func (s *Slot) Put(d Detached) (Detached, error) {
	in := d.peek()
	if in == nil {
		return d, nil
	}
	if s.it != nil && !(in == s.it && in.savedLoc == s.loc) {
		return d, oops.Code(CodeSlotOccupied).
			With("location", s.loc.Variant().String()).
			With("occupant_id", s.it.IDString()).
			With("item_id", in.IDString()).
			Wrap(ErrSlotOccupied)
	}
	s.Set(d)
	return Detached{}, nil
}

// Destroy destroys the occupant, if any.
func (s *Slot) Destroy() {
	s.Release().Destroy()
}
