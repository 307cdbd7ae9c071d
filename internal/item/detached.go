// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

type handle struct {
	it    *Item
	arena *Arena
}

// Detached exclusively owns an item that no location claims. The zero value
// is empty.
//
// Copies of a Detached share one underlying handle, so moving the item into
// a location empties every copy. An item that is still detached when its
// arena is swept is destroyed and reported as a leak.
type Detached struct {
	h *handle
}

func newDetached(it *Item) Detached {
	h := &handle{it: it, arena: it.arena}
	it.handle = h
	return Detached{h: h}
}

func (d Detached) peek() *Item {
	if d.h == nil {
		return nil
	}
	return d.h.it
}

func (d Detached) release() *Item {
	it := d.peek()
	if it != nil {
		d.h.it = nil
		it.handle = nil
	}
	return it
}

// IsEmpty reports whether the handle holds nothing.
func (d Detached) IsEmpty() bool { return d.peek() == nil }

// Is reports whether the handle holds it.
func (d Detached) Is(it *Item) bool {
	p := d.peek()
	return p != nil && p == it
}

// reporter is the debug channel of the arena the handle's item came from.
// A zero handle has no arena and uses the package default.
func (d Detached) reporter() *errutil.Reporter {
	if d.h == nil || d.h.arena == nil {
		return defaultReporter
	}
	return d.h.arena.reporter
}

// Get returns the held item. On an empty handle it reports and returns the
// null item and an EMPTY_HANDLE error.
func (d Detached) Get() (*Item, error) {
	if it := d.peek(); it != nil {
		return it, nil
	}
	return Null(), d.reporter().Report("dereference", oops.Code(CodeEmptyHandle).
		With("handle", "detached").
		Wrap(ErrEmptyHandle))
}

// Item returns the held item. An empty handle is reported as EMPTY_HANDLE
// and reads as the null item.
func (d Detached) Item() *Item {
	it, _ := d.Get()
	return it
}

// Take moves the item into a new handle and leaves d empty.
func (d Detached) Take() Detached {
	it := d.release()
	if it == nil {
		return Detached{}
	}
	return newDetached(it)
}

// Destroy destroys the held item, if any, and empties the handle.
func (d Detached) Destroy() {
	if it := d.release(); it != nil {
		it.Destroy()
	}
}

// Adopt completes an attach on behalf of a container that keeps its own
// storage. It empties d, binds the item to loc and returns it. When already
// is true the item was on its way back to loc after AttemptDetach and is
// still in the container's storage, so it must not be stored again.
func Adopt(loc Location, d Detached) (it *Item, already bool) {
	it = d.release()
	if it == nil {
		return nil, false
	}
	if it.savedLoc != nil && it.savedLoc == loc {
		it.loc = loc
		it.savedLoc = nil
		return it, true
	}
	it.resolveSavedLoc()
	recordTransfer(it.origin, loc.Variant(), it.hasOrigin)
	it.loc = loc
	it.arena.attached(it, loc)
	return it, false
}

// Orphan completes a detach on behalf of a container that keeps its own
// storage: the container has already dropped it and the returned handle now
// owns it. An item that is in the middle of AttemptDetach is already owned
// by the callback, so an empty handle is returned for it.
func Orphan(it *Item) Detached {
	if it.loc != nil {
		it.origin = it.loc.Variant()
		it.hasOrigin = true
		it.loc = nil
	}
	if it.savedLoc != nil {
		it.savedLoc = nil
		return Detached{}
	}
	return newDetached(it)
}

// DestroyInPlace destroys an item straight out of a container's storage,
// for holders that are going away together with their contents.
func DestroyInPlace(it *Item) {
	it.loc = nil
	if it.savedLoc != nil {
		it.savedLoc = nil
		return
	}
	if !it.destroyed {
		it.onDestroy()
	}
}
