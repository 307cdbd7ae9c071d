// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"errors"

	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/geom"
)

func (it *Item) report(msg string, err error) error {
	if it == nil || it.arena == nil {
		return defaultReporter.Report(msg, err)
	}
	return it.arena.reporter.Report(msg, err)
}

func (it *Item) destroyedErr(op string) error {
	return oops.Code(CodeDestroyed).
		With("op", op).
		With("item_id", it.IDString()).
		With("item_type", it.TypeID()).
		Wrap(ErrDestroyed)
}

func (it *Item) notLocatedErr(op string) error {
	return oops.Code(CodeNotLocated).
		With("op", op).
		With("item_id", it.IDString()).
		With("item_type", it.TypeID()).
		Wrap(ErrNotLocated)
}

// Attach places d at loc. If loc rejects the item it is handed back.
func Attach(loc Location, d Detached) (Detached, error) {
	if d.IsEmpty() {
		return d, nil
	}
	return loc.attach(d)
}

// Detach removes it from its location and returns the owning handle.
func (it *Item) Detach() (Detached, error) {
	if it.destroyed {
		return Detached{}, it.report("detach", it.destroyedErr("detach"))
	}
	if it.savedLoc != nil {
		return Detached{}, it.report("detach", oops.Code(CodeAlreadyDetaching).
			With("item_id", it.IDString()).
			With("location", it.savedLoc.Variant().String()).
			Wrap(ErrAlreadyDetaching))
	}
	if it.loc == nil {
		return Detached{}, it.report("detach", it.notLocatedErr("detach"))
	}
	d, err := it.loc.detach(it)
	if err != nil {
		return Detached{}, it.report("detach", err)
	}
	return d, nil
}

// AttemptDetach hands it to fn as a detached handle without disturbing its
// place in the holder. What fn returns decides the outcome:
//
//   - it itself: it goes back exactly where it was.
//   - another item: that item takes its place, and it is considered gone.
//   - nothing: fn consumed it by destroying it, attaching it elsewhere or
//     keeping the handle.
func (it *Item) AttemptDetach(fn func(Detached) Detached) error {
	if it.destroyed {
		return it.report("attempt detach", it.destroyedErr("attempt_detach"))
	}
	if it.savedLoc != nil {
		return it.report("attempt detach", oops.Code(CodeAlreadyDetaching).
			With("item_id", it.IDString()).
			Wrap(ErrAlreadyDetaching))
	}
	if it.loc == nil {
		return it.report("attempt detach", it.notLocatedErr("attempt_detach"))
	}
	old := it.loc
	it.origin, it.hasOrigin = old.Variant(), true
	it.loc = nil
	it.savedLoc = old
	ret := fn(newDetached(it))

	switch {
	case ret.IsEmpty():
		it.resolveSavedLoc()
		return nil
	case !ret.Is(it):
		it.resolveSavedLoc()
		return it.reattach(old, ret)
	case it.savedLoc == old:
		ret.release()
		it.loc = old
		it.savedLoc = nil
		return nil
	default:
		return it.reattach(old, ret)
	}
}

func (it *Item) reattach(loc Location, d Detached) error {
	rest, err := loc.attach(d)
	rest.Destroy()
	if err != nil {
		return it.report("reattach after attempt detach", err)
	}
	return nil
}

// resolveSavedLoc finishes an interrupted AttemptDetach by removing it from
// the holder it was pulled out of.
func (it *Item) resolveSavedLoc() {
	old := it.savedLoc
	if old == nil {
		return
	}
	it.savedLoc = nil
	h := it.handle
	d, err := old.detach(it)
	if err != nil {
		_ = it.report("resolve saved location", err)
	}
	// The caller's handle keeps ownership.
	if !d.IsEmpty() {
		d.h.it = nil
	}
	it.handle = h
}

// IsLoaded reports whether it is part of the active simulation.
func (it *Item) IsLoaded() bool {
	switch {
	case it.loc != nil:
		return it.loc.IsLoaded(it)
	case it.savedLoc != nil:
		return it.savedLoc.IsLoaded(it)
	default:
		return false
	}
}

// HasPosition reports whether Position can succeed.
func (it *Item) HasPosition() bool {
	loc := it.loc
	if loc == nil {
		loc = it.savedLoc
	}
	return loc != nil && loc.Variant() != VariantTemplate
}

// Position returns the bubble-local coordinate of it.
func (it *Item) Position() (geom.Tripoint, error) {
	loc := it.loc
	if loc == nil {
		loc = it.savedLoc
	}
	if loc == nil {
		return geom.Zero, it.report("position", it.notLocatedErr("position"))
	}
	p, err := loc.Position(it)
	if err != nil {
		return p, it.report("position", err)
	}
	return p, nil
}

// Describe names the location of it for viewer, which may be nil.
func (it *Item) Describe(viewer Viewer) string {
	if it.loc == nil {
		return "detached"
	}
	return it.loc.Describe(viewer, it)
}

// ObtainCost is the move cost for ch to take qty units of it.
func (it *Item) ObtainCost(ch Handler, qty int) (int, error) {
	if it.loc == nil {
		return 0, it.report("obtain cost", it.notLocatedErr("obtain_cost"))
	}
	n, err := it.loc.ObtainCost(ch, qty, it)
	if err != nil {
		return n, it.report("obtain cost", err)
	}
	return n, nil
}

// CheckLocation reports whether the current location really holds it.
func (it *Item) CheckLocation() bool {
	return it.loc == nil || it.loc.CheckForCorruption(it)
}

// Destroy removes it from wherever it is and destroys it together with its
// contents and components. Destroying twice is reported and ignored. An item
// whose location never gives it up, a vehicle base or a construction
// component, is reported as NOT_DETACHABLE and left in place; those go
// through their holder's own removal path.
func (it *Item) Destroy() {
	if it.IsNull() {
		return
	}
	if it.destroyed {
		_ = it.report("destroy", it.destroyedErr("destroy"))
		return
	}
	if it.loc != nil && it.loc.Variant() != VariantTemplate {
		d, err := it.loc.detach(it)
		if errors.Is(err, ErrNotDetachable) {
			_ = it.report("destroy", err)
			return
		}
		if err != nil {
			_ = it.report("destroy", err)
		}
		d.release()
	}
	it.resolveSavedLoc()
	if it.handle != nil {
		it.handle.it = nil
		it.handle = nil
	}
	it.loc = nil
	it.onDestroy()
}

func (it *Item) onDestroy() {
	it.destroyed = true
	it.contents.Destroy()
	it.components.Destroy()
	it.arena.forget(it)
}
