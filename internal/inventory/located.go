// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package inventory

import (
	"math/rand/v2"

	"github.com/cataclysmbn/bnengine/internal/item"
)

// Located is an inventory that owns its items. Every item in it is bound to
// one location, normally a character's carried inventory, and leaves only
// as a Detached handle.
//
// The location must route detach back to this inventory: a character's
// RemoveCarried calls RemoveItem.
type Located struct {
	inv *Inventory
	loc item.Location
}

// NewLocated creates an empty inventory whose items live at loc.
func NewLocated(loc item.Location, opts ...Option) *Located {
	l := &Located{inv: New(opts...), loc: loc}
	l.inv.absorb = l.absorb
	return l
}

// Location returns the location items are bound to.
func (l *Located) Location() item.Location { return l.loc }

// absorb folds a charge-counted item into head while restacking.
func (l *Located) absorb(head, it *item.Item) bool {
	if !head.CountByCharges() || it.InTransit() {
		return false
	}
	ok, rest := head.MergeCharges(item.Orphan(it), false)
	if !ok {
		item.Adopt(l.loc, rest)
	}
	return ok
}

// take binds d to the location. When the item merges into an existing
// stack, or was already here, done is true and it needs no indexing.
func (l *Located) take(d item.Detached, merge bool) (it *item.Item, done bool) {
	if d.IsEmpty() {
		return item.Null(), true
	}
	src := d.Item()
	if merge && src.CountByCharges() && !src.ReturningTo(l.loc) {
		for _, s := range l.inv.stacks {
			if !s[0].StacksWith(src) {
				continue
			}
			if ok, _ := s[0].MergeCharges(d, false); ok {
				l.inv.invalidate()
				return s[0], true
			}
		}
	}
	return item.Adopt(l.loc, d)
}

// AddItem takes ownership of d. Charge-counted items merge into a matching
// stack when shouldStack is set. The returned item is the one now holding
// the charges.
func (l *Located) AddItem(d item.Detached, keepInvlet, assignInvlet, shouldStack bool) *item.Item {
	it, done := l.take(d, shouldStack)
	if done {
		return it
	}
	return l.inv.AddItem(it, keepInvlet, assignInvlet, shouldStack)
}

// AddItemByTypeCache is AddItem through the type cache.
func (l *Located) AddItemByTypeCache(d item.Detached, keepInvlet, assignInvlet, shouldStack bool) *item.Item {
	it, done := l.take(d, shouldStack)
	if done {
		return it
	}
	return l.inv.AddItemByTypeCache(it, keepInvlet, assignInvlet, shouldStack)
}

// AddItemKeepInvlet takes ownership of d without changing its letter.
func (l *Located) AddItemKeepInvlet(d item.Detached) *item.Item {
	it, done := l.take(d, true)
	if done {
		return it
	}
	return l.inv.AddItemKeepInvlet(it)
}

// PushBack takes ownership of d without merging charges.
func (l *Located) PushBack(d item.Detached) *item.Item {
	it, done := l.take(d, false)
	if done {
		return it
	}
	return l.inv.PushBack(it)
}

// PushBackAll pushes every handle in ds.
func (l *Located) PushBackAll(ds []item.Detached) {
	for _, d := range ds {
		l.PushBack(d)
	}
}

// RemoveItem gives up it.
func (l *Located) RemoveItem(it *item.Item) (item.Detached, error) {
	got, err := l.inv.RemoveItem(it)
	if err != nil {
		return item.Detached{}, err
	}
	return item.Orphan(got), nil
}

// RemoveItemAt gives up the first item of the stack at pos.
func (l *Located) RemoveItemAt(pos int) (item.Detached, error) {
	got, err := l.inv.RemoveItemAt(pos)
	if err != nil {
		return item.Detached{}, err
	}
	return item.Orphan(got), nil
}

func orphanAll(items []*item.Item) []item.Detached {
	res := make([]item.Detached, 0, len(items))
	for _, it := range items {
		if d := item.Orphan(it); !d.IsEmpty() {
			res = append(res, d)
		}
	}
	return res
}

// ReduceStack gives up qty items from the stack at pos, or the whole stack
// when qty is negative or covers it.
func (l *Located) ReduceStack(pos, qty int) ([]item.Detached, error) {
	items, err := l.inv.ReduceStack(pos, qty)
	return orphanAll(items), err
}

// RemoveWith offers every item to fn in turn. Returning the handle keeps
// the item where it was; anything fn keeps or destroys leaves.
func (l *Located) RemoveWith(fn func(item.Detached) item.Detached) {
	for _, it := range l.inv.Dump() {
		_ = it.AttemptDetach(fn)
	}
}

// UseAmount takes qty units of typeID, splitting a charge-counted stack
// when it holds more than needed. filter may be nil.
func (l *Located) UseAmount(typeID string, qty int, filter func(*item.Item) bool) []item.Detached {
	l.inv.sortStacks()
	var res []item.Detached
	for _, it := range l.inv.Dump() {
		if qty <= 0 {
			break
		}
		if it.TypeID() != typeID || (filter != nil && !filter(it)) {
			continue
		}
		if it.CountByCharges() && it.Charges > qty {
			if d, err := it.Split(qty); err == nil {
				res = append(res, d)
			}
			break
		}
		n := it.Count()
		d, err := l.RemoveItem(it)
		if err != nil {
			continue
		}
		qty -= n
		res = append(res, d)
	}
	l.inv.invalidate()
	return res
}

// RemoveRandomlyByVolume drops random items, each chosen with probability
// proportional to its volume, until at least vol millilitres are gone or
// the inventory is empty.
func (l *Located) RemoveRandomlyByVolume(vol int, rng *rand.Rand) []item.Detached {
	var res []item.Detached
	dropped := 0
	for dropped < vol && l.inv.Size() > 0 {
		var chosen *item.Item
		total := 0
		for _, it := range l.inv.Dump() {
			v := it.Volume()
			total += v
			if chosen == nil || (total > 0 && rng.IntN(total) < v) {
				chosen = it
			}
		}
		dropped += chosen.Volume()
		d, err := l.RemoveItem(chosen)
		if err != nil {
			break
		}
		res = append(res, d)
	}
	return res
}

// DumpRemove gives up every item.
func (l *Located) DumpRemove() []item.Detached {
	items := l.inv.Dump()
	l.inv.Clear()
	return orphanAll(items)
}

// Clear destroys every item.
func (l *Located) Clear() {
	for _, d := range l.DumpRemove() {
		d.Destroy()
	}
}

// Destroy destroys every item in place, for owners that are going away.
func (l *Located) Destroy() {
	items := l.inv.Dump()
	l.inv.Clear()
	for _, it := range items {
		item.DestroyInPlace(it)
	}
}

// MoveFrom replaces the contents of l with the contents of other, keeping
// stacks and letters. Items l held before are destroyed. No item of other
// may be inside AttemptDetach.
func (l *Located) MoveFrom(other *Located) {
	if other == l {
		return
	}
	l.Destroy()
	for _, it := range other.inv.Dump() {
		item.Adopt(l.loc, item.Orphan(it))
	}
	l.inv.stacks, other.inv.stacks = other.inv.stacks, nil
	l.inv.invalidate()
	other.inv.invalidate()
}

// Read-only and letter management calls delegate to the index.

func (l *Located) Size() int                            { return l.inv.Size() }
func (l *Located) Stack(pos int) []*item.Item           { return l.inv.Stack(pos) }
func (l *Located) Slice() [][]*item.Item                { return l.inv.Slice() }
func (l *Located) Has(it *item.Item) bool               { return l.inv.Has(it) }
func (l *Located) Dump() []*item.Item                   { return l.inv.Dump() }
func (l *Located) FindItem(pos int) *item.Item          { return l.inv.FindItem(pos) }
func (l *Located) InvletToPosition(r rune) int          { return l.inv.InvletToPosition(r) }
func (l *Located) InvletToItem(r rune) *item.Item       { return l.inv.InvletToItem(r) }
func (l *Located) PositionByItem(it *item.Item) int     { return l.inv.PositionByItem(it) }
func (l *Located) PositionByType(typeID string) int     { return l.inv.PositionByType(typeID) }
func (l *Located) AllocatedInvlets() Invlets            { return l.inv.AllocatedInvlets() }
func (l *Located) BinnedItems() map[string][]*item.Item { return l.inv.BinnedItems() }
func (l *Located) TypeCache() map[string][]int          { return l.inv.TypeCache() }
func (l *Located) BuildTypeCache()                      { l.inv.BuildTypeCache() }
func (l *Located) CountItem(typeID string) int          { return l.inv.CountItem(typeID) }
func (l *Located) QualityCache() map[string]map[int]int { return l.inv.QualityCache() }
func (l *Located) UpdateQualityCache()                  { l.inv.UpdateQualityCache() }
func (l *Located) Weight() int                          { return l.inv.Weight() }
func (l *Located) Volume() int                          { return l.inv.Volume() }
func (l *Located) ActiveItems() []*item.Item            { return l.inv.ActiveItems() }
func (l *Located) Unsort()                              { l.inv.Unsort() }
func (l *Located) Restack(owner InvletOwner)            { l.inv.Restack(owner) }
func (l *Located) Favorites() *Favorites                { return l.inv.Favorites() }

func (l *Located) CountMatching(pattern string) (int, error) {
	return l.inv.CountMatching(pattern)
}

func (l *Located) AssignLetter(r rune, typeID string) { l.inv.AssignLetter(r, typeID) }

func (l *Located) AssignEmptyInvlet(it *item.Item, owner InvletOwner, force bool) {
	l.inv.AssignEmptyInvlet(it, owner, force)
}

func (l *Located) ReassignItem(it *item.Item, r rune, removeOld bool) {
	l.inv.ReassignItem(it, r, removeOld)
}

func (l *Located) UpdateInvlet(it *item.Item, assign bool) { l.inv.UpdateInvlet(it, assign) }

func (l *Located) SetStackFavorite(pos int, favorite bool) error {
	return l.inv.SetStackFavorite(pos, favorite)
}
