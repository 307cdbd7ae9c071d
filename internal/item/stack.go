// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"time"

	"github.com/samber/oops"
)

func clampedErr(it *Item, field string, requested, got int) error {
	return oops.Code(CodeChargesClamped).
		With("item_id", it.IDString()).
		With("item_type", it.TypeID()).
		With("field", field).
		With("requested", requested).
		With("clamped", got).
		Wrap(ErrChargesClamped)
}

// addCharges adds two charge counts, saturating at InfiniteCharges and
// flooring at zero.
func addCharges(a, b int) (int, bool) {
	if a == InfiniteCharges || b == InfiniteCharges {
		return InfiniteCharges, false
	}
	sum := a + b
	switch {
	case sum > InfiniteCharges:
		return InfiniteCharges, true
	case sum < 0:
		return 0, true
	}
	return sum, false
}

// ModCharges changes the charges by delta. The result is clamped to
// [0, InfiniteCharges]; infinite charges never change.
func (it *Item) ModCharges(delta int) error {
	n, clamped := addCharges(it.Charges, delta)
	if clamped {
		err := clampedErr(it, "charges", it.Charges+delta, n)
		it.Charges = n
		return it.report("mod charges", err)
	}
	it.Charges = n
	return nil
}

// SetDamage sets the damage, clamped to the type's DamageRange.
func (it *Item) SetDamage(n int) error {
	lo, hi := it.typ.DamageRange()
	got := max(lo, min(n, hi))
	it.Damage = got
	if got != n {
		return it.report("set damage", clampedErr(it, "damage", n, got))
	}
	return nil
}

// GoesBad reports whether the item has rotted past its shelf life.
func (it *Item) GoesBad() bool {
	return it.typ.Rots() && it.Rot >= it.typ.RotsIn
}

// Split carves qty charges off into a new detached item, leaving the rest
// in place. Splitting the whole stack (or more) detaches the item itself.
// qty below one is clamped to one.
func (it *Item) Split(qty int) (Detached, error) {
	if it.destroyed {
		return Detached{}, it.report("split", it.destroyedErr("split"))
	}
	var err error
	if qty < 1 {
		err = it.report("split", clampedErr(it, "qty", qty, 1))
		qty = 1
	}
	if !it.CountByCharges() || qty >= it.Charges {
		if qty > it.Count() {
			err = it.report("split", clampedErr(it, "qty", qty, it.Count()))
		}
		d, derr := it.Detach()
		if derr != nil {
			return d, derr
		}
		return d, err
	}
	return it.UnsafeSplit(qty), err
}

// UnsafeSplit carves qty charges off into a new detached item without
// handling the whole-stack case: it must satisfy 0 < qty < Charges.
func (it *Item) UnsafeSplit(qty int) Detached {
	res := it.clone()
	res.Charges = qty
	it.Charges -= qty
	return newDetached(res)
}

// clone creates a copy of it in the same arena, with copies of its contents
// and components.
func (it *Item) clone() *Item {
	c := it.arena.spawn(it.typ,
		WithCharges(it.Charges),
		WithBirthday(it.Birthday))
	c.Damage = it.Damage
	c.Active = it.Active
	c.Rot = it.Rot
	c.Invlet = it.Invlet
	c.Favorite = it.Favorite
	c.ItemCounter = it.ItemCounter
	c.flags = append([]string(nil), it.flags...)
	c.faults = append([]string(nil), it.faults...)
	for k, v := range it.vars {
		c.SetVar(k, v)
	}
	for _, ch := range it.contents.items {
		c.contents.PushBack(newDetached(ch.clone()))
	}
	for _, ch := range it.components.items {
		c.components.PushBack(newDetached(ch.clone()))
	}
	return c
}

// MergeCharges folds the charges of d into it and destroys the emptied
// source. Items that do not stack are refused unless force is set; a
// refused handle is returned untouched. Rate-like counters are averaged
// weighted by charges.
func (it *Item) MergeCharges(d Detached, force bool) (bool, Detached) {
	src := d.peek()
	if src == nil {
		return false, d
	}
	if src == it || !it.CountByCharges() || (!force && !it.StacksWith(src)) || (force && it.typ != src.typ) {
		_ = it.report("merge charges", oops.Code(CodeIncompatible).
			With("item_id", it.IDString()).
			With("item_type", it.TypeID()).
			With("other_id", src.IDString()).
			With("other_type", src.TypeID()).
			With("force", force).
			Wrap(ErrIncompatibleStacks))
		return false, d
	}

	total := it.Charges + src.Charges
	if total > 0 && it.Charges != InfiniteCharges && src.Charges != InfiniteCharges {
		it.ItemCounter = (it.ItemCounter*it.Charges + src.ItemCounter*src.Charges) / total
		if it.typ.Rots() {
			rot := (int64(it.Rot)*int64(it.Charges) + int64(src.Rot)*int64(src.Charges)) / int64(total)
			it.Rot = time.Duration(rot)
		}
	}
	n, clamped := addCharges(it.Charges, src.Charges)
	if clamped {
		_ = it.report("merge charges", clampedErr(it, "charges", total, n))
	}
	it.Charges = n
	d.Destroy()
	return true, Detached{}
}

func (it *Item) selfInsertErr(op string, other *Item) error {
	return oops.Code(CodeSelfInsert).
		With("op", op).
		With("item_id", it.IDString()).
		With("other_id", other.IDString()).
		Wrap(ErrSelfInsert)
}

// PutIn moves d into the contents of it. Putting an item inside itself or
// inside one of its own contents is refused and d is handed back.
func (it *Item) PutIn(d Detached) (Detached, error) {
	in := d.peek()
	if in == nil {
		return d, nil
	}
	if in == it || in.Contains(it) {
		return d, it.report("put in", it.selfInsertErr("put_in", in))
	}
	it.contents.PushBack(d)
	return Detached{}, nil
}

// TakeOut removes c from the contents of it.
func (it *Item) TakeOut(c *Item) (Detached, error) {
	d, err := it.contents.Remove(c)
	if err != nil {
		return d, it.report("take out", err)
	}
	return d, nil
}

// ClearContents removes every content item and returns the handles.
func (it *Item) ClearContents() []Detached { return it.contents.Clear() }

// RemoveContentsWith offers each content item to fn; see Vector.RemoveWith.
func (it *Item) RemoveContentsWith(fn func(Detached) Detached) {
	it.contents.RemoveWith(fn)
}

// AddComponent records d as one of the items it was made from.
func (it *Item) AddComponent(d Detached) (Detached, error) {
	in := d.peek()
	if in == nil {
		return d, nil
	}
	if in == it || in.Contains(it) {
		return d, it.report("add component", it.selfInsertErr("add_component", in))
	}
	it.components.PushBack(d)
	return Detached{}, nil
}

// RemoveComponent removes c from the components of it.
func (it *Item) RemoveComponent(c *Item) (Detached, error) {
	d, err := it.components.Remove(c)
	if err != nil {
		return d, it.report("remove component", err)
	}
	return d, nil
}

// ClearComponents removes every component and returns the handles.
func (it *Item) ClearComponents() []Detached { return it.components.Clear() }

// Convert changes the type of it in place. Location, contents and instance
// state are kept; an item that becomes counted by charges gets at least one
// charge.
func (it *Item) Convert(t *Type) {
	it.typ = t
	if t.CountByCharges && it.Charges <= 0 {
		it.Charges = max(t.DefaultCharges, 1)
	}
	if !t.Rots() {
		it.Rot = 0
	}
}

// AttemptSplit hands qty charges of it to fn as a detached fragment. Any
// charges fn returns are merged back, so the stack ends up as before minus
// what fn consumed. A qty that covers the whole stack (or is not positive)
// behaves like AttemptDetach on the item itself.
func (it *Item) AttemptSplit(qty int, fn func(Detached) Detached) error {
	if !it.CountByCharges() || qty <= 0 || qty >= it.Charges {
		return it.AttemptDetach(fn)
	}
	if it.destroyed {
		return it.report("attempt split", it.destroyedErr("attempt_split"))
	}
	ret := fn(it.UnsafeSplit(qty))
	if ret.IsEmpty() {
		return nil
	}
	if ret.peek().typ == it.typ {
		if ok, _ := it.MergeCharges(ret, true); ok {
			return nil
		}
	}
	if it.loc == nil {
		ret.Destroy()
		return it.report("attempt split", it.notLocatedErr("attempt_split"))
	}
	rest, err := it.loc.attach(ret)
	rest.Destroy()
	if err != nil {
		return it.report("attempt split", err)
	}
	return nil
}
