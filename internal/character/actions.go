// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package character

import (
	"slices"

	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/item"
)

// AddItem puts d into the carried inventory and returns the item now
// holding it, which differs from d's item when charges merged into a stack.
func (c *Character) AddItem(d item.Detached) *item.Item {
	return c.inv.AddItem(d, false, true, true)
}

// Has reports whether it is carried, worn or wielded, directly or inside a
// container.
func (c *Character) Has(it *item.Item) bool {
	return slices.ContainsFunc(append([]*item.Item{it}, it.Parents()...), func(x *item.Item) bool {
		return c.Carries(x) || c.Wears(x) || c.Wields(x)
	})
}

// RemoveItem takes it away from the character, wherever on the character
// it is.
func (c *Character) RemoveItem(it *item.Item) (item.Detached, error) {
	if !c.Has(it) {
		return item.Detached{}, c.reporter.Report("remove item", item.NotHeld("character", it))
	}
	return it.Detach()
}

// Pickup moves it from wherever it is into the carried inventory.
func (c *Character) Pickup(it *item.Item) (*item.Item, error) {
	d, err := it.Detach()
	if err != nil {
		return item.Null(), err
	}
	got := c.AddItem(d)
	got.OnPickup(c)
	return got, nil
}

// Wear puts d on. A type without the WEARABLE flag is refused and d is
// handed back.
func (c *Character) Wear(d item.Detached) (item.Detached, error) {
	if d.IsEmpty() {
		return d, nil
	}
	it := d.Item()
	if !it.Type().HasFlag(FlagWearable) {
		return d, oops.Code(CodeNotWearable).
			With("item_id", it.IDString()).
			With("item_type", it.TypeID()).
			Wrap(ErrNotWearable)
	}
	c.worn.PushBack(d)
	it.OnWear(c)
	return item.Detached{}, nil
}

// WearItem puts on it from wherever it is. A refused item stays put.
func (c *Character) WearItem(it *item.Item) error {
	var werr error
	err := it.AttemptDetach(func(d item.Detached) item.Detached {
		var rest item.Detached
		rest, werr = c.Wear(d)
		return rest
	})
	if err != nil {
		return err
	}
	return werr
}

// TakeOff moves a worn item into the carried inventory.
func (c *Character) TakeOff(it *item.Item) error {
	d, err := c.worn.Remove(it)
	if err != nil {
		return c.reporter.Report("take off", err)
	}
	c.AddItem(d).OnTakeoff(c)
	return nil
}

// RemoveWornItemsWith offers every worn item to fn; see item.Vector.RemoveWith.
func (c *Character) RemoveWornItemsWith(fn func(item.Detached) item.Detached) {
	c.worn.RemoveWith(fn)
}

// Wield puts d in the character's hands. Whatever was wielded before goes
// to the carried inventory.
func (c *Character) Wield(d item.Detached) (item.Detached, error) {
	if d.IsEmpty() {
		return d, nil
	}
	it := d.Item()
	if !c.wielded.IsEmpty() && !c.wielded.Is(it) {
		c.AddItem(c.wielded.Release())
	}
	rest, err := c.wielded.Put(d)
	if err != nil {
		return rest, err
	}
	it.OnWield(c)
	return item.Detached{}, nil
}

// WieldItem wields it from wherever it is.
func (c *Character) WieldItem(it *item.Item) error {
	var werr error
	err := it.AttemptDetach(func(d item.Detached) item.Detached {
		var rest item.Detached
		rest, werr = c.Wield(d)
		return rest
	})
	if err != nil {
		return err
	}
	return werr
}

// Unwield moves the wielded item into the carried inventory.
func (c *Character) Unwield() (*item.Item, error) {
	if c.wielded.IsEmpty() {
		return item.Null(), oops.Code(CodeNotWielding).
			With("character", c.name).
			Wrap(ErrNotWielding)
	}
	return c.AddItem(c.wielded.Release()), nil
}

// SendOnMission moves it into the companion mission inventory.
func (c *Character) SendOnMission(it *item.Item) error {
	if c.mission == nil {
		return c.noMission()
	}
	d, err := it.Detach()
	if err != nil {
		return err
	}
	c.mission.PushBack(d)
	return nil
}

// ReturnFromMission moves every mission item back into the carried
// inventory.
func (c *Character) ReturnFromMission() {
	if c.mission == nil {
		return
	}
	for _, d := range c.mission.Clear() {
		c.AddItem(d)
	}
}

// RestackInventory restacks the carried inventory against every letter the
// character uses.
func (c *Character) RestackInventory() { c.inv.Restack(c) }
