// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

// Observer receives item lifecycle events from an Arena. Structural events
// (attach, destroy) fire for every item; the semantic ones are raised by
// the holder after an attach that changes what the item means to its
// owner, such as putting on a coat rather than just moving it.
type Observer interface {
	OnAttach(it *Item, loc Location)
	OnDestroy(it *Item)
	OnWear(it *Item, who CharacterHolder)
	OnTakeoff(it *Item, who CharacterHolder)
	OnWield(it *Item, who CharacterHolder)
	OnPickup(it *Item, who CharacterHolder)
}

// NopObserver implements Observer with no-ops; embed it to handle a subset
// of events.
type NopObserver struct{}

func (NopObserver) OnAttach(*Item, Location)         {}
func (NopObserver) OnDestroy(*Item)                  {}
func (NopObserver) OnWear(*Item, CharacterHolder)    {}
func (NopObserver) OnTakeoff(*Item, CharacterHolder) {}
func (NopObserver) OnWield(*Item, CharacterHolder)   {}
func (NopObserver) OnPickup(*Item, CharacterHolder)  {}

// OnWear notifies observers that who put it on.
func (it *Item) OnWear(who CharacterHolder) {
	it.arena.each(func(o Observer) { o.OnWear(it, who) })
}

// OnTakeoff notifies observers that who took it off.
func (it *Item) OnTakeoff(who CharacterHolder) {
	it.arena.each(func(o Observer) { o.OnTakeoff(it, who) })
}

// OnWield notifies observers that who wielded it.
func (it *Item) OnWield(who CharacterHolder) {
	it.arena.each(func(o Observer) { o.OnWield(it, who) })
}

// OnPickup notifies observers that who picked it up.
func (it *Item) OnPickup(who CharacterHolder) {
	it.arena.each(func(o Observer) { o.OnPickup(it, who) })
}
