// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package character implements the item holder side of survivors and NPCs:
// a carried inventory, worn clothing, one wielded item and, for NPCs, the
// inventory they take on companion missions.
package character

import (
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/internal/inventory"
	"github.com/cataclysmbn/bnengine/internal/item"
	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

// Option configures a Character.
type Option func(*Character)

// WithID sets the character id, used when restoring a save.
func WithID(id ulid.ULID) Option {
	return func(c *Character) { c.ID = id }
}

// WithPos places the character in the reality bubble.
func WithPos(p geom.Tripoint) Option {
	return func(c *Character) { c.pos = p }
}

// WithInventoryOptions passes options on to the carried inventory.
func WithInventoryOptions(opts ...inventory.Option) Option {
	return func(c *Character) { c.invOpts = append(c.invOpts, opts...) }
}

// AsNPC gives the character a companion mission inventory.
func AsNPC() Option {
	return func(c *Character) { c.npc = true }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Character) { c.logger = l }
}

// WithReporter sets the channel consistency violations are reported to.
func WithReporter(r *errutil.Reporter) Option {
	return func(c *Character) { c.reporter = r }
}

// Character is a survivor or NPC.
type Character struct {
	ID ulid.ULID
	// Encumbrance is the percentage added to handling costs that are
	// affected by what the character wears.
	Encumbrance int

	name   string
	pos    geom.Tripoint
	loaded bool
	npc    bool

	inv     *inventory.Located
	worn    *item.Vector
	wielded *item.Slot
	mission *item.Vector

	invOpts  []inventory.Option
	logger   *slog.Logger
	reporter *errutil.Reporter
}

// New creates a loaded character with empty hands and inventory.
func New(name string, opts ...Option) *Character {
	c := &Character{ID: ulid.Make(), name: name, loaded: true}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.reporter == nil {
		c.reporter = &errutil.Reporter{Logger: c.logger, OnReport: item.RecordViolation}
	}
	invOpts := append([]inventory.Option{
		inventory.WithOwner(c),
		inventory.WithLogger(c.logger),
		inventory.WithReporter(c.reporter),
	}, c.invOpts...)
	c.inv = inventory.NewLocated(item.NewCharacterLocation(c), invOpts...)
	c.worn = item.NewVector(item.NewWornLocation(c))
	c.wielded = item.NewSlot(item.NewWieldLocation(c), false)
	if c.npc {
		c.mission = item.NewVector(item.NewMissionLocation(c))
	}
	return c
}

// Name returns the display name.
func (c *Character) Name() string { return c.name }

// Pos returns the bubble-local position.
func (c *Character) Pos() geom.Tripoint { return c.pos }

// SetPos moves the character.
func (c *Character) SetPos(p geom.Tripoint) { c.pos = p }

// IsLoaded reports whether the character is in the active simulation.
func (c *Character) IsLoaded() bool { return c.loaded }

// SetLoaded marks the character as loaded or not.
func (c *Character) SetLoaded(loaded bool) { c.loaded = loaded }

// IsNPC reports whether the character has a mission inventory.
func (c *Character) IsNPC() bool { return c.mission != nil }

// Inventory returns the carried inventory.
func (c *Character) Inventory() *inventory.Located { return c.inv }

// Worn returns the worn items, outermost last.
func (c *Character) Worn() []*item.Item { return c.worn.Items() }

// Wielded returns the wielded item, or the null item.
func (c *Character) Wielded() *item.Item { return c.wielded.Item() }

// MissionItems returns the items away on a companion mission.
func (c *Character) MissionItems() []*item.Item {
	if c.mission == nil {
		return nil
	}
	return c.mission.Items()
}

// Weight returns the weight of everything carried, worn and wielded.
func (c *Character) Weight() int {
	w := c.inv.Weight()
	for _, it := range c.worn.Items() {
		w += it.Weight()
	}
	if !c.wielded.IsEmpty() {
		w += c.wielded.Item().Weight()
	}
	return w
}

// InvletToItem returns the wielded, worn or carried item addressed by r, in
// that order, or nil.
func (c *Character) InvletToItem(r rune) *item.Item {
	if r == 0 {
		return nil
	}
	if w := c.wielded.Item(); !c.wielded.IsEmpty() && w.Invlet == r {
		return w
	}
	for _, it := range c.worn.Items() {
		if it.Invlet == r {
			return it
		}
	}
	return c.inv.InvletToItem(r)
}

// AllocatedInvlets returns the letters of every carried stack and every
// worn or wielded item.
func (c *Character) AllocatedInvlets() inventory.Invlets {
	res := c.inv.AllocatedInvlets()
	for _, it := range c.worn.Items() {
		if it.Invlet != 0 {
			res[it.Invlet] = true
		}
	}
	if w := c.wielded.Item(); !c.wielded.IsEmpty() && w.Invlet != 0 {
		res[w.Invlet] = true
	}
	return res
}

// ItemHandlingCost is the move cost of handling qty units of it. Costs with
// effects grow with Encumbrance.
func (c *Character) ItemHandlingCost(it *item.Item, qty int, effects bool, penalty int) int {
	mv := item.HandlingCost(it, qty, penalty)
	if effects && c.Encumbrance > 0 {
		mv += mv * c.Encumbrance / 100
	}
	return mv
}

// Destroy destroys everything the character holds, for characters leaving
// the game for good.
func (c *Character) Destroy() {
	c.inv.Destroy()
	c.worn.Destroy()
	c.wielded.Destroy()
	if c.mission != nil {
		c.mission.Destroy()
	}
}
