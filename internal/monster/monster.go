// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package monster implements what a monster carries: a general inventory,
// the components its corpse will be made of, and one item per equipment
// slot (the rope it is tied with, tack, armor, saddlebags and a battery).
package monster

import (
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/internal/item"
)

var (
	// ErrDead is returned when items are given to a monster that has died.
	ErrDead = errors.New("monster is dead")
	// ErrBadSlot is returned for a slot monsters do not have.
	ErrBadSlot = errors.New("monster has no such slot")
)

// Error codes attached with oops.Code.
const (
	CodeDead    = "MONSTER_DEAD"
	CodeBadSlot = "BAD_SLOT"
)

// Option configures a Monster.
type Option func(*Monster)

// WithPos places the monster at a bubble-local coordinate.
func WithPos(p geom.Tripoint) Option {
	return func(m *Monster) { m.pos = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monster) { m.logger = l }
}

// Monster is a creature that carries items but never hands them to item
// code directly: nothing on a monster has an obtain cost.
type Monster struct {
	ID ulid.ULID

	name   string
	pos    geom.Tripoint
	loaded bool
	dead   bool

	inv    *item.Vector
	corpse *item.Vector
	slots  map[item.MonsterSlot]*item.Slot
	logger *slog.Logger
}

var _ item.MonsterHolder = (*Monster)(nil)

// New creates a loaded monster with nothing on it.
func New(name string, opts ...Option) *Monster {
	m := &Monster{ID: ulid.Make(), name: name, loaded: true}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.inv = item.NewVector(item.NewMonsterLocation(m))
	m.corpse = item.NewVector(item.NewMonsterComponentLocation(m))
	m.slots = make(map[item.MonsterSlot]*item.Slot, len(item.MonsterSlots))
	for _, s := range item.MonsterSlots {
		m.slots[s] = item.NewSlot(item.NewMonsterSlotLocation(m, s), false)
	}
	return m
}

func (m *Monster) Name() string { return m.name }

func (m *Monster) Pos() geom.Tripoint { return m.pos }

// SetPos moves the monster.
func (m *Monster) SetPos(p geom.Tripoint) { m.pos = p }

func (m *Monster) IsLoaded() bool { return m.loaded }

// SetLoaded marks the monster as inside or outside the bubble.
func (m *Monster) SetLoaded(loaded bool) { m.loaded = loaded }

// IsDead reports whether Die was called.
func (m *Monster) IsDead() bool { return m.dead }

// Inventory returns the items in the general inventory.
func (m *Monster) Inventory() []*item.Item { return m.inv.Items() }

// CorpseComponents returns the items the corpse will be made of.
func (m *Monster) CorpseComponents() []*item.Item { return m.corpse.Items() }

func (m *Monster) deadErr(op string, d item.Detached) error {
	return oops.Code(CodeDead).
		With("monster", m.name).
		With("op", op).
		With("item_id", d.Item().IDString()).
		Wrap(ErrDead)
}

func (m *Monster) HasItem(it *item.Item) bool { return m.inv.Contains(it) }

func (m *Monster) RemoveItem(it *item.Item) (item.Detached, error) { return m.inv.Remove(it) }

// AddItem puts d in the general inventory. A dead monster hands d back.
func (m *Monster) AddItem(d item.Detached) (item.Detached, error) {
	if d.IsEmpty() {
		return d, nil
	}
	if m.dead {
		return d, m.deadErr("add_item", d)
	}
	m.inv.PushBack(d)
	return item.Detached{}, nil
}

func (m *Monster) HasCorpseComponent(it *item.Item) bool { return m.corpse.Contains(it) }

func (m *Monster) RemoveCorpseComponent(it *item.Item) (item.Detached, error) {
	return m.corpse.Remove(it)
}

// AddCorpseComponent stores d to become part of the corpse.
func (m *Monster) AddCorpseComponent(d item.Detached) (item.Detached, error) {
	if d.IsEmpty() {
		return d, nil
	}
	if m.dead {
		return d, m.deadErr("add_corpse_component", d)
	}
	m.corpse.PushBack(d)
	return item.Detached{}, nil
}

// SlotItem returns the item in slot, or the null item.
func (m *Monster) SlotItem(slot item.MonsterSlot) *item.Item {
	if s, ok := m.slots[slot]; ok {
		return s.Item()
	}
	return item.Null()
}

// RemoveSlotItem empties slot and returns what was in it.
func (m *Monster) RemoveSlotItem(slot item.MonsterSlot) item.Detached {
	if s, ok := m.slots[slot]; ok {
		return s.Release()
	}
	return item.Detached{}
}

// SetSlotItem puts d in slot. An occupied slot keeps its item and hands d
// back with a SLOT_OCCUPIED error.
func (m *Monster) SetSlotItem(slot item.MonsterSlot, d item.Detached) (item.Detached, error) {
	if d.IsEmpty() {
		return d, nil
	}
	if m.dead {
		return d, m.deadErr("set_"+slot.String(), d)
	}
	s, ok := m.slots[slot]
	if !ok {
		return d, oops.Code(CodeBadSlot).
			With("monster", m.name).
			With("slot", int(slot)).
			Wrap(ErrBadSlot)
	}
	return s.Put(d)
}

// Die marks the monster dead. Its corpse components become components of
// corpse, and everything it carried is returned for the caller to drop,
// corpse first.
func (m *Monster) Die(corpse item.Detached) []item.Detached {
	m.dead = true
	var drops []item.Detached
	if !corpse.IsEmpty() {
		c := corpse.Item()
		for _, d := range m.corpse.Clear() {
			if rest, err := c.AddComponent(d); err != nil {
				drops = append(drops, rest)
			}
		}
		drops = append([]item.Detached{corpse}, drops...)
	}
	drops = append(drops, m.inv.Clear()...)
	for _, s := range item.MonsterSlots {
		if d := m.slots[s].Release(); !d.IsEmpty() {
			drops = append(drops, d)
		}
	}
	drops = append(drops, m.corpse.Clear()...)
	m.logger.Debug("monster died",
		"monster", m.name,
		"drops", len(drops))
	return drops
}

// Destroy destroys everything the monster carries.
func (m *Monster) Destroy() {
	m.inv.Destroy()
	m.corpse.Destroy()
	for _, s := range item.MonsterSlots {
		m.slots[s].Destroy()
	}
}
