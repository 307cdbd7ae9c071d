// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

var (
	waterType   = &Type{ID: "water", Name: "clean water", CountByCharges: true, StackSize: 4, DefaultCharges: 1, VolumeML: 250, WeightG: 250}
	arrowType   = &Type{ID: "arrow", Name: "arrow", CountByCharges: true, StackSize: 10, VolumeML: 500, WeightG: 30}
	meatType    = &Type{ID: "meat", Name: "chunk of meat", CountByCharges: true, StackSize: 1, VolumeML: 250, RotsIn: 24 * time.Hour}
	rockType    = &Type{ID: "rock", Name: "rock", VolumeML: 500, WeightG: 600}
	bagType     = &Type{ID: "bag", Name: "plastic bag", VolumeML: 100, WeightG: 10}
	holsterType = &Type{ID: "holster", Name: "holster", VolumeML: 500, HolsterDrawCost: 40}
	armorType   = &Type{ID: "horse_armor", Name: "horse armor", VolumeML: 8000}
)

func testTypes(id string) (*Type, bool) {
	for _, t := range []*Type{waterType, arrowType, meatType, rockType, bagType, holsterType, armorType} {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

func newTestArena(t *testing.T, opts ...Option) (*Arena, *errutil.Recorder) {
	t.Helper()
	rec := &errutil.Recorder{}
	r := rec.Reporter()
	r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewArena(append([]Option{WithReporter(r)}, opts...)...), rec
}

// fakeMap is a square bubble of side size whose local origin sits at origin.
type fakeMap struct {
	origin geom.Tripoint
	size   int
	tiles  map[geom.Tripoint]*Vector
	sites  map[geom.Tripoint]*Vector
}

func newFakeMap(size int) *fakeMap {
	return &fakeMap{
		size:  size,
		tiles: make(map[geom.Tripoint]*Vector),
		sites: make(map[geom.Tripoint]*Vector),
	}
}

func (m *fakeMap) tile(abs geom.Tripoint) *Vector {
	v, ok := m.tiles[abs]
	if !ok {
		v = NewVector(NewTileLocation(m, abs))
		m.tiles[abs] = v
	}
	return v
}

func (m *fakeMap) site(abs geom.Tripoint) *Vector {
	v, ok := m.sites[abs]
	if !ok {
		v = NewVector(NewPartialConstructionLocation(m, abs))
		m.sites[abs] = v
	}
	return v
}

func (m *fakeMap) InBounds(p geom.Tripoint) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.size && p.Y < m.size && p.Z == 0
}

func (m *fakeMap) GetLocal(abs geom.Tripoint) geom.Tripoint { return abs.Sub(m.origin) }

func (m *fakeMap) TileName(geom.Tripoint) string { return "dirt" }

func (m *fakeMap) HasItemAt(abs geom.Tripoint, it *Item) bool { return m.tile(abs).Contains(it) }

func (m *fakeMap) RemoveItemAt(abs geom.Tripoint, it *Item) (Detached, error) {
	return m.tile(abs).Remove(it)
}

func (m *fakeMap) AddItemAt(abs geom.Tripoint, d Detached) (Detached, error) {
	m.tile(abs).PushBack(d)
	return Detached{}, nil
}

func (m *fakeMap) HasConstructionItem(abs geom.Tripoint, it *Item) bool {
	return m.site(abs).Contains(it)
}

type fakeMonster struct {
	name   string
	pos    geom.Tripoint
	loaded bool
	inv    *Vector
	corpse *Vector
	slots  map[MonsterSlot]*Slot
}

func newFakeMonster() *fakeMonster {
	m := &fakeMonster{name: "horse", loaded: true, slots: make(map[MonsterSlot]*Slot)}
	m.inv = NewVector(NewMonsterLocation(m))
	m.corpse = NewVector(NewMonsterComponentLocation(m))
	for _, s := range MonsterSlots {
		m.slots[s] = NewSlot(NewMonsterSlotLocation(m, s), false)
	}
	return m
}

func (m *fakeMonster) Pos() geom.Tripoint                               { return m.pos }
func (m *fakeMonster) Name() string                                     { return m.name }
func (m *fakeMonster) IsLoaded() bool                                   { return m.loaded }
func (m *fakeMonster) HasItem(it *Item) bool                            { return m.inv.Contains(it) }
func (m *fakeMonster) RemoveItem(it *Item) (Detached, error)            { return m.inv.Remove(it) }
func (m *fakeMonster) HasCorpseComponent(it *Item) bool                 { return m.corpse.Contains(it) }
func (m *fakeMonster) RemoveCorpseComponent(it *Item) (Detached, error) { return m.corpse.Remove(it) }
func (m *fakeMonster) SlotItem(s MonsterSlot) *Item                     { return m.slots[s].Item() }
func (m *fakeMonster) RemoveSlotItem(s MonsterSlot) Detached            { return m.slots[s].Release() }

func (m *fakeMonster) AddItem(d Detached) (Detached, error) {
	m.inv.PushBack(d)
	return Detached{}, nil
}

func (m *fakeMonster) AddCorpseComponent(d Detached) (Detached, error) {
	m.corpse.PushBack(d)
	return Detached{}, nil
}

func (m *fakeMonster) SetSlotItem(s MonsterSlot, d Detached) (Detached, error) {
	return m.slots[s].Put(d)
}

type fakeCharacter struct {
	name   string
	pos    geom.Tripoint
	loaded bool
	inv    *Vector
	worn   *Vector
	wield  *Slot
}

func newFakeCharacter(name string) *fakeCharacter {
	c := &fakeCharacter{name: name, loaded: true}
	c.inv = NewVector(NewCharacterLocation(c))
	c.worn = NewVector(NewWornLocation(c))
	c.wield = NewSlot(NewWieldLocation(c), false)
	return c
}

func (c *fakeCharacter) Pos() geom.Tripoint                       { return c.pos }
func (c *fakeCharacter) Name() string                             { return c.name }
func (c *fakeCharacter) IsLoaded() bool                           { return c.loaded }
func (c *fakeCharacter) Carries(it *Item) bool                    { return c.inv.Contains(it) }
func (c *fakeCharacter) RemoveCarried(it *Item) (Detached, error) { return c.inv.Remove(it) }
func (c *fakeCharacter) Wears(it *Item) bool                      { return c.worn.Contains(it) }
func (c *fakeCharacter) RemoveWorn(it *Item) (Detached, error)    { return c.worn.Remove(it) }
func (c *fakeCharacter) Wields(it *Item) bool                     { return c.wield.Is(it) }
func (c *fakeCharacter) RemoveWielded(it *Item) (Detached, error) { return c.wield.Remove(it) }
func (c *fakeCharacter) Parents(it *Item) []*Item                 { return it.Parents() }

func (c *fakeCharacter) AddCarried(d Detached) (Detached, error) {
	c.inv.PushBack(d)
	return Detached{}, nil
}

func (c *fakeCharacter) AddWorn(d Detached) (Detached, error) {
	c.worn.PushBack(d)
	return Detached{}, nil
}

func (c *fakeCharacter) SetWielded(d Detached) (Detached, error) {
	return c.wield.Put(d)
}

func (c *fakeCharacter) ItemHandlingCost(it *Item, qty int, _ bool, penalty int) int {
	return HandlingCost(it, qty, penalty)
}
