// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package character

import (
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/item"
)

// The methods in this file are the holder side of the character locations.
// Gameplay code uses the verbs in actions.go instead.

var (
	_ item.MissionHolder = (*Character)(nil)
	_ item.Handler       = (*Character)(nil)
)

func (c *Character) Carries(it *item.Item) bool { return c.inv.Has(it) }

func (c *Character) RemoveCarried(it *item.Item) (item.Detached, error) {
	return c.inv.RemoveItem(it)
}

func (c *Character) AddCarried(d item.Detached) (item.Detached, error) {
	c.inv.AddItem(d, false, true, true)
	return item.Detached{}, nil
}

func (c *Character) Wears(it *item.Item) bool { return c.worn.Contains(it) }

func (c *Character) RemoveWorn(it *item.Item) (item.Detached, error) {
	return c.worn.Remove(it)
}

func (c *Character) AddWorn(d item.Detached) (item.Detached, error) {
	c.worn.PushBack(d)
	return item.Detached{}, nil
}

func (c *Character) Wields(it *item.Item) bool { return c.wielded.Is(it) }

func (c *Character) RemoveWielded(it *item.Item) (item.Detached, error) {
	return c.wielded.Remove(it)
}

func (c *Character) SetWielded(d item.Detached) (item.Detached, error) {
	return c.wielded.Put(d)
}

// Parents returns the containers holding it, innermost first.
func (c *Character) Parents(it *item.Item) []*item.Item { return it.Parents() }

func (c *Character) HasMissionItem(it *item.Item) bool {
	return c.mission != nil && c.mission.Contains(it)
}

func (c *Character) RemoveMissionItem(it *item.Item) (item.Detached, error) {
	if c.mission == nil {
		return item.Detached{}, item.NotHeld("npc_mission", it)
	}
	return c.mission.Remove(it)
}

func (c *Character) AddMissionItem(d item.Detached) (item.Detached, error) {
	if c.mission == nil {
		return d, c.noMission()
	}
	c.mission.PushBack(d)
	return item.Detached{}, nil
}

func (c *Character) noMission() error {
	return oops.Code(CodeNoMissionInventory).
		With("character", c.name).
		With("character_id", c.ID.String()).
		Wrap(ErrNoMissionInventory)
}
