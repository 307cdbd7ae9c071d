// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Snapshot is the serialized instance state of an item. Location is not part
// of it: whoever restores the item attaches it.
type Snapshot struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	Charges     int               `json:"charges,omitempty"`
	Damage      int               `json:"damage,omitempty"`
	Active      bool              `json:"active,omitempty"`
	RotSeconds  int64             `json:"rot,omitempty"`
	Invlet      string            `json:"invlet,omitempty"`
	Favorite    bool              `json:"favorite,omitempty"`
	ItemCounter int               `json:"item_counter,omitempty"`
	Birthday    time.Time         `json:"birthday"`
	Flags       []string          `json:"flags,omitempty"`
	Faults      []string          `json:"faults,omitempty"`
	Vars        map[string]string `json:"vars,omitempty"`
	Contents    []Snapshot        `json:"contents,omitempty"`
	Components  []Snapshot        `json:"components,omitempty"`
}

// TypeLookup resolves a type id.
type TypeLookup func(id string) (*Type, bool)

// Snapshot captures the instance state of it and everything inside it.
func (it *Item) Snapshot() Snapshot {
	s := Snapshot{
		ID:          it.IDString(),
		Type:        it.TypeID(),
		Charges:     it.Charges,
		Damage:      it.Damage,
		Active:      it.Active,
		RotSeconds:  int64(it.Rot / time.Second),
		Favorite:    it.Favorite,
		ItemCounter: it.ItemCounter,
		Birthday:    it.Birthday.UTC(),
		Flags:       it.Flags(),
		Faults:      it.Faults(),
		Vars:        it.Vars(),
	}
	if it.Invlet != 0 {
		s.Invlet = string(it.Invlet)
	}
	for _, c := range it.contents.items {
		s.Contents = append(s.Contents, c.Snapshot())
	}
	for _, c := range it.components.items {
		s.Components = append(s.Components, c.Snapshot())
	}
	return s
}

// Restore recreates a detached item from s, keeping its id.
func (a *Arena) Restore(s Snapshot, types TypeLookup) (Detached, error) {
	t, ok := types(s.Type)
	if !ok {
		return Detached{}, oops.Code(CodeUnknownType).
			With("item_id", s.ID).
			With("item_type", s.Type).
			Wrap(ErrUnknownType)
	}
	id, err := ulid.Parse(s.ID)
	if err != nil {
		return Detached{}, oops.Code(CodeInvalidSnapshot).
			With("item_id", s.ID).
			Wrapf(err, "parse item id")
	}
	if _, exists := a.live[id]; exists {
		return Detached{}, oops.Code(CodeInvalidSnapshot).
			With("item_id", s.ID).
			Errorf("item %s is already live", s.ID)
	}

	d := a.Spawn(t, WithID(id), WithCharges(s.Charges), WithBirthday(s.Birthday))
	it := d.peek()
	it.Damage = s.Damage
	it.Active = s.Active
	it.Rot = time.Duration(s.RotSeconds) * time.Second
	it.Favorite = s.Favorite
	it.ItemCounter = s.ItemCounter
	if r := []rune(s.Invlet); len(r) > 0 {
		it.Invlet = r[0]
	}
	for _, f := range s.Flags {
		it.SetFlag(f)
	}
	for _, f := range s.Faults {
		it.AddFault(f)
	}
	for k, v := range s.Vars {
		it.SetVar(k, v)
	}
	for _, cs := range s.Contents {
		c, err := a.Restore(cs, types)
		if err != nil {
			d.Destroy()
			return Detached{}, err
		}
		it.contents.PushBack(c)
	}
	for _, cs := range s.Components {
		c, err := a.Restore(cs, types)
		if err != nil {
			d.Destroy()
			return Detached{}, err
		}
		it.components.PushBack(c)
	}
	return d, nil
}
