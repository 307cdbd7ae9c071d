// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"slices"
	"time"
)

// InfiniteCharges marks items whose charges are never consumed.
const InfiniteCharges = 1<<31 - 1

// Damage bounds for types that do not declare their own. Negative damage is
// reinforcement.
const (
	DefaultDamageMin = -1000
	DefaultDamageMax = 4000
)

// Type is the flyweight definition shared by every item of one kind.
// Types are loaded once (see package content) and referenced by pointer.
type Type struct {
	ID             string
	Name           string
	Materials      []string
	CountByCharges bool
	// StackSize is the number of charges VolumeML refers to.
	StackSize      int
	DefaultCharges int
	VolumeML       int
	WeightG        int
	Qualities      map[string]int
	// RotsIn is the shelf life; zero means the item never rots.
	RotsIn time.Duration
	// HolsterDrawCost is the move cost of drawing an item stored in this
	// type, or zero when this type is not a holster or bandolier.
	HolsterDrawCost int
	// DamageMin and DamageMax bound item damage. Both zero selects the
	// defaults.
	DamageMin int
	DamageMax int
	Flags     []string
}

// NullType is the type of the null item sentinel.
var NullType = &Type{ID: "null", Name: "none"}

// HasFlag reports whether the type declares flag.
func (t *Type) HasFlag(flag string) bool {
	return slices.Contains(t.Flags, flag)
}

// MadeOf reports whether material is one of the type's materials.
func (t *Type) MadeOf(material string) bool {
	return slices.Contains(t.Materials, material)
}

// Rots reports whether items of this type accumulate rot.
func (t *Type) Rots() bool {
	return t.RotsIn > 0
}

// DamageRange returns the inclusive damage bounds. Items counted by charges
// are never damaged.
func (t *Type) DamageRange() (lo, hi int) {
	switch {
	case t.CountByCharges:
		return 0, 0
	case t.DamageMin == 0 && t.DamageMax == 0:
		return DefaultDamageMin, DefaultDamageMax
	}
	return t.DamageMin, t.DamageMax
}

func (t *Type) stackSize() int {
	if t.StackSize <= 0 {
		return 1
	}
	return t.StackSize
}
