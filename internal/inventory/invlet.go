// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package inventory

import (
	"maps"
	"slices"
	"strings"

	"github.com/samber/oops"
)

// Chars are the letters that can address a stack, in assignment order.
const Chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ!\"#&()+.:;=@[\\]^_{|}"

// CodeDuplicateInvlet marks a favorites map that gives one letter to two types.
const CodeDuplicateInvlet = "DUPLICATE_INVLET"

// ValidInvlet reports whether r is one of Chars.
func ValidInvlet(r rune) bool {
	return r != 0 && strings.ContainsRune(Chars, r)
}

// Invlets is a set of letters.
type Invlets map[rune]bool

// Count returns the number of letters in the set.
func (s Invlets) Count() int {
	n := 0
	for _, ok := range s {
		if ok {
			n++
		}
	}
	return n
}

// AutoAssign is the automatic letter assignment policy.
type AutoAssign string

// Letter assignment policies.
const (
	AutoAssignEnabled   AutoAssign = "enabled"
	AutoAssignFavorites AutoAssign = "favorites"
	AutoAssignDisabled  AutoAssign = "disabled"
)

// ParseAutoAssign parses a policy name.
func ParseAutoAssign(s string) (AutoAssign, error) {
	switch p := AutoAssign(strings.ToLower(strings.TrimSpace(s))); p {
	case AutoAssignEnabled, AutoAssignFavorites, AutoAssignDisabled:
		return p, nil
	}
	return "", oops.Code("INVALID_AUTO_ASSIGN").
		With("value", s).
		Errorf("unknown letter assignment policy %q", s)
}

// allows reports whether letters may be assigned to it automatically.
func (p AutoAssign) allows(favorite bool) bool {
	switch p {
	case AutoAssignDisabled:
		return false
	case AutoAssignFavorites:
		return favorite
	default:
		return true
	}
}

// Favorites remembers which letters the player used for which item types,
// so a type gets its old letter back when it returns to the inventory.
// Each letter maps to at most one type.
type Favorites struct {
	byInvlet map[rune]string
	byType   map[string][]rune
}

// NewFavorites builds the cache from a type id to letters map. Letters
// claimed by two types are kept for the type that sorts last and reported
// in the returned error.
func NewFavorites(m map[string]string) (*Favorites, error) {
	f := &Favorites{byInvlet: map[rune]string{}, byType: map[string][]rune{}}
	var dups []string
	for _, id := range slices.Sorted(maps.Keys(m)) {
		for _, r := range m[id] {
			if prev, ok := f.byInvlet[r]; ok && prev != id {
				dups = append(dups, string(r))
			}
			f.Set(r, id)
		}
	}
	if len(dups) > 0 {
		return f, oops.Code(CodeDuplicateInvlet).
			With("invlets", strings.Join(dups, "")).
			Errorf("duplicate favorite letters")
	}
	return f, nil
}

// Set makes r a favorite letter of typeID, taking it from any other type.
func (f *Favorites) Set(r rune, typeID string) {
	if f.Contains(r, typeID) {
		return
	}
	f.Erase(r)
	f.byInvlet[r] = typeID
	f.byType[typeID] = append(f.byType[typeID], r)
}

// Erase forgets r.
func (f *Favorites) Erase(r rune) {
	id, ok := f.byInvlet[r]
	if !ok {
		return
	}
	delete(f.byInvlet, r)
	rs := slices.DeleteFunc(f.byType[id], func(x rune) bool { return x == r })
	if len(rs) == 0 {
		delete(f.byType, id)
		return
	}
	f.byType[id] = rs
}

// Contains reports whether r is a favorite letter of typeID.
func (f *Favorites) Contains(r rune, typeID string) bool {
	id, ok := f.byInvlet[r]
	return ok && id == typeID
}

// For returns the favorite letters of typeID, oldest first.
func (f *Favorites) For(typeID string) []rune {
	return slices.Clone(f.byType[typeID])
}

// Map returns the cache in the form accepted by NewFavorites.
func (f *Favorites) Map() map[string]string {
	res := make(map[string]string, len(f.byType))
	for id, rs := range f.byType {
		res[id] = string(rs)
	}
	return res
}
