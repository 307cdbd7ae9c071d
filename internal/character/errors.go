// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package character

import "errors"

var (
	// ErrNotWearable is returned when putting on an item whose type cannot be worn.
	ErrNotWearable = errors.New("item cannot be worn")
	// ErrNoMissionInventory is returned when a character without a companion
	// mission inventory is asked to use one.
	ErrNoMissionInventory = errors.New("character has no mission inventory")
	// ErrNotWielding is returned when unwielding with empty hands.
	ErrNotWielding = errors.New("character is not wielding anything")
)

// Error codes attached with oops.Code.
const (
	CodeNotWearable        = "NOT_WEARABLE"
	CodeNoMissionInventory = "NO_MISSION_INVENTORY"
	CodeNotWielding        = "NOT_WIELDING"
)

// FlagWearable marks item types that can be put on.
const FlagWearable = "WEARABLE"
