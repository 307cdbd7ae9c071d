// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import "errors"

// Sentinel errors. Every error returned by this package wraps one of these
// with an oops code and context, so callers can use errors.Is.
var (
	// ErrNotHeld is returned when a location is asked to release an item it does not hold.
	ErrNotHeld = errors.New("item is not held by this location")
	// ErrSlotOccupied is returned when attaching into an occupied single-item slot.
	ErrSlotOccupied = errors.New("slot is already occupied")
	// ErrSelfInsert is returned when an item would end up inside itself.
	ErrSelfInsert = errors.New("cannot put an item inside itself")
	// ErrIncompatibleStacks is returned when merging items that do not stack.
	ErrIncompatibleStacks = errors.New("items do not stack")
	// ErrEmptyHandle is returned when resolving an empty handle.
	ErrEmptyHandle = errors.New("handle is empty")
	// ErrNoPosition is returned for locations without a physical coordinate.
	ErrNoPosition = errors.New("location has no position")
	// ErrTemplateLocation is returned by every mutating operation on a template location.
	ErrTemplateLocation = errors.New("template location is not a real location")
	// ErrNotDetachable is returned by locations that never give up their item.
	ErrNotDetachable = errors.New("location does not allow detach or attach")
	// ErrAlreadyDetaching is returned when detaching an item that is inside an attempted detach.
	ErrAlreadyDetaching = errors.New("item is already being detached")
	// ErrNotLocated is returned when a location-dependent operation is called on a detached item.
	ErrNotLocated = errors.New("item has no location")
	// ErrDestroyed is returned when operating on an item that was already destroyed.
	ErrDestroyed = errors.New("item was destroyed")
	// ErrChargesClamped is reported when a quantity was clamped to a valid range.
	ErrChargesClamped = errors.New("quantity clamped")
	// ErrDetachedLeak is reported when a detached item was never re-homed before a sweep.
	ErrDetachedLeak = errors.New("detached item leaked")
	// ErrUnknownType is returned when restoring an item whose type is not loaded.
	ErrUnknownType = errors.New("unknown item type")
)

// Error codes attached with oops.Code.
const (
	CodeNotHeld          = "LOCATION_NOT_HELD"
	CodeSlotOccupied     = "SLOT_OCCUPIED"
	CodeSelfInsert       = "SELF_INSERT"
	CodeIncompatible     = "INCOMPATIBLE_STACKS"
	CodeEmptyHandle      = "EMPTY_HANDLE"
	CodeNoPosition       = "NO_POSITION"
	CodeTemplate         = "TEMPLATE_LOCATION"
	CodeNotDetachable    = "NOT_DETACHABLE"
	CodeAlreadyDetaching = "ALREADY_DETACHING"
	CodeNotLocated       = "NOT_LOCATED"
	CodeDestroyed        = "DESTROYED"
	CodeChargesClamped   = "CHARGES_CLAMPED"
	CodeDetachedLeak     = "DETACHED_LEAK"
	CodeUnknownType      = "UNKNOWN_TYPE"
	CodeInvalidSnapshot  = "INVALID_SNAPSHOT"
)
