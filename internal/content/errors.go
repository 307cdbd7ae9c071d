// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package content

import "errors"

var (
	// ErrUnknownItemType is returned when looking up an item type nobody defined.
	ErrUnknownItemType = errors.New("unknown item type")
	// ErrDanglingReference is returned when a definition names an id that no
	// loaded pack defines.
	ErrDanglingReference = errors.New("reference to undefined id")
	// ErrIncompatiblePack is returned for a pack whose requires constraint
	// excludes the running engine.
	ErrIncompatiblePack = errors.New("content pack is incompatible with this engine")
)

// Error codes attached with oops.Code.
const (
	CodeInvalidContent    = "INVALID_CONTENT"
	CodeUnknownItemType   = "UNKNOWN_ITEM_TYPE"
	CodeDanglingReference = "DANGLING_REFERENCE"
	CodeIncompatiblePack  = "INCOMPATIBLE_PACK"
)
