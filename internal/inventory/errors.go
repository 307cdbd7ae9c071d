// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package inventory

import "errors"

var (
	// ErrStackOutOfRange is returned when a stack position does not exist.
	ErrStackOutOfRange = errors.New("stack position out of range")
	// ErrInvletExhausted is reported when no inventory letter can be found.
	ErrInvletExhausted = errors.New("no inventory letter available")
	// ErrInvalidPattern is returned when a type filter does not compile.
	ErrInvalidPattern = errors.New("invalid type pattern")
)

// Error codes attached with oops.Code.
const (
	CodeStackOutOfRange = "STACK_OUT_OF_RANGE"
	CodeInvletExhausted = "INVLET_EXHAUSTED"
	CodeInvalidPattern  = "INVALID_PATTERN"
)
