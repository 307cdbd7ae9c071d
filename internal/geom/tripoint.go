// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package geom contains the integer coordinate types shared by the map,
// vehicle and item location code.
package geom

import "fmt"

// Tripoint is a 3D integer coordinate. Depending on context it is either an
// absolute world coordinate or a coordinate local to the reality bubble.
type Tripoint struct {
	X, Y, Z int
}

// Zero is the origin.
var Zero = Tripoint{}

// Add returns p+o.
func (p Tripoint) Add(o Tripoint) Tripoint {
	return Tripoint{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Sub returns p-o.
func (p Tripoint) Sub(o Tripoint) Tripoint {
	return Tripoint{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

func (p Tripoint) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// RLDist is the roguelike (Chebyshev) distance between two points.
func RLDist(a, b Tripoint) int {
	d := a.Sub(b)
	return max(abs(d.X), abs(d.Y), abs(d.Z))
}

// DirectionSuffix describes where to is relative to from, e.g. "NE" or "down".
// An empty string is returned for identical points.
func DirectionSuffix(from, to Tripoint) string {
	d := to.Sub(from)
	var s string
	switch {
	case d.Y < 0:
		s = "N"
	case d.Y > 0:
		s = "S"
	}
	switch {
	case d.X > 0:
		s += "E"
	case d.X < 0:
		s += "W"
	}
	switch {
	case d.Z > 0 && s == "":
		return "up"
	case d.Z < 0 && s == "":
		return "down"
	}
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
