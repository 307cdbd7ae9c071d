// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package gamemap holds the items lying on the map. Tiles are keyed by
// absolute coordinate so item locations survive the reality bubble moving;
// the bubble only decides which tiles are loaded.
package gamemap

import (
	"errors"
	"log/slog"
	"maps"
	"slices"

	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/internal/item"
)

// Default bubble dimensions.
const (
	DefaultRadius = 60
	DefaultLevels = 21
)

// DefaultTileName is the name of a tile nobody named.
const DefaultTileName = "ground"

// ErrOutOfBubble is returned when a local coordinate outside the bubble is
// addressed.
var ErrOutOfBubble = errors.New("coordinate is outside the reality bubble")

// CodeOutOfBubble is the oops code of ErrOutOfBubble.
const CodeOutOfBubble = "OUT_OF_BUBBLE"

type tile struct {
	name  string
	items *item.Vector
	site  *item.Vector
}

// Option configures a Map.
type Option func(*Map)

// WithRadius sets the horizontal radius of the bubble in tiles.
func WithRadius(r int) Option {
	return func(m *Map) { m.radius = r }
}

// WithLevels sets the number of z-levels in the bubble, centered on zero.
func WithLevels(n int) Option {
	return func(m *Map) { m.levels = n }
}

// WithOrigin sets the absolute coordinate of the bubble's local origin.
func WithOrigin(abs geom.Tripoint) Option {
	return func(m *Map) { m.origin = abs }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Map) { m.logger = l }
}

// Map is the item layer of the world map.
type Map struct {
	origin geom.Tripoint
	radius int
	levels int
	tiles  map[geom.Tripoint]*tile
	logger *slog.Logger
}

var _ item.MapHolder = (*Map)(nil)

// New creates an empty map.
func New(opts ...Option) *Map {
	m := &Map{
		radius: DefaultRadius,
		levels: DefaultLevels,
		tiles:  map[geom.Tripoint]*tile{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Size returns the side length of the bubble in tiles.
func (m *Map) Size() int { return 2*m.radius + 1 }

// Origin returns the absolute coordinate of local (0, 0, 0).
func (m *Map) Origin() geom.Tripoint { return m.origin }

// InBounds reports whether local lies inside the bubble.
func (m *Map) InBounds(local geom.Tripoint) bool {
	size := m.Size()
	half := m.levels / 2
	return local.X >= 0 && local.Y >= 0 && local.X < size && local.Y < size &&
		local.Z >= -half && local.Z <= half
}

// GetLocal converts an absolute coordinate to a bubble-local one. The result
// may lie outside the bubble.
func (m *Map) GetLocal(abs geom.Tripoint) geom.Tripoint { return abs.Sub(m.origin) }

// GetAbs converts a bubble-local coordinate to an absolute one.
func (m *Map) GetAbs(local geom.Tripoint) geom.Tripoint { return local.Add(m.origin) }

// Shift moves the bubble by offset tiles. Items keep their absolute
// position; the ones that leave the bubble stop being loaded.
func (m *Map) Shift(offset geom.Tripoint) {
	m.origin = m.origin.Add(offset)
	m.logger.Debug("bubble shifted",
		"offset", offset.String(),
		"origin", m.origin.String())
}

func (m *Map) tileAt(abs geom.Tripoint) *tile {
	t, ok := m.tiles[abs]
	if !ok {
		t = &tile{
			items: item.NewVector(item.NewTileLocation(m, abs)),
			site:  item.NewVector(item.NewPartialConstructionLocation(m, abs)),
		}
		m.tiles[abs] = t
	}
	return t
}

// TileName returns the name of the tile at local.
func (m *Map) TileName(local geom.Tripoint) string {
	if t, ok := m.tiles[m.GetAbs(local)]; ok && t.name != "" {
		return t.name
	}
	return DefaultTileName
}

// SetTileName names the tile at abs, as shown in location descriptions.
func (m *Map) SetTileName(abs geom.Tripoint, name string) {
	m.tileAt(abs).name = name
}

// ItemsAt returns the items lying at abs.
func (m *Map) ItemsAt(abs geom.Tripoint) []*item.Item {
	if t, ok := m.tiles[abs]; ok {
		return t.items.Items()
	}
	return nil
}

// LoadedItems returns every item on a tile inside the bubble, ordered by
// absolute position.
func (m *Map) LoadedItems() []*item.Item {
	var res []*item.Item
	for _, abs := range m.sortedTiles() {
		if m.InBounds(m.GetLocal(abs)) {
			res = append(res, m.tiles[abs].items.Items()...)
		}
	}
	return res
}

func (m *Map) sortedTiles() []geom.Tripoint {
	return slices.SortedFunc(maps.Keys(m.tiles), func(a, b geom.Tripoint) int {
		if a.Z != b.Z {
			return a.Z - b.Z
		}
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
}

// AddItem drops d at abs. Charges merge into a matching item already lying
// there. It returns the item now holding d's charges.
func (m *Map) AddItem(abs geom.Tripoint, d item.Detached) *item.Item {
	if d.IsEmpty() {
		return item.Null()
	}
	src := d.Item()
	t := m.tileAt(abs)
	if src.CountByCharges() && !src.ReturningTo(t.items.Location()) {
		for _, it := range t.items.Items() {
			if !it.StacksWith(src) {
				continue
			}
			if ok, _ := it.MergeCharges(d, false); ok {
				return it
			}
		}
	}
	t.items.PushBack(d)
	return src
}

// AddItemLocal is AddItem at a bubble-local coordinate, which must be in
// bounds. A rejected handle is returned.
func (m *Map) AddItemLocal(local geom.Tripoint, d item.Detached) (*item.Item, item.Detached, error) {
	if !m.InBounds(local) {
		return item.Null(), d, oops.Code(CodeOutOfBubble).
			With("local", local.String()).
			Wrap(ErrOutOfBubble)
	}
	return m.AddItem(m.GetAbs(local), d), item.Detached{}, nil
}

// RemoveItem takes it off the tile at abs.
func (m *Map) RemoveItem(abs geom.Tripoint, it *item.Item) (item.Detached, error) {
	t, ok := m.tiles[abs]
	if !ok {
		return item.Detached{}, item.NotHeld("tile", it)
	}
	return t.items.Remove(it)
}

// RemoveItemsWith offers every item at abs to fn; see item.Vector.RemoveWith.
func (m *Map) RemoveItemsWith(abs geom.Tripoint, fn func(item.Detached) item.Detached) {
	if t, ok := m.tiles[abs]; ok {
		t.items.RemoveWith(fn)
	}
}

// ClearTile removes every item at abs and returns the handles.
func (m *Map) ClearTile(abs geom.Tripoint) []item.Detached {
	if t, ok := m.tiles[abs]; ok {
		return t.items.Clear()
	}
	return nil
}

// The MapHolder side, used by tile locations.

func (m *Map) HasItemAt(abs geom.Tripoint, it *item.Item) bool {
	t, ok := m.tiles[abs]
	return ok && t.items.Contains(it)
}

func (m *Map) RemoveItemAt(abs geom.Tripoint, it *item.Item) (item.Detached, error) {
	return m.RemoveItem(abs, it)
}

func (m *Map) AddItemAt(abs geom.Tripoint, d item.Detached) (item.Detached, error) {
	m.AddItem(abs, d)
	return item.Detached{}, nil
}

func (m *Map) HasConstructionItem(abs geom.Tripoint, it *item.Item) bool {
	t, ok := m.tiles[abs]
	return ok && t.site.Contains(it)
}

// Destroy destroys every item on the map.
func (m *Map) Destroy() {
	for _, t := range m.tiles {
		t.items.Destroy()
		t.site.Destroy()
	}
	clear(m.tiles)
}
