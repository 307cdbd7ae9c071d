// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package gamemap

import (
	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/internal/item"
)

// AddPartialConstruction sinks components into an unfinished construction
// at abs. Once there they cannot be moved by item code; only cancelling or
// completing the construction releases them.
func (m *Map) AddPartialConstruction(abs geom.Tripoint, components ...item.Detached) {
	site := m.tileAt(abs).site
	for _, d := range components {
		site.PushBack(d)
	}
}

// ConstructionItems returns the components of the construction at abs.
func (m *Map) ConstructionItems(abs geom.Tripoint) []*item.Item {
	if t, ok := m.tiles[abs]; ok {
		return t.site.Items()
	}
	return nil
}

// CancelConstruction gives the components at abs back and drops them on
// the tile.
func (m *Map) CancelConstruction(abs geom.Tripoint) {
	t, ok := m.tiles[abs]
	if !ok {
		return
	}
	for _, d := range t.site.Clear() {
		m.AddItem(abs, d)
	}
}

// CompleteConstruction uses up the components at abs.
func (m *Map) CompleteConstruction(abs geom.Tripoint) {
	if t, ok := m.tiles[abs]; ok {
		for _, d := range t.site.Clear() {
			d.Destroy()
		}
	}
}
