// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

func spawnInto(a *Arena, v *Vector, types ...*Type) []*Item {
	res := make([]*Item, 0, len(types))
	for _, t := range types {
		d := a.Spawn(t)
		res = append(res, d.Item())
		v.PushBack(d)
	}
	return res
}

func TestVector_PushBackAndInsert(t *testing.T) {
	a, _ := newTestArena(t)
	v := newFakeMap(10).tile(geom.Zero)
	items := spawnInto(a, v, rockType, bagType)

	d := a.Spawn(waterType)
	water := d.Item()
	v.Insert(1, d)

	assert.Equal(t, []*Item{items[0], water, items[1]}, v.Items())
	assert.Equal(t, 1, v.Index(water))
	for _, it := range v.Items() {
		assert.Equal(t, v.Location(), it.Location())
	}

	v.Insert(99, a.Spawn(rockType))
	assert.Equal(t, 4, v.Len())
}

func TestVector_Erase(t *testing.T) {
	a, _ := newTestArena(t)
	v := newFakeMap(10).tile(geom.Zero)
	items := spawnInto(a, v, rockType, bagType, waterType)

	d, err := v.Erase(1)
	require.NoError(t, err)

	assert.True(t, d.Is(items[1]))
	assert.True(t, items[1].IsDetached())
	assert.Equal(t, []*Item{items[0], items[2]}, v.Items())

	_, err = v.Erase(5)
	errutil.AssertErrorCode(t, err, CodeNotHeld)
	d.Destroy()
}

func TestVector_RemoveNotHeld(t *testing.T) {
	a, _ := newTestArena(t)
	m := newFakeMap(10)
	other := spawnInto(a, m.tile(geom.Tripoint{X: 1}), rockType)

	_, err := m.tile(geom.Zero).Remove(other[0])

	assert.ErrorIs(t, err, ErrNotHeld)
	errutil.AssertErrorContext(t, err, "item_id", other[0].IDString())
	assert.Equal(t, 1, m.tile(geom.Tripoint{X: 1}).Len())
}

func TestVector_RemoveWith(t *testing.T) {
	a, _ := newTestArena(t)
	v := newFakeMap(10).tile(geom.Zero)
	items := spawnInto(a, v, rockType, bagType, rockType, waterType)

	var taken []Detached
	v.RemoveWith(func(d Detached) Detached {
		if d.Item().Type() == rockType {
			taken = append(taken, d)
			return Detached{}
		}
		return d
	})

	assert.Equal(t, []*Item{items[1], items[3]}, v.Items())
	require.Len(t, taken, 2)
	assert.True(t, taken[0].Is(items[0]))
	assert.True(t, taken[1].Is(items[2]))
	for _, d := range taken {
		d.Destroy()
	}
	assert.Empty(t, a.Audit())
}

func TestVector_Clear(t *testing.T) {
	a, _ := newTestArena(t)
	v := newFakeMap(10).tile(geom.Zero)
	items := spawnInto(a, v, rockType, bagType)

	ds := v.Clear()

	assert.True(t, v.Empty())
	require.Len(t, ds, 2)
	for i, d := range ds {
		assert.True(t, d.Is(items[i]))
		d.Destroy()
	}
	assert.Zero(t, a.Live())
}

func TestVector_Destroy(t *testing.T) {
	a, _ := newTestArena(t)
	v := newFakeMap(10).tile(geom.Zero)
	spawnInto(a, v, rockType, bagType)

	v.Destroy()

	assert.True(t, v.Empty())
	assert.Zero(t, a.Live())
	assert.Equal(t, 2, a.Destroyed())
}
