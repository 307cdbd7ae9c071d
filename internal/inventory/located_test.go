// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package inventory_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataclysmbn/bnengine/internal/item"
)

func TestLocated_AddItemMergesCharges(t *testing.T) {
	a, arec := newArena(t)
	c, rec := newCarrier(t)
	first := c.inv.AddItem(a.Spawn(arrowType), false, true, true)

	d := a.Spawn(arrowType, item.WithCharges(5))
	src := d.Item()
	got := c.inv.AddItem(d, false, true, true)

	assert.Same(t, first, got)
	assert.Equal(t, 15, first.Charges)
	assert.True(t, src.IsDestroyed())
	assert.True(t, d.IsEmpty())
	assert.Equal(t, 1, c.inv.Size())
	assert.Len(t, c.inv.Stack(0), 1)
	assert.Empty(t, a.Audit())
	assert.Empty(t, arec.Codes)
	assert.Empty(t, rec.Codes)
}

func TestLocated_PushBackKeepsItemsApart(t *testing.T) {
	a, _ := newArena(t)
	c, _ := newCarrier(t)

	first := c.inv.PushBack(a.Spawn(arrowType))
	second := c.inv.PushBack(a.Spawn(arrowType, item.WithCharges(5)))

	assert.Equal(t, []*item.Item{first, second}, c.inv.Stack(0))
	assert.Equal(t, 10, first.Charges)
	assert.Equal(t, 5, second.Charges)
	assert.Equal(t, c.inv.Location(), second.Location())
	assert.Empty(t, a.Audit())
}

func TestLocated_AddEmptyHandle(t *testing.T) {
	c, _ := newCarrier(t)

	got := c.inv.AddItem(item.Detached{}, false, true, true)

	assert.True(t, got.IsNull())
	assert.Zero(t, c.inv.Size())
}

func TestLocated_DetachGoesThroughInventory(t *testing.T) {
	a, _ := newArena(t)
	c, _ := newCarrier(t)
	items := c.give(a, rockType, ragType)

	d, err := items[0].Detach()

	require.NoError(t, err)
	assert.True(t, d.Is(items[0]))
	assert.True(t, items[0].IsDetached())
	assert.False(t, c.inv.Has(items[0]))
	assert.Equal(t, []*item.Item{items[1]}, c.inv.Dump())
	assert.Empty(t, a.Audit())
	d.Destroy()
}

func TestLocated_DestroyRemovesFromInventory(t *testing.T) {
	a, _ := newArena(t)
	c, _ := newCarrier(t)
	rock := c.give(a, rockType)[0]

	rock.Destroy()

	assert.Zero(t, c.inv.Size())
	assert.Zero(t, a.Live())
}

func TestLocated_RemoveItemNotHeld(t *testing.T) {
	a, _ := newArena(t)
	c, rec := newCarrier(t)
	stranger := a.Spawn(rockType)

	d, err := c.inv.RemoveItem(stranger.Item())

	assert.ErrorIs(t, err, item.ErrNotHeld)
	assert.True(t, d.IsEmpty())
	assert.Equal(t, []string{item.CodeNotHeld}, rec.Codes)
	stranger.Destroy()
}

func TestLocated_AttemptDetach(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(a *item.Arena) func(item.Detached) item.Detached
		left   []string
		rockOK bool
	}{
		{
			name:   "handed back",
			fn:     func(*item.Arena) func(item.Detached) item.Detached { return func(d item.Detached) item.Detached { return d } },
			left:   []string{"rag", "rock", "knife"},
			rockOK: true,
		},
		{
			name: "consumed",
			fn: func(*item.Arena) func(item.Detached) item.Detached {
				return func(d item.Detached) item.Detached {
					d.Destroy()
					return item.Detached{}
				}
			},
			left: []string{"rag", "knife"},
		},
		{
			name: "replaced",
			fn: func(a *item.Arena) func(item.Detached) item.Detached {
				return func(d item.Detached) item.Detached {
					d.Destroy()
					return a.Spawn(bagType)
				}
			},
			left: []string{"rag", "knife", "bag"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, arec := newArena(t)
			c, rec := newCarrier(t)
			items := c.give(a, ragType, rockType, knifeType)
			rock := items[1]

			require.NoError(t, rock.AttemptDetach(tt.fn(a)))

			var left []string
			for _, it := range c.inv.Dump() {
				left = append(left, it.TypeID())
			}
			assert.Equal(t, tt.left, left)
			assert.Equal(t, tt.rockOK, !rock.IsDestroyed())
			if tt.rockOK {
				assert.Equal(t, 'b', rock.Invlet)
				assert.Equal(t, c.inv.Location(), rock.Location())
			}
			assert.Empty(t, a.Audit())
			assert.Empty(t, arec.Codes)
			assert.Empty(t, rec.Codes)
		})
	}
}

func TestLocated_RemoveWithMovesItems(t *testing.T) {
	a, _ := newArena(t)
	c, _ := newCarrier(t)
	other, _ := newCarrier(t)
	c.give(a, rockType, ragType, rockType, knifeType)

	c.inv.RemoveWith(func(d item.Detached) item.Detached {
		if d.Item().TypeID() != "rock" {
			return d
		}
		other.inv.AddItem(d, false, true, true)
		return item.Detached{}
	})

	assert.Equal(t, 2, c.inv.Size())
	assert.Equal(t, 1, other.inv.Size())
	assert.Len(t, other.inv.Stack(0), 2)
	for _, it := range other.inv.Dump() {
		assert.Equal(t, other.inv.Location(), it.Location())
	}
	assert.Empty(t, a.Audit())
}

func TestLocated_RestackMergesCharges(t *testing.T) {
	a, _ := newArena(t)
	c, _ := newCarrier(t)
	first := c.inv.AddItem(a.Spawn(arrowType), false, true, false)
	second := c.inv.AddItem(a.Spawn(arrowType, item.WithCharges(5)), false, true, false)
	require.Equal(t, 2, c.inv.Size())

	c.inv.Restack(nil)

	assert.Equal(t, 1, c.inv.Size())
	assert.Equal(t, []*item.Item{first}, c.inv.Stack(0))
	assert.Equal(t, 15, first.Charges)
	assert.True(t, second.IsDestroyed())
	assert.Equal(t, 1, a.Live())
	assert.Empty(t, a.Audit())
}

func TestLocated_ReduceStack(t *testing.T) {
	a, _ := newArena(t)
	c, _ := newCarrier(t)
	c.give(a, rockType, rockType, rockType)

	ds, err := c.inv.ReduceStack(0, 2)

	require.NoError(t, err)
	require.Len(t, ds, 2)
	for _, d := range ds {
		assert.True(t, d.Item().IsDetached())
		d.Destroy()
	}
	assert.Len(t, c.inv.Stack(0), 1)
	assert.Empty(t, a.Audit())

	_, err = c.inv.ReduceStack(5, 1)
	assert.Error(t, err)
}

func TestLocated_UseAmount(t *testing.T) {
	a, _ := newArena(t)
	c, _ := newCarrier(t)
	arrows := c.give(a, arrowType, arrowType)[0]
	c.give(a, rockType, rockType, rockType)
	require.Equal(t, 20, arrows.Charges)

	got := c.inv.UseAmount("arrow", 5, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Item().Charges)
	assert.Equal(t, 15, arrows.Charges)

	got = append(got, c.inv.UseAmount("rock", 2, nil)...)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, c.inv.CountItem("rock"))

	none := c.inv.UseAmount("rock", 1, func(*item.Item) bool { return false })
	assert.Empty(t, none)

	for _, d := range got {
		d.Destroy()
	}
	assert.Empty(t, a.Audit())
}

func TestLocated_RemoveRandomlyByVolume(t *testing.T) {
	a, _ := newArena(t)
	c, _ := newCarrier(t)
	c.give(a, rockType, rockType, rockType, rockType)

	got := c.inv.RemoveRandomlyByVolume(1000, rand.New(rand.NewPCG(1, 2)))

	assert.Len(t, got, 2)
	assert.Len(t, c.inv.Dump(), 2)
	for _, d := range got {
		d.Destroy()
	}

	got = c.inv.RemoveRandomlyByVolume(10_000, rand.New(rand.NewPCG(1, 2)))
	assert.Len(t, got, 2, "stops once the inventory is empty")
	assert.Zero(t, c.inv.Size())
	for _, d := range got {
		d.Destroy()
	}
}

func TestLocated_DumpRemoveAndClear(t *testing.T) {
	a, _ := newArena(t)
	c, _ := newCarrier(t)
	items := c.give(a, rockType, ragType)

	ds := c.inv.DumpRemove()

	require.Len(t, ds, 2)
	assert.Zero(t, c.inv.Size())
	for i, d := range ds {
		assert.True(t, d.Is(items[i]))
		c.inv.PushBack(d)
	}
	require.Equal(t, 2, c.inv.Size())

	c.inv.Clear()

	assert.Zero(t, c.inv.Size())
	assert.True(t, items[0].IsDestroyed())
	assert.True(t, items[1].IsDestroyed())
	assert.Zero(t, a.Live())
}

func TestLocated_MoveFrom(t *testing.T) {
	a, _ := newArena(t)
	c, _ := newCarrier(t)
	other, _ := newCarrier(t)
	old := c.give(a, rockType)[0]
	moved := other.give(a, ragType, knifeType)

	c.inv.MoveFrom(other.inv)

	assert.True(t, old.IsDestroyed())
	assert.Equal(t, moved, c.inv.Dump())
	assert.Equal(t, [][]rune{{'a'}, {'b'}}, letters(c.inv.Slice()))
	assert.Zero(t, other.inv.Size())
	for _, it := range moved {
		assert.Equal(t, c.inv.Location(), it.Location())
	}
	assert.Empty(t, a.Audit())
}

func TestLocated_RestackIdempotent(t *testing.T) {
	types := []*item.Type{rockType, ragType, arrowType}
	for seed := range uint64(30) {
		rng := rand.New(rand.NewPCG(seed, 17))
		a, arec := newArena(t)
		c, _ := newCarrier(t)

		charges := 0
		for range 5 + rng.IntN(15) {
			typ := types[rng.IntN(len(types))]
			d := a.Spawn(typ, item.WithCharges(1+rng.IntN(5)))
			d.Item().Damage = rng.IntN(2)
			if typ == arrowType {
				charges += d.Item().Charges
			}
			c.inv.AddItem(d, false, true, rng.IntN(2) == 0)
		}
		for _, it := range c.inv.Dump() {
			if rng.IntN(5) == 0 {
				it.Damage = 2
			}
		}

		c.inv.Restack(nil)
		once := shapeOf(c.inv.Slice())
		c.inv.Restack(nil)
		twice := shapeOf(c.inv.Slice())

		require.Equal(t, once, twice, "seed %d", seed)
		assert.Equal(t, charges, c.inv.CountItem("arrow"), "seed %d", seed)
		assert.Empty(t, a.Audit(), "seed %d", seed)
		assert.Empty(t, arec.Codes, "seed %d", seed)
	}
}
