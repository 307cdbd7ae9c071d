// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package character_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cataclysmbn/bnengine/internal/character"
	"github.com/cataclysmbn/bnengine/internal/item"
	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

var (
	rockType   = &item.Type{ID: "rock", Name: "rock", VolumeML: 500, WeightG: 600}
	knifeType  = &item.Type{ID: "knife", Name: "knife", VolumeML: 250, WeightG: 200}
	bagType    = &item.Type{ID: "bag", Name: "plastic bag", VolumeML: 100, WeightG: 10}
	arrowType  = &item.Type{ID: "arrow", Name: "arrow", CountByCharges: true, StackSize: 10, VolumeML: 500, WeightG: 30}
	jacketType = &item.Type{ID: "jacket", Name: "jacket", VolumeML: 1500, WeightG: 900, Flags: []string{character.FlagWearable}}
)

// hookCounter counts semantic hook calls by kind.
type hookCounter struct {
	item.NopObserver
	calls map[string]int
}

func (h *hookCounter) OnWear(*item.Item, item.CharacterHolder)    { h.calls["wear"]++ }
func (h *hookCounter) OnTakeoff(*item.Item, item.CharacterHolder) { h.calls["takeoff"]++ }
func (h *hookCounter) OnWield(*item.Item, item.CharacterHolder)   { h.calls["wield"]++ }
func (h *hookCounter) OnPickup(*item.Item, item.CharacterHolder)  { h.calls["pickup"]++ }

type fixture struct {
	a     *item.Arena
	c     *character.Character
	rec   *errutil.Recorder
	hooks *hookCounter
}

func newFixture(t *testing.T, opts ...character.Option) *fixture {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := &errutil.Recorder{}
	r := rec.Reporter()
	r.Logger = quiet
	hooks := &hookCounter{calls: map[string]int{}}
	a := item.NewArena(item.WithReporter(r), item.WithLogger(quiet), item.WithObserver(hooks))
	base := []character.Option{character.WithLogger(quiet), character.WithReporter(r)}
	c := character.New("Joe", append(base, opts...)...)
	t.Cleanup(func() {
		assert.Empty(t, a.Audit())
	})
	return &fixture{a: a, c: c, rec: rec, hooks: hooks}
}

func TestCharacter_AddAndRemove(t *testing.T) {
	f := newFixture(t)
	rock := f.c.AddItem(f.a.Spawn(rockType))

	assert.True(t, f.c.Carries(rock))
	assert.True(t, f.c.Has(rock))
	assert.Equal(t, item.VariantCharacterInventory, rock.Location().Variant())
	assert.Equal(t, item.WhereCharacter, rock.Where())

	d, err := f.c.RemoveItem(rock)
	require.NoError(t, err)
	assert.True(t, d.Is(rock))
	assert.False(t, f.c.Has(rock))
	assert.Zero(t, f.c.Inventory().Size())
	d.Destroy()
	assert.Empty(t, f.rec.Codes)
}

func TestCharacter_RemoveNestedItem(t *testing.T) {
	f := newFixture(t)
	bag := f.c.AddItem(f.a.Spawn(bagType))
	rockD := f.a.Spawn(rockType)
	rock := rockD.Item()
	_, err := bag.PutIn(rockD)
	require.NoError(t, err)
	require.True(t, f.c.Has(rock))

	d, err := f.c.RemoveItem(rock)

	require.NoError(t, err)
	assert.True(t, d.Is(rock))
	assert.True(t, bag.IsContainerEmpty())
	assert.True(t, f.c.Carries(bag))
	d.Destroy()
}

func TestCharacter_RemoveItemNotHeld(t *testing.T) {
	f := newFixture(t)
	stranger := f.a.Spawn(rockType)

	d, err := f.c.RemoveItem(stranger.Item())

	assert.ErrorIs(t, err, item.ErrNotHeld)
	assert.True(t, d.IsEmpty())
	assert.Equal(t, []string{item.CodeNotHeld}, f.rec.Codes)
	stranger.Destroy()
}

func TestCharacter_WearAndTakeOff(t *testing.T) {
	f := newFixture(t)
	jacket := f.c.AddItem(f.a.Spawn(jacketType))

	require.NoError(t, f.c.WearItem(jacket))

	assert.True(t, f.c.Wears(jacket))
	assert.False(t, f.c.Carries(jacket))
	assert.Equal(t, []*item.Item{jacket}, f.c.Worn())
	assert.Equal(t, "worn", jacket.Describe(f.c))
	assert.Equal(t, "Joe", jacket.Describe(character.New("Sam")))
	assert.Equal(t, 1, f.hooks.calls["wear"])

	require.NoError(t, f.c.TakeOff(jacket))

	assert.True(t, f.c.Carries(jacket))
	assert.Empty(t, f.c.Worn())
	assert.Equal(t, 1, f.hooks.calls["takeoff"])
}

func TestCharacter_WearRefused(t *testing.T) {
	f := newFixture(t)
	rock := f.c.AddItem(f.a.Spawn(rockType))

	err := f.c.WearItem(rock)

	errutil.AssertErrorCode(t, err, character.CodeNotWearable)
	assert.ErrorIs(t, err, character.ErrNotWearable)
	assert.True(t, f.c.Carries(rock))
	assert.Equal(t, 'a', rock.Invlet)
	assert.Zero(t, f.hooks.calls["wear"])
}

func TestCharacter_TakeOffNotWorn(t *testing.T) {
	f := newFixture(t)
	rock := f.c.AddItem(f.a.Spawn(rockType))

	err := f.c.TakeOff(rock)

	assert.ErrorIs(t, err, item.ErrNotHeld)
	assert.Equal(t, []string{item.CodeNotHeld}, f.rec.Codes)
}

func TestCharacter_Wield(t *testing.T) {
	f := newFixture(t)
	knife := f.c.AddItem(f.a.Spawn(knifeType))
	rock := f.c.AddItem(f.a.Spawn(rockType))

	require.NoError(t, f.c.WieldItem(knife))
	assert.Same(t, knife, f.c.Wielded())
	assert.False(t, f.c.Carries(knife))
	assert.Equal(t, "wield", knife.Describe(f.c))

	require.NoError(t, f.c.WieldItem(rock))
	assert.Same(t, rock, f.c.Wielded())
	assert.True(t, f.c.Carries(knife), "the old weapon goes to the inventory")
	assert.Equal(t, 2, f.hooks.calls["wield"])

	require.NoError(t, f.c.WieldItem(rock), "wielding the wielded item is a no-op")
	assert.Same(t, rock, f.c.Wielded())

	got, err := f.c.Unwield()
	require.NoError(t, err)
	assert.Same(t, rock, got)
	assert.True(t, f.c.Wielded().IsNull())

	_, err = f.c.Unwield()
	errutil.AssertErrorCode(t, err, character.CodeNotWielding)
}

func TestCharacter_WieldMergesSameChargesType(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.WieldItem(f.c.AddItem(f.a.Spawn(arrowType, item.WithCharges(3)))))
	stack := f.c.AddItem(f.a.Spawn(arrowType, item.WithCharges(5)))
	require.Equal(t, 1, f.c.Inventory().Size())

	require.NoError(t, f.c.WieldItem(stack))

	assert.Same(t, stack, f.c.Wielded())
	assert.Equal(t, 8, stack.Charges, "the old arrows join the drawn stack")
	assert.Zero(t, f.c.Inventory().Size())
	assert.Equal(t, 1, f.a.Live())
	assert.Empty(t, f.rec.Codes)
}

func TestCharacter_LettersCoverWieldedItem(t *testing.T) {
	f := newFixture(t)
	knife := f.c.AddItem(f.a.Spawn(knifeType))
	require.Equal(t, 'a', knife.Invlet)
	require.NoError(t, f.c.WieldItem(knife))

	rock := f.c.AddItem(f.a.Spawn(rockType))

	assert.Equal(t, 'a', knife.Invlet)
	assert.Equal(t, 'b', rock.Invlet)
	assert.Same(t, knife, f.c.InvletToItem('a'))
	assert.Same(t, rock, f.c.InvletToItem('b'))
	assert.Nil(t, f.c.InvletToItem(0))
	assert.Equal(t, 2, f.c.AllocatedInvlets().Count())
}

func TestCharacter_RestackAvoidsWieldedLetter(t *testing.T) {
	f := newFixture(t)
	rock := f.c.AddItem(f.a.Spawn(rockType))
	knifeD := f.a.Spawn(knifeType)
	knifeD.Item().Invlet = 'a'
	_, err := f.c.Wield(knifeD)
	require.NoError(t, err)

	f.c.RestackInventory()

	assert.Equal(t, 'b', rock.Invlet)
	assert.Equal(t, 'a', f.c.Wielded().Invlet)
}

func TestCharacter_HandlingCost(t *testing.T) {
	f := newFixture(t)
	rock := f.c.AddItem(f.a.Spawn(rockType))

	tests := []struct {
		name        string
		encumbrance int
		effects     bool
		want        int
	}{
		{"no encumbrance", 0, true, 120},
		{"encumbered", 50, true, 180},
		{"effects ignored", 50, false, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.c.Encumbrance = tt.encumbrance
			assert.Equal(t, tt.want, f.c.ItemHandlingCost(rock, 1, tt.effects, item.InventoryHandlingPenalty))
		})
	}

	f.c.Encumbrance = 50
	mv, err := rock.ObtainCost(f.c, 1)
	require.NoError(t, err)
	assert.Equal(t, 180, mv)
}

func TestCharacter_Mission(t *testing.T) {
	f := newFixture(t, character.AsNPC())
	rock := f.c.AddItem(f.a.Spawn(rockType))
	require.True(t, f.c.IsNPC())

	require.NoError(t, f.c.SendOnMission(rock))
	assert.Equal(t, []*item.Item{rock}, f.c.MissionItems())
	assert.Equal(t, item.VariantNPCMission, rock.Location().Variant())
	assert.False(t, f.c.Carries(rock))

	f.c.ReturnFromMission()
	assert.Empty(t, f.c.MissionItems())
	assert.True(t, f.c.Carries(rock))
}

func TestCharacter_MissionNeedsNPC(t *testing.T) {
	f := newFixture(t)
	rock := f.c.AddItem(f.a.Spawn(rockType))

	err := f.c.SendOnMission(rock)

	errutil.AssertErrorCode(t, err, character.CodeNoMissionInventory)
	assert.True(t, f.c.Carries(rock))
	assert.Nil(t, f.c.MissionItems())
}

func TestCharacter_WeightAndDestroy(t *testing.T) {
	f := newFixture(t, character.AsNPC())
	f.c.AddItem(f.a.Spawn(rockType))
	_, err := f.c.Wear(f.a.Spawn(jacketType))
	require.NoError(t, err)
	_, err = f.c.Wield(f.a.Spawn(knifeType))
	require.NoError(t, err)

	assert.Equal(t, 600+900+200, f.c.Weight())

	f.c.Destroy()

	assert.Zero(t, f.a.Live())
	assert.Zero(t, f.c.Weight())
	assert.Zero(t, f.a.Sweep())
}

func TestCharacter_Pickup(t *testing.T) {
	f := newFixture(t)
	other := character.New("Sam", character.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	rock := other.AddItem(f.a.Spawn(rockType))

	got, err := f.c.Pickup(rock)

	require.NoError(t, err)
	assert.Same(t, rock, got)
	assert.True(t, f.c.Carries(rock))
	assert.False(t, other.Carries(rock))
	assert.Equal(t, 1, f.hooks.calls["pickup"])
}
