// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package inventory_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/internal/inventory"
	"github.com/cataclysmbn/bnengine/internal/item"
	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

var (
	rockType  = &item.Type{ID: "rock", Name: "rock", VolumeML: 500, WeightG: 600}
	ragType   = &item.Type{ID: "rag", Name: "rag", VolumeML: 250, WeightG: 80}
	knifeType = &item.Type{ID: "knife", Name: "knife", VolumeML: 250, WeightG: 200, Qualities: map[string]int{"CUT": 2}}
	bagType   = &item.Type{ID: "bag", Name: "plastic bag", VolumeML: 100, WeightG: 10}
	arrowType = &item.Type{ID: "arrow", Name: "arrow", CountByCharges: true, StackSize: 10, DefaultCharges: 10, VolumeML: 500, WeightG: 30}
	ammo9mm   = &item.Type{ID: "ammo_9mm", Name: "9mm", CountByCharges: true, StackSize: 50, VolumeML: 250, WeightG: 8}
	ammo45    = &item.Type{ID: "ammo_45", Name: ".45 ACP", CountByCharges: true, StackSize: 50, VolumeML: 250, WeightG: 15}
)

var errNoLayer = errors.New("carrier has no such layer")

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newArena(t *testing.T) (*item.Arena, *errutil.Recorder) {
	t.Helper()
	rec := &errutil.Recorder{}
	r := rec.Reporter()
	r.Logger = quietLogger()
	return item.NewArena(item.WithReporter(r), item.WithLogger(quietLogger())), rec
}

func newInventory(t *testing.T, opts ...inventory.Option) (*inventory.Inventory, *errutil.Recorder) {
	t.Helper()
	rec := &errutil.Recorder{}
	r := rec.Reporter()
	r.Logger = quietLogger()
	base := []inventory.Option{inventory.WithReporter(r), inventory.WithLogger(quietLogger())}
	return inventory.New(append(base, opts...)...), rec
}

// spawn creates items that stay detached; a plain Inventory only indexes.
func spawn(a *item.Arena, types ...*item.Type) []*item.Item {
	res := make([]*item.Item, 0, len(types))
	for _, t := range types {
		res = append(res, a.Spawn(t).Item())
	}
	return res
}

// carrier is a character that only has a carried inventory.
type carrier struct {
	inv *inventory.Located
}

func newCarrier(t *testing.T, opts ...inventory.Option) (*carrier, *errutil.Recorder) {
	t.Helper()
	rec := &errutil.Recorder{}
	r := rec.Reporter()
	r.Logger = quietLogger()
	c := &carrier{}
	base := []inventory.Option{inventory.WithReporter(r), inventory.WithLogger(quietLogger())}
	c.inv = inventory.NewLocated(item.NewCharacterLocation(c), append(base, opts...)...)
	return c, rec
}

func (c *carrier) Pos() geom.Tripoint                                 { return geom.Zero }
func (c *carrier) Name() string                                       { return "Joe" }
func (c *carrier) IsLoaded() bool                                     { return true }
func (c *carrier) Carries(it *item.Item) bool                         { return c.inv.Has(it) }
func (c *carrier) RemoveCarried(it *item.Item) (item.Detached, error) { return c.inv.RemoveItem(it) }
func (c *carrier) Wears(*item.Item) bool                              { return false }
func (c *carrier) RemoveWorn(*item.Item) (item.Detached, error)       { return item.Detached{}, errNoLayer }
func (c *carrier) AddWorn(d item.Detached) (item.Detached, error)     { return d, errNoLayer }
func (c *carrier) Wields(*item.Item) bool                             { return false }
func (c *carrier) RemoveWielded(*item.Item) (item.Detached, error)    { return item.Detached{}, errNoLayer }
func (c *carrier) SetWielded(d item.Detached) (item.Detached, error)  { return d, errNoLayer }
func (c *carrier) Parents(it *item.Item) []*item.Item                 { return it.Parents() }

func (c *carrier) AddCarried(d item.Detached) (item.Detached, error) {
	c.inv.AddItem(d, false, true, true)
	return item.Detached{}, nil
}

// give spawns items straight into the carrier.
func (c *carrier) give(a *item.Arena, types ...*item.Type) []*item.Item {
	res := make([]*item.Item, 0, len(types))
	for _, t := range types {
		res = append(res, c.inv.AddItem(a.Spawn(t), false, true, true))
	}
	return res
}

// letters returns the letter of every item, stack by stack.
func letters(stacks [][]*item.Item) [][]rune {
	res := make([][]rune, len(stacks))
	for i, s := range stacks {
		for _, it := range s {
			res[i] = append(res[i], it.Invlet)
		}
	}
	return res
}
