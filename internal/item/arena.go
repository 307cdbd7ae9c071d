// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"crypto/rand"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

var defaultReporter = &errutil.Reporter{OnReport: RecordViolation}

// Arena creates items and keeps the registry of every live item it made.
// It is the backstop for items dropped while detached: Sweep destroys and
// reports them. An Arena is not safe for concurrent use; the game mutates
// items from a single goroutine.
type Arena struct {
	live       map[ulid.ULID]*Item
	nCreated   int
	nDestroyed int

	entropy   io.Reader
	clock     func() time.Time
	reporter  *errutil.Reporter
	observers []Observer
}

// Option configures an Arena.
type Option func(*Arena)

// WithLogger sets the logger used for reported violations.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) {
		a.reporter = &errutil.Reporter{Logger: l, OnReport: a.reporter.OnReport}
	}
}

// WithReporter replaces the debug channel. Metrics are still recorded.
func WithReporter(r *errutil.Reporter) Option {
	return func(a *Arena) {
		hook := r.OnReport
		a.reporter = &errutil.Reporter{
			Logger: r.Logger,
			OnReport: func(code string) {
				RecordViolation(code)
				if hook != nil {
					hook(code)
				}
			},
		}
	}
}

// WithClock sets the clock used for item birthdays and ids.
func WithClock(clock func() time.Time) Option {
	return func(a *Arena) { a.clock = clock }
}

// WithEntropy sets the randomness source for ids.
func WithEntropy(r io.Reader) Option {
	return func(a *Arena) { a.entropy = ulid.Monotonic(r, 0) }
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(a *Arena) { a.observers = append(a.observers, o) }
}

// NewArena creates an empty arena.
func NewArena(opts ...Option) *Arena {
	a := &Arena{
		live:     make(map[ulid.ULID]*Item),
		entropy:  ulid.Monotonic(rand.Reader, 0),
		clock:    time.Now,
		reporter: defaultReporter,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Observe registers an observer after construction.
func (a *Arena) Observe(o Observer) {
	a.observers = append(a.observers, o)
}

// Report sends err through the arena's debug channel and returns it.
func (a *Arena) Report(msg string, err error) error {
	return a.reporter.Report(msg, err)
}

// Now returns the arena clock's current time.
func (a *Arena) Now() time.Time { return a.clock() }

// SpawnOption configures a spawned item.
type SpawnOption func(*Item)

// WithCharges sets the initial charges.
func WithCharges(n int) SpawnOption {
	return func(it *Item) { it.Charges = n }
}

// WithBirthday sets the creation time.
func WithBirthday(t time.Time) SpawnOption {
	return func(it *Item) { it.Birthday = t }
}

// WithID sets the instance id, used when restoring saved items.
func WithID(id ulid.ULID) SpawnOption {
	return func(it *Item) { it.id = id }
}

// Spawn creates a new item of type t. New items always start detached.
func (a *Arena) Spawn(t *Type, opts ...SpawnOption) Detached {
	return newDetached(a.spawn(t, opts...))
}

// SpawnTemporary creates an item bound to the template location, for
// previews that never become part of the world. Temporaries are destroyed
// by the next Sweep.
func (a *Arena) SpawnTemporary(t *Type, opts ...SpawnOption) *Item {
	it := a.spawn(t, opts...)
	it.loc = nowhere
	return it
}

func (a *Arena) spawn(t *Type, opts ...SpawnOption) *Item {
	now := a.clock()
	it := newItem(a, ulid.MustNew(ulid.Timestamp(now), a.entropy), t)
	it.Birthday = now
	it.Charges = t.DefaultCharges
	if t.CountByCharges && it.Charges <= 0 {
		it.Charges = 1
	}
	for _, opt := range opts {
		opt(it)
	}
	a.live[it.id] = it
	a.nCreated++
	LiveItems.Inc()
	return it
}

// Lookup returns the live item with id.
func (a *Arena) Lookup(id ulid.ULID) (*Item, bool) {
	it, ok := a.live[id]
	return it, ok
}

// Live returns the number of live items.
func (a *Arena) Live() int { return len(a.live) }

// Created returns the number of items ever created.
func (a *Arena) Created() int { return a.nCreated }

// Destroyed returns the number of items destroyed.
func (a *Arena) Destroyed() int { return a.nDestroyed }

// Items returns the live items ordered by id.
func (a *Arena) Items() []*Item {
	res := make([]*Item, 0, len(a.live))
	for _, it := range a.live {
		res = append(res, it)
	}
	slices.SortFunc(res, func(x, y *Item) int { return x.id.Compare(y.id) })
	return res
}

// Sweep destroys temporaries and every item that is neither held by a
// location nor in the middle of AttemptDetach. Each leaked item is
// reported. It returns the number of leaked items.
func (a *Arena) Sweep() int {
	leaked := 0
	for _, it := range a.Items() {
		if it.destroyed {
			continue
		}
		switch {
		case it.loc == nowhere:
			it.Destroy()
		case it.loc == nil && it.savedLoc == nil:
			leaked++
			_ = a.reporter.Report("sweep", oops.Code(CodeDetachedLeak).
				With("item_id", it.IDString()).
				With("item_type", it.TypeID()).
				With("held", it.handle != nil).
				Wrap(ErrDetachedLeak))
			it.Destroy()
		}
	}
	return leaked
}

// Occupied is an owning container that can be audited, a Slot or a Vector.
type Occupied interface {
	Location() Location
	Occupants() []*Item
}

// Audit checks that every live item is claimed by exactly one owner: the
// location it points at, a handle, or an AttemptDetach in progress. It also
// checks that no container still references a destroyed item. The contents
// and components of live items are always walked; containers kept outside
// the package, such as a vehicle's base slots, are passed as holders.
func (a *Arena) Audit(holders ...Occupied) []error {
	var errs []error
	walk := func(h Occupied) {
		for _, o := range h.Occupants() {
			if o.destroyed {
				errs = append(errs, oops.Code(CodeDestroyed).
					With("item_id", o.IDString()).
					With("location", h.Location().Variant().String()).
					Wrap(ErrDestroyed))
			}
		}
	}
	for _, h := range holders {
		walk(h)
	}
	for _, it := range a.Items() {
		walk(&it.contents)
		walk(&it.components)
		owners := 0
		if it.loc != nil {
			owners++
			if !it.loc.CheckForCorruption(it) {
				errs = append(errs, oops.Code(CodeNotHeld).
					With("item_id", it.IDString()).
					With("location", it.loc.Variant().String()).
					Wrap(ErrNotHeld))
			}
		}
		if it.handle != nil {
			owners++
		}
		if it.savedLoc != nil && it.handle == nil {
			owners++
		}
		if owners != 1 {
			errs = append(errs, oops.Code(CodeNotHeld).
				With("item_id", it.IDString()).
				With("owners", owners).
				Errorf("item has %d owners", owners))
		}
	}
	return errs
}

// ProcessTurn advances rot on every loaded item by dt and sweeps leaks. It
// returns the items that went bad during this turn.
func (a *Arena) ProcessTurn(dt time.Duration) []*Item {
	var spoiled []*Item
	for _, it := range a.Items() {
		if it.destroyed || !it.typ.Rots() || it.loc == nil || it.loc == nowhere {
			continue
		}
		if !it.IsLoaded() {
			continue
		}
		wasBad := it.GoesBad()
		it.Rot += dt
		if !wasBad && it.GoesBad() {
			spoiled = append(spoiled, it)
		}
	}
	a.Sweep()
	return spoiled
}

func (a *Arena) attached(it *Item, loc Location) {
	a.each(func(o Observer) { o.OnAttach(it, loc) })
}

func (a *Arena) forget(it *Item) {
	if a == nil {
		return
	}
	if _, ok := a.live[it.id]; ok {
		delete(a.live, it.id)
		a.nDestroyed++
		LiveItems.Dec()
		DestroyedItems.Inc()
	}
	a.each(func(o Observer) { o.OnDestroy(it) })
}

func (a *Arena) each(fn func(Observer)) {
	if a == nil {
		return
	}
	for _, o := range a.observers {
		fn(o)
	}
}
