// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

// Package inventory groups items into letter-addressed stacks and keeps the
// derived caches gameplay code reads from.
//
// Inventory only indexes items that live somewhere else. Located wraps an
// Inventory and owns its items through an item.Location.
package inventory

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/item"
	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

// InvletOwner is the character whose letters an inventory must not clash
// with. Its letters may cover more than the inventory, such as worn and
// wielded items.
type InvletOwner interface {
	// InvletToItem returns the item addressed by r, or nil.
	InvletToItem(r rune) *item.Item
	// AllocatedInvlets returns every letter in use.
	AllocatedInvlets() Invlets
}

// Option configures an Inventory.
type Option func(*Inventory)

// WithOwner sets the default letter owner. Without one the inventory only
// avoids clashes with itself.
func WithOwner(o InvletOwner) Option {
	return func(inv *Inventory) { inv.owner = o }
}

// WithAutoAssign sets the automatic letter assignment policy.
func WithAutoAssign(p AutoAssign) Option {
	return func(inv *Inventory) { inv.policy = p }
}

// WithBoundKeys lists keys that are never assigned automatically.
func WithBoundKeys(keys string) Option {
	return func(inv *Inventory) { inv.bound = []rune(keys) }
}

// WithFavorites seeds the favorite letter cache.
func WithFavorites(f *Favorites) Option {
	return func(inv *Inventory) { inv.favorites = f }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(inv *Inventory) { inv.logger = l }
}

// WithReporter sets the channel consistency violations are reported to.
func WithReporter(r *errutil.Reporter) Option {
	return func(inv *Inventory) { inv.reporter = r }
}

// Inventory is an ordered list of stacks. Every stack holds at least one
// item, and all items of a stack share the letter of its first item.
type Inventory struct {
	stacks [][]*item.Item

	favorites *Favorites
	assigned  map[rune]string
	owner     InvletOwner
	policy    AutoAssign
	bound     []rune

	binned      map[string][]*item.Item
	binnedOK    bool
	typeCache   map[string][]int
	typeCacheOK bool
	quality     map[string]map[int]int

	// absorb may fold it into head while restacking. It reports whether it
	// is gone.
	absorb func(head, it *item.Item) bool

	logger   *slog.Logger
	reporter *errutil.Reporter
}

// New creates an empty inventory.
func New(opts ...Option) *Inventory {
	inv := &Inventory{
		assigned: map[rune]string{},
		policy:   AutoAssignEnabled,
	}
	for _, opt := range opts {
		opt(inv)
	}
	if inv.logger == nil {
		inv.logger = slog.Default()
	}
	if inv.favorites == nil {
		inv.favorites, _ = NewFavorites(nil)
	}
	if inv.reporter == nil {
		inv.reporter = &errutil.Reporter{Logger: inv.logger, OnReport: item.RecordViolation}
	}
	return inv
}

func (inv *Inventory) ownerOr(o InvletOwner) InvletOwner {
	switch {
	case o != nil:
		return o
	case inv.owner != nil:
		return inv.owner
	default:
		return inv
	}
}

func (inv *Inventory) invalidate() {
	inv.binnedOK = false
	inv.typeCacheOK = false
}

// Unsort drops the binned and type caches.
func (inv *Inventory) Unsort() { inv.invalidate() }

// Clear forgets every stack.
func (inv *Inventory) Clear() {
	inv.stacks = nil
	inv.invalidate()
}

// Size returns the number of stacks.
func (inv *Inventory) Size() int { return len(inv.stacks) }

// Stack returns a copy of the stack at pos, or nil.
func (inv *Inventory) Stack(pos int) []*item.Item {
	if pos < 0 || pos >= len(inv.stacks) {
		return nil
	}
	return slices.Clone(inv.stacks[pos])
}

// Slice returns a copy of every stack.
func (inv *Inventory) Slice() [][]*item.Item {
	res := make([][]*item.Item, len(inv.stacks))
	for i, s := range inv.stacks {
		res[i] = slices.Clone(s)
	}
	return res
}

// Has reports whether it is a member of a stack.
func (inv *Inventory) Has(it *item.Item) bool {
	for _, s := range inv.stacks {
		if slices.Contains(s, it) {
			return true
		}
	}
	return false
}

// Dump returns every item, stack by stack.
func (inv *Inventory) Dump() []*item.Item {
	var res []*item.Item
	for _, s := range inv.stacks {
		res = append(res, s...)
	}
	return res
}

// Favorites returns the favorite letter cache.
func (inv *Inventory) Favorites() *Favorites { return inv.favorites }

// AssignLetter reserves r for items of typeID. Reserved letters are never
// handed to other types.
func (inv *Inventory) AssignLetter(r rune, typeID string) {
	inv.assigned[r] = typeID
}

// UnassignLetter lifts a reservation.
func (inv *Inventory) UnassignLetter(r rune) {
	delete(inv.assigned, r)
}

// AddItem indexes it. With shouldStack it joins the first stack it stacks
// with. keepInvlet leaves its letter alone; otherwise assignInvlet lets the
// inventory pick one.
func (inv *Inventory) AddItem(it *item.Item, keepInvlet, assignInvlet, shouldStack bool) *item.Item {
	return inv.addItem(it, keepInvlet, assignInvlet, shouldStack, inv.ownerOr(nil))
}

// PushBack adds it with the default letter handling.
func (inv *Inventory) PushBack(it *item.Item) *item.Item {
	return inv.AddItem(it, false, true, true)
}

// AddItemKeepInvlet adds it without changing its letter.
func (inv *Inventory) AddItemKeepInvlet(it *item.Item) *item.Item {
	return inv.AddItem(it, true, true, true)
}

func (inv *Inventory) addItem(it *item.Item, keep, assign, shouldStack bool, owner InvletOwner) *item.Item {
	inv.invalidate()
	if shouldStack {
		for i, s := range inv.stacks {
			if s[0].StacksWith(it) {
				inv.join(i, it, keep, assign, owner)
				return it
			}
			inv.evict(s, it, keep, assign, owner)
		}
	}
	inv.newStack(it, keep, assign, owner)
	return it
}

// join appends it to stack i, sharing the stack's letter.
func (inv *Inventory) join(i int, it *item.Item, keep, assign bool, owner InvletOwner) {
	s := inv.stacks[i]
	if s[0].Invlet == 0 {
		if !keep {
			inv.updateInvlet(it, assign, owner)
		}
		inv.remember(it)
		for _, m := range s {
			m.Invlet = it.Invlet
		}
	} else {
		it.Invlet = s[0].Invlet
	}
	inv.stacks[i] = append(s, it)
}

// evict moves stack s off the letter an incoming item insists on keeping.
func (inv *Inventory) evict(s []*item.Item, it *item.Item, keep, assign bool, owner InvletOwner) {
	if !keep || !assign || it.Invlet == 0 || s[0].Invlet != it.Invlet {
		return
	}
	inv.assignEmptyInvlet(s[0], owner, false)
	for _, m := range s[1:] {
		m.Invlet = s[0].Invlet
	}
}

func (inv *Inventory) newStack(it *item.Item, keep, assign bool, owner InvletOwner) {
	if !keep {
		inv.updateInvlet(it, assign, owner)
	}
	inv.remember(it)
	inv.stacks = append(inv.stacks, []*item.Item{it})
}

// remember makes the item's letter a favorite of its type.
func (inv *Inventory) remember(it *item.Item) {
	if it.Invlet != 0 {
		inv.favorites.Set(it.Invlet, it.TypeID())
	}
}

// BuildTypeCache rebuilds the type to stack index.
func (inv *Inventory) BuildTypeCache() {
	inv.typeCache = map[string][]int{}
	for i, s := range inv.stacks {
		id := s[0].TypeID()
		inv.typeCache[id] = append(inv.typeCache[id], i)
	}
	inv.typeCacheOK = true
	CacheRebuilds.WithLabelValues(cacheType).Inc()
}

// TypeCache returns the positions of the stacks of each type. The result
// must not be modified.
func (inv *Inventory) TypeCache() map[string][]int {
	if !inv.typeCacheOK {
		inv.BuildTypeCache()
	}
	return inv.typeCache
}

// AddItemByTypeCache is AddItem that only looks at stacks of the item's
// type. It keeps the type cache valid, so bulk loads can call it in a loop
// after one BuildTypeCache.
func (inv *Inventory) AddItemByTypeCache(it *item.Item, keepInvlet, assignInvlet, shouldStack bool) *item.Item {
	inv.binnedOK = false
	if !inv.typeCacheOK {
		_ = inv.reporter.Report("add item by type cache", oops.
			Code("TYPE_CACHE_STALE").
			With("item_type", it.TypeID()).
			Errorf("type cache used before it was built"))
		inv.BuildTypeCache()
	}
	owner := inv.ownerOr(nil)
	id := it.TypeID()
	if shouldStack {
		for _, i := range inv.typeCache[id] {
			s := inv.stacks[i]
			if s[0].StacksWith(it) {
				inv.join(i, it, keepInvlet, assignInvlet, owner)
				return it
			}
			inv.evict(s, it, keepInvlet, assignInvlet, owner)
		}
	}
	inv.newStack(it, keepInvlet, assignInvlet, owner)
	inv.typeCache[id] = append(inv.typeCache[id], len(inv.stacks)-1)
	return it
}

// Restack restores the stack invariants: every stack has a letter of its
// own, holds only items that stack with its first item, and no two stacks
// could be one. Stacks end up sorted. Running it twice changes nothing the
// second time. A nil owner uses the inventory's default.
func (inv *Inventory) Restack(owner InvletOwner) {
	owner = inv.ownerOr(owner)
	inv.invalidate()

	var peeled []*item.Item
	for idx, s := range inv.stacks {
		head := s[0]
		holder := owner.InvletToItem(head.Invlet)
		if !ValidInvlet(head.Invlet) || (holder != nil && inv.PositionByItem(holder) != idx) {
			inv.assignEmptyInvlet(head, owner, false)
			for _, m := range s[1:] {
				m.Invlet = head.Invlet
			}
		}
		kept := s[:1]
		for _, m := range s[1:] {
			if head.StacksWith(m) {
				kept = append(kept, m)
			} else {
				peeled = append(peeled, m)
			}
		}
		inv.stacks[idx] = kept
	}

	for i := 0; i < len(inv.stacks); i++ {
		for j := i + 1; j < len(inv.stacks); {
			if !inv.stacks[i][0].StacksWith(inv.stacks[j][0]) {
				j++
				continue
			}
			other := inv.stacks[j]
			inv.stacks = slices.Delete(inv.stacks, j, j+1)
			for _, m := range other {
				if inv.absorb == nil || !inv.absorb(inv.stacks[i][0], m) {
					inv.stacks[i] = append(inv.stacks[i], m)
				}
			}
		}
	}

	for _, m := range peeled {
		inv.addItem(m, false, true, true, owner)
	}

	for _, s := range inv.stacks {
		for _, m := range s[1:] {
			m.Invlet = s[0].Invlet
		}
	}
	inv.sortStacks()
}

func (inv *Inventory) sortStacks() {
	slices.SortStableFunc(inv.stacks, func(a, b []*item.Item) int {
		return cmp.Or(
			cmp.Compare(a[0].TypeName(), b[0].TypeName()),
			cmp.Compare(a[0].TypeID(), b[0].TypeID()),
			cmp.Compare(a[0].Invlet, b[0].Invlet),
		)
	})
}

// RemoveItem removes it from its stack. A first item hands its letter to
// the next one. Removing an item that is not indexed is reported and
// returns the null item.
func (inv *Inventory) RemoveItem(it *item.Item) (*item.Item, error) {
	res := inv.RemoveItemsWith(func(x *item.Item) bool { return x == it }, 1)
	if len(res) == 0 {
		return item.Null(), inv.reporter.Report("remove item", item.NotHeld("inventory", it))
	}
	return res[0], nil
}

// RemoveItemsWith removes up to limit items matching pred; limit <= 0
// removes all of them.
func (inv *Inventory) RemoveItemsWith(pred func(*item.Item) bool, limit int) []*item.Item {
	var res []*item.Item
	for i := 0; i < len(inv.stacks) && (limit <= 0 || len(res) < limit); {
		s := inv.stacks[i]
		for j := 0; j < len(s) && (limit <= 0 || len(res) < limit); {
			if !pred(s[j]) {
				j++
				continue
			}
			if j == 0 && len(s) > 1 {
				s[1].Invlet = s[0].Invlet
			}
			res = append(res, s[j])
			s = slices.Delete(s, j, j+1)
		}
		if len(s) == 0 {
			inv.stacks = slices.Delete(inv.stacks, i, i+1)
			continue
		}
		inv.stacks[i] = s
		i++
	}
	if len(res) > 0 {
		inv.invalidate()
	}
	return res
}

func stackRange(pos, n int) error {
	return oops.Code(CodeStackOutOfRange).
		With("position", pos).
		With("stacks", n).
		Wrap(ErrStackOutOfRange)
}

// RemoveItemAt removes the first item of the stack at pos.
func (inv *Inventory) RemoveItemAt(pos int) (*item.Item, error) {
	if pos < 0 || pos >= len(inv.stacks) {
		return item.Null(), stackRange(pos, len(inv.stacks))
	}
	head := inv.stacks[pos][0]
	return inv.RemoveItem(head)
}

// ReduceStack removes qty items from the front of the stack at pos. A qty
// below zero or at least the stack size removes the whole stack.
func (inv *Inventory) ReduceStack(pos, qty int) ([]*item.Item, error) {
	if pos < 0 || pos >= len(inv.stacks) {
		return nil, stackRange(pos, len(inv.stacks))
	}
	s := inv.stacks[pos]
	if qty < 0 || qty >= len(s) {
		inv.stacks = slices.Delete(inv.stacks, pos, pos+1)
		inv.invalidate()
		return s, nil
	}
	res := make([]*item.Item, 0, qty)
	for range qty {
		it, err := inv.RemoveItem(inv.stacks[pos][0])
		if err != nil {
			return res, err
		}
		res = append(res, it)
	}
	return res, nil
}

// FindItem returns the first item of the stack at pos, or the null item.
func (inv *Inventory) FindItem(pos int) *item.Item {
	if pos < 0 || pos >= len(inv.stacks) {
		return item.Null()
	}
	return inv.stacks[pos][0]
}

// InvletToPosition returns the position of the stack addressed by r, or -1.
func (inv *Inventory) InvletToPosition(r rune) int {
	return slices.IndexFunc(inv.stacks, func(s []*item.Item) bool { return s[0].Invlet == r })
}

// InvletToItem returns the first item of the stack addressed by r, or nil.
func (inv *Inventory) InvletToItem(r rune) *item.Item {
	if r == 0 {
		return nil
	}
	if pos := inv.InvletToPosition(r); pos >= 0 {
		return inv.stacks[pos][0]
	}
	return nil
}

// PositionByItem returns the position of the stack holding it, directly or
// inside a container, or -1.
func (inv *Inventory) PositionByItem(it *item.Item) int {
	return slices.IndexFunc(inv.stacks, func(s []*item.Item) bool {
		return slices.ContainsFunc(s, func(m *item.Item) bool { return m == it || m.Contains(it) })
	})
}

// PositionByType returns the position of the first stack of typeID, or -1.
func (inv *Inventory) PositionByType(typeID string) int {
	return slices.IndexFunc(inv.stacks, func(s []*item.Item) bool { return s[0].TypeID() == typeID })
}

// AllocatedInvlets returns the letters of all stacks.
func (inv *Inventory) AllocatedInvlets() Invlets {
	res := Invlets{}
	for _, s := range inv.stacks {
		if r := s[0].Invlet; r != 0 {
			res[r] = true
		}
	}
	return res
}

// AssignEmptyInvlet gives it a free letter following the assignment
// policy: a letter reserved for its type, then the first free letter that
// is neither reserved nor bound. When force is set and every letter is
// taken, a letter is taken away from another stack. A nil owner uses the
// inventory's default.
func (inv *Inventory) AssignEmptyInvlet(it *item.Item, owner InvletOwner, force bool) {
	inv.assignEmptyInvlet(it, inv.ownerOr(owner), force)
}

func (inv *Inventory) assignEmptyInvlet(it *item.Item, owner InvletOwner, force bool) {
	if !inv.policy.allows(it.Favorite) {
		return
	}
	used := owner.AllocatedInvlets()
	for _, r := range Chars {
		if id, ok := inv.assigned[r]; ok && id == it.TypeID() && !used[r] {
			it.Invlet = r
			return
		}
	}
	if used.Count() < len(Chars) {
		for _, r := range Chars {
			if _, ok := inv.assigned[r]; ok || slices.Contains(inv.bound, r) {
				continue
			}
			if !used[r] {
				it.Invlet = r
				return
			}
		}
	}
	if !force {
		it.Invlet = 0
		return
	}
	for _, s := range inv.stacks {
		if s[0] == it || s[0].Invlet == 0 {
			continue
		}
		inv.logger.Warn("inventory letters exhausted, reusing a letter",
			"invlet", string(s[0].Invlet),
			"from_item", s[0].IDString(),
			"to_item", it.IDString())
		it.Invlet = s[0].Invlet
		for _, m := range s {
			m.Invlet = 0
		}
		return
	}
	_ = inv.reporter.Report("assign invlet", oops.Code(CodeInvletExhausted).
		With("item_id", it.IDString()).
		With("item_type", it.TypeID()).
		Wrap(ErrInvletExhausted))
}

// ReassignItem gives it the letter r and makes r a favorite of its type.
// With removeOld the old letter stops being a favorite.
func (inv *Inventory) ReassignItem(it *item.Item, r rune, removeOld bool) {
	if it.Invlet == r {
		return
	}
	if removeOld && it.Invlet != 0 {
		inv.favorites.Erase(it.Invlet)
	}
	it.Invlet = r
	inv.remember(it)
}

// UpdateInvlet drops a letter it may not keep: one reserved for another
// type, one that is not a favorite of its type, or one already in use.
// With assign it then gets a favorite letter or a free one.
func (inv *Inventory) UpdateInvlet(it *item.Item, assign bool) {
	inv.updateInvlet(it, assign, inv.ownerOr(nil))
}

func (inv *Inventory) updateInvlet(it *item.Item, assign bool, owner InvletOwner) {
	if r := it.Invlet; r != 0 {
		if id, ok := inv.assigned[r]; ok && id != it.TypeID() {
			it.Invlet = 0
		}
	}
	if r := it.Invlet; r != 0 && !inv.favorites.Contains(r, it.TypeID()) {
		it.Invlet = 0
	}
	if r := it.Invlet; r != 0 && owner.InvletToItem(r) != nil {
		it.Invlet = 0
	}
	if !assign {
		return
	}
	if it.Invlet == 0 {
		it.Invlet = inv.cachedInvlet(it.TypeID(), owner)
	}
	if it.Invlet == 0 {
		inv.assignEmptyInvlet(it, owner, false)
	}
}

// cachedInvlet returns a favorite letter of typeID that is free.
func (inv *Inventory) cachedInvlet(typeID string, owner InvletOwner) rune {
	for _, r := range inv.favorites.For(typeID) {
		if _, ok := inv.assigned[r]; ok {
			continue
		}
		if owner.InvletToItem(r) != nil {
			continue
		}
		return r
	}
	return 0
}

// SetStackFavorite marks every item of the stack at pos.
func (inv *Inventory) SetStackFavorite(pos int, favorite bool) error {
	if pos < 0 || pos >= len(inv.stacks) {
		return stackRange(pos, len(inv.stacks))
	}
	for _, m := range inv.stacks[pos] {
		m.Favorite = favorite
	}
	return nil
}

// visit calls fn for every item and everything inside it.
func (inv *Inventory) visit(fn func(*item.Item)) {
	var walk func(*item.Item)
	walk = func(it *item.Item) {
		fn(it)
		for _, c := range it.Contents() {
			walk(c)
		}
	}
	for _, s := range inv.stacks {
		for _, m := range s {
			walk(m)
		}
	}
}

// BinnedItems returns every item, including container contents, grouped
// by type id. The result must not be modified.
func (inv *Inventory) BinnedItems() map[string][]*item.Item {
	if inv.binnedOK {
		return inv.binned
	}
	inv.binned = map[string][]*item.Item{}
	inv.visit(func(it *item.Item) {
		inv.binned[it.TypeID()] = append(inv.binned[it.TypeID()], it)
	})
	inv.binnedOK = true
	CacheRebuilds.WithLabelValues(cacheBinned).Inc()
	return inv.binned
}

// CountItem returns the number of units of typeID, charges included.
func (inv *Inventory) CountItem(typeID string) int {
	n := 0
	for _, it := range inv.BinnedItems()[typeID] {
		n += it.Count()
	}
	return n
}

// CountMatching counts the units of every type whose id matches pattern,
// a glob such as "ammo_*".
func (inv *Inventory) CountMatching(pattern string) (int, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return 0, oops.Code(CodeInvalidPattern).
			With("pattern", pattern).
			Wrapf(ErrInvalidPattern, "%s", err.Error())
	}
	n := 0
	for id, items := range inv.BinnedItems() {
		if !g.Match(id) {
			continue
		}
		for _, it := range items {
			n += it.Count()
		}
	}
	return n, nil
}

// UpdateQualityCache recounts the tool qualities on hand.
func (inv *Inventory) UpdateQualityCache() {
	inv.quality = map[string]map[int]int{}
	inv.visit(func(it *item.Item) {
		n := 1
		if it.CountByCharges() {
			n = it.Charges
		}
		for q, level := range it.Qualities() {
			if inv.quality[q] == nil {
				inv.quality[q] = map[int]int{}
			}
			inv.quality[q][level] += n
		}
	})
	CacheRebuilds.WithLabelValues(cacheQuality).Inc()
}

// QualityCache returns the counts computed by the last UpdateQualityCache,
// by quality id and level.
func (inv *Inventory) QualityCache() map[string]map[int]int { return inv.quality }

// Weight returns the total weight in grams.
func (inv *Inventory) Weight() int {
	w := 0
	for _, it := range inv.Dump() {
		w += it.Weight()
	}
	return w
}

// Volume returns the total volume in millilitres.
func (inv *Inventory) Volume() int {
	v := 0
	for _, it := range inv.Dump() {
		v += it.Volume()
	}
	return v
}

// ActiveItems returns the items that need per-turn processing.
func (inv *Inventory) ActiveItems() []*item.Item {
	var res []*item.Item
	for _, it := range inv.Dump() {
		if it.Active || it.Type().Rots() {
			res = append(res, it)
		}
	}
	return res
}
