// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package scripting

import (
	"log/slog"

	"github.com/gobwas/glob"
	"github.com/oklog/ulid/v2"
	lua "github.com/yuin/gopher-lua"

	"github.com/cataclysmbn/bnengine/internal/item"
	"github.com/cataclysmbn/bnengine/internal/itemfilter"
)

// Bindings exposes the items of one arena to Lua as the global table
// "item" and the global function "log".
//
// Every item function takes the item id as its first argument. Lookups of
// unknown or destroyed items return nil and an error message, the usual Lua
// convention.
type Bindings struct {
	arena  *item.Arena
	logger *slog.Logger
}

// NewBindings creates bindings for the items of arena.
func NewBindings(arena *item.Arena, logger *slog.Logger) *Bindings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bindings{arena: arena, logger: logger}
}

// Register installs the bindings in L. script names the caller in logs.
func (b *Bindings) Register(L *lua.LState, script string) {
	mod := L.NewTable()
	fns := map[string]lua.LGFunction{
		"type":        b.getter(func(L *lua.LState, it *item.Item) lua.LValue { return lua.LString(it.TypeID()) }),
		"name":        b.getter(func(L *lua.LState, it *item.Item) lua.LValue { return lua.LString(it.TypeName()) }),
		"charges":     b.getter(func(L *lua.LState, it *item.Item) lua.LValue { return lua.LNumber(it.Charges) }),
		"damage":      b.getter(func(L *lua.LState, it *item.Item) lua.LValue { return lua.LNumber(it.Damage) }),
		"where":       b.getter(func(L *lua.LState, it *item.Item) lua.LValue { return lua.LString(it.Where().String()) }),
		"is_active":   b.getter(func(L *lua.LState, it *item.Item) lua.LValue { return lua.LBool(it.Active) }),
		"set_charges": b.setCharges,
		"set_damage":  b.setDamage,
		"has_flag":    b.hasFlag,
		"set_flag":    b.setFlag(true),
		"unset_flag":  b.setFlag(false),
		"var":         b.getVar,
		"set_var":     b.setVar,
		"matches":     b.matches,
		"filter":      b.filter,
		"contents":    b.contents,
	}
	for name, fn := range fns {
		L.SetField(mod, name, L.NewFunction(fn))
	}
	L.SetGlobal("item", mod)
	L.SetGlobal("log", L.NewFunction(b.log(script)))
}

func (b *Bindings) lookup(L *lua.LState) (*item.Item, bool) {
	raw := L.CheckString(1)
	id, err := ulid.ParseStrict(raw)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString("invalid item id: " + raw))
		return nil, false
	}
	it, ok := b.arena.Lookup(id)
	if !ok || it.IsDestroyed() {
		L.Push(lua.LNil)
		L.Push(lua.LString("no such item: " + raw))
		return nil, false
	}
	return it, true
}

func (b *Bindings) getter(get func(*lua.LState, *item.Item) lua.LValue) lua.LGFunction {
	return func(L *lua.LState) int {
		it, ok := b.lookup(L)
		if !ok {
			return 2
		}
		L.Push(get(L, it))
		return 1
	}
}

// ok pushes the (true, nil) success pair of a setter.
func ok(L *lua.LState) int {
	L.Push(lua.LTrue)
	L.Push(lua.LNil)
	return 2
}

func fail(L *lua.LState, msg string) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(msg))
	return 2
}

func (b *Bindings) setCharges(L *lua.LState) int {
	it, found := b.lookup(L)
	if !found {
		return 2
	}
	n := L.CheckInt(2)
	if it.Charges == item.InfiniteCharges && n != item.InfiniteCharges {
		return fail(L, "infinite charges")
	}
	if err := it.ModCharges(n - it.Charges); err != nil {
		return fail(L, err.Error())
	}
	return ok(L)
}

// setDamage clamps to the type's damage range; a clamped value is still
// stored but reported back as an error.
func (b *Bindings) setDamage(L *lua.LState) int {
	it, found := b.lookup(L)
	if !found {
		return 2
	}
	if err := it.SetDamage(L.CheckInt(2)); err != nil {
		return fail(L, err.Error())
	}
	return ok(L)
}

func (b *Bindings) hasFlag(L *lua.LState) int {
	it, found := b.lookup(L)
	if !found {
		return 2
	}
	L.Push(lua.LBool(it.HasFlag(L.CheckString(2))))
	return 1
}

func (b *Bindings) setFlag(set bool) lua.LGFunction {
	return func(L *lua.LState) int {
		it, found := b.lookup(L)
		if !found {
			return 2
		}
		if flag := L.CheckString(2); set {
			it.SetFlag(flag)
		} else {
			it.UnsetFlag(flag)
		}
		return ok(L)
	}
}

func (b *Bindings) getVar(L *lua.LState) int {
	it, found := b.lookup(L)
	if !found {
		return 2
	}
	L.Push(lua.LString(it.Var(L.CheckString(2), L.OptString(3, ""))))
	return 1
}

func (b *Bindings) setVar(L *lua.LState) int {
	it, found := b.lookup(L)
	if !found {
		return 2
	}
	it.SetVar(L.CheckString(2), L.CheckString(3))
	return ok(L)
}

// matches reports whether the item's type id matches a glob like "ammo_*".
func (b *Bindings) matches(L *lua.LState) int {
	it, found := b.lookup(L)
	if !found {
		return 2
	}
	pattern := L.CheckString(2)
	g, err := glob.Compile(pattern)
	if err != nil {
		return fail(L, "invalid pattern: "+pattern)
	}
	L.Push(lua.LBool(g.Match(it.TypeID())))
	return 1
}

// filter reports whether the item passes an item filter like "-m:stone".
func (b *Bindings) filter(L *lua.LState) int {
	it, found := b.lookup(L)
	if !found {
		return 2
	}
	src := L.CheckString(2)
	f, err := itemfilter.Parse(src)
	if err != nil {
		return fail(L, "invalid filter: "+src)
	}
	L.Push(lua.LBool(f.Match(it)))
	return 1
}

// contents returns the ids of the items inside a container.
func (b *Bindings) contents(L *lua.LState) int {
	it, found := b.lookup(L)
	if !found {
		return 2
	}
	t := L.NewTable()
	for _, c := range it.Contents() {
		t.Append(lua.LString(c.IDString()))
	}
	L.Push(t)
	return 1
}

func (b *Bindings) log(script string) lua.LGFunction {
	return func(L *lua.LState) int {
		level := L.CheckString(1)
		msg := L.CheckString(2)
		logger := b.logger.With("script", script)
		switch level {
		case "debug":
			logger.Debug(msg)
		case "warn":
			logger.Warn(msg)
		case "error":
			logger.Error(msg)
		default:
			logger.Info(msg)
		}
		return 0
	}
}
