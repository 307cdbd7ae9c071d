// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package scripting

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/cataclysmbn/bnengine/internal/item"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = time.Second

// Engine runs item scripts. Each run gets a fresh sandboxed state, so
// scripts cannot keep globals between runs.
type Engine struct {
	factory  *StateFactory
	bindings *Bindings
	logger   *slog.Logger
	timeout  time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithLogger sets the logger used by scripts and the engine.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine whose scripts see the items of arena.
func NewEngine(arena *item.Arena, opts ...Option) *Engine {
	e := &Engine{factory: NewStateFactory(), timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.bindings = NewBindings(arena, e.logger)
	return e
}

// Run executes code. name identifies the script in logs and errors.
func (e *Engine) Run(ctx context.Context, name, code string) error {
	L, cancel, err := e.state(ctx, name)
	if err != nil {
		return err
	}
	defer cancel()
	defer L.Close()

	if err := L.DoString(code); err != nil {
		return oops.In("lua").With("script", name).Wrapf(err, "run script")
	}
	return nil
}

// Call loads code and calls its global function fn with the id of it. The
// first return value of fn is converted to a Go string, bool or float64;
// nil when fn returns nothing.
func (e *Engine) Call(ctx context.Context, name, code, fn string, it *item.Item) (any, error) {
	L, cancel, err := e.state(ctx, name)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer L.Close()

	if err := L.DoString(code); err != nil {
		return nil, oops.In("lua").With("script", name).Wrapf(err, "load script")
	}
	f := L.GetGlobal(fn)
	if f.Type() != lua.LTFunction {
		return nil, oops.In("lua").
			With("script", name).
			With("function", fn).
			Errorf("script does not define %s", fn)
	}
	if err := L.CallByParam(lua.P{
		Fn:      f,
		NRet:    1,
		Protect: true,
	}, lua.LString(it.IDString())); err != nil {
		return nil, oops.In("lua").
			With("script", name).
			With("function", fn).
			With("item_id", it.IDString()).
			Wrapf(err, "call function")
	}
	ret := L.Get(-1)
	L.Pop(1)
	return toGo(ret), nil
}

func (e *Engine) state(ctx context.Context, name string) (*lua.LState, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	L, err := e.factory.NewState(ctx)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	e.bindings.Register(L, name)
	return L, cancel, nil
}

func toGo(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LString:
		return string(v)
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	default:
		return nil
	}
}
