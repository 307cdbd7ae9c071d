// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/cataclysmbn/bnengine/internal/character"
	"github.com/cataclysmbn/bnengine/internal/config"
	"github.com/cataclysmbn/bnengine/internal/content"
	"github.com/cataclysmbn/bnengine/internal/gamemap"
	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/internal/inventory"
	"github.com/cataclysmbn/bnengine/internal/item"
	"github.com/cataclysmbn/bnengine/internal/itemfilter"
	"github.com/cataclysmbn/bnengine/internal/monster"
	"github.com/cataclysmbn/bnengine/internal/observability"
	"github.com/cataclysmbn/bnengine/internal/scripting"
	"github.com/cataclysmbn/bnengine/internal/store"
	"github.com/cataclysmbn/bnengine/internal/vehicle"
	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

// TurnDuration is the game time one simulated turn advances.
const TurnDuration = time.Minute

type simulateOptions struct {
	turns        int
	seed         uint64
	script       string
	save         string
	serve        bool
	pickupFilter string
}

// NewSimulateCmd creates the simulate subcommand.
func NewSimulateCmd() *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless item simulation",
		Long: `Spawn the items of the loaded content packs around a character, a
vehicle and a monster, move them around at random for a number of turns,
and check that every item still has exactly one owner.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			sum, err := runSimulate(cmd.Context(), cfg, opts, logger)
			if err != nil {
				return err
			}
			cmd.Printf("turns: %d created: %d destroyed: %d live: %d violations: %d\n",
				sum.Turns, sum.Created, sum.Destroyed, sum.Live, sum.Violations)
			if sum.Violations > 0 {
				return oops.Code("OWNERSHIP_VIOLATED").
					With("violations", sum.Violations).
					Errorf("%d ownership violations", sum.Violations)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.turns, "turns", 100, "number of turns to simulate")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&opts.script, "script", "", "Lua script whose on_turn(id) runs for every carried item each turn")
	cmd.Flags().StringVar(&opts.save, "save", "", "save the character's items under this holder name (needs database.url)")
	cmd.Flags().BoolVar(&opts.serve, "serve", false, "serve metrics on metrics.addr while simulating")
	cmd.Flags().StringVar(&opts.pickupFilter, "pickup-filter", "", "item filter for what the character picks up, e.g. \"-m:stone, f:WEARABLE\"")
	return cmd
}

// summary is the outcome of a simulation.
type summary struct {
	Turns      int
	Created    int
	Destroyed  int
	Live       int
	Violations int
}

func runSimulate(ctx context.Context, cfg *config.Config, opts *simulateOptions, logger *slog.Logger) (summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reg, err := content.Loader{Engine: engineVersion(), Logger: logger}.LoadDirs(contentDirs(cfg, logger))
	if err != nil {
		return summary{}, err //nolint:wrapcheck // loader errors carry their context
	}

	server := observability.NewServer(cfg.Metrics.Addr, nil, logger)
	if opts.serve && cfg.Metrics.Addr != "" {
		if _, err := server.Start(); err != nil {
			return summary{}, err //nolint:wrapcheck // context added by observability
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(stopCtx)
		}()
	}
	metrics := server.Metrics()

	pickup, err := itemfilter.Parse(opts.pickupFilter)
	if err != nil {
		return summary{}, err //nolint:wrapcheck // coded by itemfilter
	}

	var script string
	if opts.script != "" {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return summary{}, oops.With("script", opts.script).Wrapf(err, "read script")
		}
		script = string(data)
	}

	violations := 0
	reporter := &errutil.Reporter{Logger: logger, OnReport: func(string) { violations++ }}
	w := newWorld(cfg, reg.ItemTypes(), reporter, logger, opts.seed)
	w.pickup = pickup
	engine := scripting.NewEngine(w.arena, scripting.WithLogger(logger))

	for turn := range opts.turns {
		if err := ctx.Err(); err != nil {
			w.destroy()
			return summary{}, oops.Wrapf(err, "simulation cancelled")
		}
		w.step()
		if script != "" {
			for _, it := range w.joe.Inventory().Dump() {
				if _, err := engine.Call(ctx, opts.script, script, "on_turn", it); err != nil {
					w.destroy()
					return summary{}, oops.With("turn", turn).Wrap(err)
				}
			}
		}
		for _, it := range w.arena.ProcessTurn(TurnDuration) {
			logger.Debug("item spoiled", "item_id", it.IDString(), "item_type", it.TypeID())
		}
		metrics.TurnsTotal.Inc()
	}

	for _, err := range w.arena.Audit(w.car.Holders()...) {
		violations++
		logger.Error("ownership audit failed", "error", err)
	}

	if opts.save != "" {
		if err := saveCharacter(ctx, cfg, opts.save, w.joe, metrics, logger); err != nil {
			w.destroy()
			return summary{}, err
		}
	}

	w.destroy()
	sum := summary{
		Turns:      opts.turns,
		Created:    w.arena.Created(),
		Destroyed:  w.arena.Destroyed(),
		Live:       w.arena.Live(),
		Violations: violations,
	}
	logger.Info("simulation finished",
		"turns", sum.Turns,
		"created", sum.Created,
		"destroyed", sum.Destroyed,
		"violations", sum.Violations)
	return sum, nil
}

func saveCharacter(ctx context.Context, cfg *config.Config, holder string, c *character.Character, m *observability.Metrics, logger *slog.Logger) error {
	if cfg.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("--save needs database.url")
	}
	pool, err := store.Connect(ctx, cfg.Database.URL, store.ConnectOptions{Logger: logger})
	if err != nil {
		return err //nolint:wrapcheck // coded by store
	}
	defer pool.Close()
	repo := store.NewPostgresSnapshotRepository(pool, func(op, status string) {
		m.SnapshotOpsTotal.WithLabelValues(op, status).Inc()
	})
	items := append(c.Inventory().Dump(), c.Worn()...)
	if w := c.Wielded(); !w.IsNull() {
		items = append(items, w)
	}
	return store.SaveItems(ctx, repo, holder, items)
}

// world is the little scene a simulation plays in.
type world struct {
	arena  *item.Arena
	m      *gamemap.Map
	joe    *character.Character
	car    *vehicle.Vehicle
	trunk  int
	dog    *monster.Monster
	spot   geom.Tripoint
	types  []*item.Type
	pickup itemfilter.Filter
	rng    *rand.Rand
	logger *slog.Logger
}

func newWorld(cfg *config.Config, types []*item.Type, reporter *errutil.Reporter, logger *slog.Logger, seed uint64) *world {
	arena := item.NewArena(item.WithReporter(reporter), item.WithLogger(logger))
	m := gamemap.New(
		gamemap.WithRadius(cfg.Map.BubbleRadius),
		gamemap.WithLevels(cfg.Map.Levels),
		gamemap.WithLogger(logger))
	center := geom.Tripoint{X: cfg.Map.BubbleRadius, Y: cfg.Map.BubbleRadius}

	w := &world{
		arena: arena,
		m:     m,
		joe: character.New("Joe",
			character.WithPos(center),
			character.WithInventoryOptions(inventory.WithAutoAssign(cfg.AutoAssign())),
			character.WithReporter(reporter),
			character.WithLogger(logger)),
		car:    vehicle.New("car", m, vehicle.WithPos(center.Add(geom.Tripoint{X: 1}))),
		dog:    monster.New("dog", monster.WithPos(center.Add(geom.Tripoint{Y: 1})), monster.WithLogger(logger)),
		spot:   m.GetAbs(center),
		types:  types,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger: logger,
	}
	if len(types) > 0 {
		w.car.InstallPart(arena.Spawn(types[0]), "frame", geom.Tripoint{})
		w.trunk = w.car.InstallPart(arena.Spawn(types[0]), "cargo space", geom.Tripoint{X: 1},
			vehicle.WithLabel("trunk"), vehicle.WithCargo(20000))
	}
	return w
}

func (w *world) pick(items []*item.Item) *item.Item {
	if len(items) == 0 {
		return nil
	}
	return items[w.rng.IntN(len(items))]
}

// step performs one random action.
func (w *world) step() {
	if len(w.types) == 0 {
		return
	}
	switch w.rng.IntN(8) {
	case 0:
		t := w.types[w.rng.IntN(len(w.types))]
		w.m.AddItem(w.spot, w.arena.Spawn(t))
	case 1:
		wanted := slices.DeleteFunc(w.m.ItemsAt(w.spot), func(it *item.Item) bool { return !w.pickup.Match(it) })
		if it := w.pick(wanted); it != nil {
			w.note("pickup", it, w.ignore(w.joe.Pickup(it)))
		}
	case 2:
		if it := w.pick(w.joe.Inventory().Dump()); it != nil {
			d, err := it.Detach()
			if err == nil {
				w.m.AddItem(w.spot, d)
			}
			w.note("drop", it, err)
		}
	case 3:
		if it := w.pick(w.joe.Inventory().Dump()); it != nil {
			err := it.AttemptDetach(func(d item.Detached) item.Detached {
				_, rest, err := w.car.AddItem(w.trunk, d)
				w.note("stow", it, err)
				return rest
			})
			w.note("stow", it, err)
		}
	case 4:
		if it := w.pick(w.joe.Inventory().Dump()); it != nil {
			w.note("wield", it, w.joe.WieldItem(it))
		}
	case 5:
		if it := w.pick(w.joe.Inventory().Dump()); it != nil {
			w.note("wear", it, w.joe.WearItem(it))
		}
	case 6:
		if it := w.pick(w.car.Cargo(w.trunk)); it != nil {
			w.note("unload", it, w.ignore(w.joe.Pickup(it)))
		}
	case 7:
		if it := w.pick(w.joe.Inventory().Dump()); it != nil {
			err := it.AttemptDetach(func(d item.Detached) item.Detached {
				rest, err := w.dog.AddItem(d)
				w.note("feed", it, err)
				return rest
			})
			w.note("feed", it, err)
		}
	}
	w.joe.RestackInventory()
}

func (w *world) ignore(_ *item.Item, err error) error { return err }

func (w *world) note(action string, it *item.Item, err error) {
	if err == nil {
		return
	}
	w.logger.Debug("action refused", "action", action, "item_id", it.IDString(), "error", err)
}

// destroy kills the dog, dropping what it carried, and then tears the
// scene down.
func (w *world) destroy() {
	for _, d := range w.dog.Die(item.Detached{}) {
		w.m.AddItem(w.spot, d)
	}
	w.joe.Destroy()
	w.car.Destroy()
	w.dog.Destroy()
	w.m.Destroy()
}
