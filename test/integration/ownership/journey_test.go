// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

//go:build integration

package ownership_test

import (
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/cataclysmbn/bnengine/internal/character"
	"github.com/cataclysmbn/bnengine/internal/content"
	"github.com/cataclysmbn/bnengine/internal/gamemap"
	"github.com/cataclysmbn/bnengine/internal/geom"
	"github.com/cataclysmbn/bnengine/internal/item"
	"github.com/cataclysmbn/bnengine/internal/monster"
	"github.com/cataclysmbn/bnengine/internal/vehicle"
	"github.com/cataclysmbn/bnengine/pkg/errutil"
)

const coreContent = "../../../data/core"

var _ = Describe("An item moving between holders", func() {
	var (
		logger *slog.Logger
		reg    *content.Registry
		rec    *errutil.Recorder
		arena  *item.Arena
		m      *gamemap.Map
		joe    *character.Character
		car    *vehicle.Vehicle
		trunk  int
		dog    *monster.Monster
		spot   geom.Tripoint
	)

	typ := func(id string) *item.Type {
		t, err := reg.ItemType(id)
		Expect(err).NotTo(HaveOccurred())
		return t
	}

	// holders counts the places claiming it.
	holders := func(it *item.Item) int {
		n := 0
		for _, claims := range []bool{
			len(m.ItemsAt(spot)) > 0 && containsItem(m.ItemsAt(spot), it),
			joe.Carries(it),
			joe.Wears(it),
			joe.Wields(it),
			containsItem(car.Cargo(trunk), it),
			dog.HasItem(it),
			dog.SlotItem(item.SlotArmor) == it,
		} {
			if claims {
				n++
			}
		}
		return n
	}

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		var err error
		reg, err = content.Loader{Logger: logger}.LoadDirs([]string{coreContent})
		Expect(err).NotTo(HaveOccurred())

		rec = &errutil.Recorder{}
		r := rec.Reporter()
		r.Logger = logger
		arena = item.NewArena(item.WithReporter(r), item.WithLogger(logger))
		m = gamemap.New(gamemap.WithRadius(3), gamemap.WithLevels(1), gamemap.WithLogger(logger))
		joe = character.New("Joe", character.WithPos(geom.Tripoint{X: 3, Y: 3}), character.WithLogger(logger), character.WithReporter(r))
		car = vehicle.New("car", m, vehicle.WithPos(geom.Tripoint{X: 4, Y: 3}), vehicle.WithLogger(logger))
		car.InstallPart(arena.Spawn(typ("rock")), "frame", geom.Tripoint{})
		trunk = car.InstallPart(arena.Spawn(typ("rock")), "cargo space", geom.Tripoint{X: 1},
			vehicle.WithLabel("trunk"), vehicle.WithCargo(10000))
		dog = monster.New("dog", monster.WithPos(geom.Tripoint{X: 3, Y: 4}), monster.WithLogger(logger))
		spot = m.GetAbs(geom.Tripoint{X: 3, Y: 3})
	})

	AfterEach(func() {
		joe.Destroy()
		car.Destroy()
		dog.Destroy()
		m.Destroy()
		Expect(arena.Audit()).To(BeEmpty())
		Expect(arena.Live()).To(BeZero())
	})

	It("has exactly one holder at every step", func() {
		jacket := m.AddItem(spot, arena.Spawn(typ("jacket_light")))
		Expect(holders(jacket)).To(Equal(1))
		Expect(jacket.Where()).To(Equal(item.WhereMap))

		_, err := joe.Pickup(jacket)
		Expect(err).NotTo(HaveOccurred())
		Expect(holders(jacket)).To(Equal(1))
		Expect(jacket.Where()).To(Equal(item.WhereCharacter))

		Expect(joe.WearItem(jacket)).To(Succeed())
		Expect(holders(jacket)).To(Equal(1))
		Expect(joe.Wears(jacket)).To(BeTrue())

		Expect(jacket.AttemptDetach(func(d item.Detached) item.Detached {
			_, rest, err := car.AddItem(trunk, d)
			Expect(err).NotTo(HaveOccurred())
			return rest
		})).To(Succeed())
		Expect(holders(jacket)).To(Equal(1))
		Expect(jacket.Where()).To(Equal(item.WhereVehicle))
		Expect(jacket.Describe(joe)).To(Equal("[trunk] cargo space E"))

		d, err := jacket.Detach()
		Expect(err).NotTo(HaveOccurred())
		rest, err := dog.SetSlotItem(item.SlotArmor, d)
		Expect(err).NotTo(HaveOccurred())
		Expect(rest.IsEmpty()).To(BeTrue())
		Expect(holders(jacket)).To(Equal(1))
		Expect(jacket.Where()).To(Equal(item.WhereMonster))

		for _, drop := range dog.Die(item.Detached{}) {
			m.AddItem(spot, drop)
		}
		Expect(holders(jacket)).To(Equal(1))
		Expect(m.ItemsAt(spot)).To(ContainElement(jacket))
		Expect(rec.Codes).To(BeEmpty())
	})

	It("keeps the first occupant of a monster slot", func() {
		first, err := dog.SetSlotItem(item.SlotArmor, arena.Spawn(typ("jacket_light")))
		Expect(err).NotTo(HaveOccurred())
		Expect(first.IsEmpty()).To(BeTrue())
		armor := dog.SlotItem(item.SlotArmor)

		second := arena.Spawn(typ("bag_plastic"))
		rest, err := dog.SetSlotItem(item.SlotArmor, second)

		Expect(err).To(MatchError(item.ErrSlotOccupied))
		Expect(rest.Is(second.Item())).To(BeTrue())
		Expect(dog.SlotItem(item.SlotArmor)).To(BeIdenticalTo(armor))
		rest.Destroy()
	})

	It("conserves charges across holders", func() {
		arrows := arena.Spawn(typ("arrow_wood"))
		Expect(arrows.Item().Charges).To(Equal(10))

		part, err := arrows.Item().Split(4)
		Expect(err).NotTo(HaveOccurred())
		Expect(part.Item().Charges).To(Equal(4))
		Expect(arrows.Item().Charges).To(Equal(6))

		carried := joe.AddItem(arrows)
		_, rest, err := car.AddItem(trunk, part)
		Expect(err).NotTo(HaveOccurred())
		Expect(rest.IsEmpty()).To(BeTrue())
		stowed := car.Cargo(trunk)[0]

		d, err := stowed.Detach()
		Expect(err).NotTo(HaveOccurred())
		merged, leftover := carried.MergeCharges(d, false)
		Expect(merged).To(BeTrue())
		Expect(leftover.IsEmpty()).To(BeTrue())
		Expect(carried.Charges).To(Equal(10))
		Expect(stowed.IsDestroyed()).To(BeTrue())
	})

	It("loads tiles as the bubble moves over them", func() {
		far := geom.Tripoint{X: spot.X + 10, Y: spot.Y}
		rock := m.AddItem(far, arena.Spawn(typ("rock")))
		Expect(rock.IsLoaded()).To(BeFalse())

		m.Shift(geom.Tripoint{X: 10})
		Expect(rock.IsLoaded()).To(BeTrue())
		Expect(m.LoadedItems()).To(ContainElement(rock))
	})
})

func containsItem(items []*item.Item, it *item.Item) bool {
	for _, x := range items {
		if x == it {
			return true
		}
	}
	return false
}
