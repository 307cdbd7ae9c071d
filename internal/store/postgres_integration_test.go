// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

//go:build integration

package store_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cataclysmbn/bnengine/internal/item"
	"github.com/cataclysmbn/bnengine/internal/store"
)

func startPostgres(ctx context.Context) (string, func()) {
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("bnengine_test"),
		postgres.WithUsername("bnengine"),
		postgres.WithPassword("bnengine"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	Expect(err).NotTo(HaveOccurred())

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	Expect(err).NotTo(HaveOccurred())
	return connStr, func() { _ = container.Terminate(ctx) }
}

var _ = Describe("PostgresSnapshotRepository", func() {
	var (
		ctx     context.Context
		pool    *pgxpool.Pool
		repo    *store.PostgresSnapshotRepository
		cleanup func()
		rock    = &item.Type{ID: "rock", Name: "rock", VolumeML: 500, WeightG: 600}
		bag     = &item.Type{ID: "bag_plastic", Name: "plastic bag", VolumeML: 100, WeightG: 5}
		types   = func(id string) (*item.Type, bool) {
			switch id {
			case rock.ID:
				return rock, true
			case bag.ID:
				return bag, true
			}
			return nil, false
		}
	)

	BeforeEach(func() {
		ctx = context.Background()
		var connStr string
		connStr, cleanup = startPostgres(ctx)

		migrator, err := store.NewMigrator(connStr)
		Expect(err).NotTo(HaveOccurred())
		Expect(migrator.Up()).To(Succeed())
		Expect(migrator.Close()).To(Succeed())

		pool, err = store.Connect(ctx, connStr, store.ConnectOptions{})
		Expect(err).NotTo(HaveOccurred())
		repo = store.NewPostgresSnapshotRepository(pool, nil)
	})

	AfterEach(func() {
		pool.Close()
		cleanup()
	})

	It("round-trips the items of a holder", func() {
		arena := item.NewArena()
		b := arena.Spawn(bag)
		_, err := b.Item().PutIn(arena.Spawn(rock))
		Expect(err).NotTo(HaveOccurred())

		Expect(store.SaveItems(ctx, repo, "char:joe", []*item.Item{b.Item()})).To(Succeed())

		other := item.NewArena()
		got, err := store.RestoreItems(ctx, repo, "char:joe", other, types)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(HaveLen(1))
		Expect(got[0].Item().ID()).To(Equal(b.Item().ID()))
		Expect(got[0].Item().Contents()).To(HaveLen(1))

		holders, err := repo.Holders(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(holders).To(Equal([]string{"char:joe"}))

		got[0].Destroy()
		b.Destroy()
	})

	It("refuses to save one item under two holders", func() {
		arena := item.NewArena()
		r := arena.Spawn(rock)
		defer r.Destroy()

		Expect(store.SaveItems(ctx, repo, "char:joe", []*item.Item{r.Item()})).To(Succeed())
		err := store.SaveItems(ctx, repo, "tile:1,1,0", []*item.Item{r.Item()})

		Expect(err).To(MatchError(store.ErrConflict))
		snaps, err := repo.Load(ctx, "char:joe")
		Expect(err).NotTo(HaveOccurred())
		Expect(snaps).To(HaveLen(1))
	})

	It("deletes a holder", func() {
		Expect(repo.Save(ctx, "tile:1,1,0", nil)).To(Succeed())
		Expect(repo.Delete(ctx, "tile:1,1,0")).To(Succeed())

		_, err := repo.Load(ctx, "tile:1,1,0")
		Expect(err).To(MatchError(store.ErrNotFound))
		Expect(repo.Delete(ctx, "tile:1,1,0")).To(MatchError(store.ErrNotFound))
	})
})
