// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/cataclysmbn/bnengine/internal/item"
)

var (
	// ErrNotFound is returned when nothing was saved for a holder.
	ErrNotFound = errors.New("no snapshot saved for holder")
	// ErrConflict is returned when an item is already saved under another
	// holder. An item has one owner, in storage as in memory.
	ErrConflict = errors.New("item already saved under another holder")
)

// Error codes attached with oops.Code.
const (
	CodeNotFound = "SNAPSHOT_NOT_FOUND"
	CodeConflict = "SNAPSHOT_CONFLICT"
)

// SnapshotRepository stores the items of a holder: a character, a map tile
// or a vehicle part, named by the caller.
type SnapshotRepository interface {
	Save(ctx context.Context, holder string, snaps []item.Snapshot) error
	Load(ctx context.Context, holder string) ([]item.Snapshot, error)
	Delete(ctx context.Context, holder string) error
	Holders(ctx context.Context) ([]string, error)
}

// OpObserver is told the outcome ("ok" or "error") of every operation.
type OpObserver func(op, status string)

// PostgresSnapshotRepository implements SnapshotRepository using PostgreSQL.
type PostgresSnapshotRepository struct {
	pool     poolIface
	observer OpObserver
}

var _ SnapshotRepository = (*PostgresSnapshotRepository)(nil)

// NewPostgresSnapshotRepository creates a repository. observer may be nil.
func NewPostgresSnapshotRepository(pool poolIface, observer OpObserver) *PostgresSnapshotRepository {
	if observer == nil {
		observer = func(string, string) {}
	}
	return &PostgresSnapshotRepository{pool: pool, observer: observer}
}

func (r *PostgresSnapshotRepository) observe(op string, err error) error {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.observer(op, status)
	return err
}

// Save replaces everything stored for holder with snaps, in order.
func (r *PostgresSnapshotRepository) Save(ctx context.Context, holder string, snaps []item.Snapshot) error {
	return r.observe("save", r.save(ctx, holder, snaps))
}

func (r *PostgresSnapshotRepository) save(ctx context.Context, holder string, snaps []item.Snapshot) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return oops.With("operation", "begin save").With("holder", holder).Wrap(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx) //nolint:errcheck // the save error takes precedence
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM item_snapshots WHERE holder = $1`, holder); err != nil {
		return oops.With("operation", "clear holder").With("holder", holder).Wrap(err)
	}

	for i, s := range snaps {
		data, merr := json.Marshal(s)
		if merr != nil {
			err = oops.With("operation", "encode snapshot").With("item_id", s.ID).Wrap(merr)
			return err
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO item_snapshots (item_id, holder, position, type_id, data)
			 VALUES ($1, $2, $3, $4, $5)`,
			s.ID, holder, i, s.Type, data)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				err = oops.Code(CodeConflict).
					With("holder", holder).
					With("item_id", s.ID).
					Wrap(ErrConflict)
				return err
			}
			return oops.With("operation", "insert snapshot").With("item_id", s.ID).Wrap(err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO snapshot_holders (holder, items, saved_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (holder) DO UPDATE SET items = $2, saved_at = now()`,
		holder, len(snaps))
	if err != nil {
		return oops.With("operation", "record holder").With("holder", holder).Wrap(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return oops.With("operation", "commit save").With("holder", holder).Wrap(err)
	}
	return nil
}

// Load returns the snapshots saved for holder in the order they were saved.
func (r *PostgresSnapshotRepository) Load(ctx context.Context, holder string) ([]item.Snapshot, error) {
	snaps, err := r.load(ctx, holder)
	return snaps, r.observe("load", err)
}

func (r *PostgresSnapshotRepository) load(ctx context.Context, holder string) ([]item.Snapshot, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT items FROM snapshot_holders WHERE holder = $1`, holder).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code(CodeNotFound).With("holder", holder).Wrap(ErrNotFound)
	}
	if err != nil {
		return nil, oops.With("operation", "get holder").With("holder", holder).Wrap(err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT data FROM item_snapshots WHERE holder = $1 ORDER BY position`, holder)
	if err != nil {
		return nil, oops.With("operation", "query snapshots").With("holder", holder).Wrap(err)
	}
	defer rows.Close()

	snaps := make([]item.Snapshot, 0, count)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, oops.With("operation", "scan snapshot row").With("holder", holder).Wrap(err)
		}
		var s item.Snapshot
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, oops.Code(item.CodeInvalidSnapshot).
				With("holder", holder).
				Wrapf(err, "decode snapshot")
		}
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate snapshots").With("holder", holder).Wrap(err)
	}
	return snaps, nil
}

// Delete removes everything stored for holder.
func (r *PostgresSnapshotRepository) Delete(ctx context.Context, holder string) error {
	return r.observe("delete", r.delete(ctx, holder))
}

func (r *PostgresSnapshotRepository) delete(ctx context.Context, holder string) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return oops.With("operation", "begin delete").With("holder", holder).Wrap(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx) //nolint:errcheck // the delete error takes precedence
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM item_snapshots WHERE holder = $1`, holder); err != nil {
		return oops.With("operation", "delete snapshots").With("holder", holder).Wrap(err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM snapshot_holders WHERE holder = $1`, holder)
	if err != nil {
		return oops.With("operation", "delete holder").With("holder", holder).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		err = oops.Code(CodeNotFound).With("holder", holder).Wrap(ErrNotFound)
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return oops.With("operation", "commit delete").With("holder", holder).Wrap(err)
	}
	return nil
}

// Holders lists every holder with saved items, sorted.
func (r *PostgresSnapshotRepository) Holders(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT holder FROM snapshot_holders ORDER BY holder`)
	if err != nil {
		return nil, r.observe("holders", oops.With("operation", "list holders").Wrap(err))
	}
	defer rows.Close()

	var holders []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, r.observe("holders", oops.With("operation", "scan holder row").Wrap(err))
		}
		holders = append(holders, h)
	}
	if err := rows.Err(); err != nil {
		return nil, r.observe("holders", oops.With("operation", "iterate holders").Wrap(err))
	}
	return holders, r.observe("holders", nil)
}

// SaveItems snapshots items and saves them for holder.
func SaveItems(ctx context.Context, repo SnapshotRepository, holder string, items []*item.Item) error {
	snaps := make([]item.Snapshot, 0, len(items))
	for _, it := range items {
		snaps = append(snaps, it.Snapshot())
	}
	return repo.Save(ctx, holder, snaps)
}

// RestoreItems loads the items of holder into arena. The returned handles
// are detached; the caller attaches them. On failure nothing is left
// behind in the arena.
func RestoreItems(ctx context.Context, repo SnapshotRepository, holder string, arena *item.Arena, types item.TypeLookup) ([]item.Detached, error) {
	snaps, err := repo.Load(ctx, holder)
	if err != nil {
		return nil, err
	}
	out := make([]item.Detached, 0, len(snaps))
	for _, s := range snaps {
		d, err := arena.Restore(s, types)
		if err != nil {
			for _, done := range out {
				done.Destroy()
			}
			return nil, oops.With("holder", holder).Wrap(err)
		}
		out = append(out, d)
	}
	return out, nil
}
