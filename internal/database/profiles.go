package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mysterioushouse/server/internal/profile"
)

var _ profile.Store = (*Database)(nil)

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (d *Database) loadProfile(ctx context.Context, q querier, key string, lock bool) (*profile.Profile, error) {
	query := "SELECT can_warp, floor_number, last_update FROM profiles WHERE user_key = ?"
	if lock {
		query += d.dialect.LockClause()
	}

	var (
		p          profile.Profile
		lastUpdate string
	)
	err := q.QueryRowContext(ctx, d.qb.Build(query), key).Scan(&p.CanWarp, &p.FloorNumber, &lastUpdate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	if lastUpdate != "" {
		t, err := time.Parse(profile.DateLayout, lastUpdate)
		if err != nil {
			return nil, fmt.Errorf("profile last_update %q: %w", lastUpdate, err)
		}
		p.LastUpdate = t
	}
	return &p, nil
}

// LoadProfile implements profile.Store.
func (d *Database) LoadProfile(ctx context.Context, key string) (*profile.Profile, error) {
	return d.loadProfile(ctx, d.db, key, false)
}

// CreateProfile implements profile.Store. A profile created concurrently by
// another request wins.
func (d *Database) CreateProfile(ctx context.Context, key string, p profile.Profile) error {
	_, err := d.db.ExecContext(ctx,
		d.qb.Build("INSERT INTO profiles (user_key, can_warp, floor_number, last_update) VALUES (?, ?, ?, ?)"),
		key, p.CanWarp, p.FloorNumber, formatDay(p.LastUpdate),
	)
	if err != nil && !d.dialect.IsDuplicateKeyError(err) {
		return fmt.Errorf("creating profile: %w", err)
	}
	return nil
}

// SaveProgress implements profile.Store.
func (d *Database) SaveProgress(ctx context.Context, key string, update profile.Progress, at time.Time) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	defer tx.Rollback()

	current, err := d.loadProfile(ctx, tx, key, true)
	if err != nil {
		return err
	}
	next := profile.Default()
	if current != nil {
		next = *current
	}
	next = next.Apply(update, at)

	if err := d.upsert(ctx, tx, key, next); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

func (d *Database) upsert(ctx context.Context, e execer, key string, p profile.Profile) error {
	_, err := e.ExecContext(ctx, d.qb.Build(`INSERT INTO profiles (user_key, can_warp, floor_number, last_update)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_key) DO UPDATE SET
			can_warp = excluded.can_warp,
			floor_number = excluded.floor_number,
			last_update = excluded.last_update`),
		key, p.CanWarp, p.FloorNumber, formatDay(p.LastUpdate),
	)
	return err
}

// PutProfile writes p as-is, replacing any stored profile.
func (d *Database) PutProfile(ctx context.Context, key string, p profile.Profile) error {
	if err := d.upsert(ctx, d.db, key, p); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// EachProfile calls fn for every stored profile in key order, stopping at
// the first error.
func (d *Database) EachProfile(ctx context.Context, fn func(key string, p profile.Profile) error) error {
	rows, err := d.db.QueryContext(ctx, "SELECT user_key, can_warp, floor_number, last_update FROM profiles ORDER BY user_key")
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key        string
			p          profile.Profile
			lastUpdate string
		)
		if err := rows.Scan(&key, &p.CanWarp, &p.FloorNumber, &lastUpdate); err != nil {
			return fmt.Errorf("listing profiles: %w", err)
		}
		if lastUpdate != "" {
			if p.LastUpdate, err = time.Parse(profile.DateLayout, lastUpdate); err != nil {
				return fmt.Errorf("profile %s last_update %q: %w", key, lastUpdate, err)
			}
		}
		if err := fn(key, p); err != nil {
			return err
		}
	}
	return rows.Err()
}

// CountProfiles returns the number of stored profiles.
func (d *Database) CountProfiles(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting profiles: %w", err)
	}
	return n, nil
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return profile.Day(t).Format(profile.DateLayout)
}
