package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mysterioushouse/server/internal/database"
	"github.com/mysterioushouse/server/internal/profile"
)

// Both ends are SQLite here; the copy only relies on the Database API.
func TestMigrateProfiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src, err := database.Open(filepath.Join(dir, "src.db"))
	if err != nil {
		t.Fatalf("open src: %v", err)
	}
	defer src.Close()
	dst, err := database.Open(filepath.Join(dir, "dst.db"))
	if err != nil {
		t.Fatalf("open dst: %v", err)
	}
	defer dst.Close()

	day := profile.Day(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	finished := profile.Profile{CanWarp: true, FloorNumber: 1, LastUpdate: day}
	if err := src.PutProfile(ctx, "finished", finished); err != nil {
		t.Fatal(err)
	}
	if err := src.PutProfile(ctx, "floor2", profile.Profile{FloorNumber: 2, LastUpdate: day}); err != nil {
		t.Fatal(err)
	}

	n, err := migrateProfiles(ctx, src, dst, true)
	if err != nil || n != 2 {
		t.Fatalf("dry run = %d, %v", n, err)
	}
	if c, _ := dst.CountProfiles(ctx); c != 0 {
		t.Fatalf("dry run wrote %d profiles", c)
	}

	n, err = migrateProfiles(ctx, src, dst, false)
	if err != nil || n != 2 {
		t.Fatalf("migrate = %d, %v", n, err)
	}
	got, err := dst.LoadProfile(ctx, "finished")
	if err != nil || got == nil || *got != finished {
		t.Errorf("migrated profile = %+v, %v", got, err)
	}
}
