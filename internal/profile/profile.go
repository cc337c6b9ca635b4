// Package profile stores each player's durable progress: the furthest floor
// reached and whether warping has been unlocked.
package profile

import (
	"context"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DateLayout is the precision LastUpdate is stored with.
const DateLayout = "2006-01-02"

const (
	MinFloor = 1
	MaxFloor = 3
)

// Profile is a player's saved progress.
type Profile struct {
	CanWarp     bool
	FloorNumber int
	LastUpdate  time.Time
}

// Default returns the profile of a player who has never played.
func Default() Profile {
	return Profile{FloorNumber: MinFloor}
}

// ValidFloor reports whether the stored floor is one the game knows.
func (p Profile) ValidFloor() bool {
	return p.FloorNumber >= MinFloor && p.FloorNumber <= MaxFloor
}

// Progress is a partial profile update. A zero FloorNumber leaves the floor
// alone; warp can be unlocked but never locked again.
type Progress struct {
	FloorNumber int
	UnlockWarp  bool
}

// Empty reports whether the update changes nothing.
func (p Progress) Empty() bool {
	return p.FloorNumber == 0 && !p.UnlockWarp
}

// Apply returns the profile with the update applied and stamped with at.
func (p Profile) Apply(update Progress, at time.Time) Profile {
	if update.FloorNumber != 0 {
		p.FloorNumber = update.FloorNumber
	}
	if update.UnlockWarp {
		p.CanWarp = true
	}
	p.LastUpdate = Day(at)
	return p
}

// Day truncates t to a UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Store persists profiles by user key.
type Store interface {
	// LoadProfile returns nil, nil when no profile exists for the key.
	LoadProfile(ctx context.Context, key string) (*Profile, error)
	CreateProfile(ctx context.Context, key string, p Profile) error
	// SaveProgress applies update to the stored profile, creating it from
	// Default if it does not exist.
	SaveProgress(ctx context.Context, key string, update Progress, at time.Time) error
}

// UserKey derives the storage key for a platform user id. Raw ids are never
// written to a store.
func UserKey(userID string) string {
	sum := blake2b.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}
