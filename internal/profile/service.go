package profile

import (
	"context"
	"time"

	"github.com/mysterioushouse/server/internal/logger"
)

// Service is the engine's view of persistence. It never reports failures:
// a profile that cannot be read is treated as a new player, and a save that
// fails is logged and dropped.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a Service over store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Load returns the player's profile, creating a default one on first
// contact. A stored floor outside the known range is reset to the first
// floor and written back.
func (s *Service) Load(ctx context.Context, userID string) Profile {
	key := UserKey(userID)

	p, err := s.store.LoadProfile(ctx, key)
	if err != nil {
		logger.Error("Failed to load profile, using defaults", "user_key", key, "error", err)
		return Default()
	}

	if p == nil {
		created := Default()
		created.LastUpdate = Day(s.now())
		if err := s.store.CreateProfile(ctx, key, created); err != nil {
			logger.Error("Failed to create profile", "user_key", key, "error", err)
		} else {
			logger.Info("Created profile", "user_key", key)
		}
		return created
	}

	if !p.ValidFloor() {
		logger.Warning("Stored floor out of range, resetting", "user_key", key, "floor", p.FloorNumber)
		healed := p.Apply(Progress{FloorNumber: MinFloor}, s.now())
		if err := s.store.SaveProgress(ctx, key, Progress{FloorNumber: MinFloor}, s.now()); err != nil {
			logger.Error("Failed to reset profile floor", "user_key", key, "error", err)
		}
		return healed
	}

	return *p
}

// SaveProgress writes a partial update. Failures are logged and swallowed.
func (s *Service) SaveProgress(ctx context.Context, userID string, update Progress) {
	if update.Empty() {
		return
	}
	key := UserKey(userID)
	if err := s.store.SaveProgress(ctx, key, update, s.now()); err != nil {
		logger.Error("Failed to save progress", "user_key", key, "floor", update.FloorNumber, "unlock_warp", update.UnlockWarp, "error", err)
		return
	}
	logger.Debug("Saved progress", "user_key", key, "floor", update.FloorNumber, "unlock_warp", update.UnlockWarp)
}
