package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func newTestService(store Store) *Service {
	s := NewService(store)
	s.now = func() time.Time { return fixedNow }
	return s
}

// failingStore fails every call.
type failingStore struct {
	saves int
}

func (f *failingStore) LoadProfile(ctx context.Context, key string) (*Profile, error) {
	return nil, errors.New("connection refused")
}

func (f *failingStore) CreateProfile(ctx context.Context, key string, p Profile) error {
	return errors.New("connection refused")
}

func (f *failingStore) SaveProgress(ctx context.Context, key string, update Progress, at time.Time) error {
	f.saves++
	return errors.New("connection refused")
}

func TestService_LoadCreatesDefault(t *testing.T) {
	store := NewMemoryStore()
	s := newTestService(store)

	p := s.Load(context.Background(), "user-1")
	assert.Equal(t, 1, p.FloorNumber)
	assert.False(t, p.CanWarp)
	assert.Equal(t, 1, store.Len())

	stored, err := store.LoadProfile(context.Background(), UserKey("user-1"))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "2026-10-16", stored.LastUpdate.Format(DateLayout))
}

func TestService_LoadExisting(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.CreateProfile(context.Background(), UserKey("user-2"), Profile{CanWarp: true, FloorNumber: 3}))
	s := newTestService(store)

	p := s.Load(context.Background(), "user-2")
	assert.True(t, p.CanWarp)
	assert.Equal(t, 3, p.FloorNumber)
}

func TestService_LoadHealsCorruptFloor(t *testing.T) {
	for _, floor := range []int{0, 4, -2} {
		store := NewMemoryStore()
		key := UserKey("user-3")
		require.NoError(t, store.CreateProfile(context.Background(), key, Profile{CanWarp: true, FloorNumber: floor}))
		s := newTestService(store)

		p := s.Load(context.Background(), "user-3")
		assert.Equal(t, 1, p.FloorNumber, "floor %d", floor)
		assert.True(t, p.CanWarp)

		stored, err := store.LoadProfile(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, 1, stored.FloorNumber)
	}
}

func TestService_LoadDegradesOnError(t *testing.T) {
	s := newTestService(&failingStore{})

	p := s.Load(context.Background(), "user-4")
	assert.Equal(t, Default(), p)
}

func TestService_SaveProgress(t *testing.T) {
	store := NewMemoryStore()
	s := newTestService(store)
	ctx := context.Background()

	s.SaveProgress(ctx, "user-5", Progress{FloorNumber: 2})
	p, err := store.LoadProfile(ctx, UserKey("user-5"))
	require.NoError(t, err)
	assert.Equal(t, 2, p.FloorNumber)
	assert.False(t, p.CanWarp)

	s.SaveProgress(ctx, "user-5", Progress{FloorNumber: 1, UnlockWarp: true})
	p, err = store.LoadProfile(ctx, UserKey("user-5"))
	require.NoError(t, err)
	assert.Equal(t, 1, p.FloorNumber)
	assert.True(t, p.CanWarp)
}

func TestService_SaveProgressSwallowsErrors(t *testing.T) {
	store := &failingStore{}
	s := newTestService(store)

	assert.NotPanics(t, func() {
		s.SaveProgress(context.Background(), "user-6", Progress{FloorNumber: 3})
	})
	assert.Equal(t, 1, store.saves, "a failed save is attempted exactly once")
}

func TestService_SaveProgressSkipsEmpty(t *testing.T) {
	store := &failingStore{}
	s := newTestService(store)

	s.SaveProgress(context.Background(), "user-7", Progress{})
	assert.Equal(t, 0, store.saves)
}
