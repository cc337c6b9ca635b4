package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/mysterioushouse/server/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 10, 16, 7, 0, 0, 0, time.UTC)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store, mr
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestRedisStore_LoadMissing(t *testing.T) {
	store, _ := setupTestRedis(t)

	p, err := store.LoadProfile(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestRedisStore_CreateAndLoad(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	want := profile.Profile{CanWarp: true, FloorNumber: 2, LastUpdate: profile.Day(testDay)}

	require.NoError(t, store.CreateProfile(ctx, "abc", want))

	got, err := store.LoadProfile(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, want.LastUpdate.Equal(got.LastUpdate))
	assert.Equal(t, want.CanWarp, got.CanWarp)
	assert.Equal(t, want.FloorNumber, got.FloorNumber)

	assert.Equal(t, "2", mr.HGet("profile:abc", fieldFloorNumber))
	assert.Equal(t, "true", mr.HGet("profile:abc", fieldCanWarp))
	assert.Equal(t, "2026-10-16", mr.HGet("profile:abc", fieldLastUpdate))
}

func TestRedisStore_CreateKeepsExisting(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.CreateProfile(ctx, "abc", profile.Profile{FloorNumber: 3}))
	require.NoError(t, store.CreateProfile(ctx, "abc", profile.Default()))

	got, err := store.LoadProfile(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, got.FloorNumber)
}

func TestRedisStore_SaveProgress(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.SaveProgress(ctx, "abc", profile.Progress{FloorNumber: 2}, testDay))
	got, err := store.LoadProfile(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, got.FloorNumber)
	assert.False(t, got.CanWarp)

	require.NoError(t, store.SaveProgress(ctx, "abc", profile.Progress{FloorNumber: 1, UnlockWarp: true}, testDay))
	require.NoError(t, store.SaveProgress(ctx, "abc", profile.Progress{FloorNumber: 2}, testDay))
	got, err = store.LoadProfile(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, got.FloorNumber)
	assert.True(t, got.CanWarp, "warp never relocks")
}

func TestRedisStore_CorruptHash(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.HSet("profile:bad", fieldFloorNumber, "upstairs", fieldCanWarp, "maybe", fieldLastUpdate, "yesterday")

	p, err := store.LoadProfile(context.Background(), "bad")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 0, p.FloorNumber)
	assert.False(t, p.ValidFloor())
	assert.False(t, p.CanWarp)
	assert.True(t, p.LastUpdate.IsZero())
}

func TestRedisStore_MissingFloorDecodesOutOfRange(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.HSet("profile:nofloor", fieldCanWarp, "true")

	p, err := store.LoadProfile(context.Background(), "nofloor")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.False(t, p.ValidFloor())
	assert.True(t, p.CanWarp)
}

func TestRedisStore_SaveOverCorruptHash(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	mr.HSet("profile:bad", fieldFloorNumber, "upstairs")

	require.NoError(t, store.SaveProgress(ctx, "bad", profile.Progress{UnlockWarp: true}, testDay))
	assert.Equal(t, "1", mr.HGet("profile:bad", fieldFloorNumber))
	assert.Equal(t, "true", mr.HGet("profile:bad", fieldCanWarp))
}

func TestRedisStore_ConcurrentSaves(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			update := profile.Progress{FloorNumber: 2}
			if i == 0 {
				update = profile.Progress{UnlockWarp: true}
			}
			// Lost optimistic-lock races past the retry budget are acceptable
			// here; the unlock below must still land.
			_ = store.SaveProgress(ctx, "racer", update, testDay)
		}(i)
	}
	wg.Wait()

	require.NoError(t, store.SaveProgress(ctx, "racer", profile.Progress{UnlockWarp: true}, testDay))
	got, err := store.LoadProfile(ctx, "racer")
	require.NoError(t, err)
	assert.True(t, got.CanWarp)
	assert.Equal(t, 2, got.FloorNumber)
}

func TestRedisStore_ServiceHealsFloor(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.HSet("profile:"+profile.UserKey("player"), fieldFloorNumber, "7", fieldCanWarp, "true")

	p := profile.NewService(store).Load(context.Background(), "player")
	assert.Equal(t, 1, p.FloorNumber)
	assert.True(t, p.CanWarp)
	assert.Equal(t, "1", mr.HGet("profile:"+profile.UserKey("player"), fieldFloorNumber))
}

func TestRedisStore_ServiceRecoversUnreadableFloor(t *testing.T) {
	store, mr := setupTestRedis(t)
	ctx := context.Background()
	redisKey := "profile:" + profile.UserKey("player")
	mr.HSet(redisKey, fieldFloorNumber, "upstairs")

	svc := profile.NewService(store)
	p := svc.Load(ctx, "player")
	assert.Equal(t, 1, p.FloorNumber)
	assert.Equal(t, "1", mr.HGet(redisKey, fieldFloorNumber))

	svc.SaveProgress(ctx, "player", profile.Progress{FloorNumber: 2})
	assert.Equal(t, 2, svc.Load(ctx, "player").FloorNumber)

	svc.SaveProgress(ctx, "player", profile.Progress{FloorNumber: 1, UnlockWarp: true})
	p = svc.Load(ctx, "player")
	assert.Equal(t, 1, p.FloorNumber)
	assert.True(t, p.CanWarp)
	assert.Equal(t, "true", mr.HGet(redisKey, fieldCanWarp))
}
