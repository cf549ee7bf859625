package profile

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestSaveAndGet_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	saved := &domain.UserProfile{
		Name:     "Asha",
		Email:    "asha@example.com",
		Phone:    "9999999999",
		Address1: "12 Farm Lane",
		City:     "Pune",
		State:    "MH",
		Postcode: "411001",
		Country:  "IN",
	}
	require.NoError(t, store.Save(ctx, "visitor-1", saved))
	assert.False(t, saved.UpdatedAt.IsZero(), "Save stamps UpdatedAt")

	got, err := store.Get(ctx, "visitor-1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, "asha@example.com", got.Email)
	assert.Equal(t, "411001", got.Postcode)
}

func TestGet_MissingProfile(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSave_UsesFixedKeyPrefix(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), "visitor-1", &domain.UserProfile{Email: "a@b.c"}))
	assert.True(t, mr.Exists("sudisha-user:visitor-1"))
}

func TestSave_SetsTTL(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), "visitor-1", &domain.UserProfile{Email: "a@b.c"}))
	assert.Greater(t, mr.TTL("sudisha-user:visitor-1").Hours(), float64(0))
}

func TestDelete_RemovesProfile(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "visitor-1", &domain.UserProfile{Email: "a@b.c"}))
	require.NoError(t, store.Delete(ctx, "visitor-1"))

	_, err := store.Get(ctx, "visitor-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_MissingProfileIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Delete(context.Background(), "nobody"))
}

func TestGet_CorruptPayload(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set("sudisha-user:visitor-1", "{not json"))
	_, err := store.Get(context.Background(), "visitor-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
