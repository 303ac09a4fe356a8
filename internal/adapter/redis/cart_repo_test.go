package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/konecta/cart-service/internal/domain/entity"
	"github.com/konecta/cart-service/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a real Redis instance:
//
//	CART_TEST_REDIS_ADDR=localhost:6379 go test ./internal/adapter/redis/...
func testClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("CART_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CART_TEST_REDIS_ADDR not set, skipping redis integration tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func testUserID(t *testing.T) string {
	return fmt.Sprintf("test-%s-%d", t.Name(), time.Now().UnixNano())
}

func cleanupCart(t *testing.T, client *redis.Client, userID string) {
	t.Cleanup(func() {
		_ = client.Del(context.Background(), cartKeyPrefix+userID).Err()
	})
}

// No server needed: a cancelled context makes every command fail before
// dialing, which is enough to observe the wrapped sentinel errors.
func TestCartRepository_InfraFailuresWrapSentinelErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = client.Close() })
	repo := NewCartRepository(client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetByUserID(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrQueryFailed)

	cart := entity.NewCart("u1")
	require.NoError(t, cart.AddItem(10, 1, 9.99))
	assert.ErrorIs(t, repo.Save(ctx, cart), repository.ErrUpdateFailed)

	assert.ErrorIs(t, repo.DeleteByUserID(ctx, "u1"), repository.ErrDeleteFailed)
	assert.ErrorIs(t, repo.SetTTL(ctx, "u1", time.Hour), repository.ErrUpdateFailed)
	assert.ErrorIs(t, repo.ExtendTTL(ctx, "u1", time.Hour), repository.ErrQueryFailed)
	assert.ErrorIs(t, repo.RemoveTTL(ctx, "u1"), repository.ErrUpdateFailed)

	_, _, err = repo.TTL(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrQueryFailed)
}

func TestCartRepository_GetByUserID_MissingKeyIsEmptyCart(t *testing.T) {
	client := testClient(t)
	repo := NewCartRepository(client)
	userID := testUserID(t)

	cart, err := repo.GetByUserID(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, userID, cart.UserID)
	assert.Empty(t, cart.Items)
}

func TestCartRepository_GetByUserID_CorruptPayloadIsEmptyCart(t *testing.T) {
	client := testClient(t)
	repo := NewCartRepository(client)
	userID := testUserID(t)
	cleanupCart(t, client, userID)

	require.NoError(t, client.Set(context.Background(), cartKeyPrefix+userID, "{{{not json", 0).Err())

	cart, err := repo.GetByUserID(context.Background(), userID)

	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartRepository_SaveAndGetRoundTrip(t *testing.T) {
	client := testClient(t)
	repo := NewCartRepository(client)
	userID := testUserID(t)
	cleanupCart(t, client, userID)

	cart := entity.NewCart(userID)
	require.NoError(t, cart.AddItem(10, 2, 9.99))
	require.NoError(t, repo.Save(context.Background(), cart))

	loaded, err := repo.GetByUserID(context.Background(), userID)

	assert.NoError(t, err)
	assert.Equal(t, userID, loaded.UserID)
	assert.Equal(t, cart.Items, loaded.Items)
}

func TestCartRepository_SavePreservesTTL(t *testing.T) {
	client := testClient(t)
	repo := NewCartRepository(client)
	userID := testUserID(t)
	cleanupCart(t, client, userID)
	ctx := context.Background()

	cart := entity.NewCart(userID)
	require.NoError(t, cart.AddItem(10, 1, 9.99))
	require.NoError(t, repo.Save(ctx, cart))
	require.NoError(t, repo.SetTTL(ctx, userID, time.Hour))

	require.NoError(t, cart.AddItem(20, 1, 5.00))
	require.NoError(t, repo.Save(ctx, cart))

	remaining, ok, err := repo.TTL(ctx, userID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), remaining.Seconds(), 5)
}

func TestCartRepository_SaveWithoutTTLLeavesNoExpiry(t *testing.T) {
	client := testClient(t)
	repo := NewCartRepository(client)
	userID := testUserID(t)
	cleanupCart(t, client, userID)
	ctx := context.Background()

	cart := entity.NewCart(userID)
	require.NoError(t, cart.AddItem(10, 1, 9.99))
	require.NoError(t, repo.Save(ctx, cart))

	_, ok, err := repo.TTL(ctx, userID)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCartRepository_ExtendTTL_NoExpiryEstablishesTTL(t *testing.T) {
	client := testClient(t)
	repo := NewCartRepository(client)
	userID := testUserID(t)
	cleanupCart(t, client, userID)
	ctx := context.Background()

	cart := entity.NewCart(userID)
	require.NoError(t, cart.AddItem(10, 1, 9.99))
	require.NoError(t, repo.Save(ctx, cart))

	extension := 7 * 24 * time.Hour
	require.NoError(t, repo.ExtendTTL(ctx, userID, extension))

	remaining, ok, err := repo.TTL(ctx, userID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, extension.Seconds(), remaining.Seconds(), 5)
}

func TestCartRepository_ExtendTTL_IsAdditive(t *testing.T) {
	client := testClient(t)
	repo := NewCartRepository(client)
	userID := testUserID(t)
	cleanupCart(t, client, userID)
	ctx := context.Background()

	cart := entity.NewCart(userID)
	require.NoError(t, cart.AddItem(10, 1, 9.99))
	require.NoError(t, repo.Save(ctx, cart))

	extension := 7 * 24 * time.Hour
	require.NoError(t, repo.ExtendTTL(ctx, userID, extension))
	require.NoError(t, repo.ExtendTTL(ctx, userID, extension))

	remaining, ok, err := repo.TTL(ctx, userID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, (2 * extension).Seconds(), remaining.Seconds(), 10)
}

func TestCartRepository_SetTTL_OverwritesExpiry(t *testing.T) {
	client := testClient(t)
	repo := NewCartRepository(client)
	userID := testUserID(t)
	cleanupCart(t, client, userID)
	ctx := context.Background()

	cart := entity.NewCart(userID)
	require.NoError(t, cart.AddItem(10, 1, 9.99))
	require.NoError(t, repo.Save(ctx, cart))
	require.NoError(t, repo.SetTTL(ctx, userID, 48*time.Hour))
	require.NoError(t, repo.SetTTL(ctx, userID, 24*time.Hour))

	remaining, ok, err := repo.TTL(ctx, userID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, (24 * time.Hour).Seconds(), remaining.Seconds(), 5)
}

func TestCartRepository_RemoveTTL(t *testing.T) {
	client := testClient(t)
	repo := NewCartRepository(client)
	userID := testUserID(t)
	cleanupCart(t, client, userID)
	ctx := context.Background()

	cart := entity.NewCart(userID)
	require.NoError(t, cart.AddItem(10, 1, 9.99))
	require.NoError(t, repo.Save(ctx, cart))
	require.NoError(t, repo.SetTTL(ctx, userID, time.Hour))
	require.NoError(t, repo.RemoveTTL(ctx, userID))

	_, ok, err := repo.TTL(ctx, userID)
	assert.NoError(t, err)
	assert.False(t, ok)

	loaded, err := repo.GetByUserID(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, loaded.Items, 1)
}

func TestCartRepository_DeleteRemovesValueAndTTL(t *testing.T) {
	client := testClient(t)
	repo := NewCartRepository(client)
	userID := testUserID(t)
	cleanupCart(t, client, userID)
	ctx := context.Background()

	cart := entity.NewCart(userID)
	require.NoError(t, cart.AddItem(10, 1, 9.99))
	require.NoError(t, repo.Save(ctx, cart))
	require.NoError(t, repo.SetTTL(ctx, userID, time.Hour))

	require.NoError(t, repo.DeleteByUserID(ctx, userID))

	loaded, err := repo.GetByUserID(ctx, userID)
	assert.NoError(t, err)
	assert.Empty(t, loaded.Items)

	_, ok, err := repo.TTL(ctx, userID)
	assert.NoError(t, err)
	assert.False(t, ok)
}
