package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/konecta/cart-service/internal/domain/entity"
	"github.com/konecta/cart-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix = "cart:"
)

type cartRepository struct {
	client *redis.Client
}

func NewCartRepository(client *redis.Client) repository.CartRepository {
	return &cartRepository{
		client: client,
	}
}

func (r *cartRepository) getCartKey(userID string) string {
	return cartKeyPrefix + userID
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*entity.Cart, error) {
	key := r.getCartKey(userID)
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entity.NewCart(userID), nil
		}
		return nil, fmt.Errorf("failed to get cart for user %s from redis: %w: %w", userID, repository.ErrQueryFailed, err)
	}

	var cart entity.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		// Undecodable payload is discarded, not surfaced: the caller gets a
		// fresh cart and the next write replaces the stored value.
		return entity.NewCart(userID), nil
	}

	cart.UserID = userID
	if cart.Items == nil {
		cart.Items = make([]entity.CartItem, 0)
	}
	return &cart, nil
}

// Save rewrites the full entity. SET with KEEPTTL leaves any existing key
// expiry untouched, so content writes and TTL management stay independent.
func (r *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	if cart == nil || cart.UserID == "" {
		return errors.New("cannot save nil cart or cart with empty userID")
	}

	key := r.getCartKey(cart.UserID)
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for user %s: %w", cart.UserID, err)
	}

	if err := r.client.Set(ctx, key, data, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart for user %s to redis: %w: %w", cart.UserID, repository.ErrUpdateFailed, err)
	}
	return nil
}

func (r *cartRepository) DeleteByUserID(ctx context.Context, userID string) error {
	key := r.getCartKey(userID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart for user %s from redis: %w: %w", userID, repository.ErrDeleteFailed, err)
	}
	return nil
}

func (r *cartRepository) SetTTL(ctx context.Context, userID string, ttl time.Duration) error {
	key := r.getCartKey(userID)
	if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set ttl on cart for user %s: %w: %w", userID, repository.ErrUpdateFailed, err)
	}
	return nil
}

// ExtendTTL adds to the remaining expiry. A key without expiry gets
// additional as its new TTL; EXPIRE on a missing key is a no-op. The TTL
// read and the EXPIRE are separate calls, so a concurrent TTL change in
// between is overwritten; this window is accepted, not corrected.
func (r *cartRepository) ExtendTTL(ctx context.Context, userID string, additional time.Duration) error {
	key := r.getCartKey(userID)

	remaining, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to read ttl on cart for user %s: %w: %w", userID, repository.ErrQueryFailed, err)
	}

	newTTL := additional
	if remaining > 0 {
		newTTL = remaining + additional
	}

	if err := r.client.Expire(ctx, key, newTTL).Err(); err != nil {
		return fmt.Errorf("failed to extend ttl on cart for user %s: %w: %w", userID, repository.ErrUpdateFailed, err)
	}
	return nil
}

func (r *cartRepository) RemoveTTL(ctx context.Context, userID string) error {
	key := r.getCartKey(userID)
	if err := r.client.Persist(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to remove ttl on cart for user %s: %w: %w", userID, repository.ErrUpdateFailed, err)
	}
	return nil
}

func (r *cartRepository) TTL(ctx context.Context, userID string) (time.Duration, bool, error) {
	key := r.getCartKey(userID)

	remaining, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, false, fmt.Errorf("failed to read ttl on cart for user %s: %w: %w", userID, repository.ErrQueryFailed, err)
	}
	// go-redis reports "no key" and "no expiry" as negative durations.
	if remaining < 0 {
		return 0, false, nil
	}
	return remaining, true, nil
}
