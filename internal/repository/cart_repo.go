package repository

import (
	"context"
	"time"

	"github.com/konecta/cart-service/internal/domain/entity"
)

// CartRepository is the cache-level port for cart state. Key expiry is
// managed independently of the serialized entity: Save never disturbs an
// existing TTL, and the TTL methods never touch entity content.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	DeleteByUserID(ctx context.Context, userID string) error

	SetTTL(ctx context.Context, userID string, ttl time.Duration) error
	ExtendTTL(ctx context.Context, userID string, additional time.Duration) error
	RemoveTTL(ctx context.Context, userID string) error
	// TTL reports the remaining expiry. The second return is false when the
	// key has no expiry set (including when the key does not exist).
	TTL(ctx context.Context, userID string) (time.Duration, bool, error)
}
