package service

import (
	"context"
	"fmt"
	"time"

	"github.com/konecta/cart-service/internal/domain/entity"
	"github.com/konecta/cart-service/internal/platform/logger"
	"github.com/konecta/cart-service/internal/repository"
)

// CartService owns cart content and cart expiry as two independent concerns
// on the same Redis key. AddItem and RemoveItem are read-modify-write over
// the whole entity without compare-and-swap: two concurrent writers for the
// same user race and the later Save wins in full. TTL policy (when to set or
// extend) belongs to callers; AddItem and RemoveItem never touch expiry.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*entity.Cart, error)
	AddItem(ctx context.Context, userID string, productID int64, quantity int, price float64) (*entity.Cart, error)
	RemoveItem(ctx context.Context, userID string, productID int64) (*entity.Cart, error)
	ClearCart(ctx context.Context, userID string) error
	SetTTL(ctx context.Context, userID string, ttl time.Duration) error
	ExtendTTL(ctx context.Context, userID string, additional time.Duration) error
	RemoveTTL(ctx context.Context, userID string) error
}

type cartService struct {
	cartRepo repository.CartRepository
	log      logger.Logger
}

func NewCartService(cartRepo repository.CartRepository, log logger.Logger) CartService {
	return &cartService{
		cartRepo: cartRepo,
		log:      log,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID string) (*entity.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Errorf("Error getting cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, userID string, productID int64, quantity int, price float64) (*entity.Cart, error) {
	s.log.Infof("Adding item to cart: UserID=%s, ProductID=%d, Quantity=%d", userID, productID, quantity)

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Errorf("Error getting cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}

	if err := cart.AddItem(productID, quantity, price); err != nil {
		s.log.Errorf("Error adding item %d to cart entity for user %s: %v", productID, userID, err)
		return nil, fmt.Errorf("could not add item to cart: %w", err)
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.log.Errorf("Error saving cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not save cart: %w", err)
	}
	s.log.Infof("Item added to cart successfully for user %s", userID)
	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID string, productID int64) (*entity.Cart, error) {
	s.log.Infof("Removing item from cart: UserID=%s, ProductID=%d", userID, productID)

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Errorf("Error getting cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}

	cart.RemoveItem(productID)

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		s.log.Errorf("Error saving cart for user %s: %v", userID, err)
		return nil, fmt.Errorf("could not save cart: %w", err)
	}
	s.log.Infof("Item removed from cart successfully for user %s", userID)
	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID string) error {
	s.log.Infof("Clearing cart for user: UserID=%s", userID)

	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		s.log.Errorf("Error deleting cart for user %s: %v", userID, err)
		return fmt.Errorf("could not clear cart: %w", err)
	}
	s.log.Infof("Cart cleared successfully for user %s", userID)
	return nil
}

func (s *cartService) SetTTL(ctx context.Context, userID string, ttl time.Duration) error {
	if err := s.cartRepo.SetTTL(ctx, userID, ttl); err != nil {
		s.log.Errorf("Error setting cart ttl for user %s: %v", userID, err)
		return fmt.Errorf("could not set cart ttl: %w", err)
	}
	return nil
}

func (s *cartService) ExtendTTL(ctx context.Context, userID string, additional time.Duration) error {
	if err := s.cartRepo.ExtendTTL(ctx, userID, additional); err != nil {
		s.log.Errorf("Error extending cart ttl for user %s: %v", userID, err)
		return fmt.Errorf("could not extend cart ttl: %w", err)
	}
	s.log.Infof("Cart TTL extended for user %s by %s", userID, additional)
	return nil
}

func (s *cartService) RemoveTTL(ctx context.Context, userID string) error {
	if err := s.cartRepo.RemoveTTL(ctx, userID); err != nil {
		s.log.Errorf("Error removing cart ttl for user %s: %v", userID, err)
		return fmt.Errorf("could not remove cart ttl: %w", err)
	}
	return nil
}
