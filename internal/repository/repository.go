package repository

import (
	"context"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
//
// Persistence is best-effort by contract: callers treat Load misses as a
// fresh cart and must not let Save failures surface to the shopper.
type CartRepository interface {
	// Load retrieves a cart by its session ID. A missing key returns
	// ErrNotFound; a corrupt stored value degrades to whatever entries could
	// be salvaged, never to a parse error.
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart from the store by session ID.
	Delete(ctx context.Context, sessionID string) error
}
