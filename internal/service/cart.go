package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/teddyboy999/ecommerce-with-stripe/pkg/errors"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/catalog"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/domain"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/event"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/repository"
)

// CartService implements the business logic for cart operations. Quantities
// are bounded per line by domain.MaxLineQuantity and prices always come from
// the catalog, never from callers.
type CartService struct {
	repo     repository.CartRepository
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, cat *catalog.Catalog, producer *event.Producer, logger *slog.Logger, cartTTL time.Duration) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// AddItem increases the quantity of a product in the session's cart by delta,
// creating the line if absent. The resulting quantity must not exceed
// domain.MaxLineQuantity; a crossing add is rejected whole and the cart stays
// unchanged.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID string, delta int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if delta <= 0 {
		return nil, apperrors.InvalidQuantity("quantity must be greater than 0")
	}
	if delta > domain.MaxLineQuantity {
		return nil, apperrors.LimitExceeded(fmt.Sprintf("quantity must not exceed %d per product", domain.MaxLineQuantity))
	}

	product, err := s.catalog.Get(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindLineIndex(productID); idx >= 0 {
		newQty := cart.Lines[idx].Quantity + delta
		if newQty > domain.MaxLineQuantity {
			return nil, apperrors.LimitExceeded(fmt.Sprintf("cannot hold more than %d of %s", domain.MaxLineQuantity, product.Name))
		}
		cart.Lines[idx].Quantity = newQty
	} else {
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  delta,
			UnitPrice: product.Price,
		})
	}

	s.save(ctx, cart)
	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Int("delta", delta),
		slog.Int("total_quantity", cart.TotalQuantity()),
	)

	return cart, nil
}

// RemoveItem decreases the quantity of a product by delta, floored at zero;
// a line reaching zero is deleted. Removing a product that is not in the cart
// is a no-op that returns the unchanged cart.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID string, delta int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if delta <= 0 {
		return nil, apperrors.InvalidQuantity("quantity must be greater than 0")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Decrementing a product that is not in the cart is a no-op, even for
	// product IDs the catalog has never heard of.
	idx := cart.FindLineIndex(productID)
	if idx < 0 {
		return cart, nil
	}

	newQty := cart.Lines[idx].Quantity - delta
	if newQty <= 0 {
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	} else {
		cart.Lines[idx].Quantity = newQty
	}

	s.save(ctx, cart)
	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Int("delta", delta),
		slog.Int("total_quantity", cart.TotalQuantity()),
	)

	return cart, nil
}

// SetQuantity sets the absolute quantity of a product line. Zero deletes the
// line; values outside [0, MaxLineQuantity] are rejected with the cart
// unchanged.
func (s *CartService) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 0 {
		return nil, apperrors.InvalidQuantity("quantity must not be negative")
	}
	if quantity > domain.MaxLineQuantity {
		return nil, apperrors.LimitExceeded(fmt.Sprintf("quantity must not exceed %d per product", domain.MaxLineQuantity))
	}

	product, err := s.catalog.Get(productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindLineIndex(productID)
	switch {
	case quantity == 0 && idx >= 0:
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	case quantity == 0:
		// Setting an absent line to zero is a no-op.
		return cart, nil
	case idx >= 0:
		cart.Lines[idx].Quantity = quantity
	default:
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  quantity,
			UnitPrice: product.Price,
		})
	}

	s.save(ctx, cart)
	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart line quantity set",
		slog.String("session_id", sessionID),
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
		slog.Int("total_quantity", cart.TotalQuantity()),
	)

	return cart, nil
}

// Clear empties the session's cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

// Summary returns a read-only snapshot of the session's cart. A session with
// no stored cart gets an empty one.
func (s *CartService) Summary(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return cart.Snapshot(), nil
}

// CanCheckout reports whether the cart may proceed to checkout.
func (s *CartService) CanCheckout(cart *domain.Cart) bool {
	return cart != nil && cart.TotalQuantity() > 0
}

// save persists the cart best-effort. The in-memory cart stays authoritative;
// a failed write is logged and the session continues without persistence.
func (s *CartService) save(ctx context.Context, cart *domain.Cart) {
	now := time.Now().UTC()
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	if err := s.repo.Save(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist cart, continuing without persistence",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CartService) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

// getOrCreateCart loads the cart for a session, creating an empty one if none
// is stored.
func (s *CartService) getOrCreateCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

// newEmptyCart creates a new empty cart for the given session.
func (s *CartService) newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Lines:     []domain.CartLine{},
		Currency:  "JPY",
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cartTTL),
	}
}
