package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/teddyboy999/ecommerce-with-stripe/pkg/errors"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/domain"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/event"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/provider"
)

// CheckoutResult holds the outcome of a checkout initiation.
type CheckoutResult struct {
	RedirectURL       string
	ProviderSessionID string
	Cart              *domain.Cart
}

// CheckoutService hands the cart off to a hosted payment provider.
type CheckoutService struct {
	carts    *CartService
	provider provider.Provider
	producer *event.Producer
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(carts *CartService, p provider.Provider, producer *event.Producer, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		provider: p,
		producer: producer,
		logger:   logger,
	}
}

// Initiate creates a hosted payment session for the session's cart. An empty
// cart is rejected locally and the payment provider is never contacted.
func (s *CheckoutService) Initiate(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.carts.Summary(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !s.carts.CanCheckout(cart) {
		return nil, apperrors.EmptyCart()
	}

	lines := make([]provider.SessionLine, len(cart.Lines))
	for i, l := range cart.Lines {
		lines[i] = provider.SessionLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}

	result, err := s.provider.CreateSession(ctx, &provider.SessionInput{
		SessionID: sessionID,
		Lines:     lines,
		Amount:    cart.TotalPrice(),
		Currency:  cart.Currency,
		Country:   "JP",
	})
	if err != nil {
		return nil, fmt.Errorf("create payment session: %w", err)
	}

	s.logger.InfoContext(ctx, "checkout initiated",
		slog.String("session_id", sessionID),
		slog.String("provider", s.provider.Name()),
		slog.String("provider_session_id", result.ProviderSessionID),
		slog.Int64("amount", cart.TotalPrice()),
	)

	return &CheckoutResult{
		RedirectURL:       result.RedirectURL,
		ProviderSessionID: result.ProviderSessionID,
		Cart:              cart,
	}, nil
}

// Complete handles the hosted payment success callback. The cart is cleared
// and a checkout.completed event is published; this is the terminal
// transition out of the cart lifecycle.
func (s *CheckoutService) Complete(ctx context.Context, sessionID, providerSessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	cart, err := s.carts.Summary(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear cart after checkout: %w", err)
	}

	if err := s.producer.PublishCheckoutCompleted(ctx, cart, providerSessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.completed event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout completed",
		slog.String("session_id", sessionID),
		slog.String("provider_session_id", providerSessionID),
	)

	return nil
}
