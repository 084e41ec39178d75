package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/teddyboy999/ecommerce-with-stripe/pkg/errors"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/catalog"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/domain"
)

const keyPrefix = "cart:"

// CartRepository implements repository.CartRepository using Redis.
//
// The stored value is the minimal line map {"productId": quantity}. Prices
// and display names are rebound from the catalog on every load, so a stored
// cart can never resurrect a stale price.
type CartRepository struct {
	client  *redis.Client
	catalog *catalog.Catalog
	logger  *slog.Logger
	ttl     time.Duration
}

// NewCartRepository creates a new Redis-backed cart repository.
func NewCartRepository(client *redis.Client, cat *catalog.Catalog, logger *slog.Logger, ttl time.Duration) *CartRepository {
	return &CartRepository{
		client:  client,
		catalog: cat,
		logger:  logger,
		ttl:     ttl,
	}
}

// Load retrieves a cart by session ID from Redis. Entries that no longer
// validate (unknown product, non-positive or over-ceiling quantity) are
// dropped one by one; a value that does not parse at all yields an empty
// cart. Missing keys return ErrNotFound so the service starts fresh.
func (r *CartRepository) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	key := keyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("cart", sessionID)
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	lines := r.decodeLines(ctx, sessionID, data)

	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Lines:     lines,
		Currency:  "JPY",
		UpdatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}, nil
}

// decodeLines parses the stored quantity map, keeping only entries that still
// pass catalog and quantity validation. Catalog order is preserved so reloads
// render lines in a stable order.
func (r *CartRepository) decodeLines(ctx context.Context, sessionID string, data []byte) []domain.CartLine {
	var stored map[string]int
	if err := json.Unmarshal(data, &stored); err != nil {
		r.logger.WarnContext(ctx, "discarding corrupt cart value",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return []domain.CartLine{}
	}

	lines := make([]domain.CartLine, 0, len(stored))
	for _, p := range r.catalog.List() {
		qty, ok := stored[p.ID]
		if !ok {
			continue
		}
		if qty <= 0 || qty > domain.MaxLineQuantity {
			r.logger.WarnContext(ctx, "discarding cart entry with invalid quantity",
				slog.String("session_id", sessionID),
				slog.String("product_id", p.ID),
				slog.Int("quantity", qty),
			)
			continue
		}
		lines = append(lines, domain.CartLine{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  qty,
			UnitPrice: p.Price,
		})
		delete(stored, p.ID)
	}

	for id := range stored {
		r.logger.WarnContext(ctx, "discarding cart entry for unknown product",
			slog.String("session_id", sessionID),
			slog.String("product_id", id),
		)
	}

	return lines
}

// Save persists the cart's line map to Redis with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	key := keyPrefix + cart.SessionID

	stored := make(map[string]int, len(cart.Lines))
	for _, l := range cart.Lines {
		stored[l.ProductID] = l.Quantity
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set cart: %w", err)
	}

	return nil
}

// Delete removes a cart from Redis by session ID.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	key := keyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del cart: %w", err)
	}

	return nil
}
