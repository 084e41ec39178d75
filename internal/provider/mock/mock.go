package mock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/provider"
)

// Provider is a mock payment session provider that always succeeds.
// It is intended for development and testing purposes.
type Provider struct{}

// NewProvider creates a new mock payment provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mock"
}

// CreateSession simulates creating a hosted payment session that always succeeds.
func (p *Provider) CreateSession(_ context.Context, input *provider.SessionInput) (*provider.SessionResult, error) {
	// Simulate a small processing delay.
	time.Sleep(50 * time.Millisecond)

	id := "mock_cs_" + uuid.New().String()
	return &provider.SessionResult{
		ProviderSessionID: id,
		RedirectURL:       "https://checkout.example.com/pay/" + id + "?session=" + input.SessionID,
	}, nil
}
