package provider

import (
	"context"
)

// SessionLine is one cart line forwarded to the payment provider.
type SessionLine struct {
	ProductID string
	Name      string
	UnitPrice int64
	Quantity  int
}

// SessionInput holds the parameters for creating a hosted payment session.
type SessionInput struct {
	SessionID string
	Lines     []SessionLine
	Amount    int64
	Currency  string
	Country   string
}

// SessionResult holds the created payment session returned by the provider.
type SessionResult struct {
	ProviderSessionID string
	RedirectURL       string
}

// Provider defines the interface for hosted payment session integrations.
type Provider interface {
	// Name returns the provider name (e.g., "mock", "hosted").
	Name() string

	// CreateSession creates a hosted payment session for the given cart.
	CreateSession(ctx context.Context, input *SessionInput) (*SessionResult, error)
}
