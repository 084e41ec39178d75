package hosted

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	apperrors "github.com/teddyboy999/ecommerce-with-stripe/pkg/errors"
	"github.com/teddyboy999/ecommerce-with-stripe/pkg/httpclient"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/provider"
)

// The hosted payment page only serves Japanese storefronts.
const (
	supportedCurrency = "JPY"
	supportedCountry  = "JP"
)

// Provider creates payment sessions against a hosted-payment HTTP endpoint.
type Provider struct {
	client   *httpclient.CircuitBreakerClient
	endpoint string
	logger   *slog.Logger
}

// NewProvider creates a hosted payment provider talking to the given endpoint.
func NewProvider(client *httpclient.CircuitBreakerClient, endpoint string, logger *slog.Logger) *Provider {
	return &Provider{
		client:   client,
		endpoint: endpoint,
		logger:   logger,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "hosted"
}

type sessionLineRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type sessionRequest struct {
	Reference string               `json:"reference"`
	Lines     []sessionLineRequest `json:"lines"`
	Amount    int64                `json:"amount"`
	Currency  string               `json:"currency"`
	Country   string               `json:"country"`
}

type sessionResponse struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirect_url"`
}

// CreateSession creates a hosted payment session for the given cart.
func (p *Provider) CreateSession(ctx context.Context, input *provider.SessionInput) (*provider.SessionResult, error) {
	if input.Currency != supportedCurrency {
		return nil, apperrors.PaymentFailed(fmt.Sprintf("currency %s is not supported, only %s", input.Currency, supportedCurrency))
	}
	if input.Country != "" && input.Country != supportedCountry {
		return nil, apperrors.PaymentFailed(fmt.Sprintf("country %s is not supported, only %s", input.Country, supportedCountry))
	}

	lines := make([]sessionLineRequest, len(input.Lines))
	for i, l := range input.Lines {
		lines[i] = sessionLineRequest{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}

	reqBody := sessionRequest{
		Reference: input.SessionID,
		Lines:     lines,
		Amount:    input.Amount,
		Currency:  input.Currency,
		Country:   supportedCountry,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	resp, err := p.client.Post(ctx, p.endpoint+"/v1/sessions", "application/json", bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			return nil, apperrors.ServiceUnavailable("payment provider is temporarily unavailable")
		}
		return nil, fmt.Errorf("create payment session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "payment provider")
	}

	var session sessionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	if session.RedirectURL == "" {
		return nil, apperrors.PaymentFailed("payment provider returned no redirect URL")
	}

	p.logger.DebugContext(ctx, "payment session created",
		slog.String("provider_session_id", session.ID),
		slog.String("reference", input.SessionID),
	)

	return &provider.SessionResult{
		ProviderSessionID: session.ID,
		RedirectURL:       session.RedirectURL,
	}, nil
}
