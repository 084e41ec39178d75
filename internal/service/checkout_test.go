package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/teddyboy999/ecommerce-with-stripe/pkg/errors"
	pkgkafka "github.com/teddyboy999/ecommerce-with-stripe/pkg/kafka"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/catalog"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/event"
	"github.com/teddyboy999/ecommerce-with-stripe/internal/provider"
)

// --- Mock Provider ---

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string {
	return "mock"
}

func (m *mockProvider) CreateSession(ctx context.Context, input *provider.SessionInput) (*provider.SessionResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SessionResult), args.Error(1)
}

func newTestCheckout(repo *mockCartRepository, p provider.Provider) *CheckoutService {
	logger := newTestLogger()
	cat, err := catalog.NewDefault()
	if err != nil {
		panic(err)
	}
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	producer := event.NewProducer(kafkaProducer, logger)
	carts := NewCartService(repo, cat, producer, logger, 24*time.Hour)
	return NewCheckoutService(carts, p, producer, logger)
}

// --- Initiate ---

func TestInitiate_Success(t *testing.T) {
	repo := new(mockCartRepository)
	p := new(mockProvider)
	svc := newTestCheckout(repo, p)
	ctx := context.Background()

	repo.On("Load", ctx, "sess-1").Return(cartWithLines("sess-1", onigiriLine(2)), nil)
	p.On("CreateSession", ctx, mock.MatchedBy(func(in *provider.SessionInput) bool {
		return in.SessionID == "sess-1" &&
			in.Amount == 240 &&
			in.Currency == "JPY" &&
			len(in.Lines) == 1 &&
			in.Lines[0].Quantity == 2
	})).Return(&provider.SessionResult{
		ProviderSessionID: "cs_123",
		RedirectURL:       "https://pay.example.com/cs_123",
	}, nil)

	result, err := svc.Initiate(ctx, "sess-1")

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_123", result.RedirectURL)
	assert.Equal(t, "cs_123", result.ProviderSessionID)
	assert.Equal(t, int64(240), result.Cart.TotalPrice())

	repo.AssertExpectations(t)
	p.AssertExpectations(t)
}

func TestInitiate_EmptyCart_ProviderNeverContacted(t *testing.T) {
	repo := new(mockCartRepository)
	p := new(mockProvider)
	svc := newTestCheckout(repo, p)
	ctx := context.Background()

	repo.On("Load", ctx, "sess-1").Return(nil, notFound("sess-1"))

	result, err := svc.Initiate(ctx, "sess-1")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmptyCart)

	p.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestInitiate_ProviderError(t *testing.T) {
	repo := new(mockCartRepository)
	p := new(mockProvider)
	svc := newTestCheckout(repo, p)
	ctx := context.Background()

	repo.On("Load", ctx, "sess-1").Return(cartWithLines("sess-1", onigiriLine(1)), nil)
	p.On("CreateSession", ctx, mock.Anything).Return(nil, apperrors.PaymentFailed("card declined"))

	result, err := svc.Initiate(ctx, "sess-1")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPaymentFailed)
}

func TestInitiate_EmptySessionID(t *testing.T) {
	repo := new(mockCartRepository)
	p := new(mockProvider)
	svc := newTestCheckout(repo, p)

	_, err := svc.Initiate(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- Complete ---

func TestComplete_ClearsCart(t *testing.T) {
	repo := new(mockCartRepository)
	p := new(mockProvider)
	svc := newTestCheckout(repo, p)
	ctx := context.Background()

	repo.On("Load", ctx, "sess-1").Return(cartWithLines("sess-1", onigiriLine(2)), nil)
	repo.On("Delete", ctx, "sess-1").Return(nil)

	err := svc.Complete(ctx, "sess-1", "cs_123")

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestComplete_ClearFailure(t *testing.T) {
	repo := new(mockCartRepository)
	p := new(mockProvider)
	svc := newTestCheckout(repo, p)
	ctx := context.Background()

	repo.On("Load", ctx, "sess-1").Return(cartWithLines("sess-1", onigiriLine(2)), nil)
	repo.On("Delete", ctx, "sess-1").Return(errors.New("redis down"))

	err := svc.Complete(ctx, "sess-1", "cs_123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear cart after checkout")
}

func TestComplete_EmptySessionID(t *testing.T) {
	repo := new(mockCartRepository)
	p := new(mockProvider)
	svc := newTestCheckout(repo, p)

	err := svc.Complete(context.Background(), "", "cs_123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
