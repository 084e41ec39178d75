package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/teddyboy999/ecommerce-with-stripe/pkg/httputil"

	"github.com/teddyboy999/ecommerce-with-stripe/internal/service"
)

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// CompleteRequest is the JSON request body for the payment success callback.
type CompleteRequest struct {
	ProviderSessionID string `json:"provider_session_id"`
}

// CheckoutResponse is the JSON shape of a checkout initiation.
type CheckoutResponse struct {
	RedirectURL       string       `json:"redirect_url"`
	ProviderSessionID string       `json:"provider_session_id"`
	Session           CartResponse `json:"session"`
}

// Initiate handles POST /api/v1/checkout
func (h *CheckoutHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "session is required"},
		})
		return
	}

	result, err := h.service.Initiate(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: CheckoutResponse{
		RedirectURL:       result.RedirectURL,
		ProviderSessionID: result.ProviderSessionID,
		Session:           toCartResponse(result.Cart),
	}})
}

// Complete handles POST /api/v1/checkout/complete
func (h *CheckoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "session is required"},
		})
		return
	}

	var req CompleteRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
			})
			return
		}
	}

	if err := h.service.Complete(r.Context(), sessionID, req.ProviderSessionID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "completed"}})
}
