package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"food-platform/order-svc/internal/service"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type errorMapping struct {
	err    error
	code   string
	status int
	opaque bool
}

// Order matters: creation failures may wrap upstream errors and must surface
// as creation failures.
var errorMappings = []errorMapping{
	{service.ErrInvalidQuantity, "invalid_quantity", http.StatusBadRequest, false},
	{service.ErrNegativeQuantity, "negative_quantity", http.StatusBadRequest, false},

	{service.ErrInvalidUser, "invalid_user", http.StatusNotFound, false},
	{service.ErrUserNotFound, "user_not_found", http.StatusNotFound, false},
	{service.ErrInvalidRestaurant, "invalid_restaurant", http.StatusNotFound, false},
	{service.ErrRestaurantNotFound, "restaurant_not_found", http.StatusNotFound, false},
	{service.ErrInvalidFoodItem, "invalid_food_item", http.StatusNotFound, false},
	{service.ErrItemNotFound, "item_not_found", http.StatusNotFound, false},
	{service.ErrOrderNotFound, "order_not_found", http.StatusNotFound, false},
	{service.ErrNoOrdersFound, "no_orders_found", http.StatusNotFound, false},

	{service.ErrInvalidAddress, "invalid_address", http.StatusUnprocessableEntity, false},
	{service.ErrEmptyCart, "empty_cart", http.StatusUnprocessableEntity, false},

	{service.ErrMultiRestaurantConflict, "multi_restaurant_conflict", http.StatusConflict, false},
	{service.ErrFoodItemUnavailable, "food_item_unavailable", http.StatusConflict, false},
	{service.ErrCartBusy, "cart_busy", http.StatusConflict, false},

	{service.ErrInsufficientFunds, "insufficient_funds", http.StatusPaymentRequired, false},

	{service.ErrOrderCreationFailed, "order_creation_failed", http.StatusInternalServerError, true},
	{service.ErrRefundFailed, "refund_failed", http.StatusInternalServerError, true},
	{service.ErrUpstreamUnavailable, "upstream_unavailable", http.StatusBadGateway, true},
	{service.ErrQRUnavailable, "qr_unavailable", http.StatusServiceUnavailable, true},
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{Error: "internal_error", Message: "internal server error"}
	status := http.StatusInternalServerError
	opaque := true

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp.Error, status, opaque = m.code, m.status, m.opaque
			resp.Message = m.err.Error()
			break
		}
	}

	if opaque {
		h.Logger.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	writeJSON(w, status, resp)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
