package service

import (
	"errors"
	"fmt"
)

// Validation.
var (
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
)

// Not found.
var (
	ErrInvalidUser        = errors.New("user does not exist")
	ErrInvalidRestaurant  = errors.New("restaurant does not exist")
	ErrInvalidFoodItem    = errors.New("food item does not exist")
	ErrItemNotFound       = errors.New("cart item not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNoOrdersFound      = errors.New("no orders found for user")
)

// Business rules.
var (
	ErrMultiRestaurantConflict = errors.New("cart already holds items from another restaurant")
	ErrFoodItemUnavailable     = errors.New("food item is not available")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidAddress          = errors.New("address does not belong to user")
	ErrInsufficientFunds       = errors.New("insufficient wallet balance")
	ErrCartBusy                = errors.New("cart is being modified by another request")
)

// Integration and orchestration.
var (
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	ErrOrderCreationFailed = errors.New("order creation failed")
	ErrRefundFailed        = errors.New("wallet refund failed")
	ErrQRUnavailable       = errors.New("receipt qr generator not configured")
)

func upstreamError(service string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, service, err)
}

func creationFailed(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrOrderCreationFailed, step, err)
}
