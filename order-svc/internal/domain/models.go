package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("record not found")

// CancellationWindow is how long after creation a pending order may still be canceled.
const CancellationWindow = 30 * time.Second

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusCompleted OrderStatus = "COMPLETED"
	StatusCanceled  OrderStatus = "CANCELED"
)

// CanTransitionTo reports whether the order state machine allows s -> next.
// CANCELED and COMPLETED are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == StatusPending && (next == StatusCanceled || next == StatusCompleted)
}

// CartLine is one food item a user intends to buy. UnitPrice is always the
// per-unit price captured from the catalog on the last add or update.
type CartLine struct {
	ID           int             `json:"id"`
	UserID       int             `json:"user_id"`
	RestaurantID int             `json:"restaurant_id"`
	FoodItemID   int             `json:"food_item_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartLineView is a cart line enriched at read time with live catalog data.
type CartLineView struct {
	CartLine
	FoodItemName string          `json:"food_item_name"`
	DisplayPrice decimal.Decimal `json:"display_price"`
	Available    bool            `json:"available"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

func CartTotal(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// OrderItem is one entry of the snapshot stored with an order.
type OrderItem struct {
	CartLineID   int             `json:"cart_line_id"`
	RestaurantID int             `json:"restaurant_id"`
	FoodItemID   int             `json:"food_item_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

type Order struct {
	ID           int             `json:"id"`
	UserID       int             `json:"user_id"`
	RestaurantID int             `json:"restaurant_id"`
	AddressID    int             `json:"address_id"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Status       OrderStatus     `json:"status"`
	Items        []OrderItem     `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CancelableAt reports whether the order may be canceled at the given instant.
func (o Order) CancelableAt(now time.Time) bool {
	return o.Status == StatusPending && now.Sub(o.CreatedAt) <= CancellationWindow
}

func (o Order) Summary() OrderSummary {
	return OrderSummary{
		ID:           o.ID,
		UserID:       o.UserID,
		RestaurantID: o.RestaurantID,
		AddressID:    o.AddressID,
		TotalPrice:   o.TotalPrice,
		Status:       o.Status,
		ItemCount:    len(o.Items),
		CreatedAt:    o.CreatedAt,
	}
}

type OrderSummary struct {
	ID           int             `json:"id"`
	UserID       int             `json:"user_id"`
	RestaurantID int             `json:"restaurant_id"`
	AddressID    int             `json:"address_id"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Status       OrderStatus     `json:"status"`
	ItemCount    int             `json:"item_count"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SnapshotFromCart copies cart lines into order items. The result shares no
// memory with the input.
func SnapshotFromCart(lines []CartLine) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItem{
			CartLineID:   line.ID,
			RestaurantID: line.RestaurantID,
			FoodItemID:   line.FoodItemID,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
		})
	}
	return items
}

func EncodeSnapshot(items []OrderItem) ([]byte, error) {
	if items == nil {
		items = []OrderItem{}
	}
	return json.Marshal(items)
}

func DecodeSnapshot(raw []byte) ([]OrderItem, error) {
	if len(raw) == 0 {
		return []OrderItem{}, nil
	}
	var items []OrderItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

const (
	EventOrderCreated   = "order_created"
	EventOrderCanceled  = "order_canceled"
	EventOrderCompleted = "order_completed"
)

// OrderEvent is published after every committed order state change.
type OrderEvent struct {
	Type         string          `json:"type"`
	OrderID      int             `json:"order_id"`
	UserID       int             `json:"user_id"`
	RestaurantID int             `json:"restaurant_id"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Status       OrderStatus     `json:"status"`
	Timestamp    time.Time       `json:"timestamp"`
}

func NewOrderEvent(eventType string, order Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		TotalPrice:   order.TotalPrice,
		Status:       order.Status,
		Timestamp:    at,
	}
}
