package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated   = "order_created"
	EventOrderCanceled  = "order_canceled"
	EventOrderCompleted = "order_completed"
)

// OrderEvent mirrors the payload order-svc writes to the orders topic.
type OrderEvent struct {
	Type         string          `json:"type"`
	OrderID      int             `json:"order_id"`
	UserID       int             `json:"user_id"`
	RestaurantID int             `json:"restaurant_id"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Status       string          `json:"status"`
	Timestamp    time.Time       `json:"timestamp"`
}

func (e OrderEvent) Known() bool {
	switch e.Type {
	case EventOrderCreated, EventOrderCanceled, EventOrderCompleted:
		return true
	}
	return false
}

// Cents is the order total in minor units, the unit counters are kept in.
func (e OrderEvent) Cents() int64 {
	return e.TotalPrice.Shift(2).Round(0).IntPart()
}
