package domain

import "github.com/shopspring/decimal"

// OrderStats are running order counters. Revenue excludes refunded orders.
type OrderStats struct {
	RestaurantID int             `json:"restaurant_id,omitempty"`
	Created      int64           `json:"created"`
	Canceled     int64           `json:"canceled"`
	Completed    int64           `json:"completed"`
	Pending      int64           `json:"pending"`
	Revenue      decimal.Decimal `json:"revenue"`
	LastUpdated  int64           `json:"last_updated,omitempty"`
}

type RankedRestaurant struct {
	RestaurantID int    `json:"restaurant_id"`
	Name         string `json:"name,omitempty"`
	Orders       int64  `json:"orders"`
}
