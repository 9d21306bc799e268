package domain

import "github.com/shopspring/decimal"

// User is the identity service's view of a customer.
type User struct {
	ID     int             `json:"id"`
	Wallet decimal.Decimal `json:"wallet"`
	Role   string          `json:"role"`
}

type Address struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Label  string `json:"label"`
	Line   string `json:"line"`
}

type Restaurant struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MenuItem struct {
	ID           int             `json:"id"`
	RestaurantID int             `json:"restaurant_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Available    bool            `json:"available"`
}

type LookupStatus int

const (
	LookupFound LookupStatus = iota
	LookupNotFound
	LookupUnavailable
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	default:
		return "unavailable"
	}
}

// Lookup is the tagged result of a remote read. Err is set only when
// Status is LookupUnavailable.
type Lookup[T any] struct {
	Value  T
	Status LookupStatus
	Err    error
}

func Found[T any](value T) Lookup[T] {
	return Lookup[T]{Value: value, Status: LookupFound}
}

func NotFound[T any]() Lookup[T] {
	return Lookup[T]{Status: LookupNotFound}
}

func Unavailable[T any](err error) Lookup[T] {
	return Lookup[T]{Status: LookupUnavailable, Err: err}
}
