package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("record not found")

const (
	RoleCustomer = "customer"
	RoleOwner    = "restaurant_owner"
)

type User struct {
	ID           int             `json:"id"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	PasswordHash string          `json:"-"`
	Role         string          `json:"role"`
	Wallet       decimal.Decimal `json:"wallet"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Address struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Label     string    `json:"label"`
	Line      string    `json:"line"`
	CreatedAt time.Time `json:"created_at"`
}
