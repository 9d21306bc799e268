package service

import (
	"context"

	"food-platform/user-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateWallet(ctx context.Context, id int, balance decimal.Decimal) (int64, error)
}

type AddressRepository interface {
	ListAddresses(ctx context.Context, userID int) ([]domain.Address, error)
	CreateAddress(ctx context.Context, address *domain.Address) error
	DeleteAddress(ctx context.Context, userID, addressID int) (int64, error)
}

type UserServiceInterface interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	SetWallet(ctx context.Context, id int, balance decimal.Decimal) error
	ListAddresses(ctx context.Context, userID int) ([]domain.Address, error)
	AddAddress(ctx context.Context, address *domain.Address) error
	RemoveAddress(ctx context.Context, userID, addressID int) error
}

var _ UserServiceInterface = (*UserService)(nil)
