package mocks

import (
	"context"

	"food-platform/user-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type UserServiceInterface struct {
	mock.Mock
}

func (_m *UserServiceInterface) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	ret := _m.Called(ctx, email, password, name)
	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserServiceInterface) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	ret := _m.Called(ctx, email, password)
	var r1 *domain.User
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(*domain.User)
	}
	return ret.String(0), r1, ret.Error(2)
}

func (_m *UserServiceInterface) Get(ctx context.Context, id int) (*domain.User, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserServiceInterface) SetWallet(ctx context.Context, id int, balance decimal.Decimal) error {
	ret := _m.Called(ctx, id, balance)
	return ret.Error(0)
}

func (_m *UserServiceInterface) ListAddresses(ctx context.Context, userID int) ([]domain.Address, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Address)
	}
	return r0, ret.Error(1)
}

func (_m *UserServiceInterface) AddAddress(ctx context.Context, address *domain.Address) error {
	ret := _m.Called(ctx, address)
	return ret.Error(0)
}

func (_m *UserServiceInterface) RemoveAddress(ctx context.Context, userID, addressID int) error {
	ret := _m.Called(ctx, userID, addressID)
	return ret.Error(0)
}

func NewUserServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserServiceInterface {
	m := &UserServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
