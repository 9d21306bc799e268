package mocks

import (
	"context"

	"food-platform/user-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (_m *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

func (_m *UserRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ret := _m.Called(ctx, email)
	var r0 *domain.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.User)
	}
	return r0, ret.Error(1)
}

func (_m *UserRepository) UpdateWallet(ctx context.Context, id int, balance decimal.Decimal) (int64, error) {
	ret := _m.Called(ctx, id, balance)
	return ret.Get(0).(int64), ret.Error(1)
}

func NewUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserRepository {
	m := &UserRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type AddressRepository struct {
	mock.Mock
}

func (_m *AddressRepository) ListAddresses(ctx context.Context, userID int) ([]domain.Address, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Address)
	}
	return r0, ret.Error(1)
}

func (_m *AddressRepository) CreateAddress(ctx context.Context, address *domain.Address) error {
	ret := _m.Called(ctx, address)
	return ret.Error(0)
}

func (_m *AddressRepository) DeleteAddress(ctx context.Context, userID, addressID int) (int64, error) {
	ret := _m.Called(ctx, userID, addressID)
	return ret.Get(0).(int64), ret.Error(1)
}

func NewAddressRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *AddressRepository {
	m := &AddressRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
