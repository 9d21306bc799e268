package mocks

import (
	"context"

	"food-platform/order-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type IdentityClient struct {
	mock.Mock
}

func (_m *IdentityClient) GetUser(ctx context.Context, userID int) domain.Lookup[domain.User] {
	ret := _m.Called(ctx, userID)
	return ret.Get(0).(domain.Lookup[domain.User])
}

func (_m *IdentityClient) GetAllAddresses(ctx context.Context, userID int) ([]domain.Address, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.Address
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Address)
	}
	return r0, ret.Error(1)
}

func (_m *IdentityClient) UpdateWalletBalance(ctx context.Context, userID int, balance decimal.Decimal) error {
	ret := _m.Called(ctx, userID, balance)
	return ret.Error(0)
}

func NewIdentityClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *IdentityClient {
	m := &IdentityClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
