package mocks

import (
	"context"

	"food-platform/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CartServiceInterface struct {
	mock.Mock
}

func (_m *CartServiceInterface) AddItem(ctx context.Context, userID, restaurantID, foodItemID, quantity int) (*domain.CartLine, error) {
	ret := _m.Called(ctx, userID, restaurantID, foodItemID, quantity)
	var r0 *domain.CartLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.CartLine)
	}
	return r0, ret.Error(1)
}

func (_m *CartServiceInterface) RemoveItem(ctx context.Context, userID, foodItemID int) error {
	ret := _m.Called(ctx, userID, foodItemID)
	return ret.Error(0)
}

func (_m *CartServiceInterface) UpdateQuantity(ctx context.Context, userID, foodItemID, quantity int) error {
	ret := _m.Called(ctx, userID, foodItemID, quantity)
	return ret.Error(0)
}

func (_m *CartServiceInterface) ListItems(ctx context.Context, userID int) ([]domain.CartLineView, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.CartLineView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CartLineView)
	}
	return r0, ret.Error(1)
}

func (_m *CartServiceInterface) ClearCart(ctx context.Context, userID int) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

func NewCartServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartServiceInterface {
	m := &CartServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
