package mocks

import (
	"context"

	"food-platform/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OrderServiceInterface struct {
	mock.Mock
}

func (_m *OrderServiceInterface) CreateOrderFromCart(ctx context.Context, userID, addressID int) (domain.OrderSummary, error) {
	ret := _m.Called(ctx, userID, addressID)
	return ret.Get(0).(domain.OrderSummary), ret.Error(1)
}

func (_m *OrderServiceInterface) CancelOrder(ctx context.Context, orderID int) (bool, error) {
	ret := _m.Called(ctx, orderID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *OrderServiceInterface) CompleteOrder(ctx context.Context, orderID int) (bool, error) {
	ret := _m.Called(ctx, orderID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *OrderServiceInterface) GetOrdersByUserID(ctx context.Context, userID int) ([]domain.OrderSummary, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.OrderSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OrderSummary)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) GetOrdersByRestaurantID(ctx context.Context, restaurantID int) ([]domain.OrderSummary, error) {
	ret := _m.Called(ctx, restaurantID)
	var r0 []domain.OrderSummary
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.OrderSummary)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	ret := _m.Called(ctx, orderID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderServiceInterface) GetReceiptQRCode(ctx context.Context, orderID int) ([]byte, error) {
	ret := _m.Called(ctx, orderID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewOrderServiceInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderServiceInterface {
	m := &OrderServiceInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
