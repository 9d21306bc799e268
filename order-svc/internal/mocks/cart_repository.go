package mocks

import (
	"context"

	"food-platform/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CartRepository struct {
	mock.Mock
}

func (_m *CartRepository) ListByUser(ctx context.Context, userID int) ([]domain.CartLine, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.CartLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.CartLine)
	}
	return r0, ret.Error(1)
}

func (_m *CartRepository) GetByUserAndFoodItem(ctx context.Context, userID, foodItemID int) (*domain.CartLine, error) {
	ret := _m.Called(ctx, userID, foodItemID)
	var r0 *domain.CartLine
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.CartLine)
	}
	return r0, ret.Error(1)
}

func (_m *CartRepository) Insert(ctx context.Context, line *domain.CartLine) error {
	ret := _m.Called(ctx, line)
	return ret.Error(0)
}

func (_m *CartRepository) Update(ctx context.Context, line *domain.CartLine) error {
	ret := _m.Called(ctx, line)
	return ret.Error(0)
}

func (_m *CartRepository) Delete(ctx context.Context, userID, foodItemID int) (int64, error) {
	ret := _m.Called(ctx, userID, foodItemID)
	return ret.Get(0).(int64), ret.Error(1)
}

func (_m *CartRepository) DeleteByUser(ctx context.Context, userID int) (int64, error) {
	ret := _m.Called(ctx, userID)
	return ret.Get(0).(int64), ret.Error(1)
}

func NewCartRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CartRepository {
	m := &CartRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
