package mocks

import (
	"context"
	"time"

	"food-platform/analytics-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type AnalyticsInterface struct {
	mock.Mock
}

func (_m *AnalyticsInterface) GlobalStats(ctx context.Context) (domain.OrderStats, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.OrderStats), ret.Error(1)
}

func (_m *AnalyticsInterface) RestaurantStats(ctx context.Context, restaurantID int) (domain.OrderStats, error) {
	ret := _m.Called(ctx, restaurantID)
	return ret.Get(0).(domain.OrderStats), ret.Error(1)
}

func (_m *AnalyticsInterface) TopRestaurants(ctx context.Context, day time.Time, limit int) ([]domain.RankedRestaurant, error) {
	ret := _m.Called(ctx, day, limit)
	var r0 []domain.RankedRestaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.RankedRestaurant)
	}
	return r0, ret.Error(1)
}

func (_m *AnalyticsInterface) TopToday(ctx context.Context, limit int) ([]domain.RankedRestaurant, error) {
	ret := _m.Called(ctx, limit)
	var r0 []domain.RankedRestaurant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.RankedRestaurant)
	}
	return r0, ret.Error(1)
}

func NewAnalyticsInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *AnalyticsInterface {
	m := &AnalyticsInterface{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

type NameResolver struct {
	mock.Mock
}

func (_m *NameResolver) Names(ctx context.Context, ids []int) (map[int]string, error) {
	ret := _m.Called(ctx, ids)
	var r0 map[int]string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[int]string)
	}
	return r0, ret.Error(1)
}

func NewNameResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *NameResolver {
	m := &NameResolver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
