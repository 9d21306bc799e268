package mocks

import (
	"context"

	"food-platform/order-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CatalogClient struct {
	mock.Mock
}

func (_m *CatalogClient) GetRestaurant(ctx context.Context, restaurantID int) domain.Lookup[domain.Restaurant] {
	ret := _m.Called(ctx, restaurantID)
	return ret.Get(0).(domain.Lookup[domain.Restaurant])
}

func (_m *CatalogClient) GetMenuItem(ctx context.Context, foodItemID int) domain.Lookup[domain.MenuItem] {
	ret := _m.Called(ctx, foodItemID)
	return ret.Get(0).(domain.Lookup[domain.MenuItem])
}

func NewCatalogClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *CatalogClient {
	m := &CatalogClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
