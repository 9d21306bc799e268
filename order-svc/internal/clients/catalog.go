package clients

import (
	"context"
	"fmt"

	"food-platform/order-svc/internal/domain"
	"food-platform/order-svc/internal/service"
)

// CatalogClient talks to restaurant-svc.
type CatalogClient struct {
	baseURL string
	client  HTTPClient
}

func NewCatalogClient(baseURL string, client HTTPClient) *CatalogClient {
	return &CatalogClient{baseURL: baseURL, client: client}
}

func (c *CatalogClient) GetRestaurant(ctx context.Context, restaurantID int) domain.Lookup[domain.Restaurant] {
	return lookup[domain.Restaurant](ctx, c.client, fmt.Sprintf("%s/api/restaurants/%d", c.baseURL, restaurantID))
}

func (c *CatalogClient) GetMenuItem(ctx context.Context, foodItemID int) domain.Lookup[domain.MenuItem] {
	return lookup[domain.MenuItem](ctx, c.client, fmt.Sprintf("%s/api/menu-items/%d", c.baseURL, foodItemID))
}

var _ service.CatalogClient = (*CatalogClient)(nil)
