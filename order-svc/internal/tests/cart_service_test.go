package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"food-platform/order-svc/internal/domain"
	"food-platform/order-svc/internal/mocks"
	"food-platform/order-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type platform struct {
	identity *fakeIdentity
	catalog  *fakeCatalog
	carts    *memCartRepo
	orders   *memOrderRepo
	clock    *fakeClock
	events   *recordingPublisher
	cartSvc  *service.CartService
	orderSvc *service.OrderService
}

func newPlatform() *platform {
	p := &platform{
		identity: newFakeIdentity(),
		catalog:  newFakeCatalog(),
		carts:    newMemCartRepo(),
		orders:   newMemOrderRepo(),
		clock:    newFakeClock(),
		events:   &recordingPublisher{},
	}
	locker := service.NewLocalLocker()
	p.cartSvc = service.NewCartService(p.carts, p.identity, p.catalog, locker, nil)
	p.orderSvc = service.NewOrderService(p.orders, p.carts, p.identity, p.catalog,
		service.WithClock(p.clock.Now),
		service.WithLocker(locker),
		service.WithEvents(p.events),
	)
	return p
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decimalEq(want string) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(price(want)) })
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	user := domain.Found(domain.User{ID: 1, Wallet: price("500")})
	restaurant := domain.Found(domain.Restaurant{ID: 10, Name: "Pizza Place"})
	item := domain.Found(domain.MenuItem{ID: 100, RestaurantID: 10, Name: "Margherita", Price: price("12.50"), Available: true})

	tests := []struct {
		name          string
		restaurantID  int
		quantity      int
		prepareMocks  func(carts *mocks.CartRepository, identity *mocks.IdentityClient, catalog *mocks.CatalogClient)
		expectedError error
	}{
		{
			name:          "error_zero_quantity",
			restaurantID:  10,
			quantity:      0,
			prepareMocks:  func(*mocks.CartRepository, *mocks.IdentityClient, *mocks.CatalogClient) {},
			expectedError: service.ErrInvalidQuantity,
		},
		{
			name:         "error_unknown_user",
			restaurantID: 10,
			quantity:     1,
			prepareMocks: func(_ *mocks.CartRepository, identity *mocks.IdentityClient, _ *mocks.CatalogClient) {
				identity.On("GetUser", mock.Anything, 1).Return(domain.NotFound[domain.User]()).Once()
			},
			expectedError: service.ErrInvalidUser,
		},
		{
			name:         "error_unknown_restaurant",
			restaurantID: 10,
			quantity:     1,
			prepareMocks: func(_ *mocks.CartRepository, identity *mocks.IdentityClient, catalog *mocks.CatalogClient) {
				identity.On("GetUser", mock.Anything, 1).Return(user).Once()
				catalog.On("GetRestaurant", mock.Anything, 10).Return(domain.NotFound[domain.Restaurant]()).Once()
			},
			expectedError: service.ErrInvalidRestaurant,
		},
		{
			name:         "error_unknown_food_item",
			restaurantID: 10,
			quantity:     1,
			prepareMocks: func(_ *mocks.CartRepository, identity *mocks.IdentityClient, catalog *mocks.CatalogClient) {
				identity.On("GetUser", mock.Anything, 1).Return(user).Once()
				catalog.On("GetRestaurant", mock.Anything, 10).Return(restaurant).Once()
				catalog.On("GetMenuItem", mock.Anything, 100).Return(domain.NotFound[domain.MenuItem]()).Once()
			},
			expectedError: service.ErrInvalidFoodItem,
		},
		{
			name:         "error_food_item_from_other_restaurant",
			restaurantID: 20,
			quantity:     1,
			prepareMocks: func(_ *mocks.CartRepository, identity *mocks.IdentityClient, catalog *mocks.CatalogClient) {
				identity.On("GetUser", mock.Anything, 1).Return(user).Once()
				catalog.On("GetRestaurant", mock.Anything, 20).Return(domain.Found(domain.Restaurant{ID: 20})).Once()
				catalog.On("GetMenuItem", mock.Anything, 100).Return(item).Once()
			},
			expectedError: service.ErrInvalidFoodItem,
		},
		{
			name:         "error_food_item_unavailable",
			restaurantID: 10,
			quantity:     1,
			prepareMocks: func(_ *mocks.CartRepository, identity *mocks.IdentityClient, catalog *mocks.CatalogClient) {
				soldOut := item.Value
				soldOut.Available = false
				identity.On("GetUser", mock.Anything, 1).Return(user).Once()
				catalog.On("GetRestaurant", mock.Anything, 10).Return(restaurant).Once()
				catalog.On("GetMenuItem", mock.Anything, 100).Return(domain.Found(soldOut)).Once()
			},
			expectedError: service.ErrFoodItemUnavailable,
		},
		{
			name:         "error_catalog_unavailable",
			restaurantID: 10,
			quantity:     1,
			prepareMocks: func(_ *mocks.CartRepository, identity *mocks.IdentityClient, catalog *mocks.CatalogClient) {
				identity.On("GetUser", mock.Anything, 1).Return(user).Once()
				catalog.On("GetRestaurant", mock.Anything, 10).Return(domain.Unavailable[domain.Restaurant](errBackendDown)).Once()
			},
			expectedError: service.ErrUpstreamUnavailable,
		},
		{
			name:         "error_multi_restaurant_conflict",
			restaurantID: 10,
			quantity:     1,
			prepareMocks: func(carts *mocks.CartRepository, identity *mocks.IdentityClient, catalog *mocks.CatalogClient) {
				identity.On("GetUser", mock.Anything, 1).Return(user).Once()
				catalog.On("GetRestaurant", mock.Anything, 10).Return(restaurant).Once()
				catalog.On("GetMenuItem", mock.Anything, 100).Return(item).Once()
				carts.On("ListByUser", mock.Anything, 1).Return([]domain.CartLine{{ID: 5, UserID: 1, RestaurantID: 99, FoodItemID: 7, Quantity: 1}}, nil).Once()
			},
			expectedError: service.ErrMultiRestaurantConflict,
		},
		{
			name:         "success_insert_new_line",
			restaurantID: 10,
			quantity:     2,
			prepareMocks: func(carts *mocks.CartRepository, identity *mocks.IdentityClient, catalog *mocks.CatalogClient) {
				identity.On("GetUser", mock.Anything, 1).Return(user).Once()
				catalog.On("GetRestaurant", mock.Anything, 10).Return(restaurant).Once()
				catalog.On("GetMenuItem", mock.Anything, 100).Return(item).Once()
				carts.On("ListByUser", mock.Anything, 1).Return([]domain.CartLine{}, nil).Once()
				carts.On("GetByUserAndFoodItem", mock.Anything, 1, 100).Return(nil, domain.ErrNotFound).Once()
				carts.On("Insert", mock.Anything, mock.MatchedBy(func(l *domain.CartLine) bool {
					return l.Quantity == 2 && l.RestaurantID == 10 && l.UnitPrice.Equal(price("12.50"))
				})).Return(nil).Once()
			},
		},
		{
			name:         "success_increment_existing_line",
			restaurantID: 10,
			quantity:     3,
			prepareMocks: func(carts *mocks.CartRepository, identity *mocks.IdentityClient, catalog *mocks.CatalogClient) {
				existing := domain.CartLine{ID: 5, UserID: 1, RestaurantID: 10, FoodItemID: 100, Quantity: 1, UnitPrice: price("10")}
				identity.On("GetUser", mock.Anything, 1).Return(user).Once()
				catalog.On("GetRestaurant", mock.Anything, 10).Return(restaurant).Once()
				catalog.On("GetMenuItem", mock.Anything, 100).Return(item).Once()
				carts.On("ListByUser", mock.Anything, 1).Return([]domain.CartLine{existing}, nil).Once()
				carts.On("GetByUserAndFoodItem", mock.Anything, 1, 100).Return(&existing, nil).Once()
				carts.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.CartLine) bool {
					return l.ID == 5 && l.Quantity == 4 && l.UnitPrice.Equal(price("12.50"))
				})).Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carts := mocks.NewCartRepository(t)
			identity := mocks.NewIdentityClient(t)
			catalog := mocks.NewCatalogClient(t)
			tt.prepareMocks(carts, identity, catalog)

			svc := service.NewCartService(carts, identity, catalog, nil, nil)
			line, err := svc.AddItem(ctx, 1, tt.restaurantID, 100, tt.quantity)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, line)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 100, line.FoodItemID)
		})
	}
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	carts := mocks.NewCartRepository(t)
	svc := service.NewCartService(carts, nil, nil, nil, nil)

	carts.On("Delete", ctx, 1, 100).Return(int64(1), nil).Once()
	assert.NoError(t, svc.RemoveItem(ctx, 1, 100))

	carts.On("Delete", ctx, 1, 200).Return(int64(0), nil).Once()
	assert.ErrorIs(t, svc.RemoveItem(ctx, 1, 200), service.ErrItemNotFound)

	carts.On("Delete", ctx, 1, 300).Return(int64(0), errors.New("db down")).Once()
	err := svc.RemoveItem(ctx, 1, 300)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrItemNotFound)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	line := func() *domain.CartLine {
		return &domain.CartLine{ID: 5, UserID: 1, RestaurantID: 10, FoodItemID: 100, Quantity: 1, UnitPrice: price("10")}
	}

	t.Run("missing_line", func(t *testing.T) {
		carts := mocks.NewCartRepository(t)
		carts.On("GetByUserAndFoodItem", ctx, 1, 100).Return(nil, domain.ErrNotFound).Once()
		svc := service.NewCartService(carts, nil, nil, nil, nil)

		assert.ErrorIs(t, svc.UpdateQuantity(ctx, 1, 100, -1), service.ErrItemNotFound)
	})

	t.Run("negative_quantity", func(t *testing.T) {
		carts := mocks.NewCartRepository(t)
		carts.On("GetByUserAndFoodItem", ctx, 1, 100).Return(line(), nil).Once()
		svc := service.NewCartService(carts, nil, nil, nil, nil)

		assert.ErrorIs(t, svc.UpdateQuantity(ctx, 1, 100, -1), service.ErrNegativeQuantity)
	})

	t.Run("zero_removes_line", func(t *testing.T) {
		carts := mocks.NewCartRepository(t)
		carts.On("GetByUserAndFoodItem", ctx, 1, 100).Return(line(), nil).Once()
		carts.On("Delete", ctx, 1, 100).Return(int64(1), nil).Once()
		svc := service.NewCartService(carts, nil, nil, nil, nil)

		assert.NoError(t, svc.UpdateQuantity(ctx, 1, 100, 0))
	})

	t.Run("stores_per_unit_price", func(t *testing.T) {
		carts := mocks.NewCartRepository(t)
		catalog := mocks.NewCatalogClient(t)
		carts.On("GetByUserAndFoodItem", ctx, 1, 100).Return(line(), nil).Once()
		catalog.On("GetMenuItem", ctx, 100).Return(domain.Found(domain.MenuItem{ID: 100, RestaurantID: 10, Price: price("15"), Available: true})).Once()
		carts.On("Update", ctx, mock.MatchedBy(func(l *domain.CartLine) bool {
			return l.Quantity == 4 && l.UnitPrice.Equal(price("15"))
		})).Return(nil).Once()
		svc := service.NewCartService(carts, nil, catalog, nil, nil)

		assert.NoError(t, svc.UpdateQuantity(ctx, 1, 100, 4))
	})
}

func TestCartService_ListItems(t *testing.T) {
	ctx := context.Background()
	carts := mocks.NewCartRepository(t)
	catalog := mocks.NewCatalogClient(t)
	svc := service.NewCartService(carts, nil, catalog, nil, nil)

	carts.On("ListByUser", ctx, 1).Return([]domain.CartLine{
		{ID: 1, UserID: 1, RestaurantID: 10, FoodItemID: 100, Quantity: 2, UnitPrice: price("10")},
		{ID: 2, UserID: 1, RestaurantID: 10, FoodItemID: 101, Quantity: 1, UnitPrice: price("4")},
	}, nil).Once()
	catalog.On("GetMenuItem", ctx, 100).Return(domain.Found(domain.MenuItem{ID: 100, Name: "Soup", Price: price("11"), Available: true})).Once()
	catalog.On("GetMenuItem", ctx, 101).Return(domain.NotFound[domain.MenuItem]()).Once()

	views, err := svc.ListItems(ctx, 1)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Soup", views[0].FoodItemName)
	assert.True(t, views[0].DisplayPrice.Equal(price("11")))
	assert.True(t, views[0].Subtotal.Equal(price("20")))
	assert.True(t, views[0].Available)
	assert.False(t, views[1].Available)
	assert.True(t, views[1].DisplayPrice.Equal(price("4")))
}

func TestCartService_ClearCart(t *testing.T) {
	ctx := context.Background()
	carts := mocks.NewCartRepository(t)
	carts.On("DeleteByUser", ctx, 1).Return(int64(3), nil).Once()
	svc := service.NewCartService(carts, nil, nil, nil, nil)

	assert.NoError(t, svc.ClearCart(ctx, 1))
}

func TestCart_SingleRestaurantInvariant(t *testing.T) {
	ctx := context.Background()
	p := newPlatform()
	p.identity.addUser(1, "100")
	p.catalog.addRestaurant(10)
	p.catalog.addRestaurant(20)
	p.catalog.setItem(100, 10, "5")
	p.catalog.setItem(101, 10, "6")
	p.catalog.setItem(200, 20, "7")

	_, err := p.cartSvc.AddItem(ctx, 1, 10, 100, 1)
	require.NoError(t, err)
	_, err = p.cartSvc.AddItem(ctx, 1, 10, 101, 2)
	require.NoError(t, err)
	_, err = p.cartSvc.AddItem(ctx, 1, 20, 200, 1)
	assert.ErrorIs(t, err, service.ErrMultiRestaurantConflict)

	lines, err := p.carts.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, 10, l.RestaurantID)
	}

	require.NoError(t, p.cartSvc.ClearCart(ctx, 1))
	_, err = p.cartSvc.AddItem(ctx, 1, 20, 200, 1)
	assert.NoError(t, err)
}

func TestCart_LatestPriceWins(t *testing.T) {
	ctx := context.Background()
	p := newPlatform()
	p.identity.addUser(1, "100")
	p.catalog.addRestaurant(10)
	p.catalog.setItem(100, 10, "10")

	_, err := p.cartSvc.AddItem(ctx, 1, 10, 100, 1)
	require.NoError(t, err)
	p.catalog.setItem(100, 10, "12")
	line, err := p.cartSvc.AddItem(ctx, 1, 10, 100, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(price("12")))

	views, err := p.cartSvc.ListItems(ctx, 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].UnitPrice.Equal(price("12")), "unit price is the latest fetch, not a sum")
	assert.True(t, views[0].Subtotal.Equal(price("36")))
}

func TestCart_UpdateQuantityKeepsPerUnitPrice(t *testing.T) {
	ctx := context.Background()
	p := newPlatform()
	p.identity.addUser(1, "100")
	p.catalog.addRestaurant(10)
	p.catalog.setItem(100, 10, "10")

	_, err := p.cartSvc.AddItem(ctx, 1, 10, 100, 1)
	require.NoError(t, err)
	require.NoError(t, p.cartSvc.UpdateQuantity(ctx, 1, 100, 5))

	line, err := p.carts.GetByUserAndFoodItem(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(price("10")))
	assert.True(t, line.Subtotal().Equal(price("50")))
}

func TestCart_ConcurrentAddsDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	p := newPlatform()
	p.identity.addUser(1, "100")
	p.catalog.addRestaurant(10)
	p.catalog.setItem(100, 10, "1")

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.cartSvc.AddItem(ctx, 1, 10, 100, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	line, err := p.carts.GetByUserAndFoodItem(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, workers, line.Quantity)
}
