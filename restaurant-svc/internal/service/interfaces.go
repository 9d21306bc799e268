package service

import (
	"context"

	"food-platform/restaurant-svc/internal/domain"
)

type RestaurantRepository interface {
	CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error)
	UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error
	DeleteRestaurant(ctx context.Context, id int) (int64, error)
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, restaurantID, categoryID int) (int64, error)
}

type MenuItemRepository interface {
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context, restaurantID int, onlyAvailable bool) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	GetMenuItems(ctx context.Context, ids []int) ([]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	SetAvailability(ctx context.Context, id int, available bool) (int64, error)
	DeleteMenuItem(ctx context.Context, id int) (int64, error)
}

type RestaurantServiceInterface interface {
	Create(ctx context.Context, rest *domain.Restaurant) error
	List(ctx context.Context) ([]domain.Restaurant, error)
	Get(ctx context.Context, id int) (*domain.Restaurant, error)
	Update(ctx context.Context, rest *domain.Restaurant) error
	Delete(ctx context.Context, id int) error
}

type MenuServiceInterface interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, restaurantID, categoryID int) error

	CreateItem(ctx context.Context, item *domain.MenuItem) error
	ListItems(ctx context.Context, restaurantID int, onlyAvailable bool) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id int) (*domain.MenuItem, error)
	GetItems(ctx context.Context, ids []int) ([]domain.MenuItem, error)
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	SetAvailability(ctx context.Context, id int, available bool) error
	DeleteItem(ctx context.Context, id int) error
}

var (
	_ RestaurantServiceInterface = (*RestaurantService)(nil)
	_ MenuServiceInterface       = (*MenuService)(nil)
)
