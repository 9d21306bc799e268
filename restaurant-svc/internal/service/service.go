package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"food-platform/restaurant-svc/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrInvalidInput       = errors.New("invalid input")
)

// maxBatch bounds a single batch lookup.
const maxBatch = 100

type RestaurantService struct {
	repo   RestaurantRepository
	logger *zap.Logger
}

func NewRestaurantService(repo RestaurantRepository, logger *zap.Logger) *RestaurantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RestaurantService{repo: repo, logger: logger}
}

func (s *RestaurantService) Create(ctx context.Context, rest *domain.Restaurant) error {
	if strings.TrimSpace(rest.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.repo.CreateRestaurant(ctx, rest); err != nil {
		return err
	}
	s.logger.Info("restaurant created", zap.Int("restaurant_id", rest.ID))
	return nil
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.Restaurant, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	return restaurants, nil
}

func (s *RestaurantService) Get(ctx context.Context, id int) (*domain.Restaurant, error) {
	rest, err := s.repo.GetRestaurant(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	return rest, err
}

func (s *RestaurantService) Update(ctx context.Context, rest *domain.Restaurant) error {
	if strings.TrimSpace(rest.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	err := s.repo.UpdateRestaurant(ctx, rest)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrRestaurantNotFound
	}
	return err
}

func (s *RestaurantService) Delete(ctx context.Context, id int) error {
	n, err := s.repo.DeleteRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRestaurantNotFound
	}
	s.logger.Info("restaurant deleted", zap.Int("restaurant_id", id))
	return nil
}

type MenuService struct {
	restaurants RestaurantRepository
	categories  CategoryRepository
	items       MenuItemRepository
	logger      *zap.Logger
}

func NewMenuService(restaurants RestaurantRepository, categories CategoryRepository, items MenuItemRepository, logger *zap.Logger) *MenuService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MenuService{restaurants: restaurants, categories: categories, items: items, logger: logger}
}

func (s *MenuService) requireRestaurant(ctx context.Context, id int) error {
	_, err := s.restaurants.GetRestaurant(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrRestaurantNotFound
	}
	return err
}

func (s *MenuService) CreateCategory(ctx context.Context, category *domain.Category) error {
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := s.requireRestaurant(ctx, category.RestaurantID); err != nil {
		return err
	}
	return s.categories.CreateCategory(ctx, category)
}

func (s *MenuService) ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error) {
	if err := s.requireRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	categories, err := s.categories.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

func (s *MenuService) DeleteCategory(ctx context.Context, restaurantID, categoryID int) error {
	n, err := s.categories.DeleteCategory(ctx, restaurantID, categoryID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func validateItem(item *domain.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !item.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	return nil
}

func (s *MenuService) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.requireRestaurant(ctx, item.RestaurantID); err != nil {
		return err
	}
	if err := s.items.CreateMenuItem(ctx, item); err != nil {
		return err
	}
	s.logger.Info("menu item created",
		zap.Int("restaurant_id", item.RestaurantID),
		zap.Int("menu_item_id", item.ID),
		zap.String("price", item.Price.String()),
	)
	return nil
}

func (s *MenuService) ListItems(ctx context.Context, restaurantID int, onlyAvailable bool) ([]domain.MenuItem, error) {
	if err := s.requireRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	items, err := s.items.ListMenuItems(ctx, restaurantID, onlyAvailable)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}

func (s *MenuService) GetItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := s.items.GetMenuItem(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrMenuItemNotFound
	}
	return item, err
}

// GetItems returns the known items among ids. Unknown ids are skipped.
func (s *MenuService) GetItems(ctx context.Context, ids []int) ([]domain.MenuItem, error) {
	if len(ids) == 0 {
		return []domain.MenuItem{}, nil
	}
	if len(ids) > maxBatch {
		return nil, fmt.Errorf("%w: at most %d ids per request", ErrInvalidInput, maxBatch)
	}
	items, err := s.items.GetMenuItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	err := s.items.UpdateMenuItem(ctx, item)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrMenuItemNotFound
	}
	return err
}

func (s *MenuService) SetAvailability(ctx context.Context, id int, available bool) error {
	n, err := s.items.SetAvailability(ctx, id, available)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMenuItemNotFound
	}
	s.logger.Info("menu item availability changed", zap.Int("menu_item_id", id), zap.Bool("available", available))
	return nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id int) error {
	n, err := s.items.DeleteMenuItem(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}
