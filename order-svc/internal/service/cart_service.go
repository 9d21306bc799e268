package service

import (
	"context"
	"errors"
	"fmt"

	"food-platform/order-svc/internal/domain"

	"go.uber.org/zap"
)

type CartService struct {
	carts    CartRepository
	identity IdentityClient
	catalog  CatalogClient
	locker   UserLocker
	logger   *zap.Logger
}

func NewCartService(carts CartRepository, identity IdentityClient, catalog CatalogClient, locker UserLocker, logger *zap.Logger) *CartService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		carts:    carts,
		identity: identity,
		catalog:  catalog,
		locker:   locker,
		logger:   logger,
	}
}

func (s *CartService) AddItem(ctx context.Context, userID, restaurantID, foodItemID, quantity int) (*domain.CartLine, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	user := s.identity.GetUser(ctx, userID)
	switch user.Status {
	case domain.LookupNotFound:
		return nil, ErrInvalidUser
	case domain.LookupUnavailable:
		return nil, upstreamError("identity", user.Err)
	}

	restaurant := s.catalog.GetRestaurant(ctx, restaurantID)
	switch restaurant.Status {
	case domain.LookupNotFound:
		return nil, ErrInvalidRestaurant
	case domain.LookupUnavailable:
		return nil, upstreamError("catalog", restaurant.Err)
	}

	item, err := s.menuItem(ctx, restaurantID, foodItemID)
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	for _, line := range lines {
		if line.RestaurantID != restaurantID {
			return nil, ErrMultiRestaurantConflict
		}
	}

	existing, err := s.carts.GetByUserAndFoodItem(ctx, userID, foodItemID)
	switch {
	case err == nil:
		existing.Quantity += quantity
		existing.UnitPrice = item.Price
		if err := s.carts.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update cart line: %w", err)
		}
		return existing, nil
	case errors.Is(err, domain.ErrNotFound):
		line := &domain.CartLine{
			UserID:       userID,
			RestaurantID: restaurantID,
			FoodItemID:   foodItemID,
			Quantity:     quantity,
			UnitPrice:    item.Price,
		}
		if err := s.carts.Insert(ctx, line); err != nil {
			return nil, fmt.Errorf("failed to insert cart line: %w", err)
		}
		return line, nil
	default:
		return nil, fmt.Errorf("failed to load cart line: %w", err)
	}
}

// menuItem fetches a priced item and checks it belongs to restaurantID and
// can be ordered.
func (s *CartService) menuItem(ctx context.Context, restaurantID, foodItemID int) (domain.MenuItem, error) {
	res := s.catalog.GetMenuItem(ctx, foodItemID)
	switch res.Status {
	case domain.LookupNotFound:
		return domain.MenuItem{}, ErrInvalidFoodItem
	case domain.LookupUnavailable:
		return domain.MenuItem{}, upstreamError("catalog", res.Err)
	}
	if res.Value.RestaurantID != restaurantID {
		return domain.MenuItem{}, ErrInvalidFoodItem
	}
	if !res.Value.Available {
		return domain.MenuItem{}, ErrFoodItemUnavailable
	}
	return res.Value, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, foodItemID int) error {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	n, err := s.carts.Delete(ctx, userID, foodItemID)
	if err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

// UpdateQuantity sets an absolute quantity and refreshes the per-unit price.
// A quantity of zero removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, foodItemID, quantity int) error {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	line, err := s.carts.GetByUserAndFoodItem(ctx, userID, foodItemID)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load cart line: %w", err)
	}
	if quantity < 0 {
		return ErrNegativeQuantity
	}

	if quantity == 0 {
		if _, err := s.carts.Delete(ctx, userID, foodItemID); err != nil {
			return fmt.Errorf("failed to delete cart line: %w", err)
		}
		return nil
	}

	res := s.catalog.GetMenuItem(ctx, foodItemID)
	switch res.Status {
	case domain.LookupNotFound:
		return ErrInvalidFoodItem
	case domain.LookupUnavailable:
		return upstreamError("catalog", res.Err)
	}

	line.Quantity = quantity
	line.UnitPrice = res.Value.Price
	if err := s.carts.Update(ctx, line); err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}
	return nil
}

// ListItems enriches stored lines with live catalog data. Items that
// disappeared from the catalog are returned with Available=false.
func (s *CartService) ListItems(ctx context.Context, userID int) ([]domain.CartLineView, error) {
	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	views := make([]domain.CartLineView, 0, len(lines))
	for _, line := range lines {
		view := domain.CartLineView{
			CartLine:     line,
			DisplayPrice: line.UnitPrice,
			Subtotal:     line.Subtotal(),
		}
		res := s.catalog.GetMenuItem(ctx, line.FoodItemID)
		switch res.Status {
		case domain.LookupFound:
			view.FoodItemName = res.Value.Name
			view.DisplayPrice = res.Value.Price
			view.Available = res.Value.Available
		case domain.LookupUnavailable:
			return nil, upstreamError("catalog", res.Err)
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *CartService) ClearCart(ctx context.Context, userID int) error {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return err
	}
	defer unlock()

	n, err := s.carts.DeleteByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.logger.Debug("cart cleared", zap.Int("user_id", userID), zap.Int64("lines", n))
	return nil
}
