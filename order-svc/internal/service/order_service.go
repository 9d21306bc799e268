package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-platform/order-svc/internal/domain"

	"go.uber.org/zap"
)

type OrderService struct {
	orders   OrderRepository
	carts    CartRepository
	identity IdentityClient
	catalog  CatalogClient
	events   EventPublisher
	qr       QRGenerator
	locker   UserLocker
	logger   *zap.Logger
	now      func() time.Time
}

type OrderServiceOption func(*OrderService)

func WithClock(now func() time.Time) OrderServiceOption {
	return func(s *OrderService) { s.now = now }
}

func WithEvents(events EventPublisher) OrderServiceOption {
	return func(s *OrderService) { s.events = events }
}

func WithQRGenerator(qr QRGenerator) OrderServiceOption {
	return func(s *OrderService) { s.qr = qr }
}

// WithLocker shares the cart lock so order creation and cart edits for one
// user never interleave.
func WithLocker(locker UserLocker) OrderServiceOption {
	return func(s *OrderService) { s.locker = locker }
}

func WithLogger(logger *zap.Logger) OrderServiceOption {
	return func(s *OrderService) { s.logger = logger }
}

func NewOrderService(orders OrderRepository, carts CartRepository, identity IdentityClient, catalog CatalogClient, opts ...OrderServiceOption) *OrderService {
	s := &OrderService{
		orders:   orders,
		carts:    carts,
		identity: identity,
		catalog:  catalog,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.locker == nil {
		s.locker = NewLocalLocker()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// CreateOrderFromCart turns the user's cart into a PENDING order and debits
// the wallet. Validation failures return before any side effect. The debit is
// not rolled back if persisting the order fails afterwards.
func (s *OrderService) CreateOrderFromCart(ctx context.Context, userID, addressID int) (domain.OrderSummary, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return domain.OrderSummary{}, err
	}
	defer unlock()

	user := s.identity.GetUser(ctx, userID)
	switch user.Status {
	case domain.LookupNotFound:
		return domain.OrderSummary{}, ErrUserNotFound
	case domain.LookupUnavailable:
		return domain.OrderSummary{}, creationFailed("fetch user", upstreamError("identity", user.Err))
	}

	lines, err := s.carts.ListByUser(ctx, userID)
	if err != nil {
		return domain.OrderSummary{}, creationFailed("load cart", err)
	}
	if len(lines) == 0 {
		return domain.OrderSummary{}, ErrEmptyCart
	}

	restaurantID := lines[0].RestaurantID
	restaurant := s.catalog.GetRestaurant(ctx, restaurantID)
	switch restaurant.Status {
	case domain.LookupNotFound:
		return domain.OrderSummary{}, ErrRestaurantNotFound
	case domain.LookupUnavailable:
		return domain.OrderSummary{}, creationFailed("fetch restaurant", upstreamError("catalog", restaurant.Err))
	}

	addresses, err := s.identity.GetAllAddresses(ctx, userID)
	if err != nil {
		return domain.OrderSummary{}, creationFailed("fetch addresses", err)
	}
	if !hasAddress(addresses, addressID) {
		return domain.OrderSummary{}, ErrInvalidAddress
	}

	total := domain.CartTotal(lines)
	if user.Value.Wallet.LessThan(total) {
		return domain.OrderSummary{}, ErrInsufficientFunds
	}

	if err := s.identity.UpdateWalletBalance(ctx, userID, user.Value.Wallet.Sub(total)); err != nil {
		return domain.OrderSummary{}, creationFailed("debit wallet", err)
	}

	now := s.now()
	order := &domain.Order{
		UserID:       userID,
		RestaurantID: restaurantID,
		AddressID:    addressID,
		TotalPrice:   total,
		Status:       domain.StatusPending,
		Items:        domain.SnapshotFromCart(lines),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("order not persisted after wallet debit",
			zap.Int("user_id", userID),
			zap.String("amount", total.String()),
			zap.Bool("reconcile", true),
			zap.Error(err),
		)
		return domain.OrderSummary{}, creationFailed("persist order", err)
	}

	if _, err := s.carts.DeleteByUser(ctx, userID); err != nil {
		s.logger.Error("cart not cleared after order creation",
			zap.Int("user_id", userID),
			zap.Int("order_id", order.ID),
			zap.Bool("reconcile", true),
			zap.Error(err),
		)
		return domain.OrderSummary{}, creationFailed("clear cart", err)
	}

	s.logger.Info("order created",
		zap.Int("order_id", order.ID),
		zap.Int("user_id", userID),
		zap.Int("restaurant_id", restaurantID),
		zap.String("total", total.String()),
	)
	s.publish(ctx, domain.EventOrderCreated, *order)

	return order.Summary(), nil
}

func hasAddress(addresses []domain.Address, addressID int) bool {
	for _, a := range addresses {
		if a.ID == addressID {
			return true
		}
	}
	return false
}

// CancelOrder cancels a PENDING order within the cancellation window and
// credits its total back to the wallet. An ineligible order yields false.
// The refund holds the owner's lock so it cannot interleave with a debit.
func (s *OrderService) CancelOrder(ctx context.Context, orderID int) (bool, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return false, err
	}

	unlock, err := s.locker.Lock(ctx, order.UserID)
	if err != nil {
		return false, err
	}
	defer unlock()

	now := s.now()
	if !order.CancelableAt(now) {
		return false, nil
	}

	n, err := s.orders.UpdateStatusGuard(ctx, orderID, domain.StatusPending, domain.StatusCanceled, now)
	if err != nil {
		return false, fmt.Errorf("failed to cancel order: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	order.Status = domain.StatusCanceled
	order.UpdatedAt = now

	if err := s.refund(ctx, order); err != nil {
		s.logger.Error("order canceled but wallet not credited",
			zap.Int("order_id", orderID),
			zap.Int("user_id", order.UserID),
			zap.String("amount", order.TotalPrice.String()),
			zap.Bool("reconcile", true),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Info("order canceled", zap.Int("order_id", orderID), zap.Int("user_id", order.UserID))
	s.publish(ctx, domain.EventOrderCanceled, *order)
	return true, nil
}

func (s *OrderService) refund(ctx context.Context, order *domain.Order) error {
	user := s.identity.GetUser(ctx, order.UserID)
	switch user.Status {
	case domain.LookupNotFound:
		return fmt.Errorf("%w: %w", ErrRefundFailed, ErrUserNotFound)
	case domain.LookupUnavailable:
		return fmt.Errorf("%w: %w", ErrRefundFailed, upstreamError("identity", user.Err))
	}
	balance := user.Value.Wallet.Add(order.TotalPrice)
	if err := s.identity.UpdateWalletBalance(ctx, order.UserID, balance); err != nil {
		return fmt.Errorf("%w: %w", ErrRefundFailed, err)
	}
	return nil
}

// CompleteOrder moves a PENDING order to COMPLETED. Completing an already
// completed order reports true; canceled or missing orders report false.
func (s *OrderService) CompleteOrder(ctx context.Context, orderID int) (bool, error) {
	order, err := s.GetOrder(ctx, orderID)
	if errors.Is(err, ErrOrderNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch {
	case order.Status == domain.StatusCompleted:
		return true, nil
	case !order.Status.CanTransitionTo(domain.StatusCompleted):
		return false, nil
	}

	now := s.now()
	n, err := s.orders.UpdateStatusGuard(ctx, orderID, domain.StatusPending, domain.StatusCompleted, now)
	if err != nil {
		return false, fmt.Errorf("failed to complete order: %w", err)
	}
	if n == 0 {
		// Lost a race; report whatever state won.
		current, err := s.GetOrder(ctx, orderID)
		if err != nil {
			return false, err
		}
		return current.Status == domain.StatusCompleted, nil
	}
	order.Status = domain.StatusCompleted
	order.UpdatedAt = now

	s.logger.Info("order completed", zap.Int("order_id", orderID))
	s.publish(ctx, domain.EventOrderCompleted, *order)
	return true, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return order, nil
}

// GetOrdersByUserID fails with ErrNoOrdersFound rather than returning an
// empty list.
func (s *OrderService) GetOrdersByUserID(ctx context.Context, userID int) ([]domain.OrderSummary, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, ErrNoOrdersFound
	}
	return summaries(orders), nil
}

func (s *OrderService) GetOrdersByRestaurantID(ctx context.Context, restaurantID int) ([]domain.OrderSummary, error) {
	orders, err := s.orders.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return summaries(orders), nil
}

func (s *OrderService) GetReceiptQRCode(ctx context.Context, orderID int) ([]byte, error) {
	if s.qr == nil {
		return nil, ErrQRUnavailable
	}
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(order.ID)
}

func summaries(orders []domain.Order) []domain.OrderSummary {
	out := make([]domain.OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Summary())
	}
	return out
}

func (s *OrderService) publish(ctx context.Context, eventType string, order domain.Order) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(ctx, domain.NewOrderEvent(eventType, order, s.now())); err != nil {
		s.logger.Warn("failed to publish order event",
			zap.String("type", eventType),
			zap.Int("order_id", order.ID),
			zap.Error(err),
		)
	}
}
