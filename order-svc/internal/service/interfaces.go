package service

import (
	"context"
	"time"

	"food-platform/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

type CartRepository interface {
	ListByUser(ctx context.Context, userID int) ([]domain.CartLine, error)
	GetByUserAndFoodItem(ctx context.Context, userID, foodItemID int) (*domain.CartLine, error)
	Insert(ctx context.Context, line *domain.CartLine) error
	Update(ctx context.Context, line *domain.CartLine) error
	Delete(ctx context.Context, userID, foodItemID int) (int64, error)
	DeleteByUser(ctx context.Context, userID int) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, orderID int) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID int) ([]domain.Order, error)
	UpdateStatusGuard(ctx context.Context, orderID int, from, to domain.OrderStatus, at time.Time) (int64, error)
}

// IdentityClient is the only path through which wallet state is read or written.
type IdentityClient interface {
	GetUser(ctx context.Context, userID int) domain.Lookup[domain.User]
	GetAllAddresses(ctx context.Context, userID int) ([]domain.Address, error)
	UpdateWalletBalance(ctx context.Context, userID int, balance decimal.Decimal) error
}

type CatalogClient interface {
	GetRestaurant(ctx context.Context, restaurantID int) domain.Lookup[domain.Restaurant]
	GetMenuItem(ctx context.Context, foodItemID int) domain.Lookup[domain.MenuItem]
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

// UserLocker serializes cart and order mutations for one user. The returned
// function releases the lock and is safe to call more than once.
type UserLocker interface {
	Lock(ctx context.Context, userID int) (func(), error)
}

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

type CartServiceInterface interface {
	AddItem(ctx context.Context, userID, restaurantID, foodItemID, quantity int) (*domain.CartLine, error)
	RemoveItem(ctx context.Context, userID, foodItemID int) error
	UpdateQuantity(ctx context.Context, userID, foodItemID, quantity int) error
	ListItems(ctx context.Context, userID int) ([]domain.CartLineView, error)
	ClearCart(ctx context.Context, userID int) error
}

type OrderServiceInterface interface {
	CreateOrderFromCart(ctx context.Context, userID, addressID int) (domain.OrderSummary, error)
	CancelOrder(ctx context.Context, orderID int) (bool, error)
	CompleteOrder(ctx context.Context, orderID int) (bool, error)
	GetOrdersByUserID(ctx context.Context, userID int) ([]domain.OrderSummary, error)
	GetOrdersByRestaurantID(ctx context.Context, restaurantID int) ([]domain.OrderSummary, error)
	GetOrder(ctx context.Context, orderID int) (*domain.Order, error)
	GetReceiptQRCode(ctx context.Context, orderID int) ([]byte, error)
}

var (
	_ CartServiceInterface  = (*CartService)(nil)
	_ OrderServiceInterface = (*OrderService)(nil)
	_ UserLocker            = (*LocalLocker)(nil)
)
