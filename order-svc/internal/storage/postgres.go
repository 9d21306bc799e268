package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"food-platform/order-svc/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS cart_items (
	id            SERIAL PRIMARY KEY,
	user_id       INTEGER NOT NULL,
	restaurant_id INTEGER NOT NULL,
	food_item_id  INTEGER NOT NULL,
	quantity      INTEGER NOT NULL CHECK (quantity >= 0),
	unit_price    NUMERIC(12,2) NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, food_item_id)
);

CREATE TABLE IF NOT EXISTS orders (
	id            SERIAL PRIMARY KEY,
	user_id       INTEGER NOT NULL,
	restaurant_id INTEGER NOT NULL,
	address_id    INTEGER NOT NULL,
	total_price   NUMERIC(12,2) NOT NULL,
	status        VARCHAR(16) NOT NULL DEFAULT 'PENDING',
	items         JSONB NOT NULL DEFAULT '[]',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_restaurant_id ON orders(restaurant_id);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

type CartRepository struct {
	DB *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{DB: db}
}

const cartColumns = "id, user_id, restaurant_id, food_item_id, quantity, unit_price, created_at, updated_at"

func scanCartLine(row interface{ Scan(...any) error }, line *domain.CartLine) error {
	return row.Scan(&line.ID, &line.UserID, &line.RestaurantID, &line.FoodItemID,
		&line.Quantity, &line.UnitPrice, &line.CreatedAt, &line.UpdatedAt)
}

func (r *CartRepository) ListByUser(ctx context.Context, userID int) ([]domain.CartLine, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+cartColumns+" FROM cart_items WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var line domain.CartLine
		if err := scanCartLine(rows, &line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *CartRepository) GetByUserAndFoodItem(ctx context.Context, userID, foodItemID int) (*domain.CartLine, error) {
	var line domain.CartLine
	err := scanCartLine(r.DB.QueryRowContext(ctx,
		"SELECT "+cartColumns+" FROM cart_items WHERE user_id = $1 AND food_item_id = $2",
		userID, foodItemID), &line)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *CartRepository) Insert(ctx context.Context, line *domain.CartLine) error {
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO cart_items (user_id, restaurant_id, food_item_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		line.UserID, line.RestaurantID, line.FoodItemID, line.Quantity, line.UnitPrice,
	).Scan(&line.ID, &line.CreatedAt, &line.UpdatedAt)
}

func (r *CartRepository) Update(ctx context.Context, line *domain.CartLine) error {
	err := r.DB.QueryRowContext(ctx,
		`UPDATE cart_items SET quantity = $1, unit_price = $2, updated_at = NOW()
		WHERE id = $3 RETURNING updated_at`,
		line.Quantity, line.UnitPrice, line.ID,
	).Scan(&line.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *CartRepository) Delete(ctx context.Context, userID, foodItemID int) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = $1 AND food_item_id = $2", userID, foodItemID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM cart_items WHERE user_id = $1", userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

const orderColumns = "id, user_id, restaurant_id, address_id, total_price, status, items, created_at, updated_at"

func scanOrder(row interface{ Scan(...any) error }) (*domain.Order, error) {
	var (
		order domain.Order
		items []byte
	)
	if err := row.Scan(&order.ID, &order.UserID, &order.RestaurantID, &order.AddressID,
		&order.TotalPrice, &order.Status, &items, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}
	decoded, err := domain.DecodeSnapshot(items)
	if err != nil {
		return nil, fmt.Errorf("order %d: corrupt items snapshot: %w", order.ID, err)
	}
	order.Items = decoded
	return &order, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := domain.EncodeSnapshot(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, restaurant_id, address_id, total_price, status, items, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		order.UserID, order.RestaurantID, order.AddressID, order.TotalPrice,
		order.Status, items, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
}

func (r *OrderRepository) Get(ctx context.Context, orderID int) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return order, err
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return r.list(ctx, "SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC", userID)
}

func (r *OrderRepository) ListByRestaurant(ctx context.Context, restaurantID int) ([]domain.Order, error) {
	return r.list(ctx, "SELECT "+orderColumns+" FROM orders WHERE restaurant_id = $1 ORDER BY created_at DESC", restaurantID)
}

func (r *OrderRepository) list(ctx context.Context, query string, arg int) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

// UpdateStatusGuard changes status only while the row still holds from.
// Zero affected rows means another request already moved the order.
func (r *OrderRepository) UpdateStatusGuard(ctx context.Context, orderID int, from, to domain.OrderStatus, at time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4",
		to, at, orderID, from)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
