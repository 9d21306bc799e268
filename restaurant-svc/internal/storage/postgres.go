package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food-platform/restaurant-svc/internal/domain"

	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS restaurants (
	id          SERIAL PRIMARY KEY,
	owner_id    INTEGER NOT NULL DEFAULT 0,
	name        VARCHAR(255) NOT NULL,
	address     TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS categories (
	id            SERIAL PRIMARY KEY,
	restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
	name          VARCHAR(255) NOT NULL
);

CREATE TABLE IF NOT EXISTS menu_items (
	id            SERIAL PRIMARY KEY,
	restaurant_id INTEGER NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
	category_id   INTEGER REFERENCES categories(id) ON DELETE SET NULL,
	name          VARCHAR(255) NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	price         NUMERIC(12,2) NOT NULL CHECK (price > 0),
	available     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant_id ON menu_items(restaurant_id);
`

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO restaurants (owner_id, name, address, description) VALUES ($1, $2, $3, $4) RETURNING id, created_at",
		rest.OwnerID, rest.Name, rest.Address, rest.Description,
	).Scan(&rest.ID, &rest.CreatedAt)
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, owner_id, name, address, description, created_at
		FROM restaurants
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Address, &rest.Description, &rest.CreatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, owner_id, name, address, description, created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Address, &rest.Description, &rest.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &rest, nil
}

func (r *PostgresRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	err := r.DB.QueryRowContext(ctx,
		"UPDATE restaurants SET name=$1, address=$2, description=$3 WHERE id=$4 RETURNING owner_id, created_at",
		rest.Name, rest.Address, rest.Description, rest.ID).
		Scan(&rest.OwnerID, &rest.CreatedAt)
	return notFound(err)
}

func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM restaurants WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO categories (restaurant_id, name) VALUES ($1, $2) RETURNING id",
		category.RestaurantID, category.Name,
	).Scan(&category.ID)
}

func (r *PostgresRepository) ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, restaurant_id, name FROM categories WHERE restaurant_id = $1 ORDER BY name", restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.RestaurantID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, restaurantID, categoryID int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id=$1 AND restaurant_id=$2", categoryID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const menuItemColumns = "id, restaurant_id, category_id, name, description, price, available, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanMenuItem(s scanner) (domain.MenuItem, error) {
	var item domain.MenuItem
	err := s.Scan(&item.ID, &item.RestaurantID, &item.CategoryID, &item.Name, &item.Description,
		&item.Price, &item.Available, &item.CreatedAt)
	return item, err
}

func (r *PostgresRepository) queryMenuItems(ctx context.Context, query string, args ...any) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx, `
		INSERT INTO menu_items (restaurant_id, category_id, name, description, price, available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		item.RestaurantID, item.CategoryID, item.Name, item.Description, item.Price, item.Available,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, restaurantID int, onlyAvailable bool) ([]domain.MenuItem, error) {
	return r.queryMenuItems(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE restaurant_id = $1 AND (available OR NOT $2) ORDER BY id",
		restaurantID, onlyAvailable)
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx, "SELECT "+menuItemColumns+" FROM menu_items WHERE id = $1", id))
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *PostgresRepository) GetMenuItems(ctx context.Context, ids []int) ([]domain.MenuItem, error) {
	keys := make([]int64, len(ids))
	for i, id := range ids {
		keys[i] = int64(id)
	}
	return r.queryMenuItems(ctx,
		"SELECT "+menuItemColumns+" FROM menu_items WHERE id = ANY($1) ORDER BY id",
		pq.Array(keys))
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE menu_items
		SET category_id=$1, name=$2, description=$3, price=$4, available=$5
		WHERE id=$6
		RETURNING restaurant_id, created_at`,
		item.CategoryID, item.Name, item.Description, item.Price, item.Available, item.ID,
	).Scan(&item.RestaurantID, &item.CreatedAt)
	return notFound(err)
}

func (r *PostgresRepository) SetAvailability(ctx context.Context, id int, available bool) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "UPDATE menu_items SET available = $1 WHERE id = $2", available, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
