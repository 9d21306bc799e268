package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"food-platform/user-svc/internal/domain"

	"github.com/shopspring/decimal"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	email         VARCHAR(255) NOT NULL UNIQUE,
	name          VARCHAR(255) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role          VARCHAR(32) NOT NULL DEFAULT 'customer',
	wallet        NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (wallet >= 0),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS addresses (
	id         SERIAL PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	label      VARCHAR(64) NOT NULL DEFAULT '',
	line       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_addresses_user_id ON addresses(user_id);
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

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO users (email, name, password_hash, role, wallet) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		user.Email, user.Name, user.PasswordHash, user.Role, user.Wallet,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *PostgresRepository) getUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash, role, wallet, created_at FROM users WHERE "+where, arg).
		Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.Wallet, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return r.getUser(ctx, "id = $1", id)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, "email = $1", email)
}

func (r *PostgresRepository) UpdateWallet(ctx context.Context, id int, balance decimal.Decimal) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "UPDATE users SET wallet = $1 WHERE id = $2", balance, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) ListAddresses(ctx context.Context, userID int) ([]domain.Address, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, label, line, created_at FROM addresses WHERE user_id = $1 ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Label, &a.Line, &a.CreatedAt); err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *PostgresRepository) CreateAddress(ctx context.Context, address *domain.Address) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO addresses (user_id, label, line) VALUES ($1, $2, $3) RETURNING id, created_at",
		address.UserID, address.Label, address.Line,
	).Scan(&address.ID, &address.CreatedAt)
}

func (r *PostgresRepository) DeleteAddress(ctx context.Context, userID, addressID int) (int64, error) {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM addresses WHERE id = $1 AND user_id = $2", addressID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
