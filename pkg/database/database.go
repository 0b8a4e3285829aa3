package database

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Database connected successfully")

	return pool, nil
}

// EnsureSchema creates the tables if they do not exist yet.
// Referential validity against customers and products is checked once at
// order creation and never re-verified, so those columns carry no hard
// foreign keys: deleting a product (or customer) must not invalidate or
// block existing orders.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schema := `
		CREATE TABLE IF NOT EXISTS customers (
			id uuid PRIMARY KEY,
			name text NOT NULL,
			email text NOT NULL,
			phone text NOT NULL DEFAULT '',
			birth_date date NOT NULL
		);

		CREATE TABLE IF NOT EXISTS products (
			id uuid PRIMARY KEY,
			title text NOT NULL,
			description text NOT NULL DEFAULT '',
			slug text NOT NULL,
			price numeric(12,2) NOT NULL CHECK (price >= 0)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id uuid PRIMARY KEY,
			customer_id uuid NOT NULL,
			created_at timestamptz NOT NULL,
			updated_at timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS order_lines (
			id uuid PRIMARY KEY,
			order_id uuid NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
			product_id uuid NOT NULL,
			quantity int NOT NULL CHECK (quantity > 0),
			total numeric(12,2) NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_order_lines_order_id ON order_lines (order_id);
	`
	_, err := pool.Exec(ctx, schema)
	return err
}
