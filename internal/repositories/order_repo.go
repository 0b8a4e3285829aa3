package repositories

import (
	"context"
	"errors"

	"bugstore/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	CreateWithLines(ctx context.Context, order *models.Order, lines []*models.OrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderLine, error)
	Summary(ctx context.Context) (int64, decimal.Decimal, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

// CreateWithLines persists the order and all its lines in one
// transaction. Nothing from the call is visible to readers unless the
// whole aggregate commits.
func (r *orderRepo) CreateWithLines(ctx context.Context, order *models.Order, lines []*models.OrderLine) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, orderQuery, order.ID, order.CustomerID, order.CreatedAt, order.UpdatedAt); err != nil {
		return err
	}

	lineQuery := `
		INSERT INTO order_lines (id, order_id, product_id, quantity, total)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, line := range lines {
		if _, err := tx.Exec(ctx, lineQuery, line.ID, line.OrderID, line.ProductID, line.Quantity, line.Total); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, customer_id, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.CustomerID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepo) ListLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, quantity, total
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*models.OrderLine
	for rows.Next() {
		line := &models.OrderLine{}
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.Total); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Summary returns the total number of orders and the revenue across all
// order lines.
func (r *orderRepo) Summary(ctx context.Context) (int64, decimal.Decimal, error) {
	var count int64
	var revenue decimal.Decimal
	query := `
		SELECT COUNT(DISTINCT o.id), COALESCE(SUM(l.total), 0)
		FROM orders o
		LEFT JOIN order_lines l ON l.order_id = o.id
	`
	if err := r.db.QueryRow(ctx, query).Scan(&count, &revenue); err != nil {
		return 0, decimal.Zero, err
	}
	return count, revenue, nil
}
