package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"bugstore/internal/models"
	"bugstore/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB creates a pooled connection for integration tests. Tests
// are skipped unless TEST_DATABASE_URL is set.
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			t.Skip("TEST_DATABASE_URL not set, skipping integration test")
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := database.EnsureSchema(context.Background(), pool); err != nil {
		t.Fatalf("Failed to ensure test schema: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestCustomer creates a test customer row
func SetupTestCustomer(t *testing.T, db *TestDB) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		ID:        uuid.New(),
		Name:      "Peter Parker",
		Email:     "peter.parker@dailybugle.com",
		Phone:     "555-0101",
		BirthDate: time.Date(2001, 8, 10, 0, 0, 0, 0, time.UTC),
	}

	query := `
		INSERT INTO customers (id, name, email, phone, birth_date)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.BirthDate)
	if err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}

	return customer
}

// SetupTestProduct creates a test product row with the given price
func SetupTestProduct(t *testing.T, db *TestDB, title, slug, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:          uuid.New(),
		Title:       title,
		Description: "Test product description",
		Slug:        slug,
		Price:       decimal.RequireFromString(price),
	}

	query := `
		INSERT INTO products (id, title, description, slug, price)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		product.ID, product.Title, product.Description, product.Slug, product.Price)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}

	return product
}

// NoopCache satisfies the cache interface without a Redis instance.
// Every read misses and every write succeeds.
type NoopCache struct{}

func (NoopCache) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	return nil, nil
}

func (NoopCache) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	return nil
}

func (NoopCache) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return nil
}

func (NoopCache) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*models.OrderDetail, error) {
	return nil, nil
}

func (NoopCache) SetOrderDetail(ctx context.Context, detail *models.OrderDetail, ttl time.Duration) error {
	return nil
}

func (NoopCache) DeleteOrderDetails(ctx context.Context) error {
	return nil
}

func (NoopCache) GetSalesSummary(ctx context.Context) (*models.SalesSummary, error) {
	return nil, nil
}

func (NoopCache) SetSalesSummary(ctx context.Context, summary *models.SalesSummary, ttl time.Duration) error {
	return nil
}

func (NoopCache) Ping(ctx context.Context) error {
	return nil
}
