package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CustomerID uuid.UUID `json:"customerId" db:"customer_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderLine is the persisted shape of a single order line. Total is a
// snapshot of price * quantity taken at order creation and never
// recomputed from the current product price.
type OrderLine struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	OrderID   uuid.UUID       `json:"orderId" db:"order_id"`
	ProductID uuid.UUID       `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Total     decimal.Decimal `json:"total" db:"total"`
}

// OrderLineRequest is one requested line in an order creation call.
type OrderLineRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// OrderLineDetail is an order line as returned to callers, with the
// product title resolved at read time. Title is empty when the product
// has since been deleted.
type OrderLineDetail struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"productId"`
	ProductTitle string          `json:"productTitle"`
	Quantity     int             `json:"quantity"`
	Total        decimal.Decimal `json:"total"`
}

// OrderDetail is the full order aggregate returned by create and get.
// Total is derived as the sum of line totals, never stored.
type OrderDetail struct {
	ID         uuid.UUID         `json:"id"`
	CustomerID uuid.UUID         `json:"customerId"`
	Total      decimal.Decimal   `json:"total"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Lines      []OrderLineDetail `json:"lines"`
}
