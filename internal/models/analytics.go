package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesSummary is a cached snapshot of order volume and revenue.
type SalesSummary struct {
	TotalOrders  int64           `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	RefreshedAt  time.Time       `json:"refreshedAt"`
}
