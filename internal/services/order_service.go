package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"bugstore/internal/caching"
	"bugstore/internal/models"
	"bugstore/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderCacheTTL = 30 * time.Minute

// OrderService implements the order workflow: validate a multi-line
// request against live customer and product records, compute decimal
// totals, and persist the order aggregate atomically.
type OrderService interface {
	CreateOrder(ctx context.Context, customerID uuid.UUID, lines []models.OrderLineRequest) (*models.OrderDetail, error)
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.OrderDetail, error)
}

type orderService struct {
	orderRepo    repositories.OrderRepository
	customerRepo repositories.CustomerRepository
	productRepo  repositories.ProductRepository
	cacheService caching.CacheService
}

// NewOrderService creates a new order service instance.
func NewOrderService(orderRepo repositories.OrderRepository, customerRepo repositories.CustomerRepository, productRepo repositories.ProductRepository, cacheService caching.CacheService) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		cacheService: cacheService,
	}
}

// CreateOrder validates the request, computes line and order totals, and
// persists the order with all its lines in a single transaction. The
// checks run strictly in sequence; a failing step skips everything after
// it, so no write happens on invalid input.
func (s *orderService) CreateOrder(ctx context.Context, customerID uuid.UUID, lineReqs []models.OrderLineRequest) (*models.OrderDetail, error) {
	if len(lineReqs) == 0 {
		return nil, ErrOrderInvalid
	}
	for _, req := range lineReqs {
		if req.Quantity <= 0 {
			return nil, ErrOrderInvalid
		}
	}

	exists, err := s.customerRepo.ExistsByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("check customer existence: %w", err)
	}
	if !exists {
		return nil, ErrOrderInvalid
	}

	productIDs := make([]uuid.UUID, 0, len(lineReqs))
	seen := make(map[uuid.UUID]bool, len(lineReqs))
	for _, req := range lineReqs {
		if !seen[req.ProductID] {
			seen[req.ProductID] = true
			productIDs = append(productIDs, req.ProductID)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	if len(products) != len(productIDs) {
		return nil, ErrOrderInvalid
	}
	productsByID := make(map[uuid.UUID]*models.Product, len(products))
	for _, product := range products {
		productsByID[product.ID] = product
	}

	// One instant shared by the order and every line.
	now := time.Now().UTC()
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	lines := make([]*models.OrderLine, 0, len(lineReqs))
	lineDetails := make([]models.OrderLineDetail, 0, len(lineReqs))
	total := decimal.Zero
	for _, req := range lineReqs {
		product := productsByID[req.ProductID]
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(req.Quantity)))

		line := &models.OrderLine{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  req.Quantity,
			Total:     lineTotal,
		}
		lines = append(lines, line)
		lineDetails = append(lineDetails, models.OrderLineDetail{
			ID:           line.ID,
			ProductID:    product.ID,
			ProductTitle: product.Title,
			Quantity:     req.Quantity,
			Total:        lineTotal,
		})
		total = total.Add(lineTotal)
	}

	if err := s.orderRepo.CreateWithLines(ctx, order, lines); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	detail := &models.OrderDetail{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Total:      total,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
		Lines:      lineDetails,
	}

	if cacheErr := s.cacheService.SetOrderDetail(ctx, detail, orderCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache order %s: %v", detail.ID.String(), cacheErr)
	}

	return detail, nil
}

// GetOrderByID loads the order aggregate: the order row, its lines, and a
// batch product lookup used only for display titles. A line whose product
// was deleted after order creation keeps its frozen total and renders an
// empty title.
func (s *orderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.OrderDetail, error) {
	if cached, err := s.cacheService.GetOrderDetail(ctx, orderID); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for order %s: %v", orderID.String(), err)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrNotFound
	}

	lines, err := s.orderRepo.ListLinesByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}

	productIDs := make([]uuid.UUID, 0, len(lines))
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			productIDs = append(productIDs, line.ProductID)
		}
	}

	titles := make(map[uuid.UUID]string, len(productIDs))
	if len(productIDs) > 0 {
		products, err := s.productRepo.GetByIDs(ctx, productIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve product titles: %w", err)
		}
		for _, product := range products {
			titles[product.ID] = product.Title
		}
	}

	lineDetails := make([]models.OrderLineDetail, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		lineDetails = append(lineDetails, models.OrderLineDetail{
			ID:           line.ID,
			ProductID:    line.ProductID,
			ProductTitle: titles[line.ProductID],
			Quantity:     line.Quantity,
			Total:        line.Total,
		})
		total = total.Add(line.Total)
	}

	detail := &models.OrderDetail{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Total:      total,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
		Lines:      lineDetails,
	}

	if cacheErr := s.cacheService.SetOrderDetail(ctx, detail, orderCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache order %s: %v", detail.ID.String(), cacheErr)
	}

	return detail, nil
}
