package services

import (
	"context"
	"testing"
	"time"

	"bugstore/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// Mock repositories and cache

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithLines(ctx context.Context, order *models.Order, lines []*models.OrderLine) error {
	args := m.Called(ctx, order, lines)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*models.OrderLine, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.OrderLine), args.Error(1)
}

func (m *MockOrderRepository) Summary(ctx context.Context) (int64, decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(decimal.Decimal), args.Error(2)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	args := m.Called(ctx, product, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockCacheService) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*models.OrderDetail, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderDetail), args.Error(1)
}

func (m *MockCacheService) SetOrderDetail(ctx context.Context, detail *models.OrderDetail, ttl time.Duration) error {
	args := m.Called(ctx, detail, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteOrderDetails(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) GetSalesSummary(ctx context.Context) (*models.SalesSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SalesSummary), args.Error(1)
}

func (m *MockCacheService) SetSalesSummary(ctx context.Context, summary *models.SalesSummary, ttl time.Duration) error {
	args := m.Called(ctx, summary, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type OrderServiceTestSuite struct {
	suite.Suite
	orderRepo    *MockOrderRepository
	customerRepo *MockCustomerRepository
	productRepo  *MockProductRepository
	cache        *MockCacheService
	service      OrderService
	ctx          context.Context
	customerID   uuid.UUID
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orderRepo = new(MockOrderRepository)
	suite.customerRepo = new(MockCustomerRepository)
	suite.productRepo = new(MockProductRepository)
	suite.cache = new(MockCacheService)
	suite.service = NewOrderService(suite.orderRepo, suite.customerRepo, suite.productRepo, suite.cache)
	suite.ctx = context.Background()
	suite.customerID = uuid.New()
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RejectsEmptyLines() {
	detail, err := suite.service.CreateOrder(suite.ctx, suite.customerID, nil)

	assert.Nil(suite.T(), detail)
	assert.ErrorIs(suite.T(), err, ErrOrderInvalid)
	suite.customerRepo.AssertNotCalled(suite.T(), "ExistsByID", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RejectsNonPositiveQuantity() {
	lines := []models.OrderLineRequest{
		{ProductID: uuid.New(), Quantity: 2},
		{ProductID: uuid.New(), Quantity: 0},
	}

	detail, err := suite.service.CreateOrder(suite.ctx, suite.customerID, lines)

	assert.Nil(suite.T(), detail)
	assert.ErrorIs(suite.T(), err, ErrOrderInvalid)
	suite.customerRepo.AssertNotCalled(suite.T(), "ExistsByID", mock.Anything, mock.Anything)
	suite.orderRepo.AssertNotCalled(suite.T(), "CreateWithLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RejectsUnknownCustomer() {
	suite.customerRepo.On("ExistsByID", suite.ctx, suite.customerID).Return(false, nil)

	lines := []models.OrderLineRequest{{ProductID: uuid.New(), Quantity: 1}}
	detail, err := suite.service.CreateOrder(suite.ctx, suite.customerID, lines)

	assert.Nil(suite.T(), detail)
	assert.ErrorIs(suite.T(), err, ErrOrderInvalid)
	suite.productRepo.AssertNotCalled(suite.T(), "GetByIDs", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_RejectsUnknownProduct() {
	productID := uuid.New()
	missingID := uuid.New()

	suite.customerRepo.On("ExistsByID", suite.ctx, suite.customerID).Return(true, nil)
	suite.productRepo.On("GetByIDs", suite.ctx, []uuid.UUID{productID, missingID}).Return([]*models.Product{
		{ID: productID, Title: "Web Shooter", Price: decimal.RequireFromString("150.00")},
	}, nil)

	lines := []models.OrderLineRequest{
		{ProductID: productID, Quantity: 1},
		{ProductID: missingID, Quantity: 1},
	}
	detail, err := suite.service.CreateOrder(suite.ctx, suite.customerID, lines)

	assert.Nil(suite.T(), detail)
	assert.ErrorIs(suite.T(), err, ErrOrderInvalid)
	suite.orderRepo.AssertNotCalled(suite.T(), "CreateWithLines", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ComputesDecimalTotals() {
	productOne := &models.Product{ID: uuid.New(), Title: "Web Shooter", Price: decimal.RequireFromString("150.00")}
	productTwo := &models.Product{ID: uuid.New(), Title: "Spider Tracer", Price: decimal.RequireFromString("20.00")}

	suite.customerRepo.On("ExistsByID", suite.ctx, suite.customerID).Return(true, nil)
	suite.productRepo.On("GetByIDs", suite.ctx, []uuid.UUID{productOne.ID, productTwo.ID}).
		Return([]*models.Product{productOne, productTwo}, nil)

	var persistedOrder *models.Order
	var persistedLines []*models.OrderLine
	suite.orderRepo.On("CreateWithLines", suite.ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			persistedOrder = args.Get(1).(*models.Order)
			persistedLines = args.Get(2).([]*models.OrderLine)
		}).
		Return(nil)
	suite.cache.On("SetOrderDetail", suite.ctx, mock.Anything, mock.Anything).Return(nil)

	lines := []models.OrderLineRequest{
		{ProductID: productOne.ID, Quantity: 2},
		{ProductID: productTwo.ID, Quantity: 3},
	}
	detail, err := suite.service.CreateOrder(suite.ctx, suite.customerID, lines)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), detail)
	assert.Equal(suite.T(), suite.customerID, detail.CustomerID)
	assert.Len(suite.T(), detail.Lines, 2)
	assert.True(suite.T(), detail.Lines[0].Total.Equal(decimal.RequireFromString("300.00")))
	assert.True(suite.T(), detail.Lines[1].Total.Equal(decimal.RequireFromString("60.00")))
	assert.True(suite.T(), detail.Total.Equal(decimal.RequireFromString("360.00")))
	assert.Equal(suite.T(), "Web Shooter", detail.Lines[0].ProductTitle)

	// One consistent UTC instant across the whole aggregate.
	assert.Equal(suite.T(), detail.CreatedAt, detail.UpdatedAt)
	assert.Equal(suite.T(), time.UTC, detail.CreatedAt.Location())

	assert.NotNil(suite.T(), persistedOrder)
	assert.Len(suite.T(), persistedLines, 2)
	for _, line := range persistedLines {
		assert.Equal(suite.T(), persistedOrder.ID, line.OrderID)
		assert.NotEqual(suite.T(), uuid.Nil, line.ID)
	}
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ResolvesDuplicateProductsOnce() {
	product := &models.Product{ID: uuid.New(), Title: "Spider Tracer", Price: decimal.RequireFromString("20.00")}

	suite.customerRepo.On("ExistsByID", suite.ctx, suite.customerID).Return(true, nil)
	suite.productRepo.On("GetByIDs", suite.ctx, []uuid.UUID{product.ID}).
		Return([]*models.Product{product}, nil)
	suite.orderRepo.On("CreateWithLines", suite.ctx, mock.Anything, mock.Anything).Return(nil)
	suite.cache.On("SetOrderDetail", suite.ctx, mock.Anything, mock.Anything).Return(nil)

	lines := []models.OrderLineRequest{
		{ProductID: product.ID, Quantity: 1},
		{ProductID: product.ID, Quantity: 4},
	}
	detail, err := suite.service.CreateOrder(suite.ctx, suite.customerID, lines)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), detail.Lines, 2)
	assert.True(suite.T(), detail.Total.Equal(decimal.RequireFromString("100.00")))
	suite.productRepo.AssertNumberOfCalls(suite.T(), "GetByIDs", 1)
}

func (suite *OrderServiceTestSuite) TestGetOrderByID_ReturnsNotFound() {
	orderID := uuid.New()
	suite.cache.On("GetOrderDetail", suite.ctx, orderID).Return(nil, nil)
	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(nil, nil)

	detail, err := suite.service.GetOrderByID(suite.ctx, orderID)

	assert.Nil(suite.T(), detail)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestGetOrderByID_ServesCachedAggregate() {
	orderID := uuid.New()
	cached := &models.OrderDetail{ID: orderID, CustomerID: suite.customerID, Total: decimal.RequireFromString("42.00")}
	suite.cache.On("GetOrderDetail", suite.ctx, orderID).Return(cached, nil)

	detail, err := suite.service.GetOrderByID(suite.ctx, orderID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, detail)
	suite.orderRepo.AssertNotCalled(suite.T(), "GetByID", mock.Anything, mock.Anything)
}

func (suite *OrderServiceTestSuite) TestGetOrderByID_DeletedProductTitleFallsBack() {
	orderID := uuid.New()
	deletedProductID := uuid.New()
	now := time.Now().UTC()

	suite.cache.On("GetOrderDetail", suite.ctx, orderID).Return(nil, nil)
	suite.orderRepo.On("GetByID", suite.ctx, orderID).Return(&models.Order{
		ID:         orderID,
		CustomerID: suite.customerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil)
	suite.orderRepo.On("ListLinesByOrderID", suite.ctx, orderID).Return([]*models.OrderLine{
		{ID: uuid.New(), OrderID: orderID, ProductID: deletedProductID, Quantity: 2, Total: decimal.RequireFromString("200.00")},
	}, nil)
	suite.productRepo.On("GetByIDs", suite.ctx, []uuid.UUID{deletedProductID}).
		Return([]*models.Product{}, nil)
	suite.cache.On("SetOrderDetail", suite.ctx, mock.Anything, mock.Anything).Return(nil)

	detail, err := suite.service.GetOrderByID(suite.ctx, orderID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), detail.Lines, 1)
	assert.Equal(suite.T(), "", detail.Lines[0].ProductTitle)
	assert.True(suite.T(), detail.Lines[0].Total.Equal(decimal.RequireFromString("200.00")))
	assert.True(suite.T(), detail.Total.Equal(decimal.RequireFromString("200.00")))
}
