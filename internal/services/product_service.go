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
)

const productCacheTTL = 15 * time.Minute

type ProductService interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Product, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	cacheService caching.CacheService
}

// NewProductService creates a new product service instance.
func NewProductService(productRepo repositories.ProductRepository, cacheService caching.CacheService) ProductService {
	return &productService{
		productRepo:  productRepo,
		cacheService: cacheService,
	}
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	// Cache errors fall through to the database.
	if cached, err := s.cacheService.GetProduct(ctx, id); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for product %s: %v", id.String(), err)
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if cacheErr := s.cacheService.SetProduct(ctx, product, productCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache product %s: %v", id.String(), cacheErr)
	}

	return product, nil
}

// Update loads the current record and issues a full replace-write.
// Existing order lines keep their snapshot totals; a price change never
// touches historical orders.
func (s *productService) Update(ctx context.Context, product *models.Product) error {
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("get product for update: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if cacheErr := s.cacheService.DeleteProduct(ctx, product.ID); cacheErr != nil {
		log.Printf("Failed to invalidate cache for product %s: %v", product.ID.String(), cacheErr)
	}
	// Cached order details resolved the old title at read time.
	if existing.Title != product.Title {
		if cacheErr := s.cacheService.DeleteOrderDetails(ctx); cacheErr != nil {
			log.Printf("Failed to invalidate cached orders after product rename: %v", cacheErr)
		}
	}
	return nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get product for delete: %w", err)
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if cacheErr := s.cacheService.DeleteProduct(ctx, id); cacheErr != nil {
		log.Printf("Failed to invalidate cache for product %s: %v", id.String(), cacheErr)
	}
	// Cached order details resolved this product's title at read time.
	if cacheErr := s.cacheService.DeleteOrderDetails(ctx); cacheErr != nil {
		log.Printf("Failed to invalidate cached orders after product delete: %v", cacheErr)
	}
	return nil
}

func (s *productService) List(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.List(ctx)
}
