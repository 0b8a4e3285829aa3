package analytics

import (
	"context"
	"fmt"
	"log"
	"time"

	"bugstore/internal/caching"
	"bugstore/internal/models"
	"bugstore/internal/repositories"
)

const summaryCacheTTL = 10 * time.Minute

// Service computes store-wide sales figures. The summary is cached and
// refreshed by a background job so the read path stays off Postgres.
type Service struct {
	orderRepo    repositories.OrderRepository
	cacheService caching.CacheService
}

func NewService(orderRepo repositories.OrderRepository, cacheService caching.CacheService) *Service {
	return &Service{
		orderRepo:    orderRepo,
		cacheService: cacheService,
	}
}

// SalesSummary returns the cached summary, computing it on demand when
// the cache is cold.
func (s *Service) SalesSummary(ctx context.Context) (*models.SalesSummary, error) {
	if cached, err := s.cacheService.GetSalesSummary(ctx); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for sales summary: %v", err)
	}

	return s.Refresh(ctx)
}

// Refresh recomputes the summary from storage and caches it.
func (s *Service) Refresh(ctx context.Context) (*models.SalesSummary, error) {
	count, revenue, err := s.orderRepo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("compute sales summary: %w", err)
	}

	summary := &models.SalesSummary{
		TotalOrders:  count,
		TotalRevenue: revenue,
		RefreshedAt:  time.Now().UTC(),
	}

	if cacheErr := s.cacheService.SetSalesSummary(ctx, summary, summaryCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache sales summary: %v", cacheErr)
	}

	return summary, nil
}
