package handlers

import (
	"net/http"

	"bugstore/internal/analytics"
	"bugstore/internal/common"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandlers exposes store-wide sales figures
type AnalyticsHandlers struct {
	analyticsService *analytics.Service
}

func NewAnalyticsHandlers(analyticsService *analytics.Service) *AnalyticsHandlers {
	return &AnalyticsHandlers{analyticsService: analyticsService}
}

// GetSalesSummary handles GET /v1/analytics/sales
func (h *AnalyticsHandlers) GetSalesSummary(c echo.Context) error {
	summary, err := h.analyticsService.SalesSummary(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to compute sales summary")
	}
	return c.JSON(http.StatusOK, summary)
}
