package handlers

import (
	"errors"
	"net/http"

	"bugstore/internal/common"
	"bugstore/internal/models"
	"bugstore/internal/services"

	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for orders
type OrderHandlers struct {
	orderService services.OrderService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(orderService services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderService: orderService}
}

// CreateOrder handles POST /v1/orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		CustomerID string `json:"customerId"`
		Lines      []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"lines"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	customerID, err := common.ValidateUUID(req.CustomerID, "customerId")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	lines := make([]models.OrderLineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		productID, err := common.ValidateUUID(line.ProductID, "productId")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		lines = append(lines, models.OrderLineRequest{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}

	detail, err := h.orderService.CreateOrder(ctx, customerID, lines)
	if err != nil {
		if errors.Is(err, services.ErrOrderInvalid) {
			return common.SendClientError(c, "Invalid order request")
		}
		return common.SendServerError(c, "Failed to create order")
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/orders/"+detail.ID.String())
	return c.JSON(http.StatusCreated, detail)
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	detail, err := h.orderService.GetOrderByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Order")
		}
		return common.SendServerError(c, "Failed to get order")
	}
	return c.JSON(http.StatusOK, detail)
}
