package handlers

import (
	"errors"
	"net/http"

	"bugstore/internal/common"
	"bugstore/internal/models"
	"bugstore/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

type productRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Slug        string          `json:"slug"`
	Price       decimal.Decimal `json:"price"`
}

// bindProduct fills the model from the request body. On invalid input
// it writes the error response itself and reports ok=false.
func (h *ProductHandlers) bindProduct(c echo.Context, product *models.Product) (bool, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return false, common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Title, "title"); err != nil {
		return false, common.SendValidationError(c, "title", err.Error())
	}
	if err := common.ValidateRequiredString(req.Slug, "slug"); err != nil {
		return false, common.SendValidationError(c, "slug", err.Error())
	}
	if req.Price.IsNegative() {
		return false, common.SendValidationError(c, "price", "price cannot be negative")
	}

	product.Title = req.Title
	product.Description = req.Description
	product.Slug = req.Slug
	product.Price = req.Price
	return true, nil
}

// ListProducts handles GET /v1/products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to list products")
	}
	if products == nil {
		products = []*models.Product{}
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /v1/products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Product")
		}
		return common.SendServerError(c, "Failed to get product")
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /v1/products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	product := &models.Product{}
	if ok, err := h.bindProduct(c, product); !ok {
		return err
	}

	if err := h.productService.Create(c.Request().Context(), product); err != nil {
		return common.SendServerError(c, "Failed to create product")
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/products/"+product.ID.String())
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /v1/products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	product := &models.Product{ID: id}
	if ok, err := h.bindProduct(c, product); !ok {
		return err
	}

	if err := h.productService.Update(c.Request().Context(), product); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Product")
		}
		return common.SendServerError(c, "Failed to update product")
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /v1/products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Product")
		}
		return common.SendServerError(c, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}
