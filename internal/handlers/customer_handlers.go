package handlers

import (
	"errors"
	"net/http"

	"bugstore/internal/common"
	"bugstore/internal/models"
	"bugstore/internal/services"

	"github.com/labstack/echo/v4"
)

// CustomerHandlers handles HTTP requests for customers
type CustomerHandlers struct {
	customerService services.CustomerService
}

// NewCustomerHandlers creates a new customer handlers instance
func NewCustomerHandlers(customerService services.CustomerService) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

type customerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	BirthDate string `json:"birthDate"`
}

// bindCustomer fills the model from the request body. On invalid input
// it writes the error response itself and reports ok=false.
func (h *CustomerHandlers) bindCustomer(c echo.Context, customer *models.Customer) (bool, error) {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return false, common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return false, common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return false, common.SendValidationError(c, "email", err.Error())
	}
	birthDate, err := common.ValidateDate(req.BirthDate, "birthDate")
	if err != nil {
		return false, common.SendValidationError(c, "birthDate", err.Error())
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.BirthDate = birthDate
	return true, nil
}

// ListCustomers handles GET /v1/customers
func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	customers, err := h.customerService.List(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to list customers")
	}
	if customers == nil {
		customers = []*models.Customer{}
	}
	return c.JSON(http.StatusOK, customers)
}

// GetCustomer handles GET /v1/customers/:id
func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	customer, err := h.customerService.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Customer")
		}
		return common.SendServerError(c, "Failed to get customer")
	}
	return c.JSON(http.StatusOK, customer)
}

// CreateCustomer handles POST /v1/customers
func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	customer := &models.Customer{}
	if ok, err := h.bindCustomer(c, customer); !ok {
		return err
	}

	if err := h.customerService.Create(c.Request().Context(), customer); err != nil {
		return common.SendServerError(c, "Failed to create customer")
	}

	c.Response().Header().Set(echo.HeaderLocation, "/v1/customers/"+customer.ID.String())
	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer handles PUT /v1/customers/:id
func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	customer := &models.Customer{ID: id}
	if ok, err := h.bindCustomer(c, customer); !ok {
		return err
	}

	if err := h.customerService.Update(c.Request().Context(), customer); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Customer")
		}
		return common.SendServerError(c, "Failed to update customer")
	}
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /v1/customers/:id
func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.customerService.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return common.SendNotFoundError(c, "Customer")
		}
		return common.SendServerError(c, "Failed to delete customer")
	}
	return c.NoContent(http.StatusNoContent)
}
