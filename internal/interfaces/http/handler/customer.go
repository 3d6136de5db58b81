package handler

import (
	"github.com/gin-gonic/gin"
	commerceapp "github.com/orderdesk/backend/internal/application/commerce"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customers *commerceapp.CustomerService
	addresses *commerceapp.AddressService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers *commerceapp.CustomerService, addresses *commerceapp.AddressService) *CustomerHandler {
	return &CustomerHandler{customers: customers, addresses: addresses}
}

// Get handles GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	customer, err := h.customers.Get(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, customer)
}

// Create handles POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var in commerceapp.CreateCustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	customer, err := h.customers.Create(c.Request.Context(), in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, customer)
}

// Update handles PATCH /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var in commerceapp.UpdateCustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	customer, err := h.customers.Update(c.Request.Context(), id, in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, customer)
}

// Delete handles DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}
	h.NoContent(c)
}

// ListAddresses handles GET /api/v1/customers/:id/addresses
func (h *CustomerHandler) ListAddresses(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	addresses, err := h.addresses.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, addresses)
}
