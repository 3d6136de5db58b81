package handler

import (
	"github.com/gin-gonic/gin"
	commerceapp "github.com/orderdesk/backend/internal/application/commerce"
)

// AddressHandler handles address-related API endpoints
type AddressHandler struct {
	BaseHandler
	addresses *commerceapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addresses *commerceapp.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// Get handles GET /api/v1/addresses/:id
func (h *AddressHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	address, err := h.addresses.Get(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, address)
}

// Create handles POST /api/v1/addresses
func (h *AddressHandler) Create(c *gin.Context) {
	var in commerceapp.CreateAddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	address, err := h.addresses.Create(c.Request.Context(), in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, address)
}

// Update handles PATCH /api/v1/addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var in commerceapp.UpdateAddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	address, err := h.addresses.Update(c.Request.Context(), id, in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, address)
}

// Delete handles DELETE /api/v1/addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.addresses.Delete(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}
	h.NoContent(c)
}
