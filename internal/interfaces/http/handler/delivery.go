package handler

import (
	"github.com/gin-gonic/gin"
	commerceapp "github.com/orderdesk/backend/internal/application/commerce"
)

// DeliveryHandler handles delivery and delivery method API endpoints
type DeliveryHandler struct {
	BaseHandler
	deliveries *commerceapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveries *commerceapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveries: deliveries}
}

// Get handles GET /api/v1/deliveries/:id
func (h *DeliveryHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	delivery, err := h.deliveries.Get(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, delivery)
}

// Create handles POST /api/v1/deliveries
func (h *DeliveryHandler) Create(c *gin.Context) {
	var in commerceapp.CreateDeliveryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	delivery, err := h.deliveries.Create(c.Request.Context(), in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, delivery)
}

// Delete handles DELETE /api/v1/deliveries/:id
func (h *DeliveryHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.deliveries.Delete(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}
	h.NoContent(c)
}

// GetMethod handles GET /api/v1/delivery-methods/:id
func (h *DeliveryHandler) GetMethod(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	method, err := h.deliveries.GetMethod(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, method)
}

// CreateMethod handles POST /api/v1/delivery-methods
func (h *DeliveryHandler) CreateMethod(c *gin.Context) {
	var in commerceapp.CreateDeliveryMethodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	method, err := h.deliveries.CreateMethod(c.Request.Context(), in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, method)
}

// UpdateMethod handles PATCH /api/v1/delivery-methods/:id
func (h *DeliveryHandler) UpdateMethod(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var in commerceapp.UpdateDeliveryMethodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	method, err := h.deliveries.UpdateMethod(c.Request.Context(), id, in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, method)
}

// DeleteMethod handles DELETE /api/v1/delivery-methods/:id
func (h *DeliveryHandler) DeleteMethod(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.deliveries.DeleteMethod(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}
	h.NoContent(c)
}
