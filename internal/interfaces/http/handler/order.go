package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	commerceapp "github.com/orderdesk/backend/internal/application/commerce"
)

// OrderHandler handles order-related API endpoints
type OrderHandler struct {
	BaseHandler
	orders *commerceapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *commerceapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.orders.GetView(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, view)
}

// List handles GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	orders, err := h.orders.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, limit, offset, len(orders))
}

// Create handles POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var in commerceapp.CreateOrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	order, err := h.orders.Create(c.Request.Context(), in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, order)
}

// Delete handles DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}
	h.NoContent(c)
}

// AddComment handles POST /api/v1/orders/:id/comments
func (h *OrderHandler) AddComment(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var in commerceapp.CreateCommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	comment, err := h.orders.AddComment(c.Request.Context(), id, in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, comment)
}

// ListComments handles GET /api/v1/orders/:id/comments
func (h *OrderHandler) ListComments(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	comments, err := h.orders.ListComments(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, comments)
}
