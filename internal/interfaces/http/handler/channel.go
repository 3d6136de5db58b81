package handler

import (
	"github.com/gin-gonic/gin"
	commerceapp "github.com/orderdesk/backend/internal/application/commerce"
)

// ChannelHandler handles sales-channel reconciliation endpoints
type ChannelHandler struct {
	BaseHandler
	importer *commerceapp.ImportService
}

// NewChannelHandler creates a new ChannelHandler
func NewChannelHandler(importer *commerceapp.ImportService) *ChannelHandler {
	return &ChannelHandler{importer: importer}
}

// ImportOrder handles POST /api/v1/channel/orders. The body is a whole-order
// snapshot from the sales channel; the response is the assembled read model
// of the reconciled order.
func (h *ChannelHandler) ImportOrder(c *gin.Context) {
	var payload commerceapp.ChannelOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	view, err := h.importer.ImportOrder(c.Request.Context(), payload)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, view)
}
