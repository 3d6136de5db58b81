package handler

import (
	"github.com/gin-gonic/gin"
	commerceapp "github.com/orderdesk/backend/internal/application/commerce"
)

// CatalogHandler handles brand and product API endpoints
type CatalogHandler struct {
	BaseHandler
	catalog *commerceapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *commerceapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetBrand handles GET /api/v1/brands/:id
func (h *CatalogHandler) GetBrand(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	brand, err := h.catalog.GetBrand(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, brand)
}

// CreateBrand handles POST /api/v1/brands
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var in commerceapp.CreateBrandInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	brand, err := h.catalog.CreateBrand(c.Request.Context(), in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, brand)
}

// DeleteBrand handles DELETE /api/v1/brands/:id
func (h *CatalogHandler) DeleteBrand(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteBrand(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}
	h.NoContent(c)
}

// GetProduct handles GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Success(c, product)
}

// CreateProduct handles POST /api/v1/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var in commerceapp.CreateProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	product, err := h.catalog.CreateProduct(c.Request.Context(), in)
	if err != nil {
		h.Fail(c, err)
		return
	}
	h.Created(c, product)
}

// DeleteProduct handles DELETE /api/v1/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		h.Fail(c, err)
		return
	}
	h.NoContent(c)
}
