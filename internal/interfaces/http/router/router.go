package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orderdesk/backend/internal/infrastructure/config"
	"github.com/orderdesk/backend/internal/infrastructure/logger"
	"github.com/orderdesk/backend/internal/interfaces/http/handler"
	"github.com/orderdesk/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Channel  *handler.ChannelHandler
	Order    *handler.OrderHandler
	Customer *handler.CustomerHandler
	Address  *handler.AddressHandler
	Catalog  *handler.CatalogHandler
	Delivery *handler.DeliveryHandler
}

// New builds the gin engine with all routes and middleware mounted.
func New(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	{
		channel := v1.Group("/channel")
		{
			channel.POST("/orders", h.Channel.ImportOrder)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", h.Order.List)
			orders.POST("", h.Order.Create)
			orders.GET("/:id", h.Order.Get)
			orders.DELETE("/:id", h.Order.Delete)
			orders.GET("/:id/comments", h.Order.ListComments)
			orders.POST("/:id/comments", h.Order.AddComment)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", h.Customer.Create)
			customers.GET("/:id", h.Customer.Get)
			customers.PATCH("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
			customers.GET("/:id/addresses", h.Customer.ListAddresses)
		}

		addresses := v1.Group("/addresses")
		{
			addresses.POST("", h.Address.Create)
			addresses.GET("/:id", h.Address.Get)
			addresses.PATCH("/:id", h.Address.Update)
			addresses.DELETE("/:id", h.Address.Delete)
		}

		brands := v1.Group("/brands")
		{
			brands.POST("", h.Catalog.CreateBrand)
			brands.GET("/:id", h.Catalog.GetBrand)
			brands.DELETE("/:id", h.Catalog.DeleteBrand)
		}

		products := v1.Group("/products")
		{
			products.POST("", h.Catalog.CreateProduct)
			products.GET("/:id", h.Catalog.GetProduct)
			products.DELETE("/:id", h.Catalog.DeleteProduct)
		}

		deliveries := v1.Group("/deliveries")
		{
			deliveries.POST("", h.Delivery.Create)
			deliveries.GET("/:id", h.Delivery.Get)
			deliveries.DELETE("/:id", h.Delivery.Delete)
		}

		methods := v1.Group("/delivery-methods")
		{
			methods.POST("", h.Delivery.CreateMethod)
			methods.GET("/:id", h.Delivery.GetMethod)
			methods.PATCH("/:id", h.Delivery.UpdateMethod)
			methods.DELETE("/:id", h.Delivery.DeleteMethod)
		}
	}

	return engine
}
