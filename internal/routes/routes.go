package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/zayrajewels/zayra-golang/internal/handlers"
	"github.com/zayrajewels/zayra-golang/internal/middleware"
	"github.com/zayrajewels/zayra-golang/internal/models"
)

// CORSMiddleware tells the browser the configured frontend origin may call
// this API with credentials.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// preflight requests get an empty 204
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// registerValidations adds custom binding rules to gin's validator engine.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return models.ValidOrderStatus(fl.Field().String())
		})
	}
}

func SetupRouter(h *handlers.Handlers) *gin.Engine {
	registerValidations()

	router := gin.Default()
	router.Use(CORSMiddleware(h.Config.CORSOrigin))
	router.Use(middleware.RequestID())

	v1 := router.Group("/v1")
	{
		// --- Public Routes ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Protected Routes (Login Required) ---
		authd := v1.Group("/")
		authd.Use(middleware.AuthMiddleware(h.Tokens))
		{
			authd.POST("/orders", h.CreateOrder)
			authd.GET("/orders", h.GetMyOrders)
			authd.GET("/orders/:id", h.GetOrderDetails)

			authd.POST("/address/validate", h.ValidateAddress)
			authd.GET("/track/:trackingNumber", h.TrackShipment)
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(h.Tokens))
		admin.Use(middleware.AdminMiddleware(h.DB))
		{
			admin.GET("/orders", h.GetAllOrders)
			admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
			admin.POST("/orders/:id/shipment", h.CreateShipment)
			admin.GET("/dashboard-stats", h.GetAdminStats)
		}
	}

	return router
}
