package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zayrajewels/zayra-golang/internal/carrier"
	"github.com/zayrajewels/zayra-golang/internal/catalog"
	"github.com/zayrajewels/zayra-golang/internal/fulfillment"
	"github.com/zayrajewels/zayra-golang/internal/orders"
)

// respondError maps domain errors onto HTTP statuses and a single
// user-facing message. Carrier errors keep the carrier's own code/message
// when one was present.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *fulfillment.ValidationError
		transitionErr *orders.InvalidTransitionError
		stockErr      *orders.InsufficientStockError
		authErr       *carrier.AuthError
		requestErr    *carrier.RequestError
		responseErr   *carrier.ResponseError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Msg})
	case errors.Is(err, orders.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
	case errors.Is(err, catalog.ErrVariantNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product variant not found or not published"})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, gin.H{"error": stockErr.Error()})
	case errors.Is(err, orders.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, orders.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Order was modified concurrently, please retry"})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": transitionErr.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Carrier authentication failed"})
	case errors.As(err, &requestErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": requestErr.Error()})
	case errors.As(err, &responseErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": responseErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
