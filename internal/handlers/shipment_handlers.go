package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zayrajewels/zayra-golang/internal/fulfillment"
	"github.com/zayrajewels/zayra-golang/internal/models"
)

//
// --- Shipment & Tracking Handlers ---
//

// CreateShipment is the handler for POST /v1/admin/orders/:id/shipment.
// Dimensions arrive as strings and are validated before anything runs; on
// carrier failure the order is left untouched.
func (h *Handlers) CreateShipment(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input fulfillment.ShipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	outcome, err := h.Fulfillment.CreateShipment(c.Request.Context(), orderID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Shipment created",
		"trackingNumber": outcome.TrackingNumber,
		"labelUrl":       outcome.LabelURL,
		"deduped":        outcome.Deduped,
	})
}

// ValidateAddress is the handler for POST /v1/address/validate.
// It returns the carrier's resolved/corrected address for client display
// before checkout.
func (h *Handlers) ValidateAddress(c *gin.Context) {
	var input models.Address
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	resolved, err := h.Fulfillment.ValidateAddress(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resolvedAddress": resolved})
}

// TrackShipment is the handler for GET /v1/track/:trackingNumber.
func (h *Handlers) TrackShipment(c *gin.Context) {
	trackingNumber := c.Param("trackingNumber")

	info, err := h.Fulfillment.Track(c.Request.Context(), trackingNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}
