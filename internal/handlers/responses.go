package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urbanoasis/venue-backend/internal/models"
)

// hintIsPaid reports whether a client supplied a "paid" payment hint
func hintIsPaid(hint *string) bool {
	return hint != nil && models.PaymentStatus(*hint) == models.PaymentStatusPaid
}

// respondValidationError maps validator failures to a 400 response
func respondValidationError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// respondPaymentError maps gateway failures to user-facing responses. The
// user may retry the whole flow; nothing is retried automatically.
func respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrGatewayNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway not configured"})
	case errors.Is(err, models.ErrVerificationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment failed", "details": "payment could not be verified"})
	default:
		var gatewayErr *models.GatewayError
		if errors.As(err, &gatewayErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment failed", "details": gatewayErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment failed", "details": err.Error()})
	}
}

// respondTransitionError maps transition engine failures to HTTP responses
func respondTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status", "details": err.Error()})
	}
}
