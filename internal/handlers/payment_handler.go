package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urbanoasis/venue-backend/internal/services"
)

// PaymentHandler exposes the payment gateway operations
type PaymentHandler struct {
	paymentSvc *services.PaystackService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentSvc *services.PaystackService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// InitializePaymentRequest is the request to start a gateway transaction
type InitializePaymentRequest struct {
	Email    string                 `json:"email" binding:"required,email"`
	Amount   float64                `json:"amount" binding:"required,gt=0"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// InitializePayment starts a gateway transaction and returns the
// authorization URL the customer completes payment at
func (h *PaymentHandler) InitializePayment(c *gin.Context) {
	var req InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	transaction, err := h.paymentSvc.InitializeTransaction(req.Email, req.Amount, req.Metadata)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// VerifyPayment checks the authoritative state of a transaction by
// reference. Safe to call repeatedly for the same reference.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference is required"})
		return
	}

	verified, err := h.paymentSvc.VerifyTransaction(reference)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reference": verified.Reference,
		"currency":  verified.Currency,
		"amount":    verified.Amount,
		"customer":  verified.CustomerEmail,
		"paid_at":   verified.PaidAt,
		"metadata":  verified.Metadata,
	})
}
