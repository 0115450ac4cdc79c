package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urbanoasis/venue-backend/internal/database"
	"github.com/urbanoasis/venue-backend/internal/models"
	"github.com/urbanoasis/venue-backend/internal/services"
	"github.com/urbanoasis/venue-backend/internal/utils"
)

// OrderHandler handles restaurant order operations
type OrderHandler struct {
	orderRepo     *database.OrderRepository
	paymentSvc    *services.PaystackService
	transitionSvc *services.TransitionService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(
	orderRepo *database.OrderRepository,
	paymentSvc *services.PaystackService,
	transitionSvc *services.TransitionService,
) *OrderHandler {
	return &OrderHandler{
		orderRepo:     orderRepo,
		paymentSvc:    paymentSvc,
		transitionSvc: transitionSvc,
	}
}

// CreateOrder places a new food order
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	// A client-supplied "paid" hint is advisory. Confirm it with the
	// gateway before the resolver sees it; verification failure aborts
	// the order.
	hint := req.PaymentStatusHint
	if req.PaymentMethod.IsElectronic() && hintIsPaid(hint) {
		if _, err := h.paymentSvc.VerifyTransaction(*req.PaymentReference); err != nil {
			respondPaymentError(c, err)
			return
		}
	}

	status, paymentStatus, err := services.ResolveOrderStatus(req.PaymentMethod, req.PaymentReference, hint)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}

	platform := utils.SourcePlatform(c.Request.UserAgent())
	order := &models.Order{
		OrderReference:   utils.GenerateReference("ORD"),
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerEmail:    req.CustomerEmail,
		TotalAmount:      req.Total(),
		Status:           status,
		PaymentStatus:    paymentStatus,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		SourcePlatform:   &platform,
		Items:            items,
	}

	if err := h.orderRepo.Create(order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetOrder retrieves an order by ID
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderRepo.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders retrieves orders for the admin surface. Filters are declared
// per field; arbitrary operator chaining is not supported.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := database.OrderListFilter{}

	if v := c.Query("status"); v != "" {
		status := models.OrderStatus(v)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		filter.Status = &status
	}
	if v := c.Query("payment_status"); v != "" {
		status := models.PaymentStatus(v)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment_status filter"})
			return
		}
		filter.PaymentStatus = &status
	}
	if v := c.Query("created_after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "created_after must be RFC3339"})
			return
		}
		filter.CreatedAfter = &t
	}

	orders, err := h.orderRepo.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// UpdateOrderStatus applies an administrative status transition
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	order, err := h.transitionSvc.TransitionOrder(c.Param("id"), models.OrderStatus(*req.Status))
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
