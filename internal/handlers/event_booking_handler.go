package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urbanoasis/venue-backend/internal/database"
	"github.com/urbanoasis/venue-backend/internal/models"
	"github.com/urbanoasis/venue-backend/internal/services"
	"github.com/urbanoasis/venue-backend/internal/utils"
)

// EventBookingHandler handles event-space booking operations
type EventBookingHandler struct {
	bookingRepo   *database.EventBookingRepository
	spaceRepo     *database.EventSpaceRepository
	paymentSvc    *services.PaystackService
	transitionSvc *services.TransitionService
}

// NewEventBookingHandler creates a new EventBookingHandler
func NewEventBookingHandler(
	bookingRepo *database.EventBookingRepository,
	spaceRepo *database.EventSpaceRepository,
	paymentSvc *services.PaystackService,
	transitionSvc *services.TransitionService,
) *EventBookingHandler {
	return &EventBookingHandler{
		bookingRepo:   bookingRepo,
		spaceRepo:     spaceRepo,
		paymentSvc:    paymentSvc,
		transitionSvc: transitionSvc,
	}
}

// CreateBooking books an event space
func (h *EventBookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateEventBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	space, err := h.spaceRepo.GetByID(req.EventSpaceID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event space not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get event space"})
		return
	}
	if !space.Active {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This event space is not available for booking"})
		return
	}
	if req.Guests > space.Capacity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Guest count exceeds space capacity"})
		return
	}

	// A client-supplied "paid" hint is advisory until the gateway confirms
	// the transaction. Verification failure aborts the booking; the user
	// may retry the whole flow.
	amount := space.Rate
	hint := req.PaymentStatusHint
	if req.PaymentMethod.IsElectronic() && hintIsPaid(hint) {
		verified, err := h.paymentSvc.VerifyTransaction(*req.PaymentReference)
		if err != nil {
			respondPaymentError(c, err)
			return
		}
		amount = verified.Amount
	}

	status, paymentStatus, err := services.ResolveEventBookingStatus(req.PaymentMethod, req.PaymentReference, hint)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	platform := utils.SourcePlatform(c.Request.UserAgent())
	booking := &models.EventBooking{
		BookingReference: utils.GenerateReference("EVT"),
		EventSpaceID:     space.ID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CustomerEmail:    req.CustomerEmail,
		EventDate:        req.EventDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		Guests:           req.Guests,
		Amount:           amount,
		Status:           status,
		PaymentStatus:    paymentStatus,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		SourcePlatform:   &platform,
	}

	if err := h.bookingRepo.Create(booking); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save booking", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListSpaces retrieves all active event spaces
func (h *EventBookingHandler) ListSpaces(c *gin.Context) {
	spaces, err := h.spaceRepo.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list event spaces"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"event_spaces": spaces, "count": len(spaces)})
}

// ListBookings retrieves event bookings for the admin surface
func (h *EventBookingHandler) ListBookings(c *gin.Context) {
	filter := database.EventBookingListFilter{}

	if v := c.Query("status"); v != "" {
		status := models.EventBookingStatus(v)
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
	if v := c.Query("event_space_id"); v != "" {
		filter.EventSpaceID = &v
	}
	if v := c.Query("event_date_from"); v != "" {
		filter.EventDateFrom = &v
	}

	bookings, err := h.bookingRepo.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// UpdateBooking applies an administrative transition. The body carries
// either a status change or a payment_status change, never both at once.
func (h *EventBookingHandler) UpdateBooking(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	switch {
	case req.Status != nil && req.PaymentStatus != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide either status or payment_status, not both"})
	case req.Status != nil:
		booking, err := h.transitionSvc.TransitionEventBooking(c.Param("id"), models.EventBookingStatus(*req.Status))
		if err != nil {
			respondTransitionError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	case req.PaymentStatus != nil:
		if models.PaymentStatus(*req.PaymentStatus) != models.PaymentStatusPaid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
			return
		}
		booking, err := h.transitionSvc.MarkEventBookingPaid(c.Param("id"))
		if err != nil {
			respondTransitionError(c, err)
			return
		}
		c.JSON(http.StatusOK, booking)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status or payment_status is required"})
	}
}
