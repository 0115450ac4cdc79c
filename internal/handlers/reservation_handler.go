package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urbanoasis/venue-backend/internal/database"
	"github.com/urbanoasis/venue-backend/internal/models"
	"github.com/urbanoasis/venue-backend/internal/services"
	"github.com/urbanoasis/venue-backend/internal/utils"
	"github.com/urbanoasis/venue-backend/pkg/validator"
)

// ReservationHandler handles restaurant table reservations
type ReservationHandler struct {
	reservationRepo *database.ReservationRepository
	transitionSvc   *services.TransitionService
	phoneValidator  *validator.PhoneValidator
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(
	reservationRepo *database.ReservationRepository,
	transitionSvc *services.TransitionService,
	phoneValidator *validator.PhoneValidator,
) *ReservationHandler {
	return &ReservationHandler{
		reservationRepo: reservationRepo,
		transitionSvc:   transitionSvc,
		phoneValidator:  phoneValidator,
	}
}

// CreateReservation books a table
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	// Staff confirm reservations by phone, so the number must be reachable
	if err := h.phoneValidator.Validate(req.Phone); err != nil {
		respondValidationError(c, models.NewValidationError("phone", err.Error()))
		return
	}

	reservation := &models.Reservation{
		Reference: utils.GenerateReference("RSV"),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     h.phoneValidator.Normalize(req.Phone),
		Date:      req.Date,
		Time:      req.Time,
		Guests:    req.Guests,
		Status:    models.ReservationStatusPending,
	}

	if err := h.reservationRepo.Create(reservation); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reservation", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// ListReservations retrieves reservations for the admin surface
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var status *models.ReservationStatus
	if v := c.Query("status"); v != "" {
		s := models.ReservationStatus(v)
		if !s.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		status = &s
	}

	reservations, err := h.reservationRepo.List(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reservations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservations": reservations, "count": len(reservations)})
}

// UpdateReservationStatus applies an administrative status transition
func (h *ReservationHandler) UpdateReservationStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	reservation, err := h.transitionSvc.TransitionReservation(c.Param("id"), models.ReservationStatus(*req.Status))
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}
