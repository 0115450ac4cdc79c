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

// FitnessHandler handles fitness plan and membership operations
type FitnessHandler struct {
	planRepo       *database.FitnessPlanRepository
	membershipRepo *database.MembershipRepository
	fitnessSvc     *services.FitnessService
	paymentSvc     *services.PaystackService
	transitionSvc  *services.TransitionService
}

// NewFitnessHandler creates a new FitnessHandler
func NewFitnessHandler(
	planRepo *database.FitnessPlanRepository,
	membershipRepo *database.MembershipRepository,
	fitnessSvc *services.FitnessService,
	paymentSvc *services.PaystackService,
	transitionSvc *services.TransitionService,
) *FitnessHandler {
	return &FitnessHandler{
		planRepo:       planRepo,
		membershipRepo: membershipRepo,
		fitnessSvc:     fitnessSvc,
		paymentSvc:     paymentSvc,
		transitionSvc:  transitionSvc,
	}
}

// ListPlans retrieves all fitness plans
func (h *FitnessHandler) ListPlans(c *gin.Context) {
	plans, err := h.planRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fitness plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans, "count": len(plans)})
}

// CreatePlan creates a fitness plan (admin). Feature rows that fail to
// persist are reported in failed_features rather than failing the request.
func (h *FitnessHandler) CreatePlan(c *gin.Context) {
	var req models.UpsertFitnessPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := h.fitnessSvc.CreatePlan(&req)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			respondValidationError(c, err)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, result)
}

// UpdatePlan updates a fitness plan (admin)
func (h *FitnessHandler) UpdatePlan(c *gin.Context) {
	var req models.UpsertFitnessPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := h.fitnessSvc.UpdatePlan(c.Param("id"), &req)
	if err != nil {
		var validationErr *models.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondValidationError(c, err)
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeletePlan removes a fitness plan and its features (admin)
func (h *FitnessHandler) DeletePlan(c *gin.Context) {
	if err := h.fitnessSvc.DeletePlan(c.Param("id")); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}

// CreateMembership purchases a fitness plan
func (h *FitnessHandler) CreateMembership(c *gin.Context) {
	var req models.CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	plan, err := h.planRepo.GetByID(req.PlanID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fitness plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get fitness plan"})
		return
	}

	hint := req.PaymentStatusHint
	if req.PaymentMethod.IsElectronic() && hintIsPaid(hint) {
		if _, err := h.paymentSvc.VerifyTransaction(*req.PaymentReference); err != nil {
			respondPaymentError(c, err)
			return
		}
	}

	status, paymentStatus, err := services.ResolveMembershipStatus(req.PaymentMethod, req.PaymentReference, hint)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	membership := &models.Membership{
		Reference:        utils.GenerateReference("MEM"),
		PlanID:           plan.ID,
		MemberName:       req.MemberName,
		MemberEmail:      req.MemberEmail,
		MemberPhone:      req.MemberPhone,
		Amount:           plan.Price,
		Status:           status,
		PaymentStatus:    paymentStatus,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
	}

	if err := h.membershipRepo.Create(membership); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save membership", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, membership)
}

// ListMemberships retrieves memberships for the admin surface
func (h *FitnessHandler) ListMemberships(c *gin.Context) {
	var status *models.MembershipStatus
	if v := c.Query("status"); v != "" {
		s := models.MembershipStatus(v)
		if !s.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		status = &s
	}

	memberships, err := h.membershipRepo.List(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list memberships"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"memberships": memberships, "count": len(memberships)})
}

// ConfirmMembershipPayment confirms a membership payment (admin). Payment
// confirmation activates the membership in the same operation.
func (h *FitnessHandler) ConfirmMembershipPayment(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentStatus == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "payment_status is required"})
		return
	}

	if models.PaymentStatus(*req.PaymentStatus) != models.PaymentStatusPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status transition"})
		return
	}

	membership, err := h.transitionSvc.MarkMembershipPaid(c.Param("id"))
	if err != nil {
		respondTransitionError(c, err)
		return
	}

	c.JSON(http.StatusOK, membership)
}
