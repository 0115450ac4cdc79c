package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/urbanoasis/venue-backend/internal/database"
	"github.com/urbanoasis/venue-backend/internal/models"
	"github.com/urbanoasis/venue-backend/pkg/jwt"
)

// AdminAuthHandler handles administrator authentication
type AdminAuthHandler struct {
	adminRepo  *database.AdminUserRepository
	jwtService *jwt.Service
}

// NewAdminAuthHandler creates a new AdminAuthHandler
func NewAdminAuthHandler(adminRepo *database.AdminUserRepository, jwtService *jwt.Service) *AdminAuthHandler {
	return &AdminAuthHandler{adminRepo: adminRepo, jwtService: jwtService}
}

// Login authenticates an administrator and issues a token pair
func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	admin, err := h.adminRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(admin.ID, admin.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"admin": gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		},
	})
}

// Refresh exchanges a valid refresh token for a new access token
func (h *AdminAuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	// Re-read the admin in case the role changed since the token was issued
	admin, err := h.adminRepo.GetByID(claims.AdminID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin account not found"})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}
