package public

import (
	"time"

	"github.com/artisanhub/internal/http/response"
	"github.com/artisanhub/internal/models"
	"github.com/artisanhub/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest registration body
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// LoginRequest login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest password change body
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// AuthResponse signed-in account
type AuthResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Register creates a customer or artisan account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Name, email and password are required", nil)
		return
	}
	user, token, expiresAt, err := h.AuthService.Register(service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		respondAuthError(c, err, "Registration failed")
		return
	}
	response.Created(c, "User registered successfully", AuthResponse{User: user, Token: token, ExpiresAt: expiresAt})
}

// Login exchanges credentials for a bearer token
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Email and password are required", nil)
		return
	}
	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err, "Login failed")
		return
	}
	response.SuccessWithMsg(c, "Login successful", AuthResponse{User: user, Token: token, ExpiresAt: expiresAt})
}

// Logout tokens are stateless; the client drops its copy
func (h *Handler) Logout(c *gin.Context) {
	response.SuccessWithMsg(c, "Logged out successfully", nil)
}

// GetProfile the caller's account
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AuthService.Profile(uid)
	if err != nil {
		respondAuthError(c, err, "Failed to get profile")
		return
	}
	response.Success(c, gin.H{"user": user})
}

// UpdateProfile edits name, phone, address and the artisan profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req service.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request body", nil)
		return
	}
	user, err := h.AuthService.UpdateProfile(uid, req)
	if err != nil {
		respondAuthError(c, err, "Failed to update profile")
		return
	}
	response.SuccessWithMsg(c, "Profile updated successfully", gin.H{"user": user})
}

// ChangePassword replaces the password and revokes every earlier token
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Current and new password are required", nil)
		return
	}
	if err := h.AuthService.ChangePassword(uid, req.CurrentPassword, req.NewPassword); err != nil {
		respondAuthError(c, err, "Failed to change password")
		return
	}
	response.SuccessWithMsg(c, "Password changed successfully, please sign in again", nil)
}

// Verify confirms the bearer token still resolves to an active account
func (h *Handler) Verify(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.AuthService.Profile(uid)
	if err != nil {
		respondAuthError(c, err, "Token verification failed")
		return
	}
	response.SuccessWithMsg(c, "Token is valid", gin.H{"user": user})
}
