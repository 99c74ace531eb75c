package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yunanyuansyah/listPembelian/domain"
	"github.com/yunanyuansyah/listPembelian/internal/http/middleware"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	authMW  *middleware.AuthMW
	logger  *zap.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, authMW *middleware.AuthMW, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		authMW:  authMW,
		logger:  logger,
	}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Nama            string `json:"nama" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	Nomor           string `json:"nomor" binding:"required"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Register handles user registration. New accounts always get the "user"
// role; elevated accounts are created through the admin user routes.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	var result *domain.AuthResult
	var err error
	if req.Password != req.ConfirmPassword {
		err = domain.ErrPasswordMismatch
	} else {
		result, err = h.authSvc.Register(c.Request.Context(), req.Nama, req.Email, req.Password, req.Nomor)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		default:
			h.logger.Error("registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "User registered successfully",
		"user":         result.User,
		"accessToken":  result.Tokens.AccessToken,
		"refreshToken": result.Tokens.RefreshToken,
	})
}

// Login handles user login. Unknown email and wrong password share one
// message so the response does not reveal which part was wrong.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		case errors.Is(err, domain.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts, try again later"})
		default:
			h.logger.Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         result.User,
		"accessToken":  result.Tokens.AccessToken,
		"refreshToken": result.Tokens.RefreshToken,
	})
}

// Refresh exchanges a refresh token for a fresh access token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired), errors.Is(err, domain.ErrTokenInvalid):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("token refresh failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": result.Tokens.AccessToken,
		"user":        result.User,
	})
}

// Me returns the profile behind the presented access token
func (h *AuthHandlers) Me(c *gin.Context) {
	user := h.authMW.LoadRequestingUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout acknowledges the client's intent to drop its tokens. There is no
// server-side session and no revocation list, so this always succeeds.
func (h *AuthHandlers) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
