package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yunanyuansyah/listPembelian/domain"
	"github.com/yunanyuansyah/listPembelian/internal/http/middleware"
)

// UserHandlers handles the admin account management HTTP requests
type UserHandlers struct {
	userSvc domain.UserService
	logger  *zap.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userSvc domain.UserService, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{userSvc: userSvc, logger: logger}
}

// CreateUserRequest represents the admin user creation request
type CreateUserRequest struct {
	Nama     string `json:"nama" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Nomor    string `json:"nomor" binding:"required"`
	Status   string `json:"status,omitempty"`
}

// UpdateUserRequest represents a partial profile update
type UpdateUserRequest struct {
	Nama     *string `json:"nama"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Nomor    *string `json:"nomor"`
	Status   *string `json:"status"`
}

// ChangeStatusRequest represents a role change request
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List returns all users, passwords stripped
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// Get returns a single user
func (h *UserHandlers) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("failed to fetch user", zap.Uint("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Create creates a user with an explicit role
func (h *UserHandlers) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), req.Nama, req.Email, req.Password, req.Nomor, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		default:
			h.logger.Error("failed to create user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

// Update applies a partial profile update
func (h *UserHandlers) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), id, domain.UserUpdate{
		Nama:     req.Nama,
		Email:    req.Email,
		Password: req.Password,
		Nomor:    req.Nomor,
		Role:     req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to update user", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// ChangeStatus changes a user's role. Changing one's own role is refused.
func (h *UserHandlers) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID, ok := middleware.RequestingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	user, err := h.userSvc.ChangeRole(c.Request.Context(), actorID, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		case errors.Is(err, domain.ErrSelfRoleChange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own status"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("failed to change user status", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully", "user": user})
}

// Delete removes a user. Deleting one's own account is refused.
func (h *UserHandlers) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID, ok := middleware.RequestingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), actorID, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfDelete):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("failed to delete user", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
