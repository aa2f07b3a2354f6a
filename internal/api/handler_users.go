package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"fleet-manager-backend/internal/model"
	"fleet-manager-backend/internal/store"
)

type userRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// CreateUser handles POST /api/users. Passwords are stored as bcrypt hashes.
func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := model.User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		Role:           model.Role(req.Role),
	}
	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser handles GET /api/users/:user_id.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	user, err := h.store.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers handles GET /api/users.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no users found"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser handles PUT /api/users/:user_id.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	upd := store.UserUpdate{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hash),
		Role:           model.Role(req.Role),
	}
	user, err := h.store.UpdateUser(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /api/users/:user_id.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	if err := h.store.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListUserTrips handles GET /api/users/:user_id/trips.
func (h *Handler) ListUserTrips(c *gin.Context) {
	id, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	trips, err := h.store.ListUserTrips(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(trips) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no trips found for this user"})
		return
	}
	c.JSON(http.StatusOK, trips)
}
