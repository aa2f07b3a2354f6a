package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-manager-backend/internal/model"
)

// ListAvailableVehicles handles GET /api/vehicles/available. 404 means the
// fleet is empty; an all-due fleet yields 200 with an empty array.
func (h *Handler) ListAvailableVehicles(c *gin.Context) {
	vehicles, err := h.monitor.AvailableVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// ListOutOfServiceVehicles handles GET /api/vehicles/out-of-service.
func (h *Handler) ListOutOfServiceVehicles(c *gin.Context) {
	vehicles, err := h.monitor.OutOfServiceVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// NotifyMaintenance handles POST /api/maintenance/notify.
func (h *Handler) NotifyMaintenance(c *gin.Context) {
	result, err := h.monitor.NotifyAdmins(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type notificationRequest struct {
	VehicleID   int64  `json:"vehicle_id" binding:"required"`
	ServiceDate string `json:"service_date" binding:"required"`
	Notified    bool   `json:"notified"`
}

// CreateNotification handles POST /api/notifications, appending to the
// service notification log.
func (h *Handler) CreateNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	serviceDate, ok := parseDate(c, "service_date", req.ServiceDate)
	if !ok {
		return
	}

	notification := model.ServiceNotification{
		VehicleID:   req.VehicleID,
		ServiceDate: serviceDate,
		Notified:    req.Notified,
	}
	if err := h.store.CreateNotification(c.Request.Context(), &notification); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, notification)
}

// ListNotifications handles GET /api/notifications/:vehicle_id.
func (h *Handler) ListNotifications(c *gin.Context) {
	id, ok := pathID(c, "vehicle_id")
	if !ok {
		return
	}
	notifications, err := h.store.ListNotifications(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}
