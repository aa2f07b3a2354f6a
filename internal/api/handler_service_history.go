package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-manager-backend/internal/model"
)

type serviceHistoryRequest struct {
	VehicleVIN     string  `json:"vehicle_vin" binding:"required"`
	ServiceDate    string  `json:"service_date" binding:"required"`
	ServiceMileage float64 `json:"service_mileage"`
	Description    string  `json:"description"`
}

// RecordService handles POST /api/service-history. Recording a service also
// advances the vehicle's last-service baseline, resetting its due status.
func (h *Handler) RecordService(c *gin.Context) {
	var req serviceHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	serviceDate, ok := parseDate(c, "service_date", req.ServiceDate)
	if !ok {
		return
	}

	history := model.ServiceHistory{
		VehicleVIN:     req.VehicleVIN,
		ServiceDate:    serviceDate,
		ServiceMileage: req.ServiceMileage,
		Description:    req.Description,
	}
	if err := h.store.RecordService(c.Request.Context(), &history); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, history)
}

// ListServiceHistory handles GET /api/service-history/:vin.
func (h *Handler) ListServiceHistory(c *gin.Context) {
	vin := c.Param("vin")
	history, err := h.store.ListServiceHistory(c.Request.Context(), vin)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(history) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no service history found"})
		return
	}
	c.JSON(http.StatusOK, history)
}
