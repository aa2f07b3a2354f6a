package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-manager-backend/internal/model"
	"fleet-manager-backend/internal/store"
)

type tripRequest struct {
	VehicleID     int64    `json:"vehicle_id" binding:"required"`
	UserID        int64    `json:"user_id" binding:"required"`
	StartLocation string   `json:"start_location" binding:"required"`
	Destination   string   `json:"destination" binding:"required"`
	Purpose       string   `json:"purpose"`
	TripDate      string   `json:"trip_date" binding:"required"`
	Distance      *float64 `json:"distance"`
	FuelConsumed  *float64 `json:"fuel_consumed"`
	TripStatus    string   `json:"trip_status"`
}

// LogTrip handles POST /api/trips. The trip insert and the vehicle mileage
// update commit in one transaction.
func (h *Handler) LogTrip(c *gin.Context) {
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tripDate, ok := parseDate(c, "trip_date", req.TripDate)
	if !ok {
		return
	}

	trip := model.Trip{
		VehicleID:     req.VehicleID,
		UserID:        req.UserID,
		StartLocation: req.StartLocation,
		Destination:   req.Destination,
		Purpose:       req.Purpose,
		TripDate:      tripDate,
		Distance:      req.Distance,
		FuelConsumed:  req.FuelConsumed,
		TripStatus:    model.TripStatus(req.TripStatus),
	}
	if err := h.store.LogTrip(c.Request.Context(), &trip); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// GetTrip handles GET /api/trips/:trip_id.
func (h *Handler) GetTrip(c *gin.Context) {
	id, ok := pathID(c, "trip_id")
	if !ok {
		return
	}
	trip, err := h.store.GetTrip(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// ListTrips handles GET /api/trips.
func (h *Handler) ListTrips(c *gin.Context) {
	trips, err := h.store.ListTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(trips) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no trips found"})
		return
	}
	c.JSON(http.StatusOK, trips)
}

// UpdateTrip handles PUT /api/trips/:trip_id. The old mileage contribution is
// reversed and the new one applied atomically.
func (h *Handler) UpdateTrip(c *gin.Context) {
	id, ok := pathID(c, "trip_id")
	if !ok {
		return
	}
	var req tripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tripDate, ok := parseDate(c, "trip_date", req.TripDate)
	if !ok {
		return
	}

	upd := store.TripUpdate{
		VehicleID:     req.VehicleID,
		UserID:        req.UserID,
		StartLocation: req.StartLocation,
		Destination:   req.Destination,
		Purpose:       req.Purpose,
		TripDate:      tripDate,
		Distance:      req.Distance,
		FuelConsumed:  req.FuelConsumed,
		TripStatus:    model.TripStatus(req.TripStatus),
	}
	trip, err := h.store.UpdateTrip(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DeleteTrip handles DELETE /api/trips/:trip_id.
func (h *Handler) DeleteTrip(c *gin.Context) {
	id, ok := pathID(c, "trip_id")
	if !ok {
		return
	}
	if err := h.store.DeleteTrip(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
