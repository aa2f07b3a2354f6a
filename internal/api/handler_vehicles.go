package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-manager-backend/internal/model"
	"fleet-manager-backend/internal/store"
)

type vehicleRequest struct {
	VIN             string   `json:"vin" binding:"required"`
	Make            string   `json:"make" binding:"required"`
	Model           string   `json:"model" binding:"required"`
	Year            int      `json:"year" binding:"required"`
	LicencePlate    string   `json:"licence_plate" binding:"required"`
	FuelType        string   `json:"fuel_type"`
	Mileage         *float64 `json:"mileage"`
	LastServiceKM   *float64 `json:"last_service_km"`
	LastServiceDate string   `json:"last_service_date"`
}

func (r *vehicleRequest) serviceDate(c *gin.Context) (*time.Time, bool) {
	if r.LastServiceDate == "" {
		return nil, true
	}
	t, ok := parseDate(c, "last_service_date", r.LastServiceDate)
	if !ok {
		return nil, false
	}
	return &t, true
}

// CreateVehicle handles POST /api/vehicles.
func (h *Handler) CreateVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	serviceDate, ok := req.serviceDate(c)
	if !ok {
		return
	}

	vehicle := model.Vehicle{
		VIN:             req.VIN,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		LicencePlate:    req.LicencePlate,
		FuelType:        req.FuelType,
		Mileage:         req.Mileage,
		LastServiceKM:   req.LastServiceKM,
		LastServiceDate: serviceDate,
	}
	if err := h.store.RegisterVehicle(c.Request.Context(), &vehicle); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicle handles GET /api/vehicles/:vehicle_id.
func (h *Handler) GetVehicle(c *gin.Context) {
	id, ok := pathID(c, "vehicle_id")
	if !ok {
		return
	}
	vehicle, err := h.store.GetVehicle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// ListVehicles handles GET /api/vehicles.
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.store.ListVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(vehicles) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no vehicles found"})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// SearchVehicles handles GET /api/vehicles/search.
func (h *Handler) SearchVehicles(c *gin.Context) {
	filter := store.VehicleFilter{
		Make:         c.Query("make"),
		Model:        c.Query("model"),
		LicencePlate: c.Query("licence_plate"),
	}
	vehicles, err := h.store.SearchVehicles(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(vehicles) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no vehicles found"})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// UpdateVehicle handles PUT /api/vehicles/:vehicle_id.
func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, ok := pathID(c, "vehicle_id")
	if !ok {
		return
	}
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	serviceDate, ok := req.serviceDate(c)
	if !ok {
		return
	}

	upd := store.VehicleUpdate{
		VIN:             req.VIN,
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		LicencePlate:    req.LicencePlate,
		FuelType:        req.FuelType,
		Mileage:         req.Mileage,
		LastServiceKM:   req.LastServiceKM,
		LastServiceDate: serviceDate,
	}
	vehicle, err := h.store.UpdateVehicle(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /api/vehicles/:vehicle_id.
func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, ok := pathID(c, "vehicle_id")
	if !ok {
		return
	}
	if err := h.store.DeleteVehicle(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
