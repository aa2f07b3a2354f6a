package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"fleet-manager-backend/config"
	"fleet-manager-backend/internal/mailer"
	"fleet-manager-backend/internal/maintenance"
	"fleet-manager-backend/internal/mw"
	"fleet-manager-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, monitor *maintenance.Monitor, m mailer.Sender, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, monitor, m, webpushOptions, cfg.Reports.Dir)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/health", handler.Health)
		api.GET("/health/db", handler.HealthDB)

		api.POST("/login", handler.Login)

		api.POST("/users", handler.CreateUser)
		api.GET("/users", handler.ListUsers)
		api.GET("/users/:user_id", handler.GetUser)
		api.PUT("/users/:user_id", handler.UpdateUser)
		api.DELETE("/users/:user_id", handler.DeleteUser)
		api.GET("/users/:user_id/trips", handler.ListUserTrips)

		api.POST("/vehicles", handler.CreateVehicle)
		api.GET("/vehicles", handler.ListVehicles)
		api.GET("/vehicles/search", caching, handler.SearchVehicles)
		api.GET("/vehicles/available", handler.ListAvailableVehicles)
		api.GET("/vehicles/out-of-service", handler.ListOutOfServiceVehicles)
		api.GET("/vehicles/:vehicle_id", handler.GetVehicle)
		api.PUT("/vehicles/:vehicle_id", handler.UpdateVehicle)
		api.DELETE("/vehicles/:vehicle_id", handler.DeleteVehicle)

		api.POST("/trips", handler.LogTrip)
		api.GET("/trips", handler.ListTrips)
		api.GET("/trips/:trip_id", handler.GetTrip)
		api.PUT("/trips/:trip_id", handler.UpdateTrip)
		api.DELETE("/trips/:trip_id", handler.DeleteTrip)

		api.POST("/maintenance/notify", handler.NotifyMaintenance)

		api.POST("/service-history", handler.RecordService)
		api.GET("/service-history/:vin", handler.ListServiceHistory)

		api.POST("/notifications", handler.CreateNotification)
		api.GET("/notifications/:vehicle_id", handler.ListNotifications)

		api.POST("/inspections/complete", handler.CompleteInspection)
		api.GET("/inspections/vehicle/:vehicle_id", handler.ListVehicleInspections)

		api.PUT("/subscriptions", handler.PutSubscription)
		api.GET("/subscriptions", handler.GetSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
