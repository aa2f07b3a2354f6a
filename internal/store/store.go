package store

import (
	"context"

	"gorm.io/gorm"

	"fleet-manager-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	// Fleet ledger.
	RegisterVehicle(ctx context.Context, v *model.Vehicle) error
	GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error)
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	SearchVehicles(ctx context.Context, f VehicleFilter) ([]model.Vehicle, error)
	UpdateVehicle(ctx context.Context, id int64, upd VehicleUpdate) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error

	// Trips. LogTrip, UpdateTrip and DeleteTrip apply the trip's mileage
	// contribution to the vehicle in the same transaction as the row write.
	LogTrip(ctx context.Context, t *model.Trip) error
	GetTrip(ctx context.Context, id int64) (*model.Trip, error)
	ListTrips(ctx context.Context) ([]model.Trip, error)
	UpdateTrip(ctx context.Context, id int64, upd TripUpdate) (*model.Trip, error)
	DeleteTrip(ctx context.Context, id int64) error
	ListUserTrips(ctx context.Context, userID int64) ([]TripWithVehicle, error)

	// Users.
	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListAdmins(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// Maintenance records.
	RecordService(ctx context.Context, h *model.ServiceHistory) error
	ListServiceHistory(ctx context.Context, vin string) ([]model.ServiceHistory, error)
	CreateNotification(ctx context.Context, n *model.ServiceNotification) error
	ListNotifications(ctx context.Context, vehicleID int64) ([]model.ServiceNotification, error)

	// Inspections.
	CreateInspection(ctx context.Context, i *model.Inspection) error
	ListVehicleInspections(ctx context.Context, vehicleID int64) ([]model.Inspection, error)

	// Push subscriptions.
	SavePushSubscription(ctx context.Context, s *model.PushSubscription) error
	GetPushSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeletePushSubscription(ctx context.Context, endpoint string) error
	ListPushSubscriptions(ctx context.Context) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection for health checks and the worker pool.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}
