package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fleet-manager-backend/internal/model"
)

// TripUpdate is the explicit field set accepted by UpdateTrip.
type TripUpdate struct {
	VehicleID     int64
	UserID        int64
	StartLocation string
	Destination   string
	Purpose       string
	TripDate      time.Time
	Distance      *float64
	FuelConsumed  *float64
	TripStatus    model.TripStatus
}

// TripWithVehicle is a trip row joined with its vehicle's identity, used for
// per-user trip reports.
type TripWithVehicle struct {
	model.Trip
	VehicleVIN   string `json:"vehicle_vin"`
	VehicleMake  string `json:"vehicle_make"`
	VehicleModel string `json:"vehicle_model"`
}

// LogTrip creates the trip and applies its distance to the vehicle's mileage
// in one transaction; both writes commit together or neither does. A nil
// distance has no mileage effect. When the caller leaves the status empty it
// defaults to completed if a distance was supplied, else pending.
func (s *gormStore) LogTrip(ctx context.Context, t *model.Trip) error {
	if t.Distance != nil && *t.Distance < 0 {
		return &ValidationError{Field: "distance", Reason: "must be non-negative"}
	}
	if t.TripStatus == "" {
		if t.Distance != nil {
			t.TripStatus = model.TripCompleted
		} else {
			t.TripStatus = model.TripPending
		}
	} else if !t.TripStatus.Valid() {
		return &ValidationError{Field: "trip_status", Reason: "must be one of pending, completed, cancelled"}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireVehicle(tx, t.VehicleID); err != nil {
			return err
		}
		if err := requireUser(tx, t.UserID); err != nil {
			return err
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		if t.Distance != nil {
			return applyMileageDelta(tx, t.VehicleID, *t.Distance)
		}
		return nil
	})
	return wrapTxErr("log trip", err)
}

func (s *gormStore) GetTrip(ctx context.Context, id int64) (*model.Trip, error) {
	var t model.Trip
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "trip", ID: id}
		}
		return nil, err
	}
	return &t, nil
}

func (s *gormStore) ListTrips(ctx context.Context) ([]model.Trip, error) {
	var trips []model.Trip
	if err := s.db.WithContext(ctx).Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

// UpdateTrip rewrites the trip and keeps the fleet ledger consistent: the old
// distance is backed out of the old vehicle and the new distance applied to
// the new one, all in the same transaction. Replaying the same update is a
// no-op on the odometer because the deltas cancel.
func (s *gormStore) UpdateTrip(ctx context.Context, id int64, upd TripUpdate) (*model.Trip, error) {
	if upd.Distance != nil && *upd.Distance < 0 {
		return nil, &ValidationError{Field: "distance", Reason: "must be non-negative"}
	}
	if upd.TripStatus != "" && !upd.TripStatus.Valid() {
		return nil, &ValidationError{Field: "trip_status", Reason: "must be one of pending, completed, cancelled"}
	}

	var updated model.Trip
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.Trip
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "trip", ID: id}
			}
			return err
		}

		if err := requireVehicle(tx, upd.VehicleID); err != nil {
			return err
		}
		if err := requireUser(tx, upd.UserID); err != nil {
			return err
		}

		if t.Distance != nil {
			if err := applyMileageDelta(tx, t.VehicleID, -*t.Distance); err != nil {
				return err
			}
		}
		if upd.Distance != nil {
			if err := applyMileageDelta(tx, upd.VehicleID, *upd.Distance); err != nil {
				return err
			}
		}

		t.VehicleID = upd.VehicleID
		t.UserID = upd.UserID
		t.StartLocation = upd.StartLocation
		t.Destination = upd.Destination
		t.Purpose = upd.Purpose
		t.TripDate = upd.TripDate
		t.Distance = upd.Distance
		t.FuelConsumed = upd.FuelConsumed
		if upd.TripStatus != "" {
			t.TripStatus = upd.TripStatus
		}

		if err := tx.Save(&t).Error; err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, wrapTxErr("update trip", err)
	}
	return &updated, nil
}

// DeleteTrip removes the trip and backs its distance out of the vehicle's
// mileage in the same transaction.
func (s *gormStore) DeleteTrip(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t model.Trip
		if err := tx.First(&t, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "trip", ID: id}
			}
			return err
		}
		if t.Distance != nil {
			if err := applyMileageDelta(tx, t.VehicleID, -*t.Distance); err != nil {
				return err
			}
		}
		return tx.Delete(&t).Error
	})
	return wrapTxErr("delete trip", err)
}

func (s *gormStore) ListUserTrips(ctx context.Context, userID int64) ([]TripWithVehicle, error) {
	if err := requireUser(s.db.WithContext(ctx), userID); err != nil {
		return nil, err
	}

	var rows []TripWithVehicle
	err := s.db.WithContext(ctx).
		Model(&model.Trip{}).
		Select("trips.*, vehicles.vin AS vehicle_vin, vehicles.make AS vehicle_make, vehicles.model AS vehicle_model").
		Joins("JOIN vehicles ON vehicles.id = trips.vehicle_id").
		Where("trips.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func requireVehicle(tx *gorm.DB, id int64) error {
	var count int64
	if err := tx.Model(&model.Vehicle{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &NotFoundError{Entity: "vehicle", ID: id}
	}
	return nil
}

func requireUser(tx *gorm.DB, id int64) error {
	var count int64
	if err := tx.Model(&model.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &NotFoundError{Entity: "user", ID: id}
	}
	return nil
}
