package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fleet-manager-backend/internal/model"
)

func newSQLiteStore(t *testing.T) Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, gormDB.AutoMigrate(
		&model.User{},
		&model.Vehicle{},
		&model.Trip{},
		&model.Inspection{},
		&model.ServiceNotification{},
		&model.ServiceHistory{},
		&model.PushSubscription{},
	))
	return NewGormStore(gormDB)
}

func fptr(v float64) *float64 { return &v }

func seedFleet(t *testing.T, s Store, mileage float64) (vehicleID, userID int64) {
	t.Helper()
	ctx := context.Background()

	v := &model.Vehicle{
		VIN:           "1HGBH41JXMN109186",
		Make:          "Ford",
		Model:         "Transit",
		Year:          2019,
		LicencePlate:  "FL-100",
		Mileage:       fptr(mileage),
		LastServiceKM: fptr(0),
	}
	require.NoError(t, s.RegisterVehicle(ctx, v))

	u := &model.User{Name: "Dana", Email: "dana@fleet.test", HashedPassword: "x", Role: model.RoleEmployee}
	require.NoError(t, s.CreateUser(ctx, u))

	return v.ID, u.ID
}

func vehicleMileage(t *testing.T, s Store, id int64) float64 {
	t.Helper()
	v, err := s.GetVehicle(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, v.Mileage)
	return *v.Mileage
}

func TestLogTrip(t *testing.T) {
	ctx := context.Background()
	tripDate := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("applies the distance to the vehicle mileage exactly once", func(t *testing.T) {
		s := newSQLiteStore(t)
		vehicleID, userID := seedFleet(t, s, 5000)

		trip := &model.Trip{
			VehicleID:     vehicleID,
			UserID:        userID,
			StartLocation: "Depot",
			Destination:   "Harbor",
			TripDate:      tripDate,
			Distance:      fptr(120.5),
		}
		require.NoError(t, s.LogTrip(ctx, trip))

		assert.NotZero(t, trip.ID)
		assert.Equal(t, model.TripCompleted, trip.TripStatus)
		assert.Equal(t, 5120.5, vehicleMileage(t, s, vehicleID))
	})

	t.Run("nil distance has no mileage effect and defaults to pending", func(t *testing.T) {
		s := newSQLiteStore(t)
		vehicleID, userID := seedFleet(t, s, 5000)

		trip := &model.Trip{VehicleID: vehicleID, UserID: userID, TripDate: tripDate}
		require.NoError(t, s.LogTrip(ctx, trip))

		assert.Equal(t, model.TripPending, trip.TripStatus)
		assert.Equal(t, 5000.0, vehicleMileage(t, s, vehicleID))
	})

	t.Run("caller-specified status is not overridden", func(t *testing.T) {
		s := newSQLiteStore(t)
		vehicleID, userID := seedFleet(t, s, 5000)

		trip := &model.Trip{
			VehicleID:  vehicleID,
			UserID:     userID,
			TripDate:   tripDate,
			Distance:   fptr(10),
			TripStatus: model.TripCancelled,
		}
		require.NoError(t, s.LogTrip(ctx, trip))
		assert.Equal(t, model.TripCancelled, trip.TripStatus)
	})

	t.Run("negative distance is rejected with no writes", func(t *testing.T) {
		s := newSQLiteStore(t)
		vehicleID, userID := seedFleet(t, s, 5000)

		trip := &model.Trip{VehicleID: vehicleID, UserID: userID, TripDate: tripDate, Distance: fptr(-1)}
		err := s.LogTrip(ctx, trip)

		var invalid *ValidationError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "distance", invalid.Field)

		trips, err := s.ListTrips(ctx)
		require.NoError(t, err)
		assert.Empty(t, trips)
		assert.Equal(t, 5000.0, vehicleMileage(t, s, vehicleID))
	})

	t.Run("missing vehicle is named in the error", func(t *testing.T) {
		s := newSQLiteStore(t)
		_, userID := seedFleet(t, s, 5000)

		trip := &model.Trip{VehicleID: 9999, UserID: userID, TripDate: tripDate, Distance: fptr(10)}
		err := s.LogTrip(ctx, trip)

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "vehicle", notFound.Entity)
	})

	t.Run("missing user is named in the error and nothing is written", func(t *testing.T) {
		s := newSQLiteStore(t)
		vehicleID, _ := seedFleet(t, s, 5000)

		trip := &model.Trip{VehicleID: vehicleID, UserID: 9999, TripDate: tripDate, Distance: fptr(10)}
		err := s.LogTrip(ctx, trip)

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "user", notFound.Entity)
		assert.Equal(t, 5000.0, vehicleMileage(t, s, vehicleID))
	})

	t.Run("successive trips accumulate", func(t *testing.T) {
		s := newSQLiteStore(t)
		vehicleID, userID := seedFleet(t, s, 100)

		for _, d := range []float64{10, 15} {
			trip := &model.Trip{VehicleID: vehicleID, UserID: userID, TripDate: tripDate, Distance: fptr(d)}
			require.NoError(t, s.LogTrip(ctx, trip))
		}
		assert.Equal(t, 125.0, vehicleMileage(t, s, vehicleID))
	})
}

func TestUpdateTripReversesMileage(t *testing.T) {
	ctx := context.Background()
	tripDate := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("distance change applies the delta", func(t *testing.T) {
		s := newSQLiteStore(t)
		vehicleID, userID := seedFleet(t, s, 5000)

		trip := &model.Trip{VehicleID: vehicleID, UserID: userID, TripDate: tripDate, Distance: fptr(120.5)}
		require.NoError(t, s.LogTrip(ctx, trip))
		require.Equal(t, 5120.5, vehicleMileage(t, s, vehicleID))

		upd := TripUpdate{
			VehicleID:  vehicleID,
			UserID:     userID,
			TripDate:   tripDate,
			Distance:   fptr(100),
			TripStatus: model.TripCompleted,
		}
		updated, err := s.UpdateTrip(ctx, trip.ID, upd)
		require.NoError(t, err)
		assert.Equal(t, 100.0, *updated.Distance)
		assert.Equal(t, 5100.0, vehicleMileage(t, s, vehicleID))
	})

	t.Run("vehicle change moves the contribution", func(t *testing.T) {
		s := newSQLiteStore(t)
		vehicleID, userID := seedFleet(t, s, 5000)

		other := &model.Vehicle{
			VIN:          "2FMDK38C57BA12345",
			Make:         "Ford",
			Model:        "Ranger",
			Year:         2021,
			LicencePlate: "FL-200",
			Mileage:      fptr(1000),
		}
		require.NoError(t, s.RegisterVehicle(ctx, other))

		trip := &model.Trip{VehicleID: vehicleID, UserID: userID, TripDate: tripDate, Distance: fptr(50)}
		require.NoError(t, s.LogTrip(ctx, trip))

		upd := TripUpdate{VehicleID: other.ID, UserID: userID, TripDate: tripDate, Distance: fptr(50)}
		_, err := s.UpdateTrip(ctx, trip.ID, upd)
		require.NoError(t, err)

		assert.Equal(t, 5000.0, vehicleMileage(t, s, vehicleID))
		assert.Equal(t, 1050.0, vehicleMileage(t, s, other.ID))
	})
}

func TestDeleteTripReversesMileage(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	vehicleID, userID := seedFleet(t, s, 5000)

	trip := &model.Trip{
		VehicleID: vehicleID,
		UserID:    userID,
		TripDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Distance:  fptr(120.5),
	}
	require.NoError(t, s.LogTrip(ctx, trip))
	require.Equal(t, 5120.5, vehicleMileage(t, s, vehicleID))

	require.NoError(t, s.DeleteTrip(ctx, trip.ID))
	assert.Equal(t, 5000.0, vehicleMileage(t, s, vehicleID))

	_, err := s.GetTrip(ctx, trip.ID)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestListUserTrips(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	vehicleID, userID := seedFleet(t, s, 5000)

	trip := &model.Trip{
		VehicleID:     vehicleID,
		UserID:        userID,
		StartLocation: "Depot",
		Destination:   "Airport",
		TripDate:      time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		Distance:      fptr(42),
	}
	require.NoError(t, s.LogTrip(ctx, trip))

	rows, err := s.ListUserTrips(ctx, userID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1HGBH41JXMN109186", rows[0].VehicleVIN)
	assert.Equal(t, "Ford", rows[0].VehicleMake)
	assert.Equal(t, "Transit", rows[0].VehicleModel)

	_, err = s.ListUserTrips(ctx, 9999)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
