package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fleet-manager-backend/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_LogTrip_SQL(t *testing.T) {
	tripDate := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("mileage increment runs in SQL inside the trip transaction", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "vehicles" WHERE id = $1`)).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE id = $1`)).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "trips"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "vehicles" SET "mileage"=COALESCE(mileage, 0) + $1 WHERE id = $2`)).
			WithArgs(120.5, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		trip := &model.Trip{
			VehicleID: 7,
			UserID:    3,
			TripDate:  tripDate,
			Distance:  fptr(120.5),
		}
		err := s.LogTrip(context.Background(), trip)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a failed mileage update rolls the trip row back", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "vehicles"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "trips"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "vehicles"`)).
			WithArgs(Any{}, Any{}).
			WillReturnError(errors.New("pq: deadlock detected"))
		mock.ExpectRollback()

		trip := &model.Trip{
			VehicleID: 7,
			UserID:    3,
			TripDate:  tripDate,
			Distance:  fptr(120.5),
		}
		err := s.LogTrip(context.Background(), trip)

		var txErr *TransactionError
		require.ErrorAs(t, err, &txErr)
		assert.Equal(t, "log trip", txErr.Op)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("a missing vehicle aborts before any write", func(t *testing.T) {
		gormDB, mock := newTestDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "vehicles"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectRollback()

		trip := &model.Trip{
			VehicleID: 9999,
			UserID:    3,
			TripDate:  tripDate,
			Distance:  fptr(10),
		}
		err := s.LogTrip(context.Background(), trip)

		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "vehicle", notFound.Entity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
