package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fleet-manager-backend/internal/db"
	"fleet-manager-backend/internal/mailer"
	"fleet-manager-backend/internal/model"
	"fleet-manager-backend/internal/store"
)

func f(v float64) *float64 { return &v }

func TestIsServiceDue(t *testing.T) {
	testCases := []struct {
		name          string
		mileage       *float64
		lastServiceKM *float64
		want          bool
	}{
		{"within interval", f(95000), f(90000), false},
		{"past interval", f(101000), f(90000), true},
		{"exactly at interval", f(100000), f(90000), true},
		{"just under interval", f(99999.9), f(90000), false},
		{"unknown mileage is due", nil, f(90000), true},
		{"unknown baseline is due", f(95000), nil, true},
		{"fresh vehicle", f(0), f(0), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := &model.Vehicle{Mileage: tc.mileage, LastServiceKM: tc.lastServiceKM}
			assert.Equal(t, tc.want, IsServiceDue(v))
		})
	}
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.Migrate(gormDB))
	return store.NewGormStore(gormDB)
}

// mockSender records sent mail and can be told to fail per recipient.
type mockSender struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail map[string]bool
}

func (m *mockSender) Send(msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[msg.To] {
		return errors.New("smtp: connection refused")
	}
	m.sent = append(m.sent, msg)
	return nil
}

// recordingDispatcher captures dispatched vehicle IDs.
type recordingDispatcher struct {
	ids []int64
}

func (d *recordingDispatcher) Dispatch(vehicleID int64) {
	d.ids = append(d.ids, vehicleID)
}

func seedVehicle(t *testing.T, s store.Store, vin, plate string, mileage, baseline *float64) *model.Vehicle {
	t.Helper()
	v := &model.Vehicle{
		VIN:           vin,
		Make:          "Toyota",
		Model:         "Corolla",
		Year:          2020,
		LicencePlate:  plate,
		Mileage:       mileage,
		LastServiceKM: baseline,
	}
	require.NoError(t, s.RegisterVehicle(context.Background(), v))
	return v
}

func TestPartition(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	monitor := NewMonitor(s, &mockSender{}, nil)

	t.Run("empty fleet is not found", func(t *testing.T) {
		_, err := monitor.AvailableVehicles(ctx)
		var notFound *store.NotFoundError
		assert.ErrorAs(t, err, &notFound)

		_, err = monitor.OutOfServiceVehicles(ctx)
		assert.ErrorAs(t, err, &notFound)
	})

	seedVehicle(t, s, "VIN-1", "AA-111", f(95000), f(90000))  // available
	seedVehicle(t, s, "VIN-2", "AA-222", f(101000), f(90000)) // due
	seedVehicle(t, s, "VIN-3", "AA-333", f(50000), nil)       // unknown baseline, due
	seedVehicle(t, s, "VIN-4", "AA-444", f(12000), f(11000))  // available

	t.Run("partition covers the fleet with no overlap", func(t *testing.T) {
		available, err := monitor.AvailableVehicles(ctx)
		require.NoError(t, err)
		due, err := monitor.OutOfServiceVehicles(ctx)
		require.NoError(t, err)

		assert.Len(t, available, 2)
		assert.Len(t, due, 2)

		seen := make(map[int64]int)
		for _, v := range available {
			seen[v.ID]++
		}
		for _, v := range due {
			seen[v.ID]++
		}
		all, err := s.ListVehicles(ctx)
		require.NoError(t, err)
		assert.Len(t, seen, len(all))
		for id, n := range seen {
			assert.Equal(t, 1, n, "vehicle %d classified more than once", id)
		}
	})
}

func TestPartitionAllDue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	monitor := NewMonitor(s, &mockSender{}, nil)

	seedVehicle(t, s, "VIN-1", "AA-111", f(101000), f(90000))
	seedVehicle(t, s, "VIN-2", "AA-222", nil, nil)

	// All vehicles filtered out is a valid empty result, not an error.
	available, err := monitor.AvailableVehicles(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)

	due, err := monitor.OutOfServiceVehicles(ctx)
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func seedUser(t *testing.T, s store.Store, email string, role model.Role) {
	t.Helper()
	u := &model.User{Name: email, Email: email, HashedPassword: "x", Role: role}
	require.NoError(t, s.CreateUser(context.Background(), u))
}

func TestNotifyAdmins(t *testing.T) {
	ctx := context.Background()

	t.Run("notifies every admin about every due vehicle", func(t *testing.T) {
		s := newTestStore(t)
		sender := &mockSender{}
		dispatcher := &recordingDispatcher{}
		monitor := NewMonitor(s, sender, dispatcher)

		seedUser(t, s, "admin1@fleet.test", model.RoleAdmin)
		seedUser(t, s, "admin2@fleet.test", model.RoleAdmin)
		seedUser(t, s, "driver@fleet.test", model.RoleEmployee)

		seedVehicle(t, s, "VIN-1", "DUE-001", f(101000), f(90000))
		seedVehicle(t, s, "VIN-2", "DUE-002", f(120000), f(100000))
		seedVehicle(t, s, "VIN-3", "DUE-003", nil, nil)
		seedVehicle(t, s, "VIN-4", "OK-0004", f(95000), f(90000))

		result, err := monitor.NotifyAdmins(ctx)
		require.NoError(t, err)
		assert.Equal(t, NotifyResult{AdminsNotified: 2, VehiclesDue: 3}, result)

		require.Len(t, sender.sent, 2)
		for _, msg := range sender.sent {
			assert.Equal(t, "Maintenance Alert", msg.Subject)
			assert.Contains(t, msg.Body, "DUE-001")
			assert.Contains(t, msg.Body, "DUE-002")
			assert.Contains(t, msg.Body, "DUE-003")
			assert.NotContains(t, msg.Body, "OK-0004")
		}
		assert.Len(t, dispatcher.ids, 3)
	})

	t.Run("no due vehicles is a no-op", func(t *testing.T) {
		s := newTestStore(t)
		sender := &mockSender{}
		monitor := NewMonitor(s, sender, nil)

		seedUser(t, s, "admin@fleet.test", model.RoleAdmin)
		seedVehicle(t, s, "VIN-1", "OK-0001", f(95000), f(90000))

		result, err := monitor.NotifyAdmins(ctx)
		require.NoError(t, err)
		assert.Equal(t, NotifyResult{}, result)
		assert.Empty(t, sender.sent)
	})

	t.Run("a failed send is skipped, not fatal", func(t *testing.T) {
		s := newTestStore(t)
		sender := &mockSender{fail: map[string]bool{"admin1@fleet.test": true}}
		monitor := NewMonitor(s, sender, nil)

		seedUser(t, s, "admin1@fleet.test", model.RoleAdmin)
		seedUser(t, s, "admin2@fleet.test", model.RoleAdmin)
		seedVehicle(t, s, "VIN-1", "DUE-001", f(101000), f(90000))

		result, err := monitor.NotifyAdmins(ctx)
		require.NoError(t, err)
		assert.Equal(t, NotifyResult{AdminsNotified: 1, VehiclesDue: 1}, result)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "admin2@fleet.test", sender.sent[0].To)
	})

	t.Run("repeated calls resend", func(t *testing.T) {
		s := newTestStore(t)
		sender := &mockSender{}
		monitor := NewMonitor(s, sender, nil)

		seedUser(t, s, "admin@fleet.test", model.RoleAdmin)
		seedVehicle(t, s, "VIN-1", "DUE-001", f(101000), f(90000))

		for i := 0; i < 2; i++ {
			result, err := monitor.NotifyAdmins(ctx)
			require.NoError(t, err)
			assert.Equal(t, NotifyResult{AdminsNotified: 1, VehiclesDue: 1}, result)
		}
		assert.Len(t, sender.sent, 2)
	})
}
