package maintenance

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fleet-manager-backend/internal/mailer"
	"fleet-manager-backend/internal/model"
	"fleet-manager-backend/internal/store"
)

// ServiceIntervalKM is the mileage a vehicle may accumulate past its last
// service before it is considered due for maintenance.
const ServiceIntervalKM = 10000.0

// IsServiceDue reports whether the vehicle has reached its service interval.
// A vehicle with an unknown odometer or service baseline is treated as due.
func IsServiceDue(v *model.Vehicle) bool {
	if v.Mileage == nil || v.LastServiceKM == nil {
		return true
	}
	return *v.Mileage >= *v.LastServiceKM+ServiceIntervalKM
}

// Dispatcher fans maintenance alerts out to push subscribers. Satisfied by
// notification.WorkerPool.
type Dispatcher interface {
	Dispatch(vehicleID int64)
}

// Monitor classifies the fleet into available and out-of-service vehicles and
// drives admin notification. The classification is stateless: it is recomputed
// from vehicle rows on every call.
type Monitor struct {
	store      store.Store
	mailer     mailer.Sender
	dispatcher Dispatcher
}

// NewMonitor creates a maintenance monitor. dispatcher may be nil when push
// notifications are not configured.
func NewMonitor(s store.Store, m mailer.Sender, dispatcher Dispatcher) *Monitor {
	return &Monitor{store: s, mailer: m, dispatcher: dispatcher}
}

// AvailableVehicles returns all vehicles not due for service. It fails with a
// NotFoundError only when the fleet itself is empty; an all-due fleet yields
// an empty, non-error result.
func (m *Monitor) AvailableVehicles(ctx context.Context) ([]model.Vehicle, error) {
	available, _, err := m.partition(ctx)
	return available, err
}

// OutOfServiceVehicles returns all vehicles due for service, with the same
// empty-fleet contract as AvailableVehicles.
func (m *Monitor) OutOfServiceVehicles(ctx context.Context) ([]model.Vehicle, error) {
	_, due, err := m.partition(ctx)
	return due, err
}

func (m *Monitor) partition(ctx context.Context) (available, due []model.Vehicle, err error) {
	vehicles, err := m.store.ListVehicles(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(vehicles) == 0 {
		return nil, nil, &store.NotFoundError{Entity: "vehicle"}
	}

	available = make([]model.Vehicle, 0, len(vehicles))
	due = make([]model.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if IsServiceDue(&v) {
			due = append(due, v)
		} else {
			available = append(available, v)
		}
	}
	return available, due, nil
}

// NotifyResult reports the outcome of a notification run.
type NotifyResult struct {
	AdminsNotified int `json:"admins_notified"`
	VehiclesDue    int `json:"vehicles_due"`
}

// NotifyAdmins emails every admin one message listing all vehicles due for
// service and dispatches a push alert per due vehicle. With no due vehicles it
// is a no-op. A failed send is logged and skipped; it never aborts the run for
// other recipients. The operation is stateless, so repeated calls resend.
func (m *Monitor) NotifyAdmins(ctx context.Context) (NotifyResult, error) {
	vehicles, err := m.store.ListVehicles(ctx)
	if err != nil {
		return NotifyResult{}, err
	}

	var due []model.Vehicle
	for _, v := range vehicles {
		if IsServiceDue(&v) {
			due = append(due, v)
		}
	}
	if len(due) == 0 {
		return NotifyResult{}, nil
	}

	admins, err := m.store.ListAdmins(ctx)
	if err != nil {
		return NotifyResult{}, err
	}

	var b strings.Builder
	b.WriteString("Vehicles due for maintenance:\n")
	for _, v := range due {
		fmt.Fprintf(&b, "%s %s (%s)\n", v.Make, v.Model, v.LicencePlate)
	}
	body := b.String()

	notified := 0
	for _, admin := range admins {
		msg := mailer.Message{
			To:      admin.Email,
			Subject: "Maintenance Alert",
			Body:    body,
		}
		if err := m.mailer.Send(msg); err != nil {
			log.Printf("Error sending maintenance alert to %s: %v", admin.Email, err)
			continue
		}
		notified++
	}

	if m.dispatcher != nil {
		for _, v := range due {
			m.dispatcher.Dispatch(v.ID)
		}
	}

	return NotifyResult{AdminsNotified: notified, VehiclesDue: len(due)}, nil
}
