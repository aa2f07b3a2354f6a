package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fleet-manager-backend/internal/model"
)

// RecordService logs a completed servicing event and advances the vehicle's
// last-service baseline in the same transaction, which resets the service-due
// predicate for that vehicle.
func (s *gormStore) RecordService(ctx context.Context, h *model.ServiceHistory) error {
	if h.ServiceMileage < 0 {
		return &ValidationError{Field: "service_mileage", Reason: "must be non-negative"}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v model.Vehicle
		if err := tx.Where("vin = ?", h.VehicleVIN).First(&v).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "vehicle"}
			}
			return err
		}
		if err := tx.Create(h).Error; err != nil {
			return err
		}

		km := h.ServiceMileage
		date := h.ServiceDate
		v.LastServiceKM = &km
		v.LastServiceDate = &date
		return tx.Save(&v).Error
	})
	return wrapTxErr("record service", err)
}

func (s *gormStore) ListServiceHistory(ctx context.Context, vin string) ([]model.ServiceHistory, error) {
	var history []model.ServiceHistory
	err := s.db.WithContext(ctx).
		Where("vehicle_vin = ?", vin).
		Order("service_date DESC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (s *gormStore) CreateNotification(ctx context.Context, n *model.ServiceNotification) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireVehicle(tx, n.VehicleID); err != nil {
			return err
		}
		return tx.Create(n).Error
	})
	return wrapTxErr("create notification", err)
}

func (s *gormStore) ListNotifications(ctx context.Context, vehicleID int64) ([]model.ServiceNotification, error) {
	var notifications []model.ServiceNotification
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("service_date DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
