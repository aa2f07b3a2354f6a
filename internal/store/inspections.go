package store

import (
	"context"

	"gorm.io/gorm"

	"fleet-manager-backend/internal/model"
)

func (s *gormStore) CreateInspection(ctx context.Context, i *model.Inspection) error {
	if !i.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be pre_trip or post_trip"}
	}
	if i.Status != "" && !i.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "must be one of pending, completed, cancelled"}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireVehicle(tx, i.VehicleID); err != nil {
			return err
		}
		if err := requireUser(tx, i.UserID); err != nil {
			return err
		}
		return tx.Create(i).Error
	})
	return wrapTxErr("create inspection", err)
}

func (s *gormStore) ListVehicleInspections(ctx context.Context, vehicleID int64) ([]model.Inspection, error) {
	var inspections []model.Inspection
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("date DESC").
		Find(&inspections).Error
	if err != nil {
		return nil, err
	}
	return inspections, nil
}
