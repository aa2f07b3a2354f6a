package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fleet-manager-backend/internal/model"
)

// VehicleFilter narrows a vehicle search. Empty fields are ignored.
type VehicleFilter struct {
	Make         string
	Model        string
	LicencePlate string
}

// VehicleUpdate is the explicit field set accepted by UpdateVehicle.
type VehicleUpdate struct {
	VIN             string
	Make            string
	Model           string
	Year            int
	LicencePlate    string
	FuelType        string
	Mileage         *float64
	LastServiceKM   *float64
	LastServiceDate *time.Time
}

// RegisterVehicle creates a vehicle after checking VIN and licence plate
// uniqueness. A nil mileage defaults to zero so the odometer starts known.
func (s *gormStore) RegisterVehicle(ctx context.Context, v *model.Vehicle) error {
	if v.Mileage != nil && *v.Mileage < 0 {
		return &ValidationError{Field: "mileage", Reason: "must be non-negative"}
	}
	if v.Mileage == nil {
		zero := 0.0
		v.Mileage = &zero
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Vehicle{}).Where("vin = ?", v.VIN).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Entity: "vehicle", Field: "vin", Value: v.VIN}
		}
		if err := tx.Model(&model.Vehicle{}).Where("licence_plate = ?", v.LicencePlate).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Entity: "vehicle", Field: "licence_plate", Value: v.LicencePlate}
		}
		return tx.Create(v).Error
	})
	return wrapTxErr("register vehicle", err)
}

func (s *gormStore) GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	var v model.Vehicle
	if err := s.db.WithContext(ctx).First(&v, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "vehicle", ID: id}
		}
		return nil, err
	}
	return &v, nil
}

func (s *gormStore) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := s.db.WithContext(ctx).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (s *gormStore) SearchVehicles(ctx context.Context, f VehicleFilter) ([]model.Vehicle, error) {
	q := s.db.WithContext(ctx).Model(&model.Vehicle{})
	if f.Make != "" {
		q = q.Where("make = ?", f.Make)
	}
	if f.Model != "" {
		q = q.Where("model = ?", f.Model)
	}
	if f.LicencePlate != "" {
		q = q.Where("licence_plate = ?", f.LicencePlate)
	}

	var vehicles []model.Vehicle
	if err := q.Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// UpdateVehicle replaces the vehicle's descriptive and odometer fields.
// Uniqueness of VIN and licence plate is re-checked against other rows.
func (s *gormStore) UpdateVehicle(ctx context.Context, id int64, upd VehicleUpdate) (*model.Vehicle, error) {
	if upd.Mileage != nil && *upd.Mileage < 0 {
		return nil, &ValidationError{Field: "mileage", Reason: "must be non-negative"}
	}

	var updated model.Vehicle
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v model.Vehicle
		if err := tx.First(&v, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "vehicle", ID: id}
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.Vehicle{}).Where("vin = ? AND id <> ?", upd.VIN, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Entity: "vehicle", Field: "vin", Value: upd.VIN}
		}
		if err := tx.Model(&model.Vehicle{}).Where("licence_plate = ? AND id <> ?", upd.LicencePlate, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Entity: "vehicle", Field: "licence_plate", Value: upd.LicencePlate}
		}

		v.VIN = upd.VIN
		v.Make = upd.Make
		v.Model = upd.Model
		v.Year = upd.Year
		v.LicencePlate = upd.LicencePlate
		v.FuelType = upd.FuelType
		if upd.Mileage != nil {
			v.Mileage = upd.Mileage
		}
		if upd.LastServiceKM != nil {
			v.LastServiceKM = upd.LastServiceKM
		}
		if upd.LastServiceDate != nil {
			v.LastServiceDate = upd.LastServiceDate
		}

		if err := tx.Save(&v).Error; err != nil {
			return err
		}
		updated = v
		return nil
	})
	if err != nil {
		return nil, wrapTxErr("update vehicle", err)
	}
	return &updated, nil
}

func (s *gormStore) DeleteVehicle(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var v model.Vehicle
		if err := tx.First(&v, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "vehicle", ID: id}
			}
			return err
		}
		return tx.Delete(&v).Error
	})
	return wrapTxErr("delete vehicle", err)
}

// applyMileageDelta adjusts a vehicle's odometer inside tx. The increment is
// computed in SQL so concurrent trips against the same vehicle cannot lose
// updates to a read-modify-write race.
func applyMileageDelta(tx *gorm.DB, vehicleID int64, delta float64) error {
	return tx.Model(&model.Vehicle{}).
		Where("id = ?", vehicleID).
		UpdateColumn("mileage", gorm.Expr("COALESCE(mileage, 0) + ?", delta)).Error
}
