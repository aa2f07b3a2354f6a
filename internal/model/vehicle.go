package model

import "time"

// Vehicle represents a fleet vehicle and its odometer state.
//
// Mileage and LastServiceKM are pointers: a missing value means the odometer
// state is unknown, which the maintenance monitor treats as service-due.
type Vehicle struct {
	ID              int64      `gorm:"primaryKey" json:"id"`
	VIN             string     `gorm:"column:vin;uniqueIndex;size:64;not null" json:"vin"`
	Make            string     `gorm:"size:64;not null" json:"make"`
	Model           string     `gorm:"size:64;not null" json:"model"`
	Year            int        `gorm:"not null" json:"year"`
	LicencePlate    string     `gorm:"uniqueIndex;size:32;not null" json:"licence_plate"`
	FuelType        string     `gorm:"size:32" json:"fuel_type,omitempty"`
	Mileage         *float64   `json:"mileage"`
	LastServiceKM   *float64   `gorm:"column:last_service_km" json:"last_service_km"`
	LastServiceDate *time.Time `json:"last_service_date"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}
