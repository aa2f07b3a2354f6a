package model

import "time"

// ServiceHistory is the record of a completed servicing event. Recording one
// also advances the vehicle's last-service baseline.
type ServiceHistory struct {
	ID             int64     `gorm:"primaryKey" json:"service_id"`
	VehicleVIN     string    `gorm:"column:vehicle_vin;index;size:64;not null" json:"vehicle_vin"`
	ServiceDate    time.Time `json:"service_date"`
	ServiceMileage float64   `json:"service_mileage"`
	Description    string    `gorm:"size:256" json:"description,omitempty"`
	CreatedAt      time.Time `json:"-"`
}
