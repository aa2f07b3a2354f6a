package model

import "time"

// ServiceNotification logs that a vehicle was flagged for maintenance. It is
// a record, not the source of truth for the live service-due predicate.
type ServiceNotification struct {
	ID          int64     `gorm:"primaryKey" json:"notification_id"`
	VehicleID   int64     `gorm:"index;not null" json:"vehicle_id"`
	ServiceDate time.Time `json:"service_date"`
	Notified    bool      `gorm:"not null;default:false" json:"notified"`
	CreatedAt   time.Time `json:"-"`
}
