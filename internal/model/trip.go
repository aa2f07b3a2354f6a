package model

import "time"

// TripStatus restricts the trip lifecycle values.
type TripStatus string

const (
	TripPending   TripStatus = "pending"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

// Valid reports whether s is a recognized trip status.
func (s TripStatus) Valid() bool {
	return s == TripPending || s == TripCompleted || s == TripCancelled
}

// Trip is a journey logged against a vehicle by a user. Its distance, when
// present, has been added to the vehicle's mileage in the same transaction
// that created the row.
type Trip struct {
	ID            int64      `gorm:"primaryKey" json:"trip_id"`
	VehicleID     int64      `gorm:"index;not null" json:"vehicle_id"`
	UserID        int64      `gorm:"index;not null" json:"user_id"`
	StartLocation string     `gorm:"size:256" json:"start_location"`
	Destination   string     `gorm:"size:256" json:"destination"`
	Purpose       string     `gorm:"size:256" json:"purpose,omitempty"`
	TripDate      time.Time  `json:"trip_date"`
	Distance      *float64   `json:"distance"`
	FuelConsumed  *float64   `json:"fuel_consumed"`
	TripStatus    TripStatus `gorm:"size:16;not null" json:"trip_status"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}
