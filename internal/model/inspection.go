package model

import "time"

// InspectionType restricts the inspection type values.
type InspectionType string

const (
	InspectionPreTrip  InspectionType = "pre_trip"
	InspectionPostTrip InspectionType = "post_trip"
)

// Valid reports whether t is a recognized inspection type.
func (t InspectionType) Valid() bool {
	return t == InspectionPreTrip || t == InspectionPostTrip
}

// Inspection is a pre- or post-trip check signed off by a user.
type Inspection struct {
	ID         int64          `gorm:"primaryKey" json:"inspection_id"`
	VehicleID  int64          `gorm:"index;not null" json:"vehicle_id"`
	UserID     int64          `gorm:"index;not null" json:"user_id"`
	Type       InspectionType `gorm:"size:16;not null" json:"type"`
	Date       time.Time      `json:"date"`
	SignedBy   string         `gorm:"size:128" json:"signed_by"`
	Status     TripStatus     `gorm:"size:16" json:"status"`
	ReportPath string         `gorm:"size:256" json:"report_path,omitempty"`
	CreatedAt  time.Time      `json:"-"`
	UpdatedAt  time.Time      `json:"-"`
}
