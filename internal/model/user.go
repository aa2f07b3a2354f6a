package model

import "time"

// Role restricts the user role values.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

// User represents a driver or an administrator.
type User struct {
	ID             int64     `gorm:"primaryKey" json:"user_id"`
	Name           string    `gorm:"size:128" json:"name"`
	Email          string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	HashedPassword string    `gorm:"size:128;not null" json:"-"`
	Role           Role      `gorm:"size:16;not null" json:"role"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
