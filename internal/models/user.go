package models

import "time"

// RoleAdmin may delete assets; RoleTechnician may create and update but not delete.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
