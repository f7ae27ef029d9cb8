package models

import "time"

// Asset lifecycle statuses. The store enforces the same set with a CHECK constraint.
const (
	StatusActive      = "active"
	StatusInactive    = "inactive"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retired"
)

// Statuses lists every valid asset status.
var Statuses = []string{StatusActive, StatusInactive, StatusMaintenance, StatusRetired}

// KnownTypes are the asset types the UI and CLI offer. The type field itself is
// free-form at the API boundary, it only has to be non-empty.
var KnownTypes = []string{"laptop", "desktop", "server", "network", "printer", "phone", "other"}

type Asset struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	SerialNumber   string    `json:"serial_number"`
	Manufacturer   string    `json:"manufacturer"`
	Model          string    `json:"model"`
	Status         string    `json:"status"`
	Location       string    `json:"location"`
	AssignedTo     string    `json:"assigned_to"`
	PurchaseDate   string    `json:"purchase_date"`
	WarrantyExpiry string    `json:"warranty_expiry"`
	IPAddress      string    `json:"ip_address"`
	MACAddress     string    `json:"mac_address"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AssetInput is the request body for creating or updating an asset. Dates are
// plain YYYY-MM-DD strings, matching what the date inputs in the UI submit.
type AssetInput struct {
	Name           string `json:"name" validate:"required"`
	Type           string `json:"type" validate:"required"`
	SerialNumber   string `json:"serial_number"`
	Manufacturer   string `json:"manufacturer"`
	Model          string `json:"model"`
	Status         string `json:"status" validate:"required,oneof=active inactive maintenance retired"`
	Location       string `json:"location"`
	AssignedTo     string `json:"assigned_to"`
	PurchaseDate   string `json:"purchase_date"`
	WarrantyExpiry string `json:"warranty_expiry"`
	IPAddress      string `json:"ip_address"`
	MACAddress     string `json:"mac_address"`
	Notes          string `json:"notes"`
}

// Stats is the status breakdown returned by the stats overview endpoint.
type Stats struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Inactive    int `json:"inactive"`
	Maintenance int `json:"maintenance"`
	Retired     int `json:"retired"`
}
