package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Equipment. is_usable сбрасывается в false только заявкой, дошедшей до
// этапа scrap; обратного автоматического пути нет.
type Equipment struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	SerialNumber        string      `json:"serial_number"`
	Location            string      `json:"location"`
	Department          string      `json:"department"`
	Category            string      `json:"category"`
	EmployeeOwner       null.String `json:"employee_owner"`
	PurchaseDate        null.String `json:"purchase_date"`
	WarrantyExpiry      null.String `json:"warranty_expiry"`
	Notes               null.String `json:"notes"`
	AssignedTeamID      null.String `json:"assigned_team_id"`
	DefaultTechnicianID null.String `json:"default_technician_id"`
	IsUsable            bool        `json:"is_usable"`
	CreatedAt           time.Time   `json:"created_at"`
}
