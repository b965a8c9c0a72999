package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"gearguard/internal/entities"
)

type CreateEquipmentDTO struct {
	Name                string  `json:"name" validate:"required"`
	SerialNumber        string  `json:"serial_number" validate:"required"`
	Location            string  `json:"location" validate:"required"`
	Department          string  `json:"department" validate:"required"`
	Category            string  `json:"category" validate:"required"`
	EmployeeOwner       *string `json:"employee_owner"`
	PurchaseDate        *string `json:"purchase_date"`
	WarrantyExpiry      *string `json:"warranty_expiry"`
	Notes               *string `json:"notes"`
	AssignedTeamID      *string `json:"assigned_team_id"`
	DefaultTechnicianID *string `json:"default_technician_id"`
}

// EquipmentDTO — запись оборудования, обогащённая командой, техником и
// количеством открытых заявок. Счётчик считается на каждом чтении.
type EquipmentDTO struct {
	ID                  string        `json:"id"`
	Name                string        `json:"name"`
	SerialNumber        string        `json:"serial_number"`
	Location            string        `json:"location"`
	Department          string        `json:"department"`
	Category            string        `json:"category"`
	EmployeeOwner       null.String   `json:"employee_owner"`
	PurchaseDate        null.String   `json:"purchase_date"`
	WarrantyExpiry      null.String   `json:"warranty_expiry"`
	Notes               null.String   `json:"notes"`
	AssignedTeamID      null.String   `json:"assigned_team_id"`
	DefaultTechnicianID null.String   `json:"default_technician_id"`
	IsUsable            bool          `json:"is_usable"`
	CreatedAt           time.Time     `json:"created_at"`
	Team                *ShortTeamDTO `json:"team,omitempty"`
	Technician          *UserDTO      `json:"technician,omitempty"`
	OpenRequestCount    int64         `json:"open_request_count"`
}

func EquipmentDTOFromEntity(e *entities.Equipment) EquipmentDTO {
	return EquipmentDTO{
		ID:                  e.ID,
		Name:                e.Name,
		SerialNumber:        e.SerialNumber,
		Location:            e.Location,
		Department:          e.Department,
		Category:            e.Category,
		EmployeeOwner:       e.EmployeeOwner,
		PurchaseDate:        e.PurchaseDate,
		WarrantyExpiry:      e.WarrantyExpiry,
		Notes:               e.Notes,
		AssignedTeamID:      e.AssignedTeamID,
		DefaultTechnicianID: e.DefaultTechnicianID,
		IsUsable:            e.IsUsable,
		CreatedAt:           e.CreatedAt,
	}
}
