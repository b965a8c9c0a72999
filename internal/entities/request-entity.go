package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Request — заявка на обслуживание.
//
// Поля-снимки (equipment_name, team_name, технические поля техника)
// копируются с источника в момент создания заявки и НЕ обновляются при
// последующих переименованиях источника. Единственное исключение —
// переназначение техника: тогда имя и аватар снимаются заново.
type Request struct {
	ID                       string      `json:"id"`
	Subject                  string      `json:"subject"`
	Description              null.String `json:"description"`
	RequestType              string      `json:"request_type"`
	EquipmentID              string      `json:"equipment_id"`
	EquipmentName            null.String `json:"equipment_name"`
	EquipmentCategory        null.String `json:"equipment_category"`
	TeamID                   null.String `json:"team_id"`
	TeamName                 null.String `json:"team_name"`
	AssignedTechnicianID     null.String `json:"assigned_technician_id"`
	AssignedTechnicianName   null.String `json:"assigned_technician_name"`
	AssignedTechnicianAvatar null.String `json:"assigned_technician_avatar"`
	Stage                    string      `json:"stage"`
	HoursSpent               float64     `json:"hours_spent"`
	ScheduledDate            null.String `json:"scheduled_date"`
	Priority                 string      `json:"priority"`
	CreatedAt                time.Time   `json:"created_at"`
	UpdatedAt                time.Time   `json:"updated_at"`
	CreatedBy                null.String `json:"created_by"`
}
