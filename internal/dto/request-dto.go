package dto

type CreateRequestDTO struct {
	EquipmentID   string  `json:"equipment_id" validate:"required"`
	Subject       string  `json:"subject" validate:"required"`
	Description   *string `json:"description"`
	RequestType   string  `json:"request_type" validate:"omitempty,oneof=corrective preventive"`
	ScheduledDate *string `json:"scheduled_date"`
	Priority      string  `json:"priority" validate:"omitempty"`
}

// UpdateRequestDTO — частичное обновление: nil означает "не трогать".
// JSON null приравнивается к отсутствию поля.
type UpdateRequestDTO struct {
	Subject              *string  `json:"subject"`
	Description          *string  `json:"description"`
	Stage                *string  `json:"stage" validate:"omitempty,oneof=new in_progress repaired scrap"`
	AssignedTechnicianID *string  `json:"assigned_technician_id"`
	HoursSpent           *float64 `json:"hours_spent"`
	ScheduledDate        *string  `json:"scheduled_date"`
	Priority             *string  `json:"priority"`
}

// RequestFilter — необязательные точные фильтры списка заявок.
type RequestFilter struct {
	Stage       string
	RequestType string
}
