package dto

import "github.com/aarondl/null/v8"

type TeamCountDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type RequestTypeCountsDTO struct {
	Corrective int64 `json:"corrective"`
	Preventive int64 `json:"preventive"`
}

// DashboardDTO — моментальный снимок; ничего не кэшируется,
// каждый вызов пересчитывает значения заново.
type DashboardDTO struct {
	StageCounts       map[string]int64     `json:"stage_counts"`
	TeamCounts        []TeamCountDTO       `json:"team_counts"`
	OverdueCount      int64                `json:"overdue_count"`
	TotalEquipment    int64                `json:"total_equipment"`
	UnusableEquipment int64                `json:"unusable_equipment"`
	TotalRequests     int64                `json:"total_requests"`
	RequestTypes      RequestTypeCountsDTO `json:"request_types"`
}

// Группировки идут по ИМЕНИ (не id), поэтому команды с одинаковым или
// пустым именем складываются в одну корзину — поведение сохранено.
type CategoryCountDTO struct {
	Category null.String `json:"category"`
	Count    int64       `json:"count"`
}

type TeamNameCountDTO struct {
	Team  null.String `json:"team"`
	Count int64       `json:"count"`
}
