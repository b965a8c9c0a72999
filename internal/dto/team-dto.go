package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"gearguard/internal/entities"
)

// CreateTeamDTO используется и для создания, и для полного обновления:
// обновление команды — это замена документа целиком, включая состав.
type CreateTeamDTO struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	MemberIDs   []string `json:"member_ids"`
}

type TeamDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	MemberIDs   []string    `json:"member_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	Members     []UserDTO   `json:"members,omitempty"`
}

func TeamDTOFromEntity(t *entities.Team) TeamDTO {
	return TeamDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		MemberIDs:   t.MemberIDs,
		CreatedAt:   t.CreatedAt,
	}
}

type ShortTeamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
