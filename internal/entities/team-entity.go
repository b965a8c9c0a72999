package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Team владеет списком member_ids; зеркальный team_id на стороне
// пользователей сверяется при каждом обновлении состава.
type Team struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	MemberIDs   []string    `json:"member_ids"`
	CreatedAt   time.Time   `json:"created_at"`
}
