package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// User — учётная запись. Password наружу не сериализуется никогда.
type User struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      string      `json:"role"`
	Avatar    null.String `json:"avatar"`
	TeamID    null.String `json:"team_id"`
	Password  string      `json:"-"`
	CreatedAt time.Time   `json:"created_at"`
}
