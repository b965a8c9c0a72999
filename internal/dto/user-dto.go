package dto

import (
	"time"

	"github.com/aarondl/null/v8"

	"gearguard/internal/entities"
)

// UserDTO — публичная проекция пользователя. Пароля здесь нет вообще.
type UserDTO struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      string      `json:"role"`
	Avatar    null.String `json:"avatar"`
	TeamID    null.String `json:"team_id"`
	CreatedAt time.Time   `json:"created_at"`
}

func UserDTOFromEntity(u *entities.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Avatar:    u.Avatar,
		TeamID:    u.TeamID,
		CreatedAt: u.CreatedAt,
	}
}

func UserDTOsFromEntities(users []entities.User) []UserDTO {
	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, UserDTOFromEntity(&users[i]))
	}
	return dtos
}
