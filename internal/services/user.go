package services

import (
	"context"

	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]dto.UserDTO, error)
	GetTechnicians(ctx context.Context) ([]dto.UserDTO, error)
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.userRepo.GetUsers(ctx, constants.MaxListLimit)
	if err != nil {
		return nil, err
	}
	return dto.UserDTOsFromEntities(users), nil
}

// GetTechnicians — исполнители заявок: техники и менеджеры.
func (s *UserService) GetTechnicians(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.userRepo.GetTechnicians(ctx, constants.MaxListLimit)
	if err != nil {
		return nil, err
	}
	return dto.UserDTOsFromEntities(users), nil
}
