package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenResponseDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenResponseDTO, error)
	GetCurrentUser(ctx context.Context) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepo repositories.UserRepositoryInterface
	jwtSvc   service.JWTService
	logger   *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenResponseDTO, error) {
	if _, err := s.userRepo.FindByEmail(ctx, payload.Email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	role := payload.Role
	if role == "" {
		role = constants.RoleUser
	}

	passwordHash, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:        uuid.New().String(),
		Email:     payload.Email,
		Name:      payload.Name,
		Role:      role,
		Avatar:    null.StringFrom(fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", url.QueryEscape(payload.Name))),
		Password:  passwordHash,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("зарегистрирован новый пользователь", zap.String("userID", user.ID), zap.String("role", user.Role))
	return s.tokenResponse(user)
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// bcrypt сравнивает за константное время.
	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.tokenResponse(user)
}

// GetCurrentUser возвращает проекцию субъекта токена из контекста запроса.
func (s *AuthService) GetCurrentUser(ctx context.Context) (*dto.UserDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	projection := dto.UserDTOFromEntity(user)
	return &projection, nil
}

func (s *AuthService) tokenResponse(user *entities.User) (*dto.TokenResponseDTO, error) {
	token, err := s.jwtSvc.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponseDTO{
		AccessToken: token,
		TokenType:   "bearer",
		User:        dto.UserDTOFromEntity(user),
	}, nil
}
