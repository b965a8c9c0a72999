package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/pkg/constants"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
)

func newAuthService(userRepo *fakeUserRepo) AuthServiceInterface {
	jwtSvc := service.NewJWTService("test-secret", time.Hour*24)
	return NewAuthService(userRepo, jwtSvc, zap.NewNop())
}

func TestRegisterIssuesTokenAndProjection(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	res, err := svc.Register(context.Background(), dto.RegisterDTO{
		Email:    "anna@example.com",
		Name:     "Анна",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, "anna@example.com", res.User.Email)
	assert.Equal(t, constants.RoleUser, res.User.Role, "роль по умолчанию — user")
	assert.Contains(t, res.User.Avatar.String, "api.dicebear.com")

	// в JSON-проекции пароля быть не должно ни под каким ключом
	raw, err := json.Marshal(res.User)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "secret123")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	_, err := svc.Register(context.Background(), dto.RegisterDTO{
		Email: "dup@example.com", Name: "Первый", Password: "secret123",
	})
	require.NoError(t, err)

	// повтор с другим паролем всё равно отклоняется
	_, err = svc.Register(context.Background(), dto.RegisterDTO{
		Email: "dup@example.com", Name: "Второй", Password: "another456",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	_, err := svc.Register(context.Background(), dto.RegisterDTO{
		Email: "tech@example.com", Name: "Техник", Password: "secret123", Role: constants.RoleTechnician,
	})
	require.NoError(t, err)

	t.Run("успех", func(t *testing.T) {
		res, err := svc.Login(context.Background(), dto.LoginDTO{Email: "tech@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, constants.RoleTechnician, res.User.Role)
		assert.NotEmpty(t, res.AccessToken)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "tech@example.com", Password: "wrong"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("неизвестный email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), dto.LoginDTO{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestGetCurrentUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	res, err := svc.Register(context.Background(), dto.RegisterDTO{
		Email: "me@example.com", Name: "Сам", Password: "secret123",
	})
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, res.User.ID)
	me, err := svc.GetCurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", me.Email)

	t.Run("нет субъекта в контексте", func(t *testing.T) {
		_, err := svc.GetCurrentUser(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("субъект удалён", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, "gone")
		_, err := svc.GetCurrentUser(ctx)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
