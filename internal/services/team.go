package services

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
)

type TeamServiceInterface interface {
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error)
	GetTeams(ctx context.Context) ([]dto.TeamDTO, error)
	FindTeam(ctx context.Context, id string) (*dto.TeamDTO, error)
	UpdateTeam(ctx context.Context, id string, payload dto.CreateTeamDTO) (*dto.TeamDTO, error)
	DeleteTeam(ctx context.Context, id string) error
}

type TeamService struct {
	teamRepo  repositories.TeamRepositoryInterface
	userRepo  repositories.UserRepositoryInterface
	txManager repositories.TxManagerInterface
	logger    *zap.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) TeamServiceInterface {
	return &TeamService{
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateTeam пишет команду и проставляет team_id всем перечисленным
// пользователям одной транзакцией. Существование member_ids не проверяется:
// несуществующие id просто никого не обновят (см. DESIGN.md).
func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*dto.TeamDTO, error) {
	team := &entities.Team{
		ID:          uuid.New().String(),
		Name:        payload.Name,
		Description: null.StringFromPtr(payload.Description),
		MemberIDs:   payload.MemberIDs,
		CreatedAt:   time.Now().UTC(),
	}
	if team.MemberIDs == nil {
		team.MemberIDs = []string{}
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.teamRepo.CreateTeamInTx(ctx, tx, team); err != nil {
			return err
		}
		return s.userRepo.SetTeamForUsersInTx(ctx, tx, team.MemberIDs, team.ID)
	})
	if err != nil {
		return nil, err
	}

	result := dto.TeamDTOFromEntity(team)
	return &result, nil
}

func (s *TeamService) GetTeams(ctx context.Context) ([]dto.TeamDTO, error) {
	teams, err := s.teamRepo.GetTeams(ctx, constants.MaxListLimit)
	if err != nil {
		return nil, err
	}

	// Один пакетный запрос по объединённому множеству id вместо N+1.
	idSet := make(map[string]struct{})
	allIDs := make([]string, 0)
	for _, team := range teams {
		for _, id := range team.MemberIDs {
			if _, seen := idSet[id]; !seen {
				idSet[id] = struct{}{}
				allIDs = append(allIDs, id)
			}
		}
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, allIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]dto.UserDTO, len(users))
	for i := range users {
		byID[users[i].ID] = dto.UserDTOFromEntity(&users[i])
	}

	result := make([]dto.TeamDTO, 0, len(teams))
	for i := range teams {
		item := dto.TeamDTOFromEntity(&teams[i])
		item.Members = membersFor(teams[i].MemberIDs, byID)
		result = append(result, item)
	}
	return result, nil
}

func (s *TeamService) FindTeam(ctx context.Context, id string) (*dto.TeamDTO, error) {
	team, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, team.MemberIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]dto.UserDTO, len(users))
	for i := range users {
		byID[users[i].ID] = dto.UserDTOFromEntity(&users[i])
	}

	result := dto.TeamDTOFromEntity(team)
	result.Members = membersFor(team.MemberIDs, byID)
	return &result, nil
}

// UpdateTeam — полная замена состава, не диф: сначала team_id снимается со
// ВСЕХ прежних участников, затем проставляется всем новым. Последняя запись
// выигрывает.
func (s *TeamService) UpdateTeam(ctx context.Context, id string, payload dto.CreateTeamDTO) (*dto.TeamDTO, error) {
	existing, err := s.teamRepo.FindTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	team := &entities.Team{
		ID:          id,
		Name:        payload.Name,
		Description: null.StringFromPtr(payload.Description),
		MemberIDs:   payload.MemberIDs,
		CreatedAt:   existing.CreatedAt,
	}
	if team.MemberIDs == nil {
		team.MemberIDs = []string{}
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.userRepo.UnsetTeamForUsersInTx(ctx, tx, existing.MemberIDs); err != nil {
			return err
		}
		if err := s.teamRepo.UpdateTeamInTx(ctx, tx, team); err != nil {
			return err
		}
		return s.userRepo.SetTeamForUsersInTx(ctx, tx, team.MemberIDs, team.ID)
	})
	if err != nil {
		return nil, err
	}

	result := dto.TeamDTOFromEntity(team)
	return &result, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id string) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.teamRepo.DeleteTeamInTx(ctx, tx, id); err != nil {
			return err
		}
		// Подчищаем и тех, кто попал в команду мимо update.
		return s.userRepo.UnsetTeamByTeamInTx(ctx, tx, id)
	})
}

func membersFor(memberIDs []string, byID map[string]dto.UserDTO) []dto.UserDTO {
	members := make([]dto.UserDTO, 0, len(memberIDs))
	for _, id := range memberIDs {
		if member, ok := byID[id]; ok {
			members = append(members, member)
		}
	}
	return members
}
