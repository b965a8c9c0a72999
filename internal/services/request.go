package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

type RequestServiceInterface interface {
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*entities.Request, error)
	GetRequests(ctx context.Context, filter dto.RequestFilter) ([]entities.Request, error)
	GetCalendar(ctx context.Context) ([]entities.Request, error)
	FindRequest(ctx context.Context, id string) (*entities.Request, error)
	UpdateRequest(ctx context.Context, id string, payload dto.UpdateRequestDTO) (*entities.Request, error)
	PatchStage(ctx context.Context, id string, stage string) (*entities.Request, error)
	DeleteRequest(ctx context.Context, id string) error
}

type RequestService struct {
	requestRepo   repositories.RequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	teamRepo      repositories.TeamRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewRequestService(
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		teamRepo:      teamRepo,
		userRepo:      userRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// CreateRequest снимает с оборудования name/category и, если у него есть
// команда или дежурный техник, их имена — снимки живут на заявке и дальше
// от источника не зависят.
func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*entities.Request, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, payload.EquipmentID)
	if err != nil {
		return nil, err
	}

	request := &entities.Request{
		ID:                uuid.New().String(),
		Subject:           payload.Subject,
		Description:       null.StringFromPtr(payload.Description),
		RequestType:       payload.RequestType,
		EquipmentID:       equipment.ID,
		EquipmentName:     null.StringFrom(equipment.Name),
		EquipmentCategory: null.StringFrom(equipment.Category),
		Stage:             constants.StageNew,
		HoursSpent:        0,
		ScheduledDate:     null.StringFromPtr(payload.ScheduledDate),
		Priority:          payload.Priority,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
	if request.RequestType == "" {
		request.RequestType = constants.RequestTypeCorrective
	}
	if request.Priority == "" {
		request.Priority = "medium"
	}
	if creator, err := utils.GetUserIDFromCtx(ctx); err == nil {
		request.CreatedBy = null.StringFrom(creator)
	}

	if equipment.AssignedTeamID.Valid {
		request.TeamID = equipment.AssignedTeamID
		team, err := s.teamRepo.FindTeam(ctx, equipment.AssignedTeamID.String)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if team != nil {
			request.TeamName = null.StringFrom(team.Name)
		}
	}

	if equipment.DefaultTechnicianID.Valid {
		request.AssignedTechnicianID = equipment.DefaultTechnicianID
		technician, err := s.userRepo.FindByID(ctx, equipment.DefaultTechnicianID.String)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if technician != nil {
			request.AssignedTechnicianName = null.StringFrom(technician.Name)
			request.AssignedTechnicianAvatar = technician.Avatar
		}
	}

	if err := s.requestRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) GetRequests(ctx context.Context, filter dto.RequestFilter) ([]entities.Request, error) {
	return s.requestRepo.GetRequests(ctx, filter, constants.MaxListLimit)
}

// GetCalendar — плановые заявки для календаря обслуживания.
func (s *RequestService) GetCalendar(ctx context.Context) ([]entities.Request, error) {
	return s.requestRepo.GetRequests(ctx, dto.RequestFilter{RequestType: constants.RequestTypePreventive}, constants.MaxListLimit)
}

func (s *RequestService) FindRequest(ctx context.Context, id string) (*entities.Request, error) {
	return s.requestRepo.FindRequest(ctx, id)
}

// UpdateRequest — patch-семантика: перезаписываются только явно переданные
// поля. Этап — свободная метка, переходы не ограничиваются: любой этап можно
// выставить из любого, включая движение назад.
//
// Побочные эффекты:
//   - запрошенный этап scrap безусловно гасит is_usable у оборудования
//     (другие открытые заявки не проверяются, обратного сброса нет);
//   - переданный assigned_technician_id заново снимает имя и аватар техника —
//     единственная точка, где снимок освежается.
func (s *RequestService) UpdateRequest(ctx context.Context, id string, payload dto.UpdateRequestDTO) (*entities.Request, error) {
	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Subject != nil {
		request.Subject = *payload.Subject
	}
	if payload.Description != nil {
		request.Description = null.StringFrom(*payload.Description)
	}
	if payload.Stage != nil {
		request.Stage = *payload.Stage
	}
	if payload.HoursSpent != nil {
		request.HoursSpent = *payload.HoursSpent
	}
	if payload.ScheduledDate != nil {
		request.ScheduledDate = null.StringFrom(*payload.ScheduledDate)
	}
	if payload.Priority != nil {
		request.Priority = *payload.Priority
	}
	if payload.AssignedTechnicianID != nil {
		request.AssignedTechnicianID = null.StringFrom(*payload.AssignedTechnicianID)
		technician, err := s.userRepo.FindByID(ctx, *payload.AssignedTechnicianID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if technician != nil {
			request.AssignedTechnicianName = null.StringFrom(technician.Name)
			request.AssignedTechnicianAvatar = technician.Avatar
		}
	}
	request.UpdatedAt = time.Now().UTC()

	scrapRequested := payload.Stage != nil && *payload.Stage == constants.StageScrap
	if err := s.writeRequest(ctx, request, scrapRequested); err != nil {
		return nil, err
	}
	return request, nil
}

// PatchStage всегда пишет этап, даже если он совпадает с текущим.
func (s *RequestService) PatchStage(ctx context.Context, id string, stage string) (*entities.Request, error) {
	if !constants.IsValidStage(stage) {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "недопустимый этап заявки", apperrors.ErrBadRequest,
			map[string]interface{}{"stage": stage})
	}

	request, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	request.Stage = stage
	request.UpdatedAt = time.Now().UTC()

	if err := s.writeRequest(ctx, request, stage == constants.StageScrap); err != nil {
		return nil, err
	}
	return request, nil
}

func (s *RequestService) DeleteRequest(ctx context.Context, id string) error {
	return s.requestRepo.DeleteRequest(ctx, id)
}

// writeRequest сохраняет заявку и, при списании, гасит оборудование в той же
// транзакции — частично применённых состояний снаружи не видно.
func (s *RequestService) writeRequest(ctx context.Context, request *entities.Request, scrap bool) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.requestRepo.UpdateRequestInTx(ctx, tx, request); err != nil {
			return err
		}
		if scrap {
			s.logger.Info("заявка списана, оборудование помечено непригодным",
				zap.String("requestID", request.ID),
				zap.String("equipmentID", request.EquipmentID),
			)
			return s.equipmentRepo.MarkUnusableInTx(ctx, tx, request.EquipmentID)
		}
		return nil
	})
}
