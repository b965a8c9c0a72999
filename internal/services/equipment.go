package services

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

type EquipmentServiceInterface interface {
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	GetEquipments(ctx context.Context) ([]dto.EquipmentDTO, error)
	FindEquipment(ctx context.Context, id string) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	DeleteEquipment(ctx context.Context, id string) error
	GetEquipmentRequests(ctx context.Context, id string) ([]entities.Request, error)
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	teamRepo      repositories.TeamRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	requestRepo   repositories.RequestRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		teamRepo:      teamRepo,
		userRepo:      userRepo,
		requestRepo:   requestRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	equipment := &entities.Equipment{
		ID:                  uuid.New().String(),
		Name:                payload.Name,
		SerialNumber:        payload.SerialNumber,
		Location:            payload.Location,
		Department:          payload.Department,
		Category:            payload.Category,
		EmployeeOwner:       null.StringFromPtr(payload.EmployeeOwner),
		PurchaseDate:        null.StringFromPtr(payload.PurchaseDate),
		WarrantyExpiry:      null.StringFromPtr(payload.WarrantyExpiry),
		Notes:               null.StringFromPtr(payload.Notes),
		AssignedTeamID:      null.StringFromPtr(payload.AssignedTeamID),
		DefaultTechnicianID: null.StringFromPtr(payload.DefaultTechnicianID),
		IsUsable:            true,
		CreatedAt:           time.Now().UTC(),
	}

	if err := s.equipmentRepo.CreateEquipment(ctx, equipment); err != nil {
		return nil, err
	}

	result := dto.EquipmentDTOFromEntity(equipment)
	return &result, nil
}

func (s *EquipmentService) GetEquipments(ctx context.Context) ([]dto.EquipmentDTO, error) {
	list, err := s.equipmentRepo.GetEquipments(ctx, constants.MaxListLimit)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EquipmentDTO, 0, len(list))
	for i := range list {
		item, err := s.enrich(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	return result, nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id string) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, equipment)
}

// UpdateEquipment не трогает снимки на заявках: переименованное
// оборудование оставляет на старых заявках прежние name/category.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := s.equipmentRepo.UpdateEquipment(ctx, id, payload); err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, equipment)
}

// DeleteEquipment не каскадирует на заявки: осиротевшие equipment_id
// остаются видимыми в истории обслуживания.
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	return s.equipmentRepo.DeleteEquipment(ctx, id)
}

func (s *EquipmentService) GetEquipmentRequests(ctx context.Context, id string) ([]entities.Request, error) {
	return s.requestRepo.GetRequestsByEquipment(ctx, id, constants.MaxListLimit)
}

// enrich подтягивает команду, техника и счётчик открытых заявок.
// Счётчик пересчитывается на каждом чтении, кэша нет.
func (s *EquipmentService) enrich(ctx context.Context, equipment *entities.Equipment) (*dto.EquipmentDTO, error) {
	item := dto.EquipmentDTOFromEntity(equipment)

	if equipment.AssignedTeamID.Valid {
		team, err := s.teamRepo.FindTeam(ctx, equipment.AssignedTeamID.String)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if team != nil {
			item.Team = &dto.ShortTeamDTO{ID: team.ID, Name: team.Name}
		}
	}

	if equipment.DefaultTechnicianID.Valid {
		technician, err := s.userRepo.FindByID(ctx, equipment.DefaultTechnicianID.String)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if technician != nil {
			projection := dto.UserDTOFromEntity(technician)
			item.Technician = &projection
		}
	}

	count, err := s.requestRepo.CountOpenByEquipment(ctx, equipment.ID)
	if err != nil {
		return nil, err
	}
	item.OpenRequestCount = count

	return &item, nil
}
