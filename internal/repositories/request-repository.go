package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
)

const requestTableRepo = "requests"
const requestSelectFieldsRepo = "id, subject, description, request_type, equipment_id, " +
	"equipment_name, equipment_category, team_id, team_name, " +
	"assigned_technician_id, assigned_technician_name, assigned_technician_avatar, " +
	"stage, hours_spent, scheduled_date, priority, created_at, updated_at, created_by"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type RequestRepositoryInterface interface {
	CreateRequest(ctx context.Context, request *entities.Request) error
	FindRequest(ctx context.Context, id string) (*entities.Request, error)
	GetRequests(ctx context.Context, filter dto.RequestFilter, limit uint64) ([]entities.Request, error)
	GetRequestsByEquipment(ctx context.Context, equipmentID string, limit uint64) ([]entities.Request, error)
	UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request *entities.Request) error
	DeleteRequest(ctx context.Context, id string) error
	CountOpenByEquipment(ctx context.Context, equipmentID string) (int64, error)
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func scanRequest(row pgx.Row) (*entities.Request, error) {
	var rq entities.Request
	err := row.Scan(
		&rq.ID, &rq.Subject, &rq.Description, &rq.RequestType, &rq.EquipmentID,
		&rq.EquipmentName, &rq.EquipmentCategory, &rq.TeamID, &rq.TeamName,
		&rq.AssignedTechnicianID, &rq.AssignedTechnicianName, &rq.AssignedTechnicianAvatar,
		&rq.Stage, &rq.HoursSpent, &rq.ScheduledDate, &rq.Priority,
		&rq.CreatedAt, &rq.UpdatedAt, &rq.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &rq, nil
}

func scanRequests(rows pgx.Rows) ([]entities.Request, error) {
	defer rows.Close()
	list := make([]entities.Request, 0)
	for rows.Next() {
		var rq entities.Request
		if err := rows.Scan(
			&rq.ID, &rq.Subject, &rq.Description, &rq.RequestType, &rq.EquipmentID,
			&rq.EquipmentName, &rq.EquipmentCategory, &rq.TeamID, &rq.TeamName,
			&rq.AssignedTechnicianID, &rq.AssignedTechnicianName, &rq.AssignedTechnicianAvatar,
			&rq.Stage, &rq.HoursSpent, &rq.ScheduledDate, &rq.Priority,
			&rq.CreatedAt, &rq.UpdatedAt, &rq.CreatedBy,
		); err != nil {
			return nil, err
		}
		list = append(list, rq)
	}
	return list, rows.Err()
}

func (r *RequestRepository) CreateRequest(ctx context.Context, request *entities.Request) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, subject, description, request_type, equipment_id,
			equipment_name, equipment_category, team_id, team_name,
			assigned_technician_id, assigned_technician_name, assigned_technician_avatar,
			stage, hours_spent, scheduled_date, priority, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`, requestTableRepo)

	_, err := r.storage.Exec(ctx, query,
		request.ID, request.Subject, request.Description, request.RequestType, request.EquipmentID,
		request.EquipmentName, request.EquipmentCategory, request.TeamID, request.TeamName,
		request.AssignedTechnicianID, request.AssignedTechnicianName, request.AssignedTechnicianAvatar,
		request.Stage, request.HoursSpent, request.ScheduledDate, request.Priority,
		request.CreatedAt, request.UpdatedAt, request.CreatedBy,
	)
	return err
}

func (r *RequestRepository) FindRequest(ctx context.Context, id string) (*entities.Request, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, requestSelectFieldsRepo, requestTableRepo)
	return scanRequest(r.storage.QueryRow(ctx, query, id))
}

// GetRequests — точные фильтры по этапу и типу, оба необязательны.
func (r *RequestRepository) GetRequests(ctx context.Context, filter dto.RequestFilter, limit uint64) ([]entities.Request, error) {
	builder := psql.Select(requestSelectFieldsRepo).
		From(requestTableRepo).
		OrderBy("created_at").
		Limit(limit)

	if filter.Stage != "" {
		builder = builder.Where(sq.Eq{"stage": filter.Stage})
	}
	if filter.RequestType != "" {
		builder = builder.Where(sq.Eq{"request_type": filter.RequestType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

func (r *RequestRepository) GetRequestsByEquipment(ctx context.Context, equipmentID string, limit uint64) ([]entities.Request, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE equipment_id = $1 ORDER BY created_at LIMIT $2
	`, requestSelectFieldsRepo, requestTableRepo)

	rows, err := r.storage.Query(ctx, query, equipmentID, limit)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

// UpdateRequestInTx перезаписывает строку заявкой, уже склеенной в сервисе.
func (r *RequestRepository) UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request *entities.Request) error {
	query := fmt.Sprintf(`
		UPDATE %s SET subject = $2, description = $3, stage = $4,
			assigned_technician_id = $5, assigned_technician_name = $6,
			assigned_technician_avatar = $7, hours_spent = $8,
			scheduled_date = $9, priority = $10, updated_at = $11
		WHERE id = $1
	`, requestTableRepo)

	return execAffectingRow(ctx, tx, query,
		request.ID, request.Subject, request.Description, request.Stage,
		request.AssignedTechnicianID, request.AssignedTechnicianName,
		request.AssignedTechnicianAvatar, request.HoursSpent,
		request.ScheduledDate, request.Priority, request.UpdatedAt,
	)
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id string) error {
	return execAffectingRow(ctx, r.storage, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, requestTableRepo), id)
}

// CountOpenByEquipment — открытые заявки оборудования (этап не repaired/scrap).
func (r *RequestRepository) CountOpenByEquipment(ctx context.Context, equipmentID string) (int64, error) {
	query, args, err := psql.Select("COUNT(*)").
		From(requestTableRepo).
		Where(sq.Eq{"equipment_id": equipmentID}).
		Where(sq.NotEq{"stage": constants.ClosedStages}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
