package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/dto"
	"gearguard/pkg/constants"
)

type AnalyticsRepositoryInterface interface {
	CountRequestsByStage(ctx context.Context, stage string) (int64, error)
	CountRequestsByTeamID(ctx context.Context, teamID string) (int64, error)
	CountOverdue(ctx context.Context, today string) (int64, error)
	CountEquipments(ctx context.Context) (int64, error)
	CountUnusableEquipments(ctx context.Context) (int64, error)
	CountRequests(ctx context.Context) (int64, error)
	CountRequestsByType(ctx context.Context, requestType string) (int64, error)
	GroupRequestsByCategory(ctx context.Context) ([]dto.CategoryCountDTO, error)
	GroupRequestsByTeamName(ctx context.Context) ([]dto.TeamNameCountDTO, error)
}

type AnalyticsRepository struct {
	storage *pgxpool.Pool
}

func NewAnalyticsRepository(storage *pgxpool.Pool) AnalyticsRepositoryInterface {
	return &AnalyticsRepository{storage: storage}
}

func (r *AnalyticsRepository) countWhere(ctx context.Context, table string, pred interface{}, args ...interface{}) (int64, error) {
	builder := psql.Select("COUNT(*)").From(table)
	if pred != nil {
		builder = builder.Where(pred, args...)
	}

	query, sqlArgs, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.storage.QueryRow(ctx, query, sqlArgs...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AnalyticsRepository) CountRequestsByStage(ctx context.Context, stage string) (int64, error) {
	return r.countWhere(ctx, requestTableRepo, sq.Eq{"stage": stage})
}

func (r *AnalyticsRepository) CountRequestsByTeamID(ctx context.Context, teamID string) (int64, error) {
	return r.countWhere(ctx, requestTableRepo, sq.Eq{"team_id": teamID})
}

// CountOverdue — scheduled_date строго раньше сегодняшней даты (строковое
// сравнение формата YYYY-MM-DD) и этап ещё не закрыт.
func (r *AnalyticsRepository) CountOverdue(ctx context.Context, today string) (int64, error) {
	return r.countWhere(ctx, requestTableRepo, sq.And{
		sq.Lt{"scheduled_date": today},
		sq.NotEq{"scheduled_date": nil},
		sq.NotEq{"stage": constants.ClosedStages},
	})
}

func (r *AnalyticsRepository) CountEquipments(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, equipmentTableRepo, nil)
}

func (r *AnalyticsRepository) CountUnusableEquipments(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, equipmentTableRepo, sq.Eq{"is_usable": false})
}

func (r *AnalyticsRepository) CountRequests(ctx context.Context) (int64, error) {
	return r.countWhere(ctx, requestTableRepo, nil)
}

func (r *AnalyticsRepository) CountRequestsByType(ctx context.Context, requestType string) (int64, error) {
	return r.countWhere(ctx, requestTableRepo, sq.Eq{"request_type": requestType})
}

// Группировка по категории оборудования из снимка на заявке.
// NULL-категория образует собственную корзину.
func (r *AnalyticsRepository) GroupRequestsByCategory(ctx context.Context) ([]dto.CategoryCountDTO, error) {
	query, args, err := psql.Select("equipment_category", "COUNT(*)").
		From(requestTableRepo).
		GroupBy("equipment_category").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]dto.CategoryCountDTO, 0)
	for rows.Next() {
		var item dto.CategoryCountDTO
		if err := rows.Scan(&item.Category, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *AnalyticsRepository) GroupRequestsByTeamName(ctx context.Context) ([]dto.TeamNameCountDTO, error) {
	query, args, err := psql.Select("team_name", "COUNT(*)").
		From(requestTableRepo).
		GroupBy("team_name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]dto.TeamNameCountDTO, 0)
	for rows.Next() {
		var item dto.TeamNameCountDTO
		if err := rows.Scan(&item.Team, &item.Count); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
