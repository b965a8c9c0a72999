package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

const teamTableRepo = "teams"
const teamSelectFieldsRepo = "id, name, description, member_ids, created_at"

type TeamRepositoryInterface interface {
	CreateTeamInTx(ctx context.Context, tx pgx.Tx, team *entities.Team) error
	FindTeam(ctx context.Context, id string) (*entities.Team, error)
	GetTeams(ctx context.Context, limit uint64) ([]entities.Team, error)
	UpdateTeamInTx(ctx context.Context, tx pgx.Tx, team *entities.Team) error
	DeleteTeamInTx(ctx context.Context, tx pgx.Tx, id string) error
}

type TeamRepository struct {
	storage *pgxpool.Pool
}

func NewTeamRepository(storage *pgxpool.Pool) TeamRepositoryInterface {
	return &TeamRepository{storage: storage}
}

func scanTeam(row pgx.Row) (*entities.Team, error) {
	var team entities.Team
	err := row.Scan(&team.ID, &team.Name, &team.Description, &team.MemberIDs, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if team.MemberIDs == nil {
		team.MemberIDs = []string{}
	}
	return &team, nil
}

func (r *TeamRepository) CreateTeamInTx(ctx context.Context, tx pgx.Tx, team *entities.Team) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, description, member_ids, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, teamTableRepo)

	_, err := tx.Exec(ctx, query, team.ID, team.Name, team.Description, team.MemberIDs, team.CreatedAt)
	return err
}

func (r *TeamRepository) FindTeam(ctx context.Context, id string) (*entities.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, teamSelectFieldsRepo, teamTableRepo)
	return scanTeam(r.storage.QueryRow(ctx, query, id))
}

func (r *TeamRepository) GetTeams(ctx context.Context, limit uint64) ([]entities.Team, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at LIMIT $1`, teamSelectFieldsRepo, teamTableRepo)
	rows, err := r.storage.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]entities.Team, 0)
	for rows.Next() {
		var team entities.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Description, &team.MemberIDs, &team.CreatedAt); err != nil {
			return nil, err
		}
		if team.MemberIDs == nil {
			team.MemberIDs = []string{}
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

// UpdateTeamInTx перезаписывает документ команды целиком (включая состав).
func (r *TeamRepository) UpdateTeamInTx(ctx context.Context, tx pgx.Tx, team *entities.Team) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $2, description = $3, member_ids = $4
		WHERE id = $1
	`, teamTableRepo)

	return execAffectingRow(ctx, tx, query, team.ID, team.Name, team.Description, team.MemberIDs)
}

func (r *TeamRepository) DeleteTeamInTx(ctx context.Context, tx pgx.Tx, id string) error {
	return execAffectingRow(ctx, tx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, teamTableRepo), id)
}
