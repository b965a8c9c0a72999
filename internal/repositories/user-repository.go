package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

const userTableRepo = "users"
const userSelectFieldsRepo = "id, email, name, role, avatar, team_id, password, created_at"

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	GetUsers(ctx context.Context, limit uint64) ([]entities.User, error)
	GetTechnicians(ctx context.Context, limit uint64) ([]entities.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) ([]entities.User, error)
	SetTeamForUsersInTx(ctx context.Context, tx pgx.Tx, ids []string, teamID string) error
	UnsetTeamForUsersInTx(ctx context.Context, tx pgx.Tx, ids []string) error
	UnsetTeamByTeamInTx(ctx context.Context, tx pgx.Tx, teamID string) error
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Name, &user.Role,
		&user.Avatar, &user.TeamID, &user.Password, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func scanUsers(rows pgx.Rows) ([]entities.User, error) {
	defer rows.Close()
	users := make([]entities.User, 0)
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(
			&user.ID, &user.Email, &user.Name, &user.Role,
			&user.Avatar, &user.TeamID, &user.Password, &user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, email, name, role, avatar, team_id, password, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, userTableRepo)

	_, err := r.storage.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.Role,
		user.Avatar, user.TeamID, user.Password, user.CreatedAt,
	)
	if err != nil {
		// Уникальность email держит БД, а не код.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, userSelectFieldsRepo, userTableRepo)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1`, userSelectFieldsRepo, userTableRepo)
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) GetUsers(ctx context.Context, limit uint64) ([]entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at LIMIT $1`, userSelectFieldsRepo, userTableRepo)
	rows, err := r.storage.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func (r *UserRepository) GetTechnicians(ctx context.Context, limit uint64) ([]entities.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE role = ANY($1)
		ORDER BY created_at
		LIMIT $2
	`, userSelectFieldsRepo, userTableRepo)

	rows, err := r.storage.Query(ctx, query, []string{"technician", "manager"}, limit)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []string) ([]entities.User, error) {
	if len(ids) == 0 {
		return []entities.User{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1)`, userSelectFieldsRepo, userTableRepo)
	rows, err := r.storage.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func (r *UserRepository) SetTeamForUsersInTx(ctx context.Context, tx pgx.Tx, ids []string, teamID string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE %s SET team_id = $1 WHERE id = ANY($2)`, userTableRepo), teamID, ids)
	return err
}

func (r *UserRepository) UnsetTeamForUsersInTx(ctx context.Context, tx pgx.Tx, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE %s SET team_id = NULL WHERE id = ANY($1)`, userTableRepo), ids)
	return err
}

// UnsetTeamByTeamInTx подчищает team_id у всех, кто ещё ссылается на команду.
// Нужен при удалении: не предполагаем, что состав всегда менялся через update.
func (r *UserRepository) UnsetTeamByTeamInTx(ctx context.Context, tx pgx.Tx, teamID string) error {
	_, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE %s SET team_id = NULL WHERE team_id = $1`, userTableRepo), teamID)
	return err
}
