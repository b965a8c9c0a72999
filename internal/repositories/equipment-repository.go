package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
)

const equipmentTableRepo = "equipments"
const equipmentSelectFieldsRepo = "id, name, serial_number, location, department, category, " +
	"employee_owner, purchase_date, warranty_expiry, notes, " +
	"assigned_team_id, default_technician_id, is_usable, created_at"

type EquipmentRepositoryInterface interface {
	CreateEquipment(ctx context.Context, equipment *entities.Equipment) error
	FindEquipment(ctx context.Context, id string) (*entities.Equipment, error)
	GetEquipments(ctx context.Context, limit uint64) ([]entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.CreateEquipmentDTO) error
	DeleteEquipment(ctx context.Context, id string) error
	MarkUnusableInTx(ctx context.Context, tx pgx.Tx, id string) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.SerialNumber, &e.Location, &e.Department, &e.Category,
		&e.EmployeeOwner, &e.PurchaseDate, &e.WarrantyExpiry, &e.Notes,
		&e.AssignedTeamID, &e.DefaultTechnicianID, &e.IsUsable, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, equipment *entities.Equipment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, serial_number, location, department, category,
			employee_owner, purchase_date, warranty_expiry, notes,
			assigned_team_id, default_technician_id, is_usable, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, equipmentTableRepo)

	_, err := r.storage.Exec(ctx, query,
		equipment.ID, equipment.Name, equipment.SerialNumber, equipment.Location,
		equipment.Department, equipment.Category,
		equipment.EmployeeOwner, equipment.PurchaseDate, equipment.WarrantyExpiry, equipment.Notes,
		equipment.AssignedTeamID, equipment.DefaultTechnicianID, equipment.IsUsable, equipment.CreatedAt,
	)
	return err
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, equipmentSelectFieldsRepo, equipmentTableRepo)
	return scanEquipment(r.storage.QueryRow(ctx, query, id))
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, limit uint64) ([]entities.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at LIMIT $1`, equipmentSelectFieldsRepo, equipmentTableRepo)
	rows, err := r.storage.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]entities.Equipment, 0)
	for rows.Next() {
		var e entities.Equipment
		if err := rows.Scan(
			&e.ID, &e.Name, &e.SerialNumber, &e.Location, &e.Department, &e.Category,
			&e.EmployeeOwner, &e.PurchaseDate, &e.WarrantyExpiry, &e.Notes,
			&e.AssignedTeamID, &e.DefaultTechnicianID, &e.IsUsable, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// UpdateEquipment — полная перезапись.
// is_usable и created_at обновлением НЕ трогаются: пригодность меняет
// только заявка со stage=scrap.
func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id string, payload dto.CreateEquipmentDTO) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $2, serial_number = $3, location = $4, department = $5,
			category = $6, employee_owner = $7, purchase_date = $8,
			warranty_expiry = $9, notes = $10,
			assigned_team_id = $11, default_technician_id = $12
		WHERE id = $1
	`, equipmentTableRepo)

	return execAffectingRow(ctx, r.storage, query,
		id, payload.Name, payload.SerialNumber, payload.Location, payload.Department,
		payload.Category, payload.EmployeeOwner, payload.PurchaseDate,
		payload.WarrantyExpiry, payload.Notes,
		payload.AssignedTeamID, payload.DefaultTechnicianID,
	)
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id string) error {
	return execAffectingRow(ctx, r.storage, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, equipmentTableRepo), id)
}

// MarkUnusableInTx выполняется в одной транзакции с записью заявки-списания.
func (r *EquipmentRepository) MarkUnusableInTx(ctx context.Context, tx pgx.Tx, id string) error {
	_, err := tx.Exec(ctx, fmt.Sprintf(`UPDATE %s SET is_usable = FALSE WHERE id = $1`, equipmentTableRepo), id)
	return err
}
