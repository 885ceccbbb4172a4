package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

const transferColumns = `id, from_warehouse_id, to_warehouse_id, material_id,
		planned_qty, shipped_qty, received_qty, damaged_qty, status,
		operator_id, driver_id, storekeeper_from_id, storekeeper_to_id,
		seal_number, deadline_at, created_at, updated_at`

// TransferRepo implementación del puerto TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de persistencia para traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste un nuevo traslado (nace en draft con cantidades reales en cero).
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, from_warehouse_id, to_warehouse_id, material_id,
			planned_qty, shipped_qty, received_qty, damaged_qty, status,
			operator_id, driver_id, storekeeper_from_id, storekeeper_to_id,
			seal_number, deadline_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.FromWarehouseID, t.ToWarehouseID, t.MaterialID,
		t.PlannedQty, t.ShippedQty, t.ReceivedQty, t.DamagedQty, t.Status,
		t.OperatorID, t.DriverID, t.StorekeeperFromID, t.StorekeeperToID,
		t.SealNumber, t.DeadlineAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("bodega o material referenciado no existe: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un traslado bloqueando la fila (SELECT FOR UPDATE).
// Dos operaciones concurrentes sobre el mismo traslado se serializan aquí.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza los campos mutables del traslado.
func (r *TransferRepo) Update(t *entity.Transfer) error {
	query := `
		UPDATE transfers SET shipped_qty = $2, received_qty = $3, damaged_qty = $4,
			status = $5, driver_id = $6, storekeeper_from_id = $7, storekeeper_to_id = $8,
			seal_number = $9, deadline_at = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.ShippedQty, t.ReceivedQty, t.DamagedQty,
		t.Status, t.DriverID, t.StorekeeperFromID, t.StorekeeperToID,
		t.SealNumber, t.DeadlineAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// List lista traslados con paginación, más recientes primero.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := scanTransfer(rows, &t); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		transfers = append(transfers, &t)
	}
	return transfers, rows.Err()
}

func (r *TransferRepo) scanOne(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	if err := scanTransfer(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

func scanTransfer(row pgx.Row, t *entity.Transfer) error {
	return row.Scan(
		&t.ID, &t.FromWarehouseID, &t.ToWarehouseID, &t.MaterialID,
		&t.PlannedQty, &t.ShippedQty, &t.ReceivedQty, &t.DamagedQty, &t.Status,
		&t.OperatorID, &t.DriverID, &t.StorekeeperFromID, &t.StorekeeperToID,
		&t.SealNumber, &t.DeadlineAt, &t.CreatedAt, &t.UpdatedAt,
	)
}
