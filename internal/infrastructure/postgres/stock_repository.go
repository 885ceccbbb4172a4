package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación del puerto StockBalanceRepository sobre PostgreSQL
// (usable con pool o tx). PK compuesta (warehouse_id, material_id).
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene la existencia de una pareja bodega+material sin bloquear. Si la
// fila no existe devuelve un balance en cero (la fila se materializa recién en
// el primer acceso con bloqueo).
func (r *StockBalanceRepo) Get(warehouseID, materialID string) (*entity.StockBalance, error) {
	query := `
		SELECT warehouse_id, material_id, on_hand_qty, updated_at
		FROM stock_balances WHERE warehouse_id = $1 AND material_id = $2`
	var s entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, warehouseID, materialID).Scan(
		&s.WarehouseID, &s.MaterialID, &s.OnHandQty, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{
				WarehouseID: warehouseID,
				MaterialID:  materialID,
				OnHandQty:   decimal.Zero,
				UpdatedAt:   time.Now(),
			}, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &s, nil
}

// GetForUpdate materializa la fila si aún no existe y luego la bloquea
// (SELECT FOR UPDATE). Un SELECT FOR UPDATE sobre una fila inexistente no
// bloquea nada: dos transacciones concurrentes sobre una pareja nueva leerían
// ambas saldo cero y la segunda pisaría el crédito de la primera. El INSERT
// previo garantiza que siempre hay fila que bloquear, así el segundo acceso
// espera el commit del primero y lee el saldo ya acreditado.
func (r *StockBalanceRepo) GetForUpdate(warehouseID, materialID string) (*entity.StockBalance, error) {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock_balances (warehouse_id, material_id, on_hand_qty, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (warehouse_id, material_id) DO NOTHING`,
		warehouseID, materialID,
	)
	if err != nil {
		return nil, fmt.Errorf("materialize stock balance: %w", err)
	}

	query := `
		SELECT warehouse_id, material_id, on_hand_qty, updated_at
		FROM stock_balances WHERE warehouse_id = $1 AND material_id = $2 FOR UPDATE`
	var s entity.StockBalance
	err = r.q.QueryRow(context.Background(), query, warehouseID, materialID).Scan(
		&s.WarehouseID, &s.MaterialID, &s.OnHandQty, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("lock stock balance: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la existencia de la pareja bodega+material.
// El caller debe tener la fila bloqueada vía GetForUpdate antes de escribir.
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (warehouse_id, material_id, on_hand_qty, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (warehouse_id, material_id)
		DO UPDATE SET on_hand_qty = EXCLUDED.on_hand_qty, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		balance.WarehouseID, balance.MaterialID, balance.OnHandQty, balance.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

// List lista existencias filtrando por bodega y/o material ("" = sin filtro).
func (r *StockBalanceRepo) List(warehouseID, materialID string, limit, offset int) ([]*entity.StockBalance, error) {
	query := `
		SELECT warehouse_id, material_id, on_hand_qty, updated_at
		FROM stock_balances
		WHERE ($1 = '' OR warehouse_id = $1) AND ($2 = '' OR material_id = $2)
		ORDER BY warehouse_id, material_id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, warehouseID, materialID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()

	var balances []*entity.StockBalance
	for rows.Next() {
		var s entity.StockBalance
		if err := rows.Scan(&s.WarehouseID, &s.MaterialID, &s.OnHandQty, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		balances = append(balances, &s)
	}
	return balances, rows.Err()
}
