package repository

import "github.com/jhoicas/Traslados-api/internal/domain/entity"

// StockBalanceRepository define el puerto para consultar/actualizar existencias
// por bodega+material. Usado dentro de transacciones para garantizar consistencia.
// Get y GetForUpdate devuelven una fila en cero si la pareja aún no existe
// (creación perezosa; el Upsert la materializa).
type StockBalanceRepository interface {
	Get(warehouseID, materialID string) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(warehouseID, materialID string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	// List filtra por bodega y/o material ("" = sin filtro), orden (bodega, material).
	List(warehouseID, materialID string, limit, offset int) ([]*entity.StockBalance, error)
}
