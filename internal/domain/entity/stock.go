package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBalance representa la existencia actual de un material en una bodega.
// Invariante: OnHandQty nunca es negativa. Se crea perezosamente en cero al
// primer acceso y solo la muta el libro de stock (débito en dispatch, crédito en receive).
type StockBalance struct {
	WarehouseID string
	MaterialID  string
	OnHandQty   decimal.Decimal
	UpdatedAt   time.Time
}
