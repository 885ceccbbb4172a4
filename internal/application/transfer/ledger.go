package transfer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// Ledger es el libro de stock: débitos y créditos sobre la existencia
// (bodega, material) con piso en cero. Opera sobre un repositorio atado a la
// transacción del caller y bloquea la fila (SELECT FOR UPDATE) antes de mutar.
// El libro no sabe por qué ocurre un movimiento: el workflow decide pareja y monto.
type Ledger struct {
	stockRepo repository.StockBalanceRepository
}

// NewLedger construye el libro sobre un repositorio (normalmente tx-bound).
func NewLedger(stockRepo repository.StockBalanceRepository) *Ledger {
	return &Ledger{stockRepo: stockRepo}
}

// Debit resta amount de la existencia. Falla con ErrInsufficientStock si el
// saldo actual es menor que amount: el saldo nunca queda negativo.
func (l *Ledger) Debit(warehouseID, materialID string, amount decimal.Decimal, now time.Time) error {
	balance, err := l.stockRepo.GetForUpdate(warehouseID, materialID)
	if err != nil {
		return err
	}
	if balance.OnHandQty.LessThan(amount) {
		return fmt.Errorf("bodega %s material %s: disponible %s, solicitado %s: %w",
			warehouseID, materialID, balance.OnHandQty, amount, domain.ErrInsufficientStock)
	}
	balance.OnHandQty = balance.OnHandQty.Sub(amount)
	balance.UpdatedAt = now
	return l.stockRepo.Upsert(balance)
}

// Credit suma amount a la existencia, sin condiciones (amount >= 0 lo valida el caller).
func (l *Ledger) Credit(warehouseID, materialID string, amount decimal.Decimal, now time.Time) error {
	balance, err := l.stockRepo.GetForUpdate(warehouseID, materialID)
	if err != nil {
		return err
	}
	balance.OnHandQty = balance.OnHandQty.Add(amount)
	balance.UpdatedAt = now
	return l.stockRepo.Upsert(balance)
}
