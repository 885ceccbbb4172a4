package transfer

import (
	"context"

	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de traslados:
// o se confirman traslado, stock y evento juntos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		transferRepo repository.TransferRepository,
		eventRepo repository.TransferEventRepository,
		stockRepo repository.StockBalanceRepository,
	) error) error
}
