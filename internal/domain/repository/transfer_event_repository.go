package repository

import "github.com/jhoicas/Traslados-api/internal/domain/entity"

// TransferEventRepository define el puerto del log de eventos de traslados.
// El log es append-only: no existe Update ni Delete.
type TransferEventRepository interface {
	// Append persiste un evento. Si trae clave de idempotencia y ya existe otra
	// igual en el log, retorna domain.ErrDuplicateIdempotencyKey y el caller debe
	// abortar toda la transacción.
	Append(event *entity.TransferEvent) error
	// ExistsByIdempotencyKey consulta si la clave ya fue usada (chequeo previo a mutar).
	ExistsByIdempotencyKey(key string) (bool, error)
	// ListByTransfer devuelve los eventos de un traslado en orden de inserción.
	ListByTransfer(transferID string, limit, offset int) ([]*entity.TransferEvent, error)
}
