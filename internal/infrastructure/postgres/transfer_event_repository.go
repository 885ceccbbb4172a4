package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

var _ repository.TransferEventRepository = (*TransferEventRepo)(nil)

// TransferEventRepo implementación del log de eventos sobre PostgreSQL (usable con pool o tx).
// La tabla transfer_events es append-only con índice único sobre idempotency_key.
type TransferEventRepo struct {
	q Querier
}

// NewTransferEventRepository construye el adaptador del log de eventos. Pasar pool o tx (Querier).
func NewTransferEventRepository(q Querier) *TransferEventRepo {
	return &TransferEventRepo{q: q}
}

// Append inserta un evento. El constraint único sobre idempotency_key garantiza
// la deduplicación incluso entre dos transacciones concurrentes con la misma clave:
// una de las dos recibe 23505 y se mapea a ErrDuplicateIdempotencyKey.
func (r *TransferEventRepo) Append(event *entity.TransferEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfer_events (id, transfer_id, event_type, actor_user_id, event_time, payload_json, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.TransferID, event.EventType, event.ActorUserID,
		event.EventTime, event.PayloadJSON, event.IdempotencyKey,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("insert transfer event: %w", err)
	}
	return nil
}

// ExistsByIdempotencyKey consulta si la clave ya está en el log (en cualquier traslado).
func (r *TransferEventRepo) ExistsByIdempotencyKey(key string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM transfer_events WHERE idempotency_key = $1)`, key,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check idempotency key: %w", err)
	}
	return exists, nil
}

// ListByTransfer devuelve los eventos de un traslado en orden de inserción.
// El orden lo da la columna seq (bigserial): event_time puede repetirse dentro
// de una misma transacción y los ids UUID no son monotónicos.
func (r *TransferEventRepo) ListByTransfer(transferID string, limit, offset int) ([]*entity.TransferEvent, error) {
	query := `
		SELECT id, transfer_id, event_type, actor_user_id, event_time, payload_json, idempotency_key
		FROM transfer_events WHERE transfer_id = $1 ORDER BY seq ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, transferID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfer events: %w", err)
	}
	defer rows.Close()

	var events []*entity.TransferEvent
	for rows.Next() {
		var e entity.TransferEvent
		if err := rows.Scan(&e.ID, &e.TransferID, &e.EventType, &e.ActorUserID,
			&e.EventTime, &e.PayloadJSON, &e.IdempotencyKey); err != nil {
			return nil, fmt.Errorf("scan transfer event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
