package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
	"github.com/jhoicas/Traslados-api/internal/domain/transfer"
)

// WorkflowUseCase orquesta el ciclo de vida de un traslado de forma transaccional:
// create, assign, dispatch y receive. Cada operación corre como una unidad
// atómica (TxRunner) con bloqueo de fila (SELECT FOR UPDATE) sobre el traslado
// y sobre la existencia afectada, chequeo de idempotencia antes de mutar, y
// Commit o Rollback de todo el conjunto.
type WorkflowUseCase struct {
	txRunner      TxRunner
	transferRepo  repository.TransferRepository
	eventRepo     repository.TransferEventRepository
	warehouseRepo repository.WarehouseRepository
	materialRepo  repository.MaterialRepository
}

// NewWorkflowUseCase construye el caso de uso. transferRepo y eventRepo son los
// adaptadores sobre el pool (solo lecturas); las mutaciones usan los repos
// tx-bound que entrega el TxRunner.
func NewWorkflowUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	eventRepo repository.TransferEventRepository,
	warehouseRepo repository.WarehouseRepository,
	materialRepo repository.MaterialRepository,
) *WorkflowUseCase {
	return &WorkflowUseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		eventRepo:     eventRepo,
		warehouseRepo: warehouseRepo,
		materialRepo:  materialRepo,
	}
}

// CreateTransfer valida bodegas y material, crea el traslado en draft y
// registra el evento created, todo en una transacción.
func (uc *WorkflowUseCase) CreateTransfer(ctx context.Context, operatorID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.FromWarehouseID == "" || in.ToWarehouseID == "" || in.MaterialID == "" {
		return nil, fmt.Errorf("from_warehouse_id, to_warehouse_id y material_id son requeridos: %w", domain.ErrValidation)
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, fmt.Errorf("la bodega origen y destino deben ser distintas: %w", domain.ErrValidation)
	}
	if !in.PlannedQty.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("planned_qty debe ser > 0, recibido %s: %w", in.PlannedQty, domain.ErrValidation)
	}

	// Validar que bodegas y material existan
	for _, whID := range []string{in.FromWarehouseID, in.ToWarehouseID} {
		wh, err := uc.warehouseRepo.GetByID(whID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, fmt.Errorf("bodega %s: %w", whID, domain.ErrNotFound)
		}
	}
	material, err := uc.materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("material %s: %w", in.MaterialID, domain.ErrNotFound)
	}

	now := time.Now()
	t := &entity.Transfer{
		ID:              uuid.New().String(),
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		MaterialID:      in.MaterialID,
		PlannedQty:      in.PlannedQty,
		ShippedQty:      decimal.Zero,
		ReceivedQty:     decimal.Zero,
		DamagedQty:      decimal.Zero,
		Status:          entity.StatusDraft,
		OperatorID:      operatorID,
		DeadlineAt:      in.DeadlineAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.txRunner.Run(ctx, func(
		transferRepo repository.TransferRepository,
		eventRepo repository.TransferEventRepository,
		_ repository.StockBalanceRepository,
	) error {
		if err := transferRepo.Create(t); err != nil {
			return err
		}
		payload, err := payloadJSON(map[string]any{"planned_qty": in.PlannedQty})
		if err != nil {
			return err
		}
		return eventRepo.Append(&entity.TransferEvent{
			TransferID:  t.ID,
			EventType:   entity.EventCreated,
			ActorUserID: operatorID,
			EventTime:   now,
			PayloadJSON: payload,
		})
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(t), nil
}

// AssignTransfer mezcla los asignados enviados sobre los existentes y, si
// conductor y ambos bodegueros quedan resueltos, avanza draft -> assigned y
// registra el evento assigned.
func (uc *WorkflowUseCase) AssignTransfer(ctx context.Context, transferID, actorID string, in dto.AssignTransferRequest) (*dto.TransferResponse, error) {
	var result *entity.Transfer
	err := uc.txRunner.Run(ctx, func(
		transferRepo repository.TransferRepository,
		eventRepo repository.TransferEventRepository,
		_ repository.StockBalanceRepository,
	) error {
		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("traslado %s: %w", transferID, domain.ErrNotFound)
		}
		if err := transfer.CanAssign(t); err != nil {
			return err
		}

		// Merge: solo los campos presentes sobreescriben los existentes
		if in.DriverID != nil {
			t.DriverID = in.DriverID
		}
		if in.StorekeeperFromID != nil {
			t.StorekeeperFromID = in.StorekeeperFromID
		}
		if in.StorekeeperToID != nil {
			t.StorekeeperToID = in.StorekeeperToID
		}

		eventType, err := transfer.ResolveAssign(t)
		if err != nil {
			return err
		}

		now := time.Now()
		t.Status = entity.StatusAssigned
		t.UpdatedAt = now
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		payload, err := payloadJSON(map[string]any{
			"driver_id":           *t.DriverID,
			"storekeeper_from_id": *t.StorekeeperFromID,
			"storekeeper_to_id":   *t.StorekeeperToID,
		})
		if err != nil {
			return err
		}
		if err := eventRepo.Append(&entity.TransferEvent{
			TransferID:  t.ID,
			EventType:   eventType,
			ActorUserID: actorID,
			EventTime:   now,
			PayloadJSON: payload,
		}); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(result), nil
}

// DispatchTransfer confirma la salida física: chequea idempotencia, valida la
// transición assigned -> in_transit, debita el stock de la bodega origen y
// registra el evento pickup_confirmed con la clave de idempotencia.
func (uc *WorkflowUseCase) DispatchTransfer(ctx context.Context, transferID, actorID string, in dto.DispatchTransferRequest) (*dto.TransferResponse, error) {
	if in.IdempotencyKey == "" {
		return nil, fmt.Errorf("idempotency_key es requerida: %w", domain.ErrValidation)
	}

	var result *entity.Transfer
	err := uc.txRunner.Run(ctx, func(
		transferRepo repository.TransferRepository,
		eventRepo repository.TransferEventRepository,
		stockRepo repository.StockBalanceRepository,
	) error {
		// Chequeo de idempotencia antes de cualquier mutación: un reintento con
		// la misma clave no debe volver a mover stock.
		if err := ensureIdempotent(eventRepo, in.IdempotencyKey); err != nil {
			return err
		}

		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("traslado %s: %w", transferID, domain.ErrNotFound)
		}
		if err := transfer.CanDispatch(t, in.ShippedQty); err != nil {
			return err
		}

		now := time.Now()
		ledger := NewLedger(stockRepo)
		if err := ledger.Debit(t.FromWarehouseID, t.MaterialID, in.ShippedQty, now); err != nil {
			return err
		}

		t.ShippedQty = in.ShippedQty
		if in.SealNumber != nil && *in.SealNumber != "" {
			t.SealNumber = in.SealNumber
		}
		t.StorekeeperFromID = &actorID
		t.Status = entity.StatusInTransit
		t.UpdatedAt = now
		if err := transferRepo.Update(t); err != nil {
			return err
		}

		payload, err := payloadJSON(map[string]any{
			"shipped_qty": in.ShippedQty,
			"seal_number": in.SealNumber,
		})
		if err != nil {
			return err
		}
		if err := eventRepo.Append(&entity.TransferEvent{
			TransferID:     t.ID,
			EventType:      entity.EventPickupConfirmed,
			ActorUserID:    actorID,
			EventTime:      now,
			IdempotencyKey: &in.IdempotencyKey,
			PayloadJSON:    payload,
		}); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(result), nil
}

// ReceiveTransfer confirma la llegada: chequea idempotencia, valida cantidades
// contra lo despachado, acredita en destino solo lo recibido (lo dañado no
// vuelve al stock) y resuelve el estado terminal received o discrepancy.
func (uc *WorkflowUseCase) ReceiveTransfer(ctx context.Context, transferID, actorID string, in dto.ReceiveTransferRequest) (*dto.TransferResponse, error) {
	if in.IdempotencyKey == "" {
		return nil, fmt.Errorf("idempotency_key es requerida: %w", domain.ErrValidation)
	}

	var result *entity.Transfer
	err := uc.txRunner.Run(ctx, func(
		transferRepo repository.TransferRepository,
		eventRepo repository.TransferEventRepository,
		stockRepo repository.StockBalanceRepository,
	) error {
		if err := ensureIdempotent(eventRepo, in.IdempotencyKey); err != nil {
			return err
		}

		t, err := transferRepo.GetForUpdate(transferID)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("traslado %s: %w", transferID, domain.ErrNotFound)
		}

		decision, err := transfer.DecideReceive(t, in.ReceivedQty, in.DamagedQty)
		if err != nil {
			return err
		}

		now := time.Now()
		ledger := NewLedger(stockRepo)
		if err := ledger.Credit(t.ToWarehouseID, t.MaterialID, in.ReceivedQty, now); err != nil {
			return err
		}

		t.ReceivedQty = in.ReceivedQty
		t.DamagedQty = in.DamagedQty
		t.StorekeeperToID = &actorID
		t.Status = decision.NextStatus
		t.UpdatedAt = now
		if err := transferRepo.Update(t); err != nil {
			return err
		}

		payload, err := payloadJSON(map[string]any{
			"received_qty": in.ReceivedQty,
			"damaged_qty":  in.DamagedQty,
		})
		if err != nil {
			return err
		}
		if err := eventRepo.Append(&entity.TransferEvent{
			TransferID:     t.ID,
			EventType:      decision.EventType,
			ActorUserID:    actorID,
			EventTime:      now,
			IdempotencyKey: &in.IdempotencyKey,
			PayloadJSON:    payload,
		}); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTransferResponse(result), nil
}

// GetTransfer obtiene un traslado por ID.
func (uc *WorkflowUseCase) GetTransfer(id string) (*dto.TransferResponse, error) {
	t, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("traslado %s: %w", id, domain.ErrNotFound)
	}
	return toTransferResponse(t), nil
}

// ListTransfers lista traslados, más recientes primero.
func (uc *WorkflowUseCase) ListTransfers(limit, offset int) (*dto.TransferListResponse, error) {
	list, err := uc.transferRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListEvents devuelve el historial de auditoría de un traslado en orden de inserción.
func (uc *WorkflowUseCase) ListEvents(transferID string, limit, offset int) (*dto.TransferEventListResponse, error) {
	t, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("traslado %s: %w", transferID, domain.ErrNotFound)
	}
	events, err := uc.eventRepo.ListByTransfer(transferID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferEventResponse, 0, len(events))
	for _, ev := range events {
		items = append(items, dto.TransferEventResponse{
			ID:             ev.ID,
			TransferID:     ev.TransferID,
			EventType:      ev.EventType,
			ActorUserID:    ev.ActorUserID,
			EventTime:      ev.EventTime,
			PayloadJSON:    ev.PayloadJSON,
			IdempotencyKey: ev.IdempotencyKey,
		})
	}
	return &dto.TransferEventListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ensureIdempotent rechaza la operación si la clave ya existe en el log.
// La constraint única de la columna cubre la carrera entre dos chequeos simultáneos.
func ensureIdempotent(eventRepo repository.TransferEventRepository, key string) error {
	exists, err := eventRepo.ExistsByIdempotencyKey(key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("idempotency_key %q: %w", key, domain.ErrDuplicateIdempotencyKey)
	}
	return nil
}

// payloadJSON serializa los campos de auditoría del evento. Un payload que no
// se puede serializar aborta la operación: el evento sin payload no sirve como
// registro de auditoría.
func payloadJSON(fields map[string]any) (*string, error) {
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("serializar payload del evento: %w", err)
	}
	s := string(b)
	return &s, nil
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	if t == nil {
		return nil
	}
	return &dto.TransferResponse{
		ID:                t.ID,
		FromWarehouseID:   t.FromWarehouseID,
		ToWarehouseID:     t.ToWarehouseID,
		MaterialID:        t.MaterialID,
		PlannedQty:        t.PlannedQty,
		ShippedQty:        t.ShippedQty,
		ReceivedQty:       t.ReceivedQty,
		DamagedQty:        t.DamagedQty,
		Status:            t.Status,
		OperatorID:        t.OperatorID,
		DriverID:          t.DriverID,
		StorekeeperFromID: t.StorekeeperFromID,
		StorekeeperToID:   t.StorekeeperToID,
		SealNumber:        t.SealNumber,
		DeadlineAt:        t.DeadlineAt,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
