package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	MaterialID      string          `json:"material_id"`
	PlannedQty      decimal.Decimal `json:"planned_qty"`
	DeadlineAt      *time.Time      `json:"deadline_at,omitempty"`
}

// AssignTransferRequest body para POST /api/transfers/{id}/assign.
// Los campos presentes se mezclan sobre los asignados existentes.
type AssignTransferRequest struct {
	DriverID          *string `json:"driver_id,omitempty"`
	StorekeeperFromID *string `json:"storekeeper_from_id,omitempty"`
	StorekeeperToID   *string `json:"storekeeper_to_id,omitempty"`
}

// DispatchTransferRequest body para POST /api/transfers/{id}/dispatch.
// IdempotencyKey debe ser única por intento lógico: un reintento con la misma
// clave no vuelve a aplicar el movimiento de stock.
type DispatchTransferRequest struct {
	ShippedQty     decimal.Decimal `json:"shipped_qty"`
	SealNumber     *string         `json:"seal_number,omitempty"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// ReceiveTransferRequest body para POST /api/transfers/{id}/receive.
type ReceiveTransferRequest struct {
	ReceivedQty    decimal.Decimal `json:"received_qty"`
	DamagedQty     decimal.Decimal `json:"damaged_qty"`
	IdempotencyKey string          `json:"idempotency_key"`
}

// TransferResponse representación de un traslado en respuestas.
type TransferResponse struct {
	ID              string          `json:"id"`
	FromWarehouseID string          `json:"from_warehouse_id"`
	ToWarehouseID   string          `json:"to_warehouse_id"`
	MaterialID      string          `json:"material_id"`
	PlannedQty      decimal.Decimal `json:"planned_qty"`
	ShippedQty      decimal.Decimal `json:"shipped_qty"`
	ReceivedQty     decimal.Decimal `json:"received_qty"`
	DamagedQty      decimal.Decimal `json:"damaged_qty"`
	Status          string          `json:"status"`
	OperatorID      string          `json:"operator_id"`

	DriverID          *string    `json:"driver_id,omitempty"`
	StorekeeperFromID *string    `json:"storekeeper_from_id,omitempty"`
	StorekeeperToID   *string    `json:"storekeeper_to_id,omitempty"`
	SealNumber        *string    `json:"seal_number,omitempty"`
	DeadlineAt        *time.Time `json:"deadline_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransferListResponse listado paginado de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TransferEventResponse fila del log de auditoría de un traslado.
type TransferEventResponse struct {
	ID             string    `json:"id"`
	TransferID     string    `json:"transfer_id"`
	EventType      string    `json:"event_type"`
	ActorUserID    string    `json:"actor_user_id"`
	EventTime      time.Time `json:"event_time"`
	PayloadJSON    *string   `json:"payload_json,omitempty"`
	IdempotencyKey *string   `json:"idempotency_key,omitempty"`
}

// TransferEventListResponse listado de eventos en orden de inserción.
type TransferEventListResponse struct {
	Items []TransferEventResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
