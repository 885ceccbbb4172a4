package entity

import "time"

// Tipos de evento del log de traslados.
const (
	EventCreated                 = "created"
	EventAssigned                = "assigned"
	EventPickupConfirmed         = "pickup_confirmed"
	EventDeliveryConfirmed       = "delivery_confirmed"
	EventDeliveryWithDiscrepancy = "delivery_with_discrepancy"
)

// TransferEvent es una fila inmutable del log de auditoría: una por cada acción
// que cambió el estado de un traslado. Append-only: nunca se actualiza ni borra.
// IdempotencyKey, cuando está presente, es única en todo el log (no por traslado).
type TransferEvent struct {
	ID             string
	TransferID     string
	EventType      string
	ActorUserID    string
	EventTime      time.Time
	PayloadJSON    *string // cantidades/campos relevantes a la acción, para auditoría
	IdempotencyKey *string // nil para created/assigned; obligatoria en dispatch/receive
}
