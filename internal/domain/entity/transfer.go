package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un traslado. Solo avanza hacia adelante:
// draft -> assigned -> in_transit -> received | discrepancy (terminales).
const (
	StatusDraft       = "draft"
	StatusAssigned    = "assigned"
	StatusInTransit   = "in_transit"
	StatusReceived    = "received"
	StatusDiscrepancy = "discrepancy"
)

// Transfer representa un traslado de material entre dos bodegas.
// Es el registro durable del movimiento físico: nunca se elimina.
type Transfer struct {
	ID              string
	FromWarehouseID string
	ToWarehouseID   string
	MaterialID      string

	PlannedQty  decimal.Decimal // > 0
	ShippedQty  decimal.Decimal // <= PlannedQty
	ReceivedQty decimal.Decimal // ReceivedQty + DamagedQty <= ShippedQty
	DamagedQty  decimal.Decimal

	Status string

	OperatorID        string  // quien creó el traslado
	DriverID          *string // asignado en assign
	StorekeeperFromID *string // asignado en assign; sobreescrito por el actor del dispatch
	StorekeeperToID   *string // asignado en assign; sobreescrito por el actor del receive

	SealNumber *string // precinto de seguridad, opcional
	DeadlineAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal indica si el traslado está en un estado final.
func (t *Transfer) IsTerminal() bool {
	return t.Status == StatusReceived || t.Status == StatusDiscrepancy
}

// AssigneesResolved indica si conductor y ambos bodegueros están asignados.
func (t *Transfer) AssigneesResolved() bool {
	return t.DriverID != nil && *t.DriverID != "" &&
		t.StorekeeperFromID != nil && *t.StorekeeperFromID != "" &&
		t.StorekeeperToID != nil && *t.StorekeeperToID != ""
}
