package transfer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
)

// Máquina de estados del traslado (servicio de dominio, sin I/O).
// Dado el estado actual y las cantidades/asignaciones propuestas decide el
// siguiente estado y el tipo de evento, o rechaza la transición.
//
//	draft -> assigned -> in_transit -> received | discrepancy

// CanAssign valida la guarda de la transición assign (draft -> assigned).
// La resolución de los asignados se verifica después del merge, con ResolveAssign.
func CanAssign(t *entity.Transfer) error {
	if t.Status != entity.StatusDraft {
		return fmt.Errorf("no se puede asignar desde status=%s: %w", t.Status, domain.ErrInvalidTransition)
	}
	return nil
}

// ResolveAssign valida que, ya aplicada la asignación solicitada, el traslado
// tenga conductor y ambos bodegueros. Devuelve el tipo de evento resultante.
func ResolveAssign(t *entity.Transfer) (string, error) {
	if !t.AssigneesResolved() {
		return "", fmt.Errorf("driver_id, storekeeper_from_id y storekeeper_to_id son requeridos: %w", domain.ErrValidation)
	}
	return entity.EventAssigned, nil
}

// CanDispatch valida la guarda y la regla de cantidades de la transición
// dispatch (assigned -> in_transit). La existencia de stock en origen la
// verifica el libro de stock dentro de la transacción, no aquí.
func CanDispatch(t *entity.Transfer, shippedQty decimal.Decimal) error {
	if t.Status != entity.StatusAssigned {
		return fmt.Errorf("no se puede despachar desde status=%s: %w", t.Status, domain.ErrInvalidTransition)
	}
	if !shippedQty.GreaterThan(decimal.Zero) {
		return fmt.Errorf("shipped_qty debe ser > 0, recibido %s: %w", shippedQty, domain.ErrValidation)
	}
	if shippedQty.GreaterThan(t.PlannedQty) {
		return fmt.Errorf("shipped_qty %s no puede superar planned_qty %s: %w",
			shippedQty, t.PlannedQty, domain.ErrValidation)
	}
	return nil
}

// ReceiveDecision resultado de la transición receive: estado terminal y evento.
type ReceiveDecision struct {
	NextStatus string
	EventType  string
}

// DecideReceive valida la transición receive (in_transit -> received | discrepancy)
// y resuelve el estado terminal. La entrega es fiel solo si lo recibido iguala lo
// despachado, no hubo daños y lo despachado coincide con lo planificado; cualquier
// otra combinación termina en discrepancy.
func DecideReceive(t *entity.Transfer, receivedQty, damagedQty decimal.Decimal) (ReceiveDecision, error) {
	if t.Status != entity.StatusInTransit {
		return ReceiveDecision{}, fmt.Errorf("no se puede recibir desde status=%s: %w", t.Status, domain.ErrInvalidTransition)
	}
	if receivedQty.LessThan(decimal.Zero) {
		return ReceiveDecision{}, fmt.Errorf("received_qty debe ser >= 0: %w", domain.ErrValidation)
	}
	if damagedQty.LessThan(decimal.Zero) {
		return ReceiveDecision{}, fmt.Errorf("damaged_qty debe ser >= 0: %w", domain.ErrValidation)
	}
	if !t.ShippedQty.GreaterThan(decimal.Zero) {
		return ReceiveDecision{}, fmt.Errorf("no se puede recibir: shipped_qty no está registrada: %w", domain.ErrValidation)
	}
	if receivedQty.Add(damagedQty).GreaterThan(t.ShippedQty) {
		return ReceiveDecision{}, fmt.Errorf("received_qty + damaged_qty %s no puede superar shipped_qty %s: %w",
			receivedQty.Add(damagedQty), t.ShippedQty, domain.ErrValidation)
	}

	if receivedQty.Equal(t.ShippedQty) && damagedQty.IsZero() && t.ShippedQty.Equal(t.PlannedQty) {
		return ReceiveDecision{NextStatus: entity.StatusReceived, EventType: entity.EventDeliveryConfirmed}, nil
	}
	return ReceiveDecision{NextStatus: entity.StatusDiscrepancy, EventType: entity.EventDeliveryWithDiscrepancy}, nil
}
