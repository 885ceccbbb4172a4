package transfer_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptransfer "github.com/jhoicas/Traslados-api/internal/application/transfer"
	"github.com/jhoicas/Traslados-api/internal/application/dto"
	"github.com/jhoicas/Traslados-api/internal/domain"
	"github.com/jhoicas/Traslados-api/internal/domain/entity"
	"github.com/jhoicas/Traslados-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: emulan el comportamiento transaccional del TxRunner real
// (snapshot antes del callback, restore en error) para poder verificar que las
// operaciones son todo-o-nada sin una base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	transfers  map[string]entity.Transfer
	events     []entity.TransferEvent
	stocks     map[string]entity.StockBalance
	warehouses map[string]entity.Warehouse
	materials  map[string]entity.Material
	seq        int
}

func newMemDB() *memDB {
	return &memDB{
		transfers:  map[string]entity.Transfer{},
		stocks:     map[string]entity.StockBalance{},
		warehouses: map[string]entity.Warehouse{},
		materials:  map[string]entity.Material{},
	}
}

func stockKey(warehouseID, materialID string) string { return warehouseID + "/" + materialID }

type memTransferRepo struct{ db *memDB }

func (r *memTransferRepo) Create(t *entity.Transfer) error {
	r.db.transfers[t.ID] = *t
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.Transfer, error) {
	t, ok := r.db.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := t
	return &cp, nil
}

func (r *memTransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.GetByID(id)
}

func (r *memTransferRepo) Update(t *entity.Transfer) error {
	r.db.transfers[t.ID] = *t
	return nil
}

func (r *memTransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	var list []*entity.Transfer
	for id := range r.db.transfers {
		cp := r.db.transfers[id]
		list = append(list, &cp)
	}
	return list, nil
}

type memEventRepo struct{ db *memDB }

func (r *memEventRepo) Append(ev *entity.TransferEvent) error {
	if ev.IdempotencyKey != nil {
		for _, existing := range r.db.events {
			if existing.IdempotencyKey != nil && *existing.IdempotencyKey == *ev.IdempotencyKey {
				return fmt.Errorf("idempotency_key %q: %w", *ev.IdempotencyKey, domain.ErrDuplicateIdempotencyKey)
			}
		}
	}
	r.db.seq++
	cp := *ev
	cp.ID = fmt.Sprintf("ev-%d", r.db.seq)
	r.db.events = append(r.db.events, cp)
	return nil
}

func (r *memEventRepo) ExistsByIdempotencyKey(key string) (bool, error) {
	for _, ev := range r.db.events {
		if ev.IdempotencyKey != nil && *ev.IdempotencyKey == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *memEventRepo) ListByTransfer(transferID string, limit, offset int) ([]*entity.TransferEvent, error) {
	var list []*entity.TransferEvent
	for i := range r.db.events {
		if r.db.events[i].TransferID == transferID {
			cp := r.db.events[i]
			list = append(list, &cp)
		}
	}
	return list, nil
}

type memStockRepo struct{ db *memDB }

func (r *memStockRepo) Get(warehouseID, materialID string) (*entity.StockBalance, error) {
	s, ok := r.db.stocks[stockKey(warehouseID, materialID)]
	if !ok {
		return &entity.StockBalance{WarehouseID: warehouseID, MaterialID: materialID, OnHandQty: decimal.Zero}, nil
	}
	cp := s
	return &cp, nil
}

func (r *memStockRepo) GetForUpdate(warehouseID, materialID string) (*entity.StockBalance, error) {
	return r.Get(warehouseID, materialID)
}

func (r *memStockRepo) Upsert(balance *entity.StockBalance) error {
	r.db.stocks[stockKey(balance.WarehouseID, balance.MaterialID)] = *balance
	return nil
}

func (r *memStockRepo) List(warehouseID, materialID string, limit, offset int) ([]*entity.StockBalance, error) {
	var list []*entity.StockBalance
	for k := range r.db.stocks {
		cp := r.db.stocks[k]
		if warehouseID != "" && cp.WarehouseID != warehouseID {
			continue
		}
		if materialID != "" && cp.MaterialID != materialID {
			continue
		}
		list = append(list, &cp)
	}
	return list, nil
}

type memWarehouseRepo struct{ db *memDB }

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error {
	r.db.warehouses[w.ID] = *w
	return nil
}

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	w, ok := r.db.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := w
	return &cp, nil
}

func (r *memWarehouseRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}

type memMaterialRepo struct{ db *memDB }

func (r *memMaterialRepo) Create(m *entity.Material) error {
	r.db.materials[m.ID] = *m
	return nil
}

func (r *memMaterialRepo) GetByID(id string) (*entity.Material, error) {
	m, ok := r.db.materials[id]
	if !ok {
		return nil, nil
	}
	cp := m
	return &cp, nil
}

func (r *memMaterialRepo) List(q string, limit, offset int) ([]*entity.Material, error) {
	return nil, nil
}

// memTxRunner emula Commit/Rollback: clona el estado antes del callback y lo
// restaura si el callback falla.
type memTxRunner struct{ db *memDB }

func (r *memTxRunner) Run(_ context.Context, fn func(
	transferRepo repository.TransferRepository,
	eventRepo repository.TransferEventRepository,
	stockRepo repository.StockBalanceRepository,
) error) error {
	snapTransfers := make(map[string]entity.Transfer, len(r.db.transfers))
	for k, v := range r.db.transfers {
		snapTransfers[k] = v
	}
	snapStocks := make(map[string]entity.StockBalance, len(r.db.stocks))
	for k, v := range r.db.stocks {
		snapStocks[k] = v
	}
	snapEvents := len(r.db.events)

	err := fn(&memTransferRepo{r.db}, &memEventRepo{r.db}, &memStockRepo{r.db})
	if err != nil {
		r.db.transfers = snapTransfers
		r.db.stocks = snapStocks
		r.db.events = r.db.events[:snapEvents]
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	whOrigen   = "wh-origen"
	whDestino  = "wh-destino"
	matCemento = "mat-cemento"

	operador  = "u-operador"
	conductor = "u-conductor"
	bodegaA   = "u-bodeguero-a"
	bodegaB   = "u-bodeguero-b"
)

func qty(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func newEnv(t *testing.T) (*apptransfer.WorkflowUseCase, *memDB) {
	t.Helper()
	db := newMemDB()
	now := time.Now()
	db.warehouses[whOrigen] = entity.Warehouse{ID: whOrigen, BranchID: "br-1", Name: "Bodega Origen", CreatedAt: now, UpdatedAt: now}
	db.warehouses[whDestino] = entity.Warehouse{ID: whDestino, BranchID: "br-1", Name: "Bodega Destino", CreatedAt: now, UpdatedAt: now}
	db.materials[matCemento] = entity.Material{ID: matCemento, Name: "Cemento gris", Unit: "kg", CreatedAt: now, UpdatedAt: now}

	uc := apptransfer.NewWorkflowUseCase(
		&memTxRunner{db},
		&memTransferRepo{db},
		&memEventRepo{db},
		&memWarehouseRepo{db},
		&memMaterialRepo{db},
	)
	return uc, db
}

func seedStock(db *memDB, warehouseID, materialID, amount string) {
	db.stocks[stockKey(warehouseID, materialID)] = entity.StockBalance{
		WarehouseID: warehouseID,
		MaterialID:  materialID,
		OnHandQty:   qty(amount),
		UpdatedAt:   time.Now(),
	}
}

func onHand(db *memDB, warehouseID, materialID string) decimal.Decimal {
	s, ok := db.stocks[stockKey(warehouseID, materialID)]
	if !ok {
		return decimal.Zero
	}
	return s.OnHandQty
}

func eventsFor(db *memDB, transferID string) []entity.TransferEvent {
	var out []entity.TransferEvent
	for _, ev := range db.events {
		if ev.TransferID == transferID {
			out = append(out, ev)
		}
	}
	return out
}

// createDraft crea un traslado planned=100 listo para el resto del flujo.
func createDraft(t *testing.T, uc *apptransfer.WorkflowUseCase) *dto.TransferResponse {
	t.Helper()
	out, err := uc.CreateTransfer(context.Background(), operador, dto.CreateTransferRequest{
		FromWarehouseID: whOrigen,
		ToWarehouseID:   whDestino,
		MaterialID:      matCemento,
		PlannedQty:      qty("100"),
	})
	require.NoError(t, err)
	return out
}

func assignAll(t *testing.T, uc *apptransfer.WorkflowUseCase, transferID string) *dto.TransferResponse {
	t.Helper()
	out, err := uc.AssignTransfer(context.Background(), transferID, operador, dto.AssignTransferRequest{
		DriverID:          strPtr(conductor),
		StorekeeperFromID: strPtr(bodegaA),
		StorekeeperToID:   strPtr(bodegaB),
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTransfer_QuedaEnDraftConEventoCreated(t *testing.T) {
	uc, db := newEnv(t)

	out := createDraft(t, uc)

	assert.Equal(t, entity.StatusDraft, out.Status)
	assert.Equal(t, operador, out.OperatorID)
	assert.True(t, out.PlannedQty.Equal(qty("100")))
	assert.True(t, out.ShippedQty.IsZero())

	events := eventsFor(db, out.ID)
	require.Len(t, events, 1)
	assert.Equal(t, entity.EventCreated, events[0].EventType)
	assert.Nil(t, events[0].IdempotencyKey, "created no lleva clave de idempotencia")
	require.NotNil(t, events[0].PayloadJSON)
	assert.Contains(t, *events[0].PayloadJSON, "planned_qty")
}

func TestCreateTransfer_Validaciones(t *testing.T) {
	uc, db := newEnv(t)
	ctx := context.Background()

	_, err := uc.CreateTransfer(ctx, operador, dto.CreateTransferRequest{
		FromWarehouseID: whOrigen, ToWarehouseID: whOrigen, MaterialID: matCemento, PlannedQty: qty("10"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "origen y destino iguales")

	_, err = uc.CreateTransfer(ctx, operador, dto.CreateTransferRequest{
		FromWarehouseID: whOrigen, ToWarehouseID: whDestino, MaterialID: matCemento, PlannedQty: qty("0"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "planned_qty no positiva")

	_, err = uc.CreateTransfer(ctx, operador, dto.CreateTransferRequest{
		FromWarehouseID: "wh-fantasma", ToWarehouseID: whDestino, MaterialID: matCemento, PlannedQty: qty("10"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "bodega inexistente")

	_, err = uc.CreateTransfer(ctx, operador, dto.CreateTransferRequest{
		FromWarehouseID: whOrigen, ToWarehouseID: whDestino, MaterialID: "mat-fantasma", PlannedQty: qty("10"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "material inexistente")

	assert.Empty(t, db.transfers, "ninguna validación fallida debe persistir un traslado")
	assert.Empty(t, db.events)
}

// ──────────────────────────────────────────────────────────────────────────────
// Assign
// ──────────────────────────────────────────────────────────────────────────────

func TestAssignTransfer_CompletoQuedaAssigned(t *testing.T) {
	uc, db := newEnv(t)
	created := createDraft(t, uc)

	out := assignAll(t, uc, created.ID)

	assert.Equal(t, entity.StatusAssigned, out.Status)
	require.NotNil(t, out.DriverID)
	assert.Equal(t, conductor, *out.DriverID)

	events := eventsFor(db, created.ID)
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventAssigned, events[1].EventType)
	assert.Nil(t, events[1].IdempotencyKey, "assigned no lleva clave de idempotencia")
}

func TestAssignTransfer_MergeSobreAsignadosPrevios(t *testing.T) {
	uc, _ := newEnv(t)
	created := createDraft(t, uc)
	ctx := context.Background()

	// Primera asignación parcial: falta el bodeguero destino
	_, err := uc.AssignTransfer(ctx, created.ID, operador, dto.AssignTransferRequest{
		DriverID:          strPtr(conductor),
		StorekeeperFromID: strPtr(bodegaA),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// El rollback deja el traslado en draft y sin asignados parciales
	cur, err := uc.GetTransfer(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDraft, cur.Status)
	assert.Nil(t, cur.DriverID)

	// Con los tres campos la transición completa
	out, err := uc.AssignTransfer(ctx, created.ID, operador, dto.AssignTransferRequest{
		DriverID:          strPtr(conductor),
		StorekeeperFromID: strPtr(bodegaA),
		StorekeeperToID:   strPtr(bodegaB),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAssigned, out.Status)
}

func TestAssignTransfer_SoloDesdeDraft(t *testing.T) {
	uc, _ := newEnv(t)
	created := createDraft(t, uc)
	assignAll(t, uc, created.ID)

	_, err := uc.AssignTransfer(context.Background(), created.ID, operador, dto.AssignTransferRequest{
		DriverID: strPtr("u-otro"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAssignTransfer_NoExiste(t *testing.T) {
	uc, _ := newEnv(t)
	_, err := uc.AssignTransfer(context.Background(), "t-fantasma", operador, dto.AssignTransferRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dispatch
// ──────────────────────────────────────────────────────────────────────────────

func TestDispatchTransfer_DebitaOrigenYQuedaInTransit(t *testing.T) {
	uc, db := newEnv(t)
	created := createDraft(t, uc)
	assignAll(t, uc, created.ID)
	seedStock(db, whOrigen, matCemento, "150")

	out, err := uc.DispatchTransfer(context.Background(), created.ID, bodegaA, dto.DispatchTransferRequest{
		ShippedQty:     qty("100"),
		SealNumber:     strPtr("SEAL-001"),
		IdempotencyKey: "disp-1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusInTransit, out.Status)
	assert.True(t, out.ShippedQty.Equal(qty("100")))
	require.NotNil(t, out.SealNumber)
	assert.Equal(t, "SEAL-001", *out.SealNumber)
	require.NotNil(t, out.StorekeeperFromID)
	assert.Equal(t, bodegaA, *out.StorekeeperFromID, "el actor del dispatch queda como bodeguero origen")

	assert.True(t, onHand(db, whOrigen, matCemento).Equal(qty("50")), "150 - 100 = 50")

	events := eventsFor(db, created.ID)
	require.Len(t, events, 3)
	last := events[2]
	assert.Equal(t, entity.EventPickupConfirmed, last.EventType)
	require.NotNil(t, last.IdempotencyKey)
	assert.Equal(t, "disp-1", *last.IdempotencyKey)
}

func TestDispatchTransfer_StockInsuficienteNoAplicaNada(t *testing.T) {
	uc, db := newEnv(t)
	created := createDraft(t, uc)
	assignAll(t, uc, created.ID)
	seedStock(db, whOrigen, matCemento, "30")

	_, err := uc.DispatchTransfer(context.Background(), created.ID, bodegaA, dto.DispatchTransferRequest{
		ShippedQty:     qty("100"),
		IdempotencyKey: "disp-insuf",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, onHand(db, whOrigen, matCemento).Equal(qty("30")), "el stock no debe cambiar")
	cur, err := uc.GetTransfer(created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAssigned, cur.Status, "el status no debe cambiar")
	assert.Len(t, eventsFor(db, created.ID), 2, "no debe registrarse evento")
}

func TestDispatchTransfer_SoloDesdeAssigned(t *testing.T) {
	uc, db := newEnv(t)
	created := createDraft(t, uc)
	seedStock(db, whOrigen, matCemento, "150")

	_, err := uc.DispatchTransfer(context.Background(), created.ID, bodegaA, dto.DispatchTransferRequest{
		ShippedQty:     qty("100"),
		IdempotencyKey: "disp-draft",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "dispatch desde draft debe rechazarse")
	assert.True(t, onHand(db, whOrigen, matCemento).Equal(qty("150")))
}

func TestDispatchTransfer_ReintentoIdempotente(t *testing.T) {
	uc, db := newEnv(t)
	created := createDraft(t, uc)
	assignAll(t, uc, created.ID)
	seedStock(db, whOrigen, matCemento, "150")
	ctx := context.Background()

	in := dto.DispatchTransferRequest{ShippedQty: qty("100"), IdempotencyKey: "disp-retry"}
	_, err := uc.DispatchTransfer(ctx, created.ID, bodegaA, in)
	require.NoError(t, err)

	// Reintento del cliente con la misma clave (p. ej. respuesta perdida)
	_, err = uc.DispatchTransfer(ctx, created.ID, bodegaA, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateIdempotencyKey)

	assert.True(t, onHand(db, whOrigen, matCemento).Equal(qty("50")), "un solo débito de stock")
	events := eventsFor(db, created.ID)
	assert.Len(t, events, 3, "un solo evento pickup_confirmed")
}

func TestDispatchTransfer_SinClaveIdempotencia(t *testing.T) {
	uc, _ := newEnv(t)
	created := createDraft(t, uc)
	assignAll(t, uc, created.ID)

	_, err := uc.DispatchTransfer(context.Background(), created.ID, bodegaA, dto.DispatchTransferRequest{
		ShippedQty: qty("100"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

// dispatched deja un traslado en in_transit con shipped=100 y stock origen 150->50.
func dispatched(t *testing.T, uc *apptransfer.WorkflowUseCase, db *memDB) *dto.TransferResponse {
	t.Helper()
	created := createDraft(t, uc)
	assignAll(t, uc, created.ID)
	seedStock(db, whOrigen, matCemento, "150")
	out, err := uc.DispatchTransfer(context.Background(), created.ID, bodegaA, dto.DispatchTransferRequest{
		ShippedQty:     qty("100"),
		IdempotencyKey: "disp-" + created.ID,
	})
	require.NoError(t, err)
	return out
}

func TestReceiveTransfer_EntregaFielAcreditaDestino(t *testing.T) {
	uc, db := newEnv(t)
	tr := dispatched(t, uc, db)

	out, err := uc.ReceiveTransfer(context.Background(), tr.ID, bodegaB, dto.ReceiveTransferRequest{
		ReceivedQty:    qty("100"),
		DamagedQty:     qty("0"),
		IdempotencyKey: "recv-1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusReceived, out.Status)
	require.NotNil(t, out.StorekeeperToID)
	assert.Equal(t, bodegaB, *out.StorekeeperToID)
	assert.True(t, onHand(db, whDestino, matCemento).Equal(qty("100")), "destino += 100")

	events := eventsFor(db, tr.ID)
	require.Len(t, events, 4)
	assert.Equal(t, entity.EventDeliveryConfirmed, events[3].EventType)
}

func TestReceiveTransfer_ConDiscrepancia(t *testing.T) {
	uc, db := newEnv(t)
	tr := dispatched(t, uc, db)

	out, err := uc.ReceiveTransfer(context.Background(), tr.ID, bodegaB, dto.ReceiveTransferRequest{
		ReceivedQty:    qty("90"),
		DamagedQty:     qty("5"),
		IdempotencyKey: "recv-disc",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDiscrepancy, out.Status)
	assert.True(t, out.ReceivedQty.Equal(qty("90")))
	assert.True(t, out.DamagedQty.Equal(qty("5")))
	// Lo dañado no vuelve al stock: solo se acredita lo recibido
	assert.True(t, onHand(db, whDestino, matCemento).Equal(qty("90")))

	events := eventsFor(db, tr.ID)
	require.Len(t, events, 4)
	assert.Equal(t, entity.EventDeliveryWithDiscrepancy, events[3].EventType)
}

func TestReceiveTransfer_CantidadesInvalidasNoAplicanNada(t *testing.T) {
	uc, db := newEnv(t)
	tr := dispatched(t, uc, db)

	_, err := uc.ReceiveTransfer(context.Background(), tr.ID, bodegaB, dto.ReceiveTransferRequest{
		ReceivedQty:    qty("96"),
		DamagedQty:     qty("5"),
		IdempotencyKey: "recv-inv",
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "received + damaged > shipped")

	assert.True(t, onHand(db, whDestino, matCemento).IsZero(), "destino sin cambios")
	cur, err := uc.GetTransfer(tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInTransit, cur.Status)
	assert.Len(t, eventsFor(db, tr.ID), 3)
}

func TestReceiveTransfer_SoloDesdeInTransit(t *testing.T) {
	uc, _ := newEnv(t)
	created := createDraft(t, uc)

	_, err := uc.ReceiveTransfer(context.Background(), created.ID, bodegaB, dto.ReceiveTransferRequest{
		ReceivedQty:    qty("100"),
		IdempotencyKey: "recv-draft",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReceiveTransfer_ReintentoIdempotente(t *testing.T) {
	uc, db := newEnv(t)
	tr := dispatched(t, uc, db)
	ctx := context.Background()

	in := dto.ReceiveTransferRequest{ReceivedQty: qty("100"), IdempotencyKey: "recv-retry"}
	_, err := uc.ReceiveTransfer(ctx, tr.ID, bodegaB, in)
	require.NoError(t, err)

	_, err = uc.ReceiveTransfer(ctx, tr.ID, bodegaB, in)
	assert.ErrorIs(t, err, domain.ErrDuplicateIdempotencyKey)

	assert.True(t, onHand(db, whDestino, matCemento).Equal(qty("100")), "un solo crédito de stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes de extremo a extremo
// ──────────────────────────────────────────────────────────────────────────────

// El encadenamiento received + damaged <= shipped <= planned se cumple para todo
// traslado alcanzable por transiciones legales, y ningún saldo queda negativo.
func TestFlujoCompleto_Invariantes(t *testing.T) {
	uc, db := newEnv(t)
	ctx := context.Background()

	created, err := uc.CreateTransfer(ctx, operador, dto.CreateTransferRequest{
		FromWarehouseID: whOrigen,
		ToWarehouseID:   whDestino,
		MaterialID:      matCemento,
		PlannedQty:      qty("100"),
	})
	require.NoError(t, err)
	assignAll(t, uc, created.ID)
	seedStock(db, whOrigen, matCemento, "80")

	// Despacho parcial: shipped 80 < planned 100
	_, err = uc.DispatchTransfer(ctx, created.ID, bodegaA, dto.DispatchTransferRequest{
		ShippedQty:     qty("80"),
		IdempotencyKey: "disp-parcial",
	})
	require.NoError(t, err)

	// Recepción completa del despacho parcial: termina en discrepancy
	// porque shipped != planned (regla estricta de entrega fiel)
	out, err := uc.ReceiveTransfer(ctx, created.ID, bodegaB, dto.ReceiveTransferRequest{
		ReceivedQty:    qty("78"),
		DamagedQty:     qty("2"),
		IdempotencyKey: "recv-parcial",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDiscrepancy, out.Status)

	assert.True(t, out.ReceivedQty.Add(out.DamagedQty).LessThanOrEqual(out.ShippedQty))
	assert.True(t, out.ShippedQty.LessThanOrEqual(out.PlannedQty))
	assert.False(t, onHand(db, whOrigen, matCemento).IsNegative())
	assert.False(t, onHand(db, whDestino, matCemento).IsNegative())
	assert.True(t, onHand(db, whOrigen, matCemento).IsZero(), "80 - 80 = 0")
	assert.True(t, onHand(db, whDestino, matCemento).Equal(qty("78")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetTransfer_NoExiste(t *testing.T) {
	uc, _ := newEnv(t)
	_, err := uc.GetTransfer("t-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListEvents_OrdenDeInsercion(t *testing.T) {
	uc, db := newEnv(t)
	tr := dispatched(t, uc, db)

	out, err := uc.ListEvents(tr.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, entity.EventCreated, out.Items[0].EventType)
	assert.Equal(t, entity.EventAssigned, out.Items[1].EventType)
	assert.Equal(t, entity.EventPickupConfirmed, out.Items[2].EventType)
}

func TestListEvents_TrasladoInexistente(t *testing.T) {
	uc, _ := newEnv(t)
	_, err := uc.ListEvents("t-fantasma", 50, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
