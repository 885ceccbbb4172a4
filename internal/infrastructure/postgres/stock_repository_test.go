package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptransfer "github.com/jhoicas/Traslados-api/internal/application/transfer"
	"github.com/jhoicas/Traslados-api/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Querier falso: emula la tabla stock_balances reconociendo las sentencias del
// repo (INSERT ... DO NOTHING, SELECT ... FOR UPDATE, upsert) sobre un mapa en
// memoria, y registra cada sentencia ejecutada para poder afirmar su orden.
// ──────────────────────────────────────────────────────────────────────────────

type stockRow struct {
	qty       decimal.Decimal
	updatedAt time.Time
}

type fakeStockQuerier struct {
	rows map[string]*stockRow
	log  []string
}

func newFakeStockQuerier() *fakeStockQuerier {
	return &fakeStockQuerier{rows: make(map[string]*stockRow)}
}

func key(args []any) string { return args[0].(string) + "/" + args[1].(string) }

func (q *fakeStockQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.log = append(q.log, sql)
	switch {
	case strings.Contains(sql, "DO NOTHING"):
		// materialización: crea la fila en cero solo si no existe
		if _, ok := q.rows[key(args)]; !ok {
			q.rows[key(args)] = &stockRow{qty: decimal.Zero, updatedAt: time.Now()}
		}
	case strings.Contains(sql, "DO UPDATE"):
		q.rows[key(args)] = &stockRow{qty: args[2].(decimal.Decimal), updatedAt: args[3].(time.Time)}
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (q *fakeStockQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.log = append(q.log, sql)
	row, ok := q.rows[key(args)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{warehouseID: args[0].(string), materialID: args[1].(string), row: row}
}

func (q *fakeStockQuerier) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	panic("no usado en estos tests")
}

type fakeRow struct {
	warehouseID, materialID string
	row                     *stockRow
	err                     error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.warehouseID
	*dest[1].(*string) = r.materialID
	*dest[2].(*decimal.Decimal) = r.row.qty
	*dest[3].(*time.Time) = r.row.updatedAt
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// El primer acceso con bloqueo a una pareja inexistente debe materializar la
// fila (INSERT ... ON CONFLICT DO NOTHING) ANTES del SELECT FOR UPDATE: un
// FOR UPDATE sobre fila inexistente no bloquea nada y dos transacciones
// concurrentes se pisarían el saldo inicial.
func TestGetForUpdate_MaterializaAntesDeBloquear(t *testing.T) {
	q := newFakeStockQuerier()
	repo := postgres.NewStockBalanceRepository(q)

	balance, err := repo.GetForUpdate("wh-1", "mat-1")
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.True(t, balance.OnHandQty.IsZero(), "pareja nueva nace en cero")

	require.Len(t, q.log, 2)
	assert.Contains(t, q.log[0], "ON CONFLICT (warehouse_id, material_id) DO NOTHING",
		"la primera sentencia debe materializar la fila")
	assert.Contains(t, q.log[1], "FOR UPDATE",
		"la segunda sentencia debe bloquear la fila ya materializada")
}

// Get es solo lectura: nunca debe materializar filas ni bloquear.
func TestGet_NoMaterializaNiBloquea(t *testing.T) {
	q := newFakeStockQuerier()
	repo := postgres.NewStockBalanceRepository(q)

	balance, err := repo.Get("wh-1", "mat-1")
	require.NoError(t, err)
	assert.True(t, balance.OnHandQty.IsZero(), "pareja sin fila equivale a cero")

	require.Len(t, q.log, 1)
	assert.NotContains(t, q.log[0], "INSERT")
	assert.NotContains(t, q.log[0], "FOR UPDATE")
	assert.Empty(t, q.rows, "Get no debe crear filas")
}

// Dos créditos sucesivos sobre una pareja que no existía deben acumularse:
// el segundo GetForUpdate encuentra la fila ya materializada y lee el saldo
// ya acreditado, en vez de partir de cero y pisar el primer crédito.
func TestLedger_DosPrimerosCreditosSeAcumulan(t *testing.T) {
	q := newFakeStockQuerier()
	repo := postgres.NewStockBalanceRepository(q)
	ledger := apptransfer.NewLedger(repo)

	now := time.Now()
	require.NoError(t, ledger.Credit("wh-destino", "mat-1", decimal.NewFromInt(100), now))
	require.NoError(t, ledger.Credit("wh-destino", "mat-1", decimal.NewFromInt(90), now))

	balance, err := repo.Get("wh-destino", "mat-1")
	require.NoError(t, err)
	assert.True(t, balance.OnHandQty.Equal(decimal.NewFromInt(190)),
		"los créditos deben sumar 190, no quedar en el último valor: %s", balance.OnHandQty)
}

// El débito sobre la fila materializada respeta el piso en cero.
func TestLedger_DebitoSobreFilaMaterializada(t *testing.T) {
	q := newFakeStockQuerier()
	repo := postgres.NewStockBalanceRepository(q)
	ledger := apptransfer.NewLedger(repo)

	now := time.Now()
	require.NoError(t, ledger.Credit("wh-origen", "mat-1", decimal.NewFromInt(50), now))

	err := ledger.Debit("wh-origen", "mat-1", decimal.NewFromInt(80), now)
	require.Error(t, err, "debitar más del saldo debe fallar")

	balance, err := repo.Get("wh-origen", "mat-1")
	require.NoError(t, err)
	assert.True(t, balance.OnHandQty.Equal(decimal.NewFromInt(50)),
		"un débito rechazado no debe tocar el saldo")
}
