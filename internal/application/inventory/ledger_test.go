package inventory_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/dto"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/inventory"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/repository"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/infrastructure/sqlstore"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Set(y int, m time.Month, d, h int) {
	c.t = time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

// newLedger abre un SQLite real en un directorio temporal y arma el caso de uso.
func newLedger(t *testing.T) (*inventory.LedgerUseCase, *fakeClock) {
	t.Helper()
	uc, clock, _ := newLedgerDB(t)
	return uc, clock
}

// newLedgerDB igual que newLedger pero expone la conexión para verificar la base directamente.
func newLedgerDB(t *testing.T) (*inventory.LedgerUseCase, *fakeClock, *sqlx.DB) {
	t.Helper()
	ctx := context.Background()
	store, err := sqlstore.Open(ctx, config.DBConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "deposito.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clock := &fakeClock{}
	clock.Set(2026, time.March, 10, 15)

	db := store.DB()
	return ledgerOver(db, sqlstore.NewTxRunner(db), clock), clock, db
}

func ledgerOver(db *sqlx.DB, tx inventory.TxRunner, clock *fakeClock) *inventory.LedgerUseCase {
	return inventory.NewLedgerUseCase(
		tx,
		sqlstore.NewProductRepository(db),
		sqlstore.NewMovementRepository(db),
		sqlstore.NewReportRepository(db),
		inventory.WithClock(clock.Now),
	)
}

// failingMovementsTx corre cada transacción real pero con un repositorio de movimientos
// cuyo Create falla, después de que el ajuste de cantidad ya se ejecutó.
type failingMovementsTx struct {
	inner inventory.TxRunner
	err   error
}

type failingMovements struct {
	repository.MovementRepository
	err error
}

func (f failingMovements) Create(context.Context, *entity.Movement) error { return f.err }

func (f *failingMovementsTx) Run(ctx context.Context, fn func(repository.ProductRepository, repository.MovementRepository) error) error {
	return f.inner.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		return fn(products, failingMovements{MovementRepository: movements, err: f.err})
	})
}

func register(t *testing.T, uc *inventory.LedgerUseCase, name string, qty int64, category string) int64 {
	t.Helper()
	id, err := uc.RegisterProduct(context.Background(), dto.RegisterProductInput{Name: name, Quantity: qty, Category: category})
	require.NoError(t, err)
	return id
}

func post(t *testing.T, uc *inventory.LedgerUseCase, id int64, kind string, qty int64) *entity.Movement {
	t.Helper()
	m, err := uc.PostMovement(context.Background(), dto.PostMovementInput{ProductID: id, Kind: kind, Quantity: qty})
	require.NoError(t, err)
	return m
}

// assertLedgerBalanced verifica que la cantidad del producto sea la suma con signo de todos sus
// movimientos. Lee el repositorio sin tope de filas, a diferencia de ListMovements.
func assertLedgerBalanced(t *testing.T, db *sqlx.DB, id int64) {
	t.Helper()
	ctx := context.Background()
	p, err := sqlstore.NewProductRepository(db).GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	movs, err := sqlstore.NewMovementRepository(db).List(ctx, repository.MovementQuery{ProductID: id})
	require.NoError(t, err)
	var sum int64
	for _, m := range movs {
		sum += m.Signed()
	}
	assert.Equal(t, p.Quantity, sum, "cantidad del producto %d fuera de balance", id)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro y movimientos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: registrar con stock crea exactamente un movimiento IN "initial stock".
func TestRegisterProduct_StockInicialCreaMovimiento(t *testing.T) {
	uc, clock := newLedger(t)
	ctx := context.Background()

	id := register(t, uc, "Widget", 5, "")

	p, err := uc.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "WIDGET", p.Name)
	assert.Equal(t, int64(5), p.Quantity)
	assert.True(t, clock.Now().Equal(p.CreatedAt))

	movs, err := uc.ListMovements(ctx, dto.MovementFilter{ProductID: id})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementIn, movs[0].Kind)
	assert.Equal(t, int64(5), movs[0].Quantity)
	assert.Equal(t, entity.InitialStockNote, movs[0].Note)
	assert.Equal(t, "WIDGET", movs[0].ProductName)
	assert.True(t, p.CreatedAt.Equal(movs[0].OccurredAt), "misma fecha que el alta")
}

// Caso 2: sin stock inicial no hay movimientos.
func TestRegisterProduct_SinStockNoCreaMovimiento(t *testing.T) {
	uc, _ := newLedger(t)
	id := register(t, uc, "tuerca", 0, "ferreteria")

	movs, err := uc.ListMovements(context.Background(), dto.MovementFilter{ProductID: id})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRegisterProduct_EntradaInvalida(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	_, err := uc.RegisterProduct(ctx, dto.RegisterProductInput{Name: "   "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.RegisterProduct(ctx, dto.RegisterProductInput{Name: "x", Quantity: -1})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	list, err := uc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list, "nada debe quedar registrado")
}

// Caso 3: salida de 3 sobre 5 deja 2 y agrega un segundo movimiento OUT/3.
func TestPostMovement_SalidaDescuentaStock(t *testing.T) {
	uc, clock, db := newLedgerDB(t)
	ctx := context.Background()
	id := register(t, uc, "Widget", 5, "")

	clock.Set(2026, time.March, 10, 16)
	m := post(t, uc, id, "OUT", 3)
	assert.NotZero(t, m.ID)
	assert.Equal(t, "WIDGET", m.ProductName)

	p, err := uc.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.Quantity)

	movs, err := uc.ListMovements(ctx, dto.MovementFilter{ProductID: id})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementOut, movs[0].Kind, "el más reciente primero")
	assert.Equal(t, int64(3), movs[0].Quantity)
	assertLedgerBalanced(t, db, id)
}

// Caso 4: una salida mayor al stock falla y no modifica nada.
func TestPostMovement_StockInsuficiente(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	id := register(t, uc, "Widget", 5, "")

	_, err := uc.PostMovement(ctx, dto.PostMovementInput{ProductID: id, Kind: "OUT", Quantity: 6})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	p, err := uc.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Quantity)

	movs, err := uc.ListMovements(ctx, dto.MovementFilter{ProductID: id})
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestPostMovement_Errores(t *testing.T) {
	uc, _, db := newLedgerDB(t)
	ctx := context.Background()
	id := register(t, uc, "Widget", 5, "")

	tests := []struct {
		name    string
		in      dto.PostMovementInput
		wantErr error
	}{
		{"producto inexistente", dto.PostMovementInput{ProductID: 999, Kind: "IN", Quantity: 1}, domain.ErrNotFound},
		{"tipo inválido", dto.PostMovementInput{ProductID: id, Kind: "AJUSTE", Quantity: 1}, domain.ErrInvalidInput},
		{"cantidad cero", dto.PostMovementInput{ProductID: id, Kind: "IN", Quantity: 0}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.PostMovementInput{ProductID: id, Kind: "OUT", Quantity: -2}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.PostMovement(ctx, tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
	assertLedgerBalanced(t, db, id)
}

// Caso 4b: si el alta del movimiento falla dentro de la transacción, el ajuste de cantidad se revierte.
func TestPostMovement_FallaAlGuardarMovimientoRevierteCantidad(t *testing.T) {
	_, clock, db := newLedgerDB(t)
	ctx := context.Background()
	ok := ledgerOver(db, sqlstore.NewTxRunner(db), clock)
	id := register(t, ok, "Widget", 5, "")

	boom := errors.New("disco lleno")
	broken := ledgerOver(db, &failingMovementsTx{inner: sqlstore.NewTxRunner(db), err: boom}, clock)
	for _, kind := range []string{"IN", "OUT"} {
		_, err := broken.PostMovement(ctx, dto.PostMovementInput{ProductID: id, Kind: kind, Quantity: 3})
		require.Error(t, err)
		assert.True(t, errors.Is(err, boom), "got %v", err)
	}

	p, err := ok.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.Quantity)
	movs, err := ok.ListMovements(ctx, dto.MovementFilter{ProductID: id})
	require.NoError(t, err)
	assert.Len(t, movs, 1)
	assertLedgerBalanced(t, db, id)
}

func TestPostMovement_TipoEnMinusculasYNota(t *testing.T) {
	uc, _ := newLedger(t)
	id := register(t, uc, "Widget", 0, "")

	m, err := uc.PostMovement(context.Background(), dto.PostMovementInput{
		ProductID: id, Kind: " in ", Quantity: 4, Note: "  compra proveedor  ",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementIn, m.Kind)
	assert.Equal(t, "compra proveedor", m.Note, "las notas no se pasan a mayúsculas")
}

// Caso 5: después de cualquier secuencia la cantidad sigue igual a la suma de movimientos.
func TestLedger_CantidadIgualSumaDeMovimientos(t *testing.T) {
	uc, _, db := newLedgerDB(t)
	ctx := context.Background()
	a := register(t, uc, "Martillo", 10, "herramientas")
	b := register(t, uc, "Clavo", 0, "ferreteria")

	steps := []struct {
		id      int64
		kind    string
		qty     int64
		wantErr error
	}{
		{a, "OUT", 4, nil},                         // 6
		{b, "IN", 100, nil},                        // 100
		{a, "IN", 7, nil},                          // 13
		{b, "OUT", 99, nil},                        // 1
		{a, "OUT", 13, nil},                        // 0
		{b, "OUT", 2, domain.ErrInsufficientStock}, // sigue en 1
		{b, "IN", 1, nil},                          // 2
		{a, "OUT", 1, domain.ErrInsufficientStock}, // sigue en 0
		{b, "OUT", 2, nil},                         // 0
		{a, "AJUSTE", 1, domain.ErrInvalidInput},   // sin cambios
	}
	for i, s := range steps {
		_, err := uc.PostMovement(ctx, dto.PostMovementInput{ProductID: s.id, Kind: s.kind, Quantity: s.qty})
		if s.wantErr == nil {
			require.NoError(t, err, "paso %d", i)
		} else {
			require.Error(t, err, "paso %d", i)
			assert.True(t, errors.Is(err, s.wantErr), "paso %d: got %v", i, err)
		}
		assertLedgerBalanced(t, db, a)
		assertLedgerBalanced(t, db, b)
	}

	pa, err := uc.FindProduct(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pa.Quantity)
	pb, err := uc.FindProduct(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pb.Quantity)
}

// Caso 5b: el balance se verifica sobre todos los movimientos, aunque superen el tope del listado.
func TestLedger_BalanceConMasMovimientosQueElTope(t *testing.T) {
	uc, _, db := newLedgerDB(t)
	ctx := context.Background()
	id := register(t, uc, "Tornillo", 1, "ferreteria")
	for i := 0; i < inventory.MovementListLimit+10; i++ {
		post(t, uc, id, "IN", 1)
	}

	movs, err := uc.ListMovements(ctx, dto.MovementFilter{ProductID: id})
	require.NoError(t, err)
	assert.Len(t, movs, inventory.MovementListLimit)

	p, err := uc.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(inventory.MovementListLimit+11), p.Quantity)
	assertLedgerBalanced(t, db, id)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición y consultas de productos
// ──────────────────────────────────────────────────────────────────────────────

// Caso 6: editar la categoría nunca cambia la cantidad.
func TestUpdateProductFields_NoCambiaCantidad(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	id := register(t, uc, "Widget", 5, "varios")

	cat := "tools"
	require.NoError(t, uc.UpdateProductFields(ctx, id, entity.ProductFields{Category: &cat}))

	p, err := uc.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "TOOLS", p.Category)
	assert.Equal(t, "WIDGET", p.Name)
	assert.Equal(t, int64(5), p.Quantity)
}

func TestUpdateProductFields_Errores(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	id := register(t, uc, "Widget", 5, "")
	loc := "A-1"
	blank := "  "

	err := uc.UpdateProductFields(ctx, id, entity.ProductFields{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "sin campos")

	err = uc.UpdateProductFields(ctx, id, entity.ProductFields{Name: &blank})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "nombre vacío")

	err = uc.UpdateProductFields(ctx, 999, entity.ProductFields{Location: &loc})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFindProduct_NoExiste(t *testing.T) {
	uc, _ := newLedger(t)
	_, err := uc.FindProduct(context.Background(), 42)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListProducts_FiltroYOrden(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	register(t, uc, "sierra", 1, "herramientas")
	register(t, uc, "Alicate", 2, "Herramientas")
	register(t, uc, "Cemento", 3, "obra")

	all, err := uc.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"ALICATE", "CEMENTO", "SIERRA"}, names(all))

	tools, err := uc.ListProducts(ctx, " herramientas ")
	require.NoError(t, err)
	assert.Equal(t, []string{"ALICATE", "SIERRA"}, names(tools))

	none, err := uc.ListProducts(ctx, "herra")
	require.NoError(t, err)
	assert.Empty(t, none, "la categoría se compara por igualdad")
}

func TestSearchProductsByName(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	register(t, uc, "Tornillo 3/8", 1, "")
	register(t, uc, "tornillo 100%", 1, "")
	register(t, uc, "Arandela", 1, "")

	got, err := uc.SearchProductsByName(ctx, "tornillo")
	require.NoError(t, err)
	assert.Equal(t, []string{"TORNILLO 100%", "TORNILLO 3/8"}, names(got))

	got, err = uc.SearchProductsByName(ctx, "0%")
	require.NoError(t, err)
	assert.Equal(t, []string{"TORNILLO 100%"}, names(got), "% se busca literal")

	got, err = uc.SearchProductsByName(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial y reportes
// ──────────────────────────────────────────────────────────────────────────────

// Caso 7: el rango de fechas es inclusivo por día y excluye lo que queda fuera.
func TestListMovements_RangoDeFechasInclusivo(t *testing.T) {
	uc, clock := newLedger(t)
	ctx := context.Background()

	clock.Set(2026, time.March, 1, 9)
	id := register(t, uc, "Widget", 1, "")
	clock.Set(2026, time.March, 2, 0)
	post(t, uc, id, "IN", 2)
	clock.t = time.Date(2026, time.March, 3, 23, 59, 59, 0, time.UTC)
	post(t, uc, id, "IN", 3)
	clock.Set(2026, time.March, 4, 0)
	post(t, uc, id, "IN", 4)

	from := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC) // la hora se ignora
	movs, err := uc.ListMovements(ctx, dto.MovementFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, int64(3), movs[0].Quantity)
	assert.Equal(t, int64(2), movs[1].Quantity)

	onlyFrom, err := uc.ListMovements(ctx, dto.MovementFilter{From: &to})
	require.NoError(t, err)
	assert.Len(t, onlyFrom, 2, "3 y 4 de marzo")

	_, err = uc.ListMovements(ctx, dto.MovementFilter{From: &to, To: &from})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Caso 8: el historial se corta en 500 filas aunque existan más.
func TestListMovements_TopeDeFilas(t *testing.T) {
	uc, clock := newLedger(t)
	ctx := context.Background()
	id := register(t, uc, "Widget", 0, "")

	for i := 0; i < inventory.MovementListLimit+20; i++ {
		clock.t = clock.t.Add(time.Second)
		post(t, uc, id, "IN", 1)
	}

	movs, err := uc.ListMovements(ctx, dto.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, movs, inventory.MovementListLimit)
	assert.True(t, movs[0].OccurredAt.After(movs[len(movs)-1].OccurredAt))

	p, err := uc.FindProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(inventory.MovementListLimit+20), p.Quantity)
}

// Caso 9: stock bajo incluye <= umbral, excluye 11 y ordena por cantidad.
func TestLowStock(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()
	register(t, uc, "Once", 11, "")
	register(t, uc, "Diez", 10, "")
	register(t, uc, "Cero", 0, "")
	register(t, uc, "Tres", 3, "")

	list, err := uc.LowStock(ctx, inventory.DefaultLowStockThreshold)
	require.NoError(t, err)
	assert.Equal(t, []string{"CERO", "TRES", "DIEZ"}, names(list))

	_, err = uc.LowStock(ctx, -1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	inStock, err := uc.InStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"DIEZ", "ONCE", "TRES"}, names(inStock))
}

// Caso 10: el resumen suma todas las cantidades y agrupa por categoría, incluida la vacía.
func TestStockSummary(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	empty, err := uc.StockSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.TotalProducts)
	assert.Equal(t, int64(0), empty.TotalUnits)
	assert.Empty(t, empty.PerCategory)

	register(t, uc, "Martillo", 4, "herramientas")
	register(t, uc, "Sierra", 6, "herramientas")
	register(t, uc, "Suelto", 5, "")

	s, err := uc.StockSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), s.TotalProducts)
	assert.Equal(t, int64(15), s.TotalUnits)
	assert.Equal(t, []entity.CategoryTotals{
		{Category: "", ProductCount: 1, UnitCount: 5},
		{Category: "HERRAMIENTAS", ProductCount: 2, UnitCount: 10},
	}, s.PerCategory)
}

// Caso 11: la actividad anual solo cuenta movimientos de los últimos 365 días.
func TestTrailingYearActivity(t *testing.T) {
	uc, clock := newLedger(t)
	ctx := context.Background()

	clock.Set(2024, time.January, 5, 10)
	viejo := register(t, uc, "Viejo", 8, "")
	id := register(t, uc, "Widget", 10, "")

	clock.Set(2026, time.February, 1, 10)
	post(t, uc, id, "OUT", 4)
	post(t, uc, id, "IN", 1)
	post(t, uc, viejo, "OUT", 1)

	clock.Set(2026, time.March, 10, 15)
	list, err := uc.TrailingYearActivity(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "VIEJO", list[0].Name)
	assert.Equal(t, int64(0), list[0].TotalIn, "el alta de 2024 queda fuera de la ventana")
	assert.Equal(t, int64(1), list[0].TotalOut)
	assert.Equal(t, int64(7), list[0].Quantity)

	assert.Equal(t, "WIDGET", list[1].Name)
	assert.Equal(t, int64(1), list[1].TotalIn)
	assert.Equal(t, int64(4), list[1].TotalOut)
	assert.Equal(t, int64(7), list[1].Quantity)
}

func names(list []*entity.Product) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Name)
	}
	return out
}
