package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/dto"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/entity"
	domaininv "github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/inventory"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/domain/repository"
)

const (
	// MovementListLimit tope de filas del historial; para ver más hay que acotar filtros.
	MovementListLimit = 500
	// DefaultLowStockThreshold umbral de stock bajo por defecto.
	DefaultLowStockThreshold int64 = 10
	// trailingYearDays ventana del reporte de actividad anual.
	trailingYearDays = 365
)

// LedgerUseCase libro de existencias: único dueño de las lecturas y escrituras de productos y movimientos.
// La cantidad de cada producto siempre es la suma con signo de sus movimientos.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	reportRepo  repository.ReportRepository
	now         func() time.Time
}

// Option configura el caso de uso.
type Option func(*LedgerUseCase)

// WithClock reemplaza el reloj (tests). La zona del reloj define los días de los filtros por fecha.
func WithClock(now func() time.Time) Option {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	reportRepo repository.ReportRepository,
	opts ...Option,
) *LedgerUseCase {
	uc := &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		reportRepo:  reportRepo,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Now hora actual según el reloj del libro.
func (uc *LedgerUseCase) Now() time.Time {
	return uc.now()
}

// RegisterProduct registra un producto. Si Quantity > 0 agrega en la misma transacción
// un movimiento IN "initial stock" con la misma fecha de alta.
func (uc *LedgerUseCase) RegisterProduct(ctx context.Context, in dto.RegisterProductInput) (int64, error) {
	name := domaininv.NormalizeText(in.Name)
	if name == "" {
		return 0, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return 0, fmt.Errorf("%w: la cantidad inicial no puede ser negativa", domain.ErrInvalidInput)
	}

	now := uc.now()
	p := &entity.Product{
		Name:        name,
		Description: domaininv.NormalizeText(in.Description),
		Category:    domaininv.NormalizeText(in.Category),
		Location:    domaininv.NormalizeText(in.Location),
		Quantity:    in.Quantity,
		CreatedAt:   now,
	}
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		if err := products.Create(ctx, p); err != nil {
			return err
		}
		if p.Quantity == 0 {
			return nil
		}
		return movements.Create(ctx, &entity.Movement{
			ProductID:  p.ID,
			Kind:       entity.MovementIn,
			Quantity:   p.Quantity,
			OccurredAt: now,
			Note:       entity.InitialStockNote,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("register product: %w", err)
	}
	return p.ID, nil
}

// ListProducts lista productos por nombre. category vacía = todos; si no, igualdad exacta tras normalizar.
func (uc *LedgerUseCase) ListProducts(ctx context.Context, category string) ([]*entity.Product, error) {
	return uc.productRepo.List(ctx, domaininv.NormalizeText(category))
}

// FindProduct busca por ID. ErrNotFound si no existe.
func (uc *LedgerUseCase) FindProduct(ctx context.Context, id int64) (*entity.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return p, nil
}

// SearchProductsByName busca por subcadena del nombre (normalizada igual que los nombres guardados).
func (uc *LedgerUseCase) SearchProductsByName(ctx context.Context, substring string) ([]*entity.Product, error) {
	return uc.productRepo.SearchByName(ctx, domaininv.NormalizeText(substring))
}

// UpdateProductFields edita nombre, descripción, categoría o ubicación. La cantidad no es editable.
// ErrInvalidInput si no se pidió ningún campo o el nombre queda vacío; ErrNotFound si el producto no existe.
func (uc *LedgerUseCase) UpdateProductFields(ctx context.Context, id int64, fields entity.ProductFields) error {
	if fields.Empty() {
		return fmt.Errorf("%w: no se indicó ningún campo a modificar", domain.ErrInvalidInput)
	}
	norm := entity.ProductFields{
		Name:        normalizePtr(fields.Name),
		Description: normalizePtr(fields.Description),
		Category:    normalizePtr(fields.Category),
		Location:    normalizePtr(fields.Location),
	}
	if norm.Name != nil && *norm.Name == "" {
		return fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
	}
	n, err := uc.productRepo.UpdateFields(ctx, id, norm)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return nil
}

// PostMovement registra una entrada o salida. En una sola transacción lee el producto (bloqueado),
// verifica que una salida no supere el stock, ajusta la cantidad y agrega el movimiento.
func (uc *LedgerUseCase) PostMovement(ctx context.Context, in dto.PostMovementInput) (*entity.Movement, error) {
	kind := entity.MovementKind(strings.ToUpper(strings.TrimSpace(in.Kind)))
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de movimiento %q (IN|OUT)", domain.ErrInvalidInput, in.Kind)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.ProductID <= 0 {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
	}

	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		p, err := products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
		}
		next, err := domaininv.NextQuantity(p.Quantity, kind, in.Quantity)
		if err != nil {
			return err
		}
		n, err := products.AdjustQuantity(ctx, p.ID, next-p.Quantity)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: producto %d", domain.ErrNotFound, in.ProductID)
		}
		mov = &entity.Movement{
			ProductID:   p.ID,
			Kind:        kind,
			Quantity:    in.Quantity,
			OccurredAt:  uc.now(),
			Note:        domaininv.NormalizeNote(in.Note),
			ProductName: p.Name,
		}
		return movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, fmt.Errorf("post movement: %w", err)
	}
	return mov, nil
}

// ListMovements historial con el nombre del producto, del más reciente al más antiguo, hasta MovementListLimit filas.
// From y To se interpretan como días de calendario (inclusivos) en la zona del reloj.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, f dto.MovementFilter) ([]*entity.Movement, error) {
	loc := uc.now().Location()
	q := repository.MovementQuery{ProductID: f.ProductID, Limit: MovementListLimit}
	if f.From != nil {
		from := startOfDay(*f.From, loc)
		q.From = &from
	}
	if f.To != nil {
		to := startOfDay(*f.To, loc).AddDate(0, 0, 1)
		q.To = &to
	}
	if q.From != nil && q.To != nil && !q.From.Before(*q.To) {
		return nil, fmt.Errorf("%w: la fecha desde es posterior a la fecha hasta", domain.ErrInvalidInput)
	}
	return uc.movRepo.List(ctx, q)
}

// LowStock productos con cantidad <= threshold, de menor a mayor.
func (uc *LedgerUseCase) LowStock(ctx context.Context, threshold int64) ([]*entity.Product, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: el umbral no puede ser negativo", domain.ErrInvalidInput)
	}
	return uc.productRepo.ListLowStock(ctx, threshold)
}

// InStock productos con existencias, por nombre.
func (uc *LedgerUseCase) InStock(ctx context.Context) ([]*entity.Product, error) {
	return uc.productRepo.ListInStock(ctx)
}

// StockSummary total de productos, total de unidades y subtotales por categoría.
func (uc *LedgerUseCase) StockSummary(ctx context.Context) (*entity.StockSummary, error) {
	return uc.reportRepo.Summary(ctx)
}

// Activity entradas y salidas por producto desde el día since (inclusive).
func (uc *LedgerUseCase) Activity(ctx context.Context, since time.Time) ([]*entity.ProductActivity, error) {
	return uc.reportRepo.Activity(ctx, startOfDay(since, uc.now().Location()))
}

// TrailingYearActivity actividad de los últimos 365 días.
func (uc *LedgerUseCase) TrailingYearActivity(ctx context.Context) ([]*entity.ProductActivity, error) {
	return uc.Activity(ctx, uc.TrailingYearStart())
}

// TrailingYearStart primer día de la ventana anual.
func (uc *LedgerUseCase) TrailingYearStart() time.Time {
	now := uc.now()
	return startOfDay(now, now.Location()).AddDate(0, 0, -trailingYearDays)
}

// startOfDay toma la fecha de calendario de t (tal como viene) y devuelve su medianoche en loc.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func normalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := domaininv.NormalizeText(*s)
	return &v
}
