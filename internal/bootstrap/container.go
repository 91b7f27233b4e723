// Package bootstrap arma el grafo de dependencias compartido por la API y la CLI.
package bootstrap

import (
	"context"

	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/inventory"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/maintenance"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/application/report"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/infrastructure/markdown"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/infrastructure/pdf"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/infrastructure/sqlstore"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/internal/infrastructure/xlsx"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/config"
	"github.com/FelipeSBz/SISTEMA-DE-GERENCIAMENTO-DE-DEPOSITO/pkg/logger"
)

// Container casos de uso listos para usar sobre un almacén abierto.
type Container struct {
	Store   *sqlstore.Store
	Ledger  *inventory.LedgerUseCase
	Reports *report.ReportUseCase
	Backup  *maintenance.BackupUseCase
}

// Open abre el almacén (creando el esquema si falta) y construye los casos de uso.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...inventory.Option) (*Container, error) {
	store, err := sqlstore.Open(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	db := store.DB()
	ledger := inventory.NewLedgerUseCase(
		sqlstore.NewTxRunner(db),
		sqlstore.NewProductRepository(db),
		sqlstore.NewMovementRepository(db),
		sqlstore.NewReportRepository(db),
		opts...,
	)
	reports := report.NewReportUseCase(
		ledger,
		pdf.NewMarotoReportGenerator(),
		xlsx.NewExcelizeGenerator(),
		markdown.NewRenderer(),
		cfg.Ledger.LowStockThreshold,
	)

	return &Container{
		Store:   store,
		Ledger:  ledger,
		Reports: reports,
		Backup:  maintenance.NewBackupUseCase(store, ledger.Now),
	}, nil
}

// Close cierra el almacén.
func (c *Container) Close() error {
	return c.Store.Close()
}
