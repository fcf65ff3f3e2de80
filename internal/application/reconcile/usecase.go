// Package reconcile implementa el pipeline de conciliación semanal:
// bucketing de calendario, agregación de ventas, saldos corridos, recurrencia
// de costo promedio ponderado y libro de ventas anotado.
//
// El pipeline es batch y sin estado: consume los tres lotes de entrada
// completos y produce los dos reportes completos; nada persiste entre
// corridas. Cada etapa toma valores y devuelve valores nuevos, sin tabla
// mutable compartida.
package reconcile

import (
	"context"
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

// Input son los tres lotes de entrada de una corrida.
type Input struct {
	Production []entity.ProductionRecord
	Sales      []entity.SaleTransaction
	Calendar   []entity.CalendarEntry
}

// Result son los dos reportes de una corrida exitosa; siempre se emiten
// juntos (no existe salida parcial).
type Result struct {
	Summary []entity.ReconciledWeek
	Ledger  []entity.SaleLedgerEntry
}

// UseCase orquesta las etapas del pipeline de conciliación.
type UseCase struct {
	log *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(log *logger.Logger) *UseCase {
	return &UseCase{log: log}
}

// Reconcile ejecuta el pipeline completo sobre un lote de entrada.
//
// Orden de etapas: calendario → agregación de ventas → filas semanales con
// saldos → recurrencia de costeo → libro de ventas. El único orden que
// importa es el cronológico dentro de cada ítem (lo garantiza
// buildWeeklyRows); los ítems entre sí son independientes.
func (uc *UseCase) Reconcile(_ context.Context, in Input) (*Result, error) {
	start := time.Now()

	cal := NewCalendar(in.Calendar)
	salesBuckets := aggregateSales(cal, in.Sales)
	summary := buildWeeklyRows(cal, in.Production, salesBuckets)
	applyCosting(summary)
	ledger := annotateLedger(cal, in.Sales, summary)

	uc.log.Info().
		Int("production_rows", len(in.Production)).
		Int("sales_rows", len(in.Sales)).
		Int("calendar_rows", len(in.Calendar)).
		Int("summary_rows", len(summary)).
		Int("ledger_rows", len(ledger)).
		Dur("elapsed", time.Since(start)).
		Msg("corrida de conciliación completada")

	return &Result{Summary: summary, Ledger: ledger}, nil
}
