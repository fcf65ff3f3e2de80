package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// SummaryRowDTO una fila del resumen semanal por (ítem, semana).
type SummaryRowDTO struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Date              string          `json:"date"`
	Production        decimal.Decimal `json:"production"`
	PriceSubmitted    decimal.Decimal `json:"price_submitted"`
	SoldQty           decimal.Decimal `json:"sold_qty"`
	MeanPriceSold     decimal.Decimal `json:"mean_price_sold"`
	RunningSold       decimal.Decimal `json:"running_sold"`
	RunningProduction decimal.Decimal `json:"running_production"`
	Opening           decimal.Decimal `json:"opening"`
	Available         decimal.Decimal `json:"available"`
	Closing           decimal.Decimal `json:"closing"`
	Rank              int             `json:"rank"`
	StartRate         decimal.Decimal `json:"start_rate"`
	CloseRate         decimal.Decimal `json:"close_rate"`
}

// NewSummaryRowDTO mapea la entidad de dominio a la fila del reporte.
func NewSummaryRowDTO(w entity.ReconciledWeek) SummaryRowDTO {
	return SummaryRowDTO{
		ID:                w.ItemID,
		Name:              w.ItemName,
		Date:              w.WeekStart.Format("2006-01-02"),
		Production:        w.QuantityProduced,
		PriceSubmitted:    w.UnitCostSubmitted,
		SoldQty:           w.QuantitySold,
		MeanPriceSold:     w.MeanPriceSold,
		RunningSold:       w.RunningSold,
		RunningProduction: w.RunningProduced,
		Opening:           w.OpeningBalance,
		Available:         w.AvailableBalance,
		Closing:           w.ClosingBalance,
		Rank:              w.SequenceRank,
		StartRate:         w.StartingCost,
		CloseRate:         w.BlendedCost,
	}
}

// LedgerRowDTO una venta individual anotada con el costo vigente.
type LedgerRowDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	DateSold  string          `json:"date_sold"`
	SoldQty   decimal.Decimal `json:"sold_qty"`
	PriceSold decimal.Decimal `json:"price_sold"`
	CloseRate decimal.Decimal `json:"close_rate"`
	Counter   int             `json:"counter"`
}

// NewLedgerRowDTO mapea la entidad de dominio a la fila del libro.
func NewLedgerRowDTO(e entity.SaleLedgerEntry) LedgerRowDTO {
	return LedgerRowDTO{
		ID:        e.ItemID,
		Name:      e.ItemName,
		DateSold:  e.SaleDate.Format("2006-01-02"),
		SoldQty:   e.QuantitySold,
		PriceSold: e.UnitPriceSold,
		CloseRate: e.BlendedCost,
		Counter:   e.Counter,
	}
}

// RunTotals conteos de una corrida.
type RunTotals struct {
	SummaryRows int `json:"summary_rows"`
	LedgerRows  int `json:"ledger_rows"`
	Items       int `json:"items"`
}

// ReconcileResponse respuesta de una corrida: identificador para descargar
// los reportes, totales y previsualización de las primeras filas.
type ReconcileResponse struct {
	RunID          string          `json:"run_id"`
	CreatedAt      time.Time       `json:"created_at"`
	ExpiresAt      time.Time       `json:"expires_at"`
	Totals         RunTotals       `json:"totals"`
	SummaryPreview []SummaryRowDTO `json:"summary_preview"`
	LedgerPreview  []LedgerRowDTO  `json:"ledger_preview"`
}

// RunResponse metadatos de una corrida retenida.
type RunResponse struct {
	RunID     string    `json:"run_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Totals    RunTotals `json:"totals"`
}
