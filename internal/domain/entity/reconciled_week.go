package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciledWeek es la entidad derivada central: una fila por (ítem, semana)
// con producción, ventas, saldos corridos y el costo promedio ponderado.
//
// Invariantes (dentro de un mismo ítem, semanas en orden cronológico):
//   - SequenceRank es un índice denso 0-based; el rank 0 es la primera semana
//     observada del ítem.
//   - OpeningBalance es la posición neta acumulada de la semana inmediatamente
//     anterior (producción corrida − venta corrida), nunca la de la actual.
//   - AvailableBalance = QuantityProduced + OpeningBalance.
//   - ClosingBalance   = AvailableBalance − QuantitySold.
//   - BlendedCost en rank 0 es UnitCostSubmitted; en rank > 0 mezcla el stock
//     arrastrado (valuado al BlendedCost anterior) con la producción nueva
//     (valuada a UnitCostSubmitted).
//   - StartingCost es el BlendedCost de la semana anterior del mismo ítem,
//     o 0 en rank 0.
type ReconciledWeek struct {
	ItemID            string
	ItemName          string
	WeekStart         time.Time
	QuantityProduced  decimal.Decimal
	UnitCostSubmitted decimal.Decimal
	QuantitySold      decimal.Decimal
	MeanPriceSold     decimal.Decimal

	RunningProduced  decimal.Decimal
	RunningSold      decimal.Decimal
	OpeningBalance   decimal.Decimal
	AvailableBalance decimal.Decimal
	ClosingBalance   decimal.Decimal

	SequenceRank             int
	PreviousAvailableBalance decimal.Decimal
	PreviousClosingBalance   decimal.Decimal
	BlendedCost              decimal.Decimal
	StartingCost             decimal.Decimal
}
