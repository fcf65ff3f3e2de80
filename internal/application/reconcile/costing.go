package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// applyCosting recorre las filas — ya agrupadas por ítem y en orden
// cronológico estricto dentro de cada ítem — y ejecuta la recurrencia de
// costo promedio ponderado como un fold por ítem con estado explícito
// (costo anterior, cierre anterior, disponible anterior).
//
// El estado se reinicia en cada frontera de ítem comparando ItemID, nunca
// confiando en que "la tabla viene ordenada": dos ítems adyacentes jamás
// comparten recurrencia.
//
// Regla de transición:
//   - rank 0: BlendedCost = UnitCostSubmitted, StartingCost = 0.
//   - rank > 0: stock = cierre anterior (forzado a 0 si el disponible
//     anterior fue 0) y BlendedCost = mezcla ponderada de ese stock al costo
//     anterior con la producción nueva a su costo declarado. Denominador
//     cero ⇒ el costo se arrastra sin cambio (ver costing.BlendedUnitCost).
func applyCosting(rows []entity.ReconciledWeek) {
	var currentItem string
	var priorCost, priorClosing, priorAvailable decimal.Decimal
	rank := 0

	for i := range rows {
		r := &rows[i]
		if r.ItemID != currentItem {
			currentItem = r.ItemID
			priorCost = decimal.Zero
			priorClosing = decimal.Zero
			priorAvailable = decimal.Zero
			rank = 0
		}
		r.SequenceRank = rank

		if rank == 0 {
			r.PreviousAvailableBalance = decimal.Zero
			r.PreviousClosingBalance = decimal.Zero
			r.StartingCost = decimal.Zero
			r.BlendedCost = r.UnitCostSubmitted
		} else {
			r.PreviousAvailableBalance = priorAvailable
			stock := priorClosing
			if priorAvailable.IsZero() {
				stock = decimal.Zero
			}
			r.PreviousClosingBalance = stock
			r.StartingCost = priorCost
			r.BlendedCost = costing.BlendedUnitCost(stock, priorCost, r.QuantityProduced, r.UnitCostSubmitted)
		}

		priorCost = r.BlendedCost
		priorClosing = r.ClosingBalance
		priorAvailable = r.AvailableBalance
		rank++
	}
}
