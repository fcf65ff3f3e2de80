package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// buildWeeklyRows materializa una fila ReconciledWeek por registro de
// producción (left join contra las ventas agregadas: faltantes = 0), ordena
// por (ítem asc, semana asc) y calcula los acumulados y saldos.
//
// El saldo de apertura de una semana es la posición neta acumulada
// (producción corrida − venta corrida) de la fila cuya semana siguiente,
// según el calendario, es exactamente esta semana. Si esa fila no existe
// (primera semana del ítem, o hueco de calendario) la apertura es 0.
func buildWeeklyRows(
	cal *Calendar,
	production []entity.ProductionRecord,
	salesBuckets map[bucketKey]entity.AggregatedSalesBucket,
) []entity.ReconciledWeek {

	rows := make([]entity.ReconciledWeek, 0, len(production))
	for _, p := range production {
		row := entity.ReconciledWeek{
			ItemID:            p.ItemID,
			ItemName:          p.ItemName,
			WeekStart:         p.Week,
			QuantityProduced:  p.QuantityProduced,
			UnitCostSubmitted: p.UnitCostSubmitted,
			QuantitySold:      decimal.Zero,
			MeanPriceSold:     decimal.Zero,
		}
		if agg, ok := salesBuckets[bucketKey{itemID: p.ItemID, week: dateKey(p.Week)}]; ok {
			row.QuantitySold = agg.QuantitySoldTotal
			row.MeanPriceSold = agg.MeanPriceSold
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ItemID != rows[j].ItemID {
			return rows[i].ItemID < rows[j].ItemID
		}
		return rows[i].WeekStart.Before(rows[j].WeekStart)
	})

	// Acumulados por ítem (prefix sums); se reinician en cada cambio de ítem,
	// nunca cruzan de un ítem al siguiente.
	var currentItem string
	var runProduced, runSold decimal.Decimal
	for i := range rows {
		if rows[i].ItemID != currentItem {
			currentItem = rows[i].ItemID
			runProduced = decimal.Zero
			runSold = decimal.Zero
		}
		runProduced = runProduced.Add(rows[i].QuantityProduced)
		runSold = runSold.Add(rows[i].QuantitySold)
		rows[i].RunningProduced = runProduced
		rows[i].RunningSold = runSold
	}

	// Enlace "semana anterior": cada fila publica su posición neta acumulada
	// bajo la clave (ítem, semana siguiente). Filas cuya semana no está en el
	// calendario no publican enlace (quedan sin semana siguiente conocida).
	type netPosition struct {
		produced decimal.Decimal
		sold     decimal.Decimal
	}
	prevNet := make(map[bucketKey]netPosition, len(rows))
	for i := range rows {
		bucket, ok := cal.Resolve(rows[i].WeekStart)
		if !ok {
			continue
		}
		key := bucketKey{itemID: rows[i].ItemID, week: dateKey(bucket.NextWeekStart)}
		prevNet[key] = netPosition{produced: rows[i].RunningProduced, sold: rows[i].RunningSold}
	}

	for i := range rows {
		opening := decimal.Zero
		if prev, ok := prevNet[bucketKey{itemID: rows[i].ItemID, week: dateKey(rows[i].WeekStart)}]; ok {
			opening = prev.produced.Sub(prev.sold)
		}
		rows[i].OpeningBalance = opening
		rows[i].AvailableBalance = rows[i].QuantityProduced.Add(opening)
		rows[i].ClosingBalance = rows[i].AvailableBalance.Sub(rows[i].QuantitySold)
	}

	return rows
}
