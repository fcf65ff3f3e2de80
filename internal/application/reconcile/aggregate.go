package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// bucketKey identifica un grupo (ítem, semana) en los lookups del pipeline.
type bucketKey struct {
	itemID string
	week   string
}

// aggregateSales agrupa las ventas crudas por (ítem, inicio de semana) y
// calcula cantidad total y precio medio ponderado por cantidad.
//
// Ventas cuya fecha no existe en el calendario no tienen semana y quedan
// fuera de los grupos (el libro de ventas las descarta igualmente, así que
// ningún reporte las inventa).
//
// Un grupo cuyas ventas suman cantidad 0 reporta MeanPriceSold = 0 en lugar
// de propagar una división por cero.
func aggregateSales(cal *Calendar, sales []entity.SaleTransaction) map[bucketKey]entity.AggregatedSalesBucket {
	type accum struct {
		name   string
		week   entity.WeekBucket
		qty    decimal.Decimal
		amount decimal.Decimal // Σ cantidad·precio
	}
	groups := make(map[bucketKey]*accum)

	for _, s := range sales {
		bucket, ok := cal.Resolve(s.SaleDate)
		if !ok {
			continue
		}
		key := bucketKey{itemID: s.ItemID, week: dateKey(bucket.WeekStart)}
		g, exists := groups[key]
		if !exists {
			g = &accum{name: s.ItemName, week: bucket}
			groups[key] = g
		}
		g.qty = g.qty.Add(s.QuantitySold)
		g.amount = g.amount.Add(s.QuantitySold.Mul(s.UnitPriceSold))
	}

	out := make(map[bucketKey]entity.AggregatedSalesBucket, len(groups))
	for key, g := range groups {
		mean := decimal.Zero
		if !g.qty.IsZero() {
			mean = g.amount.Div(g.qty)
		}
		out[key] = entity.AggregatedSalesBucket{
			ItemID:            key.itemID,
			ItemName:          g.name,
			WeekStart:         g.week.WeekStart,
			QuantitySoldTotal: g.qty,
			MeanPriceSold:     mean,
		}
	}
	return out
}
