package reconcile

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// annotateLedger une cada venta individual con el costo promedio de su
// (ítem, semana) en el resumen conciliado. Es un inner join: ventas sin
// semana resoluble o sin fila conciliada correspondiente se descartan por
// política, no por error (una venta en una semana sin registro del lado de
// producción no tiene costo vigente que anotar).
//
// Las filas retenidas se ordenan por (ítem asc, fecha de venta asc) con
// orden estable y reciben un consecutivo global 1..N.
func annotateLedger(
	cal *Calendar,
	sales []entity.SaleTransaction,
	summary []entity.ReconciledWeek,
) []entity.SaleLedgerEntry {

	costByWeek := make(map[bucketKey]decimal.Decimal, len(summary))
	for _, w := range summary {
		costByWeek[bucketKey{itemID: w.ItemID, week: dateKey(w.WeekStart)}] = w.BlendedCost
	}

	entries := make([]entity.SaleLedgerEntry, 0, len(sales))
	for _, s := range sales {
		bucket, ok := cal.Resolve(s.SaleDate)
		if !ok {
			continue
		}
		cost, ok := costByWeek[bucketKey{itemID: s.ItemID, week: dateKey(bucket.WeekStart)}]
		if !ok {
			continue
		}
		entries = append(entries, entity.SaleLedgerEntry{
			SaleTransaction: s,
			BlendedCost:     cost,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ItemID != entries[j].ItemID {
			return entries[i].ItemID < entries[j].ItemID
		}
		return entries[i].SaleDate.Before(entries[j].SaleDate)
	})

	for i := range entries {
		entries[i].Counter = i + 1
	}
	return entries
}
