// Package costing implementa el servicio de dominio de costo promedio
// ponderado móvil: el costo unitario de cada período es la mezcla, ponderada
// por cantidad, del stock arrastrado (valuado al costo del período anterior)
// y la producción nueva (valuada a su costo declarado).
package costing

import "github.com/shopspring/decimal"

// BlendedUnitCost calcula el costo promedio ponderado de un período:
//
//	NuevoCosto = (Stock*CostoAnterior + Producción*CostoDeclarado) / (Stock + Producción)
//
// Caso degenerado: si Stock + Producción = 0 la fórmula es 0/0; la política
// es arrastrar el costo anterior sin cambio (no hay stock nuevo que lo mueva).
func BlendedUnitCost(stock, priorCost, newQty, newCost decimal.Decimal) decimal.Decimal {
	total := stock.Add(newQty)
	if total.IsZero() {
		return priorCost
	}
	num := stock.Mul(priorCost).Add(newQty.Mul(newCost))
	return num.Div(total)
}
