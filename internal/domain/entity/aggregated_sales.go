package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregatedSalesBucket agrupa las ventas de un ítem dentro de una semana.
// MeanPriceSold es el promedio ponderado por cantidad; si la cantidad total
// del grupo es cero se reporta 0, nunca una división por cero.
type AggregatedSalesBucket struct {
	ItemID            string
	ItemName          string
	WeekStart         time.Time
	QuantitySoldTotal decimal.Decimal
	MeanPriceSold     decimal.Decimal
}
