package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleTransaction es una venta individual tal como llega de la captura de datos.
// Puede haber muchas por (ItemID, semana); la fecha es la del día de la venta,
// no la semana contable.
type SaleTransaction struct {
	ItemID        string
	ItemName      string
	SaleDate      time.Time
	QuantitySold  decimal.Decimal
	UnitPriceSold decimal.Decimal
}
