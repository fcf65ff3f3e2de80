package entity

import "github.com/shopspring/decimal"

// SaleLedgerEntry es una venta individual anotada con el costo promedio
// vigente en su semana. Counter es un consecutivo global 1..N sobre todo el
// libro (no se reinicia por ítem), asignado tras ordenar por (ítem, fecha).
type SaleLedgerEntry struct {
	SaleTransaction
	BlendedCost decimal.Decimal
	Counter     int
}
