package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionRecord es un registro semanal de producción capturado aguas arriba.
// Inmutable: una fila por (ItemID, Week), con Week alineada al inicio de semana.
type ProductionRecord struct {
	ItemID            string
	ItemName          string
	Week              time.Time
	QuantityProduced  decimal.Decimal
	UnitCostSubmitted decimal.Decimal
}
