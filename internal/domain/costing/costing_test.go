package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Costeo-api/internal/domain/costing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la mezcla ponderada de costo unitario
// ──────────────────────────────────────────────────────────────────────────────

// Caso base: stock 40 a costo 2 más producción 50 a costo 3 deben mezclar a
// 230/90 exacto.
func TestBlendedUnitCost_MezclaExacta(t *testing.T) {
	got := costing.BlendedUnitCost(
		decimal.NewFromInt(40), decimal.NewFromInt(2),
		decimal.NewFromInt(50), decimal.NewFromInt(3),
	)
	want := decimal.NewFromInt(230).Div(decimal.NewFromInt(90))
	assert.True(t, want.Equal(got),
		"la mezcla de 40@2 con 50@3 debe ser 230/90, se obtuvo %s", got)
}

// Denominador cero: sin stock y sin producción nueva el costo anterior se
// arrastra sin cambio.
func TestBlendedUnitCost_DenominadorCeroArrastraCosto(t *testing.T) {
	prior := decimal.NewFromFloat(4.75)
	got := costing.BlendedUnitCost(decimal.Zero, prior, decimal.Zero, decimal.NewFromInt(99))
	assert.True(t, prior.Equal(got),
		"con denominador cero debe devolverse el costo anterior intacto, se obtuvo %s", got)
}

// Sin producción nueva la mezcla es el costo anterior (todo el peso está en
// el stock).
func TestBlendedUnitCost_SinProduccionNueva(t *testing.T) {
	got := costing.BlendedUnitCost(
		decimal.NewFromInt(100), decimal.NewFromInt(2),
		decimal.Zero, decimal.NewFromInt(7),
	)
	assert.True(t, decimal.NewFromInt(2).Equal(got))
}

// Sin stock la mezcla es el costo de la producción nueva.
func TestBlendedUnitCost_SinStock(t *testing.T) {
	got := costing.BlendedUnitCost(
		decimal.Zero, decimal.NewFromInt(5),
		decimal.NewFromInt(10), decimal.NewFromInt(7),
	)
	assert.True(t, decimal.NewFromInt(7).Equal(got))
}

// Convexidad: la mezcla de dos costos distintos queda estrictamente entre
// ambos cuando los dos pesos son positivos.
func TestBlendedUnitCost_QuedaEntreAmbosCostos(t *testing.T) {
	lo := decimal.NewFromInt(2)
	hi := decimal.NewFromInt(3)
	got := costing.BlendedUnitCost(decimal.NewFromInt(30), lo, decimal.NewFromInt(70), hi)

	assert.True(t, got.GreaterThan(lo), "la mezcla debe superar el costo menor")
	assert.True(t, got.LessThan(hi), "la mezcla debe ser menor que el costo mayor")
}
