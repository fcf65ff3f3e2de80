package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/application/reconcile"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func testUseCase() *reconcile.UseCase {
	return reconcile.NewUseCase(logger.New(logger.Config{Env: "development", Level: "error"}))
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err, "fecha de test mal escrita: %s", s)
	return d
}

func num(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func prodRow(t *testing.T, id, name, week string, qty, cost int64) entity.ProductionRecord {
	t.Helper()
	return entity.ProductionRecord{
		ItemID:            id,
		ItemName:          name,
		Week:              day(t, week),
		QuantityProduced:  num(qty),
		UnitCostSubmitted: num(cost),
	}
}

func saleRow(t *testing.T, id, name, date string, qty, price int64) entity.SaleTransaction {
	t.Helper()
	return entity.SaleTransaction{
		ItemID:        id,
		ItemName:      name,
		SaleDate:      day(t, date),
		QuantitySold:  num(qty),
		UnitPriceSold: num(price),
	}
}

// calWeek genera las entradas de calendario que mapean cada fecha dada al
// mismo inicio de semana.
func calWeek(t *testing.T, weekStart string, dates ...string) []entity.CalendarEntry {
	t.Helper()
	entries := make([]entity.CalendarEntry, 0, len(dates)+1)
	entries = append(entries, entity.CalendarEntry{Date: day(t, weekStart), WeekStart: day(t, weekStart)})
	for _, d := range dates {
		entries = append(entries, entity.CalendarEntry{Date: day(t, d), WeekStart: day(t, weekStart)})
	}
	return entries
}

func assertDec(t *testing.T, want, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, want.Equal(got), "%s: se esperaba %s, se obtuvo %s", msg, want, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario de tres semanas: saldos, acumulados y recurrencia de costo
// ──────────────────────────────────────────────────────────────────────────────

// Un ítem con producción en tres semanas y ventas solo en la segunda:
//
//	sem 1: produce 100 a costo 2           → costo 2
//	sem 2: no produce, vende 60            → costo sigue en 2
//	sem 3: produce 50 a costo 3            → mezcla (40·2 + 50·3)/90
func TestReconcile_EscenarioTresSemanas(t *testing.T) {
	var cal []entity.CalendarEntry
	cal = append(cal, calWeek(t, "2024-01-01")...)
	cal = append(cal, calWeek(t, "2024-01-08", "2024-01-09", "2024-01-10")...)
	cal = append(cal, calWeek(t, "2024-01-15")...)

	in := reconcile.Input{
		Production: []entity.ProductionRecord{
			prodRow(t, "A", "Arepa", "2024-01-01", 100, 2),
			prodRow(t, "A", "Arepa", "2024-01-08", 0, 0),
			prodRow(t, "A", "Arepa", "2024-01-15", 50, 3),
		},
		Sales: []entity.SaleTransaction{
			saleRow(t, "A", "Arepa", "2024-01-09", 30, 10),
			saleRow(t, "A", "Arepa", "2024-01-10", 30, 12),
		},
		Calendar: cal,
	}

	result, err := testUseCase().Reconcile(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, result.Summary, 3, "debe haber una fila por semana de producción")

	w1, w2, w3 := result.Summary[0], result.Summary[1], result.Summary[2]

	// Semana 1: primera aparición del ítem.
	assert.Equal(t, 0, w1.SequenceRank)
	assertDec(t, decimal.Zero, w1.OpeningBalance, "apertura sem 1")
	assertDec(t, num(100), w1.AvailableBalance, "disponible sem 1")
	assertDec(t, num(100), w1.ClosingBalance, "cierre sem 1")
	assertDec(t, decimal.Zero, w1.StartingCost, "costo inicial sem 1")
	assertDec(t, num(2), w1.BlendedCost, "costo sem 1")

	// Semana 2: vende 60, el costo no cambia porque no entra producción.
	assert.Equal(t, 1, w2.SequenceRank)
	assertDec(t, num(60), w2.QuantitySold, "venta sem 2")
	assertDec(t, num(11), w2.MeanPriceSold, "precio medio sem 2 (300+360)/60")
	assertDec(t, num(100), w2.OpeningBalance, "apertura sem 2")
	assertDec(t, num(100), w2.AvailableBalance, "disponible sem 2")
	assertDec(t, num(40), w2.ClosingBalance, "cierre sem 2")
	assertDec(t, num(100), w2.PreviousAvailableBalance, "disponible anterior sem 2")
	assertDec(t, num(100), w2.PreviousClosingBalance, "cierre anterior sem 2")
	assertDec(t, num(2), w2.StartingCost, "costo inicial sem 2")
	assertDec(t, num(2), w2.BlendedCost, "costo sem 2")

	// Semana 3: mezcla del stock remanente con la producción nueva.
	assert.Equal(t, 2, w3.SequenceRank)
	assertDec(t, num(40), w3.OpeningBalance, "apertura sem 3")
	assertDec(t, num(90), w3.AvailableBalance, "disponible sem 3")
	assertDec(t, num(90), w3.ClosingBalance, "cierre sem 3")
	assertDec(t, num(40), w3.PreviousClosingBalance, "cierre anterior sem 3")
	assertDec(t, num(2), w3.StartingCost, "costo inicial sem 3")
	assertDec(t, num(230).Div(num(90)), w3.BlendedCost, "costo sem 3 = (40·2+50·3)/90")

	// Acumulados crecientes dentro del ítem.
	assertDec(t, num(100), w2.RunningProduced, "producción corrida sem 2")
	assertDec(t, num(150), w3.RunningProduced, "producción corrida sem 3")
	assertDec(t, num(60), w3.RunningSold, "venta corrida sem 3")

	// Libro de ventas: las dos ventas de la semana 2 anotadas al costo 2,
	// consecutivo global 1..N en orden cronológico.
	require.Len(t, result.Ledger, 2)
	assert.Equal(t, 1, result.Ledger[0].Counter)
	assert.Equal(t, 2, result.Ledger[1].Counter)
	assert.True(t, result.Ledger[0].SaleDate.Before(result.Ledger[1].SaleDate))
	assertDec(t, num(2), result.Ledger[0].BlendedCost, "costo anotado venta 1")
	assertDec(t, num(2), result.Ledger[1].BlendedCost, "costo anotado venta 2")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fronteras de ítem
// ──────────────────────────────────────────────────────────────────────────────

// Dos ítems adyacentes jamás comparten recurrencia: el segundo arranca en
// rank 0 con apertura 0 aunque el primero termine con saldo y costo altos.
func TestReconcile_ItemsIndependientes(t *testing.T) {
	var cal []entity.CalendarEntry
	cal = append(cal, calWeek(t, "2024-01-01")...)
	cal = append(cal, calWeek(t, "2024-01-08")...)

	in := reconcile.Input{
		Production: []entity.ProductionRecord{
			prodRow(t, "A", "Arepa", "2024-01-01", 500, 9),
			prodRow(t, "A", "Arepa", "2024-01-08", 100, 9),
			prodRow(t, "B", "Buñuelo", "2024-01-08", 10, 5),
		},
		Calendar: cal,
	}

	result, err := testUseCase().Reconcile(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, result.Summary, 3)

	b := result.Summary[2]
	require.Equal(t, "B", b.ItemID, "el resumen debe venir ordenado por ítem")
	assert.Equal(t, 0, b.SequenceRank, "el segundo ítem arranca su propia secuencia")
	assertDec(t, decimal.Zero, b.OpeningBalance, "apertura del segundo ítem")
	assertDec(t, decimal.Zero, b.PreviousClosingBalance, "cierre anterior del segundo ítem")
	assertDec(t, num(5), b.BlendedCost, "el costo del segundo ítem no hereda nada del primero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Huecos de calendario y casos borde de la recurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Si la semana anterior no está en el calendario, su posición neta no se
// publica y la semana siguiente abre en 0.
func TestReconcile_HuecoDeCalendarioAbreEnCero(t *testing.T) {
	// Solo la semana 2 está en el calendario; la semana 1 queda sin bucket.
	cal := calWeek(t, "2024-01-08")

	in := reconcile.Input{
		Production: []entity.ProductionRecord{
			prodRow(t, "A", "Arepa", "2024-01-01", 100, 2),
			prodRow(t, "A", "Arepa", "2024-01-08", 50, 3),
		},
		Calendar: cal,
	}

	result, err := testUseCase().Reconcile(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, result.Summary, 2)

	w2 := result.Summary[1]
	assertDec(t, decimal.Zero, w2.OpeningBalance,
		"sin enlace de calendario la semana abre en 0 aunque exista fila previa")
	// La recurrencia de costo sí continúa: es por orden dentro del ítem, no
	// por el enlace de calendario.
	assert.Equal(t, 1, w2.SequenceRank)
}

// Disponible anterior 0 fuerza el stock a 0 aunque el cierre anterior fuera
// negativo: el costo de la semana es el de la producción nueva, sin arrastrar
// el saldo negativo a la mezcla.
func TestReconcile_DisponibleCeroFuerzaStockCero(t *testing.T) {
	var cal []entity.CalendarEntry
	cal = append(cal, calWeek(t, "2024-01-01", "2024-01-02")...)
	cal = append(cal, calWeek(t, "2024-01-08")...)

	in := reconcile.Input{
		Production: []entity.ProductionRecord{
			prodRow(t, "A", "Arepa", "2024-01-01", 0, 5),
			prodRow(t, "A", "Arepa", "2024-01-08", 10, 7),
		},
		Sales: []entity.SaleTransaction{
			saleRow(t, "A", "Arepa", "2024-01-02", 10, 9),
		},
		Calendar: cal,
	}

	result, err := testUseCase().Reconcile(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, result.Summary, 2)

	w1, w2 := result.Summary[0], result.Summary[1]
	assertDec(t, decimal.Zero, w1.AvailableBalance, "disponible sem 1")
	assertDec(t, num(-10), w1.ClosingBalance, "cierre sem 1 en negativo")

	assertDec(t, num(-10), w2.OpeningBalance, "la apertura sí refleja la posición neta")
	assertDec(t, decimal.Zero, w2.PreviousClosingBalance,
		"con disponible anterior 0 el stock de la mezcla se fuerza a 0")
	assertDec(t, num(7), w2.BlendedCost, "el costo es el de la producción nueva")
}

// Semana sin stock ni producción nueva: el costo se arrastra sin cambio.
func TestReconcile_SinMovimientoArrastraCosto(t *testing.T) {
	var cal []entity.CalendarEntry
	cal = append(cal, calWeek(t, "2024-01-01")...)
	cal = append(cal, calWeek(t, "2024-01-08")...)

	in := reconcile.Input{
		Production: []entity.ProductionRecord{
			prodRow(t, "A", "Arepa", "2024-01-01", 0, 4),
			prodRow(t, "A", "Arepa", "2024-01-08", 0, 9),
		},
		Calendar: cal,
	}

	result, err := testUseCase().Reconcile(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, result.Summary, 2)

	assertDec(t, num(4), result.Summary[0].BlendedCost, "costo declarado sem 1")
	assertDec(t, num(4), result.Summary[1].BlendedCost,
		"sin denominador el costo anterior se arrastra, no se toma el declarado nuevo")
}

// Un grupo de ventas cuya cantidad total es 0 reporta precio medio 0 en lugar
// de dividir por cero.
func TestReconcile_VentaCantidadCeroPrecioMedioCero(t *testing.T) {
	cal := calWeek(t, "2024-01-01", "2024-01-02")

	in := reconcile.Input{
		Production: []entity.ProductionRecord{
			prodRow(t, "A", "Arepa", "2024-01-01", 10, 2),
		},
		Sales: []entity.SaleTransaction{
			saleRow(t, "A", "Arepa", "2024-01-02", 0, 10),
		},
		Calendar: cal,
	}

	result, err := testUseCase().Reconcile(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, result.Summary, 1)
	assertDec(t, decimal.Zero, result.Summary[0].MeanPriceSold, "precio medio con cantidad 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de ventas: descartes y consecutivo
// ──────────────────────────────────────────────────────────────────────────────

// Ventas con fecha fuera del calendario, o sin fila conciliada de su
// (ítem, semana), quedan fuera del libro; las retenidas llevan consecutivo
// contiguo 1..N.
func TestReconcile_LedgerDescartaVentasSinSemana(t *testing.T) {
	cal := calWeek(t, "2024-01-01", "2024-01-02", "2024-01-03")

	in := reconcile.Input{
		Production: []entity.ProductionRecord{
			prodRow(t, "A", "Arepa", "2024-01-01", 100, 2),
		},
		Sales: []entity.SaleTransaction{
			saleRow(t, "A", "Arepa", "2024-01-02", 10, 5),
			saleRow(t, "A", "Arepa", "2024-06-15", 10, 5),     // fecha fuera del calendario
			saleRow(t, "Z", "Zanahoria", "2024-01-03", 10, 5), // sin producción conciliada
			saleRow(t, "A", "Arepa", "2024-01-03", 20, 6),
		},
		Calendar: cal,
	}

	result, err := testUseCase().Reconcile(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, result.Ledger, 2, "solo las ventas con semana conciliada entran al libro")
	for i, e := range result.Ledger {
		assert.Equal(t, i+1, e.Counter, "el consecutivo debe ser contiguo desde 1")
		assert.Equal(t, "A", e.ItemID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Determinismo
// ──────────────────────────────────────────────────────────────────────────────

// La misma entrada produce exactamente la misma salida: el pipeline no
// depende del orden de iteración de sus mapas internos.
func TestReconcile_Determinista(t *testing.T) {
	var cal []entity.CalendarEntry
	cal = append(cal, calWeek(t, "2024-01-01", "2024-01-02")...)
	cal = append(cal, calWeek(t, "2024-01-08", "2024-01-09")...)

	in := reconcile.Input{
		Production: []entity.ProductionRecord{
			prodRow(t, "B", "Buñuelo", "2024-01-08", 20, 6),
			prodRow(t, "A", "Arepa", "2024-01-01", 100, 2),
			prodRow(t, "A", "Arepa", "2024-01-08", 50, 3),
			prodRow(t, "B", "Buñuelo", "2024-01-01", 10, 4),
		},
		Sales: []entity.SaleTransaction{
			saleRow(t, "A", "Arepa", "2024-01-09", 5, 10),
			saleRow(t, "B", "Buñuelo", "2024-01-02", 3, 8),
		},
		Calendar: cal,
	}

	uc := testUseCase()
	r1, err := uc.Reconcile(context.Background(), in)
	require.NoError(t, err)
	r2, err := uc.Reconcile(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, r1.Summary, r2.Summary, "el resumen debe ser idéntico entre corridas")
	assert.Equal(t, r1.Ledger, r2.Ledger, "el libro debe ser idéntico entre corridas")
}
