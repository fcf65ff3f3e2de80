// Package pdf genera la representación imprimible del resumen semanal de
// conciliación (una fila por ítem y semana, con saldos y costo promedio).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación + totales              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Ítem | Semana | Prod | Venta | Cierre | Costo   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: conteo de filas e ítems                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSummaryGenerator genera el PDF del resumen semanal usando Maroto v2.
type MarotoSummaryGenerator struct{}

// NewMarotoSummaryGenerator construye el generador.
func NewMarotoSummaryGenerator() *MarotoSummaryGenerator { return &MarotoSummaryGenerator{} }

// GenerateSummaryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoSummaryGenerator) GenerateSummaryPDF(
	_ context.Context,
	appName string,
	rows []entity.ReconciledWeek,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Resumen semanal de producción y ventas", true).
		WithAuthor(appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rows))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(rows))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(rows []entity.ReconciledWeek) core.Row {
	generado := time.Now().Format("02/01/2006 15:04")

	return row.New(14).Add(
		col.New(8).Add(
			text.New("RESUMEN SEMANAL DE PRODUCCIÓN Y VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Costo promedio ponderado por ítem y semana", props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generado, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d filas", len(rows)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del resumen.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Left),
		h("Ítem", 3, align.Left),
		h("Semana", 2, align.Center),
		h("Prod.", 1, align.Right),
		h("Venta", 1, align.Right),
		h("Apertura", 1, align.Right),
		h("Cierre", 1, align.Right),
		h("Costo", 2, align.Right),
	)
}

// tableRows: una fila por (ítem, semana).
func tableRows(rows []entity.ReconciledWeek) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, w := range rows {
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(
				w.ItemID,
				props.Text{Size: 7.5, Align: align.Left, Top: 1},
			)),
			col.New(3).Add(text.New(
				w.ItemName,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				w.WeekStart.Format("2006-01-02"),
				props.Text{Size: 7.5, Align: align.Center, Top: 1},
			)),
			col.New(1).Add(text.New(
				w.QuantityProduced.StringFixed(1),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				w.QuantitySold.StringFixed(1),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				w.OpeningBalance.StringFixed(1),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				w.ClosingBalance.StringFixed(1),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+w.BlendedCost.StringFixed(4),
				props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRow: conteo de ítems distintos y filas.
func footerRow(rows []entity.ReconciledWeek) core.Row {
	items := make(map[string]struct{}, len(rows))
	for _, w := range rows {
		items[w.ItemID] = struct{}{}
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("%d ítems · %d filas ítem-semana", len(items), len(rows)),
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}
