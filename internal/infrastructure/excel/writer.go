package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

const outputSheet = "Sheet1"

// summaryHeaders columnas del reporte Summary, en el orden del contrato.
var summaryHeaders = []string{
	"ID", "Name", "Date", "Production", "Price Submitted", "Sold Qty",
	"Mean(Price Sold)", "Running Sold", "Running Production", "Opening",
	"Available", "Closing", "rank", "start_rate", "close_rate",
}

// ledgerHeaders columnas del reporte Ledger: la venta original más el costo
// vigente y el consecutivo.
var ledgerHeaders = []string{
	"ID", "Name", "Date Sold", "Sold Qty", "Price Sold", "close_rate", "Counter",
}

// SummaryWorkbook arma el workbook del resumen semanal, una fila por
// (ítem, semana) en el orden recibido.
func SummaryWorkbook(rows []entity.ReconciledWeek) (*excelize.File, error) {
	f := excelize.NewFile()
	writeHeaders(f, summaryHeaders)

	for i, w := range rows {
		writeRow(f, i+2, []interface{}{
			w.ItemID,
			w.ItemName,
			w.WeekStart.Format("2006-01-02"),
			w.QuantityProduced.InexactFloat64(),
			w.UnitCostSubmitted.InexactFloat64(),
			w.QuantitySold.InexactFloat64(),
			w.MeanPriceSold.InexactFloat64(),
			w.RunningSold.InexactFloat64(),
			w.RunningProduced.InexactFloat64(),
			w.OpeningBalance.InexactFloat64(),
			w.AvailableBalance.InexactFloat64(),
			w.ClosingBalance.InexactFloat64(),
			w.SequenceRank,
			w.StartingCost.InexactFloat64(),
			w.BlendedCost.InexactFloat64(),
		})
	}
	return f, nil
}

// LedgerWorkbook arma el workbook del libro de ventas anotado, en el orden
// recibido (ítem asc, fecha asc, Counter 1..N).
func LedgerWorkbook(entries []entity.SaleLedgerEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	writeHeaders(f, ledgerHeaders)

	for i, e := range entries {
		writeRow(f, i+2, []interface{}{
			e.ItemID,
			e.ItemName,
			e.SaleDate.Format("2006-01-02"),
			e.QuantitySold.InexactFloat64(),
			e.UnitPriceSold.InexactFloat64(),
			e.BlendedCost.InexactFloat64(),
			e.Counter,
		})
	}
	return f, nil
}

// WorkbookBytes serializa el workbook a bytes para respuesta HTTP o archivo.
func WorkbookBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeaders(f *excelize.File, headers []string) {
	col := 'A'
	for _, h := range headers {
		f.SetCellValue(outputSheet, string(col)+"1", h)
		col++
	}
}

func writeRow(f *excelize.File, rowNo int, values []interface{}) {
	col := 'A'
	for _, v := range values {
		f.SetCellValue(outputSheet, string(col)+fmt.Sprint(rowNo), v)
		col++
	}
}
