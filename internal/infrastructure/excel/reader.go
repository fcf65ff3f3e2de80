// Package excel lee las tres tablas de entrada y escribe los dos reportes
// en formato xlsx. Es el único punto del sistema que conoce el formato de
// archivo; el resto del pipeline trabaja con entidades de dominio.
package excel

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// Nombres lógicos de las tablas de entrada, usados en los errores de esquema.
const (
	TableProduction = "Production"
	TableSales      = "Sales"
	TableCalendar   = "Calendar"
)

// folder colapsa mayúsculas/minúsculas de los encabezados para que
// "Price Submitted", "PRICE SUBMITTED" y "price submitted" sean la misma
// columna.
var folder = cases.Fold()

// ParseProduction lee la tabla Production: columnas ID, Name, Date,
// Production, Price Submitted (se acepta la variante histórica
// "Price Submited"). Date debe venir alineada al inicio de semana.
func ParseProduction(r io.Reader) ([]entity.ProductionRecord, error) {
	rows, err := sheetRows(r, TableProduction)
	if err != nil {
		return nil, err
	}
	cols, err := requireColumns(TableProduction, rows[0], map[string][]string{
		"ID":             {"id"},
		"Name":           {"name"},
		"Date":           {"date"},
		"Production":     {"production"},
		"Price Submitted": {"price submitted", "price submited"},
	})
	if err != nil {
		return nil, err
	}

	var records []entity.ProductionRecord
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rowNo := i + 2 // 1-based, después del encabezado
		date, err := parseDate(cell(row, cols["Date"]))
		if err != nil {
			return nil, &domain.SchemaError{Table: TableProduction, Column: "Date", Row: rowNo, Reason: err.Error()}
		}
		qty, err := parseNumber(cell(row, cols["Production"]))
		if err != nil {
			return nil, &domain.SchemaError{Table: TableProduction, Column: "Production", Row: rowNo, Reason: err.Error()}
		}
		cost, err := parseNumber(cell(row, cols["Price Submitted"]))
		if err != nil {
			return nil, &domain.SchemaError{Table: TableProduction, Column: "Price Submitted", Row: rowNo, Reason: err.Error()}
		}
		records = append(records, entity.ProductionRecord{
			ItemID:            strings.TrimSpace(cell(row, cols["ID"])),
			ItemName:          strings.TrimSpace(cell(row, cols["Name"])),
			Week:              date,
			QuantityProduced:  qty,
			UnitCostSubmitted: cost,
		})
	}
	return records, nil
}

// ParseSales lee la tabla Sales: columnas ID, Name, Date Sold, Sold Qty,
// Price Sold.
func ParseSales(r io.Reader) ([]entity.SaleTransaction, error) {
	rows, err := sheetRows(r, TableSales)
	if err != nil {
		return nil, err
	}
	cols, err := requireColumns(TableSales, rows[0], map[string][]string{
		"ID":         {"id"},
		"Name":       {"name"},
		"Date Sold":  {"date sold"},
		"Sold Qty":   {"sold qty"},
		"Price Sold": {"price sold"},
	})
	if err != nil {
		return nil, err
	}

	var sales []entity.SaleTransaction
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rowNo := i + 2
		date, err := parseDate(cell(row, cols["Date Sold"]))
		if err != nil {
			return nil, &domain.SchemaError{Table: TableSales, Column: "Date Sold", Row: rowNo, Reason: err.Error()}
		}
		qty, err := parseNumber(cell(row, cols["Sold Qty"]))
		if err != nil {
			return nil, &domain.SchemaError{Table: TableSales, Column: "Sold Qty", Row: rowNo, Reason: err.Error()}
		}
		price, err := parseNumber(cell(row, cols["Price Sold"]))
		if err != nil {
			return nil, &domain.SchemaError{Table: TableSales, Column: "Price Sold", Row: rowNo, Reason: err.Error()}
		}
		sales = append(sales, entity.SaleTransaction{
			ItemID:        strings.TrimSpace(cell(row, cols["ID"])),
			ItemName:      strings.TrimSpace(cell(row, cols["Name"])),
			SaleDate:      date,
			QuantitySold:  qty,
			UnitPriceSold: price,
		})
	}
	return sales, nil
}

// ParseCalendar lee la dimensión calendario: columnas Date, StartOfWeek.
// Debe cubrir todas las fechas usadas en Production y Sales; las fechas que
// no cubra quedan sin bucket y el pipeline las tolera con sus políticas.
func ParseCalendar(r io.Reader) ([]entity.CalendarEntry, error) {
	rows, err := sheetRows(r, TableCalendar)
	if err != nil {
		return nil, err
	}
	cols, err := requireColumns(TableCalendar, rows[0], map[string][]string{
		"Date":        {"date"},
		"StartOfWeek": {"startofweek", "start of week"},
	})
	if err != nil {
		return nil, err
	}

	var entries []entity.CalendarEntry
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rowNo := i + 2
		date, err := parseDate(cell(row, cols["Date"]))
		if err != nil {
			return nil, &domain.SchemaError{Table: TableCalendar, Column: "Date", Row: rowNo, Reason: err.Error()}
		}
		weekStart, err := parseDate(cell(row, cols["StartOfWeek"]))
		if err != nil {
			return nil, &domain.SchemaError{Table: TableCalendar, Column: "StartOfWeek", Row: rowNo, Reason: err.Error()}
		}
		entries = append(entries, entity.CalendarEntry{Date: date, WeekStart: weekStart})
	}
	return entries, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// sheetRows abre el workbook y devuelve las filas de la primera hoja con
// valores crudos (las fechas llegan como serial de Excel, no formateadas).
func sheetRows(r io.Reader, table string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &domain.SchemaError{Table: table, Reason: "no es un xlsx legible: " + err.Error()}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.SchemaError{Table: table, Reason: "el workbook no tiene hojas"}
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &domain.SchemaError{Table: table, Reason: "no se pudo leer la hoja: " + err.Error()}
	}
	if len(rows) == 0 {
		return nil, &domain.SchemaError{Table: table, Reason: "la hoja está vacía (sin encabezado)"}
	}
	return rows, nil
}

// requireColumns localiza cada columna requerida por su encabezado (con
// fold de mayúsculas y alias aceptados). Una columna ausente es un error
// fatal que nombra tabla y columna.
func requireColumns(table string, header []string, wanted map[string][]string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[folder.String(strings.TrimSpace(h))] = i
	}
	cols := make(map[string]int, len(wanted))
	for name, aliases := range wanted {
		found := false
		for _, alias := range aliases {
			if i, ok := index[folder.String(alias)]; ok {
				cols[name] = i
				found = true
				break
			}
		}
		if !found {
			return nil, &domain.SchemaError{Table: table, Column: name, Reason: "columna requerida ausente"}
		}
	}
	return cols, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// dateLayouts formatos de texto aceptados además del serial de Excel.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2006/01/02",
}

// parseDate acepta el serial numérico de Excel o una fecha en texto.
// El resultado se normaliza a medianoche UTC: el bucketing opera por día
// calendario.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("fecha vacía")
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("serial de fecha inválido %q", raw)
		}
		return normalize(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return normalize(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha no parseable %q", raw)
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseNumber acepta números con o sin decimales; la celda vacía es 0
// (política única de relleno de numéricos faltantes).
func parseNumber(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("número no parseable %q", raw)
	}
	return d, nil
}
