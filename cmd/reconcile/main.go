// Comando reconcile: ejecuta una corrida de conciliación semanal desde la
// terminal, sin levantar la API. Lee las tres tablas xlsx y escribe los dos
// reportes (y opcionalmente el PDF del resumen).
//
// Uso:
//
//	go run ./cmd/reconcile \
//	  -production production.xlsx -sales sales.xlsx -calendar calendar.xlsx \
//	  -summary summary.xlsx -ledger ledger.xlsx [-pdf summary.pdf]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/Costeo-api/internal/application/reconcile"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Costeo-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

func main() {
	productionPath := flag.String("production", "", "ruta de la tabla Production (.xlsx)")
	salesPath := flag.String("sales", "", "ruta de la tabla Sales (.xlsx)")
	calendarPath := flag.String("calendar", "", "ruta de la tabla Calendar (.xlsx)")
	summaryPath := flag.String("summary", "summary.xlsx", "ruta de salida del resumen semanal")
	ledgerPath := flag.String("ledger", "ledger.xlsx", "ruta de salida del libro de ventas")
	pdfPath := flag.String("pdf", "", "ruta de salida del resumen en PDF (opcional)")
	flag.Parse()

	if *productionPath == "" || *salesPath == "" || *calendarPath == "" {
		fmt.Fprintln(os.Stderr, "faltan flags: -production, -sales y -calendar son obligatorios")
		flag.Usage()
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: "development", Level: "info"})

	production, err := parseFile(*productionPath, excel.ParseProduction)
	if err != nil {
		fail("leer production: %v", err)
	}
	sales, err := parseFile(*salesPath, excel.ParseSales)
	if err != nil {
		fail("leer sales: %v", err)
	}
	calendar, err := parseFile(*calendarPath, excel.ParseCalendar)
	if err != nil {
		fail("leer calendar: %v", err)
	}

	uc := reconcile.NewUseCase(log)
	result, err := uc.Reconcile(context.Background(), reconcile.Input{
		Production: production,
		Sales:      sales,
		Calendar:   calendar,
	})
	if err != nil {
		fail("ejecutar conciliación: %v", err)
	}

	summaryFile, err := excel.SummaryWorkbook(result.Summary)
	if err != nil {
		fail("armar resumen: %v", err)
	}
	if err := summaryFile.SaveAs(*summaryPath); err != nil {
		fail("escribir %s: %v", *summaryPath, err)
	}

	ledgerFile, err := excel.LedgerWorkbook(result.Ledger)
	if err != nil {
		fail("armar libro de ventas: %v", err)
	}
	if err := ledgerFile.SaveAs(*ledgerPath); err != nil {
		fail("escribir %s: %v", *ledgerPath, err)
	}

	if *pdfPath != "" {
		gen := infrapdf.NewMarotoSummaryGenerator()
		pdfBytes, err := gen.GenerateSummaryPDF(context.Background(), "costeo-semanal", result.Summary)
		if err != nil {
			fail("generar PDF: %v", err)
		}
		if err := os.WriteFile(*pdfPath, pdfBytes, 0o644); err != nil {
			fail("escribir %s: %v", *pdfPath, err)
		}
	}

	fmt.Printf("resumen: %s (%d filas)\n", *summaryPath, len(result.Summary))
	fmt.Printf("libro de ventas: %s (%d filas)\n", *ledgerPath, len(result.Ledger))
}

func parseFile[T any](path string, parse func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
