package http

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/application/reconcile"
	"github.com/jhoicas/Costeo-api/internal/application/runstore"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/excel"
	"github.com/jhoicas/Costeo-api/internal/infrastructure/pdf"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReconcileHandler maneja las corridas de conciliación: subida de las tres
// tablas, previsualización y descarga de reportes.
type ReconcileHandler struct {
	uc          *reconcile.UseCase
	store       *runstore.Store
	pdfGen      *pdf.MarotoSummaryGenerator
	appName     string
	previewRows int
}

// NewReconcileHandler construye el handler.
func NewReconcileHandler(
	uc *reconcile.UseCase,
	store *runstore.Store,
	pdfGen *pdf.MarotoSummaryGenerator,
	appName string,
	previewRows int,
) *ReconcileHandler {
	return &ReconcileHandler{
		uc:          uc,
		store:       store,
		pdfGen:      pdfGen,
		appName:     appName,
		previewRows: previewRows,
	}
}

// Reconcile godoc
// @Summary      Ejecuta una corrida de conciliación semanal
// @Description  Recibe las tablas Production, Sales y Calendar en xlsx,
// @Description  calcula el resumen semanal y el libro de ventas anotado y
// @Description  retiene ambos reportes para descarga.
// @Tags         reconcile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        production  formData  file  true  "tabla Production (.xlsx)"
// @Param        sales       formData  file  true  "tabla Sales (.xlsx)"
// @Param        calendar    formData  file  true  "tabla Calendar (.xlsx)"
// @Success      201  {object}  dto.ReconcileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/reconcile [post]
func (h *ReconcileHandler) Reconcile(c *fiber.Ctx) error {
	production, err := parseUpload(c, "production", excel.ParseProduction)
	if err != nil {
		return h.inputError(c, err)
	}
	sales, err := parseUpload(c, "sales", excel.ParseSales)
	if err != nil {
		return h.inputError(c, err)
	}
	calendar, err := parseUpload(c, "calendar", excel.ParseCalendar)
	if err != nil {
		return h.inputError(c, err)
	}

	result, err := h.uc.Reconcile(c.Context(), reconcile.Input{
		Production: production,
		Sales:      sales,
		Calendar:   calendar,
	})
	if err != nil {
		return h.inputError(c, err)
	}

	summaryFile, err := excel.SummaryWorkbook(result.Summary)
	if err != nil {
		return internalError(c, err)
	}
	summaryXLSX, err := excel.WorkbookBytes(summaryFile)
	if err != nil {
		return internalError(c, err)
	}
	ledgerFile, err := excel.LedgerWorkbook(result.Ledger)
	if err != nil {
		return internalError(c, err)
	}
	ledgerXLSX, err := excel.WorkbookBytes(ledgerFile)
	if err != nil {
		return internalError(c, err)
	}

	run := h.store.Save(result, summaryXLSX, ledgerXLSX)

	return c.Status(fiber.StatusCreated).JSON(dto.ReconcileResponse{
		RunID:          run.ID,
		CreatedAt:      run.CreatedAt,
		ExpiresAt:      run.ExpiresAt,
		Totals:         runTotals(result),
		SummaryPreview: summaryPreview(result.Summary, h.previewRows),
		LedgerPreview:  ledgerPreview(result.Ledger, h.previewRows),
	})
}

// GetRun godoc
// @Summary      Metadatos de una corrida retenida
// @Tags         reconcile
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "identificador de la corrida"
// @Success      200  {object}  dto.RunResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/runs/{id} [get]
func (h *ReconcileHandler) GetRun(c *fiber.Ctx) error {
	run, ok := h.store.Get(c.Params("id"))
	if !ok {
		return runNotFound(c)
	}
	return c.JSON(dto.RunResponse{
		RunID:     run.ID,
		CreatedAt: run.CreatedAt,
		ExpiresAt: run.ExpiresAt,
		Totals:    runTotals(run.Result),
	})
}

// DownloadSummaryXLSX godoc
// @Summary      Descarga el resumen semanal en xlsx
// @Tags         reconcile
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        id  path  string  true  "identificador de la corrida"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/runs/{id}/summary.xlsx [get]
func (h *ReconcileHandler) DownloadSummaryXLSX(c *fiber.Ctx) error {
	run, ok := h.store.Get(c.Params("id"))
	if !ok {
		return runNotFound(c)
	}
	return sendAttachment(c, xlsxContentType, "summary_"+run.ID+".xlsx", run.SummaryXLSX)
}

// DownloadLedgerXLSX godoc
// @Summary      Descarga el libro de ventas anotado en xlsx
// @Tags         reconcile
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        id  path  string  true  "identificador de la corrida"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/runs/{id}/ledger.xlsx [get]
func (h *ReconcileHandler) DownloadLedgerXLSX(c *fiber.Ctx) error {
	run, ok := h.store.Get(c.Params("id"))
	if !ok {
		return runNotFound(c)
	}
	return sendAttachment(c, xlsxContentType, "ledger_"+run.ID+".xlsx", run.LedgerXLSX)
}

// DownloadSummaryPDF godoc
// @Summary      Descarga el resumen semanal en PDF
// @Description  El PDF se genera bajo demanda desde el resultado retenido.
// @Tags         reconcile
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id  path  string  true  "identificador de la corrida"
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/runs/{id}/summary.pdf [get]
func (h *ReconcileHandler) DownloadSummaryPDF(c *fiber.Ctx) error {
	run, ok := h.store.Get(c.Params("id"))
	if !ok {
		return runNotFound(c)
	}
	pdfBytes, err := h.pdfGen.GenerateSummaryPDF(c.Context(), h.appName, run.Result.Summary)
	if err != nil {
		return internalError(c, err)
	}
	return sendAttachment(c, "application/pdf", "summary_"+run.ID+".pdf", pdfBytes)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// parseUpload abre el archivo del formulario y lo parsea con el lector dado.
func parseUpload[T any](c *fiber.Ctx, field string, parse func(r io.Reader) ([]T, error)) ([]T, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%w: falta el archivo %q", errMissingFile, field)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir %q: %w", field, err)
	}
	defer f.Close()
	return parse(f)
}

var errMissingFile = errors.New("archivo requerido ausente")

// inputError mapea errores de entrada a códigos HTTP: archivo ausente a 400,
// problemas de esquema o valores no parseables a 422.
func (h *ReconcileHandler) inputError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errMissingFile) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: err.Error()})
	}
	var schemaErr *domain.SchemaError
	if errors.As(err, &schemaErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "SCHEMA", Message: schemaErr.Error()})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return internalError(c, err)
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func runNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "RUN_NOT_FOUND", Message: "la corrida no existe o expiró"})
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, body []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(body)
}

func runTotals(result *reconcile.Result) dto.RunTotals {
	items := make(map[string]struct{}, len(result.Summary))
	for _, w := range result.Summary {
		items[w.ItemID] = struct{}{}
	}
	return dto.RunTotals{
		SummaryRows: len(result.Summary),
		LedgerRows:  len(result.Ledger),
		Items:       len(items),
	}
}

func summaryPreview(rows []entity.ReconciledWeek, limit int) []dto.SummaryRowDTO {
	if len(rows) < limit {
		limit = len(rows)
	}
	preview := make([]dto.SummaryRowDTO, 0, limit)
	for _, w := range rows[:limit] {
		preview = append(preview, dto.NewSummaryRowDTO(w))
	}
	return preview
}

func ledgerPreview(entries []entity.SaleLedgerEntry, limit int) []dto.LedgerRowDTO {
	if len(entries) < limit {
		limit = len(entries)
	}
	preview := make([]dto.LedgerRowDTO, 0, limit)
	for _, e := range entries[:limit] {
		preview = append(preview, dto.NewLedgerRowDTO(e))
	}
	return preview
}
