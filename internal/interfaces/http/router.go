// Package http expone la API REST sobre Fiber: autenticación del operador,
// corridas de conciliación y descarga de reportes.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/auth"
)

// RouterDeps dependencias del router.
type RouterDeps struct {
	JWTSecret        string
	AuthHandler      *AuthHandler
	ReconcileHandler *ReconcileHandler
}

// Router registra las rutas de la API.
//
// Rutas públicas:
//
//	POST /api/auth/login
//
// Rutas protegidas (Bearer JWT, rol operador):
//
//	POST /api/reconcile
//	GET  /api/runs/:id
//	GET  /api/runs/:id/summary.xlsx
//	GET  /api/runs/:id/ledger.xlsx
//	GET  /api/runs/:id/summary.pdf
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Post("/auth/login", deps.AuthHandler.Login)

	protected := api.Group("", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleOperador))

	protected.Post("/reconcile", deps.ReconcileHandler.Reconcile)

	runs := protected.Group("/runs")
	runs.Get("/:id", deps.ReconcileHandler.GetRun)
	runs.Get("/:id/summary.xlsx", deps.ReconcileHandler.DownloadSummaryXLSX)
	runs.Get("/:id/ledger.xlsx", deps.ReconcileHandler.DownloadLedgerXLSX)
	runs.Get("/:id/summary.pdf", deps.ReconcileHandler.DownloadSummaryPDF)
}
