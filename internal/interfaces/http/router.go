package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestor-notas-api/internal/application/dashboard"
	"github.com/jhoicas/gestor-notas-api/internal/application/records"
	appreport "github.com/jhoicas/gestor-notas-api/internal/application/report"
	"github.com/jhoicas/gestor-notas-api/internal/application/sharing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *dashboard.UseCase
	InvoiceUC   *records.InvoiceUseCase
	RevenueUC   *records.RevenueUseCase
	DebtUC      *records.DebtUseCase
	ReportUC    *appreport.UseCase
	SharingUC   *sharing.UseCase

	JWTSecret string
	JWTIssuer string
	// PublicLimiter limita por IP las rutas públicas; nil = sin límite.
	PublicLimiter *RateLimiter
	Now           func() time.Time
	Log           zerolog.Logger
}

// Router registra las rutas de la API y la página pública de informes.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log

	publicMW := []fiber.Handler{}
	if deps.PublicLimiter != nil {
		publicMW = append(publicMW, deps.PublicLimiter.Middleware(log))
	}

	// Público: instantáneas compartidas
	publicHandler := NewPublicReportHandler(deps.SharingUC, log)
	app.Get("/report/:id", append(publicMW, publicHandler.Page)...)

	api := app.Group("/api")
	api.Get("/public/reports/:id", append(publicMW, publicHandler.JSON)...)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Now, log)
	protected.Get("/dashboard", dashboardHandler.Get)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, log)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Post("/scan", invoiceHandler.Scan)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id/validation", invoiceHandler.SetValidated)
	invoices.Delete("/:id", invoiceHandler.Delete)

	revenues := protected.Group("/revenues")
	revenueHandler := NewRevenueHandler(deps.RevenueUC, log)
	revenues.Post("/", revenueHandler.Create)
	revenues.Get("/", revenueHandler.List)
	revenues.Put("/:id", revenueHandler.Update)
	revenues.Delete("/:id", revenueHandler.Delete)

	debts := protected.Group("/debts")
	debtHandler := NewDebtHandler(deps.DebtUC, log)
	debts.Post("/", debtHandler.Create)
	debts.Get("/", debtHandler.List)
	debts.Put("/:id", debtHandler.Update)
	debts.Delete("/:id", debtHandler.Delete)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.SharingUC, log)
	reports.Post("/preview", reportHandler.Preview)
	reports.Post("/pdf", reportHandler.PDF)
	reports.Post("/share", reportHandler.Share)

	shared := protected.Group("/shared-reports")
	sharedHandler := NewSharedReportHandler(deps.SharingUC, deps.ReportUC, log)
	shared.Get("/", sharedHandler.List)
	shared.Patch("/:id/extend", sharedHandler.Extend)
	shared.Delete("/:id", sharedHandler.Delete)
	shared.Get("/:id/pdf", sharedHandler.PDF)
}
