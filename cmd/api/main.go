package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/gestor-notas-api/docs"
	"github.com/jhoicas/gestor-notas-api/internal/application/dashboard"
	"github.com/jhoicas/gestor-notas-api/internal/application/ports"
	"github.com/jhoicas/gestor-notas-api/internal/application/records"
	appreport "github.com/jhoicas/gestor-notas-api/internal/application/report"
	"github.com/jhoicas/gestor-notas-api/internal/application/sharing"
	infraai "github.com/jhoicas/gestor-notas-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/gestor-notas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestor-notas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestor-notas-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/gestor-notas-api/internal/interfaces/http"
	"github.com/jhoicas/gestor-notas-api/pkg/config"
	"github.com/jhoicas/gestor-notas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	revenueRepo := postgres.NewRevenueRepository(pool)
	debtRepo := postgres.NewDebtRepository(pool)
	sharedRepo := postgres.NewSharedReportRepository(pool)

	// Almacenamiento de imágenes: sin bucket el escaneo responde 503.
	var imageStorage ports.ImageStorage
	if cfg.Storage.Enabled() {
		s3Storage, err := storage.NewS3ImageStorage(ctx, cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("almacenamiento S3")
		}
		imageStorage = s3Storage
	} else {
		log.Warn().Msg("S3_BUCKET vacío: escaneo de notas deshabilitado")
	}

	aiTimeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	var extractor ports.InvoiceExtractor
	switch cfg.AI.Provider {
	case "anthropic":
		extractor = infraai.NewAnthropicExtractor(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel, aiTimeout, log.WithComponent("ai-anthropic"))
	default:
		extractor = infraai.NewGatewayExtractor(cfg.AI.GatewayURL, cfg.AI.GatewayAPIKey, cfg.AI.GatewayModel, aiTimeout, log.WithComponent("ai-gateway"))
	}

	invoiceUC := records.NewInvoiceUseCase(records.InvoiceDeps{
		Repo:       invoiceRepo,
		Storage:    imageStorage,
		Normalizer: storage.NewNormalizer(cfg.Storage.MaxImageWidth),
		Extractor:  extractor,
		Log:        log.WithComponent("records"),
	})
	revenueUC := records.NewRevenueUseCase(revenueRepo, nil)
	debtUC := records.NewDebtUseCase(debtRepo, nil)
	dashboardUC := dashboard.NewUseCase(invoiceRepo, revenueRepo, debtRepo)

	// PDF: mismo objeto de informe que la vista previa y la página pública
	pdfRenderer := infrapdf.NewReportRenderer(cfg.App.Name)
	reportUC := appreport.NewUseCase(invoiceRepo, revenueRepo, debtRepo, pdfRenderer, nil)
	sharingUC := sharing.NewUseCase(sharedRepo, sharing.Config{
		ExpiryDays: cfg.Share.DefaultExpiryDays,
		BaseURL:    cfg.HTTP.PublicBaseURL,
	}, nil, log.WithComponent("sharing"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    records.MaxScanBytes + 1<<20,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // el escaneo espera a la IA
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.WithComponent("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC:   dashboardUC,
		InvoiceUC:     invoiceUC,
		RevenueUC:     revenueUC,
		DebtUC:        debtUC,
		ReportUC:      reportUC,
		SharingUC:     sharingUC,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		PublicLimiter: httpRouter.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
		Log:           log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
