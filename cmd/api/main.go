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

	_ "github.com/nivaanlabs/gstbill-api/docs"
	"github.com/nivaanlabs/gstbill-api/internal/application/auth"
	"github.com/nivaanlabs/gstbill-api/internal/application/billing"
	"github.com/nivaanlabs/gstbill-api/internal/application/importexport"
	"github.com/nivaanlabs/gstbill-api/internal/application/inventory"
	"github.com/nivaanlabs/gstbill-api/internal/application/reports"
	"github.com/nivaanlabs/gstbill-api/internal/application/usecase"
	infrapdf "github.com/nivaanlabs/gstbill-api/internal/infrastructure/pdf"
	"github.com/nivaanlabs/gstbill-api/internal/infrastructure/postgres"
	"github.com/nivaanlabs/gstbill-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/nivaanlabs/gstbill-api/internal/interfaces/http"
	"github.com/nivaanlabs/gstbill-api/pkg/config"
	"github.com/nivaanlabs/gstbill-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	businessRepo := postgres.NewBusinessRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, businessRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	unitUC := usecase.NewUnitUseCase(unitRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	purchaseUC := inventory.NewPurchaseUseCase(txRunner, productRepo, purchaseRepo)
	invoiceUC := billing.NewInvoiceUseCase(txRunner, customerRepo, productRepo, invoiceRepo, cfg.Billing.InvoicePrefix)

	invoicePDF := infrapdf.NewMarotoInvoiceGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, businessRepo, customerRepo, productRepo, unitRepo, invoicePDF)

	links := whatsapp.NewLinkBuilder(cfg.Billing.WhatsAppBase)
	whatsappUC := billing.NewWhatsAppUseCase(invoiceRepo, customerRepo, businessRepo, links)

	ledgerPDF := infrapdf.NewMarotoLedgerGenerator()
	ledgerUC := reports.NewStockLedgerUseCase(businessRepo, productRepo, purchaseRepo, invoiceRepo, unitRepo, ledgerPDF)
	dashboardUC := reports.NewDashboardUseCase(reportRepo)
	csvUC := importexport.NewCSVUseCase(productRepo, customerRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GSTBill API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		UnitUC:      unitUC,
		CustomerUC:  customerUC,
		PurchaseUC:  purchaseUC,
		InvoiceUC:   invoiceUC,
		PDFUC:       pdfUC,
		WhatsAppUC:  whatsappUC,
		LedgerUC:    ledgerUC,
		DashboardUC: dashboardUC,
		CSVUC:       csvUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
