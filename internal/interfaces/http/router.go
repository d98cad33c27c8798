package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nivaanlabs/gstbill-api/internal/application/auth"
	"github.com/nivaanlabs/gstbill-api/internal/application/billing"
	"github.com/nivaanlabs/gstbill-api/internal/application/importexport"
	"github.com/nivaanlabs/gstbill-api/internal/application/inventory"
	"github.com/nivaanlabs/gstbill-api/internal/application/reports"
	"github.com/nivaanlabs/gstbill-api/internal/application/usecase"
	"github.com/nivaanlabs/gstbill-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	UnitUC      *usecase.UnitUseCase
	CustomerUC  *usecase.CustomerUseCase
	PurchaseUC  *inventory.PurchaseUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PDFUC       *billing.PDFUseCase
	WhatsAppUC  *billing.WhatsAppUseCase
	LedgerUC    *reports.StockLedgerUseCase
	DashboardUC *reports.DashboardUseCase
	CSVUC       *importexport.CSVUseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	stockRole := RequireRole(entity.RoleStock)
	billingRole := RequireRole(entity.RoleBilling)

	// Products: catalog edits need the stock role, reads are open to all roles
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CSVUC)
	products.Get("/", productHandler.List)
	products.Get("/export", productHandler.ExportCSV)
	products.Post("/import", stockRole, productHandler.ImportCSV)
	products.Post("/", stockRole, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", stockRole, productHandler.Update)
	products.Delete("/:id", stockRole, productHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", stockRole, categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", stockRole, categoryHandler.Update)
	categories.Delete("/:id", stockRole, categoryHandler.Delete)

	units := protected.Group("/units")
	unitHandler := NewUnitHandler(deps.UnitUC)
	units.Get("/", unitHandler.List)
	units.Post("/", stockRole, unitHandler.Create)
	units.Get("/:id", unitHandler.GetByID)
	units.Put("/:id", stockRole, unitHandler.Update)
	units.Delete("/:id", stockRole, unitHandler.Delete)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.CSVUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/export", customerHandler.ExportCSV)
	customers.Post("/import", billingRole, customerHandler.ImportCSV)
	customers.Post("/", billingRole, customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", billingRole, customerHandler.Update)
	customers.Delete("/:id", billingRole, customerHandler.Delete)

	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Get("/", purchaseHandler.List)
	purchases.Post("/", stockRole, purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id", stockRole, purchaseHandler.Update)
	purchases.Delete("/:id", stockRole, purchaseHandler.Delete)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, deps.WhatsAppUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", billingRole, invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/whatsapp", invoiceHandler.WhatsAppShare)
	invoices.Delete("/:id", billingRole, invoiceHandler.Delete)

	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.LedgerUC, deps.DashboardUC)
	reportsGroup.Get("/stock-ledger", reportHandler.StockLedger)
	reportsGroup.Get("/stock-ledger/pdf", reportHandler.StockLedgerPDF)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
}
