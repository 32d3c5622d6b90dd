package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/auth"
	"github.com/devman-gruposelsa/dev-invoice/internal/application/billing"
	"github.com/devman-gruposelsa/dev-invoice/internal/application/usecase"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	ProductUC      *usecase.ProductUseCase
	FolderUC       *usecase.FolderUseCase
	RuleUC         *usecase.SpecialRuleUseCase
	ExchangeRateUC *usecase.ExchangeRateUseCase
	CustomerUC     *billing.CustomerUseCase
	CreateInvoice  *billing.CreateInvoiceUseCase
	StorageRun     *billing.StorageInvoiceUseCase
	InvoicePDF     *billing.PDFUseCase
	Pricer         *billing.PricingService
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Products y lista de precios (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/pricelist", productHandler.AddPricelistItem)
	products.Get("/:id/pricelist", productHandler.ListPricelist)

	// Carpetas de tránsito (protegido)
	folders := protected.Group("/folders")
	folderHandler := NewFolderHandler(deps.FolderUC)
	folders.Post("/", folderHandler.Create)
	folders.Get("/", folderHandler.List)
	folders.Get("/:id", folderHandler.GetByID)
	folders.Put("/:id/days-invoiced", folderHandler.SetDaysInvoiced)
	folders.Put("/:id/entry-date", folderHandler.SetEntryDate)
	folders.Put("/:id/status", folderHandler.UpdateStatus)

	// Reglas de mínimo especial (solo admin)
	rules := protected.Group("/minimum-rules", RequireRole(entity.RoleAdmin))
	ruleHandler := NewRuleHandler(deps.RuleUC)
	rules.Post("/", ruleHandler.Create)
	rules.Get("/", ruleHandler.List)
	rules.Delete("/:id", ruleHandler.Delete)

	// Tipos de cambio (carga solo admin, consulta para todos)
	rateHandler := NewExchangeRateHandler(deps.ExchangeRateUC)
	protected.Get("/exchange-rates", rateHandler.List)
	protected.Post("/exchange-rates", RequireRole(entity.RoleAdmin), rateHandler.Create)

	// Invoices (protegido; la corrida de almacenamiento es solo admin)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.StorageRun, deps.InvoicePDF, deps.Pricer)
	invoices.Post("/storage-run", RequireRole(entity.RoleAdmin), invoiceHandler.StorageRun)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Post("/:id/lines/:line_id/recompute", invoiceHandler.RecomputeLine)
}
