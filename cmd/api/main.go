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
	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/auth"
	"github.com/devman-gruposelsa/dev-invoice/internal/application/billing"
	"github.com/devman-gruposelsa/dev-invoice/internal/application/usecase"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/pricing"
	infrapdf "github.com/devman-gruposelsa/dev-invoice/internal/infrastructure/pdf"
	"github.com/devman-gruposelsa/dev-invoice/internal/infrastructure/postgres"
	httpRouter "github.com/devman-gruposelsa/dev-invoice/internal/interfaces/http"
	"github.com/devman-gruposelsa/dev-invoice/pkg/config"
	"github.com/devman-gruposelsa/dev-invoice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	folderRepo := postgres.NewFolderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	ruleRepo := postgres.NewSpecialMinimumRepository(pool)
	rateRepo := postgres.NewExchangeRateRepository(pool)
	pricelistRepo := postgres.NewPricelistRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de precios: resolutor de tarifas + política de mínimos.
	pricingCfg := pricing.Config{ReferenceCurrency: cfg.Billing.ReferenceCurrency}
	if cfg.Billing.DeclaredValueScale != "" {
		pricingCfg.DeclaredValueScale = decimal.RequireFromString(cfg.Billing.DeclaredValueScale)
	}
	engine := billing.NewEngine(pricelistRepo, rateRepo, ruleRepo, pricingCfg, log.Zerolog())
	pricer := billing.NewPricingService(engine, txRunner, invoiceRepo, productRepo, customerRepo)

	createInvoiceUC := billing.NewCreateInvoiceUseCase(
		txRunner, pricer, customerRepo, productRepo, folderRepo, invoiceRepo,
	)
	storageRunUC := billing.NewStorageInvoiceUseCase(folderRepo, customerRepo, createInvoiceUC, log.Zerolog())

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoicePDFUC := billing.NewPDFUseCase(
		invoiceRepo, companyRepo, customerRepo, productRepo, pdfGenerator,
	)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo, pricelistRepo)
	folderUC := usecase.NewFolderUseCase(folderRepo, customerRepo)
	ruleUC := usecase.NewSpecialRuleUseCase(ruleRepo, customerRepo, productRepo)
	rateUC := usecase.NewExchangeRateUseCase(rateRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Dev Invoice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:      companyUC,
		ProductUC:      productUC,
		FolderUC:       folderUC,
		RuleUC:         ruleUC,
		ExchangeRateUC: rateUC,
		CustomerUC:     customerUC,
		CreateInvoice:  createInvoiceUC,
		StorageRun:     storageRunUC,
		InvoicePDF:     invoicePDFUC,
		Pricer:         pricer,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
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
