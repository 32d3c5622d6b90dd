// seed carga un juego de datos de demostración para desarrollo local:
// una empresa, un usuario admin, dos clientes, los productos de los paquetes
// de ingreso/egreso/almacenamiento, una regla de mínimo especial, tipos de
// cambio y un par de carpetas de tránsito abiertas.
//
// Uso: go run ./cmd/seed
// Lee la conexión de las mismas variables de entorno que el servidor (DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/infrastructure/postgres"
	"github.com/devman-gruposelsa/dev-invoice/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL", err)
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	folderRepo := postgres.NewFolderRepository(pool)
	ruleRepo := postgres.NewSpecialMinimumRepository(pool)
	rateRepo := postgres.NewExchangeRateRepository(pool)
	pricelistRepo := postgres.NewPricelistRepository(pool)

	company := &entity.Company{
		ID:           uuid.NewString(),
		Name:         "Grupo Selsa Demo",
		TaxID:        "30-11111111-1",
		Email:        "demo@gruposelsa.example",
		CurrencyCode: "ARS",
		Status:       "active",
	}
	if err := companyRepo.Create(company); err != nil {
		fail("crear empresa", err)
	}
	fmt.Println("empresa:", company.ID)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		fail("hashear password", err)
	}
	admin := &entity.User{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		Email:        "admin@gruposelsa.example",
		PasswordHash: string(hash),
		Name:         "Admin Demo",
		Role:         entity.RoleAdmin,
		Status:       "active",
	}
	if err := userRepo.Create(admin); err != nil {
		fail("crear usuario admin", err)
	}
	fmt.Println("usuario admin: admin@gruposelsa.example / admin12345")

	normal := &entity.Customer{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		Name:      "Importadora del Sur SA",
		TaxID:     "30-22222222-2",
		Email:     "compras@imposur.example",
	}
	exempt := &entity.Customer{
		ID:                   uuid.NewString(),
		CompanyID:            company.ID,
		Name:                 "Logística Exenta SRL",
		TaxID:                "30-33333333-3",
		WaivesMinimumPricing: true,
		MonthlyInvoice:       true,
	}
	for _, c := range []*entity.Customer{normal, exempt} {
		if err := customerRepo.Create(c); err != nil {
			fail("crear cliente "+c.Name, err)
		}
	}

	storage := &entity.Product{
		ID:                  uuid.NewString(),
		CompanyID:           company.ID,
		SKU:                 "ALM-M3",
		Name:                "Almacenamiento por m3",
		BillingMode:         entity.BillingModeStorage,
		InvoicePack:         entity.InvoicePackStorage,
		ListPrice:           decimal.RequireFromString("10"),
		DefaultMinimumPrice: decimal.RequireFromString("100"),
		UnitMeasure:         "M3",
	}
	verification := &entity.Product{
		ID:          uuid.NewString(),
		CompanyID:   company.ID,
		SKU:         "VER-ING",
		Name:        "Verificación de ingreso",
		BillingMode: entity.BillingModeNone,
		InvoicePack: entity.InvoicePackIncome,
		ListPrice:   decimal.RequireFromString("15"),
		UnitMeasure: "UN",
	}
	insurance := &entity.Product{
		ID:          uuid.NewString(),
		CompanyID:   company.ID,
		SKU:         "SEG-FOB",
		Name:        "Seguro sobre valor declarado",
		BillingMode: entity.BillingModeDeclaredValue,
		InvoicePack: entity.InvoicePackIncome,
		UnitMeasure: "UN",
	}
	handling := &entity.Product{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		SKU:          "MAN-EGR",
		Name:         "Manipuleo de egreso",
		BillingMode:  entity.BillingModeNone,
		InvoicePack:  entity.InvoicePackOutcome,
		ListPrice:    decimal.RequireFromString("20"),
		GroupFolders: true,
		UnitMeasure:  "UN",
	}
	fullTransit := &entity.Product{
		ID:                 uuid.NewString(),
		CompanyID:          company.ID,
		SKU:                "TRA-COM",
		Name:               "Cargo por tránsito completo",
		BillingMode:        entity.BillingModeNone,
		ListPrice:          decimal.RequireFromString("40"),
		FullTransitProduct: true,
		UnitMeasure:        "UN",
	}
	for _, p := range []*entity.Product{storage, verification, insurance, handling, fullTransit} {
		if err := productRepo.Create(p); err != nil {
			fail("crear producto "+p.SKU, err)
		}
	}

	// Tramo de lista de precios: tarifa diaria rebajada a partir de 50 m3.
	if err := pricelistRepo.Create(&entity.PricelistItem{
		ID:          uuid.NewString(),
		CompanyID:   company.ID,
		ProductID:   storage.ID,
		MinQuantity: decimal.RequireFromString("50"),
		FixedPrice:  decimal.RequireFromString("8"),
	}); err != nil {
		fail("crear tramo de lista de precios", err)
	}

	// Mínimo especial del cliente normal para almacenamiento.
	if err := ruleRepo.Create(&entity.SpecialMinimumRule{
		ID:                  uuid.NewString(),
		CompanyID:           company.ID,
		CustomerID:          normal.ID,
		ProductID:           storage.ID,
		SpecialMinimumPrice: decimal.RequireFromString("150"),
	}); err != nil {
		fail("crear regla de mínimo especial", err)
	}

	// Tipos de cambio USD de los últimos tres días.
	for i := 0; i < 3; i++ {
		day := time.Now().AddDate(0, 0, -i).Truncate(24 * time.Hour)
		rate := decimal.RequireFromString("950").Add(decimal.NewFromInt(int64(i * 5)))
		if err := rateRepo.Create(&entity.ExchangeRate{
			ID:            uuid.NewString(),
			CompanyID:     company.ID,
			CurrencyCode:  "USD",
			RateToCompany: rate,
			AsOfDate:      day,
		}); err != nil {
			fail("crear tipo de cambio", err)
		}
	}

	days := 12
	folders := []*entity.TransitFolder{
		{
			ID:                 uuid.NewString(),
			CompanyID:          company.ID,
			CustomerID:         normal.ID,
			Name:               "IMP-2026-0001",
			EntryDate:          time.Now().AddDate(0, 0, -15),
			DaysInvoiced:       &days,
			TotalStorageVolume: decimal.RequireFromString("24.5"),
			DeclaredValue:      decimal.RequireFromString("18000"),
		},
		{
			ID:                 uuid.NewString(),
			CompanyID:          company.ID,
			CustomerID:         exempt.ID,
			Name:               "IMP-2026-0002",
			EntryDate:          time.Now().AddDate(0, 0, -4),
			TotalStorageVolume: decimal.RequireFromString("60"),
			DeclaredValue:      decimal.RequireFromString("5000"),
		},
	}
	for _, f := range folders {
		if err := folderRepo.Create(f); err != nil {
			fail("crear carpeta "+f.Name, err)
		}
	}

	fmt.Println("datos de demo cargados")
}

func fail(step string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", step, err)
	os.Exit(1)
}
