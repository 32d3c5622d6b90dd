package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/billing"
	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/pricing"
)

const testCompanyID = "co-1"

type fixture struct {
	customers *memCustomerRepo
	products  *memProductRepo
	folders   *memFolderRepo
	invoices  *memInvoiceRepo
	rules     *memRuleRepo
	rates     *memExchangeRepo
	pricelist *memPricelistRepo
	pricer    *billing.PricingService
	createUC  *billing.CreateInvoiceUseCase
}

func newFixture() *fixture {
	f := &fixture{
		customers: newMemCustomerRepo(),
		products:  newMemProductRepo(),
		folders:   newMemFolderRepo(),
		invoices:  newMemInvoiceRepo(),
		rules:     &memRuleRepo{},
		rates:     &memExchangeRepo{},
		pricelist: &memPricelistRepo{},
	}
	engine := billing.NewEngine(f.pricelist, f.rates, f.rules, pricing.Config{}, zerolog.Nop())
	f.pricer = billing.NewPricingService(
		engine,
		memTxRunner{invoiceRepo: f.invoices, folderRepo: f.folders},
		f.invoices,
		f.products,
		f.customers,
	)
	f.createUC = billing.NewCreateInvoiceUseCase(
		memTxRunner{invoiceRepo: f.invoices, folderRepo: f.folders},
		f.pricer,
		f.customers,
		f.products,
		f.folders,
		f.invoices,
	)
	return f
}

func (f *fixture) addCustomer(id string, monthly bool) *entity.Customer {
	c := &entity.Customer{
		ID:             id,
		CompanyID:      testCompanyID,
		Name:           "Cliente " + id,
		TaxID:          "TAX-" + id,
		MonthlyInvoice: monthly,
	}
	_ = f.customers.Create(c)
	return c
}

func (f *fixture) addFolder(id, customerID string, volume string, days *int) *entity.TransitFolder {
	folder := &entity.TransitFolder{
		ID:                 id,
		CompanyID:          testCompanyID,
		CustomerID:         customerID,
		Name:               "IMP-" + id,
		EntryDate:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DaysInvoiced:       days,
		TotalStorageVolume: decimal.RequireFromString(volume),
		DeclaredValue:      decimal.RequireFromString("8000"),
	}
	_ = f.folders.Create(folder)
	return folder
}

func (f *fixture) addProduct(id, pack string, mode entity.BillingMode, listPrice, minimum string) *entity.Product {
	p := &entity.Product{
		ID:                  id,
		CompanyID:           testCompanyID,
		SKU:                 "SKU-" + id,
		Name:                "Servicio " + id,
		BillingMode:         mode,
		InvoicePack:         pack,
		ListPrice:           decimal.RequireFromString(listPrice),
		DefaultMinimumPrice: decimal.RequireFromString(minimum),
		UnitMeasure:         "M3",
	}
	_ = f.products.Create(p)
	return p
}

func TestCreateInvoiceStorageLine(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	days := 3
	f.addFolder("fold-1", "cust-1", "2", &days)
	f.addProduct("prod-alm", entity.InvoicePackStorage, entity.BillingModeStorage, "10", "0")

	resp, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindStorage,
		FolderIDs:  []string{"fold-1"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)

	line := resp.Lines[0]
	// 2 m3 x 3 días x 10 = 60
	assert.True(t, line.Quantity.Equal(decimal.RequireFromString("2")), "cantidad: %s", line.Quantity)
	assert.True(t, line.Subtotal.Equal(decimal.RequireFromString("60")), "subtotal: %s", line.Subtotal)
	assert.True(t, resp.NetTotal.Equal(decimal.RequireFromString("60")), "total: %s", resp.NetTotal)
	assert.Equal(t, "IMP-fold-1", resp.Origin)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)

	// La factura y la línea quedaron persistidas.
	stored, err := f.invoices.GetByID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	lines, err := f.invoices.GetLinesByInvoiceID(resp.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestCreateInvoiceAppliesMinimumFloor(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	days := 3
	f.addFolder("fold-1", "cust-1", "2", &days)
	f.addProduct("prod-alm", entity.InvoicePackStorage, entity.BillingModeStorage, "10", "100")

	resp, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindStorage,
		FolderIDs:  []string{"fold-1"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)

	line := resp.Lines[0]
	// Natural 60 < piso 100: el subtotal sube al piso y la cantidad se conserva.
	assert.True(t, line.Quantity.Equal(decimal.RequireFromString("2")))
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("16.666667")), "unitario: %s", line.UnitPrice)
	assert.True(t, line.Subtotal.Equal(decimal.RequireFromString("100.00")), "subtotal: %s", line.Subtotal)
}

func TestCreateInvoiceDeclaredValueLine(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	f.addFolder("fold-1", "cust-1", "2", nil)
	f.addProduct("prod-seg", entity.InvoicePackIncome, entity.BillingModeDeclaredValue, "0", "0")
	_ = f.rates.Create(&entity.ExchangeRate{
		ID:            "fx-1",
		CompanyID:     testCompanyID,
		CurrencyCode:  "USD",
		RateToCompany: decimal.RequireFromString("4"),
		AsOfDate:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	resp, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindIncome,
		FolderIDs:  []string{"fold-1"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)

	line := resp.Lines[0]
	// 8000 x (1/4) x 0.001 = 2.00, cantidad fija en 1.
	assert.True(t, line.Quantity.Equal(decimal.RequireFromString("1")))
	assert.True(t, line.Subtotal.Equal(decimal.RequireFromString("2.00")), "subtotal: %s", line.Subtotal)
}

func TestCreateInvoiceDeclaredValueWithoutRateFails(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	f.addFolder("fold-1", "cust-1", "2", nil)
	f.addProduct("prod-seg", entity.InvoicePackIncome, entity.BillingModeDeclaredValue, "0", "0")

	_, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindIncome,
		FolderIDs:  []string{"fold-1"},
	})
	require.Error(t, err)
	assert.True(t, pricing.IsRateUnavailable(err), "esperaba tasa no disponible, fue: %v", err)

	// Nada quedó persistido.
	assert.Empty(t, f.invoices.invoices)
}

func TestCreateInvoiceGroupedProductSingleLine(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	f.addFolder("fold-1", "cust-1", "2", nil)
	f.addFolder("fold-2", "cust-1", "5", nil)
	f.addProduct("prod-adm", entity.InvoicePackIncome, entity.BillingModeNone, "15", "0")

	resp, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindIncome,
		FolderIDs:  []string{"fold-1", "fold-2"},
	})
	require.NoError(t, err)

	// Producto sin agrupar: una línea por carpeta.
	require.Len(t, resp.Lines, 2)

	f2 := newFixture()
	f2.addCustomer("cust-1", false)
	f2.addFolder("fold-1", "cust-1", "2", nil)
	f2.addFolder("fold-2", "cust-1", "5", nil)
	grouped := f2.addProduct("prod-adm", entity.InvoicePackIncome, entity.BillingModeNone, "15", "0")
	grouped.GroupFolders = true

	resp2, err := f2.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindIncome,
		FolderIDs:  []string{"fold-1", "fold-2"},
	})
	require.NoError(t, err)
	require.Len(t, resp2.Lines, 1)

	line := resp2.Lines[0]
	// Línea única: cantidad = nº de carpetas, descripción con ambas.
	assert.True(t, line.Quantity.Equal(decimal.RequireFromString("2")))
	assert.True(t, line.Subtotal.Equal(decimal.RequireFromString("30.00")), "subtotal: %s", line.Subtotal)
	assert.Contains(t, line.Description, "IMP-fold-1")
	assert.Contains(t, line.Description, "IMP-fold-2")
}

func TestCreateInvoiceFullTransitAddsExtraLine(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	folder := f.addFolder("fold-1", "cust-1", "2", nil)
	folder.FullTransit = true
	f.addFolder("fold-2", "cust-1", "5", nil)
	f.addProduct("prod-adm", entity.InvoicePackIncome, entity.BillingModeNone, "15", "0")
	transit := f.addProduct("prod-tra", entity.InvoicePackNone, entity.BillingModeNone, "40", "0")
	transit.FullTransitProduct = true

	resp, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindIncome,
		FolderIDs:  []string{"fold-1", "fold-2"},
	})
	require.NoError(t, err)

	// Dos líneas del paquete más la extra de tránsito completo.
	require.Len(t, resp.Lines, 3)
	extra := resp.Lines[2]
	assert.Equal(t, "prod-tra", extra.ProductID)
	assert.Equal(t, "fold-1", extra.FolderID)
	assert.Equal(t, "Servicio prod-tra - IMP-fold-1", extra.Description)
	assert.True(t, extra.Quantity.Equal(decimal.RequireFromString("1")))
	assert.True(t, extra.Subtotal.Equal(decimal.RequireFromString("40.00")), "subtotal: %s", extra.Subtotal)
	// 2 carpetas x 15 + 40 = 70
	assert.True(t, resp.NetTotal.Equal(decimal.RequireFromString("70.00")), "total: %s", resp.NetTotal)
}

func TestCreateInvoiceFullTransitWithoutProductFails(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	folder := f.addFolder("fold-1", "cust-1", "2", nil)
	folder.FullTransit = true
	f.addProduct("prod-adm", entity.InvoicePackIncome, entity.BillingModeNone, "15", "0")

	_, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindIncome,
		FolderIDs:  []string{"fold-1"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "tránsito completo")
	assert.Empty(t, f.invoices.invoices)
}

func TestCreateInvoiceStorageIgnoresFullTransit(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	days := 3
	folder := f.addFolder("fold-1", "cust-1", "2", &days)
	folder.FullTransit = true
	f.addProduct("prod-alm", entity.InvoicePackStorage, entity.BillingModeStorage, "10", "0")

	resp, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindStorage,
		FolderIDs:  []string{"fold-1"},
	})
	require.NoError(t, err)
	// El almacenamiento no lleva línea extra aunque la carpeta esté en tránsito.
	require.Len(t, resp.Lines, 1)
}

func TestCreateInvoiceOutboundBlockedByCompleteEgress(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	folder := f.addFolder("fold-1", "cust-1", "2", nil)
	folder.OutboundComplete = true
	f.addProduct("prod-egr", entity.InvoicePackOutcome, entity.BillingModeNone, "15", "0")

	_, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindOutcome,
		FolderIDs:  []string{"fold-1"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "egreso completo")
}

func TestCreateInvoiceStorageBlockedByClosedFolder(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	folder := f.addFolder("fold-1", "cust-1", "2", nil)
	folder.Closed = true
	f.addProduct("prod-alm", entity.InvoicePackStorage, entity.BillingModeStorage, "10", "0")

	_, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindStorage,
		FolderIDs:  []string{"fold-1"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFolderClosed)
}

func TestCreateInvoiceEmptyPack(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	f.addFolder("fold-1", "cust-1", "2", nil)

	_, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindIncome,
		FolderIDs:  []string{"fold-1"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateInvoiceFolderOfAnotherCustomer(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	f.addCustomer("cust-2", false)
	f.addFolder("fold-1", "cust-2", "2", nil)
	f.addProduct("prod-adm", entity.InvoicePackIncome, entity.BillingModeNone, "15", "0")

	_, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindIncome,
		FolderIDs:  []string{"fold-1"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetInvoice(t *testing.T) {
	f := newFixture()
	f.addCustomer("cust-1", false)
	days := 2
	f.addFolder("fold-1", "cust-1", "3", &days)
	f.addProduct("prod-alm", entity.InvoicePackStorage, entity.BillingModeStorage, "10", "0")

	created, err := f.createUC.CreateInvoice(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		CustomerID: "cust-1",
		Kind:       entity.InvoiceKindStorage,
		FolderIDs:  []string{"fold-1"},
	})
	require.NoError(t, err)

	got, err := f.createUC.GetInvoice(context.Background(), testCompanyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Number, got.Number)
	assert.Len(t, got.Lines, 1)

	_, err = f.createUC.GetInvoice(context.Background(), "otra-empresa", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
