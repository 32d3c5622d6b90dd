package billing_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// Repositorios en memoria para los tests de casos de uso de facturación.

type memCustomerRepo struct {
	items map[string]*entity.Customer
}

func newMemCustomerRepo(customers ...*entity.Customer) *memCustomerRepo {
	r := &memCustomerRepo{items: map[string]*entity.Customer{}}
	for _, c := range customers {
		r.items[c.ID] = c
	}
	return r
}

func (r *memCustomerRepo) Create(c *entity.Customer) error { r.items[c.ID] = c; return nil }
func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.items[id], nil
}
func (r *memCustomerRepo) GetByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error) {
	for _, c := range r.items {
		if c.CompanyID == companyID && c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (r *memCustomerRepo) ListByCompany(companyID string, _, _ int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.items {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (r *memCustomerRepo) Update(c *entity.Customer) error { r.items[c.ID] = c; return nil }

type memProductRepo struct {
	items map[string]*entity.Product
}

func newMemProductRepo(products ...*entity.Product) *memProductRepo {
	r := &memProductRepo{items: map[string]*entity.Product{}}
	for _, p := range products {
		r.items[p.ID] = p
	}
	return r
}

func (r *memProductRepo) Create(p *entity.Product) error { r.items[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.items[id], nil
}
func (r *memProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.items {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) ListByCompany(companyID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.items {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProductRepo) ListByPack(companyID, pack string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.items {
		if p.CompanyID == companyID && p.InvoicePack == pack {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *memProductRepo) FindFullTransit(companyID string) (*entity.Product, error) {
	var best *entity.Product
	for _, p := range r.items {
		if p.CompanyID != companyID || !p.FullTransitProduct {
			continue
		}
		if best == nil || p.SKU < best.SKU {
			best = p
		}
	}
	return best, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.items[p.ID] = p; return nil }

type memFolderRepo struct {
	items map[string]*entity.TransitFolder
	order []string
}

func newMemFolderRepo(folders ...*entity.TransitFolder) *memFolderRepo {
	r := &memFolderRepo{items: map[string]*entity.TransitFolder{}}
	for _, f := range folders {
		r.items[f.ID] = f
		r.order = append(r.order, f.ID)
	}
	return r
}

func (r *memFolderRepo) Create(f *entity.TransitFolder) error {
	r.items[f.ID] = f
	r.order = append(r.order, f.ID)
	return nil
}
func (r *memFolderRepo) GetByID(id string) (*entity.TransitFolder, error) {
	return r.items[id], nil
}
func (r *memFolderRepo) ListByCompany(companyID string, _, _ int) ([]*entity.TransitFolder, error) {
	var out []*entity.TransitFolder
	for _, id := range r.order {
		if f := r.items[id]; f.CompanyID == companyID {
			out = append(out, f)
		}
	}
	return out, nil
}
func (r *memFolderRepo) ListOpen(companyID string) ([]*entity.TransitFolder, error) {
	var out []*entity.TransitFolder
	for _, id := range r.order {
		if f := r.items[id]; f.CompanyID == companyID && !f.Closed {
			out = append(out, f)
		}
	}
	return out, nil
}
func (r *memFolderRepo) Update(f *entity.TransitFolder) error { r.items[f.ID] = f; return nil }
func (r *memFolderRepo) SetDaysInvoiced(id string, days int) error {
	if f := r.items[id]; f != nil {
		f.DaysInvoiced = &days
	}
	return nil
}
func (r *memFolderRepo) SetEntryDate(id string, entryDate time.Time) error {
	if f := r.items[id]; f != nil {
		f.EntryDate = entryDate
	}
	return nil
}

type memInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	lines    map[string]*entity.InvoiceLine
	lineIDs  []string
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		lines:    map[string]*entity.InvoiceLine{},
	}
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error { r.invoices[inv.ID] = inv; return nil }
func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.invoices[id], nil
}
func (r *memInvoiceRepo) ListByCompany(companyID string, _, _ int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID == companyID {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (r *memInvoiceRepo) Update(inv *entity.Invoice) error { r.invoices[inv.ID] = inv; return nil }
func (r *memInvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	r.lines[line.ID] = line
	r.lineIDs = append(r.lineIDs, line.ID)
	return nil
}
func (r *memInvoiceRepo) GetLineByID(id string) (*entity.InvoiceLine, error) {
	return r.lines[id], nil
}
func (r *memInvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	for _, id := range r.lineIDs {
		if l := r.lines[id]; l.InvoiceID == invoiceID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *memInvoiceRepo) UpdateLinePricing(lineID string, line *entity.InvoiceLine) error {
	r.lines[lineID] = line
	return nil
}

type memRuleRepo struct {
	items []*entity.SpecialMinimumRule
}

func (r *memRuleRepo) Create(rule *entity.SpecialMinimumRule) error {
	r.items = append(r.items, rule)
	return nil
}
func (r *memRuleRepo) GetByID(id string) (*entity.SpecialMinimumRule, error) {
	for _, rule := range r.items {
		if rule.ID == id {
			return rule, nil
		}
	}
	return nil, nil
}
func (r *memRuleRepo) FindByTriple(customerID, productID, companyID string) ([]*entity.SpecialMinimumRule, error) {
	var out []*entity.SpecialMinimumRule
	for _, rule := range r.items {
		if rule.CustomerID == customerID && rule.ProductID == productID && rule.CompanyID == companyID {
			out = append(out, rule)
		}
	}
	return out, nil
}
func (r *memRuleRepo) ListByCompany(companyID string, _, _ int) ([]*entity.SpecialMinimumRule, error) {
	var out []*entity.SpecialMinimumRule
	for _, rule := range r.items {
		if rule.CompanyID == companyID {
			out = append(out, rule)
		}
	}
	return out, nil
}
func (r *memRuleRepo) Delete(id string) error {
	for i, rule := range r.items {
		if rule.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type memExchangeRepo struct {
	items []*entity.ExchangeRate
}

func (r *memExchangeRepo) Create(rate *entity.ExchangeRate) error {
	r.items = append(r.items, rate)
	return nil
}
func (r *memExchangeRepo) LatestAsOf(companyID, currency string, date time.Time) (*entity.ExchangeRate, error) {
	var best *entity.ExchangeRate
	for _, rate := range r.items {
		if rate.CompanyID != companyID || rate.CurrencyCode != currency || rate.AsOfDate.After(date) {
			continue
		}
		if best == nil || rate.AsOfDate.After(best.AsOfDate) {
			best = rate
		}
	}
	return best, nil
}
func (r *memExchangeRepo) ListByCompany(companyID string, _, _ int) ([]*entity.ExchangeRate, error) {
	var out []*entity.ExchangeRate
	for _, rate := range r.items {
		if rate.CompanyID == companyID {
			out = append(out, rate)
		}
	}
	return out, nil
}

type memPricelistRepo struct {
	items []*entity.PricelistItem
}

func (r *memPricelistRepo) Create(item *entity.PricelistItem) error {
	r.items = append(r.items, item)
	return nil
}
func (r *memPricelistRepo) ListByProduct(productID string) ([]*entity.PricelistItem, error) {
	var out []*entity.PricelistItem
	for _, item := range r.items {
		if item.ProductID == productID {
			out = append(out, item)
		}
	}
	return out, nil
}
func (r *memPricelistRepo) ApplicableRate(productID string, quantity decimal.Decimal, date time.Time) (decimal.Decimal, bool, error) {
	var best *entity.PricelistItem
	for _, item := range r.items {
		if item.ProductID != productID || quantity.LessThan(item.MinQuantity) {
			continue
		}
		if item.DateStart != nil && date.Before(*item.DateStart) {
			continue
		}
		if item.DateEnd != nil && date.After(*item.DateEnd) {
			continue
		}
		if best == nil || item.MinQuantity.GreaterThan(best.MinQuantity) {
			best = item
		}
	}
	if best == nil {
		return decimal.Zero, false, nil
	}
	return best.FixedPrice, true, nil
}

// memTxRunner ejecuta el callback directamente sobre los repos en memoria.
type memTxRunner struct {
	invoiceRepo repository.InvoiceRepository
	folderRepo  repository.FolderRepository
}

func (r memTxRunner) RunBilling(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	folderRepo repository.FolderRepository,
) error) error {
	return fn(r.invoiceRepo, r.folderRepo)
}
