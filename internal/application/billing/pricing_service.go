package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/pricing"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// PricingService es el único camino de recálculo de precios de una línea:
// toda mutación relevante (alta de línea, cambio de cantidad, días, valor
// declarado) pasa por aquí, de modo que nunca dos rutas de código decidan el
// piso por su cuenta.
type PricingService struct {
	engine       *pricing.Engine
	txRunner     BillingTxRunner
	invoiceRepo  repository.InvoiceRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewPricingService construye el servicio.
func NewPricingService(
	engine *pricing.Engine,
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *PricingService {
	return &PricingService{
		engine:       engine,
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// PriceLine ejecuta el motor para una línea ya cargada (sin persistir).
func (s *PricingService) PriceLine(ctx context.Context, line *entity.InvoiceLine, product *entity.Product, customer *entity.Customer) (pricing.FinalRate, error) {
	return s.engine.PriceLine(ctx, line, product, customer)
}

// RecomputeLine re-ejecuta el pipeline sobre una línea persistida y guarda la
// tripleta (cantidad, precio unitario, subtotal) en un único UPDATE. Con los
// mismos insumos produce exactamente el mismo resultado (idempotente).
func (s *PricingService) RecomputeLine(ctx context.Context, companyID, invoiceID, lineID string) (*dto.RecomputeLineResponse, error) {
	invoice, err := s.invoiceRepo.GetByID(invoiceID)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	line, err := s.invoiceRepo.GetLineByID(lineID)
	if err != nil || line == nil || line.InvoiceID != invoiceID {
		return nil, domain.ErrNotFound
	}
	product, err := s.productRepo.GetByID(line.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := s.customerRepo.GetByID(invoice.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}

	final, err := s.engine.PriceLine(ctx, line, product, customer)
	if err != nil {
		return nil, err
	}

	line.Quantity = final.Quantity
	line.UnitPrice = final.UnitPrice
	line.Subtotal = final.Subtotal

	// La tripleta de la línea y el total de cabecera se persisten juntos: una
	// factura nunca queda con NetTotal distinto de la suma de sus líneas.
	err = s.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.FolderRepository) error {
		if err := invoiceRepo.UpdateLinePricing(line.ID, line); err != nil {
			return err
		}
		lines, err := invoiceRepo.GetLinesByInvoiceID(invoiceID)
		if err != nil {
			return err
		}
		var netTotal decimal.Decimal
		for _, l := range lines {
			netTotal = netTotal.Add(l.Subtotal)
		}
		invoice.NetTotal = netTotal
		invoice.UpdatedAt = time.Now()
		return invoiceRepo.Update(invoice)
	})
	if err != nil {
		return nil, err
	}

	return &dto.RecomputeLineResponse{
		LineID:           line.ID,
		Quantity:         final.Quantity,
		UnitPrice:        final.UnitPrice,
		Subtotal:         final.Subtotal,
		FloorApplied:     final.FloorApplied,
		FloorSource:      string(final.FloorSource),
		EffectiveMinimum: final.EffectiveMinimum,
	}, nil
}
