package billing

import (
	"context"
	"fmt"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// PDFInput datos resueltos para renderizar la representación gráfica.
type PDFInput struct {
	Invoice  *entity.Invoice
	Company  *entity.Company
	Customer *entity.Customer
	Lines    []*entity.InvoiceLine
	Products map[string]*entity.Product // por ID, para nombre y unidad de medida
}

// PDFUseCase genera el PDF de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// InvoicePDF resuelve la factura con sus colaboradores y genera el PDF.
// Devuelve los bytes y el nombre de archivo sugerido.
func (uc *PDFUseCase) InvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil || invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(invoice.CustomerID)
	if err != nil || customer == nil {
		return nil, "", domain.ErrNotFound
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(invoiceID)
	if err != nil {
		return nil, "", err
	}

	products := make(map[string]*entity.Product, len(lines))
	for _, line := range lines {
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err == nil && product != nil {
			products[line.ProductID] = product
		}
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, &PDFInput{
		Invoice:  invoice,
		Company:  company,
		Customer: customer,
		Lines:    lines,
		Products: products,
	})
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura-%s.pdf", invoice.Number), nil
}
