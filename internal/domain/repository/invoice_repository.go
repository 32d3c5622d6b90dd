package repository

import "github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error)
	Update(invoice *entity.Invoice) error

	CreateLine(line *entity.InvoiceLine) error
	GetLineByID(id string) (*entity.InvoiceLine, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error)
	// UpdateLinePricing persiste la tripleta (cantidad, precio unitario,
	// subtotal) como salida atómica del motor: un único UPDATE de las tres
	// columnas, nunca aplicación parcial.
	UpdateLinePricing(lineID string, line *entity.InvoiceLine) error
}
