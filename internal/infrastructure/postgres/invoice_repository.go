package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, customer_id, number, kind, date, origin, status, net_total, created_at, updated_at`
const lineColumns = `id, invoice_id, product_id, folder_id, description, quantity, unit_price, storage_days, declared_value, use_custom_pricing, subtotal`

// Create persiste la cabecera de una factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, invoice.Number, invoice.Kind,
		invoice.Date, invoice.Origin, invoice.Status, invoice.NetTotal, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.Kind,
		&inv.Date, &inv.Origin, &inv.Status, &inv.NetTotal, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// ListByCompany lista facturas de la empresa con paginación.
func (r *InvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE company_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Number, &inv.Kind, &inv.Date, &inv.Origin, &inv.Status, &inv.NetTotal, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una factura.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices SET number = $2, status = $3, net_total = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.Status, invoice.NetTotal, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de factura.
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ProductID, nullIfEmpty(line.FolderID), line.Description,
		line.Quantity, line.UnitPrice, line.StorageDays, line.DeclaredValue,
		line.UseCustomPricing, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetLineByID obtiene una línea por ID.
func (r *InvoiceRepo) GetLineByID(id string) (*entity.InvoiceLine, error) {
	query := `SELECT ` + lineColumns + ` FROM invoice_lines WHERE id = $1`
	var l entity.InvoiceLine
	var folderID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.InvoiceID, &l.ProductID, &folderID, &l.Description,
		&l.Quantity, &l.UnitPrice, &l.StorageDays, &l.DeclaredValue, &l.UseCustomPricing, &l.Subtotal,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice line: %w", err)
	}
	if folderID != nil {
		l.FolderID = *folderID
	}
	return &l, nil
}

// GetLinesByInvoiceID lista las líneas de la factura en orden de inserción.
func (r *InvoiceRepo) GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `SELECT ` + lineColumns + ` FROM invoice_lines WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		var folderID *string
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ProductID, &folderID, &l.Description, &l.Quantity, &l.UnitPrice, &l.StorageDays, &l.DeclaredValue, &l.UseCustomPricing, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		if folderID != nil {
			l.FolderID = *folderID
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// UpdateLinePricing escribe la tripleta (cantidad, precio unitario, subtotal)
// en un único UPDATE: la salida del motor se aplica completa o no se aplica.
func (r *InvoiceRepo) UpdateLinePricing(lineID string, line *entity.InvoiceLine) error {
	query := `
		UPDATE invoice_lines SET quantity = $2, unit_price = $3, subtotal = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lineID, line.Quantity, line.UnitPrice, line.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("update line pricing: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
