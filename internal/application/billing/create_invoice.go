package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// CreateInvoiceUseCase arma una factura a partir de carpetas de importación y
// el paquete de productos del tipo solicitado (ingreso, egreso o
// almacenamiento). Cada línea pasa por el motor de precios antes de
// persistirse; la factura y sus líneas se guardan en una sola transacción.
type CreateInvoiceUseCase struct {
	txRunner     BillingTxRunner
	pricer       *PricingService
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	folderRepo   repository.FolderRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	pricer *PricingService,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	folderRepo repository.FolderRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:     txRunner,
		pricer:       pricer,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		folderRepo:   folderRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// CreateInvoice crea la factura para las carpetas indicadas.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.FolderIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch in.Kind {
	case entity.InvoiceKindIncome, entity.InvoiceKindOutcome, entity.InvoiceKindStorage:
	default:
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	// Validar carpetas: existen, son del cliente y admiten este tipo de factura.
	folders := make([]*entity.TransitFolder, 0, len(in.FolderIDs))
	for _, id := range in.FolderIDs {
		folder, err := uc.folderRepo.GetByID(id)
		if err != nil || folder == nil {
			return nil, domain.ErrNotFound
		}
		if folder.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if folder.CustomerID != in.CustomerID {
			return nil, fmt.Errorf("la carpeta %s no pertenece al cliente: %w", folder.Name, domain.ErrInvalidInput)
		}
		if in.Kind == entity.InvoiceKindOutcome && folder.OutboundComplete {
			return nil, fmt.Errorf("este tránsito no se puede facturar porque está en egreso completo (carpeta %s): %w", folder.Name, domain.ErrConflict)
		}
		if in.Kind == entity.InvoiceKindStorage && folder.Closed {
			return nil, fmt.Errorf("carpeta %s: %w", folder.Name, domain.ErrFolderClosed)
		}
		folders = append(folders, folder)
	}

	products, err := uc.productRepo.ListByPack(companyID, in.Kind)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("no hay productos configurados con el paquete solicitado: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	invoiceID := uuid.New().String()
	folderNames := make([]string, 0, len(folders))
	for _, f := range folders {
		folderNames = append(folderNames, f.Name)
	}
	origin := strings.Join(folderNames, "-")

	// Armar y tarifar las líneas fuera de la transacción (el motor solo lee).
	var lines []*entity.InvoiceLine
	var netTotal decimal.Decimal
	for _, product := range products {
		built, err := uc.buildLines(invoiceID, product, folders)
		if err != nil {
			return nil, err
		}
		for _, line := range built {
			final, err := uc.pricer.PriceLine(ctx, line, product, customer)
			if err != nil {
				return nil, fmt.Errorf("tarifar %s (carpeta %s): %w", product.Name, line.Description, err)
			}
			line.Quantity = final.Quantity
			line.UnitPrice = final.UnitPrice
			line.Subtotal = final.Subtotal
			netTotal = netTotal.Add(final.Subtotal)
			lines = append(lines, line)
		}
	}

	// Las facturas de ingreso y egreso agregan una línea extra si alguna de
	// las carpetas está en tránsito completo.
	if in.Kind != entity.InvoiceKindStorage {
		extra, err := uc.buildFullTransitLine(ctx, invoiceID, companyID, customer, folders)
		if err != nil {
			return nil, err
		}
		if extra != nil {
			netTotal = netTotal.Add(extra.Subtotal)
			lines = append(lines, extra)
		}
	}

	number := in.Number
	if number == "" {
		number = fmt.Sprintf("%s-%d", strings.ToUpper(in.Kind), now.Unix())
	}
	invoice := &entity.Invoice{
		ID:         invoiceID,
		CompanyID:  companyID,
		CustomerID: in.CustomerID,
		Number:     number,
		Kind:       in.Kind,
		Date:       now,
		Origin:     origin,
		Status:     entity.InvoiceStatusDraft,
		NetTotal:   netTotal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.FolderRepository) error {
		if err := invoiceRepo.Create(invoice); err != nil {
			return err
		}
		for _, line := range lines {
			if err := invoiceRepo.CreateLine(line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(invoice, customer.Name, lines), nil
}

// buildLines genera las líneas de un producto para las carpetas: una por
// carpeta, o una sola agrupada (cantidad = nº de carpetas) si el producto
// factura en línea única.
func (uc *CreateInvoiceUseCase) buildLines(invoiceID string, product *entity.Product, folders []*entity.TransitFolder) ([]*entity.InvoiceLine, error) {
	useCustom := product.BillingMode != entity.BillingModeNone

	if product.GroupFolders {
		names := make([]string, 0, len(folders))
		for _, f := range folders {
			names = append(names, f.Name)
		}
		return []*entity.InvoiceLine{{
			ID:               uuid.New().String(),
			InvoiceID:        invoiceID,
			ProductID:        product.ID,
			FolderID:         folders[0].ID,
			Description:      fmt.Sprintf("%s - %s", product.Name, strings.Join(names, "-")),
			Quantity:         decimal.NewFromInt(int64(len(folders))),
			UnitPrice:        product.ListPrice,
			UseCustomPricing: useCustom,
		}}, nil
	}

	lines := make([]*entity.InvoiceLine, 0, len(folders))
	for _, folder := range folders {
		line := &entity.InvoiceLine{
			ID:               uuid.New().String(),
			InvoiceID:        invoiceID,
			ProductID:        product.ID,
			FolderID:         folder.ID,
			Description:      fmt.Sprintf("%s - %s", product.Name, folder.Name),
			Quantity:         decimal.NewFromInt(1),
			UnitPrice:        product.ListPrice,
			StorageDays:      folder.DaysInvoiced,
			DeclaredValue:    folder.DeclaredValue,
			UseCustomPricing: useCustom,
		}
		if product.BillingMode == entity.BillingModeStorage {
			line.Quantity = folder.TotalStorageVolume
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// buildFullTransitLine arma la línea extra de tránsito completo: una sola
// línea con cantidad 1 y el producto marcado como tránsito completo, asociada
// a la primera carpeta en ese estado. Si ninguna carpeta está en tránsito
// completo devuelve nil; si lo están y no hay producto configurado, es error.
func (uc *CreateInvoiceUseCase) buildFullTransitLine(ctx context.Context, invoiceID, companyID string, customer *entity.Customer, folders []*entity.TransitFolder) (*entity.InvoiceLine, error) {
	var transit []*entity.TransitFolder
	for _, f := range folders {
		if f.FullTransit {
			transit = append(transit, f)
		}
	}
	if len(transit) == 0 {
		return nil, nil
	}

	product, err := uc.productRepo.FindFullTransit(companyID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("no hay productos configurados como producto de tránsito completo: %w", domain.ErrInvalidInput)
	}

	names := make([]string, 0, len(transit))
	for _, f := range transit {
		names = append(names, f.Name)
	}
	line := &entity.InvoiceLine{
		ID:               uuid.New().String(),
		InvoiceID:        invoiceID,
		ProductID:        product.ID,
		FolderID:         transit[0].ID,
		Description:      fmt.Sprintf("%s - %s", product.Name, strings.Join(names, "-")),
		Quantity:         decimal.NewFromInt(1),
		UnitPrice:        product.ListPrice,
		UseCustomPricing: product.BillingMode != entity.BillingModeNone,
	}
	final, err := uc.pricer.PriceLine(ctx, line, product, customer)
	if err != nil {
		return nil, fmt.Errorf("tarifar %s: %w", product.Name, err)
	}
	line.Quantity = final.Quantity
	line.UnitPrice = final.UnitPrice
	line.Subtotal = final.Subtotal
	return line, nil
}

// GetInvoice obtiene una factura por ID con sus líneas.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil || invoice == nil {
		return nil, domain.ErrNotFound
	}
	if invoice.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.invoiceRepo.GetLinesByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	customer, _ := uc.customerRepo.GetByID(invoice.CustomerID)
	customerName := ""
	if customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(invoice, customerName, lines), nil
}

func (uc *CreateInvoiceUseCase) toResponse(invoice *entity.Invoice, customerName string, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:           invoice.ID,
		CompanyID:    invoice.CompanyID,
		CustomerID:   invoice.CustomerID,
		CustomerName: customerName,
		Number:       invoice.Number,
		Kind:         invoice.Kind,
		Date:         invoice.Date.Format("2006-01-02"),
		Origin:       invoice.Origin,
		Status:       invoice.Status,
		NetTotal:     invoice.NetTotal,
		Lines:        make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.InvoiceLineResponse{
			ID:               l.ID,
			ProductID:        l.ProductID,
			FolderID:         l.FolderID,
			Description:      l.Description,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
			StorageDays:      l.StorageDays,
			DeclaredValue:    l.DeclaredValue,
			UseCustomPricing: l.UseCustomPricing,
			Subtotal:         l.Subtotal,
		})
	}
	return resp
}
