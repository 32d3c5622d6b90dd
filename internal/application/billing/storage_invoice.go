package billing

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// StorageInvoiceUseCase ejecuta la corrida de facturación de almacenamiento:
// toma todas las carpetas con tránsito abierto y genera sus facturas. Los
// clientes con factura mensual única reciben una sola factura con todas sus
// carpetas; el resto, una factura por carpeta. Una carpeta que falla (por
// ejemplo, sin tipo de cambio) no detiene la corrida: se registra y se sigue.
type StorageInvoiceUseCase struct {
	folderRepo   repository.FolderRepository
	customerRepo repository.CustomerRepository
	createUC     *CreateInvoiceUseCase
	log          zerolog.Logger
}

// NewStorageInvoiceUseCase construye el caso de uso.
func NewStorageInvoiceUseCase(
	folderRepo repository.FolderRepository,
	customerRepo repository.CustomerRepository,
	createUC *CreateInvoiceUseCase,
	log zerolog.Logger,
) *StorageInvoiceUseCase {
	return &StorageInvoiceUseCase{
		folderRepo:   folderRepo,
		customerRepo: customerRepo,
		createUC:     createUC,
		log:          log,
	}
}

// Run genera las facturas de almacenamiento de todas las carpetas abiertas de
// la empresa y devuelve el resumen de la corrida.
func (uc *StorageInvoiceUseCase) Run(ctx context.Context, companyID string) (*dto.StorageRunResponse, error) {
	folders, err := uc.folderRepo.ListOpen(companyID)
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[string][]*entity.TransitFolder)
	order := make([]string, 0)
	for _, folder := range folders {
		if _, seen := byCustomer[folder.CustomerID]; !seen {
			order = append(order, folder.CustomerID)
		}
		byCustomer[folder.CustomerID] = append(byCustomer[folder.CustomerID], folder)
	}

	out := &dto.StorageRunResponse{}
	for _, customerID := range order {
		customerFolders := byCustomer[customerID]
		customer, err := uc.customerRepo.GetByID(customerID)
		if err != nil || customer == nil {
			out.Failures = append(out.Failures, dto.StorageRunFailure{
				CustomerID: customerID,
				Message:    "cliente no encontrado",
			})
			continue
		}

		if customer.MonthlyInvoice {
			// Factura mensual única: todas las carpetas abiertas en un documento.
			ids := make([]string, 0, len(customerFolders))
			for _, f := range customerFolders {
				ids = append(ids, f.ID)
			}
			uc.createFor(ctx, companyID, customerID, ids, customerFolders[0].Name, out)
			continue
		}
		for _, folder := range customerFolders {
			uc.createFor(ctx, companyID, customerID, []string{folder.ID}, folder.Name, out)
		}
	}

	uc.log.Info().
		Str("company_id", companyID).
		Int("invoices", out.InvoicesCreated).
		Int("lines", out.LinesCreated).
		Int("failures", len(out.Failures)).
		Msg("corrida de facturación de almacenamiento finalizada")
	return out, nil
}

func (uc *StorageInvoiceUseCase) createFor(ctx context.Context, companyID, customerID string, folderIDs []string, folderName string, out *dto.StorageRunResponse) {
	resp, err := uc.createUC.CreateInvoice(ctx, companyID, dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Kind:       entity.InvoiceKindStorage,
		FolderIDs:  folderIDs,
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("customer_id", customerID).
			Str("folder", folderName).
			Msg("no se pudo generar la factura de almacenamiento")
		out.Failures = append(out.Failures, dto.StorageRunFailure{
			CustomerID: customerID,
			FolderName: folderName,
			Message:    err.Error(),
		})
		return
	}
	out.InvoicesCreated++
	out.LinesCreated += len(resp.Lines)
}
