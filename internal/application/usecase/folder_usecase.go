package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// FolderUseCase casos de uso de carpetas de importación. Incluye las dos
// operaciones que en el sistema original eran asistentes de pantalla: fijar
// los días a facturar y corregir la fecha de ingreso.
type FolderUseCase struct {
	repo         repository.FolderRepository
	customerRepo repository.CustomerRepository
}

// NewFolderUseCase construye el caso de uso.
func NewFolderUseCase(repo repository.FolderRepository, customerRepo repository.CustomerRepository) *FolderUseCase {
	return &FolderUseCase{repo: repo, customerRepo: customerRepo}
}

// Create registra una nueva carpeta de importación.
func (uc *FolderUseCase) Create(companyID string, in dto.CreateFolderRequest) (*dto.FolderResponse, error) {
	if in.CustomerID == "" || in.Name == "" || in.EntryDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.TotalStorageVolume.IsNegative() || in.DeclaredValue.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.DaysInvoiced != nil && *in.DaysInvoiced < 0 {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	folder := &entity.TransitFolder{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		CustomerID:         in.CustomerID,
		Name:               in.Name,
		EntryDate:          in.EntryDate,
		DaysInvoiced:       in.DaysInvoiced,
		TotalStorageVolume: in.TotalStorageVolume,
		DeclaredValue:      in.DeclaredValue,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(folder); err != nil {
		return nil, err
	}
	return toFolderResponse(folder), nil
}

// GetByID obtiene una carpeta de la empresa.
func (uc *FolderUseCase) GetByID(companyID, id string) (*dto.FolderResponse, error) {
	folder, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return toFolderResponse(folder), nil
}

// List lista las carpetas de la empresa.
func (uc *FolderUseCase) List(companyID string, limit, offset int) ([]*dto.FolderResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FolderResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFolderResponse(f))
	}
	return out, nil
}

// SetDaysInvoiced fija los días a facturar de la carpeta. Cero es un valor
// válido y deliberado: la próxima factura de almacenamiento sale en cero.
func (uc *FolderUseCase) SetDaysInvoiced(companyID, id string, in dto.SetDaysInvoicedRequest) (*dto.FolderResponse, error) {
	folder, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.DaysInvoiced < 0 {
		return nil, domain.ErrInvalidInput
	}
	if folder.Closed {
		return nil, domain.ErrFolderClosed
	}
	if err := uc.repo.SetDaysInvoiced(id, in.DaysInvoiced); err != nil {
		return nil, err
	}
	days := in.DaysInvoiced
	folder.DaysInvoiced = &days
	return toFolderResponse(folder), nil
}

// SetEntryDate corrige la fecha de ingreso de la carga al depósito.
func (uc *FolderUseCase) SetEntryDate(companyID, id string, in dto.SetEntryDateRequest) (*dto.FolderResponse, error) {
	folder, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.EntryDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if folder.Closed {
		return nil, domain.ErrFolderClosed
	}
	if err := uc.repo.SetEntryDate(id, in.EntryDate); err != nil {
		return nil, err
	}
	folder.EntryDate = in.EntryDate
	return toFolderResponse(folder), nil
}

// UpdateStatus cambia los indicadores de ciclo de vida del tránsito: carga
// completa fuera del depósito, egreso completo y cierre. Cerrar una carpeta la
// saca del ciclo de facturación de almacenamiento; reabrirla (closed=false) la
// reincorpora.
func (uc *FolderUseCase) UpdateStatus(companyID, id string, in dto.UpdateFolderStatusRequest) (*dto.FolderResponse, error) {
	folder, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.FullTransit == nil && in.OutboundComplete == nil && in.Closed == nil {
		return nil, domain.ErrInvalidInput
	}
	if in.FullTransit != nil {
		folder.FullTransit = *in.FullTransit
	}
	if in.OutboundComplete != nil {
		folder.OutboundComplete = *in.OutboundComplete
	}
	if in.Closed != nil {
		folder.Closed = *in.Closed
	}
	folder.UpdatedAt = time.Now()
	if err := uc.repo.Update(folder); err != nil {
		return nil, err
	}
	return toFolderResponse(folder), nil
}

func (uc *FolderUseCase) getOwned(companyID, id string) (*entity.TransitFolder, error) {
	folder, err := uc.repo.GetByID(id)
	if err != nil || folder == nil {
		return nil, domain.ErrNotFound
	}
	if folder.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return folder, nil
}

func toFolderResponse(f *entity.TransitFolder) *dto.FolderResponse {
	return &dto.FolderResponse{
		ID:                 f.ID,
		CompanyID:          f.CompanyID,
		CustomerID:         f.CustomerID,
		Name:               f.Name,
		EntryDate:          f.EntryDate,
		DaysInvoiced:       f.DaysInvoiced,
		TotalStorageVolume: f.TotalStorageVolume,
		DeclaredValue:      f.DeclaredValue,
		FullTransit:        f.FullTransit,
		OutboundComplete:   f.OutboundComplete,
		Closed:             f.Closed,
	}
}
