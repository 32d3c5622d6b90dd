package repository

import (
	"time"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
)

// FolderRepository define el puerto de persistencia para TransitFolder
// (carpeta de importación).
type FolderRepository interface {
	Create(folder *entity.TransitFolder) error
	GetByID(id string) (*entity.TransitFolder, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.TransitFolder, error)
	// ListOpen devuelve las carpetas con tránsito no cerrado (ciclo de
	// facturación de almacenamiento).
	ListOpen(companyID string) ([]*entity.TransitFolder, error)
	Update(folder *entity.TransitFolder) error
	SetDaysInvoiced(id string, days int) error
	SetEntryDate(id string, entryDate time.Time) error
}
