package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFolderRequest body para POST /api/folders (carpeta de importación).
type CreateFolderRequest struct {
	CustomerID         string          `json:"customer_id"`
	Name               string          `json:"name"`
	EntryDate          time.Time       `json:"entry_date"`
	DaysInvoiced       *int            `json:"days_invoiced,omitempty"` // omitido = sin fijar
	TotalStorageVolume decimal.Decimal `json:"total_storage_volume"`
	DeclaredValue      decimal.Decimal `json:"declared_value,omitempty"` // FOB, moneda de referencia
}

// SetDaysInvoicedRequest body para PUT /api/folders/:id/days-invoiced.
type SetDaysInvoicedRequest struct {
	DaysInvoiced int `json:"days_invoiced"`
}

// SetEntryDateRequest body para PUT /api/folders/:id/entry-date.
type SetEntryDateRequest struct {
	EntryDate time.Time `json:"entry_date"`
}

// UpdateFolderStatusRequest body para PUT /api/folders/:id/status. Solo los
// campos presentes cambian; los omitidos conservan su estado actual.
type UpdateFolderStatusRequest struct {
	FullTransit      *bool `json:"full_transit,omitempty"`
	OutboundComplete *bool `json:"outbound_complete,omitempty"`
	Closed           *bool `json:"closed,omitempty"`
}

// FolderResponse carpeta en respuestas.
type FolderResponse struct {
	ID                 string          `json:"id"`
	CompanyID          string          `json:"company_id"`
	CustomerID         string          `json:"customer_id"`
	Name               string          `json:"name"`
	EntryDate          time.Time       `json:"entry_date"`
	DaysInvoiced       *int            `json:"days_invoiced,omitempty"`
	TotalStorageVolume decimal.Decimal `json:"total_storage_volume"`
	DeclaredValue      decimal.Decimal `json:"declared_value"`
	FullTransit        bool            `json:"full_transit"`
	OutboundComplete   bool            `json:"outbound_complete"`
	Closed             bool            `json:"closed"`
}
