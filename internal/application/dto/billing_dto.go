package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices: factura un conjunto de
// carpetas de importación con los productos del paquete indicado.
type CreateInvoiceRequest struct {
	CustomerID string   `json:"customer_id"`
	Kind       string   `json:"kind"` // income | outcome | storage
	FolderIDs  []string `json:"folder_ids"`
	Number     string   `json:"number,omitempty"` // opcional; si va vacío se genera
}

// InvoiceResponse factura con líneas para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID           string                `json:"id"`
	CompanyID    string                `json:"company_id"`
	CustomerID   string                `json:"customer_id"`
	CustomerName string                `json:"customer_name,omitempty"`
	Number       string                `json:"number"`
	Kind         string                `json:"kind"`
	Date         string                `json:"date"`
	Origin       string                `json:"origin,omitempty"`
	Status       string                `json:"status"`
	NetTotal     decimal.Decimal       `json:"net_total"`
	Lines        []InvoiceLineResponse `json:"lines"`
}

// InvoiceLineResponse línea en la respuesta. La tripleta (quantity,
// unit_price, subtotal) es la salida del motor de precios.
type InvoiceLineResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	FolderID         string          `json:"folder_id,omitempty"`
	Description      string          `json:"description,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	StorageDays      *int            `json:"storage_days,omitempty"`
	DeclaredValue    decimal.Decimal `json:"declared_value,omitempty"`
	UseCustomPricing bool            `json:"use_custom_pricing"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// RecomputeLineResponse resultado de re-ejecutar el motor sobre una línea.
type RecomputeLineResponse struct {
	LineID           string          `json:"line_id"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	FloorApplied     bool            `json:"floor_applied"`
	FloorSource      string          `json:"floor_source"`
	EffectiveMinimum decimal.Decimal `json:"effective_minimum,omitempty"`
}

// StorageRunFailure carpeta que no pudo facturarse en la corrida de almacenamiento.
type StorageRunFailure struct {
	CustomerID string `json:"customer_id"`
	FolderName string `json:"folder_name,omitempty"`
	Message    string `json:"message"`
}

// StorageRunResponse resumen de la corrida de facturación de almacenamiento.
type StorageRunResponse struct {
	InvoicesCreated int                 `json:"invoices_created"`
	LinesCreated    int                 `json:"lines_created"`
	Failures        []StorageRunFailure `json:"failures,omitempty"`
}
