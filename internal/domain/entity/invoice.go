package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del documento de factura.
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusPosted    = "POSTED"
	InvoiceStatusCancelled = "CANCELLED"
)

// Tipos de factura según el paquete de productos que la origina.
const (
	InvoiceKindIncome  = "income"  // factura de ingreso
	InvoiceKindOutcome = "outcome" // factura de egreso
	InvoiceKindStorage = "storage" // factura de almacenamiento
)

// Invoice representa la cabecera de una factura de carpetas de importación.
type Invoice struct {
	ID         string
	CompanyID  string
	CustomerID string
	Number     string
	Kind       string // income | outcome | storage
	Date       time.Time
	Origin     string // carpetas que originan la factura (ej. "IMP-0153-IMP-0160")
	Status     string
	NetTotal   decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
