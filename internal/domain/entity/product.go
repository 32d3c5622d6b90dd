package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingMode define la base de facturación de un producto. Variante cerrada
// y excluyente: un producto es STORAGE o DECLARED_VALUE, nunca ambos.
type BillingMode string

const (
	BillingModeNone          BillingMode = "NONE"           // sin facturación especial: precio × cantidad
	BillingModeStorage       BillingMode = "STORAGE"        // almacenamiento: cantidad × días × tarifa diaria
	BillingModeDeclaredValue BillingMode = "DECLARED_VALUE" // proporción sobre el valor FOB declarado
)

// Valid indica si el modo es uno de los tres valores permitidos.
func (m BillingMode) Valid() bool {
	switch m {
	case BillingModeNone, BillingModeStorage, BillingModeDeclaredValue:
		return true
	}
	return false
}

// Paquetes de facturación: determinan en qué tipo de factura de una carpeta
// de importación entra el producto (ingreso, egreso o almacenamiento).
const (
	InvoicePackNone    = ""
	InvoicePackIncome  = "income"
	InvoicePackOutcome = "outcome"
	InvoicePackStorage = "storage"
)

// Product representa la configuración de facturación de un servicio logístico
// (no el catálogo completo). ListPrice es la tarifa base (diaria en modo STORAGE);
// DefaultMinimumPrice es el piso global del subtotal (<= 0 significa sin piso).
type Product struct {
	ID                  string
	CompanyID           string
	SKU                 string // código único por empresa
	Name                string
	Description         string
	BillingMode         BillingMode
	InvoicePack         string          // income | outcome | storage | "" (no entra en paquetes)
	ListPrice           decimal.Decimal // tarifa base / tarifa diaria
	DefaultMinimumPrice decimal.Decimal // piso global del subtotal
	GroupFolders        bool            // true: una sola línea para todas las carpetas (cantidad = nº carpetas)
	FullTransitProduct  bool            // producto que se agrega como línea extra cuando hay carpetas en tránsito completo
	UnitMeasure         string          // ej. M3, UN
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
