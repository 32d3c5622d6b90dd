package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa una línea facturable. El motor de precios escribe la
// tripleta (Quantity, UnitPrice, Subtotal) como salida atómica: nunca se
// persiste una parte sin las otras dos.
//
// StorageDays solo tiene sentido en modo STORAGE; nil significa "sin fijar"
// (el motor asume 1 día), mientras que 0 explícito produce subtotal 0.
// DeclaredValue solo tiene sentido en modo DECLARED_VALUE (valor FOB, moneda
// de referencia). Si UseCustomPricing es false el motor no interviene y el
// subtotal es UnitPrice × Quantity sin modificar.
type InvoiceLine struct {
	ID               string
	InvoiceID        string
	ProductID        string
	FolderID         string // carpeta de importación relacionada (vacío si no aplica)
	Description      string
	Quantity         decimal.Decimal
	UnitPrice        decimal.Decimal
	StorageDays      *int
	DeclaredValue    decimal.Decimal
	UseCustomPricing bool
	Subtotal         decimal.Decimal
}
