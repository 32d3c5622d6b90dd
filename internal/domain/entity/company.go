package entity

import "time"

// Company representa una organización/tenant del sistema. CurrencyCode es la
// moneda operativa en la que se expresan los subtotales de factura.
type Company struct {
	ID           string
	Name         string
	TaxID        string
	Address      string
	Phone        string
	Email        string
	CurrencyCode string // moneda operativa (ej. ARS, COP)
	Status       string // active, suspended, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
