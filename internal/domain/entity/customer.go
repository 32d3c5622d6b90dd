package entity

import "time"

// Customer representa un cliente de la empresa (facturación de carpetas de
// importación). WaivesMinimumPricing exime al cliente de todo piso de precio
// mínimo, para cualquier producto; MonthlyInvoice agrupa sus carpetas en una
// única factura mensual de almacenamiento.
type Customer struct {
	ID                   string
	CompanyID            string
	Name                 string
	TaxID                string
	Email                string
	Phone                string
	WaivesMinimumPricing bool
	MonthlyInvoice       bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
