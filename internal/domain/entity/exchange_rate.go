package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate es el tipo de cambio de la moneda de referencia (en la que se
// declaran los valores FOB, ej. USD) hacia la moneda operativa de la empresa.
// RateToCompany debe ser > 0: la conversión multiplica el valor declarado
// por 1/RateToCompany.
type ExchangeRate struct {
	ID            string
	CompanyID     string
	CurrencyCode  string // moneda de referencia (ej. USD)
	RateToCompany decimal.Decimal
	AsOfDate      time.Time
	CreatedAt     time.Time
}
