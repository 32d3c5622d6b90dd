package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest body para POST /api/exchange-rates.
type CreateExchangeRateRequest struct {
	CurrencyCode  string          `json:"currency_code"`
	RateToCompany decimal.Decimal `json:"rate_to_company"`
	AsOfDate      time.Time       `json:"as_of_date"`
}

// ExchangeRateResponse tasa en respuestas.
type ExchangeRateResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	CurrencyCode  string          `json:"currency_code"`
	RateToCompany decimal.Decimal `json:"rate_to_company"`
	AsOfDate      time.Time       `json:"as_of_date"`
}
