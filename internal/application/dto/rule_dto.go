package dto

import "github.com/shopspring/decimal"

// CreateSpecialMinimumRequest body para POST /api/minimum-rules.
type CreateSpecialMinimumRequest struct {
	CustomerID          string          `json:"customer_id"`
	ProductID           string          `json:"product_id"`
	SpecialMinimumPrice decimal.Decimal `json:"special_minimum_price"`
}

// SpecialMinimumResponse regla en respuestas.
type SpecialMinimumResponse struct {
	ID                  string          `json:"id"`
	CompanyID           string          `json:"company_id"`
	CustomerID          string          `json:"customer_id"`
	ProductID           string          `json:"product_id"`
	SpecialMinimumPrice decimal.Decimal `json:"special_minimum_price"`
}
