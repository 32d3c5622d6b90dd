package dto

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name                 string `json:"name"`
	TaxID                string `json:"tax_id"`
	Email                string `json:"email,omitempty"`
	Phone                string `json:"phone,omitempty"`
	WaivesMinimumPricing bool   `json:"waives_minimum_pricing,omitempty"`
	MonthlyInvoice       bool   `json:"monthly_invoice,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id (campos opcionales).
type UpdateCustomerRequest struct {
	Name                 *string `json:"name,omitempty"`
	Email                *string `json:"email,omitempty"`
	Phone                *string `json:"phone,omitempty"`
	WaivesMinimumPricing *bool   `json:"waives_minimum_pricing,omitempty"`
	MonthlyInvoice       *bool   `json:"monthly_invoice,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                   string `json:"id"`
	CompanyID            string `json:"company_id"`
	Name                 string `json:"name"`
	TaxID                string `json:"tax_id"`
	Email                string `json:"email,omitempty"`
	Phone                string `json:"phone,omitempty"`
	WaivesMinimumPricing bool   `json:"waives_minimum_pricing"`
	MonthlyInvoice       bool   `json:"monthly_invoice"`
}
