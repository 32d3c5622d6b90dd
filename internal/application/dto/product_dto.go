package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	BillingMode         string          `json:"billing_mode"` // NONE | STORAGE | DECLARED_VALUE
	InvoicePack         string          `json:"invoice_pack,omitempty"`
	ListPrice           decimal.Decimal `json:"list_price"`
	DefaultMinimumPrice decimal.Decimal `json:"default_minimum_price,omitempty"`
	GroupFolders        bool            `json:"group_folders,omitempty"`
	FullTransitProduct  bool            `json:"full_transit_product,omitempty"`
	UnitMeasure         string          `json:"unit_measure,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name                *string          `json:"name,omitempty"`
	Description         *string          `json:"description,omitempty"`
	BillingMode         *string          `json:"billing_mode,omitempty"`
	InvoicePack         *string          `json:"invoice_pack,omitempty"`
	ListPrice           *decimal.Decimal `json:"list_price,omitempty"`
	DefaultMinimumPrice *decimal.Decimal `json:"default_minimum_price,omitempty"`
	GroupFolders        *bool            `json:"group_folders,omitempty"`
	FullTransitProduct  *bool            `json:"full_transit_product,omitempty"`
}

// CreatePricelistItemRequest body para POST /api/products/:id/pricelist.
type CreatePricelistItemRequest struct {
	MinQuantity decimal.Decimal `json:"min_quantity"`
	FixedPrice  decimal.Decimal `json:"fixed_price"`
	DateStart   *time.Time      `json:"date_start,omitempty"`
	DateEnd     *time.Time      `json:"date_end,omitempty"`
}

// PricelistItemResponse regla de tarifa diaria en respuestas.
type PricelistItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	FixedPrice  decimal.Decimal `json:"fixed_price"`
	DateStart   *time.Time      `json:"date_start,omitempty"`
	DateEnd     *time.Time      `json:"date_end,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID                  string          `json:"id"`
	CompanyID           string          `json:"company_id"`
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	Description         string          `json:"description,omitempty"`
	BillingMode         string          `json:"billing_mode"`
	InvoicePack         string          `json:"invoice_pack,omitempty"`
	ListPrice           decimal.Decimal `json:"list_price"`
	DefaultMinimumPrice decimal.Decimal `json:"default_minimum_price"`
	GroupFolders        bool            `json:"group_folders"`
	FullTransitProduct  bool            `json:"full_transit_product"`
	UnitMeasure         string          `json:"unit_measure,omitempty"`
}
