package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpecialMinimumRule es el piso de precio mínimo específico de un cliente para
// un producto. A lo sumo existe una regla por (cliente, producto, empresa);
// la base de datos lo garantiza con un constraint único. Una regla con
// SpecialMinimumPrice <= 0 se trata como ausente (cae al piso global del producto).
type SpecialMinimumRule struct {
	ID                  string
	CompanyID           string
	CustomerID          string
	ProductID           string
	SpecialMinimumPrice decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
