package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricelistItem es una regla de lista de precios para la tarifa diaria de
// almacenamiento de un producto: aplica si la cantidad alcanza MinQuantity y
// la fecha cae dentro de la vigencia. Sin regla aplicable, la tarifa cae al
// ListPrice del producto.
type PricelistItem struct {
	ID          string
	CompanyID   string
	ProductID   string
	MinQuantity decimal.Decimal
	FixedPrice  decimal.Decimal // tarifa diaria fijada por la regla
	DateStart   *time.Time      // nil = sin límite inferior
	DateEnd     *time.Time      // nil = sin límite superior
	CreatedAt   time.Time
}
