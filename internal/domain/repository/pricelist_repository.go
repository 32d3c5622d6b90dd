package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
)

// PricelistRepository define el puerto de consulta de la lista de precios de
// tarifas diarias de almacenamiento.
type PricelistRepository interface {
	Create(item *entity.PricelistItem) error
	ListByProduct(productID string) ([]*entity.PricelistItem, error)
	// ApplicableRate devuelve la tarifa de la regla aplicable (mayor
	// MinQuantity satisfecha, vigente a la fecha); ok = false si ninguna aplica.
	ApplicableRate(productID string, quantity decimal.Decimal, date time.Time) (rate decimal.Decimal, ok bool, err error)
}
