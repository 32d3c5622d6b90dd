package pricing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
)

// RateLookup resuelve la tarifa diaria aplicable desde la lista de precios.
// ok = false significa "sin regla aplicable" (no es un error): el resolutor
// cae al ListPrice del producto.
type RateLookup interface {
	DailyRate(ctx context.Context, productID string, quantity decimal.Decimal, date time.Time) (rate decimal.Decimal, ok bool, err error)
}

// ExchangeLookup resuelve el tipo de cambio de la moneda de referencia a la
// moneda de la empresa. Si no hay tasa resoluble debe devolver
// *RateUnavailableError (nunca asumir 1.0).
type ExchangeLookup interface {
	RateToCompanyCurrency(ctx context.Context, companyID, currency string, date time.Time) (decimal.Decimal, error)
}

// SpecialRuleLookup busca las reglas de mínimo especial para la tripleta
// (cliente, producto, empresa). Cero resultados es el camino normal de
// fallback al piso global; más de uno viola el constraint único y el motor
// lo resuelve de forma determinista (ver política de mínimos).
type SpecialRuleLookup interface {
	Find(ctx context.Context, customerID, productID, companyID string) ([]entity.SpecialMinimumRule, error)
}
