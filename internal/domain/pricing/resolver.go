package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
)

// ResolveNatural calcula la tripleta natural de una línea según el modo de
// facturación del producto, antes de cualquier piso de precio mínimo. Es una
// función pura salvo las dos lecturas de colaboradores (lista de precios y
// tipo de cambio). El caller garantiza line.UseCustomPricing == true.
func (e *Engine) ResolveNatural(ctx context.Context, line *entity.InvoiceLine, product *entity.Product) (NaturalRate, error) {
	one := decimal.NewFromInt(1)

	switch product.BillingMode {
	case entity.BillingModeStorage:
		rate, ok, err := e.rates.DailyRate(ctx, product.ID, line.Quantity, e.now())
		if err != nil {
			return NaturalRate{}, err
		}
		if !ok {
			rate = product.ListPrice
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			return NaturalRate{}, &ConfigurationError{
				ProductID: product.ID,
				Reason:    "modo STORAGE sin tarifa de lista de precios ni precio de lista",
			}
		}
		// Días sin fijar => 1. El cero explícito sí se respeta (subtotal 0).
		days := one
		if line.StorageDays != nil {
			days = decimal.NewFromInt(int64(*line.StorageDays))
		}
		return NaturalRate{
			Quantity:  line.Quantity,
			Days:      days,
			UnitPrice: rate,
			Subtotal:  line.Quantity.Mul(days).Mul(rate).Round(CurrencyScale),
		}, nil

	case entity.BillingModeDeclaredValue:
		fx, err := e.fx.RateToCompanyCurrency(ctx, product.CompanyID, e.refCurrency, e.now())
		if err != nil {
			return NaturalRate{}, err
		}
		if fx.LessThanOrEqual(decimal.Zero) {
			return NaturalRate{}, &RateUnavailableError{Currency: e.refCurrency, Date: e.now()}
		}
		// Valor FOB en moneda de referencia -> moneda de la empresa (× 1/tasa),
		// luego el factor de escala (el valor declarado se factura en milésimas).
		subtotal := line.DeclaredValue.Div(fx).Mul(e.scale).Round(CurrencyScale)
		return NaturalRate{
			Quantity:  one,
			Days:      one,
			UnitPrice: subtotal,
			Subtotal:  subtotal,
		}, nil

	default:
		// Sin facturación especial: paso directo precio × cantidad.
		return NaturalRate{
			Quantity:  line.Quantity,
			Days:      one,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.UnitPrice.Mul(line.Quantity).Round(CurrencyScale),
		}, nil
	}
}
