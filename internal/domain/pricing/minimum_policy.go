package pricing

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
)

// ApplyMinimum decide si el subtotal natural debe elevarse a un piso y, en
// ese caso, recalcula (cantidad, precio unitario) para que el subtotal
// persistido sea exactamente el piso.
//
// Precedencia del piso: regla especial (cliente, producto, empresa) > mínimo
// global del producto > sin piso. La exención del cliente
// (WaivesMinimumPricing) corta todo antes de cualquier búsqueda.
//
// Cuando el piso obliga, se preserva la cantidad y los días originales y se
// ajusta solo el precio unitario (piso / (cantidad × días), redondeado a 6
// decimales): así la cantidad sigue reflejando el volumen realmente facturado
// para reportes y auditoría.
func (e *Engine) ApplyMinimum(ctx context.Context, natural NaturalRate, product *entity.Product, customer *entity.Customer) (FinalRate, error) {
	if customer.WaivesMinimumPricing {
		return FinalRate{NaturalRate: natural, FloorSource: FloorSourceNone}, nil
	}

	minimum, source, err := e.effectiveMinimum(ctx, customer.ID, product)
	if err != nil {
		return FinalRate{}, err
	}

	if minimum.LessThanOrEqual(decimal.Zero) || natural.Subtotal.GreaterThanOrEqual(minimum) {
		return FinalRate{
			NaturalRate:      natural,
			FloorSource:      source,
			EffectiveMinimum: minimum,
		}, nil
	}

	one := decimal.NewFromInt(1)
	quantity, days := natural.Quantity, natural.Days
	var unitPrice decimal.Decimal
	switch {
	case quantity.IsPositive() && days.IsPositive():
		unitPrice = minimum.DivRound(quantity.Mul(days), UnitPriceScale)
	case quantity.IsPositive():
		unitPrice = minimum.DivRound(quantity, UnitPriceScale)
		days = one
	case days.IsPositive():
		unitPrice = minimum.DivRound(days, UnitPriceScale)
		quantity = one
	default:
		// Sin drivers: línea unitaria al piso.
		unitPrice = minimum.Round(UnitPriceScale)
		quantity, days = one, one
	}

	return FinalRate{
		NaturalRate: NaturalRate{
			Quantity:  quantity,
			Days:      days,
			UnitPrice: unitPrice,
			Subtotal:  minimum.Round(CurrencyScale),
		},
		FloorApplied:     true,
		FloorSource:      source,
		EffectiveMinimum: minimum,
	}, nil
}

// effectiveMinimum resuelve el piso aplicable y su origen. La ausencia de
// regla especial no es error; un mínimo <= 0 se normaliza a "sin piso".
func (e *Engine) effectiveMinimum(ctx context.Context, customerID string, product *entity.Product) (decimal.Decimal, FloorSource, error) {
	rules, err := e.rules.Find(ctx, customerID, product.ID, product.CompanyID)
	if err != nil {
		return decimal.Zero, FloorSourceNone, err
	}
	if len(rules) > 1 {
		// Imposible bajo el constraint único; elegir la de menor ID y avisar
		// en vez de fallar.
		sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
		e.log.Warn().
			Str("customer_id", customerID).
			Str("product_id", product.ID).
			Int("rules", len(rules)).
			Msg("múltiples reglas de mínimo especial para la misma tripleta; se usa la de menor id")
	}
	if len(rules) > 0 && rules[0].SpecialMinimumPrice.IsPositive() {
		return rules[0].SpecialMinimumPrice, FloorSourceSpecial, nil
	}
	if product.DefaultMinimumPrice.IsPositive() {
		return product.DefaultMinimumPrice, FloorSourceGlobal, nil
	}
	return decimal.Zero, FloorSourceNone, nil
}
