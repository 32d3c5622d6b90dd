// Package pricing implementa el motor de resolución de precios de líneas de
// factura: primero la tarifa natural según el modo de facturación del
// producto, después la política de precio mínimo (piso por cliente-producto o
// por producto). Todo recálculo de una línea pasa por el mismo pipeline
// PriceLine, de modo que ningún camino de código decida el piso por su cuenta.
package pricing

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
)

// DefaultDeclaredValueScale es el factor fijo del modo DECLARED_VALUE: el
// valor FOB declarado se factura en milésimas.
var DefaultDeclaredValueScale = decimal.RequireFromString("0.001")

// Engine es el motor de precios. Computación pura y síncrona: una invocación
// procesa una línea; las únicas lecturas externas son los tres lookups
// inyectados (solo lectura), por lo que invocaciones concurrentes sobre
// líneas distintas no requieren coordinación.
type Engine struct {
	rates       RateLookup
	fx          ExchangeLookup
	rules       SpecialRuleLookup
	refCurrency string
	scale       decimal.Decimal
	log         zerolog.Logger
	now         func() time.Time
}

// Config parámetros del motor.
type Config struct {
	ReferenceCurrency  string          // moneda de los valores FOB declarados (ej. USD)
	DeclaredValueScale decimal.Decimal // cero => DefaultDeclaredValueScale
}

// NewEngine construye el motor con sus colaboradores de solo lectura.
func NewEngine(rates RateLookup, fx ExchangeLookup, rules SpecialRuleLookup, cfg Config, log zerolog.Logger) *Engine {
	scale := cfg.DeclaredValueScale
	if scale.LessThanOrEqual(decimal.Zero) {
		scale = DefaultDeclaredValueScale
	}
	currency := cfg.ReferenceCurrency
	if currency == "" {
		currency = "USD"
	}
	return &Engine{
		rates:       rates,
		fx:          fx,
		rules:       rules,
		refCurrency: currency,
		scale:       scale,
		log:         log,
		now:         time.Now,
	}
}

// PriceLine ejecuta el pipeline completo resolver-luego-piso para una línea.
// Si la línea no usa precios especiales el motor no interviene: la tripleta
// es el paso directo precio × cantidad.
func (e *Engine) PriceLine(ctx context.Context, line *entity.InvoiceLine, product *entity.Product, customer *entity.Customer) (FinalRate, error) {
	if !line.UseCustomPricing {
		return FinalRate{
			NaturalRate: NaturalRate{
				Quantity:  line.Quantity,
				Days:      decimal.NewFromInt(1),
				UnitPrice: line.UnitPrice,
				Subtotal:  line.UnitPrice.Mul(line.Quantity).Round(CurrencyScale),
			},
			FloorSource: FloorSourceNone,
		}, nil
	}

	natural, err := e.ResolveNatural(ctx, line, product)
	if err != nil {
		return FinalRate{}, err
	}
	final, err := e.ApplyMinimum(ctx, natural, product, customer)
	if err != nil {
		return FinalRate{}, err
	}
	if final.FloorApplied {
		e.log.Debug().
			Str("product_id", product.ID).
			Str("customer_id", customer.ID).
			Str("floor_source", string(final.FloorSource)).
			Str("natural_subtotal", natural.Subtotal.String()).
			Str("minimum", final.EffectiveMinimum.String()).
			Msg("piso de precio mínimo aplicado")
	}
	return final, nil
}
