package billing

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/pricing"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// Adaptadores de repositorios a los lookups de solo lectura del motor de
// precios. El motor queda aislado de la tecnología de almacenamiento y es
// testeable con fixtures en memoria.

type pricelistRateLookup struct {
	repo repository.PricelistRepository
}

func (l pricelistRateLookup) DailyRate(_ context.Context, productID string, quantity decimal.Decimal, date time.Time) (decimal.Decimal, bool, error) {
	return l.repo.ApplicableRate(productID, quantity, date)
}

type exchangeRateLookup struct {
	repo repository.ExchangeRateRepository
}

func (l exchangeRateLookup) RateToCompanyCurrency(_ context.Context, companyID, currency string, date time.Time) (decimal.Decimal, error) {
	rate, err := l.repo.LatestAsOf(companyID, currency, date)
	if err != nil {
		return decimal.Zero, err
	}
	if rate == nil || !rate.RateToCompany.IsPositive() {
		// Nunca degradar a tasa 1.0: el caller decide abortar o cargar la tasa.
		return decimal.Zero, &pricing.RateUnavailableError{Currency: currency, Date: date}
	}
	return rate.RateToCompany, nil
}

type specialRuleLookup struct {
	repo repository.SpecialMinimumRepository
}

func (l specialRuleLookup) Find(_ context.Context, customerID, productID, companyID string) ([]entity.SpecialMinimumRule, error) {
	rules, err := l.repo.FindByTriple(customerID, productID, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.SpecialMinimumRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, *r)
	}
	return out, nil
}

// NewEngine construye el motor de precios sobre los repositorios de la aplicación.
func NewEngine(
	pricelistRepo repository.PricelistRepository,
	exchangeRepo repository.ExchangeRateRepository,
	ruleRepo repository.SpecialMinimumRepository,
	cfg pricing.Config,
	log zerolog.Logger,
) *pricing.Engine {
	return pricing.NewEngine(
		pricelistRateLookup{repo: pricelistRepo},
		exchangeRateLookup{repo: exchangeRepo},
		specialRuleLookup{repo: ruleRepo},
		cfg,
		log,
	)
}
