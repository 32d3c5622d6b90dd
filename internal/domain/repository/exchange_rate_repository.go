package repository

import (
	"time"

	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
)

// ExchangeRateRepository define el puerto de persistencia para tipos de cambio.
type ExchangeRateRepository interface {
	Create(rate *entity.ExchangeRate) error
	// LatestAsOf devuelve la tasa vigente más reciente para la moneda a la
	// fecha dada; nil sin error si no existe ninguna.
	LatestAsOf(companyID, currency string, date time.Time) (*entity.ExchangeRate, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.ExchangeRate, error)
}
