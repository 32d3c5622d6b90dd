package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// ExchangeRateUseCase casos de uso de tipos de cambio. El motor de precios
// consume la última tasa vigente a la fecha; aquí solo se cargan y consultan.
type ExchangeRateUseCase struct {
	repo repository.ExchangeRateRepository
}

// NewExchangeRateUseCase construye el caso de uso.
func NewExchangeRateUseCase(repo repository.ExchangeRateRepository) *ExchangeRateUseCase {
	return &ExchangeRateUseCase{repo: repo}
}

// Create carga una tasa. Debe ser estrictamente positiva: una tasa en cero
// dejaría la conversión de valor declarado indefinida.
func (uc *ExchangeRateUseCase) Create(companyID string, in dto.CreateExchangeRateRequest) (*dto.ExchangeRateResponse, error) {
	if in.CurrencyCode == "" || in.AsOfDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !in.RateToCompany.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	rate := &entity.ExchangeRate{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CurrencyCode:  in.CurrencyCode,
		RateToCompany: in.RateToCompany,
		AsOfDate:      in.AsOfDate,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(rate); err != nil {
		return nil, err
	}
	return toRateResponse(rate), nil
}

// List lista las tasas cargadas de la empresa.
func (uc *ExchangeRateUseCase) List(companyID string, limit, offset int) ([]*dto.ExchangeRateResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ExchangeRateResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRateResponse(r))
	}
	return out, nil
}

func toRateResponse(r *entity.ExchangeRate) *dto.ExchangeRateResponse {
	return &dto.ExchangeRateResponse{
		ID:            r.ID,
		CompanyID:     r.CompanyID,
		CurrencyCode:  r.CurrencyCode,
		RateToCompany: r.RateToCompany,
		AsOfDate:      r.AsOfDate,
	}
}
