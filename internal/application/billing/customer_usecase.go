package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndTaxID(companyID, in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:                   uuid.New().String(),
		CompanyID:            companyID,
		Name:                 in.Name,
		TaxID:                in.TaxID,
		Email:                in.Email,
		Phone:                in.Phone,
		WaivesMinimumPricing: in.WaivesMinimumPricing,
		MonthlyInvoice:       in.MonthlyInvoice,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente de la empresa.
func (uc *CustomerUseCase) GetByID(companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza campos del cliente (incluye exención de mínimos y factura mensual).
func (uc *CustomerUseCase) Update(companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.WaivesMinimumPricing != nil {
		customer.WaivesMinimumPricing = *in.WaivesMinimumPricing
	}
	if in.MonthlyInvoice != nil {
		customer.MonthlyInvoice = *in.MonthlyInvoice
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la empresa.
func (uc *CustomerUseCase) List(companyID string, limit, offset int) ([]*dto.CustomerResponse, error) {
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
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                   c.ID,
		CompanyID:            c.CompanyID,
		Name:                 c.Name,
		TaxID:                c.TaxID,
		Email:                c.Email,
		Phone:                c.Phone,
		WaivesMinimumPricing: c.WaivesMinimumPricing,
		MonthlyInvoice:       c.MonthlyInvoice,
	}
}
