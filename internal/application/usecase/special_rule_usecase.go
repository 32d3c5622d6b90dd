package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/devman-gruposelsa/dev-invoice/internal/application/dto"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"
	"github.com/devman-gruposelsa/dev-invoice/internal/domain/repository"
)

// SpecialRuleUseCase casos de uso de reglas de precio mínimo por cliente.
// A lo sumo una regla por (cliente, producto, empresa): el intento de crear
// una segunda devuelve ErrDuplicate.
type SpecialRuleUseCase struct {
	repo         repository.SpecialMinimumRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewSpecialRuleUseCase construye el caso de uso.
func NewSpecialRuleUseCase(
	repo repository.SpecialMinimumRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *SpecialRuleUseCase {
	return &SpecialRuleUseCase{repo: repo, customerRepo: customerRepo, productRepo: productRepo}
}

// Create crea la regla validando cliente y producto de la empresa.
func (uc *SpecialRuleUseCase) Create(companyID string, in dto.CreateSpecialMinimumRequest) (*dto.SpecialMinimumResponse, error) {
	if in.CustomerID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.SpecialMinimumPrice.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil || customer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil || product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.FindByTriple(in.CustomerID, in.ProductID, companyID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	rule := &entity.SpecialMinimumRule{
		ID:                  uuid.New().String(),
		CompanyID:           companyID,
		CustomerID:          in.CustomerID,
		ProductID:           in.ProductID,
		SpecialMinimumPrice: in.SpecialMinimumPrice,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	// La base de datos también lo garantiza con un constraint único; el repo
	// traduce la violación a ErrDuplicate.
	if err := uc.repo.Create(rule); err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

// List lista las reglas de la empresa.
func (uc *SpecialRuleUseCase) List(companyID string, limit, offset int) ([]*dto.SpecialMinimumResponse, error) {
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
	out := make([]*dto.SpecialMinimumResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRuleResponse(r))
	}
	return out, nil
}

// Delete elimina una regla de la empresa.
func (uc *SpecialRuleUseCase) Delete(companyID, id string) error {
	rule, err := uc.repo.GetByID(id)
	if err != nil || rule == nil {
		return domain.ErrNotFound
	}
	if rule.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toRuleResponse(r *entity.SpecialMinimumRule) *dto.SpecialMinimumResponse {
	return &dto.SpecialMinimumResponse{
		ID:                  r.ID,
		CompanyID:           r.CompanyID,
		CustomerID:          r.CustomerID,
		ProductID:           r.ProductID,
		SpecialMinimumPrice: r.SpecialMinimumPrice,
	}
}
