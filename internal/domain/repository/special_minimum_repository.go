package repository

import "github.com/devman-gruposelsa/dev-invoice/internal/domain/entity"

// SpecialMinimumRepository define el puerto de persistencia para las reglas
// de precio mínimo especial por (cliente, producto, empresa). La unicidad de
// la tripleta la garantiza un constraint en la base.
type SpecialMinimumRepository interface {
	Create(rule *entity.SpecialMinimumRule) error
	GetByID(id string) (*entity.SpecialMinimumRule, error)
	// FindByTriple devuelve las reglas de la tripleta; normalmente cero o una.
	FindByTriple(customerID, productID, companyID string) ([]*entity.SpecialMinimumRule, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.SpecialMinimumRule, error)
	Delete(id string) error
}
